// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package jobsource acquires job lists for the dashboard. The
// projection engine is pure; everything that touches the outside
// world (files, the automation CLI, inotify) lives here, behind the
// Source interface.
//
// Three acquisition modes:
//
//   - One-shot: LoadFile or Tool.Jobs, wrapped in a Static source.
//   - File watch: WatchFile monitors the jobs file with inotify and
//     republishes on change, falling back to clock-driven polling
//     when inotify is unavailable.
//   - Command poll: NewPoller re-runs the CLI on a fixed interval and
//     republishes when the normalized job list changes.
//
// All sources deliver whole snapshots: there is no per-job diffing,
// because every view recomputes from scratch anyway. A failed reload
// keeps the previous snapshot and reports the error on the event
// stream; the dashboard keeps rendering the last good data.
package jobsource

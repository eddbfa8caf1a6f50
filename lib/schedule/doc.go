// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package schedule projects cron-scheduled jobs into upcoming run
// instances and assembles the agenda and week views from them.
//
// The package is a pure computation layer: every function takes the
// current instant, the job list, and a cron.Evaluator as arguments,
// reads no clocks, keeps no state, and performs no I/O or logging.
// Calling a builder twice with identical inputs yields identical
// results, which is what makes the dashboard's recompute-from-scratch
// refresh model cheap to reason about.
//
// Enumeration is bounded per job: a soft cap with an overshoot margin
// limits how many instances are collected, a hard call budget makes
// the loop total even against a misbehaving evaluator, and schedules
// that fire in rapid succession are reduced to one instance per
// calendar day. Jobs never fail: an unparseable expression or unknown
// timezone projects to zero instances, and one job's problems never
// disturb another's projection.
package schedule

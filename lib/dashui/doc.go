// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package dashui implements the terminal dashboard for scheduled
// agent jobs. Built on bubbletea (Elm architecture), it renders three
// tabs over one job snapshot: a selectable job table, a seven-day
// agenda, and a week grid, plus a modal detail overlay that shows a
// job's upcoming runs and its prompt as styled markdown.
//
// The [Model] owns no data: jobs arrive through a
// [jobsource.Source], fire instants come from a [schedule.Evaluator],
// and every "now" is read from a [clock.Clock]. Tests drive the
// dashboard deterministically by injecting a static source, the cron
// evaluator, and a fake clock.
//
// Data flow:
//
//	[job file / external CLI]
//	        | (jobsource.Source)
//	    [Model] <- bubbletea event loop
//	        |       (filter, BuildAgenda, BuildWeek per recompute)
//	  [terminal output]
//
// Log records reach the status bar through [UILogHandler], a
// slog.Handler that forwards into the running program and fades after
// a few seconds.
package dashui

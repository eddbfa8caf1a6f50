// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/cronview/cronview/lib/schema/job"
)

// dayKeyFormat renders a calendar day key ("2026-02-18") in a display
// location. Day keys identify agenda groups and week slots.
const dayKeyFormat = "2006-01-02"

// Window is a half-open interval [Start, End). Enumeration yields
// instants strictly within the window: an instant exactly at End is
// excluded, and Start itself is unreachable because evaluation is
// strictly-after the cursor.
type Window struct {
	Start time.Time
	End   time.Time
}

// Run is one projected upcoming execution of a job. The job record
// travels with the instant so views can render name, agent, enabled
// state, and last-run outcome without a lookup.
type Run struct {
	// At is the fire instant, timezone-aware.
	At time.Time

	// Job is the owning job record.
	Job job.Job

	// Capped is true when the owning job's projection was reduced
	// (noisy-day reduction or soft-cap truncation). Per-job: every
	// surviving instance of a reduced projection carries it.
	Capped bool
}

// DayGroup is one agenda day: a calendar day key, a display heading,
// and that day's runs in ascending order.
type DayGroup struct {
	// Date is the day key in the display location ("2026-02-18").
	Date string

	// Heading is the human-readable day label: "Today", "Tomorrow",
	// or a "Monday, Jan 2" style rendering.
	Heading string

	// Runs are the day's instances, ascending by time.
	Runs []Run
}

// Agenda is the upcoming-runs view: the next seven days of instances
// grouped by calendar day. Only days that have at least one run
// appear.
type Agenda struct {
	// Days are the non-empty day groups, ascending by date.
	Days []DayGroup

	// Total is the combined instance count before the global cap.
	Total int

	// Capped is true when the global cap trimmed the run list.
	Capped bool
}

// WeekDay is one fixed slot of the week view. Unlike agenda days,
// week days exist even when empty.
type WeekDay struct {
	// Date is the day key in the display location.
	Date string

	// Heading is the short day label ("Mon 16").
	Heading string

	// Runs are the day's remaining instances, ascending by time.
	// Nil for days without runs.
	Runs []Run
}

// Week is the current-week view: exactly seven day slots starting at
// the configured week-start day, holding only instances that are not
// already in the past.
type Week struct {
	// Start is local midnight of the week's first day.
	Start time.Time

	// Days are the seven slots, first slot the week-start day.
	Days [7]WeekDay

	// Total is the remaining-instance count before the global cap.
	Total int

	// Capped is true when the global cap trimmed the run list.
	Capped bool
}

// projectAll projects every job over the window independently and
// flattens the results. A job whose schedule cannot be evaluated
// contributes nothing; it never affects its neighbors.
func projectAll(evaluator Evaluator, jobs []job.Job, window Window) []Run {
	var runs []Run
	for _, j := range jobs {
		projection := Project(evaluator, j, window)
		for _, at := range projection.Times {
			runs = append(runs, Run{At: at, Job: j, Capped: projection.Capped})
		}
	}
	return runs
}

// sortRuns orders runs ascending by instant. Simultaneous instants
// order by case-insensitive display name so recomputes are stable for
// a stable job list.
func sortRuns(runs []Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		if !runs[i].At.Equal(runs[j].At) {
			return runs[i].At.Before(runs[j].At)
		}
		left := strings.ToLower(runs[i].Job.DisplayName())
		right := strings.ToLower(runs[j].Job.DisplayName())
		return left < right
	})
}

// dayKey renders the calendar day of an instant in the display
// location.
func dayKey(at time.Time, location *time.Location) string {
	return at.In(location).Format(dayKeyFormat)
}

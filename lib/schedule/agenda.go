// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"time"

	"github.com/cronview/cronview/lib/schema/job"
)

// View-level bounds.
const (
	// agendaDays is the length of the agenda window in calendar
	// days.
	agendaDays = 7

	// globalCap bounds the combined instance count of a view after
	// per-job capping. Agenda and week share it.
	globalCap = 250
)

// BuildAgenda projects all jobs over the next seven days and groups
// the results by calendar day in the display location. The location
// governs grouping and headings only; production callers pass
// time.Local.
//
// Runs order ascending by instant, ties broken by case-insensitive
// display name. When the combined count exceeds the global cap the
// list is trimmed and the agenda is flagged; Total always reports the
// pre-trim count.
func BuildAgenda(evaluator Evaluator, jobs []job.Job, now time.Time, location *time.Location) Agenda {
	window := Window{Start: now, End: now.AddDate(0, 0, agendaDays)}
	runs := projectAll(evaluator, jobs, window)
	sortRuns(runs)

	agenda := Agenda{Total: len(runs)}
	if len(runs) > globalCap {
		runs = runs[:globalCap]
		agenda.Capped = true
	}
	agenda.Days = groupByDay(runs, now, location)
	return agenda
}

// groupByDay partitions sorted runs into consecutive day groups. Runs
// are ascending, so each day key appears in one contiguous stretch.
func groupByDay(runs []Run, now time.Time, location *time.Location) []DayGroup {
	var days []DayGroup
	for _, run := range runs {
		date := dayKey(run.At, location)
		if len(days) == 0 || days[len(days)-1].Date != date {
			days = append(days, DayGroup{
				Date:    date,
				Heading: dayHeading(run.At, now, location),
			})
		}
		group := &days[len(days)-1]
		group.Runs = append(group.Runs, run)
	}
	return days
}

// dayHeading labels an agenda day relative to now: "Today",
// "Tomorrow", or a "Monday, Feb 16" rendering.
func dayHeading(at, now time.Time, location *time.Location) string {
	switch dayKey(at, location) {
	case dayKey(now, location):
		return "Today"
	case dayKey(now.AddDate(0, 0, 1), location):
		return "Tomorrow"
	}
	return at.In(location).Format("Monday, Jan 2")
}

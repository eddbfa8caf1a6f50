// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"time"

	"github.com/cronview/cronview/lib/schema/job"
)

// BuildWeek projects all jobs over the current calendar week and
// buckets the results into exactly seven day slots. The week anchors
// at the most recent weekStart day at midnight in the display
// location; instances already in the past are dropped, so the view
// shows the remainder of the week, not its history.
//
// Sorting, tie-breaking, the global cap, and Total follow the same
// rules as BuildAgenda (Total counts after the past-filter, before
// the cap).
func BuildWeek(evaluator Evaluator, jobs []job.Job, now time.Time, weekStart time.Weekday, location *time.Location) Week {
	anchor := weekAnchor(now, weekStart, location)
	window := Window{Start: anchor, End: anchor.AddDate(0, 0, 7)}
	runs := projectAll(evaluator, jobs, window)

	remaining := runs[:0]
	for _, run := range runs {
		if !run.At.Before(now) {
			remaining = append(remaining, run)
		}
	}
	runs = remaining
	sortRuns(runs)

	week := Week{Start: anchor, Total: len(runs)}
	if len(runs) > globalCap {
		runs = runs[:globalCap]
		week.Capped = true
	}

	slots := make(map[string]int, len(week.Days))
	for i := range week.Days {
		date := anchor.AddDate(0, 0, i)
		week.Days[i] = WeekDay{
			Date:    date.Format(dayKeyFormat),
			Heading: date.Format("Mon 2"),
		}
		slots[week.Days[i].Date] = i
	}
	for _, run := range runs {
		// An instant whose local day somehow falls outside the seven
		// slots is dropped rather than crashing the view; it cannot
		// happen with a well-behaved evaluator.
		index, ok := slots[dayKey(run.At, location)]
		if !ok {
			continue
		}
		week.Days[index].Runs = append(week.Days[index].Runs, run)
	}
	return week
}

// weekAnchor returns the most recent weekStart day at midnight in the
// display location, at or before now. AddDate keeps wall-clock
// midnight across DST transitions.
func weekAnchor(now time.Time, weekStart time.Weekday, location *time.Location) time.Time {
	local := now.In(location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, location)
	back := (int(local.Weekday()) - int(weekStart) + 7) % 7
	return midnight.AddDate(0, 0, -back)
}

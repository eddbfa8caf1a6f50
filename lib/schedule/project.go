// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package schedule

import (
	"time"

	"github.com/cronview/cronview/lib/schema/job"
)

// Evaluator is the one capability the engine holds. The production
// implementation is lib/cron's robfig-backed evaluator; tests drive
// the engine with scripted fire tables.
//
// Implementations must be deterministic (identical arguments yield
// identical results) and total (no panics; every failure collapses to
// ok == false). The engine treats an evaluator failure identically to
// a schedule with no further occurrences.
type Evaluator interface {
	// Next returns the first fire instant of expression strictly
	// after the given instant, evaluated in the named IANA timezone
	// (empty means the machine's local zone). ok is false when the
	// expression is invalid, the timezone is unknown, or no further
	// occurrence exists.
	Next(expression, timezone string, after time.Time) (next time.Time, ok bool)
}

// Per-job enumeration bounds.
const (
	// softCap is the target maximum number of instances one job
	// contributes to a view.
	softCap = 20

	// overshootFactor stops raw collection at overshootFactor ×
	// softCap instances: enough material to judge whether the
	// schedule is noisy, without unbounded work on schedules that
	// fire constantly.
	overshootFactor = 6

	// maxEvaluatorCalls is the hard budget of Evaluator.Next calls
	// per job. It is what terminates the loop when an evaluator
	// fails to advance; a well-behaved evaluator never reaches it
	// because the overshoot stop triggers first.
	maxEvaluatorCalls = 500

	// noisyGapThreshold classifies an over-cap schedule: a minimum
	// gap between consecutive fires below this means the schedule is
	// noisy and gets per-day reduction instead of plain truncation.
	noisyGapThreshold = 2 * time.Hour

	// noisyDayLimit is the maximum number of calendar days (in the
	// job's own timezone) kept for a noisy schedule, one instance
	// per day.
	noisyDayLimit = 7
)

// Projection is the bounded enumeration of one job's runs within a
// window.
type Projection struct {
	// Times are the fire instants, strictly ascending, all within
	// the window.
	Times []time.Time

	// Capped is true when a reduction occurred: per-day reduction of
	// a noisy schedule, or truncation to the soft cap.
	Capped bool

	// BoundHit is true when the evaluator call budget ended the
	// enumeration. Only a non-advancing evaluator can trigger it.
	BoundHit bool
}

// Project enumerates the job's fire instants within the window and
// reduces schedules that exceed the soft cap. Non-cron schedules,
// invalid expressions, unknown timezones, and empty windows all yield
// a zero Projection; there is no error path.
func Project(evaluator Evaluator, j job.Job, w Window) Projection {
	var projection Projection
	if !j.Schedule.Projectable() || !w.Start.Before(w.End) {
		return projection
	}

	expression := j.Schedule.Expression
	timezone := j.Schedule.Timezone

	raw := make([]time.Time, 0, softCap)
	cursor := w.Start
	calls := 0
	for {
		if calls == maxEvaluatorCalls {
			projection.BoundHit = true
			break
		}
		if len(raw) == softCap*overshootFactor {
			break
		}

		next, ok := evaluator.Next(expression, timezone, cursor)
		calls++
		if !ok || !next.Before(w.End) {
			break
		}

		// Keep raw strictly ascending even when the evaluator
		// misbehaves: non-advancing instants are dropped, and the
		// call budget bounds the loop.
		if len(raw) == 0 || next.After(raw[len(raw)-1]) {
			raw = append(raw, next)
		}
		if advanced := next.Add(time.Second); advanced.After(cursor) {
			cursor = advanced
		}
	}

	if len(raw) <= softCap {
		projection.Times = raw
		return projection
	}

	// Over the soft cap: a noisy schedule (fires separated by less
	// than the gap threshold anywhere in the window) reduces to the
	// first instance per calendar day in the job's own timezone;
	// anything else merely truncates.
	if minimumGap(raw) < noisyGapThreshold {
		projection.Times = firstPerDay(raw, jobDayLocation(timezone), noisyDayLimit)
	} else {
		projection.Times = raw[:softCap]
	}
	projection.Capped = len(projection.Times) < len(raw)
	return projection
}

// minimumGap returns the smallest interval between consecutive
// instants. The slice must be ascending with at least two elements.
func minimumGap(times []time.Time) time.Duration {
	minimum := times[1].Sub(times[0])
	for i := 2; i < len(times); i++ {
		if gap := times[i].Sub(times[i-1]); gap < minimum {
			minimum = gap
		}
	}
	return minimum
}

// firstPerDay keeps the first instant of each calendar day in the
// given location, up to limit days. Input must be ascending.
func firstPerDay(times []time.Time, location *time.Location, limit int) []time.Time {
	kept := make([]time.Time, 0, limit)
	lastDay := ""
	for _, at := range times {
		day := at.In(location).Format(dayKeyFormat)
		if day == lastDay {
			continue
		}
		if len(kept) == limit {
			break
		}
		kept = append(kept, at)
		lastDay = day
	}
	return kept
}

// jobDayLocation resolves the timezone a noisy job's days are bucketed
// in: the job's own zone, or the machine's local zone when the job
// has none or names one that doesn't resolve.
func jobDayLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.Local
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return time.Local
	}
	return location
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Evaluator computes cron occurrence times, delegating parsing and
// calendar arithmetic to github.com/robfig/cron/v3 in standard
// 5-field mode. Parsed schedules and loaded locations are memoized,
// so the agenda and week builders can share one evaluator across
// concurrent recomputes.
//
// The zero value is not usable; call NewEvaluator.
type Evaluator struct {
	parser cron.Parser

	mu        sync.RWMutex
	schedules map[string]cron.Schedule
	locations map[string]*time.Location
}

// NewEvaluator returns a ready-to-use Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{
		parser:    cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
		schedules: make(map[string]cron.Schedule),
		locations: make(map[string]*time.Location),
	}
}

// Next returns the first fire instant of expression strictly after the
// given instant, evaluated in the named IANA timezone (empty means the
// machine's local zone). ok is false when the expression is invalid,
// the timezone is unknown, or no further occurrence exists within
// robfig's multi-year search limit. Deterministic and safe for
// concurrent use.
func (e *Evaluator) Next(expression, timezone string, after time.Time) (time.Time, bool) {
	schedule, ok := e.schedule(expression)
	if !ok {
		return time.Time{}, false
	}
	location, ok := e.location(timezone)
	if !ok {
		return time.Time{}, false
	}

	// robfig returns the zero time when no occurrence exists within
	// its search limit.
	next := schedule.Next(after.In(location))
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}

// schedule returns the memoized parse of expression. Failed parses are
// not cached: re-parsing an invalid expression costs one string scan
// per projection, and a jobs file edit can fix the expression between
// snapshots.
func (e *Evaluator) schedule(expression string) (cron.Schedule, bool) {
	e.mu.RLock()
	schedule, cached := e.schedules[expression]
	e.mu.RUnlock()
	if cached {
		return schedule, true
	}

	schedule, err := e.parser.Parse(expression)
	if err != nil {
		return nil, false
	}

	e.mu.Lock()
	e.schedules[expression] = schedule
	e.mu.Unlock()
	return schedule, true
}

func (e *Evaluator) location(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return time.Local, true
	}

	e.mu.RLock()
	location, cached := e.locations[timezone]
	e.mu.RUnlock()
	if cached {
		return location, true
	}

	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, false
	}

	e.mu.Lock()
	e.locations[timezone] = location
	e.mu.Unlock()
	return location, true
}

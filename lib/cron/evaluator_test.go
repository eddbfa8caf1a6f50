// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package cron

import (
	"sync"
	"testing"
	"time"
)

func utc(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func mustNext(t *testing.T, evaluator *Evaluator, expression, timezone string, after time.Time) time.Time {
	t.Helper()
	next, ok := evaluator.Next(expression, timezone, after)
	if !ok {
		t.Fatalf("Next(%q, %q, %v) not ok, want fire instant", expression, timezone, after)
	}
	return next
}

func TestNextEveryMinute(t *testing.T) {
	evaluator := NewEvaluator()
	next := mustNext(t, evaluator, "* * * * *", "UTC", utc(2026, 2, 18, 10, 30))
	if want := utc(2026, 2, 18, 10, 31); !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestNextDailyAt7AM(t *testing.T) {
	evaluator := NewEvaluator()

	// Before 7am → same day.
	next := mustNext(t, evaluator, "0 7 * * *", "UTC", utc(2026, 2, 18, 5, 0))
	if want := utc(2026, 2, 18, 7, 0); !next.Equal(want) {
		t.Errorf("before 7am: Next = %v, want %v", next, want)
	}

	// After 7am → next day.
	next = mustNext(t, evaluator, "0 7 * * *", "UTC", utc(2026, 2, 18, 8, 0))
	if want := utc(2026, 2, 19, 7, 0); !next.Equal(want) {
		t.Errorf("after 7am: Next = %v, want %v", next, want)
	}
}

func TestNextStrictlyAfter(t *testing.T) {
	evaluator := NewEvaluator()

	// Querying from an exact fire time returns the following
	// occurrence, never the fire time itself.
	next := mustNext(t, evaluator, "0 7 * * *", "UTC", utc(2026, 2, 18, 7, 0))
	if want := utc(2026, 2, 19, 7, 0); !next.Equal(want) {
		t.Errorf("Next from exact fire = %v, want %v", next, want)
	}
}

func TestNextWeekday(t *testing.T) {
	evaluator := NewEvaluator()

	// 2026-02-18 is a Wednesday; "30 8 * * 1-5" fires weekdays at
	// 08:30, so Friday evening rolls over to Monday.
	next := mustNext(t, evaluator, "30 8 * * 1-5", "UTC", utc(2026, 2, 20, 18, 0))
	if want := utc(2026, 2, 23, 8, 30); !next.Equal(want) {
		t.Errorf("Friday evening: Next = %v, want %v", next, want)
	}
	if next.Weekday() != time.Monday {
		t.Errorf("Next weekday = %v, want Monday", next.Weekday())
	}
}

func TestNextMonthBoundary(t *testing.T) {
	evaluator := NewEvaluator()
	next := mustNext(t, evaluator, "0 0 1 * *", "UTC", utc(2026, 2, 18, 12, 0))
	if want := utc(2026, 3, 1, 0, 0); !next.Equal(want) {
		t.Errorf("Next = %v, want %v", next, want)
	}
}

func TestNextInTimezone(t *testing.T) {
	evaluator := NewEvaluator()

	// 09:00 in New York during EST (UTC-5) is 14:00 UTC.
	next := mustNext(t, evaluator, "0 9 * * *", "America/New_York", utc(2026, 1, 15, 0, 0))
	if want := utc(2026, 1, 15, 14, 0); !next.Equal(want) {
		t.Errorf("Next = %v, want %v (UTC)", next, want)
	}
}

func TestNextAcrossDSTKeepsWallClock(t *testing.T) {
	evaluator := NewEvaluator()
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	// US DST begins 2026-03-08. A daily noon schedule stays at noon
	// wall time on both sides of the transition, so the UTC offset of
	// consecutive fires differs by an hour.
	before := mustNext(t, evaluator, "0 12 * * *", "America/New_York", utc(2026, 3, 7, 0, 0))
	after := mustNext(t, evaluator, "0 12 * * *", "America/New_York", before.Add(time.Second))

	if got := before.In(location).Hour(); got != 12 {
		t.Errorf("fire before transition at hour %d, want 12", got)
	}
	if got := after.In(location).Hour(); got != 12 {
		t.Errorf("fire after transition at hour %d, want 12", got)
	}
	if diff := after.Sub(before); diff != 23*time.Hour {
		t.Errorf("spring-forward gap = %v, want 23h", diff)
	}
}

func TestNextEmptyTimezoneUsesLocal(t *testing.T) {
	evaluator := NewEvaluator()

	// The local zone varies by machine, so assert only
	// zone-independent facts: the fire lands on the next minute
	// boundary, strictly after the query instant.
	after := time.Date(2026, 2, 18, 10, 30, 25, 0, time.Local)
	next := mustNext(t, evaluator, "* * * * *", "", after)
	if !next.After(after) {
		t.Errorf("Next = %v, want strictly after %v", next, after)
	}
	if next.Second() != 0 {
		t.Errorf("Next second = %d, want 0", next.Second())
	}
	if gap := next.Sub(after); gap > time.Minute {
		t.Errorf("Next gap = %v, want <= 1m", gap)
	}
}

func TestNextInvalidExpression(t *testing.T) {
	evaluator := NewEvaluator()
	expressions := []string{
		"",
		"not a cron line",
		"* * * *",
		"* * * * * *",
		"61 * * * *",
		"* 25 * * *",
	}
	for _, expression := range expressions {
		t.Run(expression, func(t *testing.T) {
			if _, ok := evaluator.Next(expression, "UTC", utc(2026, 2, 18, 0, 0)); ok {
				t.Errorf("Next(%q) ok = true, want false", expression)
			}
		})
	}
}

func TestNextInvalidTimezone(t *testing.T) {
	evaluator := NewEvaluator()
	if _, ok := evaluator.Next("* * * * *", "Mars/Olympus_Mons", utc(2026, 2, 18, 0, 0)); ok {
		t.Error("Next with unknown timezone ok = true, want false")
	}
}

func TestNextDeterministic(t *testing.T) {
	evaluator := NewEvaluator()
	after := utc(2026, 2, 18, 10, 30)

	first := mustNext(t, evaluator, "*/15 * * * *", "UTC", after)
	for i := 0; i < 5; i++ {
		if got := mustNext(t, evaluator, "*/15 * * * *", "UTC", after); !got.Equal(first) {
			t.Fatalf("call %d: Next = %v, want %v", i, got, first)
		}
	}
}

func TestNextConcurrentUse(t *testing.T) {
	evaluator := NewEvaluator()
	after := utc(2026, 2, 18, 10, 30)
	expressions := []string{"* * * * *", "0 7 * * *", "*/15 * * * *", "30 8 * * 1-5"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			expression := expressions[worker%len(expressions)]
			for j := 0; j < 50; j++ {
				if _, ok := evaluator.Next(expression, "UTC", after); !ok {
					t.Errorf("Next(%q) not ok during concurrent use", expression)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMultipleConsecutiveNext(t *testing.T) {
	evaluator := NewEvaluator()

	// Walk a half-hour schedule forward; each fire advances by
	// exactly 30 minutes.
	cursor := utc(2026, 2, 18, 10, 0)
	for i := 0; i < 6; i++ {
		next := mustNext(t, evaluator, "0,30 * * * *", "UTC", cursor)
		if want := cursor.Add(30 * time.Minute); !next.Equal(want) {
			t.Fatalf("step %d: Next = %v, want %v", i, next, want)
		}
		cursor = next
	}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"slices"
	"sync"
	"time"
)

// Fake returns a FakeClock frozen at the given instant. Time moves
// only through Advance or SetTime; timers and tickers fire during
// those calls, on the calling goroutine, in deadline order.
func Fake(initial time.Time) *FakeClock {
	fake := &FakeClock{now: initial}
	fake.registered = sync.NewCond(&fake.mu)
	return fake
}

// FakeClock is the deterministic Clock for tests. Safe for concurrent
// use: the code under test arms timers from its own goroutines while
// the test advances time.
type FakeClock struct {
	mu         sync.Mutex
	registered *sync.Cond
	now        time.Time
	timers     []*fakeTimer
}

// fakeTimer is one armed wait. A zero every means one-shot; tickers
// carry their interval and are rearmed each time they fire.
type fakeTimer struct {
	fireAt    time.Time
	out       chan time.Time
	every     time.Duration
	cancelled bool
}

// Now returns the frozen current time.
func (f *FakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// After arms a one-shot wait. Non-positive durations deliver the
// current time immediately without arming anything.
func (f *FakeClock) After(d time.Duration) <-chan time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(chan time.Time, 1)
	if d <= 0 {
		out <- f.now
		return out
	}
	f.timers = append(f.timers, &fakeTimer{fireAt: f.now.Add(d), out: out})
	f.registered.Broadcast()
	return out
}

// NewTicker arms a repeating wait. Panics if d is not positive.
func (f *FakeClock) NewTicker(d time.Duration) *Ticker {
	if d <= 0 {
		panic("clock: non-positive NewTicker interval")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(chan time.Time, 1)
	timer := &fakeTimer{fireAt: f.now.Add(d), out: out, every: d}
	f.timers = append(f.timers, timer)
	f.registered.Broadcast()

	return &Ticker{
		C: out,
		stop: func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			timer.cancelled = true
		},
	}
}

// Advance moves time forward by d and fires everything that came due.
// A ticker whose interval the advance spans more than once fires once
// per spanned interval; sends that find the channel buffer full are
// dropped, the same shedding time.Ticker does.
func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
	f.fireDueLocked()
}

// SetTime jumps directly to the given instant, firing everything due
// on the way. Panics if the instant is in the fake past.
func (f *FakeClock) SetTime(instant time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if instant.Before(f.now) {
		panic("clock: SetTime cannot move a FakeClock backwards")
	}
	f.now = instant
	f.fireDueLocked()
}

// fireDueLocked repeatedly fires the earliest due timer until none
// remain due. Picking the earliest each round keeps delivery in
// deadline order and lets a rearmed ticker come due again within the
// same advance.
func (f *FakeClock) fireDueLocked() {
	for {
		due := -1
		for index, timer := range f.timers {
			if timer.cancelled || timer.fireAt.After(f.now) {
				continue
			}
			if due < 0 || timer.fireAt.Before(f.timers[due].fireAt) {
				due = index
			}
		}
		if due < 0 {
			f.timers = slices.DeleteFunc(f.timers, func(timer *fakeTimer) bool {
				return timer.cancelled
			})
			return
		}

		timer := f.timers[due]
		select {
		case timer.out <- f.now:
		default:
		}
		if timer.every > 0 {
			timer.fireAt = timer.fireAt.Add(timer.every)
		} else {
			f.timers = slices.Delete(f.timers, due, due+1)
		}
	}
}

// WaitForTimers blocks until at least n timers or tickers are armed.
// Tests call this between starting the code under test and advancing,
// closing the race where an Advance lands before the goroutine under
// test has armed its wait.
func (f *FakeClock) WaitForTimers(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for f.armedLocked() < n {
		f.registered.Wait()
	}
}

// PendingCount returns how many timers and tickers are currently
// armed.
func (f *FakeClock) PendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.armedLocked()
}

func (f *FakeClock) armedLocked() int {
	count := 0
	for _, timer := range f.timers {
		if !timer.cancelled {
			count++
		}
	}
	return count
}

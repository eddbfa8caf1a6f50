// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock injects time. The dashboard's refresh loop, the file
// watcher's polling fallback, and the tool poller all read the current
// time and arm timers through a Clock instead of the time package, so
// their tests can march time forward deterministically.
package clock

import "time"

// Clock is the capability surface cronview needs from time: reading
// the current instant, one-shot waits, and periodic ticks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// After returns a channel that receives the current time once d
	// has elapsed. A non-positive d delivers immediately.
	After(d time.Duration) <-chan time.Time

	// NewTicker returns a Ticker delivering on C every d. Panics if
	// d is not positive, matching time.NewTicker.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic ticks on C. The channel holds one pending
// tick; when the reader falls behind, further ticks are dropped, as
// with time.Ticker. Stop when done.
type Ticker struct {
	C <-chan time.Time

	stop func()
}

// Stop ends delivery. C is not closed; a blocked read stays blocked.
func (t *Ticker) Stop() { t.stop() }

// Real returns the Clock backed by the machine's time.
func Real() Clock { return systemClock{} }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

func (systemClock) NewTicker(d time.Duration) *Ticker {
	ticker := time.NewTicker(d)
	return &Ticker{C: ticker.C, stop: ticker.Stop}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var (
	_ Clock = (*FakeClock)(nil)
	_ Clock = systemClock{}
)

var fakeEpoch = time.Date(2026, 2, 16, 6, 0, 0, 0, time.UTC)

func TestFakeNowFrozen(t *testing.T) {
	fake := Fake(fakeEpoch)
	if !fake.Now().Equal(fakeEpoch) {
		t.Fatalf("Now = %v, want %v", fake.Now(), fakeEpoch)
	}
	fake.Advance(90 * time.Second)
	if want := fakeEpoch.Add(90 * time.Second); !fake.Now().Equal(want) {
		t.Fatalf("Now after advance = %v, want %v", fake.Now(), want)
	}
}

func TestFakeAfterFiresAtDeadline(t *testing.T) {
	fake := Fake(fakeEpoch)
	wait := fake.After(time.Minute)

	fake.Advance(59 * time.Second)
	select {
	case at := <-wait:
		t.Fatalf("fired early at %v", at)
	default:
	}

	fake.Advance(time.Second)
	select {
	case at := <-wait:
		if want := fakeEpoch.Add(time.Minute); !at.Equal(want) {
			t.Errorf("fired with %v, want %v", at, want)
		}
	default:
		t.Fatal("did not fire at the deadline")
	}
}

func TestFakeAfterImmediateWhenNonPositive(t *testing.T) {
	fake := Fake(fakeEpoch)
	for _, d := range []time.Duration{0, -time.Second} {
		select {
		case at := <-fake.After(d):
			if !at.Equal(fakeEpoch) {
				t.Errorf("After(%v) delivered %v, want %v", d, at, fakeEpoch)
			}
		default:
			t.Errorf("After(%v) did not deliver immediately", d)
		}
	}
	if fake.PendingCount() != 0 {
		t.Errorf("immediate waits left %d armed timers", fake.PendingCount())
	}
}

func TestFakeAfterIsOneShot(t *testing.T) {
	fake := Fake(fakeEpoch)
	wait := fake.After(time.Second)

	fake.Advance(time.Second)
	<-wait
	if fake.PendingCount() != 0 {
		t.Fatalf("fired one-shot still armed: %d", fake.PendingCount())
	}

	fake.Advance(time.Hour)
	select {
	case at := <-wait:
		t.Fatalf("one-shot fired again at %v", at)
	default:
	}
}

func TestFakeTickerRepeats(t *testing.T) {
	fake := Fake(fakeEpoch)
	ticker := fake.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for round := 1; round <= 3; round++ {
		fake.Advance(30 * time.Second)
		select {
		case at := <-ticker.C:
			if want := fakeEpoch.Add(time.Duration(round) * 30 * time.Second); !at.Equal(want) {
				t.Errorf("round %d tick at %v, want %v", round, at, want)
			}
		default:
			t.Fatalf("round %d produced no tick", round)
		}
	}
}

func TestFakeTickerShedsWhenUnread(t *testing.T) {
	fake := Fake(fakeEpoch)
	ticker := fake.NewTicker(10 * time.Second)
	defer ticker.Stop()

	// Three intervals in one advance fit a single tick in the buffer.
	fake.Advance(30 * time.Second)
	<-ticker.C
	select {
	case at := <-ticker.C:
		t.Fatalf("shed tick delivered at %v", at)
	default:
	}

	// The cadence survives shedding: the next interval still ticks.
	fake.Advance(10 * time.Second)
	select {
	case <-ticker.C:
	default:
		t.Fatal("ticker dead after shedding")
	}
}

func TestFakeTickerStop(t *testing.T) {
	fake := Fake(fakeEpoch)
	ticker := fake.NewTicker(time.Second)

	if fake.PendingCount() != 1 {
		t.Fatalf("PendingCount = %d, want 1", fake.PendingCount())
	}
	ticker.Stop()
	if fake.PendingCount() != 0 {
		t.Fatalf("PendingCount after Stop = %d, want 0", fake.PendingCount())
	}

	fake.Advance(time.Minute)
	select {
	case at := <-ticker.C:
		t.Fatalf("stopped ticker fired at %v", at)
	default:
	}
}

func TestFakeTickerRejectsNonPositiveInterval(t *testing.T) {
	fake := Fake(fakeEpoch)
	defer func() {
		if recover() == nil {
			t.Fatal("NewTicker(0) did not panic")
		}
	}()
	fake.NewTicker(0)
}

func TestFakeFiresInDeadlineOrder(t *testing.T) {
	fake := Fake(fakeEpoch)
	late := fake.After(2 * time.Minute)
	early := fake.After(time.Minute)

	fake.Advance(3 * time.Minute)

	at := <-early
	if !at.Equal(fakeEpoch.Add(3 * time.Minute)) {
		t.Errorf("early fired with %v, want the post-advance now", at)
	}
	<-late
}

func TestFakeSetTime(t *testing.T) {
	fake := Fake(fakeEpoch)
	wait := fake.After(time.Hour)

	target := fakeEpoch.Add(2 * time.Hour)
	fake.SetTime(target)

	if !fake.Now().Equal(target) {
		t.Errorf("Now = %v, want %v", fake.Now(), target)
	}
	select {
	case <-wait:
	default:
		t.Fatal("SetTime did not fire the due timer")
	}
}

func TestFakeSetTimeBackwardsPanics(t *testing.T) {
	fake := Fake(fakeEpoch)
	defer func() {
		if recover() == nil {
			t.Fatal("backwards SetTime did not panic")
		}
	}()
	fake.SetTime(fakeEpoch.Add(-time.Second))
}

func TestFakeWaitForTimers(t *testing.T) {
	fake := Fake(fakeEpoch)

	armed := make(chan struct{})
	go func() {
		fake.WaitForTimers(1)
		close(armed)
	}()

	select {
	case <-armed:
		t.Fatal("WaitForTimers returned with nothing armed")
	case <-time.After(20 * time.Millisecond):
	}

	wait := fake.After(time.Second)
	select {
	case <-armed:
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForTimers never observed the registration")
	}

	fake.Advance(time.Second)
	<-wait
}

func TestFakeConcurrentArmAndAdvance(t *testing.T) {
	fake := Fake(fakeEpoch)

	var group sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		group.Add(1)
		go func() {
			defer group.Done()
			wait := fake.After(time.Millisecond)
			fake.Advance(2 * time.Millisecond)
			<-wait
		}()
	}
	group.Wait()
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cronview/cronview/lib/clock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWatchFileInitialLoad(t *testing.T) {
	path := writeJobsFile(t, `{"jobs": [`+nightlyJob+`, `+weeklyJob+`]}`)

	watcher, err := WatchFile(path, clock.Real(), discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer watcher.Close()

	snapshot := watcher.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("len(Snapshot) = %d, want 2", len(snapshot))
	}
	if snapshot[0].ID != "job-1" || snapshot[1].ID != "job-2" {
		t.Errorf("snapshot = %+v", snapshot)
	}
}

func TestWatchFileMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")
	if _, err := WatchFile(path, clock.Real(), discardLogger()); err == nil {
		t.Fatal("WatchFile on missing file succeeded, want error")
	}
}

func TestWatchFileDetectsChange(t *testing.T) {
	path := writeJobsFile(t, `{"jobs": [`+nightlyJob+`]}`)

	watcher, err := WatchFile(path, clock.Real(), discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer watcher.Close()

	events := watcher.Subscribe()

	updated := `{"jobs": [` + nightlyJob + `, ` + weeklyJob + `]}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite jobs file: %v", err)
	}

	// Real inotify events need a real deadline; no fake clock drives
	// the kernel. Debounce is 50ms, so a second is generous.
	select {
	case event := <-events:
		if event.Err != nil {
			t.Fatalf("event.Err = %v", event.Err)
		}
		if len(event.Jobs) != 2 {
			t.Fatalf("event has %d jobs, want 2", len(event.Jobs))
		}
	case <-time.After(time.Second): //nolint:realclock
		t.Fatal("timed out waiting for change event")
	}

	if snapshot := watcher.Snapshot(); len(snapshot) != 2 {
		t.Errorf("Snapshot after change has %d jobs, want 2", len(snapshot))
	}
}

func TestWatchFileAtomicRename(t *testing.T) {
	path := writeJobsFile(t, `{"jobs": [`+nightlyJob+`]}`)

	watcher, err := WatchFile(path, clock.Real(), discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer watcher.Close()

	events := watcher.Subscribe()

	// Write a temp file and rename it over the original, the way
	// editors and the automation CLI save.
	temp := path + ".tmp"
	if err := os.WriteFile(temp, []byte(`{"jobs": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(temp, path); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-events:
		if len(event.Jobs) != 0 {
			t.Errorf("event has %d jobs, want 0", len(event.Jobs))
		}
	case <-time.After(time.Second): //nolint:realclock
		t.Fatal("timed out waiting for rename event")
	}
}

func TestWatchFileKeepsSnapshotOnParseError(t *testing.T) {
	path := writeJobsFile(t, `{"jobs": [`+nightlyJob+`]}`)

	watcher, err := WatchFile(path, clock.Real(), discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer watcher.Close()

	events := watcher.Subscribe()

	if err := os.WriteFile(path, []byte(`{{{ not json`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case event := <-events:
		if event.Err == nil {
			t.Fatal("event.Err = nil, want parse error")
		}
		if len(event.Jobs) != 1 {
			t.Errorf("event retained %d jobs, want 1", len(event.Jobs))
		}
	case <-time.After(time.Second): //nolint:realclock
		t.Fatal("timed out waiting for error event")
	}

	if snapshot := watcher.Snapshot(); len(snapshot) != 1 || snapshot[0].ID != "job-1" {
		t.Errorf("Snapshot after bad write = %+v, want the original job", snapshot)
	}

	// A good write afterward recovers.
	if err := os.WriteFile(path, []byte(`{"jobs": [`+weeklyJob+`]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case event := <-events:
		if event.Err != nil {
			t.Fatalf("recovery event.Err = %v", event.Err)
		}
		if len(event.Jobs) != 1 || event.Jobs[0].ID != "job-2" {
			t.Errorf("recovery event jobs = %+v", event.Jobs)
		}
	case <-time.After(time.Second): //nolint:realclock
		t.Fatal("timed out waiting for recovery event")
	}
}

func TestWatchFileIgnoresIdenticalWrite(t *testing.T) {
	content := `{"jobs": [` + nightlyJob + `]}`
	path := writeJobsFile(t, content)

	watcher, err := WatchFile(path, clock.Real(), discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	defer watcher.Close()

	events := watcher.Subscribe()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	// Long enough for the debounced re-read to have happened.
	time.Sleep(300 * time.Millisecond) //nolint:realclock
	select {
	case event := <-events:
		t.Errorf("unexpected event for identical content: %+v", event)
	default:
	}
}

func TestWatcherFallbackPolling(t *testing.T) {
	path := writeJobsFile(t, `{"jobs": [`+nightlyJob+`]}`)
	fake := clock.Fake(time.Date(2026, 2, 16, 8, 0, 0, 0, time.UTC))

	// Construct the fallback shape directly: the inotify setup only
	// fails on exotic systems, but the polling path must still work.
	jobs, _, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	watcher := &Watcher{
		path:     path,
		filename: filepath.Base(path),
		clock:    fake,
		logger:   discardLogger(),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	watcher.jobs = jobs
	watcher.normalized = normalizeJobs(jobs)

	events := watcher.Subscribe()
	go func() {
		defer close(watcher.done)
		watcher.pollLoop()
	}()
	defer watcher.Close()

	fake.WaitForTimers(1)

	updated := `{"jobs": [` + nightlyJob + `, ` + weeklyJob + `]}`
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}
	fake.Advance(fallbackInterval)

	select {
	case event := <-events:
		if len(event.Jobs) != 2 {
			t.Errorf("event has %d jobs, want 2", len(event.Jobs))
		}
	case <-time.After(time.Second): //nolint:realclock
		t.Fatal("timed out waiting for poll event")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := writeJobsFile(t, `{"jobs": []}`)

	watcher, err := WatchFile(path, clock.Real(), discardLogger())
	if err != nil {
		t.Fatalf("WatchFile: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := watcher.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/cronview/cronview/lib/schema/job"
)

// Event is delivered on the Subscribe channel whenever a live source
// reloads. Jobs always carries the current snapshot: the new one on
// success, the retained previous one when Err is set.
type Event struct {
	Jobs []job.Job
	Err  error
}

// Source abstracts job data access for the dashboard. Implementations
// range from a fixed in-memory list (Static) to an inotify-backed
// file watcher; the dashboard code is identical regardless of
// backend.
type Source interface {
	// Snapshot returns the current job list. The returned slice is
	// the caller's to keep; sources never mutate it afterward.
	Snapshot() []job.Job

	// Subscribe returns a channel that receives an Event on every
	// reload. The channel is buffered; events are dropped when the
	// subscriber falls behind, which is safe because each event
	// carries the whole snapshot. Returns nil if the source never
	// updates.
	Subscribe() <-chan Event

	// Close stops any background reloading. Idempotent.
	Close() error
}

// Static is a Source over a fixed job list, used by one-shot print
// modes and tests.
type Static struct {
	jobs []job.Job
}

// NewStatic returns a Source that always serves the given list.
func NewStatic(jobs []job.Job) *Static {
	return &Static{jobs: slices.Clone(jobs)}
}

func (s *Static) Snapshot() []job.Job { return slices.Clone(s.jobs) }

func (s *Static) Subscribe() <-chan Event { return nil }

func (s *Static) Close() error { return nil }

// feed holds the snapshot and subscriber bookkeeping shared by the
// live sources. Snapshots are replaced wholesale; subscribers get a
// non-blocking send of each event.
type feed struct {
	mutex       sync.RWMutex
	jobs        []job.Job
	subscribers []chan Event
}

func (f *feed) Snapshot() []job.Job {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return slices.Clone(f.jobs)
}

func (f *feed) Subscribe() <-chan Event {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	channel := make(chan Event, 16)
	f.subscribers = append(f.subscribers, channel)
	return channel
}

// replace installs a new snapshot and notifies subscribers.
func (f *feed) replace(jobs []job.Job) {
	f.mutex.Lock()
	f.jobs = jobs
	// Snapshot subscriber list under lock; dispatch after release.
	// The subscriber list is append-only, so this is safe.
	subscribers := f.subscribers
	f.mutex.Unlock()

	dispatch(subscribers, Event{Jobs: jobs})
}

// fail keeps the current snapshot and notifies subscribers of the
// error alongside it.
func (f *feed) fail(err error) {
	f.mutex.RLock()
	jobs := slices.Clone(f.jobs)
	subscribers := f.subscribers
	f.mutex.RUnlock()

	dispatch(subscribers, Event{Jobs: jobs, Err: err})
}

func dispatch(subscribers []chan Event, event Event) {
	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Subscriber buffer full. Dropping is fine: the next
			// event carries the full snapshot again.
		}
	}
}

// normalizeJobs renders a job list to canonical bytes for change
// detection, independent of the formatting and unknown fields of the
// producer's output. Marshaling plain structs cannot fail.
func normalizeJobs(jobs []job.Job) []byte {
	normalized, _ := json.Marshal(jobs)
	return normalized
}

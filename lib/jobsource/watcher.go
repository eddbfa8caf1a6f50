// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/cronview/cronview/lib/clock"
)

const (
	// watchDebounce coalesces a burst of writes into one re-read.
	watchDebounce = 50 * time.Millisecond

	// watchPollMilliseconds is the inotify poll timeout; it bounds
	// how long Close waits for the loop to notice the stop channel.
	watchPollMilliseconds = 100

	// fallbackInterval drives re-reads when inotify is unavailable.
	fallbackInterval = 2 * time.Second
)

// Watcher is a Source backed by a jobs file on disk. It watches the
// file's parent directory with inotify and republishes the parsed
// snapshot whenever the file changes; when inotify cannot be set up
// it degrades to re-reading the file on a clock-driven interval.
type Watcher struct {
	feed
	path     string
	filename string
	clock    clock.Clock
	logger   *slog.Logger

	// normalized is the canonical form of the current snapshot, read
	// and written only by the reload goroutine (and WatchFile before
	// that goroutine starts).
	normalized []byte

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// WatchFile loads the jobs file and starts watching it. The initial
// load must succeed; after that, reload failures keep the previous
// snapshot and report through the event stream.
func WatchFile(path string, clk clock.Clock, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	absolutePath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	jobs, skipped, err := LoadFile(absolutePath)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		logger.Warn("skipped undecodable job entries", "path", absolutePath, "count", skipped)
	}

	watcher := &Watcher{
		path:     absolutePath,
		filename: filepath.Base(absolutePath),
		clock:    clk,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	watcher.jobs = jobs
	watcher.normalized = normalizeJobs(jobs)

	// Watch the parent directory, not the file itself: editors and
	// the automation CLI write a temp file and rename it over the
	// old one, creating a new inode that a file-level watch on the
	// old inode would miss.
	fd, err := inotifyDirectory(filepath.Dir(absolutePath))
	if err != nil {
		logger.Warn("inotify unavailable, polling the jobs file instead",
			"path", absolutePath, "error", err)
		fd = -1
	}

	go func() {
		defer close(watcher.done)
		if fd < 0 {
			watcher.pollLoop()
			return
		}
		watcher.watchLoop(fd)
	}()
	return watcher, nil
}

// Close stops the watch loop and waits for it to exit. Idempotent.
func (w *Watcher) Close() error {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
	return nil
}

func inotifyDirectory(directory string) (int, error) {
	fd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		return -1, err
	}
	if _, err := unix.InotifyAddWatch(fd, directory, unix.IN_CLOSE_WRITE|unix.IN_MOVED_TO); err != nil {
		unix.Close(fd)
		return -1, err
	}
	return fd, nil
}

// watchLoop polls the inotify fd and re-reads the jobs file when an
// event names it. IN_CLOSE_WRITE catches in-place writes and
// IN_MOVED_TO catches atomic rename-replace saves.
func (w *Watcher) watchLoop(fd int) {
	defer unix.Close(fd)

	buffer := make([]byte, 4096)
	for {
		select {
		case <-w.stop:
			return
		default:
		}

		descriptors := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		count, err := unix.Poll(descriptors, watchPollMilliseconds)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			// The watch is gone. Fall back to interval polling so
			// the dashboard keeps updating.
			w.logger.Warn("inotify poll failed, polling the jobs file instead", "error", err)
			w.pollLoop()
			return
		}
		if count == 0 {
			continue
		}

		bytesRead, err := unix.Read(fd, buffer)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			w.logger.Warn("inotify read failed, polling the jobs file instead", "error", err)
			w.pollLoop()
			return
		}

		if !eventTargetsFile(buffer[:bytesRead], w.filename) {
			continue
		}

		// Debounce, then drain whatever queued meanwhile, so a
		// multi-write save produces a single re-read.
		time.Sleep(watchDebounce)
		drainEvents(fd, buffer)

		w.reload()
	}
}

// pollLoop re-reads the jobs file on a fixed interval. The ticker
// comes from the injected clock, so tests drive it deterministically.
func (w *Watcher) pollLoop() {
	ticker := w.clock.NewTicker(fallbackInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.reload()
		}
	}
}

// reload re-reads and re-parses the jobs file, publishing a new
// snapshot when its normalized form differs from the current one.
func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// Mid-write or briefly absent during an atomic replace. The
		// next event or tick retries.
		return
	}

	jobs, skipped, err := Parse(data)
	if err != nil {
		w.logger.Warn("jobs file did not parse, keeping previous snapshot",
			"path", w.path, "error", err)
		w.fail(err)
		return
	}
	if skipped > 0 {
		w.logger.Warn("skipped undecodable job entries", "path", w.path, "count", skipped)
	}

	normalized := normalizeJobs(jobs)
	if bytes.Equal(normalized, w.normalized) {
		return
	}
	w.normalized = normalized
	w.replace(jobs)
}

// eventTargetsFile reports whether any inotify event in buffer names
// the watched file. Event layout per inotify(7): a 16-byte header
// (wd, mask, cookie, len) followed by len bytes of null-padded name.
func eventTargetsFile(buffer []byte, filename string) bool {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buffer) {
		nameLength := int(binary.NativeEndian.Uint32(buffer[offset+12 : offset+16]))
		end := offset + unix.SizeofInotifyEvent + nameLength
		if end > len(buffer) {
			break
		}
		if nameLength > 0 {
			name := nullTerminated(buffer[offset+unix.SizeofInotifyEvent : end])
			if name == filename {
				return true
			}
		}
		offset = end
	}
	return false
}

// nullTerminated cuts a null-padded byte slice at its first zero
// byte.
func nullTerminated(data []byte) string {
	for i, b := range data {
		if b == 0 {
			return string(data[:i])
		}
	}
	return string(data)
}

// drainEvents reads and discards queued inotify events.
func drainEvents(fd int, buffer []byte) {
	for {
		if _, err := unix.Read(fd, buffer); err != nil {
			return
		}
	}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cronview/cronview/lib/clock"
)

// Poller is a Source that re-runs the automation CLI on a fixed
// interval. Subscribers are only notified when the normalized job
// list actually changes, so a chatty CLI with stable output does not
// cause redraw churn.
type Poller struct {
	feed
	tool     *Tool
	interval time.Duration
	clock    clock.Clock
	logger   *slog.Logger

	ctx        context.Context
	normalized []byte

	started  bool
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewPoller returns an unstarted Poller. Call Start to run the first
// fetch and begin the polling loop.
func NewPoller(tool *Tool, interval time.Duration, clk clock.Clock, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		tool:     tool,
		interval: interval,
		clock:    clk,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the tool once synchronously and, on success, launches
// the background polling loop. A failing first fetch is returned to
// the caller rather than retried: if the CLI is missing or broken at
// startup, the operator should hear about it immediately instead of
// staring at an empty dashboard.
func (p *Poller) Start(ctx context.Context) error {
	jobs, skipped, err := p.tool.Jobs(ctx)
	if err != nil {
		return err
	}
	if skipped > 0 {
		p.logger.Warn("skipped undecodable job entries", "tool", p.tool.String(), "count", skipped)
	}
	p.mutex.Lock()
	p.jobs = jobs
	p.mutex.Unlock()
	p.normalized = normalizeJobs(jobs)

	p.ctx = ctx
	p.started = true
	go p.run()
	return nil
}

func (p *Poller) run() {
	defer close(p.done)
	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll runs the tool once. Errors keep the previous snapshot: one
// flaky invocation should not blank the dashboard.
func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(p.ctx, p.interval)
	defer cancel()

	jobs, skipped, err := p.tool.Jobs(ctx)
	if err != nil {
		p.logger.Warn("job poll failed, keeping previous snapshot", "error", err)
		p.fail(err)
		return
	}
	if skipped > 0 {
		p.logger.Warn("skipped undecodable job entries", "tool", p.tool.String(), "count", skipped)
	}

	normalized := normalizeJobs(jobs)
	if bytes.Equal(normalized, p.normalized) {
		return
	}
	p.normalized = normalized
	p.replace(jobs)
}

// Close stops the polling loop and waits for it to exit. Safe to call
// more than once, and safe on a Poller whose Start failed.
func (p *Poller) Close() error {
	p.stopOnce.Do(func() { close(p.stop) })
	if p.started {
		<-p.done
	}
	return nil
}

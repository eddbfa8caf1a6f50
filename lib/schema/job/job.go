// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package job

import (
	"strings"
	"time"
)

// Schedule kinds. KindCron is the only kind cronview can project into
// upcoming run instances; every other kind is carried for display and
// otherwise ignored.
const (
	// KindCron is a five-field cron expression, optionally pinned to
	// an IANA timezone.
	KindCron = "cron"

	// KindManual marks jobs that only run when triggered by hand.
	KindManual = "manual"

	// KindOnce marks jobs with a single absolute fire time managed by
	// the external tool.
	KindOnce = "once"
)

// Job is one scheduled automation job as reported by the external
// tool. The tool owns the record; cronview only reads it.
type Job struct {
	// ID is the tool-assigned stable identifier.
	ID string `json:"id"`

	// Name is the human-readable display name. May be empty; use
	// DisplayName for presentation and sorting.
	Name string `json:"name,omitempty"`

	// Agent identifies the agent the job drives (e.g. "agent-red").
	// Display-only: the agents map resolves it to a model name when
	// one is configured.
	Agent string `json:"agent,omitempty"`

	// Enabled reports whether the external scheduler would run this
	// job. Disabled jobs still project; the dashboard dims them and
	// the enabled-only filter hides them.
	Enabled bool `json:"enabled"`

	// Schedule is the tagged schedule variant. Only cron schedules
	// are projectable.
	Schedule Spec `json:"schedule"`

	// Prompt is the task text handed to the agent when the job
	// fires. Free text, commonly markdown. Shown in the detail pane.
	Prompt string `json:"prompt,omitempty"`

	// LastRun is the most recent execution outcome, when the tool
	// reports one.
	LastRun *RunRecord `json:"lastRun,omitempty"`
}

// Spec is a job's schedule, discriminated by Kind. Unknown kinds are
// valid records: they display as-is and project to nothing.
type Spec struct {
	// Kind selects the variant: "cron", "manual", "once", or any
	// value a newer tool version emits.
	Kind string `json:"kind"`

	// Expression is the five-field cron line (kind "cron").
	Expression string `json:"expression,omitempty"`

	// Timezone is the IANA zone the expression is evaluated in (kind
	// "cron"). Empty means the machine's local zone.
	Timezone string `json:"timezone,omitempty"`
}

// RunRecord is the outcome of a job's most recent execution.
type RunRecord struct {
	// Status is the terminal outcome: "success", "error", or any
	// tool-specific value.
	Status string `json:"status,omitempty"`

	// State is the current lifecycle state: "idle", "running", or any
	// tool-specific value.
	State string `json:"state,omitempty"`

	// At is when the run started (RFC 3339 in JSON). Zero when the
	// tool omits it.
	At time.Time `json:"at"`
}

// DisplayName returns the job's name, falling back to the ID when the
// name is empty. Never returns "" for a job with an ID.
func (j Job) DisplayName() string {
	if strings.TrimSpace(j.Name) != "" {
		return j.Name
	}
	return j.ID
}

// Projectable reports whether the schedule can be enumerated into
// future run instances: a cron kind with a non-empty expression.
// Whether the expression actually parses is the evaluator's call.
func (s Spec) Projectable() bool {
	return s.Kind == KindCron && strings.TrimSpace(s.Expression) != ""
}

// Summary returns a one-line rendering of the schedule for list rows:
// the cron expression (with its timezone suffix when pinned) for cron
// schedules, otherwise the kind.
func (s Spec) Summary() string {
	if s.Kind == KindCron {
		if s.Timezone != "" {
			return s.Expression + " (" + s.Timezone + ")"
		}
		return s.Expression
	}
	if s.Kind == "" {
		return "unscheduled"
	}
	return s.Kind
}

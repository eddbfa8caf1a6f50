// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"time"

	"github.com/cronview/cronview/lib/schema/job"
)

// formatClockTime renders an instant as a HH:MM wall-clock label in
// the display location.
func formatClockTime(at time.Time, location *time.Location) string {
	return at.In(location).Format("15:04")
}

// humanizeSince renders how long ago an instant was, coarsely: "just
// now" under a minute, then minutes, hours, days.
func humanizeSince(elapsed time.Duration) string {
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}

// humanizeUntil renders how far away a future instant is: "now" under
// a minute, then minutes, hours, days.
func humanizeUntil(remaining time.Duration) string {
	switch {
	case remaining < time.Minute:
		return "now"
	case remaining < time.Hour:
		return fmt.Sprintf("in %dm", int(remaining.Minutes()))
	case remaining < 24*time.Hour:
		return fmt.Sprintf("in %dh", int(remaining.Hours()))
	default:
		return fmt.Sprintf("in %dd", int(remaining.Hours()/24))
	}
}

// runGlyph returns the single-character outcome indicator for a run
// record: running beats the previous outcome, then success/error, then
// a neutral dot for tool-specific values.
func runGlyph(record *job.RunRecord) string {
	if record == nil {
		return ""
	}
	if record.State == "running" {
		return "●"
	}
	switch record.Status {
	case "success", "ok":
		return "✓"
	case "error", "failed":
		return "✗"
	default:
		return "•"
	}
}

// lastRunBadge renders a short unstyled last-run summary for list
// rows: the outcome glyph plus a coarse age. Empty when the tool
// reported no run.
func lastRunBadge(record *job.RunRecord, now time.Time) string {
	glyph := runGlyph(record)
	if glyph == "" {
		return ""
	}
	if record.State == "running" {
		return glyph + " running"
	}
	if record.At.IsZero() {
		return glyph
	}
	return glyph + " " + humanizeSince(now.Sub(record.At))
}

// agentLabel renders the agent column for a job: the agent name with
// its resolved model appended when the agents map knows it. Empty for
// jobs without an agent.
func agentLabel(candidate job.Job, agents map[string]string) string {
	if candidate.Agent == "" {
		return ""
	}
	if model, ok := agents[candidate.Agent]; ok && model != "" {
		return candidate.Agent + " → " + model
	}
	return candidate.Agent
}

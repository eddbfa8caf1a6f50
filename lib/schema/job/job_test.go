// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package job

import (
	"encoding/json"
	"testing"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want string
	}{
		{"name set", Job{ID: "job-1", Name: "Nightly triage"}, "Nightly triage"},
		{"name empty", Job{ID: "job-1"}, "job-1"},
		{"name whitespace", Job{ID: "job-1", Name: "   "}, "job-1"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.job.DisplayName(); got != test.want {
				t.Errorf("DisplayName() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSpecProjectable(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{"cron with expression", Spec{Kind: KindCron, Expression: "0 7 * * *"}, true},
		{"cron without expression", Spec{Kind: KindCron}, false},
		{"cron whitespace expression", Spec{Kind: KindCron, Expression: "  "}, false},
		{"manual", Spec{Kind: KindManual}, false},
		{"once", Spec{Kind: KindOnce}, false},
		{"unknown kind with expression", Spec{Kind: "interval", Expression: "0 7 * * *"}, false},
		{"empty kind", Spec{}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.spec.Projectable(); got != test.want {
				t.Errorf("Projectable() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestSpecSummary(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want string
	}{
		{"cron", Spec{Kind: KindCron, Expression: "*/5 * * * *"}, "*/5 * * * *"},
		{"cron with timezone", Spec{Kind: KindCron, Expression: "0 9 * * 1", Timezone: "Europe/Berlin"}, "0 9 * * 1 (Europe/Berlin)"},
		{"manual", Spec{Kind: KindManual}, "manual"},
		{"unknown kind", Spec{Kind: "interval"}, "interval"},
		{"empty", Spec{}, "unscheduled"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.spec.Summary(); got != test.want {
				t.Errorf("Summary() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestJobDecodesToolJSON(t *testing.T) {
	payload := `{
		"id": "job-7f3a",
		"name": "Morning standup notes",
		"agent": "agent-red",
		"enabled": true,
		"schedule": {"kind": "cron", "expression": "30 8 * * 1-5", "timezone": "America/New_York"},
		"prompt": "Summarize overnight activity.",
		"lastRun": {"status": "success", "state": "idle", "at": "2026-02-09T08:30:12Z"}
	}`

	var decoded Job
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.ID != "job-7f3a" {
		t.Errorf("ID = %q, want %q", decoded.ID, "job-7f3a")
	}
	if !decoded.Enabled {
		t.Error("Enabled = false, want true")
	}
	if decoded.Schedule.Kind != KindCron {
		t.Errorf("Schedule.Kind = %q, want %q", decoded.Schedule.Kind, KindCron)
	}
	if decoded.Schedule.Timezone != "America/New_York" {
		t.Errorf("Schedule.Timezone = %q, want %q", decoded.Schedule.Timezone, "America/New_York")
	}
	if decoded.LastRun == nil {
		t.Fatal("LastRun = nil, want record")
	}
	if decoded.LastRun.Status != "success" {
		t.Errorf("LastRun.Status = %q, want %q", decoded.LastRun.Status, "success")
	}
	if decoded.LastRun.At.IsZero() {
		t.Error("LastRun.At is zero, want parsed timestamp")
	}
}

func TestJobDecodesUnknownScheduleKind(t *testing.T) {
	payload := `{"id": "job-9", "schedule": {"kind": "webhook", "endpoint": "ignored"}}`

	var decoded Job
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if decoded.Schedule.Kind != "webhook" {
		t.Errorf("Schedule.Kind = %q, want %q", decoded.Schedule.Kind, "webhook")
	}
	if decoded.Schedule.Projectable() {
		t.Error("Projectable() = true for unknown kind, want false")
	}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/cronview/cronview/lib/schedule"
	"github.com/cronview/cronview/lib/schema/job"
)

func agendaFixture() schedule.Agenda {
	reportJob := job.Job{ID: "nightly-report", Name: "Nightly report", Agent: "agent-red"}
	syncJob := job.Job{ID: "hourly-sync", Name: "Hourly sync", Agent: "agent-blue"}

	day1 := time.Date(2026, 2, 16, 7, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 17, 9, 30, 0, 0, time.UTC)

	return schedule.Agenda{
		Days: []schedule.DayGroup{
			{
				Date:    "2026-02-16",
				Heading: "Today",
				Runs: []schedule.Run{
					{At: day1, Job: reportJob},
					{At: day1.Add(time.Hour), Job: syncJob, Capped: true},
				},
			},
			{
				Date:    "2026-02-17",
				Heading: "Tomorrow",
				Runs: []schedule.Run{
					{At: day2, Job: reportJob},
				},
			},
		},
		Total: 3,
	}
}

func strippedLines(lines []string) []string {
	stripped := make([]string, len(lines))
	for index, line := range lines {
		stripped[index] = ansi.Strip(line)
	}
	return stripped
}

func TestRenderAgendaLinesEmpty(t *testing.T) {
	lines := renderAgendaLines(DefaultTheme, schedule.Agenda{}, nil, time.UTC, 80)
	if lines != nil {
		t.Errorf("empty agenda should render no lines, got %d", len(lines))
	}
}

func TestRenderAgendaLinesStructure(t *testing.T) {
	agents := map[string]string{"agent-red": "claude-sonnet"}
	lines := strippedLines(renderAgendaLines(DefaultTheme, agendaFixture(), agents, time.UTC, 100))

	// Heading, two runs, spacer, heading, one run.
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "Today") {
		t.Errorf("first line should be the Today heading, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "07:00") || !strings.Contains(lines[1], "Nightly report") {
		t.Errorf("run row should show time and name, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "agent-red → claude-sonnet") {
		t.Errorf("run row should show the resolved agent, got %q", lines[1])
	}
	if strings.TrimSpace(lines[3]) != "" {
		t.Errorf("days should be separated by a blank line, got %q", lines[3])
	}
	if !strings.Contains(lines[4], "Tomorrow") {
		t.Errorf("second heading should be Tomorrow, got %q", lines[4])
	}
	if !strings.Contains(lines[5], "09:30") {
		t.Errorf("second day's run should show its time, got %q", lines[5])
	}
}

func TestRenderAgendaCappedRunMarker(t *testing.T) {
	lines := strippedLines(renderAgendaLines(DefaultTheme, agendaFixture(), nil, time.UTC, 100))

	// The hourly run carries the per-job reduction marker; the
	// nightly one does not.
	if !strings.Contains(lines[2], "+") {
		t.Errorf("reduced run should carry a + marker, got %q", lines[2])
	}
	if strings.Contains(lines[1], "+") {
		t.Errorf("unreduced run should not carry a marker, got %q", lines[1])
	}
}

func TestRenderAgendaGlobalCapNotice(t *testing.T) {
	agenda := agendaFixture()
	agenda.Capped = true
	agenda.Total = 300

	lines := strippedLines(renderAgendaLines(DefaultTheme, agenda, nil, time.UTC, 100))
	last := lines[len(lines)-1]
	if !strings.Contains(last, "showing first 3 of 300 runs") {
		t.Errorf("capped agenda should end with the trim notice, got %q", last)
	}
	if strings.TrimSpace(lines[len(lines)-2]) != "" {
		t.Error("trim notice should be separated by a blank line")
	}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cronview/cronview/lib/schedule"
)

// agendaNameWidth caps the name column so the agent column starts at a
// stable offset on wide terminals.
const agendaNameWidth = 36

// renderAgendaLines renders the agenda as a flat list of styled lines:
// one heading per day, one row per run beneath it, a blank spacer
// between days, and a trailing notice when the run list was trimmed at
// the global cap. The model scrolls this list by line.
func renderAgendaLines(theme Theme, agenda schedule.Agenda, agents map[string]string, location *time.Location, width int) []string {
	clamp := lipgloss.NewStyle().Width(width).MaxWidth(width)

	if len(agenda.Days) == 0 {
		return nil
	}

	var lines []string
	for dayIndex, day := range agenda.Days {
		if dayIndex > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, clamp.Render(renderDayHeading(theme, day.Heading)))
		for _, run := range day.Runs {
			lines = append(lines, clamp.Render(renderAgendaRow(theme, run, agents, location)))
		}
	}

	if agenda.Capped {
		shown := 0
		for _, day := range agenda.Days {
			shown += len(day.Runs)
		}
		notice := lipgloss.NewStyle().
			Foreground(theme.NoticeWarn).
			Render(fmt.Sprintf(" showing first %d of %d runs", shown, agenda.Total))
		lines = append(lines, "", clamp.Render(notice))
	}

	return lines
}

// renderDayHeading renders a day heading line. "Today" stands out;
// other days use the regular heading color.
func renderDayHeading(theme Theme, heading string) string {
	style := lipgloss.NewStyle().Foreground(theme.DayHeading).Bold(true)
	if heading == "Today" {
		style = style.Foreground(theme.TodayHeading)
	}
	return style.Render(" " + heading)
}

// renderAgendaRow renders one run: clock time, a cap marker when the
// job's own projection was cut short, the job name, and the agent.
//
//	  09:00  Nightly report      agent-red → claude-sonnet
//	  11:30+ Chatty sync         agent-blue
func renderAgendaRow(theme Theme, run schedule.Run, agents map[string]string, location *time.Location) string {
	timeStyle := lipgloss.NewStyle().Foreground(theme.RunTime)
	marker := " "
	if run.Capped {
		marker = lipgloss.NewStyle().Foreground(theme.CappedMarker).Render("+")
	}

	name := run.Job.DisplayName()
	if lipgloss.Width(name) > agendaNameWidth-1 {
		name = truncateString(name, agendaNameWidth-2) + "…"
	}
	nameRendered := padCell(
		lipgloss.NewStyle().Foreground(theme.NormalText).Render(name),
		agendaNameWidth)

	agent := agentLabel(run.Job, agents)
	agentRendered := ""
	if agent != "" {
		agentRendered = lipgloss.NewStyle().Foreground(theme.FaintText).Render(agent)
	}

	return "  " + timeStyle.Render(formatClockTime(run.At, location)) + marker + " " +
		nameRendered + agentRendered
}

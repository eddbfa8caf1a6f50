// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cronview/cronview/lib/schedule"
)

// weekStackThreshold is the terminal width below which the week view
// falls back from seven side-by-side columns to stacked day sections.
const weekStackThreshold = 98

// renderWeekLines renders the week as a flat list of styled lines.
// Wide terminals get seven day columns joined horizontally; narrow
// ones get stacked day sections like the agenda. The model scrolls
// this list by line.
func renderWeekLines(theme Theme, week schedule.Week, agents map[string]string, now time.Time, location *time.Location, width int) []string {
	todayKey := now.In(location).Format("2006-01-02")

	var lines []string
	if width >= weekStackThreshold {
		lines = renderWeekColumns(theme, week, location, width, todayKey)
	} else {
		lines = renderWeekStacked(theme, week, agents, location, width, todayKey)
	}

	if week.Capped {
		shown := 0
		for _, day := range week.Days {
			shown += len(day.Runs)
		}
		notice := lipgloss.NewStyle().
			Foreground(theme.NoticeWarn).
			Render(fmt.Sprintf(" showing first %d of %d runs", shown, week.Total))
		lines = append(lines, "", notice)
	}

	return lines
}

// renderWeekColumns lays the seven days out side by side. Every column
// gets an equal share of the width; rows beyond the tallest day pad
// with blanks so the join stays rectangular.
func renderWeekColumns(theme Theme, week schedule.Week, location *time.Location, width int, todayKey string) []string {
	columnWidth := width/7 - 1
	if columnWidth < 12 {
		columnWidth = 12
	}

	columns := make([]string, 0, len(week.Days))
	for _, day := range week.Days {
		columns = append(columns, renderWeekColumn(theme, day, location, columnWidth, todayKey))
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, columns...)
	return strings.Split(joined, "\n")
}

// renderWeekColumn renders one day as a fixed-width column: heading
// on top, one line per run, or a dim placeholder when the day is
// empty.
func renderWeekColumn(theme Theme, day schedule.WeekDay, location *time.Location, columnWidth int, todayKey string) string {
	cell := lipgloss.NewStyle().Width(columnWidth).MaxWidth(columnWidth)

	headingStyle := lipgloss.NewStyle().Foreground(theme.DayHeading).Bold(true)
	if day.Date == todayKey {
		headingStyle = headingStyle.Foreground(theme.TodayHeading)
	}

	lines := []string{cell.Render(headingStyle.Render(day.Heading))}
	if len(day.Runs) == 0 {
		placeholder := lipgloss.NewStyle().Foreground(theme.EmptyDayMarker).Render("—")
		return strings.Join(append(lines, cell.Render(placeholder)), "\n")
	}

	timeStyle := lipgloss.NewStyle().Foreground(theme.RunTime)
	nameStyle := lipgloss.NewStyle().Foreground(theme.NormalText)
	nameWidth := columnWidth - 6
	for _, run := range day.Runs {
		name := run.Job.DisplayName()
		if lipgloss.Width(name) > nameWidth {
			name = truncateString(name, nameWidth-1) + "…"
		}
		marker := " "
		if run.Capped {
			marker = lipgloss.NewStyle().Foreground(theme.CappedMarker).Render("+")
		}
		line := timeStyle.Render(formatClockTime(run.At, location)) + marker + nameStyle.Render(name)
		lines = append(lines, cell.Render(line))
	}

	return strings.Join(lines, "\n")
}

// renderWeekStacked renders the seven days vertically, one section per
// day, sharing the agenda's row format.
func renderWeekStacked(theme Theme, week schedule.Week, agents map[string]string, location *time.Location, width int, todayKey string) []string {
	clamp := lipgloss.NewStyle().Width(width).MaxWidth(width)

	var lines []string
	for dayIndex, day := range week.Days {
		if dayIndex > 0 {
			lines = append(lines, "")
		}
		heading := day.Heading
		if day.Date == todayKey {
			heading += " · today"
		}
		headingStyle := lipgloss.NewStyle().Foreground(theme.DayHeading).Bold(true)
		if day.Date == todayKey {
			headingStyle = headingStyle.Foreground(theme.TodayHeading)
		}
		lines = append(lines, clamp.Render(headingStyle.Render(" "+heading)))

		if len(day.Runs) == 0 {
			placeholder := lipgloss.NewStyle().Foreground(theme.EmptyDayMarker).Render("  —")
			lines = append(lines, clamp.Render(placeholder))
			continue
		}
		for _, run := range day.Runs {
			lines = append(lines, clamp.Render(renderAgendaRow(theme, run, agents, location)))
		}
	}

	return lines
}

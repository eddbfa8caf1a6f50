// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cronview/cronview/lib/schema/job"
)

// Column widths for the jobs table. The name column fills remaining
// space; all others are fixed.
const (
	columnWidthMarker   = 3  // " ● "
	columnWidthSchedule = 24 // cron expression + timezone suffix
	columnWidthAgent    = 26 // "agent-red → claude-sonnet"
	columnWidthBadge    = 11 // "✓ 12h ago"
)

// ListRenderer handles the table-style rendering of job rows within a
// given width.
type ListRenderer struct {
	theme Theme
	width int
}

// NewListRenderer creates a ListRenderer for the given width.
func NewListRenderer(theme Theme, width int) ListRenderer {
	return ListRenderer{theme: theme, width: width}
}

// nameWidth returns the space left for the name column after the
// fixed columns. Clamped so degenerate widths still render something.
func (renderer ListRenderer) nameWidth() int {
	width := renderer.width - columnWidthMarker - columnWidthSchedule - columnWidthAgent - columnWidthBadge
	if width < 10 {
		width = 10
	}
	return width
}

// RenderRow renders a single job as a formatted table row. The
// matchPositions parameter contains rune indices in the display name
// that matched the current fuzzy filter query; when non-nil, those
// characters are highlighted.
//
// Row layout: marker + name + schedule + agent/model + last-run badge:
//
//	● Nightly report      0 7 * * * (UTC)    agent-red → claude-s   ✓ 2h ago
//	○ Weekly digest       0 9 * * 1          agent-blue             ✗ 3d ago
func (renderer ListRenderer) RenderRow(candidate job.Job, agents map[string]string, now time.Time, selected bool, matchPositions []int) string {
	name := candidate.DisplayName()
	nameWidth := renderer.nameWidth()
	truncated := name
	if lipgloss.Width(truncated) > nameWidth-1 {
		truncated = truncateString(truncated, nameWidth-2) + "…"
	}

	if selected {
		return renderer.renderSelectedRow(candidate, agents, now, truncated, name, matchPositions)
	}
	return renderer.renderNormalRow(candidate, agents, now, truncated, name, matchPositions)
}

// renderNormalRow renders a row with per-component foreground colors
// on the default terminal background. Disabled jobs render entirely
// faint so the enabled ones stand out.
func (renderer ListRenderer) renderNormalRow(candidate job.Job, agents map[string]string, now time.Time, truncatedName, fullName string, matchPositions []int) string {
	markerColor := renderer.theme.EnabledMarker
	marker := "●"
	if !candidate.Enabled {
		markerColor = renderer.theme.DisabledMarker
		marker = "○"
	}
	markerStyle := lipgloss.NewStyle().Foreground(markerColor)

	nameColor := renderer.theme.NormalText
	scheduleColor := renderer.theme.ScheduleText
	agentColor := renderer.theme.FaintText
	if !candidate.Enabled {
		nameColor = renderer.theme.FaintText
		scheduleColor = renderer.theme.FaintText
	}

	nameStyle := lipgloss.NewStyle().
		Width(renderer.nameWidth()).
		Foreground(nameColor)

	var nameRendered string
	if len(matchPositions) > 0 {
		highlightStyle := lipgloss.NewStyle().
			Foreground(nameColor).
			Background(renderer.theme.MatchBackground)
		nameRendered = padCell(
			highlightName(truncatedName, fullName, matchPositions,
				lipgloss.NewStyle().Foreground(nameColor), highlightStyle),
			renderer.nameWidth())
	} else {
		nameRendered = nameStyle.Render(truncatedName)
	}

	scheduleStyle := lipgloss.NewStyle().
		Width(columnWidthSchedule).
		Foreground(scheduleColor)
	agentStyle := lipgloss.NewStyle().
		Width(columnWidthAgent).
		Foreground(agentColor)

	badge := lastRunBadge(candidate.LastRun, now)
	var badgeRendered string
	if badge != "" && candidate.LastRun != nil {
		badgeRendered = lipgloss.NewStyle().
			Foreground(renderer.theme.RunStatusColor(candidate.LastRun.Status, candidate.LastRun.State)).
			Render(badge)
	}

	row := " " + markerStyle.Render(marker) + " " +
		nameRendered +
		scheduleStyle.Render(truncateString(candidate.Schedule.Summary(), columnWidthSchedule-1)) +
		agentStyle.Render(truncateString(agentLabel(candidate, agents), columnWidthAgent-1)) +
		badgeRendered

	return lipgloss.NewStyle().Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// renderSelectedRow renders the selected row with a highlight
// background. All text uses the selected foreground color; fuzzy
// matches pop with bold+underline since a background tint would be
// invisible against the selection highlight.
func (renderer ListRenderer) renderSelectedRow(candidate job.Job, agents map[string]string, now time.Time, truncatedName, fullName string, matchPositions []int) string {
	baseStyle := lipgloss.NewStyle().
		Background(renderer.theme.SelectedBackground).
		Foreground(renderer.theme.SelectedForeground)

	marker := "●"
	if !candidate.Enabled {
		marker = "○"
	}

	var nameRendered string
	if len(matchPositions) > 0 {
		highlightStyle := baseStyle.Bold(true).Underline(true)
		nameRendered = padCell(
			highlightName(truncatedName, fullName, matchPositions, baseStyle, highlightStyle),
			renderer.nameWidth())
	} else {
		nameRendered = baseStyle.Width(renderer.nameWidth()).Render(truncatedName)
	}

	badge := lastRunBadge(candidate.LastRun, now)

	row := " " + baseStyle.Render(marker) + " " +
		nameRendered +
		baseStyle.Width(columnWidthSchedule).Render(truncateString(candidate.Schedule.Summary(), columnWidthSchedule-1)) +
		baseStyle.Width(columnWidthAgent).Render(truncateString(agentLabel(candidate, agents), columnWidthAgent-1)) +
		baseStyle.Render(badge)

	return baseStyle.Width(renderer.width).MaxWidth(renderer.width).Render(row)
}

// padCell pads a styled string with plain spaces to the given visual
// width. Used for cells whose content carries mixed styles, where a
// single lipgloss Width render would restyle the whole cell.
func padCell(styled string, width int) string {
	gap := width - lipgloss.Width(styled)
	if gap <= 0 {
		return styled
	}
	return styled + strings.Repeat(" ", gap)
}

// highlightName renders a possibly-truncated display name with
// character-level highlighting at the given rune positions. Positions
// index into the full name; characters at matched positions use
// highlightStyle, all others baseStyle. Consecutive runs of same-style
// characters are batched into a single Render call to keep ANSI
// output compact.
func highlightName(truncatedName, fullName string, positions []int, baseStyle, highlightStyle lipgloss.Style) string {
	if len(positions) == 0 {
		return baseStyle.Render(truncatedName)
	}

	positionSet := make(map[int]bool, len(positions))
	for _, position := range positions {
		positionSet[position] = true
	}

	runes := []rune(truncatedName)
	limit := len(runes)
	if truncatedName != fullName {
		// Trailing ellipsis added during truncation is not part of
		// the original name and never highlights.
		limit--
	}

	var result strings.Builder
	runStart := 0
	isHighlighted := limit > 0 && positionSet[0]

	for index := 1; index <= len(runes); index++ {
		currentHighlighted := index < limit && positionSet[index]
		if currentHighlighted != isHighlighted || index == len(runes) {
			chunk := string(runes[runStart:index])
			if isHighlighted {
				result.WriteString(highlightStyle.Render(chunk))
			} else {
				result.WriteString(baseStyle.Render(chunk))
			}
			runStart = index
			isHighlighted = currentHighlighted
		}
	}

	return result.String()
}

// truncateString truncates a string to maxWidth visual characters.
// Handles multi-byte characters correctly via lipgloss width
// measurement.
func truncateString(text string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length])
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}

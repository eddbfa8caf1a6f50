// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the dashboard. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover universal chrome (text, selection, borders) and the
// semantic categories of the job domain: enabled state, schedule kind,
// and last-run outcome.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// Job enabled state.
	EnabledMarker  lipgloss.Color
	DisabledMarker lipgloss.Color

	// Last-run outcome.
	RunSuccess lipgloss.Color
	RunError   lipgloss.Color
	RunActive  lipgloss.Color

	// Schedule text (cron expressions, kind labels).
	ScheduleText lipgloss.Color

	// Agenda and week chrome.
	DayHeading     lipgloss.Color // Day heading rows and week column headers.
	TodayHeading   lipgloss.Color // The current day's heading.
	CappedMarker   lipgloss.Color // The "+" marker on reduced projections.
	RunTime        lipgloss.Color // The HH:MM column.
	EmptyDayMarker lipgloss.Color // Placeholder for week days without runs.

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color // Focused scrollbar thumb, active filter cursor.

	// Filter match highlighting.
	MatchBackground lipgloss.Color

	// Status bar log notices.
	NoticeWarn  lipgloss.Color
	NoticeError lipgloss.Color
}

// RunStatusColor returns the color for a last-run record. Running jobs
// take the active color regardless of the previous outcome; otherwise
// the terminal status decides. Unknown values render faint.
func (theme Theme) RunStatusColor(status, state string) lipgloss.Color {
	if state == "running" {
		return theme.RunActive
	}
	switch status {
	case "success", "ok":
		return theme.RunSuccess
	case "error", "failed":
		return theme.RunError
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed for
// 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	EnabledMarker:  lipgloss.Color("114"), // green
	DisabledMarker: lipgloss.Color("240"), // dim gray

	RunSuccess: lipgloss.Color("114"), // green
	RunError:   lipgloss.Color("196"), // red
	RunActive:  lipgloss.Color("220"), // amber

	ScheduleText: lipgloss.Color("75"), // blue

	DayHeading:     lipgloss.Color("255"),
	TodayHeading:   lipgloss.Color("220"), // amber
	CappedMarker:   lipgloss.Color("208"), // orange
	RunTime:        lipgloss.Color("252"),
	EmptyDayMarker: lipgloss.Color("240"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("220"), // amber

	MatchBackground: lipgloss.Color("58"), // dark amber

	NoticeWarn:  lipgloss.Color("220"),
	NoticeError: lipgloss.Color("196"),
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the dashboard TUI.
type KeyMap struct {
	// Navigation (context-sensitive: list movement on the Jobs tab,
	// content scrolling on Agenda and Week, detail scrolling when the
	// detail overlay is open).
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Tab switching.
	TabJobs     key.Binding
	TabAgenda   key.Binding
	TabWeek     key.Binding
	TabNext     key.Binding
	TabPrevious key.Binding

	// Filter.
	FilterActivate key.Binding // Enter filter mode.
	FilterClear    key.Binding // Clear filter / close detail overlay.
	EnabledOnly    key.Binding // Toggle the enabled-only filter.

	// View controls.
	CycleWeekStart key.Binding // Rotate the week grid's first day.
	Refresh        key.Binding // Recapture now and recompute.
	Detail         key.Binding // Open the detail overlay for the selected job.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside standard arrow keys and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	TabJobs: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "jobs"),
	),
	TabAgenda: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "agenda"),
	),
	TabWeek: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "week"),
	),
	TabNext: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "next tab"),
	),
	TabPrevious: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("S-Tab", "previous tab"),
	),
	FilterActivate: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	FilterClear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "clear"),
	),
	EnabledOnly: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "enabled only"),
	),
	CycleWeekStart: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "week start"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter", "d"),
		key.WithHelp("Enter", "detail"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

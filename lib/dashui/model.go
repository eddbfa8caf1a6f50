// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cronview/cronview/lib/clock"
	"github.com/cronview/cronview/lib/jobsource"
	"github.com/cronview/cronview/lib/schedule"
	"github.com/cronview/cronview/lib/schema/job"
)

// Tab identifies which view is active.
type Tab int

const (
	// TabJobs shows the job table with selection.
	TabJobs Tab = iota
	// TabAgenda shows the coming week as a day-by-day run list.
	TabAgenda
	// TabWeek shows the current week as seven day columns.
	TabWeek
)

// FocusRegion identifies where keyboard input routes.
type FocusRegion int

const (
	// FocusList means navigation keys move the job cursor or scroll
	// the agenda and week views.
	FocusList FocusRegion = iota
	// FocusFilter means keystrokes go to the filter input.
	FocusFilter
	// FocusDetail means navigation keys scroll the detail overlay.
	FocusDetail
)

// sourceEventMsg wraps a job source Event for delivery through the
// bubbletea message loop.
type sourceEventMsg struct {
	event jobsource.Event
}

// refreshTickMsg fires on the periodic refresh interval so the agenda
// window slides and past week runs drop without user input.
type refreshTickMsg struct{}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	source    jobsource.Source
	evaluator schedule.Evaluator
	clock     clock.Clock
	agents    map[string]string
	theme     Theme
	keys      KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	activeTab   Tab
	focusRegion FocusRegion
	priorFocus  FocusRegion // Saved focus when entering filter mode.
	filter      FilterModel

	// Display settings.
	location  *time.Location
	weekStart time.Weekday
	refresh   time.Duration

	// Cached snapshot and the instant of the last recompute. Every
	// view derives from these two plus the filter.
	jobs []job.Job
	now  time.Time

	// Derived state, rebuilt by recompute: the filtered job list, the
	// fuzzy match positions keyed by job ID, and both projections.
	visible        []job.Job
	nameHighlights map[string][]int
	agenda         schedule.Agenda
	week           schedule.Week

	// Pre-rendered lines for the scrolling tabs, rebuilt on recompute
	// and resize.
	agendaLines []string
	weekLines   []string

	// List state. cursor indexes visible on the Jobs tab;
	// scrollOffset is the top row (Jobs) or top line (Agenda, Week).
	cursor       int
	scrollOffset int
	selectedID   string // Stable focus: track selection by job ID.

	detail DetailOverlay

	// Source health shown in the status bar.
	sourceErr   string
	lastRefresh time.Time

	eventChannel <-chan jobsource.Event

	// Tab bar click regions: each maps a tab label to its X range in
	// the header line so mouse clicks on Y=0 switch tabs.
	tabHitRanges []tabHitRange

	// Transient log message from the slog handler, cleared by fade.
	logNotice      string
	logNoticeLevel slog.Level
}

// tabHitRange maps a horizontal span in the header to a tab.
type tabHitRange struct {
	startX int // Inclusive.
	endX   int // Exclusive.
	tab    Tab
}

// Options carries the display configuration for NewModel.
type Options struct {
	// Agents maps agent identifiers to model names for display.
	Agents map[string]string

	// Location is the display timezone. Nil means time.Local.
	Location *time.Location

	// WeekStart anchors the week view.
	WeekStart time.Weekday

	// Refresh is the periodic recompute interval. Zero or negative
	// disables the tick.
	Refresh time.Duration
}

// NewModel creates a Model reading from the given job source. The
// clock supplies every "now" so tests can drive time.
func NewModel(source jobsource.Source, evaluator schedule.Evaluator, clk clock.Clock, options Options) Model {
	location := options.Location
	if location == nil {
		location = time.Local
	}

	model := Model{
		source:       source,
		evaluator:    evaluator,
		clock:        clk,
		agents:       options.Agents,
		theme:        DefaultTheme,
		keys:         DefaultKeyMap,
		activeTab:    TabJobs,
		location:     location,
		weekStart:    options.WeekStart,
		refresh:      options.Refresh,
		jobs:         source.Snapshot(),
		detail:       NewDetailOverlay(DefaultTheme),
		eventChannel: source.Subscribe(),
	}

	model.recompute()
	if len(model.visible) > 0 {
		model.cursor = 0
		model.selectedID = model.visible[0].ID
	}

	return model
}

// Init implements tea.Model. Starts the source event listener and the
// periodic refresh tick.
func (model Model) Init() tea.Cmd {
	var commands []tea.Cmd
	if model.eventChannel != nil {
		commands = append(commands, listenForSourceEvent(model.eventChannel))
	}
	if model.refresh > 0 {
		commands = append(commands, scheduleRefreshTick(model.clock, model.refresh))
	}
	if len(commands) == 0 {
		return nil
	}
	return tea.Batch(commands...)
}

// listenForSourceEvent returns a tea.Cmd that blocks until an event
// arrives on the source channel, then delivers it as a sourceEventMsg.
func listenForSourceEvent(channel <-chan jobsource.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return sourceEventMsg{event: event}
	}
}

// scheduleRefreshTick returns a tea.Cmd that waits one refresh
// interval on the injected clock, then delivers a refreshTickMsg.
// Using the clock rather than tea.Tick lets tests advance time.
func scheduleRefreshTick(clk clock.Clock, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		<-clk.After(interval)
		return refreshTickMsg{}
	}
}

// scheduleLogFade returns a tea.Cmd that clears the status bar log
// notice after the fade delay.
func scheduleLogFade(clk clock.Clock) tea.Cmd {
	return func() tea.Msg {
		<-clk.After(logRecordFadeDelay)
		return logRecordFadeMsg{}
	}
}

// Update implements tea.Model. Routes keyboard events by focus region
// and handles source events, ticks, and layout changes.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		// When the filter input has focus, every key goes to it except
		// Esc, Enter, and ctrl+c.
		if model.focusRegion == FocusFilter {
			return model.handleFilterKeys(message)
		}
		// When the detail overlay is open, keys scroll it.
		if model.focusRegion == FocusDetail {
			return model.handleDetailKeys(message)
		}

		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.TabJobs):
			model.switchTab(TabJobs)

		case key.Matches(message, model.keys.TabAgenda):
			model.switchTab(TabAgenda)

		case key.Matches(message, model.keys.TabWeek):
			model.switchTab(TabWeek)

		case key.Matches(message, model.keys.TabNext):
			model.switchTab((model.activeTab + 1) % 3)

		case key.Matches(message, model.keys.TabPrevious):
			model.switchTab((model.activeTab + 2) % 3)

		case key.Matches(message, model.keys.FilterActivate):
			model.priorFocus = model.focusRegion
			model.focusRegion = FocusFilter
			model.filter.Active = true
			// Snap to the top so results appear from the beginning
			// as the user types.
			model.cursor = 0
			model.scrollOffset = 0

		case key.Matches(message, model.keys.FilterClear):
			if model.filter.Input != "" {
				model.filter.Clear()
				model.refreshViews()
			}

		case key.Matches(message, model.keys.EnabledOnly):
			model.filter.EnabledOnly = !model.filter.EnabledOnly
			model.refreshViews()

		case key.Matches(message, model.keys.CycleWeekStart):
			model.weekStart = (model.weekStart + 1) % 7
			model.refreshViews()

		case key.Matches(message, model.keys.Refresh):
			model.forceRefresh()

		case key.Matches(message, model.keys.Detail):
			model.openDetail()

		default:
			model.handleListKeys(message)
		}

	case tea.MouseMsg:
		model.handleMouse(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.computeTabHitRanges()
		model.detail.SetSize(message.Width, message.Height)
		model.rebuildLines()
		model.ensureCursorVisible()

	case sourceEventMsg:
		return model.handleSourceEvent(message)

	case refreshTickMsg:
		model.refreshViews()
		if model.refresh > 0 {
			return model, scheduleRefreshTick(model.clock, model.refresh)
		}

	case logRecordMsg:
		model.logNotice = message.Summary
		model.logNoticeLevel = message.Level
		return model, scheduleLogFade(model.clock)

	case logRecordFadeMsg:
		model.logNotice = ""
	}
	return model, nil
}

// contentStartY returns the Y coordinate where the content area
// begins. The top chrome is always exactly one row: the tab bar, or
// the filter bar replacing it while the filter is active.
func (model Model) contentStartY() int {
	return 1
}

// visibleHeight returns the rows available for content between the
// top chrome and the bottom separator plus help bar.
func (model Model) visibleHeight() int {
	return model.height - model.contentStartY() - 2
}

// handleSourceEvent applies a snapshot or error from the source. New
// snapshots replace the job list wholesale; errors keep the previous
// list on screen and surface in the status bar.
func (model Model) handleSourceEvent(message sourceEventMsg) (tea.Model, tea.Cmd) {
	event := message.event
	if event.Err != nil {
		model.sourceErr = event.Err.Error()
	} else {
		model.jobs = event.Jobs
		model.sourceErr = ""
		model.lastRefresh = model.clock.Now()
	}
	model.refreshViews()

	if model.eventChannel == nil {
		return model, nil
	}
	return model, listenForSourceEvent(model.eventChannel)
}

// forceRefresh re-reads the source snapshot and recomputes.
func (model *Model) forceRefresh() {
	model.jobs = model.source.Snapshot()
	model.sourceErr = ""
	model.lastRefresh = model.clock.Now()
	model.refreshViews()
}

// recompute rebuilds every derived view from the cached snapshot: the
// filtered job list, the agenda, the week, and their rendered lines.
// Recaptures now from the clock so projection windows slide.
func (model *Model) recompute() {
	model.now = model.clock.Now()

	results := model.filter.Apply(model.jobs, model.agents)
	model.visible = make([]job.Job, len(results))
	model.nameHighlights = make(map[string][]int, len(results))
	for index, result := range results {
		model.visible[index] = result.Job
		if len(result.NamePositions) > 0 {
			model.nameHighlights[result.Job.ID] = result.NamePositions
		}
	}

	model.agenda = schedule.BuildAgenda(model.evaluator, model.visible, model.now, model.location)
	model.week = schedule.BuildWeek(model.evaluator, model.visible, model.now, model.weekStart, model.location)
	model.rebuildLines()
}

// rebuildLines re-renders the agenda and week tabs at the current
// width. Separate from recompute so a bare resize does not recapture
// now.
func (model *Model) rebuildLines() {
	if !model.ready {
		return
	}
	width := model.width - 1 // Reserve the scrollbar column.
	model.agendaLines = renderAgendaLines(model.theme, model.agenda, model.agents, model.location, width)
	model.weekLines = renderWeekLines(model.theme, model.week, model.agents, model.now, model.location, width)
}

// refreshViews recomputes and restores the selection.
func (model *Model) refreshViews() {
	model.recompute()
	model.restoreSelection()
	model.ensureCursorVisible()
}

// applyFilter re-filters after a filter text change. While there is
// query text the cursor snaps to the top so the highest-scored match
// is selected.
func (model *Model) applyFilter() {
	model.recompute()
	if model.filter.Input != "" {
		model.cursor = 0
		model.scrollOffset = 0
		if len(model.visible) > 0 {
			model.selectedID = model.visible[0].ID
		}
	} else {
		model.restoreSelection()
	}
	model.ensureCursorVisible()
}

// restoreSelection moves the cursor to the job recorded in
// selectedID, or clamps it when that job left the list.
func (model *Model) restoreSelection() {
	if model.selectedID == "" {
		model.cursor = 0
		return
	}
	for index, candidate := range model.visible {
		if candidate.ID == model.selectedID {
			model.cursor = index
			return
		}
	}
	model.cursor = model.clampedIndex(model.cursor)
}

// clampedIndex returns position clamped to valid job list bounds.
func (model *Model) clampedIndex(position int) int {
	if len(model.visible) == 0 {
		return 0
	}
	if position < 0 {
		return 0
	}
	if position >= len(model.visible) {
		return len(model.visible) - 1
	}
	return position
}

// switchTab changes the active tab and recomputes so the projection
// window reflects the switch instant. The filter carries across tabs.
func (model *Model) switchTab(tab Tab) {
	if model.activeTab == tab {
		return
	}
	model.activeTab = tab
	model.scrollOffset = 0
	model.refreshViews()
}

// activeLineCount returns the rendered line count of the current
// scrolling tab. Zero on the Jobs tab, which scrolls by row.
func (model Model) activeLineCount() int {
	switch model.activeTab {
	case TabAgenda:
		return len(model.agendaLines)
	case TabWeek:
		return len(model.weekLines)
	}
	return 0
}

// scrollLines moves the agenda or week scroll offset by delta,
// clamped to the rendered line count.
func (model *Model) scrollLines(delta int) {
	maxOffset := model.activeLineCount() - model.visibleHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	model.scrollOffset += delta
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// handleListKeys processes navigation on the active tab. The Jobs tab
// moves the cursor; Agenda and Week scroll by line.
func (model *Model) handleListKeys(message tea.KeyMsg) {
	if model.activeTab != TabJobs {
		half := model.visibleHeight() / 2
		if half < 1 {
			half = 1
		}
		switch {
		case key.Matches(message, model.keys.Up):
			model.scrollLines(-1)
		case key.Matches(message, model.keys.Down):
			model.scrollLines(1)
		case key.Matches(message, model.keys.PageUp):
			model.scrollLines(-half)
		case key.Matches(message, model.keys.PageDown):
			model.scrollLines(half)
		case key.Matches(message, model.keys.Home):
			model.scrollOffset = 0
		case key.Matches(message, model.keys.End):
			model.scrollLines(model.activeLineCount())
		}
		return
	}

	half := model.visibleHeight() / 2
	if half < 1 {
		half = 1
	}

	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.visible)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.PageUp):
		model.cursor = model.clampedIndex(model.cursor - half)
	case key.Matches(message, model.keys.PageDown):
		model.cursor = model.clampedIndex(model.cursor + half)
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		if len(model.visible) > 0 {
			model.cursor = len(model.visible) - 1
		}
	default:
		return
	}

	if model.cursor < len(model.visible) {
		model.selectedID = model.visible[model.cursor].ID
	}
	model.ensureCursorVisible()
}

// ensureCursorVisible adjusts scrollOffset so the Jobs cursor stays
// within the visible window. Also clamps after list shrinkage, such
// as a filter narrowing or a tab switch.
func (model *Model) ensureCursorVisible() {
	if model.activeTab != TabJobs {
		model.scrollLines(0)
		return
	}

	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}

	maxOffset := len(model.visible) - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if model.scrollOffset > maxOffset {
		model.scrollOffset = maxOffset
	}

	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}

// openDetail opens the overlay for the selected job. Only the Jobs
// tab has a row selection to inspect.
func (model *Model) openDetail() {
	if model.activeTab != TabJobs {
		return
	}
	if model.cursor < 0 || model.cursor >= len(model.visible) {
		return
	}
	model.detail.SetSize(model.width, model.height)
	model.detail.Open(model.visible[model.cursor], model.agents, model.evaluator, model.location, model.now)
	model.focusRegion = FocusDetail
}

// closeDetail dismisses the overlay and returns focus to the list.
func (model *Model) closeDetail() {
	model.detail.Close()
	model.focusRegion = FocusList
}

// handleFilterKeys processes keystrokes while the filter input has
// focus.
func (model Model) handleFilterKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		// ctrl+c always quits; 'q' is a regular character here.
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		model.filter.HandleRune('q')
		model.applyFilter()
		return model, nil

	case key.Matches(message, model.keys.FilterClear):
		// Esc: clear text first; a second Esc leaves filter mode.
		if model.filter.Input != "" {
			model.filter.Clear()
			model.applyFilter()
		} else {
			model.filter.Active = false
			model.focusRegion = model.priorFocus
		}
		return model, nil

	case message.Type == tea.KeyEnter:
		// Confirm the filter and return to the list.
		model.filter.Active = false
		model.focusRegion = FocusList
		return model, nil

	case message.Type == tea.KeyBackspace:
		if model.filter.HandleBackspace() {
			model.applyFilter()
		}
		return model, nil

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		for _, character := range message.Runes {
			model.filter.HandleRune(character)
		}
		model.applyFilter()
		return model, nil
	}

	return model, nil
}

// handleDetailKeys processes keys while the detail overlay is open.
func (model Model) handleDetailKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		if message.Type == tea.KeyCtrlC {
			return model, tea.Quit
		}
		// 'q' closes the overlay rather than quitting.
		model.closeDetail()

	case key.Matches(message, model.keys.FilterClear),
		key.Matches(message, model.keys.Detail):
		model.closeDetail()

	case key.Matches(message, model.keys.Up):
		model.detail.viewport.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.detail.viewport.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.detail.ScrollUp()
	case key.Matches(message, model.keys.PageDown):
		model.detail.ScrollDown()
	case key.Matches(message, model.keys.Home):
		model.detail.viewport.GotoTop()
	case key.Matches(message, model.keys.End):
		model.detail.viewport.GotoBottom()
	}

	return model, nil
}

// handleMouse routes mouse events: wheel scrolls whatever is under
// the cursor, clicks on the header switch tabs, clicks on job rows
// select them.
func (model *Model) handleMouse(message tea.MouseMsg) {
	if model.detail.HasJob() {
		switch message.Button {
		case tea.MouseButtonWheelUp:
			model.detail.viewport.LineUp(3)
		case tea.MouseButtonWheelDown:
			model.detail.viewport.LineDown(3)
		}
		return
	}

	contentStart := model.contentStartY()
	inContentArea := message.Y >= contentStart && message.Y < model.height-2

	switch message.Button {
	case tea.MouseButtonWheelUp:
		if !inContentArea {
			return
		}
		if model.activeTab == TabJobs {
			model.cursor = model.clampedIndex(model.cursor - 1)
			model.syncSelection()
			model.ensureCursorVisible()
		} else {
			model.scrollLines(-3)
		}

	case tea.MouseButtonWheelDown:
		if !inContentArea {
			return
		}
		if model.activeTab == TabJobs {
			model.cursor = model.clampedIndex(model.cursor + 1)
			model.syncSelection()
			model.ensureCursorVisible()
		} else {
			model.scrollLines(3)
		}

	case tea.MouseButtonLeft:
		if message.Action != tea.MouseActionPress {
			return
		}
		if message.Y == 0 {
			for _, hit := range model.tabHitRanges {
				if message.X >= hit.startX && message.X < hit.endX {
					model.switchTab(hit.tab)
					return
				}
			}
			return
		}
		if model.activeTab == TabJobs && inContentArea {
			index := model.scrollOffset + (message.Y - contentStart)
			if index >= 0 && index < len(model.visible) {
				model.cursor = index
				model.syncSelection()
			}
		}
	}
}

// syncSelection records the cursor's job ID for stable focus.
func (model *Model) syncSelection() {
	if model.cursor >= 0 && model.cursor < len(model.visible) {
		model.selectedID = model.visible[model.cursor].ID
	}
}

// tabDefs is the fixed tab list shared by the header renderer and the
// hit range computation.
var tabDefs = []struct {
	label string
	tab   Tab
}{
	{"1:Jobs", TabJobs},
	{"2:Agenda", TabAgenda},
	{"3:Week", TabWeek},
}

// computeTabHitRanges calculates the X span of each tab label in the
// header line. Called on resize so header clicks can switch tabs.
func (model *Model) computeTabHitRanges() {
	model.tabHitRanges = model.tabHitRanges[:0]
	cursor := 3 // Leading "───"

	for index, tabDef := range tabDefs {
		cursor++ // Space before label.
		labelStart := cursor
		cursor += lipgloss.Width(tabDef.label)

		model.tabHitRanges = append(model.tabHitRanges, tabHitRange{
			startX: labelStart,
			endX:   cursor,
			tab:    tabDef.tab,
		})

		cursor++ // Space after label.

		// Separator between tabs (3 chars) and after the last (1).
		if index == len(tabDefs)-1 {
			cursor++
		} else {
			cursor += 3
		}
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}

	if len(model.jobs) == 0 && model.filter.Input == "" && !model.filter.EnabledOnly {
		return model.renderEmpty()
	}

	var sections []string

	// Top chrome: the filter bar replaces the tab bar while active so
	// the layout never shifts.
	filterView := model.filter.View(model.theme, model.width)
	if filterView != "" {
		sections = append(sections, filterView)
	} else {
		sections = append(sections, model.renderHeader())
	}

	sections = append(sections, model.renderContent())

	separator := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor).
		Render(strings.Repeat("─", model.width))
	sections = append(sections, separator)

	sections = append(sections, model.renderHelp())

	output := strings.Join(sections, "\n")

	if model.detail.HasJob() {
		overlayLines := strings.Split(model.detail.View(), "\n")
		overlayWidth := 0
		if len(overlayLines) > 0 {
			overlayWidth = lipgloss.Width(overlayLines[0])
		}
		anchorX := (model.width - overlayWidth) / 2
		if anchorX < 0 {
			anchorX = 0
		}
		anchorY := (model.height - len(overlayLines)) / 2
		if anchorY < 1 {
			anchorY = 1
		}
		output = spliceOverlay(output, overlayLines, anchorX, anchorY)
	}

	return output
}

// renderContent renders the active tab's content area with its
// scrollbar column.
func (model Model) renderContent() string {
	visible := model.visibleHeight()
	if visible < 0 {
		visible = 0
	}
	rowWidth := model.width - 1 // Scrollbar column.
	focused := model.focusRegion == FocusList

	var lines []string
	var total int

	switch model.activeTab {
	case TabJobs:
		total = len(model.visible)
		renderer := NewListRenderer(model.theme, rowWidth)
		for index := model.scrollOffset; index < model.scrollOffset+visible && index < total; index++ {
			candidate := model.visible[index]
			lines = append(lines, renderer.RenderRow(
				candidate,
				model.agents,
				model.now,
				index == model.cursor,
				model.nameHighlights[candidate.ID]))
		}
		if total == 0 {
			notice := lipgloss.NewStyle().
				Foreground(model.theme.FaintText).
				Render(" No jobs match.")
			lines = append(lines, notice)
		}

	case TabAgenda:
		total = len(model.agendaLines)
		lines = model.windowedLines(model.agendaLines, visible)
		if total == 0 {
			notice := lipgloss.NewStyle().
				Foreground(model.theme.FaintText).
				Render(" No scheduled runs in the next 7 days.")
			lines = append(lines, notice)
		}

	case TabWeek:
		total = len(model.weekLines)
		lines = model.windowedLines(model.weekLines, visible)
	}

	for len(lines) < visible {
		lines = append(lines, "")
	}
	content := lipgloss.NewStyle().
		Width(rowWidth).
		MaxWidth(rowWidth).
		Render(strings.Join(lines, "\n"))

	scrollbar := renderScrollbar(model.theme, visible, total, visible, model.scrollOffset, focused)
	return lipgloss.JoinHorizontal(lipgloss.Top, content, scrollbar)
}

// windowedLines returns the visible slice of pre-rendered lines at
// the current scroll offset. Capacity is pinned so callers appending
// padding never write into the cached line array.
func (model Model) windowedLines(rendered []string, visible int) []string {
	if model.scrollOffset >= len(rendered) {
		return nil
	}
	end := model.scrollOffset + visible
	if end > len(rendered) {
		end = len(rendered)
	}
	return rendered[model.scrollOffset:end:end]
}

// renderEmpty renders the whole-screen empty state.
func (model Model) renderEmpty() string {
	text := "No jobs found."
	if model.sourceErr != "" {
		text = "Source error: " + model.sourceErr
	}

	messageStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	return lipgloss.Place(
		model.width, model.height,
		lipgloss.Center, lipgloss.Center,
		messageStyle.Render(text),
	)
}

// renderHeader renders the tab bar as labels embedded in a horizontal
// rule, with job counts on the right.
//
// Example: ─── 1:Jobs ─── 2:Agenda ─── 3:Week ────── 12 jobs  9 shown ─
func (model Model) renderHeader() string {
	separatorStyle := lipgloss.NewStyle().
		Foreground(model.theme.BorderColor)
	activeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(model.theme.HeaderForeground)
	inactiveStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)
	statsStyle := lipgloss.NewStyle().
		Foreground(model.theme.FaintText)

	sep := separatorStyle.Render("─")

	leftParts := sep + sep + sep // Leading "───"
	cursor := 3

	for index, tabDef := range tabDefs {
		leftParts += " "
		cursor++

		if model.activeTab == tabDef.tab {
			leftParts += activeStyle.Render(tabDef.label)
		} else {
			leftParts += inactiveStyle.Render(tabDef.label)
		}
		cursor += lipgloss.Width(tabDef.label)

		leftParts += " "
		cursor++

		sepCount := 3
		if index == len(tabDefs)-1 {
			sepCount = 1
		}
		for i := 0; i < sepCount; i++ {
			leftParts += sep
			cursor++
		}
	}

	enabled := 0
	for _, candidate := range model.jobs {
		if candidate.Enabled {
			enabled++
		}
	}
	statsText := fmt.Sprintf("%d jobs  %d enabled  %d shown",
		len(model.jobs), enabled, len(model.visible))
	statsRendered := statsStyle.Render(statsText)
	statsWidth := lipgloss.Width(statsText)

	rightPortion := " " + statsRendered + " " + sep
	rightWidth := 1 + statsWidth + 1 + 1

	fillCount := model.width - cursor - rightWidth
	if fillCount < 1 {
		fillCount = 1
	}
	fill := ""
	for i := 0; i < fillCount; i++ {
		fill += sep
	}

	return leftParts + fill + rightPortion
}

// renderHelp renders the bottom status bar: focus tag, key hints, the
// scroll position, the source state, and any transient log notice.
func (model Model) renderHelp() string {
	style := lipgloss.NewStyle().Foreground(model.theme.HelpText)

	focusIndicator := "LIST"
	switch model.focusRegion {
	case FocusFilter:
		focusIndicator = "FILTER"
	case FocusDetail:
		focusIndicator = "DETAIL"
	}

	help := fmt.Sprintf(" [%s] q quit  1/2/3 tabs  j/k move  / filter  e enabled  s week start  r refresh  d detail",
		focusIndicator)

	if model.filter.EnabledOnly {
		enabledStyle := lipgloss.NewStyle().
			Foreground(model.theme.NoticeWarn).
			Bold(true)
		help += "  " + enabledStyle.Render("enabled-only")
	}

	help += model.positionIndicator()

	if model.sourceErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(model.theme.NoticeError).
			Bold(true)
		help += "  " + errorStyle.Render("source: "+model.sourceErr)
	} else if !model.lastRefresh.IsZero() {
		help += fmt.Sprintf("  refreshed %s", model.lastRefresh.In(model.location).Format("15:04:05"))
	}

	if model.logNotice != "" {
		noticeColor := model.theme.HelpText
		switch {
		case model.logNoticeLevel >= slog.LevelError:
			noticeColor = model.theme.NoticeError
		case model.logNoticeLevel >= slog.LevelWarn:
			noticeColor = model.theme.NoticeWarn
		}
		noticeStyle := lipgloss.NewStyle().Foreground(noticeColor).Bold(true)
		help += "  " + noticeStyle.Render(model.logNotice)
	}

	return style.Render(help)
}

// positionIndicator formats the cursor or scroll position for the
// status bar.
func (model Model) positionIndicator() string {
	if model.activeTab == TabJobs {
		if len(model.visible) == 0 {
			return ""
		}
		return fmt.Sprintf("  %d/%d", model.cursor+1, len(model.visible))
	}

	total := model.activeLineCount()
	visible := model.visibleHeight()
	if total <= visible {
		return ""
	}
	switch {
	case model.scrollOffset == 0:
		return "  [top]"
	case model.scrollOffset+visible >= total:
		return "  [bottom]"
	default:
		percent := float64(model.scrollOffset) / float64(total-visible) * 100
		return fmt.Sprintf("  [%d%%]", int(percent))
	}
}

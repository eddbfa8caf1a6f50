// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/cronview/cronview/lib/schedule"
	"github.com/cronview/cronview/lib/schema/job"
)

// detailNextRunCount caps the next-runs section of the detail overlay.
const detailNextRunCount = 8

// detailHeaderLines is the fixed line count above the scrollable body:
// name, identity line, schedule line, separator.
const detailHeaderLines = 4

// DetailOverlay is the modal job inspector. It floats over the active
// tab as a bordered box: a fixed header with the job's identity and
// schedule, then a scrollable viewport holding the upcoming runs and
// the prompt rendered as markdown.
type DetailOverlay struct {
	viewport viewport.Model
	theme    Theme

	// Outer box dimensions, recomputed from the terminal size.
	width  int
	height int

	// Retained for re-rendering on resize. renderTime pins the
	// relative times (badge age, time-until-run) so a resize does not
	// shift them.
	hasJob     bool
	job        job.Job
	agents     map[string]string
	evaluator  schedule.Evaluator
	location   *time.Location
	renderTime time.Time

	// Pre-rendered header lines, set by render.
	header []string
}

// NewDetailOverlay creates an empty overlay. Open gives it a job;
// SetSize must be called before View.
func NewDetailOverlay(theme Theme) DetailOverlay {
	return DetailOverlay{theme: theme}
}

// HasJob reports whether the overlay currently displays a job.
func (overlay DetailOverlay) HasJob() bool {
	return overlay.hasJob
}

// JobID returns the displayed job's ID, or "" when the overlay is
// closed.
func (overlay DetailOverlay) JobID() string {
	if !overlay.hasJob {
		return ""
	}
	return overlay.job.ID
}

// contentWidth is the text width inside the border and padding.
func (overlay DetailOverlay) contentWidth() int {
	width := overlay.width - 4
	if width < 10 {
		width = 10
	}
	return width
}

// bodyWidth is the viewport text width: the content width minus the
// scrollbar column and its gutter.
func (overlay DetailOverlay) bodyWidth() int {
	width := overlay.contentWidth() - 2
	if width < 10 {
		width = 10
	}
	return width
}

// bodyHeight is the viewport height inside the border, below the
// fixed header.
func (overlay DetailOverlay) bodyHeight() int {
	height := overlay.height - 2 - detailHeaderLines
	if height < 1 {
		height = 1
	}
	return height
}

// SetSize fits the overlay box to the terminal. The box takes most of
// the screen but leaves the tab bar and status bar visible around it.
// A width change re-renders the content so markdown wrap adapts.
func (overlay *DetailOverlay) SetSize(terminalWidth, terminalHeight int) {
	previousWidth := overlay.width

	width := terminalWidth - 8
	if width > 84 {
		width = 84
	}
	if width < 30 {
		width = terminalWidth
	}
	height := terminalHeight - 4
	if height < 8 {
		height = terminalHeight
	}

	overlay.width = width
	overlay.height = height
	overlay.viewport.Width = overlay.bodyWidth()
	overlay.viewport.Height = overlay.bodyHeight()

	if overlay.hasJob && width != previousWidth {
		overlay.rerender()
	}
}

// Open fills the overlay with a job. The now parameter pins the
// relative times shown in the header and the next-runs section.
func (overlay *DetailOverlay) Open(candidate job.Job, agents map[string]string, evaluator schedule.Evaluator, location *time.Location, now time.Time) {
	overlay.hasJob = true
	overlay.job = candidate
	overlay.agents = agents
	overlay.evaluator = evaluator
	overlay.location = location
	overlay.renderTime = now

	overlay.render()
	overlay.viewport.GotoTop()
}

// Close empties the overlay.
func (overlay *DetailOverlay) Close() {
	overlay.hasJob = false
	overlay.job = job.Job{}
	overlay.agents = nil
	overlay.evaluator = nil
	overlay.header = nil
	overlay.viewport.SetContent("")
}

// render rebuilds the header lines and viewport content at the
// current width.
func (overlay *DetailOverlay) render() {
	overlay.header = overlay.renderHeader()
	overlay.viewport.SetContent(overlay.renderBody())
}

// rerender rebuilds at the current width, preserving the scroll
// position clamped to the new content height.
func (overlay *DetailOverlay) rerender() {
	previousOffset := overlay.viewport.YOffset
	overlay.render()

	maxOffset := overlay.viewport.TotalLineCount() - overlay.viewport.Height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if previousOffset > maxOffset {
		previousOffset = maxOffset
	}
	overlay.viewport.SetYOffset(previousOffset)
}

// ScrollUp scrolls the body up by half a page.
func (overlay *DetailOverlay) ScrollUp() {
	overlay.viewport.HalfViewUp()
}

// ScrollDown scrolls the body down by half a page.
func (overlay *DetailOverlay) ScrollDown() {
	overlay.viewport.HalfViewDown()
}

// renderHeader builds the fixed lines above the viewport: the display
// name, an identity line (ID, agent, model), and the schedule line
// (enabled marker, schedule summary, last-run badge).
func (overlay *DetailOverlay) renderHeader() []string {
	theme := overlay.theme
	width := overlay.contentWidth()
	clamp := lipgloss.NewStyle().MaxWidth(width)

	name := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render(overlay.job.DisplayName())

	faint := lipgloss.NewStyle().Foreground(theme.FaintText)
	identity := faint.Render(overlay.job.ID)
	if agent := agentLabel(overlay.job, overlay.agents); agent != "" {
		identity += faint.Render(" · ") + faint.Render(agent)
	}

	marker := lipgloss.NewStyle().Foreground(theme.EnabledMarker).Render("● enabled")
	if !overlay.job.Enabled {
		marker = lipgloss.NewStyle().Foreground(theme.DisabledMarker).Render("○ disabled")
	}
	scheduleLine := marker + faint.Render(" · ") +
		lipgloss.NewStyle().Foreground(theme.ScheduleText).Render(overlay.job.Schedule.Summary())
	if overlay.job.LastRun != nil {
		badge := lastRunBadge(overlay.job.LastRun, overlay.renderTime)
		badgeStyle := lipgloss.NewStyle().
			Foreground(theme.RunStatusColor(overlay.job.LastRun.Status, overlay.job.LastRun.State))
		scheduleLine += faint.Render(" · ") + badgeStyle.Render(badge)
	}

	separator := lipgloss.NewStyle().
		Foreground(theme.BorderColor).
		Render(strings.Repeat("─", width))

	return []string{
		clamp.Render(name),
		clamp.Render(identity),
		clamp.Render(scheduleLine),
		separator,
	}
}

// renderBody builds the scrollable content: the upcoming runs over the
// next seven days, then the prompt as rendered markdown.
func (overlay *DetailOverlay) renderBody() string {
	theme := overlay.theme
	width := overlay.bodyWidth()

	var sections []string
	sections = append(sections, overlay.renderNextRuns())

	promptHeading := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("Prompt")
	if strings.TrimSpace(overlay.job.Prompt) == "" {
		empty := lipgloss.NewStyle().Foreground(theme.FaintText).Render("No prompt.")
		sections = append(sections, promptHeading+"\n\n"+empty)
	} else {
		rendered := renderMarkdown(overlay.job.Prompt, theme, width)
		sections = append(sections, promptHeading+"\n\n"+rendered)
	}

	body := strings.Join(sections, "\n\n")

	// Constrain so no line exceeds the viewport width; markdown wraps
	// itself but the run lines rely on this clamp.
	return lipgloss.NewStyle().Width(width).MaxWidth(width).Render(body)
}

// renderNextRuns projects the job over the coming week and lists the
// first few fire instants with relative countdowns.
func (overlay *DetailOverlay) renderNextRuns() string {
	theme := overlay.theme
	heading := lipgloss.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render("Next runs")
	faint := lipgloss.NewStyle().Foreground(theme.FaintText)

	if !overlay.job.Schedule.Projectable() {
		return heading + "\n\n" + faint.Render("Not on a cron schedule.")
	}

	window := schedule.Window{
		Start: overlay.renderTime,
		End:   overlay.renderTime.AddDate(0, 0, 7),
	}
	projection := schedule.Project(overlay.evaluator, overlay.job, window)
	if len(projection.Times) == 0 {
		return heading + "\n\n" + faint.Render("None in the next 7 days.")
	}

	timeStyle := lipgloss.NewStyle().Foreground(theme.RunTime)
	lines := []string{heading, ""}
	shown := projection.Times
	if len(shown) > detailNextRunCount {
		shown = shown[:detailNextRunCount]
	}
	for _, at := range shown {
		local := at.In(overlay.location)
		lines = append(lines, fmt.Sprintf("%s  %s",
			timeStyle.Render(local.Format("Mon Jan 2 15:04")),
			faint.Render(humanizeUntil(at.Sub(overlay.renderTime)))))
	}
	if projection.Capped || len(projection.Times) > len(shown) {
		marker := lipgloss.NewStyle().Foreground(theme.CappedMarker).Render("+")
		lines = append(lines, marker+faint.Render(" more"))
	}

	return strings.Join(lines, "\n")
}

// View renders the overlay as a bordered box. The model splices the
// result over the tab content.
func (overlay DetailOverlay) View() string {
	if !overlay.hasJob {
		return ""
	}

	scrollbar := renderScrollbar(
		overlay.theme,
		overlay.viewport.Height,
		overlay.viewport.TotalLineCount(),
		overlay.viewport.Height,
		overlay.viewport.YOffset,
		true,
	)

	body := lipgloss.NewStyle().
		Width(overlay.bodyWidth()).
		Height(overlay.bodyHeight()).
		MaxHeight(overlay.bodyHeight()).
		Render(overlay.viewport.View())
	bodyWithBar := lipgloss.JoinHorizontal(lipgloss.Top, body, " ", scrollbar)

	content := strings.Join(overlay.header, "\n") + "\n" + bodyWithBar

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(overlay.theme.BorderColor).
		Padding(0, 1).
		Width(overlay.width - 2).
		Render(content)
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/junegunn/fzf/src/util"

	"github.com/cronview/cronview/lib/schema/job"
)

// FilterModel narrows the job set shown by every tab. The text query
// matches case-insensitive substrings across ID, name, agent, resolved
// model name, and schedule summary; names are additionally fuzzy
// matched so scattered queries like "ngtrep" find "Nightly report".
// The enabled-only toggle composes with the text query.
//
// The filter applies before projection: agenda and week views are
// built from the filtered job list, not merely redrawn.
type FilterModel struct {
	// Input is the current filter query text.
	Input string

	// Active is true when the filter input has keyboard focus
	// (the user pressed / to start typing).
	Active bool

	// EnabledOnly hides disabled jobs when true.
	EnabledOnly bool
}

// MatchedJob is one job that passed the filter, with its fuzzy score
// and the matched rune positions in the display name. Score is zero
// and NamePositions nil for jobs kept by a substring match on another
// field, and for every job when the query is empty.
type MatchedJob struct {
	Job           job.Job
	Score         int
	NamePositions []int
}

// MatchesJob reports whether a job passes the substring portion of the
// filter. An empty query matches everything. The agents map resolves
// the job's agent to a model name so queries can target either.
func (filter *FilterModel) MatchesJob(candidate job.Job, agents map[string]string) bool {
	if filter.Input == "" {
		return true
	}

	query := strings.ToLower(filter.Input)

	if strings.Contains(strings.ToLower(candidate.ID), query) {
		return true
	}
	if strings.Contains(strings.ToLower(candidate.DisplayName()), query) {
		return true
	}
	if candidate.Agent != "" {
		if strings.Contains(strings.ToLower(candidate.Agent), query) {
			return true
		}
		if model, ok := agents[candidate.Agent]; ok &&
			strings.Contains(strings.ToLower(model), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(candidate.Schedule.Summary()), query)
}

// Apply filters and orders the job list. Jobs are kept when the query
// fuzzy-matches the display name or substring-matches any other field.
// Ordering is fuzzy score descending, then case-insensitive display
// name, then ID, so recomputes are stable for a stable job list.
func (filter *FilterModel) Apply(jobs []job.Job, agents map[string]string) []MatchedJob {
	var results []MatchedJob
	pattern := []rune(filter.Input)
	var slab *util.Slab
	if len(pattern) > 0 {
		slab = util.MakeSlab(slabSize16, slabSize32)
	}

	for _, candidate := range jobs {
		if filter.EnabledOnly && !candidate.Enabled {
			continue
		}

		if len(pattern) == 0 {
			results = append(results, MatchedJob{Job: candidate})
			continue
		}

		fuzzy := fuzzyMatch(candidate.DisplayName(), pattern, slab)
		if fuzzy.Score > 0 {
			results = append(results, MatchedJob{
				Job:           candidate,
				Score:         fuzzy.Score,
				NamePositions: fuzzy.Positions,
			})
			continue
		}
		if filter.MatchesJob(candidate, agents) {
			results = append(results, MatchedJob{Job: candidate})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		left := strings.ToLower(results[i].Job.DisplayName())
		right := strings.ToLower(results[j].Job.DisplayName())
		if left != right {
			return left < right
		}
		return results[i].Job.ID < results[j].Job.ID
	})

	return results
}

// HandleRune appends a character typed while the filter is active.
// Returns true if the input changed.
func (filter *FilterModel) HandleRune(character rune) bool {
	filter.Input += string(character)
	return true
}

// HandleBackspace removes the last character from the filter input.
// Returns true if the input changed.
func (filter *FilterModel) HandleBackspace() bool {
	if len(filter.Input) == 0 {
		return false
	}
	runes := []rune(filter.Input)
	filter.Input = string(runes[:len(runes)-1])
	return true
}

// Clear resets the filter input and deactivates it. The enabled-only
// toggle is separate state and survives a clear.
func (filter *FilterModel) Clear() {
	filter.Input = ""
	filter.Active = false
}

// View renders the filter bar. When active, shows the input with a
// cursor. When inactive with text, shows the filter text. When
// inactive with no text, returns empty string (hidden).
func (filter *FilterModel) View(theme Theme, width int) string {
	if !filter.Active && filter.Input == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Foreground(theme.NormalText).
		Width(width)

	if filter.Active {
		cursor := lipgloss.NewStyle().
			Foreground(theme.AccentColor).
			Bold(true).
			Render("▎")
		return style.Render(" / " + filter.Input + cursor)
	}

	dimStyle := lipgloss.NewStyle().
		Foreground(theme.FaintText).
		Width(width)
	return dimStyle.Render(" filter: " + filter.Input)
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderScrollbar draws the one-column scroll indicator beside a
// scrolling region. The thumb occupies the slice of track matching
// the visible window; when everything fits it fills the whole track,
// keeping the column's footprint constant instead of appearing and
// disappearing with content size. Focus switches the thumb to the
// accent color.
func renderScrollbar(theme Theme, height, total, visible, offset int, focused bool) string {
	if height <= 0 {
		return ""
	}

	track := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumb := track
	if focused {
		thumb = lipgloss.NewStyle().Foreground(theme.AccentColor)
	}

	start, size := thumbSpan(height, total, visible, offset)

	var column strings.Builder
	for row := 0; row < height; row++ {
		if row > 0 {
			column.WriteByte('\n')
		}
		if row >= start && row < start+size {
			column.WriteString(thumb.Render("┃"))
		} else {
			column.WriteString(track.Render("│"))
		}
	}
	return column.String()
}

// thumbSpan maps the visible window onto the track: size proportional
// to the visible share with a one-row floor, position proportional to
// the offset within the hidden remainder, clamped so the thumb never
// hangs past the end of the track.
func thumbSpan(height, total, visible, offset int) (start, size int) {
	if total <= visible || total <= 0 {
		return 0, height
	}

	size = height * visible / total
	if size < 1 {
		size = 1
	}

	hidden := total - visible
	travel := height - size
	if hidden > 0 && travel > 0 {
		start = offset * travel / hidden
	}
	if start+size > height {
		start = height - size
	}
	return start, size
}

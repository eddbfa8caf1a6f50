// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const ansiReset = "\x1b[0m"

// spliceOverlay lays overlay lines over a rendered backdrop starting
// at screen position (x, y). Overlay rows outside the backdrop are
// dropped rather than growing it. Truncation is ANSI-aware, so styled
// backdrop text keeps its escapes on both sides of the cut.
func spliceOverlay(backdrop string, overlay []string, x, y int) string {
	if len(overlay) == 0 {
		return backdrop
	}

	rows := strings.Split(backdrop, "\n")
	width := ansi.StringWidth(overlay[0])

	for offset, content := range overlay {
		row := y + offset
		if row < 0 || row >= len(rows) {
			continue
		}
		rows[row] = composeRow(rows[row], content, x, width)
	}

	return strings.Join(rows, "\n")
}

// composeRow rebuilds one backdrop row with overlay content occupying
// columns [x, x+width). SGR resets bracket the content so the
// backdrop's open styling cannot bleed into the overlay, nor the
// overlay's into the surviving right side.
func composeRow(row, content string, x, width int) string {
	var spliced strings.Builder

	if x > 0 {
		spliced.WriteString(ansi.Truncate(row, x, ""))
	}
	spliced.WriteString(ansiReset)
	spliced.WriteString(content)
	spliced.WriteString(ansiReset)

	if rest := x + width; rest < ansi.StringWidth(row) {
		spliced.WriteString(ansi.TruncateLeft(row, rest, ""))
	}

	return spliced.String()
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestSpliceOverlayReplacesRegion(t *testing.T) {
	view := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
		"dddddddddd",
	}, "\n")

	result := spliceOverlay(view, []string{"XXXX", "YYYY"}, 3, 1)
	lines := strings.Split(result, "\n")

	if ansi.Strip(lines[0]) != "aaaaaaaaaa" {
		t.Errorf("line above the overlay should be untouched, got %q", lines[0])
	}
	if got := ansi.Strip(lines[1]); got != "bbbXXXXbbb" {
		t.Errorf("overlay line 1 = %q", got)
	}
	if got := ansi.Strip(lines[2]); got != "cccYYYYccc" {
		t.Errorf("overlay line 2 = %q", got)
	}
	if ansi.Strip(lines[3]) != "dddddddddd" {
		t.Errorf("line below the overlay should be untouched, got %q", lines[3])
	}
}

func TestSpliceOverlayAtLeftEdge(t *testing.T) {
	view := "aaaaaa\nbbbbbb"
	result := spliceOverlay(view, []string{"XX"}, 0, 0)
	lines := strings.Split(result, "\n")

	if got := ansi.Strip(lines[0]); got != "XXaaaa" {
		t.Errorf("left-edge overlay = %q", got)
	}
}

func TestSpliceOverlayBeyondBottom(t *testing.T) {
	view := "aaaa\nbbbb"
	result := spliceOverlay(view, []string{"XX", "YY", "ZZ"}, 0, 1)
	lines := strings.Split(result, "\n")

	if len(lines) != 2 {
		t.Fatalf("overlay should not grow the view, got %d lines", len(lines))
	}
	if got := ansi.Strip(lines[1]); got != "XXbb" {
		t.Errorf("last view line = %q", got)
	}
}

func TestSpliceOverlayEmpty(t *testing.T) {
	view := "aaaa\nbbbb"
	if got := spliceOverlay(view, nil, 2, 0); got != view {
		t.Errorf("empty overlay should leave the view unchanged, got %q", got)
	}
}

func TestRenderScrollbarFullThumbWhenContentFits(t *testing.T) {
	bar := renderScrollbar(DefaultTheme, 4, 3, 10, 0, true)
	lines := strings.Split(bar, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 scrollbar rows, got %d", len(lines))
	}
	for index, line := range lines {
		if ansi.Strip(line) != "┃" {
			t.Errorf("row %d should be a full thumb, got %q", index, ansi.Strip(line))
		}
	}
}

func TestRenderScrollbarThumbTracksOffset(t *testing.T) {
	// 100 items, 10 visible, height 10: the thumb is one row and
	// moves from top to bottom across the scroll range.
	top := strings.Split(renderScrollbar(DefaultTheme, 10, 100, 10, 0, true), "\n")
	if ansi.Strip(top[0]) != "┃" {
		t.Error("at offset 0 the thumb should sit on the first row")
	}
	if ansi.Strip(top[9]) == "┃" {
		t.Error("at offset 0 the last row should be track")
	}

	bottom := strings.Split(renderScrollbar(DefaultTheme, 10, 100, 10, 90, true), "\n")
	if ansi.Strip(bottom[9]) != "┃" {
		t.Error("at the maximum offset the thumb should sit on the last row")
	}
	if ansi.Strip(bottom[0]) == "┃" {
		t.Error("at the maximum offset the first row should be track")
	}
}

func TestRenderScrollbarZeroHeight(t *testing.T) {
	if got := renderScrollbar(DefaultTheme, 0, 10, 5, 0, false); got != "" {
		t.Errorf("zero height should render nothing, got %q", got)
	}
}

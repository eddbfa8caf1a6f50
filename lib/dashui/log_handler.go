// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the model for display in the
// status bar.
type logRecordMsg struct {
	// Summary is the one-line message shown in the status bar.
	Summary string

	// Level drives the styling (warn vs error).
	Level slog.Level
}

// logRecordFadeMsg clears a displayed log message and restores the
// help line.
type logRecordFadeMsg struct{}

// logRecordFadeDelay is how long a log message stays in the status bar
// before fading back to the key help.
const logRecordFadeDelay = 5 * time.Second

// UILogHandler is a slog.Handler that routes records into the running
// bubbletea program as messages. Records below the configured level
// are dropped, as are records arriving before SetProgram.
//
// Handlers derived via WithAttrs/WithGroup share the same program
// pointer, so one SetProgram call covers every derived handler.
type UILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
	groups  []string
}

// NewUILogHandler creates a handler delivering records at or above the
// given level. Call SetProgram once the tea.Program exists.
func NewUILogHandler(level slog.Level) *UILogHandler {
	return &UILogHandler{
		level:   level,
		program: new(atomic.Pointer[tea.Program]),
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine; propagates to derived handlers.
func (h *UILogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

// Enabled reports whether the handler wants records at the given level.
func (h *UILogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle sends the record to the program as a status bar message.
func (h *UILogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}
	program.Send(logRecordMsg{
		Summary: h.summarize(record),
		Level:   record.Level,
	})
	return nil
}

// summarize flattens the record into "message (key=value, ...)".
// Pre-bound attributes come first, then the record's own.
func (h *UILogHandler) summarize(record slog.Record) string {
	parts := make([]string, 0, len(h.attrs)+record.NumAttrs())
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})

	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs returns a derived handler with the attributes appended,
// sharing the program pointer.
func (h *UILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := h.clone()
	derived.attrs = append(derived.attrs, attrs...)
	return derived
}

// WithGroup returns a derived handler with the group name appended,
// sharing the program pointer.
func (h *UILogHandler) WithGroup(name string) slog.Handler {
	derived := h.clone()
	derived.groups = append(derived.groups, name)
	return derived
}

func (h *UILogHandler) clone() *UILogHandler {
	return &UILogHandler{
		level:   h.level,
		program: h.program,
		attrs:   slices.Clone(h.attrs),
		groups:  slices.Clone(h.groups),
	}
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides categorized errors and exit-code plumbing for
// the cronview command layer.
package cli

import "fmt"

// ErrorCategory classifies command errors so the top-level error
// handler can pick an exit code and presentation without parsing
// error message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the user provided invalid input:
	// unknown flags, unparseable values, contradictory modes. The user
	// should fix the invocation and retry.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced resource does not exist:
	// missing jobs file, missing config file, unknown view name.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryTransient indicates a temporary failure: the external
	// tool exited non-zero, a read raced a writer. Retrying may help.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal indicates an unexpected error: bugs, I/O
	// failures, parse errors on data the system produced.
	CategoryInternal ErrorCategory = "internal"
)

// Error is a categorized error returned by command handlers. The main
// function inspects the Category to choose the process exit code, and
// prints the optional Hint as a follow-up line so users learn the fix
// along with the failure.
//
// Use the category-specific constructors (Validation, NotFound, etc.)
// rather than constructing Error directly.
type Error struct {
	// Category classifies the error for exit-code selection.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional actionable suggestion printed after the
	// message. Empty means no hint.
	Hint string
}

// Error returns the underlying message, with the hint appended after a
// blank line when present.
func (e *Error) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error, allowing errors.Is and
// errors.As to walk the full chain through the Error wrapper.
func (e *Error) Unwrap() error { return e.Err }

// WithHint attaches an actionable suggestion to the error and returns
// the same pointer for chaining.
func (e *Error) WithHint(hint string) *Error {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the user provided bad input.
func Validation(format string, args ...any) *Error {
	return &Error{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced resource does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Transient creates a transient error: a temporary failure that may succeed on retry.
func Transient(format string, args ...any) *Error {
	return &Error{Category: CategoryTransient, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure, bug, or I/O error.
func Internal(format string, args ...any) *Error {
	return &Error{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

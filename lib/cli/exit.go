// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ExitError signals a non-zero exit code without printing an extra
// error message. When a handler returns an ExitError, main exits with
// the specified code without printing the error string; the handler
// is expected to have already written its own output.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. Main checks for this interface on
// returned errors to distinguish "handled non-zero exit" from
// "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}

// ExitCodeFor maps an error to the process exit code: 0 for nil, the
// encoded code for ExitError, 2 for validation errors, and 1 for
// everything else.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var cliErr *Error
	if errors.As(err, &cliErr) && cliErr.Category == CategoryValidation {
		return 2
	}
	return 1
}

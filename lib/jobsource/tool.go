// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package jobsource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"

	"github.com/cronview/cronview/lib/schema/job"
)

// Tool invokes the external automation CLI that owns the job list.
// The command is argv form, executed directly without a shell, so
// quoting in the configured command never becomes an injection
// surface.
type Tool struct {
	argv []string
}

// NewTool returns a Tool for the given command line. The first
// element is the binary, the rest its arguments.
func NewTool(argv []string) (*Tool, error) {
	if len(argv) == 0 {
		return nil, errors.New("tool command is empty")
	}
	return &Tool{argv: slices.Clone(argv)}, nil
}

// String returns the command line for display and log messages.
func (t *Tool) String() string {
	return strings.Join(t.argv, " ")
}

// Jobs runs the command once and parses its stdout as a jobs payload.
// Stderr is captured separately; its first line is folded into the
// error on failure, because automation CLIs put the useful diagnostic
// there.
func (t *Tool) Jobs(ctx context.Context) (jobs []job.Job, skipped int, err error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, t.argv[0], t.argv[1:]...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		if detail := firstLine(stderr.String()); detail != "" {
			return nil, 0, fmt.Errorf("%s: %w (stderr: %s)", t, err, detail)
		}
		return nil, 0, fmt.Errorf("%s: %w", t, err)
	}

	jobs, skipped, err = Parse(stdout.Bytes())
	if err != nil {
		return nil, 0, fmt.Errorf("%s output: %w", t, err)
	}
	return jobs, skipped, nil
}

// firstLine trims s and truncates it at the first newline.
func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package version carries the build stamp for the cronview binary.
// Release builds inject the variables with -ldflags -X:
//
//	go build -ldflags "\
//	  -X github.com/cronview/cronview/lib/version.Version=0.3.0 \
//	  -X github.com/cronview/cronview/lib/version.GitCommit=$(git rev-parse --short HEAD) \
//	  -X github.com/cronview/cronview/lib/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Development builds and test runs keep the defaults.
package version

import "fmt"

var (
	// Version is the semantic version, set manually per release.
	Version = "0.1.0-dev"

	// GitCommit is the short SHA the binary was built from.
	GitCommit = "unknown"

	// GitDirty is "true" when the build tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Info formats the stamp as one line: version, commit (with a -dirty
// suffix when the tree was not clean), and build time.
func Info() string {
	commit := GitCommit
	if GitDirty == "true" {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, BuildTime)
}

// Print writes the standard --version line for a binary to stdout.
func Print(binary string) {
	fmt.Printf("%s %s\n", binary, Info())
}

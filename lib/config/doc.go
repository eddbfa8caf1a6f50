// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for cronview.
//
// Configuration comes from a single file resolved in order: the
// --config flag (via [LoadFile]), the CRONVIEW_CONFIG environment
// variable, then ~/.config/cronview/config.yaml. Only the last is
// optional; a path the user named explicitly must exist.
//
// The file carries defaults for everything a flag can set. Flags win
// over the file and the file wins over built-in defaults, but that
// resolution happens in cmd/cronview: this package only loads,
// parses, and validates. Unknown keys are rejected so a typo in the
// file surfaces instead of silently falling back to a default.
//
// Key exports:
//
//   - [Config] -- master struct with Source, AgentsFile, WeekStart,
//     Timezone, Log
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//   - [ParseWeekStart] and [ParseLogLevel] -- shared by Validate and
//     the flag layer
//
// This package depends on no other cronview packages.
package config

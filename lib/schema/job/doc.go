// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package job defines the scheduled-job record types cronview consumes:
// the job itself, its tagged schedule variant, and its last-run state.
// These mirror the JSON the external automation tool emits; cronview
// never writes them back.
package job

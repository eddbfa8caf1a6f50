// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron computes cron occurrence times. It answers one
// question: the first fire instant of an expression strictly after a
// given time. Parsing and calendar arithmetic are delegated to
// github.com/robfig/cron/v3 with the standard 5-field format:
//
//	┌───────────── minute (0-59)
//	│ ┌───────────── hour (0-23)
//	│ │ ┌───────────── day of month (1-31)
//	│ │ │ ┌───────────── month (1-12)
//	│ │ │ │ ┌───────────── day of week (0-6, 0=Sunday)
//	│ │ │ │ │
//	* * * * *
//
// Expressions evaluate in the IANA timezone given per call (empty
// means the machine's local zone). Every failure mode (malformed
// expression, unknown timezone, no occurrence within the search
// horizon) collapses to a false second return; the projection engine
// treats "invalid" and "never fires" identically, so the distinction
// is not surfaced.
package cron

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package dashui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cronview/cronview/lib/schedule"
	"github.com/cronview/cronview/lib/schema/job"
)

// Plain one-shot renderers for print mode. Same layout as the
// interactive tabs, no styling, no width adaptation, so the output
// survives pipes and pagers.

// PrintJobs writes one row per job in display-name order: enabled
// marker, name, schedule, agent, last-run badge.
func PrintJobs(w io.Writer, jobs []job.Job, agents map[string]string, now time.Time) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, "No jobs found.")
		return
	}

	var filter FilterModel
	for _, result := range filter.Apply(jobs, agents) {
		candidate := result.Job
		marker := "●"
		if !candidate.Enabled {
			marker = "○"
		}
		line := fmt.Sprintf("%s %-36s %-24s %-28s %s",
			marker,
			truncateString(candidate.DisplayName(), 36),
			truncateString(candidate.Schedule.Summary(), 24),
			truncateString(agentLabel(candidate, agents), 28),
			lastRunBadge(candidate.LastRun, now))
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// PrintAgenda writes the agenda day groups: a heading per day, one
// indented row per run, and the trim notice when the global cap hit.
func PrintAgenda(w io.Writer, agenda schedule.Agenda, agents map[string]string, location *time.Location) {
	if len(agenda.Days) == 0 {
		fmt.Fprintln(w, "No scheduled runs in the next 7 days.")
		return
	}

	for dayIndex, day := range agenda.Days {
		if dayIndex > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, day.Heading)
		for _, run := range day.Runs {
			printRunRow(w, run, agents, location)
		}
	}

	if agenda.Capped {
		shown := 0
		for _, day := range agenda.Days {
			shown += len(day.Runs)
		}
		fmt.Fprintf(w, "\nshowing first %d of %d runs\n", shown, agenda.Total)
	}
}

// PrintWeek writes the seven week slots in order, the current day
// marked, empty days dashed.
func PrintWeek(w io.Writer, week schedule.Week, agents map[string]string, now time.Time, location *time.Location) {
	todayKey := now.In(location).Format("2006-01-02")

	for dayIndex, day := range week.Days {
		if dayIndex > 0 {
			fmt.Fprintln(w)
		}
		heading := day.Heading
		if day.Date == todayKey {
			heading += " · today"
		}
		fmt.Fprintln(w, heading)

		if len(day.Runs) == 0 {
			fmt.Fprintln(w, "  —")
			continue
		}
		for _, run := range day.Runs {
			printRunRow(w, run, agents, location)
		}
	}

	if week.Capped {
		shown := 0
		for _, day := range week.Days {
			shown += len(day.Runs)
		}
		fmt.Fprintf(w, "\nshowing first %d of %d runs\n", shown, week.Total)
	}
}

// printRunRow writes one run: time, reduction marker, name, agent.
func printRunRow(w io.Writer, run schedule.Run, agents map[string]string, location *time.Location) {
	marker := " "
	if run.Capped {
		marker = "+"
	}
	line := fmt.Sprintf("  %s%s %-36s %s",
		formatClockTime(run.At, location),
		marker,
		truncateString(run.Job.DisplayName(), 36),
		agentLabel(run.Job, agents))
	fmt.Fprintln(w, strings.TrimRight(line, " "))
}

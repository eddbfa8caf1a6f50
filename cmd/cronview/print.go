// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cronview/cronview/lib/cli"
	"github.com/cronview/cronview/lib/cron"
	"github.com/cronview/cronview/lib/dashui"
	"github.com/cronview/cronview/lib/jobsource"
	"github.com/cronview/cronview/lib/schedule"
	"github.com/cronview/cronview/lib/schema/job"
)

// runPrint renders one view to stdout and exits: the one-shot mode for
// scripts, pipes, and cron mails. No watcher, no poller, no event
// loop; a single snapshot and a single projection. An empty job list
// prints the empty placeholder and exits zero.
func runPrint(resolved *settings) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: resolved.logLevel}))

	jobs, err := acquireJobs(resolved, logger)
	if err != nil {
		return err
	}

	now := time.Now().In(resolved.location)
	evaluator := cron.NewEvaluator()

	switch resolved.printView {
	case "jobs":
		if resolved.printJSON {
			return encodeJSON(os.Stdout, jobsDocument(jobs, resolved.agents))
		}
		dashui.PrintJobs(os.Stdout, jobs, resolved.agents, now)

	case "agenda":
		agenda := schedule.BuildAgenda(evaluator, jobs, now, resolved.location)
		if resolved.printJSON {
			return encodeJSON(os.Stdout, agendaDocument(agenda, resolved.agents, resolved.location))
		}
		dashui.PrintAgenda(os.Stdout, agenda, resolved.agents, resolved.location)

	case "week":
		week := schedule.BuildWeek(evaluator, jobs, now, resolved.weekStart, resolved.location)
		if resolved.printJSON {
			return encodeJSON(os.Stdout, weekDocument(week, resolved.agents, resolved.location))
		}
		dashui.PrintWeek(os.Stdout, week, resolved.agents, now, resolved.location)
	}
	return nil
}

// acquireJobs fetches one job snapshot from whichever source is
// configured. The tool run is bounded by the refresh interval, the
// same budget the TUI poller gives each fetch.
func acquireJobs(resolved *settings, logger *slog.Logger) ([]job.Job, error) {
	if resolved.file != "" {
		jobs, skipped, err := jobsource.LoadFile(resolved.file)
		if err != nil {
			return nil, cli.NotFound("cannot load jobs from %s: %w", resolved.file, err).
				WithHint("Check that the file exists and contains a JSON job list.")
		}
		if skipped > 0 {
			logger.Warn("skipped undecodable job entries", "file", resolved.file, "count", skipped)
		}
		return jobs, nil
	}

	tool, err := jobsource.NewTool(resolved.command)
	if err != nil {
		return nil, cli.Validation("invalid tool command: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), resolved.refresh)
	defer cancel()
	jobs, skipped, err := tool.Jobs(ctx)
	if err != nil {
		return nil, cli.Transient("job fetch failed: %w", err).
			WithHint("Run the tool command by hand and check that it prints a JSON job list.")
	}
	if skipped > 0 {
		logger.Warn("skipped undecodable job entries", "tool", tool.String(), "count", skipped)
	}
	return jobs, nil
}

func encodeJSON(w io.Writer, document any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(document)
}

// The JSON shapes below are the --json contract: stable field names,
// runs timestamped in the display timezone, agent IDs resolved to
// model names where the agents map knows them.

type printRun struct {
	At     time.Time `json:"at"`
	JobID  string    `json:"jobId"`
	Name   string    `json:"name"`
	Agent  string    `json:"agent,omitempty"`
	Model  string    `json:"model,omitempty"`
	Capped bool      `json:"capped,omitempty"`
}

type printDay struct {
	Heading string     `json:"heading"`
	Date    string     `json:"date,omitempty"`
	Runs    []printRun `json:"runs"`
}

type printAgenda struct {
	Days   []printDay `json:"days"`
	Total  int        `json:"total"`
	Capped bool       `json:"capped,omitempty"`
}

type printWeek struct {
	Start  time.Time  `json:"start"`
	Days   []printDay `json:"days"`
	Total  int        `json:"total"`
	Capped bool       `json:"capped,omitempty"`
}

type printJob struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Agent    string         `json:"agent,omitempty"`
	Model    string         `json:"model,omitempty"`
	Enabled  bool           `json:"enabled"`
	Schedule string         `json:"schedule"`
	LastRun  *job.RunRecord `json:"lastRun,omitempty"`
}

func runDocument(run schedule.Run, agents map[string]string, location *time.Location) printRun {
	return printRun{
		At:     run.At.In(location),
		JobID:  run.Job.ID,
		Name:   run.Job.DisplayName(),
		Agent:  run.Job.Agent,
		Model:  agents[run.Job.Agent],
		Capped: run.Capped,
	}
}

func agendaDocument(agenda schedule.Agenda, agents map[string]string, location *time.Location) printAgenda {
	document := printAgenda{
		Days:   []printDay{},
		Total:  agenda.Total,
		Capped: agenda.Capped,
	}
	for _, day := range agenda.Days {
		runs := make([]printRun, 0, len(day.Runs))
		for _, run := range day.Runs {
			runs = append(runs, runDocument(run, agents, location))
		}
		document.Days = append(document.Days, printDay{Heading: day.Heading, Date: day.Date, Runs: runs})
	}
	return document
}

func weekDocument(week schedule.Week, agents map[string]string, location *time.Location) printWeek {
	document := printWeek{
		Start:  week.Start,
		Days:   []printDay{},
		Total:  week.Total,
		Capped: week.Capped,
	}
	for _, day := range week.Days {
		runs := make([]printRun, 0, len(day.Runs))
		for _, run := range day.Runs {
			runs = append(runs, runDocument(run, agents, location))
		}
		document.Days = append(document.Days, printDay{Heading: day.Heading, Date: day.Date, Runs: runs})
	}
	return document
}

func jobsDocument(jobs []job.Job, agents map[string]string) []printJob {
	var filter dashui.FilterModel
	documents := []printJob{}
	for _, match := range filter.Apply(jobs, agents) {
		candidate := match.Job
		documents = append(documents, printJob{
			ID:       candidate.ID,
			Name:     candidate.DisplayName(),
			Agent:    candidate.Agent,
			Model:    agents[candidate.Agent],
			Enabled:  candidate.Enabled,
			Schedule: candidate.Schedule.Summary(),
			LastRun:  candidate.LastRun,
		})
	}
	return documents
}

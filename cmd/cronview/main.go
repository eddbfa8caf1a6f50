// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

// cronview is a terminal dashboard for scheduled agent jobs. It reads
// the job list an external automation CLI reports, projects the cron
// schedules into concrete upcoming runs, and renders them as a
// filterable job table, a 7-day agenda, and a week grid.
//
// Two modes of operation:
//
// TUI mode (default when stdout is a terminal): a full-screen
// bubbletea interface. The job list reloads live, from inotify when
// reading a file or on a poll interval when running the tool.
//
// Print mode (--print, or stdout is not a terminal): renders one view
// to stdout and exits. Plain text by default, JSON with --json, so
// the same binary serves scripts and cron mails.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/cronview/cronview/lib/cli"
	"github.com/cronview/cronview/lib/clock"
	"github.com/cronview/cronview/lib/config"
	"github.com/cronview/cronview/lib/cron"
	"github.com/cronview/cronview/lib/dashui"
	"github.com/cronview/cronview/lib/jobsource"
	"github.com/cronview/cronview/lib/version"
)

func main() {
	err := run()
	if err == nil {
		return
	}

	// An ExitError means the failing layer already wrote its own
	// output; everything else gets the standard message and hint.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		var categorized *cli.Error
		if errors.As(err, &categorized) {
			fmt.Fprintf(os.Stderr, "cronview: %v\n", categorized.Err)
			if categorized.Hint != "" {
				fmt.Fprintf(os.Stderr, "hint: %s\n", categorized.Hint)
			}
		} else {
			fmt.Fprintf(os.Stderr, "cronview: %v\n", err)
		}
	}
	os.Exit(cli.ExitCodeFor(err))
}

// flagValues holds the raw command-line flag bindings before they are
// overlaid on the config file.
type flagValues struct {
	file      string
	agents    string
	config    string
	weekStart string
	refresh   time.Duration
	timezone  string
	printView string
	printJSON bool
	logFile   string
	logLevel  string
}

func run() error {
	var flags flagValues

	flagSet := pflag.NewFlagSet("cronview", pflag.ContinueOnError)
	flagSet.StringVar(&flags.file, "file", "", "read jobs from this JSON file (watched for changes)")
	flagSet.StringVar(&flags.agents, "agents", "", "agent to model-name map, JSONC")
	flagSet.StringVar(&flags.config, "config", "", "config file (default: $CRONVIEW_CONFIG or ~/.config/cronview/config.yaml)")
	flagSet.StringVar(&flags.weekStart, "week-start", "", "first day of the week grid: monday through sunday")
	flagSet.DurationVar(&flags.refresh, "refresh", 30*time.Second, "poll interval for command mode")
	flagSet.StringVar(&flags.timezone, "timezone", "", "display timezone (IANA name, default: local)")
	flagSet.StringVar(&flags.printView, "print", "", "render one view to stdout and exit: agenda, week, or jobs")
	flagSet.BoolVar(&flags.printJSON, "json", false, "with --print, emit JSON instead of text")
	flagSet.StringVar(&flags.logFile, "log-file", "", "append JSON log records to this file")
	flagSet.StringVar(&flags.logLevel, "log-level", "", "minimum log level: debug, info, warn, or error")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// what else is on the command line.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("cronview")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		// pflag already printed the parse error and usage line.
		return &cli.ExitError{Code: 2}
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	cfg, err := config.Load(flags.config)
	if err != nil {
		return cli.Validation("cannot load config: %w", err).
			WithHint("Check the file named by --config or $CRONVIEW_CONFIG, or remove it to use the defaults.")
	}

	if err := overlayFlags(cfg, &flags, flagSet.Args(), flagSet.Changed("refresh")); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return cli.Validation("invalid settings: %w", err).
			WithHint("Flags and the config file must agree with the documented forms; see cronview --help.")
	}

	resolved, err := resolveSettings(cfg, &flags)
	if err != nil {
		return err
	}

	if resolved.printView != "" || !term.IsTerminal(int(os.Stdout.Fd())) {
		if resolved.printView == "" {
			resolved.printView = "agenda"
		}
		return runPrint(resolved)
	}
	return runTUI(resolved)
}

// overlayFlags folds the command line into the loaded config. A source
// given on the command line (--file or the tool argv after --)
// replaces the config's source entirely, so a config file with a
// command does not conflict with an ad-hoc --file run.
func overlayFlags(cfg *config.Config, flags *flagValues, argv []string, refreshChanged bool) error {
	if flags.file != "" && len(argv) > 0 {
		return cli.Validation("--file and a tool command after -- are mutually exclusive").
			WithHint("Pick one source: cronview --file jobs.json, or cronview -- mytool jobs list --json.")
	}
	if flags.file != "" {
		cfg.Source.File = flags.file
		cfg.Source.Command = nil
	}
	if len(argv) > 0 {
		cfg.Source.Command = argv
		cfg.Source.File = ""
	}
	if refreshChanged {
		cfg.Source.Refresh.Duration = flags.refresh
	}
	if flags.agents != "" {
		cfg.AgentsFile = flags.agents
	}
	if flags.weekStart != "" {
		cfg.WeekStart = flags.weekStart
	}
	if flags.timezone != "" {
		cfg.Timezone = flags.timezone
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	return nil
}

// settings is the fully resolved runtime configuration, ready to hand
// to either mode.
type settings struct {
	command   []string
	file      string
	refresh   time.Duration
	agents    map[string]string
	weekStart time.Weekday
	location  *time.Location
	logFile   string
	logLevel  slog.Level
	printView string
	printJSON bool
}

// resolveSettings turns the validated config into runtime values:
// parsed week start and log level, a loaded timezone, the agents map
// read from disk. The config must have passed Validate, so the parse
// calls here only fail for the agents file.
func resolveSettings(cfg *config.Config, flags *flagValues) (*settings, error) {
	if cfg.Source.File == "" && len(cfg.Source.Command) == 0 {
		return nil, cli.Validation("no job source selected").
			WithHint("Pass --file jobs.json, or the tool command after --, e.g. cronview -- mytool jobs list --json. The config file can also set one.")
	}

	weekStart, err := config.ParseWeekStart(cfg.WeekStart)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}
	logLevel, err := config.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	location := time.Local
	if cfg.Timezone != "" {
		location, err = time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, cli.Validation("unknown timezone %q", cfg.Timezone).
				WithHint("Use an IANA zone name like Europe/Berlin or America/New_York.")
		}
	}

	agents, err := jobsource.LoadAgents(cfg.AgentsFile)
	if err != nil {
		return nil, cli.Validation("cannot load agents map: %w", err).
			WithHint("The agents file is JSONC mapping agent IDs to model names, e.g. {\"agent-red\": \"opus\"}.")
	}

	if flags.printView != "" {
		switch flags.printView {
		case "agenda", "week", "jobs":
		default:
			return nil, cli.Validation("unknown view %q for --print", flags.printView).
				WithHint("Valid views are agenda, week, and jobs.")
		}
	}

	resolved := &settings{
		command:   cfg.Source.Command,
		file:      cfg.Source.File,
		refresh:   cfg.Source.Refresh.Duration,
		agents:    agents,
		weekStart: weekStart,
		location:  location,
		logFile:   cfg.Log.File,
		logLevel:  logLevel,
		printView: flags.printView,
		printJSON: flags.printJSON,
	}
	// --json alone means "print mode, default view, as JSON".
	if resolved.printJSON && resolved.printView == "" {
		resolved.printView = "agenda"
	}
	return resolved, nil
}

// runTUI builds the live job source and runs the full-screen
// interface. Background logging routes through a UILogHandler that
// surfaces warnings in the status bar instead of writing to stderr
// (which would corrupt the alt-screen display); an optional file
// handler captures all records for post-mortem debugging.
func runTUI(resolved *settings) error {
	clk := clock.Real()

	uiHandler := dashui.NewUILogHandler(slog.LevelWarn)
	var handler slog.Handler = uiHandler
	if resolved.logFile != "" {
		fileHandler, closeFile, err := openFileLogHandler(resolved.logFile, resolved.logLevel)
		if err != nil {
			return cli.Validation("cannot open log file %s: %w", resolved.logFile, err)
		}
		defer closeFile()
		handler = fanoutHandler{uiHandler, fileHandler}
	}
	logger := slog.New(handler)

	var source jobsource.Source
	if resolved.file != "" {
		watcher, err := jobsource.WatchFile(resolved.file, clk, logger)
		if err != nil {
			return cli.NotFound("cannot load jobs from %s: %w", resolved.file, err).
				WithHint("Check that the file exists and contains a JSON job list.")
		}
		defer watcher.Close()
		source = watcher
	} else {
		tool, err := jobsource.NewTool(resolved.command)
		if err != nil {
			return cli.Validation("invalid tool command: %w", err)
		}
		poller := jobsource.NewPoller(tool, resolved.refresh, clk, logger)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := poller.Start(ctx); err != nil {
			return cli.Transient("initial job fetch failed: %w", err).
				WithHint("Run the tool command by hand and check that it prints a JSON job list.")
		}
		defer poller.Close()
		source = poller
	}

	model := dashui.NewModel(source, cron.NewEvaluator(), clk, dashui.Options{
		Agents:    resolved.agents,
		Location:  resolved.location,
		WeekStart: resolved.weekStart,
		Refresh:   resolved.refresh,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	uiHandler.SetProgram(program)

	_, err := program.Run()
	return err
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `cronview — terminal dashboard for scheduled agent jobs.

Reads the job list from an automation CLI (polled on an interval) or
from a JSON file (watched for changes), projects the cron schedules
into upcoming runs, and shows a filterable job table, a 7-day agenda,
and a week grid.

When stdout is not a terminal, cronview prints the selected view once
and exits. --print forces that mode; --json switches it to JSON.

Usage:
  cronview [flags] [-- tool argv...]

Examples:
  # Watch a jobs file
  cronview --file jobs.json

  # Poll an automation CLI every minute
  cronview --refresh 1m -- mytool jobs list --json

  # One-shot agenda for scripts
  cronview --print agenda --json -- mytool jobs list --json

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}

// openFileLogHandler creates a slog.JSONHandler appending to the given
// file path. Returns the handler, a cleanup function to close the
// file, and any error. Append rather than truncate: one log file can
// span many dashboard sessions.
func openFileLogHandler(path string, level slog.Level) (slog.Handler, func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: level})
	return handler, func() { file.Close() }, nil
}

// fanoutHandler is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type fanoutHandler []slog.Handler

func (handlers fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range handlers {
		if handler.Enabled(ctx, record.Level) {
			if err := handler.Handle(ctx, record); err != nil {
				return err
			}
		}
	}
	return nil
}

func (handlers fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers fanoutHandler) WithGroup(name string) slog.Handler {
	derived := make(fanoutHandler, len(handlers))
	for index, handler := range handlers {
		derived[index] = handler.WithGroup(name)
	}
	return derived
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the cronview configuration.
type Config struct {
	// Source selects where the job list comes from.
	Source SourceConfig `yaml:"source"`

	// AgentsFile is an optional JSONC file mapping agent identifiers
	// to model display names.
	AgentsFile string `yaml:"agents_file"`

	// WeekStart is the first day of the week grid: "monday" through
	// "sunday". Default: monday.
	WeekStart string `yaml:"week_start"`

	// Timezone overrides the display timezone (IANA name). Empty
	// means the machine's local zone. Affects day grouping and
	// headings only; job schedules keep their own zones.
	Timezone string `yaml:"timezone"`

	// Log configures slog output.
	Log LogConfig `yaml:"log"`
}

// SourceConfig selects the job list source. At most one of Command
// and File may be set; when both are empty the command line must
// supply one.
type SourceConfig struct {
	// Command is the automation CLI invocation that prints the job
	// list, argv form.
	Command []string `yaml:"command"`

	// File is a jobs JSON file to read and watch.
	File string `yaml:"file"`

	// Refresh is the polling interval for command mode.
	// Default: 30s.
	Refresh Duration `yaml:"refresh"`
}

// LogConfig configures slog output.
type LogConfig struct {
	// File receives JSON log lines when set. In TUI mode this is the
	// only place full records go; the status bar shows warnings.
	File string `yaml:"file"`

	// Level is the minimum record level: debug, info, warn, or
	// error. Default: info.
	Level string `yaml:"level"`
}

// Duration wraps time.Duration so YAML scalars like "30s" and "5m"
// parse with time.ParseDuration.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// Default returns the built-in configuration: no source selected,
// Monday weeks, 30 second refresh, info-level logging.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Refresh: Duration{30 * time.Second},
		},
		WeekStart: "monday",
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves the configuration path and loads it. An explicit path
// (from the --config flag) must exist; so must a path named by
// CRONVIEW_CONFIG. The fallback location under ~/.config may be
// absent, in which case the defaults apply unchanged.
func Load(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}
	if envPath := os.Getenv("CRONVIEW_CONFIG"); envPath != "" {
		return LoadFile(envPath)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	configuration, err := LoadFile(filepath.Join(home, ".config", "cronview", "config.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return configuration, err
}

// LoadFile loads configuration from a specific file. Unknown keys are
// rejected, so a typo in the file surfaces instead of silently using
// a default. An empty file yields the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	configuration := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(configuration); err != nil {
		if errors.Is(err, io.EOF) {
			return configuration, nil
		}
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return configuration, nil
}

// Validate checks the configuration, collecting every problem rather
// than stopping at the first.
func (c *Config) Validate() error {
	var errs []error

	if c.Source.File != "" && len(c.Source.Command) > 0 {
		errs = append(errs, errors.New("source.file and source.command are mutually exclusive"))
	}
	if c.Source.Refresh.Duration <= 0 {
		errs = append(errs, errors.New("source.refresh must be positive"))
	}
	if _, err := ParseWeekStart(c.WeekStart); err != nil {
		errs = append(errs, err)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			errs = append(errs, fmt.Errorf("unknown timezone %q", c.Timezone))
		}
	}
	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ParseWeekStart maps a lowercase day name to its time.Weekday.
func ParseWeekStart(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	case "sunday":
		return time.Sunday, nil
	}
	return time.Monday, fmt.Errorf("invalid week start %q (use monday through sunday)", name)
}

// ParseLogLevel maps a level name to its slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (use debug, info, warn, or error)", name)
}

// Copyright 2026 The Cronview Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Source.Refresh.Duration != 30*time.Second {
		t.Errorf("expected refresh=30s, got %s", cfg.Source.Refresh.Duration)
	}

	if cfg.WeekStart != "monday" {
		t.Errorf("expected week_start=monday, got %s", cfg.WeekStart)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("expected log level=info, got %s", cfg.Log.Level)
	}

	if cfg.Source.File != "" || len(cfg.Source.Command) != 0 {
		t.Errorf("expected no source selected, got file=%q command=%v",
			cfg.Source.File, cfg.Source.Command)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	configPath := writeConfig(t, `
source:
  command: ["automation", "jobs", "list", "--json"]
  refresh: 2m

agents_file: /etc/cronview/agents.json
week_start: sunday
timezone: America/New_York

log:
  file: /tmp/cronview.log
  level: debug
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	wantCommand := []string{"automation", "jobs", "list", "--json"}
	if len(cfg.Source.Command) != len(wantCommand) {
		t.Fatalf("expected command=%v, got %v", wantCommand, cfg.Source.Command)
	}
	for i, arg := range wantCommand {
		if cfg.Source.Command[i] != arg {
			t.Errorf("command[%d]: expected %q, got %q", i, arg, cfg.Source.Command[i])
		}
	}

	if cfg.Source.Refresh.Duration != 2*time.Minute {
		t.Errorf("expected refresh=2m, got %s", cfg.Source.Refresh.Duration)
	}

	if cfg.AgentsFile != "/etc/cronview/agents.json" {
		t.Errorf("expected agents_file=/etc/cronview/agents.json, got %s", cfg.AgentsFile)
	}

	if cfg.WeekStart != "sunday" {
		t.Errorf("expected week_start=sunday, got %s", cfg.WeekStart)
	}

	if cfg.Timezone != "America/New_York" {
		t.Errorf("expected timezone=America/New_York, got %s", cfg.Timezone)
	}

	if cfg.Log.File != "/tmp/cronview.log" {
		t.Errorf("expected log file=/tmp/cronview.log, got %s", cfg.Log.File)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level=debug, got %s", cfg.Log.Level)
	}
}

func TestLoadFilePartial(t *testing.T) {
	// Keys the file omits keep their defaults.
	configPath := writeConfig(t, `
source:
  file: /var/lib/jobs.json
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Source.File != "/var/lib/jobs.json" {
		t.Errorf("expected file=/var/lib/jobs.json, got %s", cfg.Source.File)
	}

	if cfg.Source.Refresh.Duration != 30*time.Second {
		t.Errorf("expected default refresh=30s, got %s", cfg.Source.Refresh.Duration)
	}

	if cfg.WeekStart != "monday" {
		t.Errorf("expected default week_start=monday, got %s", cfg.WeekStart)
	}
}

func TestLoadFileEmpty(t *testing.T) {
	configPath := writeConfig(t, "")

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed on empty file: %v", err)
	}

	if cfg.Source.Refresh.Duration != 30*time.Second {
		t.Errorf("expected default refresh=30s, got %s", cfg.Source.Refresh.Duration)
	}
}

func TestLoadFileUnknownKey(t *testing.T) {
	configPath := writeConfig(t, `
week_start: monday
weekstart: sunday
`)

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "weekstart") {
		t.Errorf("expected error to name the unknown key, got %v", err)
	}
}

func TestLoadFileBadDuration(t *testing.T) {
	configPath := writeConfig(t, `
source:
  refresh: soonish
`)

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("expected error for unparseable duration, got nil")
	}
	if !strings.Contains(err.Error(), "soonish") {
		t.Errorf("expected error to quote the bad value, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadExplicitPath(t *testing.T) {
	configPath := writeConfig(t, "week_start: friday\n")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WeekStart != "friday" {
		t.Errorf("expected week_start=friday, got %s", cfg.WeekStart)
	}
}

func TestLoadExplicitPathMissing(t *testing.T) {
	// A path the user named must exist; only the home fallback is
	// allowed to be absent.
	_, err := Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config, got nil")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	configPath := writeConfig(t, "timezone: Europe/Berlin\n")
	t.Setenv("CRONVIEW_CONFIG", configPath)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("expected timezone=Europe/Berlin, got %s", cfg.Timezone)
	}
}

func TestLoadHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CRONVIEW_CONFIG", "")

	// No file under ~/.config/cronview yet: defaults apply.
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load without a config file failed: %v", err)
	}
	if cfg.WeekStart != "monday" {
		t.Errorf("expected default week_start=monday, got %s", cfg.WeekStart)
	}

	configDir := filepath.Join(home, ".config", "cronview")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	content := []byte("week_start: saturday\n")
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.WeekStart != "saturday" {
		t.Errorf("expected week_start=saturday, got %s", cfg.WeekStart)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid full config",
			modify: func(c *Config) {
				c.Source.Command = []string{"automation", "jobs", "list"}
				c.AgentsFile = "/etc/cronview/agents.json"
				c.WeekStart = "sunday"
				c.Timezone = "Asia/Tokyo"
				c.Log.Level = "warn"
			},
			wantErr: false,
		},
		{
			name: "file and command both set",
			modify: func(c *Config) {
				c.Source.File = "/var/lib/jobs.json"
				c.Source.Command = []string{"automation", "jobs", "list"}
			},
			wantErr: true,
		},
		{
			name: "zero refresh",
			modify: func(c *Config) {
				c.Source.Refresh = Duration{}
			},
			wantErr: true,
		},
		{
			name: "negative refresh",
			modify: func(c *Config) {
				c.Source.Refresh = Duration{-time.Second}
			},
			wantErr: true,
		},
		{
			name: "invalid week start",
			modify: func(c *Config) {
				c.WeekStart = "caturday"
			},
			wantErr: true,
		},
		{
			name: "invalid timezone",
			modify: func(c *Config) {
				c.Timezone = "Nowhere/Void"
			},
			wantErr: true,
		},
		{
			name: "invalid log level",
			modify: func(c *Config) {
				c.Log.Level = "loud"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.WeekStart = "caturday"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "caturday") {
		t.Errorf("expected error to mention week start, got %v", err)
	}
	if !strings.Contains(err.Error(), "loud") {
		t.Errorf("expected error to mention log level, got %v", err)
	}
}

func TestParseWeekStart(t *testing.T) {
	tests := []struct {
		name string
		want time.Weekday
	}{
		{"monday", time.Monday},
		{"tuesday", time.Tuesday},
		{"wednesday", time.Wednesday},
		{"thursday", time.Thursday},
		{"friday", time.Friday},
		{"saturday", time.Saturday},
		{"sunday", time.Sunday},
		{"Sunday", time.Sunday},
		{"MONDAY", time.Monday},
	}

	for _, tt := range tests {
		day, err := ParseWeekStart(tt.name)
		if err != nil {
			t.Errorf("ParseWeekStart(%q) failed: %v", tt.name, err)
			continue
		}
		if day != tt.want {
			t.Errorf("ParseWeekStart(%q) = %v, want %v", tt.name, day, tt.want)
		}
	}

	if _, err := ParseWeekStart("caturday"); err == nil {
		t.Error("expected error for invalid day name, got nil")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"Error", "ERROR"},
	}

	for _, tt := range tests {
		level, err := ParseLogLevel(tt.name)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) failed: %v", tt.name, err)
			continue
		}
		if level.String() != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.name, level, tt.want)
		}
	}

	if _, err := ParseLogLevel("loud"); err == nil {
		t.Error("expected error for invalid level name, got nil")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

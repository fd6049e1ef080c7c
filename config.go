package main

import (
	"fmt"
	"log/slog"
	"strings"
)

// Environment variables read by loadConfig.
const (
	envLogLevel  = "TESTLIST_LOG_LEVEL"
	envTemplates = "TESTLIST_TEMPLATES"
	envNoColor   = "NO_COLOR"
)

// Config holds the settings that are not part of the command line.
type Config struct {
	// LogLevel is the minimum level written to standard error.
	LogLevel slog.Level

	// Templates is an optional txtar archive overriding the embedded templates.
	Templates string

	// NoColor disables ANSI colours in log output.
	NoColor bool
}

// DefaultConfig returns the configuration used when the environment sets nothing.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: slog.LevelWarn,
	}
}

// loadConfig builds a Config from getenv. Unrecognised values are reported in
// the returned warnings and leave the default in place.
func loadConfig(getenv func(string) string) (cfg *Config, warnings []string) {
	cfg = DefaultConfig()

	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: %v", envLogLevel, v, err))
		} else {
			cfg.LogLevel = level
		}
	}
	cfg.Templates = getenv(envTemplates)
	cfg.NoColor = getenv(envNoColor) != ""

	return cfg, warnings
}

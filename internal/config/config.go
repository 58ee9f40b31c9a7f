package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultCount      = 10
	DefaultColor      = "auto"
	DefaultTasksFile  = "tasks.md"
	DefaultSpecsDir   = "specs"
	DefaultMaxLevels  = 10
	DefaultGitTimeout = 2 * time.Second
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

var (
	// ErrInvalidCount is returned for a negative task count.
	ErrInvalidCount = errors.New("count must be zero or greater")
	// ErrInvalidColor is returned for a color mode other than auto, always or never.
	ErrInvalidColor = errors.New("color must be auto, always or never")
)

// Config holds the full configuration for sknext.
type Config struct {
	// View
	Count int    `toml:"count"`
	Color string `toml:"color"`

	// Discovery
	TasksFile  string        `toml:"tasks_file"`
	SpecsDir   string        `toml:"specs_dir"`
	MaxLevels  int           `toml:"max_levels"`
	GitTimeout time.Duration `toml:"git_timeout"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Sources maps each key to the layer that last set it.
	Sources map[string]ConfigSource `toml:"-"`
	// Files lists the config files that were read, in load order.
	Files []string `toml:"-"`
	// Warnings collects problems that did not stop loading, such as unknown
	// keys or unparsable environment values.
	Warnings []string `toml:"-"`
}

// configFields returns the configurable keys for source tracking.
func configFields() []string {
	return []string{
		"count",
		"color",
		"tasks_file",
		"specs_dir",
		"max_levels",
		"git_timeout",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// Default returns a config holding only built-in defaults.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Count = DefaultCount
	cfg.Color = DefaultColor
	cfg.TasksFile = DefaultTasksFile
	cfg.SpecsDir = DefaultSpecsDir
	cfg.MaxLevels = DefaultMaxLevels
	cfg.GitTimeout = DefaultGitTimeout
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false

	cfg.Sources = make(map[string]ConfigSource)
	for _, field := range configFields() {
		cfg.Sources[field] = SourceDefault
	}
}

// Source returns where the value for key came from.
func (c *Config) Source(key string) ConfigSource {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

func (c *Config) set(key string, source ConfigSource) {
	if c.Sources == nil {
		c.Sources = make(map[string]ConfigSource)
	}
	c.Sources[key] = source
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Validate checks values that no later stage can recover from.
func (c *Config) Validate() error {
	if c.Count < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, c.Count)
	}
	switch strings.ToLower(strings.TrimSpace(c.Color)) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidColor, c.Color)
	}
	if c.MaxLevels <= 0 {
		return fmt.Errorf("max_levels must be positive: got %d", c.MaxLevels)
	}
	if c.GitTimeout <= 0 {
		return fmt.Errorf("git_timeout must be positive: got %s", c.GitTimeout)
	}
	if strings.TrimSpace(c.TasksFile) == "" {
		return errors.New("tasks_file must not be empty")
	}
	if strings.TrimSpace(c.SpecsDir) == "" {
		return errors.New("specs_dir must not be empty")
	}
	return nil
}

// boolFromString reports whether s spells a true value.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

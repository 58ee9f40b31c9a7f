package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvCount         = "SKNEXT_COUNT"
	EnvColor         = "SKNEXT_COLOR"
	EnvTasksFile     = "SKNEXT_TASKS_FILE"
	EnvSpecsDir      = "SKNEXT_SPECS_DIR"
	EnvMaxLevels     = "SKNEXT_MAX_LEVELS"
	EnvGitTimeout    = "SKNEXT_GIT_TIMEOUT"
	EnvLogLevel      = "SKNEXT_LOG_LEVEL"
	EnvLogFormat     = "SKNEXT_LOG_FORMAT"
	EnvLogTimestamps = "SKNEXT_LOG_TIMESTAMPS"
)

// loadFromEnv overrides config from SKNEXT_* environment variables.
// Values that do not parse are skipped with a warning.
func loadFromEnv(cfg *Config) {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			cfg.set(field, SourceEnv)
		}
	}
	setInt := func(env, field string, target *int) {
		v := os.Getenv(env)
		if v == "" {
			return
		}
		i, err := strconv.Atoi(v)
		if err != nil {
			cfg.warnf("ignoring %s=%q: not an integer", env, v)
			return
		}
		*target = i
		cfg.set(field, SourceEnv)
	}

	setInt(EnvCount, "count", &cfg.Count)
	setString(EnvColor, "color", &cfg.Color)
	setString(EnvTasksFile, "tasks_file", &cfg.TasksFile)
	setString(EnvSpecsDir, "specs_dir", &cfg.SpecsDir)
	setInt(EnvMaxLevels, "max_levels", &cfg.MaxLevels)

	if v := os.Getenv(EnvGitTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			cfg.warnf("ignoring %s=%q: %v", EnvGitTimeout, v, err)
		} else {
			cfg.GitTimeout = d
			cfg.set("git_timeout", SourceEnv)
		}
	}

	// Logging configuration
	setString(EnvLogLevel, "log_level", &cfg.LogLevel)
	setString(EnvLogFormat, "log_format", &cfg.LogFormat)
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		cfg.set("log_timestamps", SourceEnv)
	}
}

package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the configuration flags registered on a flag set. Values only
// override the config when the flag was given on the command line.
type Flags struct {
	ConfigFile string

	count     int
	color     string
	logLevel  string
	logFormat string

	fs *pflag.FlagSet
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.IntVarP(&f.count, "count", "n", DefaultCount, "Number of tasks to display")
	fs.StringVar(&f.color, "color", DefaultColor, "Color output: auto, always or never")
	fs.StringVar(&f.logLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&f.logFormat, "log-format", DefaultLogFormat, "Log format: text, json or logfmt")
	fs.StringVar(&f.ConfigFile, "config", "", "Path to a config file (replaces the project config file)")
	return f
}

// apply copies explicitly set flags into cfg.
func (f *Flags) apply(cfg *Config) {
	if f.fs == nil {
		return
	}
	if f.fs.Changed("count") {
		cfg.Count = f.count
		cfg.set("count", SourceFlag)
	}
	if f.fs.Changed("color") {
		cfg.Color = f.color
		cfg.set("color", SourceFlag)
	}
	if f.fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
		cfg.set("log_level", SourceFlag)
	}
	if f.fs.Changed("log-format") {
		cfg.LogFormat = f.logFormat
		cfg.set("log_format", SourceFlag)
	}
}

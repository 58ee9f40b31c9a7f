// Package cmd implements the sknext command line.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/natefinch/atomic"
	flag "github.com/spf13/pflag"

	"github.com/nibzard/sknext/internal/config"
	"github.com/nibzard/sknext/internal/discovery"
	"github.com/nibzard/sknext/internal/export"
	"github.com/nibzard/sknext/internal/logging"
	"github.com/nibzard/sknext/internal/render"
	"github.com/nibzard/sknext/internal/tasks"
	"github.com/nibzard/sknext/internal/ui"
	"github.com/nibzard/sknext/internal/view"
)

// Version is set via ldflags at build time.
var Version = "dev"

// gitRoot answers the git step of discovery. Tests replace it.
var gitRoot discovery.GitRootFunc = discovery.GitTopLevel

// runTUI starts the interactive viewer. Tests replace it.
var runTUI = ui.RunTUI

// options holds the parsed command line.
type options struct {
	cfgFlags *config.Flags
	view     view.Flags

	json          bool
	yaml          bool
	output        string
	tui           bool
	help          bool
	version       bool
	exampleConfig bool

	file string
}

func newFlagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("sknext", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	opts.cfgFlags = config.RegisterFlags(fs)
	fs.BoolVar(&opts.view.PhasesOnly, "phases-only", false, "Show only phases with uncompleted work (no sections or tasks)")
	fs.BoolVar(&opts.view.Structure, "structure", false, "Show phases and sections with uncompleted work (no tasks)")
	fs.BoolVar(&opts.view.AllPhases, "all-phases", false, "Show all incomplete phases followed by next N tasks")
	fs.BoolVar(&opts.view.TasksOnly, "tasks-only", false, "Show only task lines without phase or section headings")
	fs.BoolVar(&opts.view.All, "all", false, "Show all remaining tasks with full context (ignores -n)")
	fs.BoolVar(&opts.json, "json", false, "Print the view as JSON")
	fs.BoolVar(&opts.yaml, "yaml", false, "Print the view as YAML")
	fs.StringVarP(&opts.output, "output", "o", "", "Write output to `file` instead of stdout")
	fs.BoolVar(&opts.tui, "tui", false, "Open the interactive viewer")
	fs.BoolVar(&opts.exampleConfig, "example-config", false, "Print an example config file")
	fs.BoolVarP(&opts.help, "help", "h", false, "Show help")
	fs.BoolVar(&opts.version, "version", false, "Show version")
	return fs
}

// Run executes the sknext CLI. Output goes to stdout and diagnostics to
// stderr. Errors are returned unprinted; use PrintError and ExitCode.
// A panic is recovered and returned as an error.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	var opts options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return &UsageError{Err: err}
	}

	if opts.help {
		printUsage(fs, stdout)
		return nil
	}
	if opts.version {
		fmt.Fprintf(stdout, "sknext version %s\n", Version)
		return nil
	}
	if opts.exampleConfig {
		_, err := io.WriteString(stdout, config.ExampleConfig())
		return err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		opts.file = rest[0]
	default:
		return usageErrorf("unexpected arguments: %v", rest[1:])
	}
	if opts.json && opts.yaml {
		return usageErrorf("--json and --yaml are mutually exclusive")
	}
	if opts.tui && (opts.json || opts.yaml || opts.output != "") {
		return usageErrorf("--tui cannot be combined with --json, --yaml or --output")
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Load(opts.cfgFlags, wd)
	if err != nil {
		return &UsageError{Err: fmt.Errorf("loading config: %w", err)}
	}
	logger, err := logging.New(stderr, logging.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		Timestamps: cfg.LogTimestamps,
	})
	if err != nil {
		return &UsageError{Err: err}
	}
	logConfig(logger, cfg)

	color, err := render.ParseColorMode(cfg.Color)
	if err != nil {
		return &UsageError{Err: err}
	}
	mode := view.SelectMode(opts.view)

	path, found, err := resolveTasksFile(ctx, cfg, logger, wd, opts.file)
	if err != nil {
		return err
	}

	if opts.tui {
		return runTUI(ctx, ui.Options{
			Path:  path,
			Mode:  mode,
			Count: cfg.Count,
			Color: color,
			Load: func() (*tasks.Document, error) {
				return tasks.ParseFile(path)
			},
		})
	}

	doc, err := tasks.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Debug("parsed document", "path", path, "phases", len(doc.Phases), "remaining", len(doc.UncompletedTasks()))
	if doc.HasErrors() {
		return &ParseErrors{Path: path, Errors: doc.Errors}
	}

	plan := view.Build(doc, mode, cfg.Count)
	logger.Debug("built view", "mode", mode, "count", cfg.Count, "shown", plan.Shown)

	var out bytes.Buffer
	if opts.json || opts.yaml {
		if found {
			fmt.Fprintf(stderr, "Found: %s\n", path)
		}
		write := export.Write
		if opts.yaml {
			write = export.WriteYAML
		}
		if err := write(&out, plan, path); err != nil {
			return err
		}
	} else {
		target := stdout
		if opts.output != "" {
			target = &out
		}
		term := render.NewTerminal(target, color)
		if found {
			out.WriteString(term.Note("Found: "+path) + "\n\n")
		}
		out.WriteString(term.Format(plan))
	}

	return writeOutput(stdout, opts.output, out.Bytes())
}

// resolveTasksFile returns the task file named on the command line, or the one
// found by discovery from wd. found reports whether discovery was used.
func resolveTasksFile(ctx context.Context, cfg *config.Config, logger *log.Logger, wd, file string) (path string, found bool, err error) {
	if file != "" {
		return file, false, nil
	}
	finder := &discovery.Finder{
		SpecsDir:   cfg.SpecsDir,
		TasksFile:  cfg.TasksFile,
		MaxLevels:  cfg.MaxLevels,
		GitTimeout: cfg.GitTimeout,
		GitRoot:    gitRoot,
		Logger:     logger,
	}
	path, err = finder.Discover(ctx, wd)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}

// writeOutput writes data to the output file atomically, or to stdout.
func writeOutput(stdout io.Writer, output string, data []byte) error {
	if output == "" {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		return nil
	}
	if err := atomic.WriteFile(output, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}

func logConfig(logger *log.Logger, cfg *config.Config) {
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}
	for _, file := range cfg.Files {
		logger.Debug("loaded config file", "path", file)
	}
	logger.Debug("config",
		"count", cfg.Count, "count_source", cfg.Source("count"),
		"color", cfg.Color, "color_source", cfg.Source("color"),
		"specs_dir", cfg.SpecsDir, "tasks_file", cfg.TasksFile,
		"git_timeout", cfg.GitTimeout,
	)
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "sknext - Task status viewer for speckit projects")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  sknext [options] [file]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shows the next uncompleted tasks of a tasks.md file with their phase and")
	fmt.Fprintln(w, "section context. Without a file, the tasks.md of the highest numbered")
	fmt.Fprintln(w, "specs/###-name/ directory in the current repository is used.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "When several view options are given, the first of --phases-only,")
	fmt.Fprintln(w, "--structure, --all-phases, --tasks-only and --all wins.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  task file or repository not found")
	fmt.Fprintln(w, "  2  parse errors in the task file")
	fmt.Fprintln(w, "  3  any other error")
}

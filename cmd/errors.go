package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/nibzard/sknext/internal/discovery"
	"github.com/nibzard/sknext/internal/tasks"
)

// Exit codes.
const (
	ExitOK          = 0
	ExitNotFound    = 1
	ExitParseErrors = 2
	ExitFailure     = 3
)

// UsageError reports bad flags, arguments or configuration.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// ParseErrors reports structural problems found in the task file.
type ParseErrors struct {
	Path   string
	Errors []tasks.ParseError
}

func (e *ParseErrors) Error() string {
	return fmt.Sprintf("%s: %d parse errors", e.Path, len(e.Errors))
}

// ExitCode maps an error returned by Run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitFailure
	}
	var parse *ParseErrors
	if errors.As(err, &parse) {
		return ExitParseErrors
	}
	var disc *discovery.Error
	if errors.As(err, &disc) || tasks.IsNotFound(err) {
		return ExitNotFound
	}
	return ExitFailure
}

// PrintError reports err on w in the form matching its exit code.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	var parse *ParseErrors
	if errors.As(err, &parse) {
		fmt.Fprintln(w, "Parse errors found:")
		for _, pe := range parse.Errors {
			fmt.Fprintf(w, "  Line %d: %s - %s\n", pe.Line, pe.Kind, pe.Message)
			fmt.Fprintf(w, "  %s\n", pe.Content)
		}
		return
	}

	var usage *UsageError
	switch {
	case errors.As(err, &usage):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "Run 'sknext --help' for usage.")
	case ExitCode(err) == ExitNotFound:
		fmt.Fprintf(w, "Error: %v\n", err)
	default:
		fmt.Fprintf(w, "Unexpected error: %v\n", err)
	}
}

package tasks

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrFileNotFound is returned when the task file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrorKind labels a structural parse problem.
type ErrorKind string

const (
	KindMalformedTask  ErrorKind = "MalformedTask"
	KindInvalidHeading ErrorKind = "InvalidHeading"
)

// ParseError describes a structural problem on a single line.
//
// The documented grammar never produces one: lines that match nothing are
// inert. The type exists so that a stricter grammar can report problems
// without changing the Document shape or the CLI exit codes.
type ParseError struct {
	Line    int       // 1-based line number
	Content string    // Offending line text
	Kind    ErrorKind // Error category
	Message string    // Human-readable description
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Kind, e.Message)
}

// IsNotFound reports whether err means a file could not be found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFileNotFound) || errors.Is(err, fs.ErrNotExist)
}

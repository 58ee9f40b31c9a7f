package discovery

import (
	"fmt"
	"io/fs"
)

// ErrorKind says which discovery step came up empty.
type ErrorKind int

const (
	// NoRoot means no repository root was found above the start directory.
	NoRoot ErrorKind = iota + 1
	// NoSpecsDir means the root has no specs directory.
	NoSpecsDir
	// NoFeatureDirs means the specs directory has no "<digits>-<name>" entries.
	NoFeatureDirs
	// NoTasksFile means the latest feature directory has no task file.
	NoTasksFile
)

func (k ErrorKind) String() string {
	switch k {
	case NoRoot:
		return "NoRoot"
	case NoSpecsDir:
		return "NoSpecsDir"
	case NoFeatureDirs:
		return "NoFeatureDirs"
	case NoTasksFile:
		return "NoTasksFile"
	}
	return "Unknown"
}

// Error reports a failed discovery step. Every Error matches fs.ErrNotExist.
type Error struct {
	Kind ErrorKind
	Path string // Directory that was searched
	Name string // Specs directory or task file name that was expected
}

func (e *Error) Error() string {
	switch e.Kind {
	case NoRoot:
		return fmt.Sprintf("No repository root found above %s (looked for a git repository, .git/.hg/.svn or a specs/ directory)", e.Path)
	case NoSpecsDir:
		return fmt.Sprintf("No %s/ directory found in %s", e.Name, e.Path)
	case NoFeatureDirs:
		return fmt.Sprintf("No feature directories found in %s (expected format: ###-name)", e.Path)
	case NoTasksFile:
		return fmt.Sprintf("No %s found in %s", e.Name, e.Path)
	}
	return fmt.Sprintf("Discovery failed in %s", e.Path)
}

// Is makes discovery errors match fs.ErrNotExist.
func (e *Error) Is(target error) bool {
	return target == fs.ErrNotExist
}

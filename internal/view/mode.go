package view

import (
	"fmt"
)

// Mode selects which view a plan is built for.
type Mode int

const (
	ModeDefault Mode = iota
	ModeAll
	ModePhasesOnly
	ModeStructure
	ModeCombined
	ModeTasksOnly
)

var modeNames = map[Mode]string{
	ModeDefault:    "default",
	ModeAll:        "all",
	ModePhasesOnly: "phases-only",
	ModeStructure:  "structure",
	ModeCombined:   "all-phases",
	ModeTasksOnly:  "tasks-only",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Modes lists every mode in menu order.
func Modes() []Mode {
	return []Mode{ModeDefault, ModePhasesOnly, ModeStructure, ModeCombined, ModeTasksOnly, ModeAll}
}

// Flags are the view switches accepted on the command line.
type Flags struct {
	PhasesOnly bool
	Structure  bool
	AllPhases  bool
	TasksOnly  bool
	All        bool
}

// SelectMode resolves the view flags to a single mode. When several are set,
// phases-only wins over structure, then all-phases, tasks-only, and all.
func SelectMode(f Flags) Mode {
	switch {
	case f.PhasesOnly:
		return ModePhasesOnly
	case f.Structure:
		return ModeStructure
	case f.AllPhases:
		return ModeCombined
	case f.TasksOnly:
		return ModeTasksOnly
	case f.All:
		return ModeAll
	default:
		return ModeDefault
	}
}

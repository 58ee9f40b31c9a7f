package tasks

import "strconv"

// Task is a single checkbox work item.
type Task struct {
	ID          string // Task identifier, e.g. "T001"
	Description string // Trimmed description, markers retained
	Completed   bool   // Checkbox holds anything but a single space
	Priority    bool   // Description contains "[P]"
	StoryTag    string // "US<n>" from the first "[US<n>]" marker, or empty
	Line        int    // 1-based source line
	Raw         string // Source line as read, for diagnostics
}

// Section groups tasks within a phase.
//
// An empty Title marks an implicit section: tasks that followed a phase heading
// before any section heading. Views never print a heading for it.
type Section struct {
	Title   string
	Level   int
	Tasks   []Task
	Line    int
	Purpose string // Optional annotation; empty when absent
}

// IsImplicit reports whether the section was opened implicitly by a task line.
func (s *Section) IsImplicit() bool {
	return s.Title == ""
}

// HasUncompleted reports whether any task in the section is still open.
func (s *Section) HasUncompleted() bool {
	for i := range s.Tasks {
		if !s.Tasks[i].Completed {
			return true
		}
	}
	return false
}

// UncompletedCount returns the number of open tasks.
func (s *Section) UncompletedCount() int {
	n := 0
	for i := range s.Tasks {
		if !s.Tasks[i].Completed {
			n++
		}
	}
	return n
}

// TotalCount returns the number of tasks in the section.
func (s *Section) TotalCount() int {
	return len(s.Tasks)
}

// Phase is a numbered project stage. Numbers are neither unique nor ordered;
// file order governs display.
type Phase struct {
	Number   int
	Digits   string // Phase number as written when it does not fit in Number
	Title    string
	Sections []Section
	Line     int
}

// Label returns the phase number as displayed.
func (p *Phase) Label() string {
	if p.Digits != "" {
		return p.Digits
	}
	return strconv.Itoa(p.Number)
}

// HasUncompletedWork reports whether any section still has open tasks.
func (p *Phase) HasUncompletedWork() bool {
	for i := range p.Sections {
		if p.Sections[i].HasUncompleted() {
			return true
		}
	}
	return false
}

// UncompletedCount returns the number of open tasks across all sections.
func (p *Phase) UncompletedCount() int {
	n := 0
	for i := range p.Sections {
		n += p.Sections[i].UncompletedCount()
	}
	return n
}

// TotalCount returns the number of tasks across all sections.
func (p *Phase) TotalCount() int {
	n := 0
	for i := range p.Sections {
		n += p.Sections[i].TotalCount()
	}
	return n
}

// Document is the parsed form of a task file.
type Document struct {
	Path   string
	Phases []Phase
	Errors []ParseError
}

// AllTasks returns every task in phase, section, task order.
func (d *Document) AllTasks() []Task {
	var all []Task
	for pi := range d.Phases {
		for si := range d.Phases[pi].Sections {
			all = append(all, d.Phases[pi].Sections[si].Tasks...)
		}
	}
	return all
}

// UncompletedTasks returns the open tasks in file order.
func (d *Document) UncompletedTasks() []Task {
	var open []Task
	for _, t := range d.AllTasks() {
		if !t.Completed {
			open = append(open, t)
		}
	}
	return open
}

// PhasesWithWork returns the phases that still have open tasks, in file order.
func (d *Document) PhasesWithWork() []Phase {
	var phases []Phase
	for i := range d.Phases {
		if d.Phases[i].HasUncompletedWork() {
			phases = append(phases, d.Phases[i])
		}
	}
	return phases
}

// IsComplete reports whether no open task remains.
func (d *Document) IsComplete() bool {
	for pi := range d.Phases {
		if d.Phases[pi].HasUncompletedWork() {
			return false
		}
	}
	return true
}

// HasErrors reports whether structural parse errors were recorded.
func (d *Document) HasErrors() bool {
	return len(d.Errors) > 0
}

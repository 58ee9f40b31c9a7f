// Package tasks parses speckit task files into a phase/section/task hierarchy.
//
// The task file is a markdown subset. Only three kinds of line carry meaning:
//
//	## Phase 1: Setup                  phase heading
//	### Infrastructure                 section heading (level = number of #, >= 3)
//	- [ ] T001 [P] [US1] Create repo   task line
//
// Everything else (prose, separators, purpose notes, code blocks) is inert and
// is skipped without being recorded as an error.
//
// # Task Lines
//
// The checkbox holds exactly one character. A single space means the task is
// open; any other character ("x", "X", "~", "*", ...) means it is completed.
// Task identifiers are "T" followed by at least three digits.
//
// Two markers are recognised anywhere in the description:
//   - "[P]" marks the task as parallelizable/priority
//   - "[US<n>]" links the task to a user story; only the first one counts
//
// # Hierarchy
//
// A Document owns its Phases, a Phase owns its Sections, and a Section owns its
// Tasks. Nothing points back to its parent. Use Document.Index or
// Document.Locate to recover the enclosing phase and section of a task.
//
// Tasks that follow a phase heading before any section heading are collected
// into an implicit Section with an empty title. Tasks that appear
// before the first phase heading are dropped.
package tasks

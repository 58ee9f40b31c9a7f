package tasks

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultSectionLevel is the heading level given to implicit sections.
const DefaultSectionLevel = 3

// PriorityMarker flags a task as priority when present in its description.
const PriorityMarker = "[P]"

var (
	phasePattern   = regexp.MustCompile(`^## Phase (\d+):\s*(.+)$`)
	sectionPattern = regexp.MustCompile(`^(#{3,})\s+(.+)$`)
	taskPattern    = regexp.MustCompile(`^-\s+\[(.)\]\s+(T\d{3,})\s+(.+)$`)
	storyPattern   = regexp.MustCompile(`\[US(\d+)\]`)
)

// phaseHeading is a matched "## Phase N: Title" line.
type phaseHeading struct {
	number int
	digits string // set only when number was clamped
	title  string
}

// sectionHeading is a matched "### Title" line.
type sectionHeading struct {
	level int
	title string
}

// taskLine is a matched "- [ ] T001 Description" line.
type taskLine struct {
	checkbox    string
	id          string
	description string
}

// matchPhase reports whether line is a phase heading.
// A phase number that overflows int is clamped to math.MaxInt and its digits
// are kept for display.
func matchPhase(line string) (phaseHeading, bool) {
	m := phasePattern.FindStringSubmatch(line)
	if m == nil {
		return phaseHeading{}, false
	}
	h := phaseHeading{title: strings.TrimSpace(m[2])}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		h.number = math.MaxInt
		h.digits = strings.TrimLeft(m[1], "0")
		return h, true
	}
	h.number = n
	return h, true
}

// matchSection reports whether line is a section heading of level 3 or deeper.
func matchSection(line string) (sectionHeading, bool) {
	m := sectionPattern.FindStringSubmatch(line)
	if m == nil {
		return sectionHeading{}, false
	}
	return sectionHeading{level: len(m[1]), title: strings.TrimSpace(m[2])}, true
}

// matchTask reports whether line is a task line.
func matchTask(line string) (taskLine, bool) {
	m := taskPattern.FindStringSubmatch(line)
	if m == nil {
		return taskLine{}, false
	}
	return taskLine{
		checkbox:    m[1],
		id:          m[2],
		description: strings.TrimSpace(m[3]),
	}, true
}

// IsCompletedMark reports whether a checkbox character marks the task done.
// Only a single space means open.
func IsCompletedMark(checkbox string) bool {
	return checkbox != " "
}

// HasPriority reports whether a description carries the priority marker.
func HasPriority(description string) bool {
	return strings.Contains(description, PriorityMarker)
}

// ExtractStoryTag returns "US<n>" for the first "[US<n>]" in description, or
// an empty string.
func ExtractStoryTag(description string) string {
	m := storyPattern.FindStringSubmatch(description)
	if m == nil {
		return ""
	}
	return "US" + m[1]
}

// StripMarkers removes the priority marker and the task's story tag marker from
// its description, leaving the remaining text trimmed.
func StripMarkers(t Task) string {
	desc := t.Description
	if t.Priority {
		desc = strings.ReplaceAll(desc, PriorityMarker, "")
	}
	if t.StoryTag != "" {
		desc = strings.ReplaceAll(desc, "["+t.StoryTag+"]", "")
	}
	return strings.TrimSpace(desc)
}

// newTask builds a Task from a matched task line.
func newTask(m taskLine, lineNum int, raw string) Task {
	return Task{
		ID:          m.id,
		Description: m.description,
		Completed:   IsCompletedMark(m.checkbox),
		Priority:    HasPriority(m.description),
		StoryTag:    ExtractStoryTag(m.description),
		Line:        lineNum,
		Raw:         raw,
	}
}

// Package view turns a parsed task document into render plans.
//
// A render plan is an ordered list of lines (headings, tasks, summaries) that
// a renderer prints as-is. View selection never styles anything and never
// reorders tasks: open tasks always appear in phase, section, task file order.
package view

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a plan line.
type Kind int

const (
	KindBlank Kind = iota
	KindTitle
	KindPhase
	KindSection
	KindTask
	KindSeparator
	KindSummary
	KindNotice
)

var kindNames = map[Kind]string{
	KindBlank:     "blank",
	KindTitle:     "title",
	KindPhase:     "phase",
	KindSection:   "section",
	KindTask:      "task",
	KindSeparator: "separator",
	KindSummary:   "summary",
	KindNotice:    "notice",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// SeparatorWidth is the rune width of the rule between combined-view parts.
const SeparatorWidth = 60

// Line is one record of a render plan. Which fields are set depends on Kind:
//
//   - KindTitle, KindSummary, KindNotice: Text
//   - KindPhase: Number, Label, Title
//   - KindSection: Level, Title, Indent
//   - KindTask: TaskID, Priority, StoryTag, Text (description without markers)
type Line struct {
	Kind     Kind
	Text     string
	Number   int
	Label    string // Phase number text; Number is clamped for huge phases
	Title    string
	Level    int
	Indent   int
	TaskID   string
	Priority bool
	StoryTag string
}

// String returns the unstyled text of the line.
func (l Line) String() string {
	switch l.Kind {
	case KindPhase:
		label := l.Label
		if label == "" {
			label = strconv.Itoa(l.Number)
		}
		return fmt.Sprintf("## Phase %s: %s", label, l.Title)
	case KindSection:
		return strings.Repeat(" ", l.Indent) + strings.Repeat("#", l.Level) + " " + l.Title
	case KindTask:
		var b strings.Builder
		b.WriteString("- [ ] ")
		b.WriteString(l.TaskID)
		b.WriteByte(' ')
		if l.Priority {
			b.WriteString("[P] ")
		}
		if l.StoryTag != "" {
			b.WriteString("[" + l.StoryTag + "] ")
		}
		b.WriteString(l.Text)
		return b.String()
	case KindSeparator:
		return strings.Repeat("─", SeparatorWidth)
	case KindBlank:
		return ""
	default:
		return l.Text
	}
}

// Plan is the output of a view: what to print and the counts behind it.
type Plan struct {
	Mode          Mode
	Count         int // Requested task count
	Lines         []Line
	Shown         int // Tasks rendered
	Remaining     int // Open tasks in the document
	PhasesShown   int
	SectionsShown int
	Complete      bool // Plan is a completion notice
}

// TaskIDs returns the identifiers of the task lines in plan order.
func (p *Plan) TaskIDs() []string {
	var ids []string
	for _, l := range p.Lines {
		if l.Kind == KindTask {
			ids = append(ids, l.TaskID)
		}
	}
	return ids
}

// CountKind returns how many lines of kind k the plan holds.
func (p *Plan) CountKind(k Kind) int {
	n := 0
	for _, l := range p.Lines {
		if l.Kind == k {
			n++
		}
	}
	return n
}

func (p *Plan) add(l Line) {
	p.Lines = append(p.Lines, l)
}

func (p *Plan) blank() {
	p.add(Line{Kind: KindBlank})
}

func (p *Plan) title(text string) {
	p.add(Line{Kind: KindTitle, Text: text})
}

func (p *Plan) summary(text string) {
	p.add(Line{Kind: KindSummary, Text: text})
}

func (p *Plan) notice(text string) {
	p.add(Line{Kind: KindNotice, Text: text})
	p.Complete = true
}

package view

import (
	"fmt"
	"math"

	"github.com/nibzard/sknext/internal/tasks"
)

// Notices shown in place of a view when nothing is left to do.
const (
	NoticeTasksComplete  = "✓ All tasks complete!"
	NoticePhasesComplete = "✓ All phases complete!"
	NoticeWorkComplete   = "✓ All work complete!"
)

// ZeroCountSummary replaces the default summary when a count of zero is
// requested while work remains.
const ZeroCountSummary = "Showing 0 tasks (for VERY large values of zero)"

// Build produces the render plan for doc in the given mode. count is the
// number of tasks to show and is ignored by the phases-only, structure, and
// all views. A negative count is treated as zero.
func Build(doc *tasks.Document, mode Mode, count int) Plan {
	if count < 0 {
		count = 0
	}
	p := Plan{Mode: mode, Count: count}
	if doc == nil {
		doc = &tasks.Document{}
	}

	switch mode {
	case ModeAll:
		buildDefault(&p, doc, math.MaxInt)
	case ModePhasesOnly:
		buildPhasesOnly(&p, doc)
	case ModeStructure:
		buildStructure(&p, doc)
	case ModeCombined:
		buildCombined(&p, doc, count)
	case ModeTasksOnly:
		buildTasksOnly(&p, doc, count)
	default:
		buildDefault(&p, doc, count)
	}
	return p
}

func buildDefault(p *Plan, doc *tasks.Document, count int) {
	open := doc.UncompletedTasks()
	p.Remaining = len(open)
	if len(open) == 0 {
		p.notice(NoticeTasksComplete)
		return
	}

	zero := count == 0
	if zero {
		count = 1
	}
	shown := head(open, count)
	p.addGrouped(doc, shown)

	p.blank()
	if zero {
		p.summary(ZeroCountSummary)
		return
	}
	p.summary(remainingSummary(len(shown), len(open)))
}

func buildPhasesOnly(p *Plan, doc *tasks.Document) {
	withWork := doc.PhasesWithWork()
	p.Remaining = len(doc.UncompletedTasks())
	if len(withWork) == 0 {
		p.notice(NoticePhasesComplete)
		return
	}

	p.title("Phases with uncompleted work:")
	p.blank()
	for i := range withWork {
		p.phase(&withWork[i])
	}
	p.blank()
	p.summary(fmt.Sprintf("Showing %d of %d phases", len(withWork), len(doc.Phases)))
}

func buildStructure(p *Plan, doc *tasks.Document) {
	withWork := doc.PhasesWithWork()
	p.Remaining = len(doc.UncompletedTasks())
	if len(withWork) == 0 {
		p.notice(NoticeWorkComplete)
		return
	}

	p.title("Project structure with uncompleted work:")
	p.blank()
	for i := range withWork {
		ph := &withWork[i]
		p.phase(ph)
		for i := range ph.Sections {
			s := &ph.Sections[i]
			if !s.HasUncompleted() || s.IsImplicit() {
				continue
			}
			p.section(s, 2)
		}
		p.blank()
	}
	p.summary(fmt.Sprintf("Showing %d phases with %d sections", p.PhasesShown, p.SectionsShown))
}

func buildCombined(p *Plan, doc *tasks.Document, count int) {
	open := doc.UncompletedTasks()
	p.Remaining = len(open)
	if len(open) == 0 {
		p.notice(NoticeTasksComplete)
		return
	}

	withWork := doc.PhasesWithWork()
	p.title("Incomplete phases:")
	p.blank()
	for i := range withWork {
		p.phase(&withWork[i])
	}
	p.blank()
	p.add(Line{Kind: KindSeparator})
	p.blank()

	shown := head(open, count)
	p.title(fmt.Sprintf("Next %d tasks:", len(shown)))
	p.blank()
	p.addGrouped(doc, shown)
	p.PhasesShown = len(withWork)

	p.blank()
	if len(shown) < len(open) {
		p.summary(fmt.Sprintf("Showing %d phases and %d of %d remaining tasks", len(withWork), len(shown), len(open)))
		return
	}
	p.summary(fmt.Sprintf("Showing %d phases and all %d remaining tasks", len(withWork), len(open)))
}

func buildTasksOnly(p *Plan, doc *tasks.Document, count int) {
	open := doc.UncompletedTasks()
	p.Remaining = len(open)
	if len(open) == 0 {
		p.notice(NoticeTasksComplete)
		return
	}

	shown := head(open, count)
	for _, t := range shown {
		p.task(t)
	}
	p.blank()
	p.summary(remainingSummary(len(shown), len(open)))
}

// addGrouped emits tasks under their phase and section headings, repeating a
// heading only when the containing phase or section changes between
// consecutive tasks.
func (p *Plan) addGrouped(doc *tasks.Document, shown []tasks.Task) {
	idx := doc.Index()
	var (
		cur     tasks.Position
		started bool
	)
	for _, t := range shown {
		pos, ok := idx.Position(t)
		if !ok {
			continue
		}
		if !started || pos.Phase != cur.Phase {
			p.blank()
			p.phase(idx.Phase(pos))
			started = true
			cur = tasks.Position{Phase: pos.Phase, Section: -1}
		}
		if pos.Section != cur.Section {
			if s := idx.Section(pos); !s.IsImplicit() {
				p.blank()
				p.section(s, 0)
			}
			cur.Section = pos.Section
		}
		p.task(t)
	}
}

func (p *Plan) phase(ph *tasks.Phase) {
	p.add(Line{Kind: KindPhase, Number: ph.Number, Label: ph.Label(), Title: ph.Title})
	p.PhasesShown++
}

func (p *Plan) section(s *tasks.Section, indent int) {
	p.add(Line{Kind: KindSection, Level: s.Level, Title: s.Title, Indent: indent})
	p.SectionsShown++
}

func (p *Plan) task(t tasks.Task) {
	p.add(Line{
		Kind:     KindTask,
		TaskID:   t.ID,
		Priority: t.Priority,
		StoryTag: t.StoryTag,
		Text:     tasks.StripMarkers(t),
	})
	p.Shown++
}

func head(ts []tasks.Task, n int) []tasks.Task {
	if n < len(ts) {
		return ts[:n]
	}
	return ts
}

func remainingSummary(shown, total int) string {
	if shown < total {
		return fmt.Sprintf("Showing %d of %d remaining tasks", shown, total)
	}
	return fmt.Sprintf("Showing all %d remaining tasks", total)
}

package tasks

// Position identifies the phase and section enclosing a task by index into
// Document.Phases and Phase.Sections.
type Position struct {
	Phase   int
	Section int
}

type taskKey struct {
	id   string
	line int
}

// Index maps tasks to their enclosing phase and section. Build it once per
// render pass with Document.Index.
type Index struct {
	doc       *Document
	positions map[taskKey]Position
}

// Index builds a lookup from task (identifier and line) to its position.
func (d *Document) Index() *Index {
	idx := &Index{
		doc:       d,
		positions: make(map[taskKey]Position),
	}
	for pi := range d.Phases {
		for si := range d.Phases[pi].Sections {
			for _, t := range d.Phases[pi].Sections[si].Tasks {
				key := taskKey{id: t.ID, line: t.Line}
				if _, seen := idx.positions[key]; !seen {
					idx.positions[key] = Position{Phase: pi, Section: si}
				}
			}
		}
	}
	return idx
}

// Position returns the position of t, or false if t is not in the document.
func (idx *Index) Position(t Task) (Position, bool) {
	pos, ok := idx.positions[taskKey{id: t.ID, line: t.Line}]
	return pos, ok
}

// Phase returns the phase at pos.
func (idx *Index) Phase(pos Position) *Phase {
	return &idx.doc.Phases[pos.Phase]
}

// Section returns the section at pos.
func (idx *Index) Section(pos Position) *Section {
	return &idx.doc.Phases[pos.Phase].Sections[pos.Section]
}

// Locate returns the phase and section containing t by scanning the document.
// It matches on identifier and line number. ok is false when t is not part of
// the document.
func (d *Document) Locate(t Task) (phase *Phase, section *Section, ok bool) {
	for pi := range d.Phases {
		for si := range d.Phases[pi].Sections {
			for _, candidate := range d.Phases[pi].Sections[si].Tasks {
				if candidate.ID == t.ID && candidate.Line == t.Line {
					return &d.Phases[pi], &d.Phases[pi].Sections[si], true
				}
			}
		}
	}
	return nil, nil, false
}

package tasks

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

const utf8BOM = "\ufeff"

// ParseFile reads and parses the task file at path.
//
// The only failures are a missing file (ErrFileNotFound) and I/O errors while
// reading. Once content is read, parsing never fails.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat task file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("task file %s is a directory", path)
	}

	return Parse(f, path)
}

// ParseString parses task file content held in memory.
func ParseString(content, path string) *Document {
	// Reading from a strings.Reader cannot fail.
	doc, _ := Parse(strings.NewReader(content), path)
	return doc
}

// Parse reads r line by line and builds the phase/section/task hierarchy.
// path is recorded on the Document for display only.
func Parse(r io.Reader, path string) (*Document, error) {
	b := newBuilder()
	br := bufio.NewReader(r)
	lineNum := 0

	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			lineNum++
			line := strings.TrimRight(raw, "\r\n")
			if lineNum == 1 {
				line = strings.TrimPrefix(line, utf8BOM)
			}
			b.feed(lineNum, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read task file: %w", err)
		}
	}

	return b.finish(path), nil
}

// builder is the single-pass state machine behind Parse.
//
// phase and section are the containers being accumulated; sections and tasks
// hold what has been closed into them so far.
type builder struct {
	phases []Phase

	phase    *Phase
	sections []Section

	section *Section
	tasks   []Task
}

func newBuilder() *builder {
	return &builder{}
}

// feed applies one line to the state machine. Phase headings take precedence
// over section headings, which take precedence over task lines.
func (b *builder) feed(lineNum int, line string) {
	if m, ok := matchPhase(line); ok {
		b.openPhase(m, lineNum)
		return
	}
	if m, ok := matchSection(line); ok {
		b.openSection(m.title, m.level, lineNum)
		return
	}
	if m, ok := matchTask(line); ok {
		b.addTask(m, lineNum, line)
		return
	}
}

func (b *builder) openPhase(m phaseHeading, lineNum int) {
	b.closeSection()
	b.closePhase()
	b.phase = &Phase{
		Number: m.number,
		Digits: m.digits,
		Title:  m.title,
		Line:   lineNum,
	}
}

func (b *builder) openSection(title string, level, lineNum int) {
	b.closeSection()
	b.section = &Section{
		Title: title,
		Level: level,
		Line:  lineNum,
	}
}

func (b *builder) addTask(m taskLine, lineNum int, raw string) {
	if b.phase == nil {
		// No phase to hold the task.
		return
	}
	if b.section == nil {
		b.openSection("", DefaultSectionLevel, lineNum)
	}
	b.tasks = append(b.tasks, newTask(m, lineNum, raw))
}

// closeSection moves the in-progress section, with its tasks, into the
// in-progress phase's section list.
func (b *builder) closeSection() {
	if b.section == nil {
		return
	}
	s := *b.section
	s.Tasks = b.tasks
	b.sections = append(b.sections, s)
	b.section = nil
	b.tasks = nil
}

// closePhase moves the in-progress phase, with its sections, into the document.
// Sections closed while no phase was open are discarded.
func (b *builder) closePhase() {
	if b.phase != nil {
		p := *b.phase
		p.Sections = b.sections
		b.phases = append(b.phases, p)
	}
	b.phase = nil
	b.sections = nil
}

func (b *builder) finish(path string) *Document {
	b.closeSection()
	b.closePhase()
	return &Document{
		Path:   path,
		Phases: b.phases,
		Errors: []ParseError{},
	}
}

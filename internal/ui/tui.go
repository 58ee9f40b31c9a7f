// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/sknext/internal/render"
	"github.com/nibzard/sknext/internal/tasks"
	"github.com/nibzard/sknext/internal/view"
)

// ErrNotTTY is returned when the viewer is started without a terminal.
var ErrNotTTY = errors.New("tui requires a TTY")

// Loader reads the task document. It is called on start and on every reload.
type Loader func() (*tasks.Document, error)

// Options configures the viewer.
type Options struct {
	Path  string
	Mode  view.Mode
	Count int
	Color render.ColorMode
	Load  Loader
}

// headerLines and footerLines are the rows the viewport does not own.
const (
	headerLines = 3
	footerLines = 2
)

// RunTUI starts the interactive viewer on the terminal.
func RunTUI(ctx context.Context, opts Options) error {
	if !render.IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	if opts.Load == nil {
		return errors.New("tui: no loader")
	}

	model := newTUIModel(opts, os.Stdout)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

type tuiModel struct {
	opts     Options
	term     *render.Terminal
	doc      *tasks.Document
	loadErr  error
	loads    int
	mode     view.Mode
	count    int
	plan     view.Plan
	viewport viewport.Model
	ready    bool
	showHelp bool
}

func newTUIModel(opts Options, out io.Writer) *tuiModel {
	count := opts.Count
	if count < 0 {
		count = 0
	}
	return &tuiModel{
		opts:  opts,
		term:  render.NewTerminal(out, opts.Color),
		mode:  opts.Mode,
		count: count,
	}
}

func (m *tuiModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - headerLines - footerLines
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.rebuild()
		return m, nil
	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
			return m, nil
		case "h", "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "+", "=":
			m.count++
			m.rebuild()
			return m, nil
		case "-", "_":
			if m.count > 0 {
				m.count--
				m.rebuild()
			}
			return m, nil
		case "1", "2", "3", "4", "5", "6":
			modes := view.Modes()
			m.mode = modes[int(key[0]-'1')]
			m.rebuild()
			m.viewport.GotoTop()
			return m, nil
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *tuiModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.opts.Path)
	writeStatus(&b, m.mode, m.count)

	switch {
	case m.showHelp:
		writeHelp(&b)
	case m.loadErr != nil:
		b.WriteString("Error loading task file:\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	case !m.ready:
		b.WriteString("Loading...\n\n")
	default:
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
	}

	writeFooter(&b)
	return b.String()
}

// refresh reloads the document and rebuilds the plan.
func (m *tuiModel) refresh() {
	m.loads++
	doc, err := m.opts.Load()
	if err != nil {
		m.loadErr = err
		m.doc = nil
		return
	}
	m.loadErr = nil
	m.doc = doc
	m.rebuild()
}

func (m *tuiModel) rebuild() {
	if m.doc == nil {
		return
	}
	m.plan = view.Build(m.doc, m.mode, m.count)
	if m.ready {
		m.viewport.SetContent(m.term.Format(m.plan))
	}
}

func writeTitle(b *strings.Builder, path string) {
	title := "sknext"
	if path != "" {
		title += ": " + path
	}
	b.WriteString(title + "\n")
}

func writeStatus(b *strings.Builder, mode view.Mode, count int) {
	fmt.Fprintf(b, "View: %s | Count: %d\n\n", mode, count)
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  r, F5        Reload the task file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  +, -         Show more or fewer tasks\n")
	for i, mode := range view.Modes() {
		fmt.Fprintf(b, "  %d            %s view\n", i+1, mode)
	}
	b.WriteString("  up, down     Scroll\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("\nPress h for help | q to quit | 1-6 switch views\n")
}

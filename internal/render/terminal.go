package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/nibzard/sknext/internal/view"
)

var (
	colorCyan    = lipgloss.Color("6")
	colorYellow  = lipgloss.Color("3")
	colorMagenta = lipgloss.Color("5")
	colorBlue    = lipgloss.Color("4")
	colorGreen   = lipgloss.Color("2")
)

type styles struct {
	title     lipgloss.Style
	phase     lipgloss.Style
	section   lipgloss.Style
	checkbox  lipgloss.Style
	id        lipgloss.Style
	priority  lipgloss.Style
	story     lipgloss.Style
	summary   lipgloss.Style
	notice    lipgloss.Style
	separator lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Bold(true),
		phase:    r.NewStyle().Bold(true).Foreground(colorCyan),
		section:  r.NewStyle().Bold(true),
		checkbox: r.NewStyle().Faint(true),
		id:       r.NewStyle().Foreground(colorYellow),
		priority: r.NewStyle().Bold(true).Foreground(colorMagenta),
		story:    r.NewStyle().Bold(true).Foreground(colorBlue),
		summary:  r.NewStyle().Faint(true),
		notice: r.NewStyle().
			Bold(true).
			Foreground(colorGreen).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGreen).
			Padding(0, 1),
		separator: r.NewStyle().Faint(true),
	}
}

// Terminal renders plans with terminal styling.
type Terminal struct {
	styles styles
}

// NewTerminal returns a Terminal for output written to w. Without color every style
// collapses to plain text, though completion notices keep their border.
func NewTerminal(w io.Writer, mode ColorMode) *Terminal {
	r := lipgloss.NewRenderer(w)
	color := UseColor(mode, w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	} else if mode == ColorAlways {
		r.SetColorProfile(termenv.ANSI256)
	}
	return &Terminal{styles: newStyles(r)}
}

// Format returns the styled text of the plan, one plan line per output line.
func (t *Terminal) Format(p view.Plan) string {
	var b strings.Builder
	for _, l := range p.Lines {
		b.WriteString(t.line(l))
		b.WriteByte('\n')
	}
	return b.String()
}

func (t *Terminal) line(l view.Line) string {
	s := t.styles
	switch l.Kind {
	case view.KindBlank:
		return ""
	case view.KindTitle:
		return s.title.Render(l.Text)
	case view.KindPhase:
		return s.phase.Render(l.String())
	case view.KindSection:
		return strings.Repeat(" ", l.Indent) + s.section.Render(strings.TrimLeft(l.String(), " "))
	case view.KindTask:
		return t.task(l)
	case view.KindSeparator:
		return s.separator.Render(l.String())
	case view.KindSummary:
		return s.summary.Render(l.Text)
	case view.KindNotice:
		return s.notice.Render(l.Text)
	}
	return l.Text
}

func (t *Terminal) task(l view.Line) string {
	s := t.styles
	parts := []string{s.checkbox.Render("- [ ]"), s.id.Render(l.TaskID)}
	if l.Priority {
		parts = append(parts, s.priority.Render("[P]"))
	}
	if l.StoryTag != "" {
		parts = append(parts, s.story.Render("["+l.StoryTag+"]"))
	}
	parts = append(parts, l.Text)
	return strings.Join(parts, " ")
}

// Note styles a side message such as the discovered file path.
func (t *Terminal) Note(text string) string {
	return t.styles.summary.Render(text)
}

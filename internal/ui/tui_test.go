package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/sknext/internal/render"
	"github.com/nibzard/sknext/internal/tasks"
	"github.com/nibzard/sknext/internal/view"
)

const sample = `## Phase 1: Setup
### Infra
- [ ] T001 First
- [ ] T002 Second
- [ ] T003 Third
`

func staticLoader(content string) Loader {
	return func() (*tasks.Document, error) {
		return tasks.ParseString(content, "tasks.md"), nil
	}
}

func newTestModel(t *testing.T, opts Options) *tuiModel {
	t.Helper()
	opts.Color = render.ColorNever
	m := newTUIModel(opts, &bytes.Buffer{})
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelRendersPlan(t *testing.T) {
	m := newTestModel(t, Options{Path: "specs/001-x/tasks.md", Count: 2, Load: staticLoader(sample)})

	out := m.View()
	for _, want := range []string{"sknext: specs/001-x/tasks.md", "View: default | Count: 2", "T001 First", "Showing 2 of 3 remaining tasks"} {
		if !strings.Contains(out, want) {
			t.Errorf("View missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "T003") {
		t.Errorf("View shows more tasks than requested:\n%s", out)
	}
}

func TestModelCountKeys(t *testing.T) {
	m := newTestModel(t, Options{Count: 1, Load: staticLoader(sample)})

	m.Update(key("+"))
	m.Update(key("+"))
	if m.count != 3 || m.plan.Shown != 3 {
		t.Errorf("after ++: count %d shown %d, want 3 and 3", m.count, m.plan.Shown)
	}

	for i := 0; i < 5; i++ {
		m.Update(key("-"))
	}
	if m.count != 0 {
		t.Errorf("count: got %d, want 0", m.count)
	}
}

func TestModelModeKeys(t *testing.T) {
	m := newTestModel(t, Options{Count: 10, Load: staticLoader(sample)})

	for i, mode := range view.Modes() {
		m.Update(key(string(rune('1' + i))))
		if m.mode != mode {
			t.Errorf("key %d: got mode %v, want %v", i+1, m.mode, mode)
		}
		if m.plan.Mode != mode {
			t.Errorf("key %d: plan built for %v", i+1, m.plan.Mode)
		}
	}
}

func TestModelReload(t *testing.T) {
	content := sample
	calls := 0
	m := newTestModel(t, Options{Count: 10, Load: func() (*tasks.Document, error) {
		calls++
		return tasks.ParseString(content, ""), nil
	}})

	content = strings.ReplaceAll(sample, "- [ ] T001", "- [x] T001")
	m.Update(key("r"))
	if calls != 2 {
		t.Errorf("loader calls: got %d, want 2", calls)
	}
	if m.plan.Remaining != 2 {
		t.Errorf("Remaining after reload: got %d, want 2", m.plan.Remaining)
	}
}

func TestModelLoadError(t *testing.T) {
	m := newTestModel(t, Options{Load: func() (*tasks.Document, error) {
		return nil, errors.New("file vanished")
	}})
	out := m.View()
	if !strings.Contains(out, "file vanished") {
		t.Errorf("View does not show load error:\n%s", out)
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := newTestModel(t, Options{Load: staticLoader(sample)})

	m.Update(key("h"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	m.Update(key("?"))
	if m.showHelp {
		t.Error("help screen not toggled off")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestModelBeforeWindowSize(t *testing.T) {
	m := newTUIModel(Options{Load: staticLoader(sample), Color: render.ColorNever}, &bytes.Buffer{})
	m.Init()
	if !strings.Contains(m.View(), "Loading...") {
		t.Error("View before sizing should show Loading")
	}
}

func TestRunTUIRequiresTTY(t *testing.T) {
	if render.IsTTY(os.Stdout) {
		t.Skip("stdout is a terminal")
	}
	err := RunTUI(context.Background(), Options{Load: staticLoader(sample)})
	if !errors.Is(err, ErrNotTTY) {
		t.Errorf("RunTUI: got %v, want ErrNotTTY", err)
	}
}

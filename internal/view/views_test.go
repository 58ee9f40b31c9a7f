package view

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nibzard/sknext/internal/tasks"
)

const sampleFile = `# Tasks: Test Feature

## Phase 1: Setup

### Infrastructure

- [X] T001 Create project structure
- [ ] T002 Initialize dependencies
- [ ] T003 [P] Configure linting

### Documentation

- [ ] T004 [US1] Write README
- [x] T005 Add usage examples

---

## Phase 2: Implementation

### Core Features

- [ ] T006 [P] [US2] Implement parser
- [ ] T007 Add CLI interface
`

const doneFile = `## Phase 1: Setup
### Sec
- [x] T001 One
- [X] T002 Two
`

var separator = strings.Repeat("─", SeparatorWidth)

func lines(p Plan) []string {
	out := make([]string, 0, len(p.Lines))
	for _, l := range p.Lines {
		out = append(out, l.String())
	}
	return out
}

func parse(content string) *tasks.Document {
	return tasks.ParseString(content, "tasks.md")
}

func TestDefaultView(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  []string
	}{
		{
			name:  "truncated",
			count: 3,
			want: []string{
				"",
				"## Phase 1: Setup",
				"",
				"### Infrastructure",
				"- [ ] T002 Initialize dependencies",
				"- [ ] T003 [P] Configure linting",
				"",
				"### Documentation",
				"- [ ] T004 [US1] Write README",
				"",
				"Showing 3 of 5 remaining tasks",
			},
		},
		{
			name:  "everything",
			count: 10,
			want: []string{
				"",
				"## Phase 1: Setup",
				"",
				"### Infrastructure",
				"- [ ] T002 Initialize dependencies",
				"- [ ] T003 [P] Configure linting",
				"",
				"### Documentation",
				"- [ ] T004 [US1] Write README",
				"",
				"## Phase 2: Implementation",
				"",
				"### Core Features",
				"- [ ] T006 [P] [US2] Implement parser",
				"- [ ] T007 Add CLI interface",
				"",
				"Showing all 5 remaining tasks",
			},
		},
		{
			name:  "zero count shows one task",
			count: 0,
			want: []string{
				"",
				"## Phase 1: Setup",
				"",
				"### Infrastructure",
				"- [ ] T002 Initialize dependencies",
				"",
				ZeroCountSummary,
			},
		},
	}

	doc := parse(sampleFile)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Build(doc, ModeDefault, tt.count)
			if diff := cmp.Diff(tt.want, lines(plan)); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if plan.Remaining != 5 {
				t.Errorf("Remaining: got %d, want 5", plan.Remaining)
			}
		})
	}
}

func TestDefaultViewSkipsCompletedTasks(t *testing.T) {
	doc := parse("## Phase 1: Setup\n### Sec\n- [ ] T001 Do it\n- [X] T002 Done\n")
	plan := Build(doc, ModeDefault, 10)

	if diff := cmp.Diff([]string{"T001"}, plan.TaskIDs()); diff != "" {
		t.Errorf("TaskIDs mismatch (-want +got):\n%s", diff)
	}
	last := plan.Lines[len(plan.Lines)-1]
	if last.Kind != KindSummary || last.Text != "Showing all 1 remaining tasks" {
		t.Errorf("summary: got %v %q", last.Kind, last.Text)
	}
}

func TestDefaultViewImplicitSection(t *testing.T) {
	doc := parse("## Phase 1: A\n- [ ] T001 Loose task\n### Named\n- [ ] T002 Named task\n")
	want := []string{
		"",
		"## Phase 1: A",
		"- [ ] T001 Loose task",
		"",
		"### Named",
		"- [ ] T002 Named task",
		"",
		"Showing all 2 remaining tasks",
	}
	if diff := cmp.Diff(want, lines(Build(doc, ModeDefault, 10))); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultViewSkipsCompletedPhase(t *testing.T) {
	doc := parse("## Phase 1: Done\n### A\n- [x] T001 a\n## Phase 2: Open\n### B\n- [ ] T002 b\n")
	plan := Build(doc, ModeDefault, 10)
	if got := plan.CountKind(KindPhase); got != 1 {
		t.Fatalf("phase headings: got %d, want 1", got)
	}
	for _, l := range plan.Lines {
		if l.Kind == KindPhase && l.Number != 2 {
			t.Errorf("unexpected phase heading %q", l)
		}
	}
}

func TestHugePhaseNumberKeepsDigits(t *testing.T) {
	doc := parse("## Phase 1: A\n- [x] T001 done\n## Phase 12345678901234567890123: Big\n- [ ] T002 open\n")
	want := []string{
		"",
		"## Phase 12345678901234567890123: Big",
		"- [ ] T002 open",
		"",
		"Showing all 1 remaining tasks",
	}
	if diff := cmp.Diff(want, lines(Build(doc, ModeDefault, 10))); diff != "" {
		t.Errorf("default view mismatch (-want +got):\n%s", diff)
	}
}

func TestAllViewIgnoresCount(t *testing.T) {
	doc := parse(sampleFile)
	plan := Build(doc, ModeAll, 1)
	want := []string{"T002", "T003", "T004", "T006", "T007"}
	if diff := cmp.Diff(want, plan.TaskIDs()); diff != "" {
		t.Errorf("TaskIDs mismatch (-want +got):\n%s", diff)
	}
	if plan.Shown != 5 {
		t.Errorf("Shown: got %d, want 5", plan.Shown)
	}
}

func TestPhasesOnlyView(t *testing.T) {
	content := sampleFile + "\n## Phase 3: Polish\n### Docs\n- [x] T008 Done\n"
	want := []string{
		"Phases with uncompleted work:",
		"",
		"## Phase 1: Setup",
		"## Phase 2: Implementation",
		"",
		"Showing 2 of 3 phases",
	}
	plan := Build(parse(content), ModePhasesOnly, 0)
	if diff := cmp.Diff(want, lines(plan)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if plan.PhasesShown != 2 {
		t.Errorf("PhasesShown: got %d, want 2", plan.PhasesShown)
	}
}

func TestStructureView(t *testing.T) {
	content := "## Phase 1: Setup\n- [ ] T000 loose\n### Infrastructure\n- [ ] T001 a\n### Finished\n- [x] T002 b\n#### Deep\n- [ ] T003 c\n" +
		"## Phase 2: Done\n### X\n- [x] T004 d\n"
	want := []string{
		"Project structure with uncompleted work:",
		"",
		"## Phase 1: Setup",
		"  ### Infrastructure",
		"  #### Deep",
		"",
		"Showing 1 phases with 2 sections",
	}
	plan := Build(parse(content), ModeStructure, 10)
	if diff := cmp.Diff(want, lines(plan)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if plan.SectionsShown != 2 {
		t.Errorf("SectionsShown: got %d, want 2", plan.SectionsShown)
	}
}

func TestCombinedView(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  []string
	}{
		{
			name:  "truncated",
			count: 2,
			want: []string{
				"Incomplete phases:",
				"",
				"## Phase 1: Setup",
				"## Phase 2: Implementation",
				"",
				separator,
				"",
				"Next 2 tasks:",
				"",
				"",
				"## Phase 1: Setup",
				"",
				"### Infrastructure",
				"- [ ] T002 Initialize dependencies",
				"- [ ] T003 [P] Configure linting",
				"",
				"Showing 2 phases and 2 of 5 remaining tasks",
			},
		},
		{
			name:  "zero count has no override",
			count: 0,
			want: []string{
				"Incomplete phases:",
				"",
				"## Phase 1: Setup",
				"## Phase 2: Implementation",
				"",
				separator,
				"",
				"Next 0 tasks:",
				"",
				"",
				"Showing 2 phases and 0 of 5 remaining tasks",
			},
		},
	}

	doc := parse(sampleFile)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := Build(doc, ModeCombined, tt.count)
			if diff := cmp.Diff(tt.want, lines(plan)); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if plan.PhasesShown != 2 {
				t.Errorf("PhasesShown: got %d, want 2", plan.PhasesShown)
			}
		})
	}

	plan := Build(doc, ModeCombined, 50)
	last := plan.Lines[len(plan.Lines)-1]
	if last.Text != "Showing 2 phases and all 5 remaining tasks" {
		t.Errorf("summary: got %q", last.Text)
	}
}

func TestTasksOnlyView(t *testing.T) {
	doc := parse(sampleFile)

	plan := Build(doc, ModeTasksOnly, 2)
	want := []string{
		"- [ ] T002 Initialize dependencies",
		"- [ ] T003 [P] Configure linting",
		"",
		"Showing 2 of 5 remaining tasks",
	}
	if diff := cmp.Diff(want, lines(plan)); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if plan.CountKind(KindPhase)+plan.CountKind(KindSection) != 0 {
		t.Error("tasks-only view rendered headings")
	}

	plan = Build(doc, ModeTasksOnly, 0)
	want = []string{"", "Showing 0 of 5 remaining tasks"}
	if diff := cmp.Diff(want, lines(plan)); diff != "" {
		t.Errorf("zero count mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletionNotices(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeDefault, NoticeTasksComplete},
		{ModeAll, NoticeTasksComplete},
		{ModePhasesOnly, NoticePhasesComplete},
		{ModeStructure, NoticeWorkComplete},
		{ModeCombined, NoticeTasksComplete},
		{ModeTasksOnly, NoticeTasksComplete},
	}

	for _, content := range []string{doneFile, "", "just prose\n"} {
		doc := parse(content)
		for _, tt := range tests {
			t.Run(tt.mode.String(), func(t *testing.T) {
				plan := Build(doc, tt.mode, 0)
				want := []Line{{Kind: KindNotice, Text: tt.want}}
				if diff := cmp.Diff(want, plan.Lines); diff != "" {
					t.Errorf("lines mismatch (-want +got):\n%s", diff)
				}
				if !plan.Complete {
					t.Error("Complete: got false, want true")
				}
			})
		}
	}
}

func TestBuildNegativeCount(t *testing.T) {
	plan := Build(parse(sampleFile), ModeDefault, -4)
	if plan.Count != 0 {
		t.Errorf("Count: got %d, want 0", plan.Count)
	}
	if plan.Shown != 1 {
		t.Errorf("Shown: got %d, want 1", plan.Shown)
	}
}

func TestBuildNilDocument(t *testing.T) {
	plan := Build(nil, ModeDefault, 10)
	if !plan.Complete {
		t.Error("nil document should render the completion notice")
	}
}

func TestTaskLinesStripMarkers(t *testing.T) {
	doc := parse("## Phase 1: A\n- [ ] T001 [US4] fix [P] thing [US4]\n")
	plan := Build(doc, ModeTasksOnly, 10)
	want := Line{Kind: KindTask, TaskID: "T001", Priority: true, StoryTag: "US4", Text: "fix  thing"}
	if diff := cmp.Diff(want, plan.Lines[0]); diff != "" {
		t.Errorf("task line mismatch (-want +got):\n%s", diff)
	}
	if got := plan.Lines[0].String(); got != "- [ ] T001 [P] [US4] fix  thing" {
		t.Errorf("String(): got %q", got)
	}
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  Mode
	}{
		{"none", Flags{}, ModeDefault},
		{"all", Flags{All: true}, ModeAll},
		{"tasks only", Flags{TasksOnly: true, All: true}, ModeTasksOnly},
		{"all phases", Flags{AllPhases: true, TasksOnly: true, All: true}, ModeCombined},
		{"structure", Flags{Structure: true, AllPhases: true, TasksOnly: true}, ModeStructure},
		{"phases only wins", Flags{PhasesOnly: true, Structure: true, AllPhases: true, TasksOnly: true, All: true}, ModePhasesOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectMode(tt.flags); got != tt.want {
				t.Errorf("SelectMode(%+v): got %v, want %v", tt.flags, got, tt.want)
			}
		})
	}
}

func TestModeString(t *testing.T) {
	want := []string{"default", "phases-only", "structure", "all-phases", "tasks-only", "all"}
	for i, m := range Modes() {
		if got := m.String(); got != want[i] {
			t.Errorf("Modes()[%d].String(): got %q, want %q", i, got, want[i])
		}
	}
	if got := Mode(99).String(); got != "mode(99)" {
		t.Errorf("String(): got %q", got)
	}
}

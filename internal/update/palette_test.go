package update

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/storage"
)

func enterKey() tea.KeyMsg  { return tea.KeyMsg{Type: tea.KeyEnter} }
func escapeKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEscape} }

func runPalette(t *testing.T, m Model, command string) Model {
	t.Helper()
	m = press(t, m, keyRunes("/"))
	if !m.Palette.Active {
		t.Fatal("palette should be active")
	}
	m = press(t, m, keyRunes(command), enterKey())
	if m.Palette.Active {
		t.Fatal("palette should close after enter")
	}
	return m
}

func TestPaletteEscapeCloses(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = press(t, m, keyRunes("/"), keyRunes("add 1 x"), escapeKey())
	if m.Palette.Active || m.Palette.Input != "" {
		t.Fatalf("palette not reset: %+v", m.Palette)
	}
	// Nothing was executed.
	if m.Portfolio.TaskCount() != 3 {
		t.Fatalf("task count changed: %d", m.Portfolio.TaskCount())
	}
}

func TestPaletteAddTask(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "add 2 Draft contract start:2025-08-21 end:2025-08-29 bonus:2")

	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	projectID, task, ok := m.findTaskByID(6)
	if !ok {
		t.Fatal("new task not found")
	}
	if projectID != 2 {
		t.Fatalf("task landed on project %d", projectID)
	}
	if task.Name != "Draft contract" || task.PriorityBonus != model.BonusMedium {
		t.Fatalf("task fields: %#v", task)
	}
	if task.Status != model.StatusPlanned {
		t.Fatalf("default status: %s", task.Status)
	}
	if len(m.Ranked) != 4 {
		t.Fatalf("ranking not recomputed: %d", len(m.Ranked))
	}
}

func TestPaletteAddUnknownProject(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "add 99 Ghost start:2025-08-21 end:2025-08-29")
	if !m.Status.IsError {
		t.Fatalf("expected error status, got: %s", m.Status.Text)
	}
	if m.Portfolio.TaskCount() != 3 {
		t.Fatalf("portfolio should be untouched: %d", m.Portfolio.TaskCount())
	}
}

func TestPaletteCloseTask(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "close 5")

	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if _, ok := m.Portfolio.FindTask(2, 5); ok {
		t.Fatal("task 5 should be gone")
	}
	project, ok := m.Portfolio.FindProject(2)
	if !ok {
		t.Fatal("project 2 missing")
	}
	if !strings.Contains(project.Comments, "Scope review - 2025-08-20 - Done") {
		t.Fatalf("closure note missing: %q", project.Comments)
	}
}

func TestPaletteCloseUnknownTask(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "close 42")
	if !m.Status.IsError {
		t.Fatalf("expected error status, got: %s", m.Status.Text)
	}
}

func TestPaletteShowSwitchesView(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "show priority")
	if m.CurrentView != ViewPriority {
		t.Fatalf("view: %s", m.CurrentView)
	}
	m = runPalette(t, m, "show board")
	if m.CurrentView != ViewBoard {
		t.Fatalf("view: %s", m.CurrentView)
	}
}

func TestPaletteBonus(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "bonus 1 3")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	task, ok := m.Portfolio.FindTask(1, 1)
	if !ok {
		t.Fatal("task 1 missing")
	}
	if task.PriorityBonus != model.BonusHigh {
		t.Fatalf("bonus: %d", task.PriorityBonus)
	}

	m = runPalette(t, m, "bonus 1 9")
	if !m.Status.IsError {
		t.Fatal("expected out-of-range error")
	}
}

func TestPaletteExport(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	path := filepath.Join(t.TempDir(), "out.json")
	m = runPalette(t, m, "export "+path)
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}

	loaded, err := storage.ImportJSON(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(loaded) != 2 || loaded.TaskCount() != 3 {
		t.Fatalf("export shape: %d projects, %d tasks", len(loaded), loaded.TaskCount())
	}
}

func TestPaletteAddProject(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "project add Gamma site stage:Design")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	// Project ids 1 and 2 exist, so the allocator hands out 3.
	project, ok := m.Portfolio.FindProject(3)
	if !ok {
		t.Fatal("new project not found")
	}
	if project.Name != "Gamma site" || project.Stage != model.StageDesign {
		t.Fatalf("project fields: %#v", project)
	}

	// Stage defaults to Planning when the token is omitted.
	m = runPalette(t, m, "project add Delta site")
	project, ok = m.Portfolio.FindProject(4)
	if !ok {
		t.Fatal("second project not found")
	}
	if project.Stage != model.StagePlanning {
		t.Fatalf("default stage: %s", project.Stage)
	}

	m = runPalette(t, m, "project add Ghost stage:Bogus")
	if !m.Status.IsError {
		t.Fatalf("expected unknown stage error, got: %s", m.Status.Text)
	}
}

func TestPaletteProjectStage(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "project stage 2 Development")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	project, ok := m.Portfolio.FindProject(2)
	if !ok {
		t.Fatal("project 2 missing")
	}
	if project.Stage != model.StageDevelopment {
		t.Fatalf("stage not updated: %s", project.Stage)
	}
	// Beta left Planning, so the potential bucket is empty now.
	if len(m.Buckets.Potential) != 0 {
		t.Fatalf("bucket not recomputed: %d potential", len(m.Buckets.Potential))
	}

	m = runPalette(t, m, "project stage 2 Bogus")
	if !m.Status.IsError {
		t.Fatal("expected unknown stage error")
	}
	project, _ = m.Portfolio.FindProject(2)
	if project.Stage != model.StageDevelopment {
		t.Fatalf("failed edit must not change the stage: %s", project.Stage)
	}
}

func TestPaletteDeleteProjectReranks(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	if len(m.Ranked) != 3 {
		t.Fatalf("fixture should rank 3 tasks, got %d", len(m.Ranked))
	}

	m = runPalette(t, m, "project del 1")
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if _, ok := m.Portfolio.FindProject(1); ok {
		t.Fatal("project 1 should be gone")
	}
	// Alpha held two ranked tasks; only Beta's survives.
	if len(m.Ranked) != 1 {
		t.Fatalf("ranking not recomputed after delete: %d", len(m.Ranked))
	}
	if m.Ranked[0].Task.ID != 5 {
		t.Fatalf("unexpected survivor: task %d", m.Ranked[0].Task.ID)
	}

	m = runPalette(t, m, "project del 99")
	if !m.Status.IsError {
		t.Fatal("expected error for unknown project")
	}
}

func TestPaletteUnknownCommand(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = runPalette(t, m, "frobnicate")
	if !m.Status.IsError {
		t.Fatalf("expected error status, got: %s", m.Status.Text)
	}
}

package update

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/deadline"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/portfolio"
)

var testToday = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func testPortfolio() portfolio.Portfolio {
	return portfolio.Portfolio{
		{
			ID:    1,
			Name:  "Alpha",
			Stage: model.StageDevelopment,
			Tasks: []model.Task{
				{ID: 1, Name: "Wire auth", Start: date(2025, 8, 10), End: date(2025, 8, 25), Status: model.StatusInProgress},
				{ID: 2, Name: "Load test", Start: date(2025, 8, 18), End: date(2025, 9, 2), Status: model.StatusPlanned, PriorityBonus: model.BonusLow},
			},
		},
		{
			ID:    2,
			Name:  "Beta",
			Stage: model.StagePlanning,
			Tasks: []model.Task{
				{ID: 5, Name: "Scope review", Start: date(2025, 8, 22), End: date(2025, 8, 28), Status: model.StatusPlanned},
			},
		},
	}
}

func date(y int, mo time.Month, d int) time.Time {
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		typed, ok := next.(Model)
		if !ok {
			t.Fatalf("update returned unexpected model type %T", next)
		}
		m = typed
	}
	return m
}

func TestViewSwitchingKeys(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	if m.CurrentView != ViewBoard {
		t.Fatalf("initial view: %s", m.CurrentView)
	}

	m = press(t, m, keyRunes("2"))
	if m.CurrentView != ViewTimeline {
		t.Fatalf("expected timeline, got %s", m.CurrentView)
	}
	m = press(t, m, keyRunes("3"))
	if m.CurrentView != ViewPriority {
		t.Fatalf("expected priority, got %s", m.CurrentView)
	}
	m = press(t, m, keyRunes("1"))
	if m.CurrentView != ViewBoard {
		t.Fatalf("expected board, got %s", m.CurrentView)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	next, cmd := m.Update(keyRunes("q"))
	if !next.(Model).Quitting {
		t.Fatal("expected quitting flag")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}

func TestRankingRecomputedAtConstruction(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	if len(m.Ranked) != 3 {
		t.Fatalf("expected all 3 tasks ranked, got %d", len(m.Ranked))
	}
	for i := 1; i < len(m.Ranked); i++ {
		if m.Ranked[i].Score > m.Ranked[i-1].Score {
			t.Fatalf("ranking not descending at %d", i)
		}
	}
}

func TestCloseTaskFromBoard(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	before := m.Portfolio.TaskCount()

	m = press(t, m, keyRunes("c"))
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if m.Portfolio.TaskCount() != before-1 {
		t.Fatalf("task not removed: %d tasks", m.Portfolio.TaskCount())
	}
	project, ok := m.Portfolio.FindProject(1)
	if !ok {
		t.Fatal("project 1 missing")
	}
	if !strings.Contains(project.Comments, "Wire auth - 2025-08-20 - Done") {
		t.Fatalf("closure note missing: %q", project.Comments)
	}
	if len(m.Ranked) != 2 {
		t.Fatalf("ranking not recomputed after close: %d", len(m.Ranked))
	}
}

func TestCycleBonusFromBoard(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)

	m = press(t, m, keyRunes("b"))
	task, ok := m.Portfolio.FindTask(1, 1)
	if !ok {
		t.Fatal("task 1 missing")
	}
	if task.PriorityBonus != model.BonusLow {
		t.Fatalf("bonus not cycled: %d", task.PriorityBonus)
	}

	// Cycling past high wraps back to none.
	m = press(t, m, keyRunes("b"), keyRunes("b"), keyRunes("b"))
	task, ok = m.Portfolio.FindTask(1, 1)
	if !ok {
		t.Fatal("task 1 missing")
	}
	if task.PriorityBonus != model.BonusNone {
		t.Fatalf("bonus did not wrap: %d", task.PriorityBonus)
	}
}

func TestDeleteTaskFromBoard(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = press(t, m, keyRunes("x"))
	if m.Status.IsError {
		t.Fatalf("unexpected error: %s", m.Status.Text)
	}
	if _, ok := m.Portfolio.FindTask(1, 1); ok {
		t.Fatal("task 1 should be gone")
	}
	project, ok := m.Portfolio.FindProject(1)
	if !ok {
		t.Fatal("project 1 missing")
	}
	// A plain delete leaves no closure note behind.
	if project.Comments != "" {
		t.Fatalf("delete should not log a note: %q", project.Comments)
	}
}

func TestBoardCursorMovement(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)

	m = press(t, m, keyRunes("j"))
	if m.Board.Task != 1 {
		t.Fatalf("task cursor: %d", m.Board.Task)
	}
	// Clamped at the end of the list.
	m = press(t, m, keyRunes("j"), keyRunes("j"))
	if m.Board.Task != 1 {
		t.Fatalf("task cursor should clamp: %d", m.Board.Task)
	}
	m = press(t, m, keyRunes("l"))
	if m.Board.Project != 1 || m.Board.Task != 0 {
		t.Fatalf("project cursor: %+v", m.Board)
	}
	m = press(t, m, keyRunes("l"))
	if m.Board.Project != 1 {
		t.Fatalf("project cursor should clamp: %d", m.Board.Project)
	}
	m = press(t, m, keyRunes("h"))
	if m.Board.Project != 0 {
		t.Fatalf("project cursor: %d", m.Board.Project)
	}
}

func TestStatusMessages(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)

	m = press(t, m, SetStatusMsg{Text: "saved", IsError: false})
	if m.Status.Text != "saved" || m.Status.IsError {
		t.Fatalf("status: %+v", m.Status)
	}
	m = press(t, m, ClearStatusMsg{})
	if m.Status.Text != "" {
		t.Fatalf("status not cleared: %+v", m.Status)
	}
}

func TestSetPortfolioReseedsAllocator(t *testing.T) {
	m := NewModel(portfolio.Portfolio{}, testToday)
	m = press(t, m, SetPortfolioMsg{Portfolio: testPortfolio()})
	if len(m.Portfolio) != 2 {
		t.Fatalf("portfolio not applied: %d", len(m.Portfolio))
	}
	// Highest task id in the fixture is 5.
	if got := m.TaskAlloc.Next(); got != 6 {
		t.Fatalf("allocator seed: %d", got)
	}
	if len(m.Ranked) == 0 {
		t.Fatal("ranking not recomputed")
	}
}

func TestDeadlineRolloverAdvancesToday(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	next := testToday.AddDate(0, 0, 1)
	m = press(t, m, DeadlineReachedMsg{Event: deadline.Event{Kind: deadline.KindRollover, At: next}})
	if !m.Today.Equal(next) {
		t.Fatalf("today not advanced: %v", m.Today)
	}
	if m.Status.Text == "" {
		t.Fatal("expected status update")
	}
}

func TestDeadlineEventRefreshesRanking(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = press(t, m, DeadlineReachedMsg{Event: deadline.Event{Kind: deadline.KindDeadline, TaskID: 1, TaskName: "Wire auth", At: testToday}})
	if !strings.Contains(m.Status.Text, "Wire auth") {
		t.Fatalf("status: %q", m.Status.Text)
	}
}

func TestHelpToggle(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	m = press(t, m, keyRunes("?"))
	if !m.HelpVisible {
		t.Fatal("help should be visible")
	}
	if !strings.Contains(m.View(), "help:") {
		t.Fatal("help panel missing from view")
	}
	m = press(t, m, keyRunes("?"))
	if m.HelpVisible {
		t.Fatal("help should be hidden")
	}
}

func TestViewRendersHeaderAndFooter(t *testing.T) {
	m := NewModel(testPortfolio(), testToday)
	out := m.View()
	if !strings.Contains(out, "trackd | view: Board") {
		t.Fatalf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "1 board | 2 timeline | 3 priority") {
		t.Fatalf("footer missing:\n%s", out)
	}

	m = press(t, m, keyRunes("3"))
	out = m.View()
	if !strings.Contains(out, "priority:") {
		t.Fatalf("priority panel missing:\n%s", out)
	}
	if !strings.Contains(out, "Wire auth") {
		t.Fatalf("ranked task missing:\n%s", out)
	}
}

package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/trackd/internal/deadline"
	"github.com/sandeepkv93/trackd/internal/planner"
	"github.com/sandeepkv93/trackd/internal/portfolio"
	"github.com/sandeepkv93/trackd/internal/storage"
)

type View string

const (
	ViewBoard    View = "Board"
	ViewTimeline View = "Timeline"
	ViewPriority View = "Priority"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Board    string
	Timeline string
	Priority string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// BoardCursor addresses a task on the board by project column and row.
type BoardCursor struct {
	Project int
	Task    int
}

type Model struct {
	CurrentView View
	Portfolio   portfolio.Portfolio
	Buckets     portfolio.Buckets
	Ranked      []planner.RankedTask
	Ranking     planner.Options
	Today       time.Time

	TaskAlloc    *portfolio.Sequence
	ProjectAlloc *portfolio.Sequence
	Repo         storage.Repository
	Watcher      *deadline.Engine

	Board          BoardCursor
	TimelineCursor int
	PriorityCursor int

	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error

	// Bubble components used for rich TUI controls
	commandInput   textinput.Model
	priorityTable  table.Model
	detailViewport viewport.Model
	helpModel      help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SetPortfolioMsg struct {
	Portfolio portfolio.Portfolio
}

type PortfolioSavedMsg struct{}

type DeadlineReachedMsg struct {
	Event deadline.Event
}

func NewModel(snapshot portfolio.Portfolio, today time.Time) Model {
	m := Model{
		CurrentView: ViewBoard,
		Portfolio:   snapshot.Clone(),
		Ranking:     planner.Options{},
		Today:       today,
		TaskAlloc:   portfolio.SeedTaskSequence(snapshot),
		Keys: GlobalKeyMap{
			Board:    "1",
			Timeline: "2",
			Priority: "3",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.ProjectAlloc = portfolio.SeedProjectSequence(snapshot)
	m.initBubbleComponents()
	m.refresh()
	return m
}

func NewModelWithRepo(snapshot portfolio.Portfolio, today time.Time, repo storage.Repository, opts planner.Options) Model {
	m := NewModel(snapshot, today)
	m.Repo = repo
	m.Ranking = opts
	m.refresh()
	return m
}

func NewModelWithRuntime(snapshot portfolio.Portfolio, today time.Time, repo storage.Repository, opts planner.Options, watcher *deadline.Engine) Model {
	m := NewModelWithRepo(snapshot, today, repo, opts)
	m.Watcher = watcher
	return m
}

func (m *Model) initBubbleComponents() {
	input := textinput.New()
	input.Placeholder = "add 1 Task name start:2025-08-01 end:2025-08-15"
	input.CharLimit = 200
	m.commandInput = input

	m.priorityTable = table.New(
		table.WithColumns([]table.Column{
			{Title: "Score", Width: 6},
			{Title: "Task", Width: 28},
			{Title: "Project", Width: 20},
			{Title: "Deadline", Width: 10},
			{Title: "Days", Width: 5},
			{Title: "Bonus", Width: 8},
		}),
		table.WithHeight(12),
	)

	m.detailViewport = viewport.New(56, 10)
	m.helpModel = help.New()
}

// refresh recomputes every projection derived from the portfolio
// snapshot. Call it after any mutation.
func (m *Model) refresh() {
	m.Buckets = m.Portfolio.Categorize()
	m.Ranked = planner.Rank(m.Portfolio, m.Today, m.Ranking)
	m.clampCursors()
	m.syncPriorityTable()
	m.syncDetailViewport()
}

func (m *Model) clampCursors() {
	if len(m.Portfolio) == 0 {
		m.Board = BoardCursor{}
	} else {
		if m.Board.Project >= len(m.Portfolio) {
			m.Board.Project = len(m.Portfolio) - 1
		}
		if m.Board.Project < 0 {
			m.Board.Project = 0
		}
		tasks := m.Portfolio[m.Board.Project].Tasks
		if m.Board.Task >= len(tasks) {
			m.Board.Task = len(tasks) - 1
		}
		if m.Board.Task < 0 {
			m.Board.Task = 0
		}
	}
	m.TimelineCursor = clamp(m.TimelineCursor, 0, len(m.Portfolio)-1)
	m.PriorityCursor = clamp(m.PriorityCursor, 0, len(m.Ranked)-1)
}

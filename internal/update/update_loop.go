package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/deadline"
	"github.com/sandeepkv93/trackd/internal/portfolio"
	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Watcher != nil {
		return waitForDeadlineCmd(m.Watcher.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Board:
			m.CurrentView = ViewBoard
			return m, nil
		case m.Keys.Timeline:
			m.CurrentView = ViewTimeline
			return m, nil
		case m.Keys.Priority:
			m.CurrentView = ViewPriority
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewBoard:
			return m.handleBoardKey(typed)
		case ViewTimeline:
			return m.handleTimelineKey(typed)
		case ViewPriority:
			return m.handlePriorityKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case SetPortfolioMsg:
		m.Portfolio = typed.Portfolio.Clone()
		m.TaskAlloc = portfolio.SeedTaskSequence(m.Portfolio)
		m.ProjectAlloc = portfolio.SeedProjectSequence(m.Portfolio)
		m.refresh()
		return m, nil
	case PortfolioSavedMsg:
		return m, nil
	case DeadlineReachedMsg:
		ev := typed.Event
		switch ev.Kind {
		case deadline.KindRollover:
			m.Today = ev.At
			m.Status = StatusBar{Text: "new day, ranking refreshed", IsError: false}
			if m.Watcher != nil {
				_ = m.Watcher.Schedule(deadline.Event{Kind: deadline.KindRollover, At: deadline.NextRollover(ev.At)})
			}
		case deadline.KindDeadline:
			m.Status = StatusBar{Text: fmt.Sprintf("deadline reached: %s", ev.TaskName), IsError: false}
		}
		m.refresh()
		if m.Watcher != nil {
			return m, waitForDeadlineCmd(m.Watcher.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewBoard:
		leftPane = m.renderBoardView()
		rightPane = m.renderProjectDetailPane() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewTimeline:
		leftPane = m.renderTimelineView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewPriority:
		leftPane = m.renderPriorityView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("trackd | view: %s | projects: %d | tasks: %d", m.CurrentView, len(m.Portfolio), m.Portfolio.TaskCount()),
		LeftPane:   leftPane,
		RightPane:  rightPane,
		StatusLine: status,
		Footer:     fmt.Sprintf("keys: %s board | %s timeline | %s priority | / cmd | %s help | %s quit", m.Keys.Board, m.Keys.Timeline, m.Keys.Priority, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewBoard, ViewTimeline, ViewPriority:
		return true
	default:
		return false
	}
}

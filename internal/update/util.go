package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/deadline"
	"github.com/sandeepkv93/trackd/internal/views"
)

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// persistCmd writes the current snapshot through the repository off the
// update loop. Returns nil when running without persistence.
func (m Model) persistCmd() tea.Cmd {
	if m.Repo == nil {
		return nil
	}
	repo := m.Repo
	snapshot := m.Portfolio.Clone()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.ReplacePortfolio(ctx, snapshot); err != nil {
			return AppErrorMsg{Err: err}
		}
		return PortfolioSavedMsg{}
	}
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func waitForDeadlineCmd(ch <-chan deadline.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return DeadlineReachedMsg{Event: ev}
	}
}

package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) handlePriorityKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.PriorityCursor++
		m.clampCursors()
		m.priorityTable.MoveDown(1)
	case "k", "up":
		m.PriorityCursor--
		m.clampCursors()
		m.priorityTable.MoveUp(1)
	}
	return m, nil
}

func (m *Model) syncPriorityTable() {
	rows := make([]table.Row, 0, len(m.Ranked))
	for _, r := range m.Ranked {
		rows = append(rows, table.Row{
			fmt.Sprintf("%.1f", r.Score),
			r.Task.Name,
			r.ProjectName,
			r.Task.End.Format("2006-01-02"),
			fmt.Sprintf("%d", r.DaysToDeadline),
			model.BonusLabel(r.Task.PriorityBonus),
		})
	}
	m.priorityTable.SetRows(rows)
}

func (m Model) renderPriorityView() string {
	items := make([]views.PriorityItemData, 0, len(m.Ranked))
	for i, r := range m.Ranked {
		items = append(items, views.PriorityItemData{
			Rank:           i + 1,
			Score:          r.Score,
			TaskName:       r.Task.Name,
			ProjectName:    r.ProjectName,
			Deadline:       r.Task.End.Format("2006-01-02"),
			DaysToDeadline: r.DaysToDeadline,
			Overdue:        r.Overdue,
			Bonus:          model.BonusLabel(r.Task.PriorityBonus),
			Selected:       i == m.PriorityCursor,
		})
	}
	return views.RenderPriorityPanel(views.PriorityPanelData{
		Today:     m.Today.Format("2006-01-02"),
		TableView: m.priorityTable.View(),
		Items:     items,
	})
}

package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/planner"
	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) handleTimelineKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.TimelineCursor++
		m.clampCursors()
	case "k", "up":
		m.TimelineCursor--
		m.clampCursors()
	}
	return m, nil
}

func (m Model) renderTimelineView() string {
	rows := make([]views.TimelineRowData, 0, len(m.Portfolio))
	for i, p := range m.Portfolio {
		row := views.TimelineRowData{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Stage:       string(p.Stage),
			Selected:    i == m.TimelineCursor,
		}
		for _, t := range p.Tasks {
			row.Tasks = append(row.Tasks, views.TimelineTaskData{
				Name:    t.Name,
				Start:   t.Start.Format("2006-01-02"),
				End:     t.End.Format("2006-01-02"),
				Status:  string(t.Status),
				Days:    planner.SpanDays(t.Start, t.End),
				Overdue: planner.DaysUntil(t.End, m.Today) < 0,
			})
		}
		rows = append(rows, row)
	}
	return views.RenderTimelinePanel(views.TimelinePanelData{
		Today: m.Today.Format("2006-01-02"),
		Rows:  rows,
	})
}

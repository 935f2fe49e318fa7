package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/portfolio"
	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) handleBoardKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.Board.Task++
		m.clampCursors()
		m.syncDetailViewport()
	case "k", "up":
		m.Board.Task--
		m.clampCursors()
		m.syncDetailViewport()
	case "h", "left":
		m.Board.Project--
		m.Board.Task = 0
		m.clampCursors()
		m.syncDetailViewport()
	case "l", "right":
		m.Board.Project++
		m.Board.Task = 0
		m.clampCursors()
		m.syncDetailViewport()
	case "c":
		return m.closeSelectedTask()
	case "b":
		return m.cycleSelectedBonus()
	case "x":
		return m.deleteSelectedTask()
	}
	return m, nil
}

func (m Model) selectedBoardTask() (model.Project, model.Task, bool) {
	if m.Board.Project < 0 || m.Board.Project >= len(m.Portfolio) {
		return model.Project{}, model.Task{}, false
	}
	project := m.Portfolio[m.Board.Project]
	if m.Board.Task < 0 || m.Board.Task >= len(project.Tasks) {
		return project, model.Task{}, false
	}
	return project, project.Tasks[m.Board.Task], true
}

func (m Model) closeSelectedTask() (Model, tea.Cmd) {
	project, task, ok := m.selectedBoardTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m, nil
	}
	next, closed := m.Portfolio.CloseTask(project.ID, task, portfolio.Closure{ClosedAt: m.Today})
	if !closed {
		m.Status = StatusBar{Text: fmt.Sprintf("could not close task %d", task.ID), IsError: true}
		return m, nil
	}
	m.Portfolio = next
	m.Status = StatusBar{Text: fmt.Sprintf("closed task: %s", task.Name), IsError: false}
	m.refresh()
	return m, m.persistCmd()
}

func (m Model) cycleSelectedBonus() (Model, tea.Cmd) {
	project, task, ok := m.selectedBoardTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m, nil
	}
	task.PriorityBonus = (task.PriorityBonus + 1) % (model.BonusHigh + 1)
	next, _, err := m.Portfolio.UpdateTask(project.ID, task, portfolio.Closure{ClosedAt: m.Today})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Portfolio = next
	m.Status = StatusBar{Text: fmt.Sprintf("bonus for %s: %s", task.Name, model.BonusLabel(task.PriorityBonus)), IsError: false}
	m.refresh()
	return m, m.persistCmd()
}

func (m Model) deleteSelectedTask() (Model, tea.Cmd) {
	project, task, ok := m.selectedBoardTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m, nil
	}
	next, err := m.Portfolio.DeleteTask(project.ID, task.ID)
	if err != nil {
		if errors.Is(err, portfolio.ErrTaskNotFound) {
			m.Status = StatusBar{Text: fmt.Sprintf("task %d not found", task.ID), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Portfolio = next
	m.Status = StatusBar{Text: fmt.Sprintf("deleted task: %s", task.Name), IsError: false}
	m.refresh()
	return m, m.persistCmd()
}

func (m Model) renderBoardView() string {
	columns := make([]views.BoardColumnData, 0, 3)
	for _, col := range []struct {
		title    string
		projects []model.Project
	}{
		{"Potential", m.Buckets.Potential},
		{"In Progress", m.Buckets.InProgress},
		{"Archived", m.Buckets.Archived},
	} {
		data := views.BoardColumnData{Title: col.title}
		for _, p := range col.projects {
			data.Projects = append(data.Projects, boardProjectData(p))
		}
		columns = append(columns, data)
	}

	selectedTaskID := 0
	if _, task, ok := m.selectedBoardTask(); ok {
		selectedTaskID = task.ID
	}
	selectedProjectID := 0
	if m.Board.Project >= 0 && m.Board.Project < len(m.Portfolio) {
		selectedProjectID = m.Portfolio[m.Board.Project].ID
	}

	return views.RenderBoardPanel(views.BoardPanelData{
		Columns:           columns,
		SelectedProjectID: selectedProjectID,
		SelectedTaskID:    selectedTaskID,
	})
}

func boardProjectData(p model.Project) views.BoardProjectData {
	data := views.BoardProjectData{
		ID:    p.ID,
		Name:  p.Name,
		Stage: string(p.Stage),
	}
	for _, t := range p.Tasks {
		data.Tasks = append(data.Tasks, views.BoardTaskData{
			ID:     t.ID,
			Name:   t.Name,
			Status: string(t.Status),
			Bonus:  model.BonusLabel(t.PriorityBonus),
			End:    t.End.Format("2006-01-02"),
		})
	}
	return data
}

func (m Model) renderProjectDetailPane() string {
	if m.Board.Project < 0 || m.Board.Project >= len(m.Portfolio) {
		return "detail:\n(no selection)"
	}
	p := m.Portfolio[m.Board.Project]
	return views.RenderProjectDetailPane(views.ProjectDetailData{
		ID:               p.ID,
		Name:             p.Name,
		Stage:            string(p.Stage),
		Responsible:      p.Responsible,
		PotentialRevenue: p.PotentialRevenue,
		WorkOrderNumber:  p.WorkOrderNumber,
		TaskCount:        len(p.Tasks),
		CommentsView:     m.detailViewport.View(),
	})
}

func (m *Model) syncDetailViewport() {
	if m.Board.Project < 0 || m.Board.Project >= len(m.Portfolio) {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(views.RenderMarkdown(m.Portfolio[m.Board.Project].Comments))
}

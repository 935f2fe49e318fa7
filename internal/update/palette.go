package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/commands"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/portfolio"
	"github.com/sandeepkv93/trackd/internal/storage"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m, nil
	}

	mutated := false
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			next, created, err := m.Portfolio.AddTask(a.ProjectID, model.Task{
				Name:          a.Name,
				Start:         a.Start,
				End:           a.End,
				PriorityBonus: a.Bonus,
			}, m.TaskAlloc)
			if err != nil {
				return commands.Result{}, err
			}
			m.Portfolio = next
			mutated = true
			return commands.Result{Message: fmt.Sprintf("added task %d: %s", created.ID, created.Name)}, nil
		},
		Close: func(c commands.CloseArgs) (commands.Result, error) {
			projectID, task, ok := m.findTaskByID(c.TaskID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %d", c.TaskID)}
			}
			next, closed := m.Portfolio.CloseTask(projectID, task, portfolio.Closure{ClosedAt: m.Today})
			if !closed {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("could not close task %d", c.TaskID)}
			}
			m.Portfolio = next
			mutated = true
			return commands.Result{Message: fmt.Sprintf("closed task: %s", task.Name)}, nil
		},
		Show: func(s commands.ShowArgs) (commands.Result, error) {
			switch s.Screen {
			case "board":
				m.CurrentView = ViewBoard
			case "timeline":
				m.CurrentView = ViewTimeline
			case "priority":
				m.CurrentView = ViewPriority
			}
			return commands.Result{Message: fmt.Sprintf("show %s", s.Screen)}, nil
		},
		Bonus: func(b commands.BonusArgs) (commands.Result, error) {
			if b.Bonus > model.BonusHigh {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("bonus level out of range: %d", b.Bonus)}
			}
			projectID, task, ok := m.findTaskByID(b.TaskID)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task with id %d", b.TaskID)}
			}
			task.PriorityBonus = b.Bonus
			next, _, err := m.Portfolio.UpdateTask(projectID, task, portfolio.Closure{ClosedAt: m.Today})
			if err != nil {
				return commands.Result{}, err
			}
			m.Portfolio = next
			mutated = true
			return commands.Result{Message: fmt.Sprintf("bonus for %s: %s", task.Name, model.BonusLabel(b.Bonus))}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			if err := storage.ExportJSON(e.Path, m.Portfolio); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("exported %d project(s) to %s", len(m.Portfolio), e.Path)}, nil
		},
		Project: func(a commands.ProjectArgs) (commands.Result, error) {
			switch a.Action {
			case commands.ProjectActionAdd:
				stage := model.StagePlanning
				if a.Stage != "" {
					parsed, ok := model.ParseStage(a.Stage)
					if !ok {
						return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown stage: %s", a.Stage)}
					}
					stage = parsed
				}
				next, created, err := m.Portfolio.AddProject(model.Project{Name: a.Name, Stage: stage}, m.ProjectAlloc)
				if err != nil {
					return commands.Result{}, err
				}
				m.Portfolio = next
				mutated = true
				return commands.Result{Message: fmt.Sprintf("added project %d: %s (%s)", created.ID, created.Name, created.Stage)}, nil
			case commands.ProjectActionStage:
				parsed, ok := model.ParseStage(a.Stage)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown stage: %s", a.Stage)}
				}
				project, found := m.Portfolio.FindProject(a.ProjectID)
				if !found {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no project with id %d", a.ProjectID)}
				}
				project.Stage = parsed
				next, err := m.Portfolio.UpdateProject(project)
				if err != nil {
					return commands.Result{}, err
				}
				m.Portfolio = next
				mutated = true
				return commands.Result{Message: fmt.Sprintf("project %s moved to %s", project.Name, parsed)}, nil
			case commands.ProjectActionDelete:
				project, found := m.Portfolio.FindProject(a.ProjectID)
				if !found {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no project with id %d", a.ProjectID)}
				}
				next, err := m.Portfolio.DeleteProject(a.ProjectID)
				if err != nil {
					return commands.Result{}, err
				}
				m.Portfolio = next
				mutated = true
				return commands.Result{Message: fmt.Sprintf("deleted project %s and its %d task(s)", project.Name, len(project.Tasks))}, nil
			default:
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown project action: %s", a.Action)}
			}
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")

	if mutated {
		m.refresh()
		return m, m.persistCmd()
	}
	return m, nil
}

// findTaskByID searches the whole portfolio for a task id and reports
// the owning project.
func (m Model) findTaskByID(taskID int) (int, model.Task, bool) {
	for _, p := range m.Portfolio {
		for _, t := range p.Tasks {
			if t.ID == taskID {
				return p.ID, t, true
			}
		}
	}
	return 0, model.Task{}, false
}

package portfolio

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

// noteDateLayout formats the closure date inside the generated note.
const noteDateLayout = "2006-01-02"

// Closure carries the context a closure transition needs from the host.
type Closure struct {
	ClosedAt time.Time
}

// ClosureNote renders the immutable note a closed task leaves behind in
// its project's comment log.
func ClosureNote(taskName string, closedAt time.Time) string {
	return fmt.Sprintf("%s - %s - Done", taskName, closedAt.Format(noteDateLayout))
}

// Close runs the closure transition on a single project: the task's note
// is appended to the comment log and the task is removed from the list,
// as one step. When the project does not own the task, the input is
// returned unchanged and removed is false: a note is never recorded
// without the removal, and nothing is ever dropped without a note.
func Close(project model.Project, task model.Task, c Closure) (model.Project, bool) {
	idx := -1
	for i, existing := range project.Tasks {
		if existing.ID == task.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return project, false
	}

	out := project.Clone()
	out = out.AppendComment(ClosureNote(task.Name, c.ClosedAt))
	out.Tasks = append(out.Tasks[:idx], out.Tasks[idx+1:]...)
	return out, true
}

// CloseTask is the portfolio-level closure entry point used by the task
// edit flow. The transition is rejected as a unit when the owning
// project cannot be located.
func (p Portfolio) CloseTask(projectID int, task model.Task, c Closure) (Portfolio, bool) {
	for i, project := range p {
		if project.ID != projectID {
			continue
		}
		closed, removed := Close(project, task, c)
		if !removed {
			return p, false
		}
		out := p.Clone()
		out[i] = closed
		return out, true
	}
	return p, false
}

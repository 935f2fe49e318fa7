package portfolio

import (
	"errors"
	"fmt"

	"github.com/sandeepkv93/trackd/internal/model"
)

var (
	ErrProjectNotFound = errors.New("portfolio: project not found")
	ErrTaskNotFound    = errors.New("portfolio: task not found")
)

// Portfolio is an immutable snapshot of every project. Mutating
// operations return a fresh snapshot and leave the receiver untouched;
// the update loop owns the current snapshot and swaps it on success.
type Portfolio []model.Project

func (p Portfolio) Clone() Portfolio {
	out := make(Portfolio, len(p))
	for i, project := range p {
		out[i] = project.Clone()
	}
	return out
}

func (p Portfolio) FindProject(projectID int) (model.Project, bool) {
	for _, project := range p {
		if project.ID == projectID {
			return project, true
		}
	}
	return model.Project{}, false
}

func (p Portfolio) FindTask(projectID, taskID int) (model.Task, bool) {
	project, ok := p.FindProject(projectID)
	if !ok {
		return model.Task{}, false
	}
	for _, task := range project.Tasks {
		if task.ID == taskID {
			return task, true
		}
	}
	return model.Task{}, false
}

// TaskCount totals tasks across every project.
func (p Portfolio) TaskCount() int {
	n := 0
	for _, project := range p {
		n += len(project.Tasks)
	}
	return n
}

// AddProject appends a new project with an allocated id. The input's ID
// field is ignored.
func (p Portfolio) AddProject(project model.Project, alloc IDAllocator) (Portfolio, model.Project, error) {
	project.ID = alloc.Next()
	if project.Tasks == nil {
		project.Tasks = []model.Task{}
	}
	if err := project.Validate(); err != nil {
		return p, model.Project{}, err
	}
	out := p.Clone()
	out = append(out, project.Clone())
	return out, project, nil
}

// UpdateProject replaces the stored project's own fields. The task list
// is owned by the task operations and is carried over unchanged.
func (p Portfolio) UpdateProject(project model.Project) (Portfolio, error) {
	if err := project.Validate(); err != nil {
		return p, err
	}
	out := p.Clone()
	for i := range out {
		if out[i].ID != project.ID {
			continue
		}
		tasks := out[i].Tasks
		out[i] = project.Clone()
		out[i].Tasks = tasks
		return out, nil
	}
	return p, fmt.Errorf("%w: id %d", ErrProjectNotFound, project.ID)
}

// DeleteProject removes a project and, with it, all of its tasks from
// any future ranking.
func (p Portfolio) DeleteProject(projectID int) (Portfolio, error) {
	out := make(Portfolio, 0, len(p))
	found := false
	for _, project := range p {
		if project.ID == projectID {
			found = true
			continue
		}
		out = append(out, project.Clone())
	}
	if !found {
		return p, fmt.Errorf("%w: id %d", ErrProjectNotFound, projectID)
	}
	return out, nil
}

// AddTask attaches a new task to a project. The id comes from the
// allocator, the status collapses through Normalize, and validation runs
// on the completed record.
func (p Portfolio) AddTask(projectID int, task model.Task, alloc IDAllocator) (Portfolio, model.Task, error) {
	task.ID = alloc.Next()
	task = task.Normalize()
	if task.Status == model.StatusUnknown {
		task.Status = model.StatusPlanned
	}
	if err := task.Validate(); err != nil {
		return p, model.Task{}, err
	}

	out := p.Clone()
	for i := range out {
		if out[i].ID != projectID {
			continue
		}
		out[i].Tasks = append(out[i].Tasks, task)
		return out, task, nil
	}
	return p, model.Task{}, fmt.Errorf("%w: id %d", ErrProjectNotFound, projectID)
}

// UpdateTask overwrites a stored task with the edited record. When the
// edit sets a terminal status the change routes through CloseTask
// instead, so the closure side effect and the removal happen as one
// step; the returned bool reports that path.
func (p Portfolio) UpdateTask(projectID int, task model.Task, closure Closure) (Portfolio, bool, error) {
	task = task.Normalize()

	if task.Status.Terminal() {
		out, removed := p.CloseTask(projectID, task, closure)
		if !removed {
			return p, false, fmt.Errorf("%w: project %d task %d", ErrTaskNotFound, projectID, task.ID)
		}
		return out, true, nil
	}

	// An unrecognized status is stored as-is rather than rejected;
	// everything else goes through full validation.
	if task.Status != model.StatusUnknown {
		if err := task.Validate(); err != nil {
			return p, false, err
		}
	}

	out := p.Clone()
	for i := range out {
		if out[i].ID != projectID {
			continue
		}
		for j := range out[i].Tasks {
			if out[i].Tasks[j].ID == task.ID {
				out[i].Tasks[j] = task
				return out, false, nil
			}
		}
	}
	return p, false, fmt.Errorf("%w: project %d task %d", ErrTaskNotFound, projectID, task.ID)
}

// DeleteTask removes a task outright, without the closure note.
func (p Portfolio) DeleteTask(projectID, taskID int) (Portfolio, error) {
	out := p.Clone()
	for i := range out {
		if out[i].ID != projectID {
			continue
		}
		for j, task := range out[i].Tasks {
			if task.ID == taskID {
				out[i].Tasks = append(out[i].Tasks[:j], out[i].Tasks[j+1:]...)
				return out, nil
			}
		}
	}
	return p, fmt.Errorf("%w: project %d task %d", ErrTaskNotFound, projectID, taskID)
}

// Buckets groups projects into the three dashboard sections by stage.
type Buckets struct {
	Potential  []model.Project
	InProgress []model.Project
	Archived   []model.Project
}

func (p Portfolio) Categorize() Buckets {
	var b Buckets
	for _, project := range p {
		switch project.Stage.Bucket() {
		case model.BucketPotential:
			b.Potential = append(b.Potential, project)
		case model.BucketArchived:
			b.Archived = append(b.Archived, project)
		default:
			b.InProgress = append(b.InProgress, project)
		}
	}
	return b
}

package planner

import (
	"sort"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

const (
	// DefaultWindowDays is how far past today the eligibility horizon
	// reaches when no override is configured.
	DefaultWindowDays = 15
	// DefaultLimit caps the ranked view at the ten most urgent tasks.
	DefaultLimit = 10
)

type Options struct {
	WindowDays int
	Limit      int
}

func DefaultOptions() Options {
	return Options{WindowDays: DefaultWindowDays, Limit: DefaultLimit}
}

func (o Options) normalized() Options {
	if o.WindowDays <= 0 {
		o.WindowDays = DefaultWindowDays
	}
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	return o
}

// RankedTask is a task enriched with the derived fields the priority
// view displays. It is a projection; mutating it never touches the
// source portfolio.
type RankedTask struct {
	Task           model.Task
	ProjectID      int
	ProjectName    string
	Score          float64
	DaysToDeadline int
	Overdue        bool
}

// Rank scores every eligible task across the portfolio and returns the
// most urgent ones, highest score first, truncated to opts.Limit.
//
// A task is eligible when its start falls on or before today plus the
// window, when today lies inside [start, end], or when it is already
// overdue. The clauses overlap heavily on real data; each edge case
// (near-term starts, in-flight work, overdue work) keeps its own
// explicit path rather than being folded into one expression.
//
// The sort is stable: tasks with exactly equal scores keep the order in
// which they were encountered (projects in portfolio order, tasks in
// each project's list order). The result is derived data and must be
// recomputed whenever the portfolio changes; nothing here is cached.
func Rank(projects []model.Project, today time.Time, opts Options) []RankedTask {
	opts = opts.normalized()
	horizon := today.AddDate(0, 0, opts.WindowDays)

	ranked := make([]RankedTask, 0)
	for _, project := range projects {
		for _, task := range project.Tasks {
			startsInWindow := !task.Start.After(horizon)
			inFlight := !today.Before(task.Start) && !today.After(task.End)
			overdue := task.End.Before(today)
			if !startsInWindow && !inFlight && !overdue {
				continue
			}
			ranked = append(ranked, RankedTask{
				Task:           task,
				ProjectID:      project.ID,
				ProjectName:    project.Name,
				Score:          Score(task, today),
				DaysToDeadline: DaysUntil(task.End, today),
				Overdue:        overdue,
			})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}
	return ranked
}

package storage

import (
	"context"
	"errors"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/portfolio"
)

var ErrNotFound = errors.New("storage: not found")

type ProjectListFilter struct {
	Stage  string
	Limit  int
	Offset int
}

type TaskListFilter struct {
	ProjectID int
	Status    string
	Limit     int
	Offset    int
}

type Repository interface {
	CreateProject(ctx context.Context, in model.Project) error
	GetProject(ctx context.Context, id int) (model.Project, error)
	UpdateProject(ctx context.Context, in model.Project) error
	DeleteProject(ctx context.Context, id int) error
	ListProjects(ctx context.Context, filter ProjectListFilter) ([]model.Project, error)

	CreateTask(ctx context.Context, projectID int, in model.Task) error
	GetTask(ctx context.Context, id int) (model.Task, error)
	UpdateTask(ctx context.Context, in model.Task) error
	DeleteTask(ctx context.Context, id int) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error)

	// LoadPortfolio reads the whole snapshot; ReplacePortfolio writes it
	// back in one transaction. The dashboard works on full snapshots,
	// so these two carry most of the traffic.
	LoadPortfolio(ctx context.Context) (portfolio.Portfolio, error)
	ReplacePortfolio(ctx context.Context, p portfolio.Portfolio) error
}

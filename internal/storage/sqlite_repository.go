package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/portfolio"
)

// Calendar dates only; time-of-day never reaches the database.
const sqliteDateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, in model.Project) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, stage, responsible, potential_revenue, price_quotation, price_outsourcing,
			work_order_generated, work_order_number, customized_script_request, customized_script_number,
			demand_form_generated, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Name, string(in.Stage), in.Responsible, in.PotentialRevenue,
		nullFloat(in.PriceQuotation), nullFloat(in.PriceOutsourcing),
		boolInt(in.WorkOrderGenerated), in.WorkOrderNumber,
		boolInt(in.CustomizedScriptRequest), in.CustomizedScriptNumber,
		boolInt(in.DemandFormGenerated), in.Comments,
	)
	return err
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id int) (model.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, stage, responsible, potential_revenue, price_quotation, price_outsourcing,
			work_order_generated, work_order_number, customized_script_request, customized_script_number,
			demand_form_generated, comments
		FROM projects WHERE id = ?`, id)
	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Project{}, ErrNotFound
		}
		return model.Project{}, err
	}
	tasks, err := r.ListTasks(ctx, TaskListFilter{ProjectID: id})
	if err != nil {
		return model.Project{}, err
	}
	project.Tasks = tasks
	return project, nil
}

func (r *SQLiteRepository) UpdateProject(ctx context.Context, in model.Project) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE projects
		SET name = ?, stage = ?, responsible = ?, potential_revenue = ?, price_quotation = ?, price_outsourcing = ?,
			work_order_generated = ?, work_order_number = ?, customized_script_request = ?, customized_script_number = ?,
			demand_form_generated = ?, comments = ?
		WHERE id = ?`,
		in.Name, string(in.Stage), in.Responsible, in.PotentialRevenue,
		nullFloat(in.PriceQuotation), nullFloat(in.PriceOutsourcing),
		boolInt(in.WorkOrderGenerated), in.WorkOrderNumber,
		boolInt(in.CustomizedScriptRequest), in.CustomizedScriptNumber,
		boolInt(in.DemandFormGenerated), in.Comments, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteProject(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListProjects(ctx context.Context, filter ProjectListFilter) ([]model.Project, error) {
	query := `SELECT id, name, stage, responsible, potential_revenue, price_quotation, price_outsourcing,
		work_order_generated, work_order_number, customized_script_request, customized_script_number,
		demand_form_generated, comments FROM projects`
	args := make([]any, 0, 3)
	if filter.Stage != "" {
		query += ` WHERE stage = ?`
		args = append(args, filter.Stage)
	}
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Project, 0)
	for rows.Next() {
		project, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, project)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, projectID int, in model.Task) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (id, project_id, position, name, start_date, end_date, status, priority_bonus, comments)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE project_id = ?), ?, ?, ?, ?, ?, ?)`,
		in.ID, projectID, projectID, in.Name, dateString(in.Start), dateString(in.End),
		string(in.Status), in.PriorityBonus, in.Comments,
	)
	return err
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int) (model.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, start_date, end_date, status, priority_bonus, comments
		FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, err
	}
	return task, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, in model.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks
		SET name = ?, start_date = ?, end_date = ?, status = ?, priority_bonus = ?, comments = ?
		WHERE id = ?`,
		in.Name, dateString(in.Start), dateString(in.End), string(in.Status), in.PriorityBonus, in.Comments, in.ID,
	)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTasks(ctx context.Context, filter TaskListFilter) ([]model.Task, error) {
	query := `SELECT id, name, start_date, end_date, status, priority_bonus, comments FROM tasks`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.ProjectID != 0 {
		clauses = append(clauses, "project_id = ?")
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY position ASC, id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, task)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) LoadPortfolio(ctx context.Context) (portfolio.Portfolio, error) {
	projects, err := r.ListProjects(ctx, ProjectListFilter{})
	if err != nil {
		return nil, err
	}
	out := make(portfolio.Portfolio, 0, len(projects))
	for _, project := range projects {
		tasks, err := r.ListTasks(ctx, TaskListFilter{ProjectID: project.ID})
		if err != nil {
			return nil, err
		}
		project.Tasks = tasks
		out = append(out, project)
	}
	return out, nil
}

// ReplacePortfolio rewrites both tables from the snapshot inside one
// transaction, preserving task list order through the position column.
func (r *SQLiteRepository) ReplacePortfolio(ctx context.Context, p portfolio.Portfolio) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("clear projects: %w", err)
	}

	for _, project := range p {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, name, stage, responsible, potential_revenue, price_quotation, price_outsourcing,
				work_order_generated, work_order_number, customized_script_request, customized_script_number,
				demand_form_generated, comments)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			project.ID, project.Name, string(project.Stage), project.Responsible, project.PotentialRevenue,
			nullFloat(project.PriceQuotation), nullFloat(project.PriceOutsourcing),
			boolInt(project.WorkOrderGenerated), project.WorkOrderNumber,
			boolInt(project.CustomizedScriptRequest), project.CustomizedScriptNumber,
			boolInt(project.DemandFormGenerated), project.Comments,
		); err != nil {
			return fmt.Errorf("insert project %d: %w", project.ID, err)
		}
		for position, task := range project.Tasks {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO tasks (id, project_id, position, name, start_date, end_date, status, priority_bonus, comments)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				task.ID, project.ID, position, task.Name, dateString(task.Start), dateString(task.End),
				string(task.Status), task.PriorityBonus, task.Comments,
			); err != nil {
				return fmt.Errorf("insert task %d: %w", task.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}

func dateString(v time.Time) string {
	return v.UTC().Format(sqliteDateLayout)
}

func parseDate(v string) (time.Time, error) {
	return time.Parse(sqliteDateLayout, v)
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (model.Project, error) {
	var out model.Project
	var stage string
	var quotation sql.NullFloat64
	var outsourcing sql.NullFloat64
	var workOrder, scriptRequest, demandForm int
	if err := s.Scan(&out.ID, &out.Name, &stage, &out.Responsible, &out.PotentialRevenue,
		&quotation, &outsourcing, &workOrder, &out.WorkOrderNumber,
		&scriptRequest, &out.CustomizedScriptNumber, &demandForm, &out.Comments); err != nil {
		return model.Project{}, err
	}
	out.Stage = model.Stage(stage)
	if quotation.Valid {
		v := quotation.Float64
		out.PriceQuotation = &v
	}
	if outsourcing.Valid {
		v := outsourcing.Float64
		out.PriceOutsourcing = &v
	}
	out.WorkOrderGenerated = workOrder == 1
	out.CustomizedScriptRequest = scriptRequest == 1
	out.DemandFormGenerated = demandForm == 1
	return out, nil
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var start, end, status string
	if err := s.Scan(&out.ID, &out.Name, &start, &end, &status, &out.PriorityBonus, &out.Comments); err != nil {
		return model.Task{}, err
	}
	startAt, err := parseDate(start)
	if err != nil {
		return model.Task{}, err
	}
	endAt, err := parseDate(end)
	if err != nil {
		return model.Task{}, err
	}
	out.Start = startAt
	out.End = endAt
	out.Status = model.ParseStatus(status)
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

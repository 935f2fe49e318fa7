package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/portfolio"
)

// JSON interchange format: a sequence of project records embedding task
// records, dates as ISO calendar strings. This is the shape the
// dashboard's data files have always used, so imports tolerate partial
// records (missing comments, unrecognized statuses) instead of failing.

type taskRecord struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Status        string `json:"status"`
	PriorityBonus int    `json:"priorityBonus"`
	Comments      string `json:"comments"`
}

type projectRecord struct {
	ID                      int          `json:"id"`
	Name                    string       `json:"name"`
	ProjectStage            string       `json:"projectStage"`
	Responsible             string       `json:"responsible"`
	PotentialRevenue        float64      `json:"potentialRevenue"`
	PriceQuotation          *float64     `json:"priceQuotation"`
	PriceOutsourcing        *float64     `json:"priceOutsourcing"`
	WorkOrderGenerated      bool         `json:"workOrderGenerated"`
	WorkOrderNumber         string       `json:"workOrderNumber"`
	CustomizedScriptRequest bool         `json:"customizedScriptRequest"`
	CustomizedScriptNumber  string       `json:"customizedScriptNumber"`
	DemandFormGenerated     bool         `json:"demandFormGenerated"`
	Comments                string       `json:"comments"`
	Tasks                   []taskRecord `json:"tasks"`
}

// ExportJSON writes the snapshot to path atomically (tmp file + rename).
func ExportJSON(path string, p portfolio.Portfolio) error {
	records := make([]projectRecord, 0, len(p))
	for _, project := range p {
		records = append(records, projectToRecord(project))
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal portfolio: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return os.Rename(tmp, path)
}

// ImportJSON reads a portfolio snapshot from path.
func ImportJSON(path string) (portfolio.Portfolio, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	var records []projectRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}

	out := make(portfolio.Portfolio, 0, len(records))
	for _, rec := range records {
		project, err := recordToProject(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, project)
	}
	return out, nil
}

func projectToRecord(p model.Project) projectRecord {
	tasks := make([]taskRecord, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		tasks = append(tasks, taskRecord{
			ID:            t.ID,
			Name:          t.Name,
			Start:         dateString(t.Start),
			End:           dateString(t.End),
			Status:        string(t.Status),
			PriorityBonus: t.PriorityBonus,
			Comments:      t.Comments,
		})
	}
	return projectRecord{
		ID:                      p.ID,
		Name:                    p.Name,
		ProjectStage:            string(p.Stage),
		Responsible:             p.Responsible,
		PotentialRevenue:        p.PotentialRevenue,
		PriceQuotation:          p.PriceQuotation,
		PriceOutsourcing:        p.PriceOutsourcing,
		WorkOrderGenerated:      p.WorkOrderGenerated,
		WorkOrderNumber:         p.WorkOrderNumber,
		CustomizedScriptRequest: p.CustomizedScriptRequest,
		CustomizedScriptNumber:  p.CustomizedScriptNumber,
		DemandFormGenerated:     p.DemandFormGenerated,
		Comments:                p.Comments,
		Tasks:                   tasks,
	}
}

func recordToProject(rec projectRecord) (model.Project, error) {
	project := model.Project{
		ID:                      rec.ID,
		Name:                    rec.Name,
		Stage:                   model.Stage(rec.ProjectStage),
		Responsible:             rec.Responsible,
		PotentialRevenue:        rec.PotentialRevenue,
		PriceQuotation:          rec.PriceQuotation,
		PriceOutsourcing:        rec.PriceOutsourcing,
		WorkOrderGenerated:      rec.WorkOrderGenerated,
		WorkOrderNumber:         rec.WorkOrderNumber,
		CustomizedScriptRequest: rec.CustomizedScriptRequest,
		CustomizedScriptNumber:  rec.CustomizedScriptNumber,
		DemandFormGenerated:     rec.DemandFormGenerated,
		Comments:                rec.Comments,
		Tasks:                   make([]model.Task, 0, len(rec.Tasks)),
	}
	for _, t := range rec.Tasks {
		start, err := parseFlexibleDate(t.Start)
		if err != nil {
			return model.Project{}, fmt.Errorf("task %d start: %w", t.ID, err)
		}
		end, err := parseFlexibleDate(t.End)
		if err != nil {
			return model.Project{}, fmt.Errorf("task %d end: %w", t.ID, err)
		}
		project.Tasks = append(project.Tasks, model.Task{
			ID:            t.ID,
			Name:          t.Name,
			Start:         start,
			End:           end,
			Status:        model.ParseStatus(t.Status),
			PriorityBonus: t.PriorityBonus,
			Comments:      t.Comments,
		})
	}
	return project, nil
}

// parseFlexibleDate accepts both plain calendar dates and full RFC 3339
// timestamps; older export files used either.
func parseFlexibleDate(v string) (time.Time, error) {
	if t, err := time.Parse(sqliteDateLayout, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", v)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

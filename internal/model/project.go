package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidStage = errors.New("model: invalid project stage")

// Stage is a project's position in the delivery pipeline.
type Stage string

const (
	StagePlanning    Stage = "Planning"
	StageDesign      Stage = "Design"
	StageDevelopment Stage = "Development"
	StageTesting     Stage = "Testing"
	StageDeployment  Stage = "Deployment"
	StageComplete    Stage = "Complete"
)

// Stages lists every pipeline stage in order, for forms and palettes.
func Stages() []Stage {
	return []Stage{StagePlanning, StageDesign, StageDevelopment, StageTesting, StageDeployment, StageComplete}
}

// ParseStage matches raw text to a pipeline stage, case-insensitively.
// Unlike task statuses there is no unknown fallback: stages come from
// forms and palette input, so a typo is reported instead of stored.
func ParseStage(raw string) (Stage, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range Stages() {
		if strings.EqualFold(trimmed, string(s)) {
			return s, true
		}
	}
	return "", false
}

func (s Stage) IsValid() bool {
	switch s {
	case StagePlanning, StageDesign, StageDevelopment, StageTesting, StageDeployment, StageComplete:
		return true
	default:
		return false
	}
}

// Bucket is the dashboard grouping derived from a project's stage.
type Bucket string

const (
	BucketPotential  Bucket = "Potential"
	BucketInProgress Bucket = "In-Progress"
	BucketArchived   Bucket = "Archived"
)

// Bucket maps a stage onto its dashboard section: projects still in
// planning are potential work, completed ones are archived, and
// everything between is in progress.
func (s Stage) Bucket() Bucket {
	switch s {
	case StagePlanning:
		return BucketPotential
	case StageComplete:
		return BucketArchived
	default:
		return BucketInProgress
	}
}

// Project is the top-level aggregate: pipeline position, financial
// metadata, a free-text comment log, and the ordered tasks it owns.
type Project struct {
	ID                      int
	Name                    string
	Stage                   Stage
	Responsible             string
	PotentialRevenue        float64
	PriceQuotation          *float64
	PriceOutsourcing        *float64
	WorkOrderGenerated      bool
	WorkOrderNumber         string
	CustomizedScriptRequest bool
	CustomizedScriptNumber  string
	DemandFormGenerated     bool
	Comments                string
	Tasks                   []Task
}

func (p Project) Validate() error {
	if p.ID < 1 {
		return errors.New("model: project id must be positive")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("model: project name is required")
	}
	if !p.Stage.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStage, p.Stage)
	}
	return nil
}

// Clone returns a deep copy. Snapshots handed to the planner must not
// alias the tasks slice the update loop keeps mutating.
func (p Project) Clone() Project {
	out := p
	if p.PriceQuotation != nil {
		v := *p.PriceQuotation
		out.PriceQuotation = &v
	}
	if p.PriceOutsourcing != nil {
		v := *p.PriceOutsourcing
		out.PriceOutsourcing = &v
	}
	out.Tasks = make([]Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return out
}

// AppendComment adds a line to the project's comment log, newline-joined
// when the log is non-empty.
func (p Project) AppendComment(line string) Project {
	out := p
	if out.Comments == "" {
		out.Comments = line
	} else {
		out.Comments = out.Comments + "\n" + line
	}
	return out
}

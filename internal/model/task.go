package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrMissingDates  = errors.New("model: task start and end dates are required")
)

// Status is the lifecycle state of a task. The set is open at the edges:
// ParseStatus maps anything unrecognized to StatusUnknown instead of
// failing, so one malformed record never takes down the rest of the
// portfolio.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusWaiting    Status = "waiting"
	StatusDelayed    Status = "delayed"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusClosed     Status = "closed"
	StatusUnknown    Status = "unknown"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusWaiting, StatusDelayed,
		StatusCompleted, StatusFailed, StatusClosed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status removes the task from its project.
// Only closure is terminal; completed and failed tasks stay on the board.
func (s Status) Terminal() bool {
	return s == StatusClosed
}

// ParseStatus normalizes raw status text. Unrecognized values degrade to
// StatusUnknown rather than erroring.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s.IsValid() {
		return s
	}
	return StatusUnknown
}

// Priority bonus levels. The bonus pulls a task's effective deadline
// closer when scoring; any integer is accepted by the engine, these are
// just the conventional steps exposed in the UI.
const (
	BonusNone   = 0
	BonusLow    = 1
	BonusMedium = 2
	BonusHigh   = 3
)

func BonusLabel(bonus int) string {
	switch bonus {
	case BonusNone:
		return "none"
	case BonusLow:
		return "low"
	case BonusMedium:
		return "medium"
	case BonusHigh:
		return "high"
	default:
		return fmt.Sprintf("+%d", bonus)
	}
}

// Task is a scheduled unit of work owned by exactly one project. Start
// and End are calendar dates; time-of-day carries no meaning. Start <= End
// is expected but deliberately not enforced here, since the scoring
// engine has to behave sanely even when it is violated.
type Task struct {
	ID            int
	Name          string
	Start         time.Time
	End           time.Time
	Status        Status
	PriorityBonus int
	Comments      string
}

func (t Task) Validate() error {
	if t.ID < 1 {
		return errors.New("model: task id must be positive")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if t.Start.IsZero() || t.End.IsZero() {
		return ErrMissingDates
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// Normalize fills defaulted fields on records arriving from outside:
// names are trimmed and unrecognized statuses collapse to StatusUnknown.
func (t Task) Normalize() Task {
	out := t
	out.Name = strings.TrimSpace(t.Name)
	if !out.Status.IsValid() {
		out.Status = ParseStatus(string(t.Status))
	}
	return out
}

package planner

import (
	"math"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

// Score maps a task and a reference day onto a normalized urgency value
// in [0, 100]. The score is the fraction of the task's allotted duration
// already elapsed, with the priority bonus folded into the same axis by
// pulling the effective deadline forward: a bonus of n behaves as if the
// deadline were n days closer.
//
// Only Start, End and PriorityBonus participate; status and every other
// field are ignored. The function is total: inverted date ranges, zero
// dates and arbitrary bonuses all produce a value in range, never a
// panic or an error.
func Score(task model.Task, today time.Time) float64 {
	totalDays := float64(SpanDays(task.Start, task.End))
	remaining := float64(DaysUntil(task.End, today))

	adjusted := remaining - float64(task.PriorityBonus)
	if adjusted < 0 {
		adjusted = 0
	}

	raw := (totalDays - adjusted) / totalDays * 100

	// Degenerate date inputs fall back to zero urgency instead of
	// poisoning the ranking. SpanDays floors the divisor at 1, so this
	// branch only fires if the duration math itself overflows.
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}

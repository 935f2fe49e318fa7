package planner

import (
	"math"
	"time"
)

const hoursPerDay = 24

// ceilDays counts the days from one instant to another, rounded up.
// Negative when "to" precedes "from". Inputs are calendar dates, so for
// clean date values the division is exact and the ceil only matters when
// records arrive with a stray time-of-day component.
func ceilDays(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / hoursPerDay))
}

// SpanDays is the inclusive day-span of a task, floored at 1 so that
// zero-length and inverted date ranges never divide by zero downstream.
func SpanDays(start, end time.Time) int {
	span := ceilDays(start, end) + 1
	if span < 1 {
		return 1
	}
	return span
}

// DaysUntil counts the days remaining from today until the deadline,
// rounded up. Negative for overdue deadlines.
func DaysUntil(deadline, today time.Time) int {
	return ceilDays(today, deadline)
}

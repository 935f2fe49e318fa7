package planner

import (
	"testing"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestScoreAtDeadline(t *testing.T) {
	task := model.Task{
		Start: day(2025, 8, 1),
		End:   day(2025, 8, 10),
	}
	// totalDays=10, remainingDays=0, adjusted=0 -> 100.
	if got := Score(task, day(2025, 8, 10)); got != 100 {
		t.Fatalf("expected 100 at deadline, got %v", got)
	}
}

func TestScoreAtStart(t *testing.T) {
	task := model.Task{
		Start: day(2025, 8, 1),
		End:   day(2025, 8, 10),
	}
	// totalDays=10, remainingDays=9 -> (10-9)/10*100 = 10.
	if got := Score(task, day(2025, 8, 1)); got != 10 {
		t.Fatalf("expected 10 at start, got %v", got)
	}
}

func TestScoreBonusPullsDeadlineForward(t *testing.T) {
	task := model.Task{
		Start:         day(2025, 8, 1),
		End:           day(2025, 8, 10),
		PriorityBonus: model.BonusHigh,
	}
	// adjusted = max(0, 9-3) = 6 -> (10-6)/10*100 = 40.
	if got := Score(task, day(2025, 8, 1)); got != 40 {
		t.Fatalf("expected 40 with high bonus, got %v", got)
	}
}

func TestScoreSaturatesWhenOverdue(t *testing.T) {
	task := model.Task{
		Start: day(2025, 8, 1),
		End:   day(2025, 8, 10),
	}
	// Overdue by more than its own duration.
	if got := Score(task, day(2025, 9, 15)); got != 100 {
		t.Fatalf("expected saturation at 100, got %v", got)
	}
}

func TestScoreFarFutureNearZero(t *testing.T) {
	task := model.Task{
		Start: day(2026, 6, 1),
		End:   day(2026, 6, 2),
	}
	if got := Score(task, day(2025, 8, 1)); got != 0 {
		t.Fatalf("expected 0 for far-future task, got %v", got)
	}
}

func TestScoreMonotonicInToday(t *testing.T) {
	task := model.Task{
		Start:         day(2025, 8, 1),
		End:           day(2025, 8, 10),
		PriorityBonus: model.BonusLow,
	}
	prev := -1.0
	for offset := -5; offset <= 20; offset++ {
		today := day(2025, 8, 1).AddDate(0, 0, offset)
		got := Score(task, today)
		if got < prev {
			t.Fatalf("score dropped from %v to %v as today advanced to %s", prev, got, today.Format("2006-01-02"))
		}
		prev = got
	}
}

func TestScoreMonotonicInBonus(t *testing.T) {
	task := model.Task{
		Start: day(2025, 8, 1),
		End:   day(2025, 8, 10),
	}
	today := day(2025, 8, 3)
	prev := -1.0
	for bonus := -3; bonus <= 12; bonus++ {
		task.PriorityBonus = bonus
		got := Score(task, today)
		if got < prev {
			t.Fatalf("score dropped from %v to %v at bonus %d", prev, got, bonus)
		}
		prev = got
	}
}

func TestScoreTotalOverDegenerateInputs(t *testing.T) {
	today := day(2025, 8, 10)
	cases := []struct {
		name string
		task model.Task
	}{
		{"inverted range", model.Task{Start: day(2025, 8, 10), End: day(2025, 8, 1)}},
		{"zero-length", model.Task{Start: day(2025, 8, 5), End: day(2025, 8, 5)}},
		{"zero dates", model.Task{}},
		{"negative bonus", model.Task{Start: day(2025, 8, 1), End: day(2025, 8, 20), PriorityBonus: -10}},
		{"huge bonus", model.Task{Start: day(2025, 8, 1), End: day(2025, 8, 20), PriorityBonus: 100000}},
	}
	for _, tc := range cases {
		got := Score(tc.task, today)
		if got < 0 || got > 100 {
			t.Errorf("%s: score %v out of [0,100]", tc.name, got)
		}
	}
}

func TestSpanDaysFloorsAtOne(t *testing.T) {
	if got := SpanDays(day(2025, 8, 10), day(2025, 8, 1)); got != 1 {
		t.Fatalf("inverted range span = %d, want 1", got)
	}
	if got := SpanDays(day(2025, 8, 5), day(2025, 8, 5)); got != 1 {
		t.Fatalf("zero-length span = %d, want 1", got)
	}
	if got := SpanDays(day(2025, 8, 1), day(2025, 8, 10)); got != 10 {
		t.Fatalf("inclusive span = %d, want 10", got)
	}
}

func TestDaysUntilNegativeWhenOverdue(t *testing.T) {
	if got := DaysUntil(day(2025, 8, 1), day(2025, 8, 4)); got != -3 {
		t.Fatalf("expected -3 for overdue deadline, got %d", got)
	}
	if got := DaysUntil(day(2025, 8, 10), day(2025, 8, 1)); got != 9 {
		t.Fatalf("expected 9 days remaining, got %d", got)
	}
}

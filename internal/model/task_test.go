package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{
		ID:     1,
		Name:   "Draft quotation",
		Start:  time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		Status: StatusPlanned,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsMissingFields(t *testing.T) {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC)

	task := Task{ID: 0, Name: "x", Start: start, End: end, Status: StatusPlanned}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for non-positive id")
	}

	task = Task{ID: 1, Name: "   ", Start: start, End: end, Status: StatusPlanned}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank name")
	}

	task = Task{ID: 1, Name: "x", Status: StatusPlanned}
	if err := task.Validate(); !errors.Is(err, ErrMissingDates) {
		t.Fatalf("expected ErrMissingDates, got: %v", err)
	}

	task = Task{ID: 1, Name: "x", Start: start, End: end, Status: Status("archived")}
	if err := task.Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"planned", StatusPlanned},
		{"  In_Progress ", StatusInProgress},
		{"CLOSED", StatusClosed},
		{"delayed", StatusDelayed},
		{"", StatusUnknown},
		{"on-hold", StatusUnknown},
		{"done", StatusUnknown},
	}
	for _, tc := range cases {
		if got := ParseStatus(tc.raw); got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusClosed.Terminal() {
		t.Fatal("closed must be terminal")
	}
	for _, s := range []Status{StatusPlanned, StatusInProgress, StatusWaiting, StatusDelayed, StatusCompleted, StatusFailed, StatusUnknown} {
		if s.Terminal() {
			t.Errorf("status %q must not be terminal", s)
		}
	}
}

func TestBonusLabel(t *testing.T) {
	cases := []struct {
		bonus int
		want  string
	}{
		{BonusNone, "none"},
		{BonusLow, "low"},
		{BonusMedium, "medium"},
		{BonusHigh, "high"},
		{7, "+7"},
	}
	for _, tc := range cases {
		if got := BonusLabel(tc.bonus); got != tc.want {
			t.Errorf("BonusLabel(%d) = %q, want %q", tc.bonus, got, tc.want)
		}
	}
}

func TestTaskNormalize(t *testing.T) {
	task := Task{Name: "  trim me  ", Status: Status("Bogus")}
	got := task.Normalize()
	if got.Name != "trim me" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.Status != StatusUnknown {
		t.Fatalf("expected unknown status fallback, got %q", got.Status)
	}
}

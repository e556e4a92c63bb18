package model

import (
	"testing"
	"time"
)

func TestDateOfStripsTimeOfDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	late := time.Date(2025, time.March, 10, 23, 59, 59, 0, loc)
	got := DateOf(late)
	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf = %v, want %v", got, want)
	}
}

func TestWindowStartCrossesMonthBoundary(t *testing.T) {
	// A 7-day window ending March 3 starts February 25; subtracting from the
	// day-of-month field alone would underflow.
	end := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	got := WindowStart(end, 7)
	want := time.Date(2025, time.February, 25, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WindowStart = %v, want %v", got, want)
	}
}

func TestWindowStartCrossesYearBoundary(t *testing.T) {
	end := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	got := WindowStart(end, 30)
	want := time.Date(2024, time.December, 7, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WindowStart = %v, want %v", got, want)
	}
}

func TestWindowStartContainsExactlyNDates(t *testing.T) {
	end := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)
	start := WindowStart(end, 7)
	days := 0
	for d := start; !d.After(end); d = AddDays(d, 1) {
		days++
	}
	if days != 7 {
		t.Errorf("window contains %d dates, want 7", days)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2025-02-28")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatDate(parsed); got != "2025-02-28" {
		t.Errorf("round trip = %q", got)
	}

	if _, err := ParseDate("28/02/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

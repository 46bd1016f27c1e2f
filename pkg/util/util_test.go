package util

import (
	"math"
	"testing"
	"time"
)

func TestCeilDays(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int
	}{
		{0, 0},
		{5 * 24 * time.Hour, 5},
		{5*24*time.Hour + time.Minute, 6},
		{time.Hour, 1},
		{-12 * time.Hour, 0},
		{-36 * time.Hour, -1},
	}
	for _, tt := range tests {
		if got := CeilDays(tt.in); got != tt.want {
			t.Errorf("CeilDays(%v): expected %d, got %d", tt.in, tt.want, got)
		}
	}
}

func TestDaysBetweenIgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 5, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 5, 3, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 2 {
		t.Errorf("Expected 2 days, got %d", got)
	}
}

func TestCivilDayKeepsLocalDate(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 5, 1, 22, 0, 0, 0, loc) // already May 2nd in UTC
	got := CivilDay(in)
	if !got.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected 2024-05-01 UTC midnight, got %v", got)
	}
}

func TestRoundNonNegative(t *testing.T) {
	tests := map[float64]int{
		-3:         0,
		0:          0,
		2.4:        2,
		2.5:        3,
		math.NaN(): 0,
	}
	for in, want := range tests {
		if got := RoundNonNegative(in); got != want {
			t.Errorf("RoundNonNegative(%v): expected %d, got %d", in, want, got)
		}
	}
}

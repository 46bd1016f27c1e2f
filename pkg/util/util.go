package util

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// CeilDays converts d to whole days, rounding up. Negative spans round
// toward zero, so anything under a day before the origin is 0.
func CeilDays(d time.Duration) int {
	return int(math.Ceil(float64(d) / float64(day)))
}

// CivilDay drops the time of day from t as seen in its own location and
// returns that calendar date at UTC midnight.
func CivilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween is the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return CeilDays(CivilDay(b).Sub(CivilDay(a)))
}

// RoundNonNegative rounds f to the nearest int and clamps it at zero.
// NaN and negative values become 0.
func RoundNonNegative(f float64) int {
	if math.IsNaN(f) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Round(f))
}

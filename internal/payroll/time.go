package payroll

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidInterval reports an elapsed-time computation whose end
	// precedes its start.
	ErrInvalidInterval = errors.New("invalid interval: end is before start")

	// ErrInvalidPeriod reports an aggregation window whose start is after
	// its end.
	ErrInvalidPeriod = errors.New("invalid period: start date is after end date")
)

// ElapsedHours returns the hours between two absolute timestamps.
func ElapsedHours(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidInterval
	}
	return end.Sub(start).Hours(), nil
}

// LateMinutes returns the whole minutes the come time is past the standard
// come time, never negative.
func LateMinutes(comeTime, standard time.Time) int {
	if !comeTime.After(standard) {
		return 0
	}
	return int(comeTime.Sub(standard).Minutes())
}

// Round2 rounds half-up to two decimal places. Applied at presentation only;
// intermediate sums stay unrounded so rounding error does not compound
// across aggregation steps.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// DayOf truncates a timestamp to day granularity in its own location.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

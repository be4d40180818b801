package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedHours(t *testing.T) {
	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

	got, err := ElapsedHours(start, start.Add(10*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	got, err = ElapsedHours(start, start.Add(8*time.Hour+30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 8.5, got)

	got, err = ElapsedHours(start, start)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestElapsedHoursInvalidInterval(t *testing.T) {
	start := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

	_, err := ElapsedHours(start, start.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestLateMinutes(t *testing.T) {
	standard := time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC)

	// 08:15 against an 08:00 standard is 15 late minutes.
	assert.Equal(t, 15, LateMinutes(standard.Add(15*time.Minute), standard))

	// Seconds are floored away, not rounded up.
	assert.Equal(t, 15, LateMinutes(standard.Add(15*time.Minute+30*time.Second), standard))

	// Early or on-time arrivals are never negative.
	assert.Equal(t, 0, LateMinutes(standard, standard))
	assert.Equal(t, 0, LateMinutes(standard.Add(-40*time.Minute), standard))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.5, Round2(7.5))
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.238))
	assert.Equal(t, 100.0, Round2(99.999))
	assert.Equal(t, 0.0, Round2(0))
}

func TestDayOf(t *testing.T) {
	ts := time.Date(2026, 7, 9, 18, 45, 12, 999, time.UTC)
	assert.Equal(t, time.Date(2026, 7, 9, 0, 0, 0, 0, time.UTC), DayOf(ts))
}

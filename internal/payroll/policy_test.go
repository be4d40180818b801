package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHourlyRate(t *testing.T) {
	p := DefaultPolicy()

	// 8 hours x 22 days = 176 working hours per month.
	assert.Equal(t, 1000.0, p.HourlyRate(176000))
	assert.Equal(t, 0.0, p.HourlyRate(0))
	assert.Equal(t, 2500.0/176.0, p.HourlyRate(2500))
}

func TestHourlyRateCustomPolicy(t *testing.T) {
	p := Policy{WorkHoursPerDay: 6, WorkDaysPerMonth: 20, OvertimeMultiplier: 2}

	assert.Equal(t, 10.0, p.HourlyRate(1200))
}

func TestOvertimeHours(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name         string
		workingHours float64
		approvedCap  float64
		want         float64
	}{
		{"no approval stays zero", 10, 0, 0},
		{"excess below cap", 10, 3, 2},
		{"cap bounds excess", 12, 3, 3},
		{"no excess worked", 7, 5, 0},
		{"exactly the standard day", 8, 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.OvertimeHours(tt.workingHours, tt.approvedCap))
		})
	}
}

func TestStandardComeTime(t *testing.T) {
	p := DefaultPolicy()

	day := time.Date(2026, 3, 5, 13, 42, 7, 0, time.UTC)
	got := p.StandardComeTime(day)

	assert.Equal(t, time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC), got)
}

func TestStandardComeTimeCustomClock(t *testing.T) {
	p := Policy{StandardCheckIn: "09:30"}

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	got := p.StandardComeTime(day)

	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

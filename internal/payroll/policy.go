package payroll

import "time"

// Policy names the organizational pay constants. They are deliberately not
// hidden literals: the attendance repository and the aggregator receive a
// Policy at construction so deployments can vary them and tests can pin them.
type Policy struct {
	WorkHoursPerDay    float64 `yaml:"work_hours_per_day"`
	WorkDaysPerMonth   float64 `yaml:"work_days_per_month"`
	OvertimeMultiplier float64 `yaml:"overtime_multiplier"`
	StandardCheckIn    string  `yaml:"standard_check_in"`
}

// DefaultPolicy is the 8h x 22d month with a 1.5x overtime premium and an
// 08:00 expected start.
func DefaultPolicy() Policy {
	return Policy{
		WorkHoursPerDay:    8,
		WorkDaysPerMonth:   22,
		OvertimeMultiplier: 1.5,
		StandardCheckIn:    "08:00",
	}
}

// HourlyRate converts a base monthly salary to an hourly rate. The divisor
// is the policy's working month, not the actual calendar.
func (p Policy) HourlyRate(baseSalary float64) float64 {
	return baseSalary / (p.WorkHoursPerDay * p.WorkDaysPerMonth)
}

// StandardComeTime places the policy's expected start-of-day wall clock on
// the given work day, in the work day's location.
func (p Policy) StandardComeTime(day time.Time) time.Time {
	wall, err := time.Parse("15:04", p.StandardCheckIn)
	if err != nil {
		wall, _ = time.Parse("15:04", DefaultPolicy().StandardCheckIn)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), wall.Hour(), wall.Minute(), 0, 0, day.Location())
}

// OvertimeHours derives payable overtime at check-out. The approved cap
// strictly bounds what is payable; without an approval the cap is zero and
// extra hours stay unmonetized.
func (p Policy) OvertimeHours(workingHours, approvedCap float64) float64 {
	if approvedCap <= 0 || workingHours <= p.WorkHoursPerDay {
		return 0
	}
	extra := workingHours - p.WorkHoursPerDay
	if extra > approvedCap {
		return approvedCap
	}
	return extra
}

package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance statuses.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceLeave   = "LEAVE"
	AttendanceHoliday = "HOLIDAY"
)

// Attendance is the per-employee, per-work-day ledger record. There is at
// most one row per (employee_id, work_day); the database enforces it.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	EmployeeID       *int       `json:"employee_id"        bun:"employee_id"`
	WorkDay          *time.Time `json:"work_day"           bun:"work_day"`
	ComeTime         *time.Time `json:"come_time"          bun:"come_time"`
	StandardComeTime *time.Time `json:"standard_come_time" bun:"standard_come_time"`
	LeaveTime        *time.Time `json:"leave_time"         bun:"leave_time"`
	LateMinutes      *int       `json:"late_minutes"       bun:"late_minutes"`
	WorkingHours     *float64   `json:"working_hours"      bun:"working_hours"`
	OvertimeHours    *float64   `json:"overtime_hours"     bun:"overtime_hours"`
	Status           *string    `json:"status"             bun:"status"`
}

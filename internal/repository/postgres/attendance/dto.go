package attendance

import (
	"encoding/json"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	Status       *string
	Date         *string
}

type HistoryFilter struct {
	EmployeeID *int
	From       *string
	To         *string
}

type GetListResponse struct {
	ID            int        `json:"id"`
	EmployeeID    *int       `json:"employee_id"`
	FullName      *string    `json:"full_name"`
	DepartmentID  *int       `json:"department_id"`
	Department    *string    `json:"department"`
	Position      *string    `json:"position"`
	WorkDay       *date.Date `json:"work_day"`
	Status        *string    `json:"status"`
	ComeTime      *time.Time `json:"come_time,omitempty"`
	LeaveTime     *time.Time `json:"leave_time,omitempty"`
	LateMinutes   *int       `json:"late_minutes"`
	WorkingHours  *float64   `json:"working_hours"`
	OvertimeHours *float64   `json:"overtime_hours"`
}

func (r *GetListResponse) MarshalJSON() ([]byte, error) {
	type Alias GetListResponse
	aux := &struct {
		ComeTime  string `json:"come_time,omitempty"`
		LeaveTime string `json:"leave_time,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if r.ComeTime != nil {
		aux.ComeTime = r.ComeTime.Format("15:04")
	}

	if r.LeaveTime != nil {
		aux.LeaveTime = r.LeaveTime.Format("15:04")
	}

	return json.Marshal(aux)
}

type GetDetailByIdResponse struct {
	ID            int        `json:"id"`
	EmployeeID    *int       `json:"employee_id"`
	FullName      *string    `json:"full_name"`
	DepartmentID  *int       `json:"department_id"`
	Department    *string    `json:"department"`
	WorkDay       *date.Date `json:"work_day"`
	Status        *string    `json:"status"`
	ComeTime      *time.Time `json:"come_time,omitempty"`
	LeaveTime     *time.Time `json:"leave_time,omitempty"`
	LateMinutes   *int       `json:"late_minutes"`
	WorkingHours  *float64   `json:"working_hours"`
	OvertimeHours *float64   `json:"overtime_hours"`
}

type CheckInResponse struct {
	bun.BaseModel `bun:"table:attendance"`

	ID               int       `json:"id" bun:"id,pk,autoincrement"`
	EmployeeID       int       `json:"employee_id" bun:"employee_id"`
	WorkDay          time.Time `json:"work_day" bun:"work_day"`
	ComeTime         time.Time `json:"come_time" bun:"come_time"`
	StandardComeTime time.Time `json:"standard_come_time" bun:"standard_come_time"`
	LateMinutes      int       `json:"late_minutes" bun:"late_minutes"`
	WorkingHours     float64   `json:"working_hours" bun:"working_hours"`
	OvertimeHours    float64   `json:"overtime_hours" bun:"overtime_hours"`
	Status           string    `json:"status" bun:"status"`
	CreatedAt        time.Time `json:"-" bun:"created_at"`
	CreatedBy        int       `json:"-" bun:"created_by"`
}

type CheckOutResponse struct {
	ID            int       `json:"id"`
	EmployeeID    int       `json:"employee_id"`
	WorkDay       time.Time `json:"work_day"`
	ComeTime      time.Time `json:"come_time"`
	LeaveTime     time.Time `json:"leave_time"`
	WorkingHours  float64   `json:"working_hours"`
	OvertimeHours float64   `json:"overtime_hours"`
}

type UpdateRequest struct {
	ID     int     `json:"id" form:"id"`
	Status *string `json:"status" form:"status"`
}

type GetStatisticsResponse struct {
	TotalEmployee *int `json:"total_employee"`
	OnTime        *int `json:"on_time"`
	Late          *int `json:"late"`
	NotCheckedIn  *int `json:"not_checked_in"`
	CheckedOut    *int `json:"checked_out"`
}

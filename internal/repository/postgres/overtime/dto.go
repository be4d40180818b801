package overtime

import (
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/uptrace/bun"
)

type Filter struct {
	Limit      *int
	Offset     *int
	Page       *int
	EmployeeID *int
	Status     *string
}

type CreateRequest struct {
	WorkDay        *string  `json:"work_day" form:"work_day"`
	RequestedHours *float64 `json:"requested_hours" form:"requested_hours"`
	Reason         *string  `json:"reason" form:"reason"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:overtime_request"`

	ID             int       `json:"id" bun:"id,pk,autoincrement"`
	EmployeeID     int       `json:"employee_id" bun:"employee_id"`
	WorkDay        time.Time `json:"work_day" bun:"work_day"`
	RequestedHours float64   `json:"requested_hours" bun:"requested_hours"`
	Reason         *string   `json:"reason" bun:"reason"`
	Status         string    `json:"status" bun:"status"`
	CreatedAt      time.Time `json:"-" bun:"created_at"`
	CreatedBy      int       `json:"-" bun:"created_by"`
}

type GetListResponse struct {
	ID             int        `json:"id"`
	EmployeeID     *int       `json:"employee_id"`
	FullName       *string    `json:"full_name"`
	Department     *string    `json:"department"`
	WorkDay        *date.Date `json:"work_day"`
	RequestedHours *float64   `json:"requested_hours"`
	Reason         *string    `json:"reason"`
	Status         *string    `json:"status"`
	ApproverID     *int       `json:"approver_id"`
	ApprovedAt     *time.Time `json:"approved_at"`
}

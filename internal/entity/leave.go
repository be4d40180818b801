package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Leave types.
const (
	LeaveAnnual = "ANNUAL"
	LeaveSick   = "SICK"
	LeaveUnpaid = "UNPAID"
	LeaveOther  = "OTHER"
)

type LeaveRequest struct {
	bun.BaseModel `bun:"table:leave_request"`

	BasicEntity
	EmployeeID *int       `json:"employee_id" bun:"employee_id"`
	StartDate  *time.Time `json:"start_date"  bun:"start_date"`
	EndDate    *time.Time `json:"end_date"    bun:"end_date"`
	Type       *string    `json:"type"        bun:"type"`
	Status     *string    `json:"status"      bun:"status"`
	Reason     *string    `json:"reason"      bun:"reason"`
	ApproverID *int       `json:"approver_id" bun:"approver_id"`
}

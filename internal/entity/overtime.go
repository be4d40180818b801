package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Request statuses shared by overtime and leave requests.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

type OvertimeRequest struct {
	bun.BaseModel `bun:"table:overtime_request"`

	BasicEntity
	EmployeeID     *int       `json:"employee_id"     bun:"employee_id"`
	WorkDay        *time.Time `json:"work_day"        bun:"work_day"`
	RequestedHours *float64   `json:"requested_hours" bun:"requested_hours"`
	Reason         *string    `json:"reason"          bun:"reason"`
	Status         *string    `json:"status"          bun:"status"`
	ApproverID     *int       `json:"approver_id"     bun:"approver_id"`
	ApprovedAt     *time.Time `json:"approved_at"     bun:"approved_at"`
}

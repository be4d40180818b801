package leave

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
	Type       *string
}

type CreateRequest struct {
	StartDate *string `json:"start_date" form:"start_date"`
	EndDate   *string `json:"end_date" form:"end_date"`
	Type      *string `json:"type" form:"type"`
	Reason    *string `json:"reason" form:"reason"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:leave_request"`

	ID         int       `json:"id" bun:"id,pk,autoincrement"`
	EmployeeID int       `json:"employee_id" bun:"employee_id"`
	StartDate  time.Time `json:"start_date" bun:"start_date"`
	EndDate    time.Time `json:"end_date" bun:"end_date"`
	Type       string    `json:"type" bun:"type"`
	Status     string    `json:"status" bun:"status"`
	Reason     *string   `json:"reason" bun:"reason"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type GetListResponse struct {
	ID         int        `json:"id"`
	EmployeeID *int       `json:"employee_id"`
	FullName   *string    `json:"full_name"`
	Department *string    `json:"department"`
	StartDate  *date.Date `json:"start_date"`
	EndDate    *date.Date `json:"end_date"`
	Type       *string    `json:"type"`
	Status     *string    `json:"status"`
	Reason     *string    `json:"reason"`
	ApproverID *int       `json:"approver_id"`
}

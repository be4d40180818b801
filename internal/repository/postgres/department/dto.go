package department

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit  *int
	Offset *int
	Page   *int
	Search *string
	Active *bool
}

type GetListResponse struct {
	ID            int     `json:"id"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	ManagerID     *int    `json:"manager_id"`
	Active        *bool   `json:"active"`
	EmployeeCount int     `json:"employee_count"`
}

type GetDetailByIdResponse struct {
	ID            int     `json:"id"`
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	ManagerID     *int    `json:"manager_id"`
	Manager       *string `json:"manager"`
	Active        *bool   `json:"active"`
	EmployeeCount int     `json:"employee_count"`
}

type CreateRequest struct {
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	ManagerID   *int    `json:"manager_id" form:"manager_id"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:department"`

	ID          int       `json:"id" bun:"id,pk,autoincrement"`
	Name        *string   `json:"name" bun:"name"`
	Description *string   `json:"description" bun:"description"`
	ManagerID   *int      `json:"manager_id" bun:"manager_id"`
	Active      bool      `json:"active" bun:"active"`
	CreatedAt   time.Time `json:"-" bun:"created_at"`
	CreatedBy   int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID          int     `json:"id" form:"id"`
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	ManagerID   *int    `json:"manager_id" form:"manager_id"`
	Active      *bool   `json:"active" form:"active"`
}

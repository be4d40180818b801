package entity

import (
	"github.com/uptrace/bun"
)

// User is the account identity paired one-to-one with an employee.
type User struct {
	bun.BaseModel `bun:"table:users"`

	BasicEntity
	EmployeeID *int    `json:"employee_id" bun:"employee_id"`
	Login      *string `json:"login"      bun:"login"`
	Password   *string `json:"password"   bun:"password"`
	Role       *string `json:"role"       bun:"role"`
}

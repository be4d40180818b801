package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type Employee struct {
	bun.BaseModel `bun:"table:employees"`

	BasicEntity
	FullName     *string    `json:"full_name"     bun:"full_name"`
	BirthDate    *time.Time `json:"birth_date"    bun:"birth_date"`
	DepartmentID *int       `json:"department_id" bun:"department_id"`
	Position     *string    `json:"position"      bun:"position"`
	BaseSalary   *float64   `json:"base_salary"   bun:"base_salary"`
	StartDate    *time.Time `json:"start_date"    bun:"start_date"`
	Active       *bool      `json:"active"        bun:"active"`
}

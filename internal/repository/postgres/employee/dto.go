package employee

import (
	"time"

	"github.com/uptrace/bun"
)

type Filter struct {
	Limit        *int
	Offset       *int
	Page         *int
	Search       *string
	DepartmentID *int
	Active       *bool
}

type GetListResponse struct {
	ID           int      `json:"id"`
	FullName     *string  `json:"full_name"`
	DepartmentID *int     `json:"department_id"`
	Department   *string  `json:"department"`
	Position     *string  `json:"position"`
	BaseSalary   *float64 `json:"base_salary"`
	Active       *bool    `json:"active"`
	Login        *string  `json:"login"`
}

type GetDetailByIdResponse struct {
	ID           int        `json:"id"`
	FullName     *string    `json:"full_name"`
	BirthDate    *time.Time `json:"birth_date"`
	DepartmentID *int       `json:"department_id"`
	Department   *string    `json:"department"`
	Position     *string    `json:"position"`
	BaseSalary   *float64   `json:"base_salary"`
	StartDate    *time.Time `json:"start_date"`
	Active       *bool      `json:"active"`
	Login        *string    `json:"login"`
	Role         *string    `json:"role"`
}

type CreateRequest struct {
	FullName     *string  `json:"full_name" form:"full_name"`
	BirthDate    *string  `json:"birth_date" form:"birth_date"`
	DepartmentID *int     `json:"department_id" form:"department_id"`
	Position     *string  `json:"position" form:"position"`
	BaseSalary   *float64 `json:"base_salary" form:"base_salary"`
	StartDate    *string  `json:"start_date" form:"start_date"`
	Login        *string  `json:"login" form:"login"`
	Password     *string  `json:"password" form:"password"`
	Role         *string  `json:"role" form:"role"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:employees"`

	ID           int        `json:"id" bun:"id,pk,autoincrement"`
	FullName     *string    `json:"full_name" bun:"full_name"`
	BirthDate    *time.Time `json:"birth_date" bun:"birth_date"`
	DepartmentID *int       `json:"department_id" bun:"department_id"`
	Position     *string    `json:"position" bun:"position"`
	BaseSalary   *float64   `json:"base_salary" bun:"base_salary"`
	StartDate    *time.Time `json:"start_date" bun:"start_date"`
	Active       bool       `json:"active" bun:"active"`
	CreatedAt    time.Time  `json:"-" bun:"created_at"`
	CreatedBy    int        `json:"-" bun:"created_by"`
}

type accountModel struct {
	bun.BaseModel `bun:"table:users"`

	ID         int       `json:"-" bun:"id,pk,autoincrement"`
	EmployeeID int       `json:"-" bun:"employee_id"`
	Login      string    `json:"-" bun:"login"`
	Password   string    `json:"-" bun:"password"`
	Role       string    `json:"-" bun:"role"`
	CreatedAt  time.Time `json:"-" bun:"created_at"`
	CreatedBy  int       `json:"-" bun:"created_by"`
}

type UpdateRequest struct {
	ID           int      `json:"id" form:"id"`
	FullName     *string  `json:"full_name" form:"full_name"`
	BirthDate    *string  `json:"birth_date" form:"birth_date"`
	DepartmentID *int     `json:"department_id" form:"department_id"`
	Position     *string  `json:"position" form:"position"`
	BaseSalary   *float64 `json:"base_salary" form:"base_salary"`
	Active       *bool    `json:"active" form:"active"`
}

type SignInRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// AuthClaims is what the token generator needs to know about an account.
type AuthClaims struct {
	ID   int
	Role string
}

// Rate is what the payroll aggregator reads from the directory.
type Rate struct {
	EmployeeID   int
	FullName     string
	DepartmentID int
	Department   string
	BaseSalary   float64
}

package employee

import (
	"context"

	"hrms/backend/internal/repository/postgres/employee"
)

type Employee interface {
	GetList(ctx context.Context, filter employee.Filter) ([]employee.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (employee.GetDetailByIdResponse, error)
	Create(ctx context.Context, request employee.CreateRequest) (employee.CreateResponse, error)
	UpdateColumns(ctx context.Context, request employee.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	DepartmentMap(ctx context.Context) (map[string]int, error)
	UsedLogins(ctx context.Context) (map[string]struct{}, error)
}

package overtime

import (
	"context"

	"hrms/backend/internal/repository/postgres/overtime"
)

type Overtime interface {
	Create(ctx context.Context, request overtime.CreateRequest) (overtime.CreateResponse, error)
	Approve(ctx context.Context, id int) error
	Reject(ctx context.Context, id int) error
	GetList(ctx context.Context, filter overtime.Filter) ([]overtime.GetListResponse, int, error)
	Delete(ctx context.Context, id int) error
}

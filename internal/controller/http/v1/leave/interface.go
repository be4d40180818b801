package leave

import (
	"context"

	"hrms/backend/internal/repository/postgres/leave"
)

type Leave interface {
	Create(ctx context.Context, request leave.CreateRequest) (leave.CreateResponse, error)
	Approve(ctx context.Context, id int) error
	Reject(ctx context.Context, id int) error
	GetList(ctx context.Context, filter leave.Filter) ([]leave.GetListResponse, int, error)
	Delete(ctx context.Context, id int) error
}

package attendance

import (
	"context"

	"hrms/backend/internal/entity"
	"hrms/backend/internal/repository/postgres/attendance"
)

type Attendance interface {
	CheckIn(ctx context.Context) (attendance.CheckInResponse, error)
	CheckOut(ctx context.Context) (attendance.CheckOutResponse, error)
	GetHistory(ctx context.Context, filter attendance.HistoryFilter) ([]entity.Attendance, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (attendance.GetDetailByIdResponse, error)
	UpdateColumns(ctx context.Context, request attendance.UpdateRequest) error
	Delete(ctx context.Context, id int) error
	GetStatistics(ctx context.Context) (attendance.GetStatisticsResponse, error)
}

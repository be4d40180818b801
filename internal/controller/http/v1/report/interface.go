package report

import (
	"context"

	"hrms/backend/internal/payroll"
	"hrms/backend/internal/repository/postgres/report"
)

type Report interface {
	ComputePeriod(ctx context.Context, filter report.Filter) (payroll.Report, error)
}

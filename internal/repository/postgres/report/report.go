package report

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/payroll"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/repository/postgres/employee"
)

// RateSource supplies the employee directory view the aggregation joins
// against.
type RateSource interface {
	Rates(ctx context.Context, employeeIDs []int) ([]employee.Rate, error)
}

// Repository reads the attendance ledger and the employee directory and runs
// the payroll aggregation over them. It never writes.
type Repository struct {
	*postgresql.Database
	policy payroll.Policy
	rates  RateSource
}

func NewRepository(database *postgresql.Database, policy payroll.Policy, rates RateSource) *Repository {
	return &Repository{Database: database, policy: policy, rates: rates}
}

// ComputePeriod builds the payroll report for the inclusive [from, to] day
// range, optionally narrowed to a single department.
func (r Repository) ComputePeriod(ctx context.Context, filter Filter) (payroll.Report, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return payroll.Report{}, err
	}

	if filter.From == nil || filter.To == nil {
		return payroll.Report{}, web.NewRequestError(payroll.ErrInvalidPeriod, http.StatusBadRequest)
	}

	from, err := time.Parse("2006-01-02", *filter.From)
	if err != nil {
		return payroll.Report{}, web.NewRequestError(payroll.ErrInvalidPeriod, http.StatusBadRequest)
	}
	to, err := time.Parse("2006-01-02", *filter.To)
	if err != nil {
		return payroll.Report{}, web.NewRequestError(payroll.ErrInvalidPeriod, http.StatusBadRequest)
	}
	if to.Before(from) {
		return payroll.Report{}, web.NewRequestError(payroll.ErrInvalidPeriod, http.StatusBadRequest)
	}

	records, err := r.dayRecords(ctx, from, to, filter.DepartmentID)
	if err != nil {
		return payroll.Report{}, err
	}

	rates, err := r.rateList(ctx, filter.DepartmentID)
	if err != nil {
		return payroll.Report{}, err
	}

	report, err := payroll.ComputeForPeriod(records, rates, from, to, r.policy)
	if err != nil {
		return payroll.Report{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	return report, nil
}

func (r Repository) dayRecords(ctx context.Context, from, to time.Time, departmentID *int) ([]payroll.DayRecord, error) {
	whereQuery := fmt.Sprintf(`
		WHERE
			a.deleted_at IS NULL
			AND a.work_day BETWEEN '%s' AND '%s'
		`, from.Format("2006-01-02"), to.Format("2006-01-02"))

	if departmentID != nil {
		whereQuery += fmt.Sprintf(` AND e.department_id = %d`, *departmentID)
	}

	query := fmt.Sprintf(`
		SELECT
			a.employee_id,
			a.work_day,
			a.status,
			COALESCE(a.working_hours, 0),
			COALESCE(a.overtime_hours, 0)
		FROM attendance a
		LEFT JOIN employees e ON e.id = a.employee_id
		%s
		ORDER BY a.work_day, a.employee_id
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance for report"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var records []payroll.DayRecord

	for rows.Next() {
		var record payroll.DayRecord
		var workDayString string

		if err = rows.Scan(
			&record.EmployeeID,
			&workDayString,
			&record.Status,
			&record.WorkingHours,
			&record.OvertimeHours); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning attendance for report"), http.StatusBadRequest)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusBadRequest)
		}
		record.WorkDay = workDay.Time

		records = append(records, record)
	}

	return records, nil
}

func (r Repository) rateList(ctx context.Context, departmentID *int) ([]payroll.Rate, error) {
	directory, err := r.rates.Rates(ctx, nil)
	if err != nil {
		return nil, err
	}

	rates := make([]payroll.Rate, 0, len(directory))
	for _, d := range directory {
		if departmentID != nil && d.DepartmentID != *departmentID {
			continue
		}
		rates = append(rates, payroll.Rate{
			EmployeeID:   d.EmployeeID,
			FullName:     d.FullName,
			DepartmentID: d.DepartmentID,
			Department:   d.Department,
			BaseSalary:   d.BaseSalary,
		})
	}

	return rates, nil
}

package overtime

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/payroll"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/repository/postgres"
)

// Repository is the overtime approval gate: it tracks requests and their
// approval state and supplies the ledger with the payable cap per day.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create files an overtime request for the calling employee. The work date
// must not already be in the past and the hours must be positive.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "WorkDay", "RequestedHours"); err != nil {
		return CreateResponse{}, err
	}

	workDay, err := time.Parse("2006-01-02", *request.WorkDay)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "work_day parse"), http.StatusBadRequest)
	}

	if workDay.Before(payroll.DayOf(time.Now())) {
		return CreateResponse{}, web.NewRequestError(postgres.ErrPastDateNotAllowed, http.StatusBadRequest)
	}
	if *request.RequestedHours <= 0 {
		return CreateResponse{}, web.NewRequestError(postgres.ErrInvalidHours, http.StatusBadRequest)
	}

	var employeeID int
	err = r.QueryRowContext(ctx,
		"SELECT employee_id FROM users WHERE id = $1 AND deleted_at IS NULL", claims.UserId,
	).Scan(&employeeID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee for account"), http.StatusBadRequest)
	}

	response := CreateResponse{
		EmployeeID:     employeeID,
		WorkDay:        workDay,
		RequestedHours: *request.RequestedHours,
		Reason:         request.Reason,
		Status:         entity.RequestPending,
		CreatedAt:      time.Now(),
		CreatedBy:      claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating overtime request"), http.StatusBadRequest)
	}

	return response, nil
}

// Approve resolves a pending request. Approval is terminal: re-approving an
// already resolved request fails instead of silently re-stamping it.
func (r Repository) Approve(ctx context.Context, id int) error {
	return r.resolve(ctx, id, entity.RequestApproved)
}

// Reject resolves a pending request negatively. Terminal like Approve.
func (r Repository) Reject(ctx context.Context, id int) error {
	return r.resolve(ctx, id, entity.RequestRejected)
}

func (r Repository) resolve(ctx context.Context, id int, status string) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	var current string
	err = r.QueryRowContext(ctx,
		"SELECT status FROM overtime_request WHERE id = $1 AND deleted_at IS NULL", id,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrRequestNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting overtime request"), http.StatusInternalServerError)
	}

	if current != entity.RequestPending {
		return web.NewRequestError(postgres.ErrAlreadyApproved, http.StatusBadRequest)
	}

	now := time.Now()

	q := r.NewUpdate().Table("overtime_request").Where("deleted_at IS NULL AND id = ? AND status = ?", id, entity.RequestPending)
	q.Set("status = ?", status)
	q.Set("approver_id = ?", claims.UserId)
	q.Set("approved_at = ?", now)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating overtime request"), http.StatusBadRequest)
	}

	// A concurrent resolution between the read and the update loses here.
	rows, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking updated rows"), http.StatusInternalServerError)
	}
	if rows == 0 {
		return web.NewRequestError(postgres.ErrAlreadyApproved, http.StatusBadRequest)
	}

	return nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			o.deleted_at IS NULL
		`

	if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND o.employee_id = %d`, *filter.EmployeeID)
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND o.status = '%s'`, strings.ToUpper(status))
	}

	orderQuery := "ORDER BY o.created_at desc"

	var limitQuery, offsetQuery string

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}

	if filter.Limit != nil {
		limitQuery += fmt.Sprintf(" LIMIT %d", *filter.Limit)
	}

	if filter.Offset != nil {
		offsetQuery += fmt.Sprintf(" OFFSET %d", *filter.Offset)
	}

	query := fmt.Sprintf(`
		SELECT
			o.id,
			o.employee_id,
			e.full_name,
			d.name,
			o.work_day,
			o.requested_hours,
			o.reason,
			o.status,
			o.approver_id,
			o.approved_at
		FROM overtime_request o
		LEFT JOIN employees e ON o.employee_id = e.id
		LEFT JOIN department d ON e.department_id = d.id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting overtime requests"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var workDayString string

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.Department,
			&workDayString,
			&detail.RequestedHours,
			&detail.Reason,
			&detail.Status,
			&detail.ApproverID,
			&detail.ApprovedAt); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning overtime list"), http.StatusBadRequest)
		}

		workDay, err := date.ParseDate(workDayString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusBadRequest)
		}
		detail.WorkDay = &workDay

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(o.id)
		FROM overtime_request o
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning overtime count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "overtime_request", id)
}

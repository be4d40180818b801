package leave

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
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/repository/postgres"
)

// Repository is the leave register. Leave requests live independently of the
// attendance ledger: approving one does not rewrite attendance rows, status
// reclassification stays an explicit admin action on the ledger.
type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "StartDate", "EndDate", "Type"); err != nil {
		return CreateResponse{}, err
	}

	startDate, err := time.Parse("2006-01-02", *request.StartDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "start_date parse"), http.StatusBadRequest)
	}
	endDate, err := time.Parse("2006-01-02", *request.EndDate)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "end_date parse"), http.StatusBadRequest)
	}

	if endDate.Before(startDate) {
		return CreateResponse{}, web.NewRequestError(errors.New("end_date is before start_date"), http.StatusBadRequest)
	}

	leaveType := strings.ToUpper(*request.Type)
	switch leaveType {
	case entity.LeaveAnnual, entity.LeaveSick, entity.LeaveUnpaid, entity.LeaveOther:
	default:
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect type. type should be ANNUAL, SICK, UNPAID or OTHER"), http.StatusBadRequest)
	}

	var employeeID int
	err = r.QueryRowContext(ctx,
		"SELECT employee_id FROM users WHERE id = $1 AND deleted_at IS NULL", claims.UserId,
	).Scan(&employeeID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee for account"), http.StatusBadRequest)
	}

	response := CreateResponse{
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Type:       leaveType,
		Status:     entity.RequestPending,
		Reason:     request.Reason,
		CreatedAt:  time.Now(),
		CreatedBy:  claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating leave request"), http.StatusBadRequest)
	}

	return response, nil
}

// Approve resolves a pending leave request. Terminal, same rule as the
// overtime gate.
func (r Repository) Approve(ctx context.Context, id int) error {
	return r.resolve(ctx, id, entity.RequestApproved)
}

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
		"SELECT status FROM leave_request WHERE id = $1 AND deleted_at IS NULL", id,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(postgres.ErrRequestNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "selecting leave request"), http.StatusInternalServerError)
	}

	if current != entity.RequestPending {
		return web.NewRequestError(postgres.ErrAlreadyApproved, http.StatusBadRequest)
	}

	q := r.NewUpdate().Table("leave_request").Where("deleted_at IS NULL AND id = ? AND status = ?", id, entity.RequestPending)
	q.Set("status = ?", status)
	q.Set("approver_id = ?", claims.UserId)
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating leave request"), http.StatusBadRequest)
	}

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
			l.deleted_at IS NULL
		`

	if filter.EmployeeID != nil {
		whereQuery += fmt.Sprintf(` AND l.employee_id = %d`, *filter.EmployeeID)
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND l.status = '%s'`, strings.ToUpper(status))
	}
	if filter.Type != nil {
		leaveType := strings.Replace(*filter.Type, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND l.type = '%s'`, strings.ToUpper(leaveType))
	}

	orderQuery := "ORDER BY l.created_at desc"

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
			l.id,
			l.employee_id,
			e.full_name,
			d.name,
			l.start_date,
			l.end_date,
			l.type,
			l.status,
			l.reason,
			l.approver_id
		FROM leave_request l
		LEFT JOIN employees e ON l.employee_id = e.id
		LEFT JOIN department d ON e.department_id = d.id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting leave requests"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		var startDateString, endDateString string

		if err = rows.Scan(
			&detail.ID,
			&detail.EmployeeID,
			&detail.FullName,
			&detail.Department,
			&startDateString,
			&endDateString,
			&detail.Type,
			&detail.Status,
			&detail.Reason,
			&detail.ApproverID); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave list"), http.StatusBadRequest)
		}

		startDate, err := date.ParseDate(startDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting start_date to date.Date"), http.StatusBadRequest)
		}
		detail.StartDate = &startDate

		endDate, err := date.ParseDate(endDateString)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "converting end_date to date.Date"), http.StatusBadRequest)
		}
		detail.EndDate = &endDate

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(l.id)
		FROM leave_request l
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning leave count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "leave_request", id)
}

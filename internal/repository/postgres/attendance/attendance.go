package attendance

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

// Repository is the attendance ledger. It owns the one-record-per-day
// invariant and the derivations done at check-in and check-out time.
type Repository struct {
	*postgresql.Database
	policy payroll.Policy
}

func NewRepository(database *postgresql.Database, policy payroll.Policy) *Repository {
	return &Repository{Database: database, policy: policy}
}

// employeeIDByClaims resolves the authenticated account to its employee.
func (r Repository) employeeIDByClaims(ctx context.Context, claims auth.Claims) (int, error) {
	var employeeID int

	err := r.QueryRowContext(ctx,
		"SELECT employee_id FROM users WHERE id = $1 AND deleted_at IS NULL", claims.UserId,
	).Scan(&employeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, web.NewRequestError(errors.New("no employee linked to this account"), http.StatusBadRequest)
	}
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "selecting employee for account"), http.StatusInternalServerError)
	}

	return employeeID, nil
}

// CheckIn opens today's attendance record for the calling employee. The
// partial unique index on (employee_id, work_day) makes the "one record per
// day" rule hold even when two check-in attempts race: the second insert
// fails with a unique violation, never with a duplicated row.
func (r Repository) CheckIn(ctx context.Context) (CheckInResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleAdmin)
	if err != nil {
		return CheckInResponse{}, err
	}

	employeeID, err := r.employeeIDByClaims(ctx, claims)
	if err != nil {
		return CheckInResponse{}, err
	}

	now := time.Now()
	workDay := payroll.DayOf(now)
	standard := r.policy.StandardComeTime(workDay)

	response := CheckInResponse{
		EmployeeID:       employeeID,
		WorkDay:          workDay,
		ComeTime:         now,
		StandardComeTime: standard,
		LateMinutes:      payroll.LateMinutes(now, standard),
		Status:           entity.AttendancePresent,
		CreatedAt:        now,
		CreatedBy:        claims.UserId,
	}

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if postgresql.IsUniqueViolation(err) {
		return CheckInResponse{}, web.NewRequestError(postgres.ErrAlreadyCheckedIn, http.StatusBadRequest)
	}
	if err != nil {
		return CheckInResponse{}, web.NewRequestError(errors.Wrap(err, "creating attendance"), http.StatusBadRequest)
	}

	return response, nil
}

// CheckOut closes today's record: stamps leave time, derives working hours
// and clamps overtime by the approved cap for this employee and day. A day
// with no approved overtime request keeps overtime at zero no matter how
// long the employee actually stayed.
func (r Repository) CheckOut(ctx context.Context) (CheckOutResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleAdmin)
	if err != nil {
		return CheckOutResponse{}, err
	}

	employeeID, err := r.employeeIDByClaims(ctx, claims)
	if err != nil {
		return CheckOutResponse{}, err
	}

	now := time.Now()
	workDay := payroll.DayOf(now)

	var (
		id        int
		comeTime  time.Time
		leaveTime *time.Time
	)
	err = r.QueryRowContext(ctx, `
		SELECT id, come_time, leave_time
		FROM attendance
		WHERE deleted_at IS NULL AND employee_id = $1 AND work_day = $2
	`, employeeID, workDay).Scan(&id, &comeTime, &leaveTime)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckOutResponse{}, web.NewRequestError(postgres.ErrNoCheckInFound, http.StatusBadRequest)
	}
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
	}

	if leaveTime != nil {
		return CheckOutResponse{}, web.NewRequestError(postgres.ErrAlreadyCheckedOut, http.StatusBadRequest)
	}

	elapsed, err := payroll.ElapsedHours(comeTime, now)
	if err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "computing working hours"), http.StatusBadRequest)
	}
	workingHours := payroll.Round2(elapsed)

	cap, err := r.approvedOvertimeCap(ctx, employeeID, workDay)
	if err != nil {
		return CheckOutResponse{}, err
	}
	overtimeHours := r.policy.OvertimeHours(workingHours, cap)

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", id)
	q.Set("leave_time = ?", now)
	q.Set("working_hours = ?", workingHours)
	q.Set("overtime_hours = ?", overtimeHours)
	q.Set("updated_at = ?", now)
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return CheckOutResponse{}, web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}

	return CheckOutResponse{
		ID:            id,
		EmployeeID:    employeeID,
		WorkDay:       workDay,
		ComeTime:      comeTime,
		LeaveTime:     now,
		WorkingHours:  workingHours,
		OvertimeHours: overtimeHours,
	}, nil
}

// Nothing stops an employee from holding several approved requests for one
// day, so the cap is the largest approved grant, not an arbitrary row.
const approvedCapQuery = `
	SELECT COALESCE(MAX(requested_hours), 0)
	FROM overtime_request
	WHERE deleted_at IS NULL AND employee_id = $1 AND work_day = $2 AND status = $3
`

// approvedOvertimeCap is the check-out read into the overtime approval gate:
// the hours an administrator pre-approved for this employee and day, zero
// when nothing was approved.
func (r Repository) approvedOvertimeCap(ctx context.Context, employeeID int, workDay time.Time) (float64, error) {
	var cap float64

	err := r.QueryRowContext(ctx, approvedCapQuery, employeeID, workDay, entity.RequestApproved).Scan(&cap)
	if err != nil {
		return 0, web.NewRequestError(errors.Wrap(err, "selecting approved overtime"), http.StatusInternalServerError)
	}

	return cap, nil
}

// FindInRange is the query-only read path used by the payroll aggregator and
// the employee history view: both bounds inclusive, ascending by day.
func (r Repository) FindInRange(ctx context.Context, employeeID int, from, to time.Time) ([]entity.Attendance, error) {
	var list []entity.Attendance

	err := r.NewSelect().
		Model(&list).
		Where("deleted_at IS NULL AND employee_id = ? AND work_day BETWEEN ? AND ?",
			employeeID, payroll.DayOf(from), payroll.DayOf(to)).
		Order("work_day ASC").
		Scan(ctx)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance range"), http.StatusInternalServerError)
	}

	return list, nil
}

// GetHistory is the per-employee range view. Employees only see their own
// rows; admins may name any employee.
func (r Repository) GetHistory(ctx context.Context, filter HistoryFilter) ([]entity.Attendance, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleEmployee, auth.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if filter.From == nil || filter.To == nil {
		return nil, web.NewRequestError(errors.New("from and to are required"), http.StatusBadRequest)
	}

	from, err := time.Parse("2006-01-02", *filter.From)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "from parse"), http.StatusBadRequest)
	}
	to, err := time.Parse("2006-01-02", *filter.To)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "to parse"), http.StatusBadRequest)
	}

	employeeID, err := r.employeeIDByClaims(ctx, claims)
	if claims.Role == auth.RoleAdmin && filter.EmployeeID != nil {
		employeeID = *filter.EmployeeID
		err = nil
	}
	if err != nil {
		return nil, err
	}

	return r.FindInRange(ctx, employeeID, from, to)
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			a.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND e.full_name ilike '%s'`, "%"+search+"%")
	}
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(` AND e.department_id = %d`, *filter.DepartmentID)
	}
	if filter.Status != nil {
		status := strings.Replace(*filter.Status, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND a.status = '%s'`, strings.ToUpper(status))
	}

	if filter.Date != nil {
		parsed, err := time.Parse("2006-01-02", *filter.Date)
		if err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "date parse"), http.StatusBadRequest)
		}
		whereQuery += fmt.Sprintf(" AND a.work_day = '%s'", parsed.Format("2006-01-02"))
	} else {
		whereQuery += fmt.Sprintf(" AND a.work_day = '%s'", time.Now().Format("2006-01-02"))
	}

	orderQuery := "ORDER BY a.work_day desc, a.come_time desc"

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
			a.id,
			a.employee_id,
			e.full_name,
			e.department_id,
			d.name,
			e.position,
			a.work_day,
			a.status,
			a.come_time,
			a.leave_time,
			a.late_minutes,
			a.working_hours,
			a.overtime_hours
		FROM attendance as a
		LEFT JOIN employees e ON a.employee_id = e.id
		LEFT JOIN department d ON e.department_id = d.id

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting attendance"), http.StatusInternalServerError)
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
			&detail.DepartmentID,
			&detail.Department,
			&detail.Position,
			&workDayString,
			&detail.Status,
			&detail.ComeTime,
			&detail.LeaveTime,
			&detail.LateMinutes,
			&detail.WorkingHours,
			&detail.OvertimeHours); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance list"), http.StatusBadRequest)
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
			count(a.id)
		FROM attendance as a
		LEFT JOIN employees e ON a.employee_id = e.id
		LEFT JOIN department d ON e.department_id = d.id
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning attendance count"), http.StatusInternalServerError)
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GetDetailByIdResponse{}, err
	}

	query := fmt.Sprintf(`
		SELECT
			a.id,
			a.employee_id,
			e.full_name,
			e.department_id,
			d.name,
			a.work_day,
			a.status,
			a.come_time,
			a.leave_time,
			a.late_minutes,
			a.working_hours,
			a.overtime_hours
		FROM attendance as a
		LEFT JOIN employees e ON a.employee_id = e.id
		LEFT JOIN department d ON e.department_id = d.id
		WHERE a.deleted_at IS NULL AND a.id = %d
	`, id)

	var detail GetDetailByIdResponse
	var workDayString string

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.EmployeeID,
		&detail.FullName,
		&detail.DepartmentID,
		&detail.Department,
		&workDayString,
		&detail.Status,
		&detail.ComeTime,
		&detail.LeaveTime,
		&detail.LateMinutes,
		&detail.WorkingHours,
		&detail.OvertimeHours,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting attendance detail"), http.StatusBadRequest)
	}

	workDay, err := date.ParseDate(workDayString)
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "converting work_day to date.Date"), http.StatusBadRequest)
	}
	detail.WorkDay = &workDay

	return detail, nil
}

// UpdateColumns lets an administrator reclassify a day (for example marking
// a missed day as LEAVE or HOLIDAY). Times and derived hours are never
// rewritten through this path.
func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("attendance").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Status != nil {
		status := strings.ToUpper(*request.Status)
		switch status {
		case entity.AttendancePresent, entity.AttendanceAbsent, entity.AttendanceLeave, entity.AttendanceHoliday:
		default:
			return web.NewRequestError(errors.New("incorrect status. status should be PRESENT, ABSENT, LEAVE or HOLIDAY"), http.StatusBadRequest)
		}
		q.Set("status = ?", status)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance"), http.StatusBadRequest)
	}

	return nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "attendance", id)
}

// GetStatistics summarizes today's ledger for the admin dashboard.
func (r Repository) GetStatistics(ctx context.Context) (GetStatisticsResponse, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GetStatisticsResponse{}, err
	}

	query := `
	SELECT
		(SELECT COUNT(id) FROM employees WHERE deleted_at IS NULL) AS total_employee,
		(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = CURRENT_DATE AND late_minutes = 0) AS on_time,
		(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = CURRENT_DATE AND late_minutes > 0) AS late,
		(SELECT COUNT(e.id) FROM employees e
			WHERE e.deleted_at IS NULL AND NOT EXISTS (
				SELECT 1 FROM attendance a
				WHERE a.deleted_at IS NULL AND a.employee_id = e.id AND a.work_day = CURRENT_DATE
			)) AS not_checked_in,
		(SELECT COUNT(id) FROM attendance WHERE deleted_at IS NULL AND work_day = CURRENT_DATE AND leave_time IS NOT NULL) AS checked_out
	`

	var response GetStatisticsResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&response.TotalEmployee,
		&response.OnTime,
		&response.Late,
		&response.NotCheckedIn,
		&response.CheckedOut,
	)
	if err != nil {
		return GetStatisticsResponse{}, web.NewRequestError(errors.Wrap(err, "fetching statistics"), http.StatusBadRequest)
	}

	return response, nil
}

package employee

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/auth"
	"hrms/backend/internal/entity"
	"hrms/backend/internal/pkg/repository/postgresql"
	"hrms/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// GetAccountByLogin is the sign-in lookup.
func (r Repository) GetAccountByLogin(ctx context.Context, login string) (entity.User, error) {
	var detail entity.User

	err := r.NewSelect().Model(&detail).Where("login = ? AND deleted_at IS NULL", login).Scan(ctx)
	if err != nil {
		return entity.User{}, &web.Error{
			Err:    errors.New("employee not found!"),
			Status: http.StatusUnauthorized,
		}
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Employee, error) {
	var detail entity.Employee

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)

	return detail, err
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			e.deleted_at IS NULL
		`

	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND e.full_name ilike '%s'`, "%"+search+"%")
	}
	if filter.DepartmentID != nil {
		whereQuery += fmt.Sprintf(` AND e.department_id = %d`, *filter.DepartmentID)
	}
	if filter.Active != nil {
		whereQuery += fmt.Sprintf(` AND e.active = %t`, *filter.Active)
	}

	orderQuery := "ORDER BY e.created_at desc"

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
			e.id,
			e.full_name,
			e.department_id,
			d.name,
			e.position,
			e.base_salary,
			e.active,
			u.login
		FROM employees e
		LEFT JOIN department d ON d.id = e.department_id
		LEFT JOIN users u ON u.employee_id = e.id AND u.deleted_at IS NULL

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting employees"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.FullName,
			&detail.DepartmentID,
			&detail.Department,
			&detail.Position,
			&detail.BaseSalary,
			&detail.Active,
			&detail.Login); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(e.id)
		FROM employees e
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning employee count"), http.StatusBadRequest)
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
			e.id,
			e.full_name,
			e.birth_date,
			e.department_id,
			d.name,
			e.position,
			e.base_salary,
			e.start_date,
			e.active,
			u.login,
			u.role
		FROM employees e
		LEFT JOIN department d ON e.department_id = d.id
		LEFT JOIN users u ON u.employee_id = e.id AND u.deleted_at IS NULL
		WHERE e.deleted_at IS NULL AND e.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.FullName,
		&detail.BirthDate,
		&detail.DepartmentID,
		&detail.Department,
		&detail.Position,
		&detail.BaseSalary,
		&detail.StartDate,
		&detail.Active,
		&detail.Login,
		&detail.Role,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting employee detail"), http.StatusBadRequest)
	}

	return detail, nil
}

// Create makes the employee record and its paired account identity in one
// transaction. A failure on either insert rolls both back.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "FullName", "BaseSalary", "Login", "Password", "Role"); err != nil {
		return CreateResponse{}, err
	}

	if *request.BaseSalary < 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("base_salary must not be negative"), http.StatusBadRequest)
	}

	role := strings.ToUpper(*request.Role)
	if (role != auth.RoleEmployee) && (role != auth.RoleAdmin) {
		return CreateResponse{}, web.NewRequestError(errors.New("incorrect role. role should be EMPLOYEE or ADMIN"), http.StatusBadRequest)
	}

	if request.DepartmentID != nil {
		departmentExists := false
		if err := r.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT EXISTS (SELECT id FROM department WHERE id = %d AND deleted_at IS NULL)`, *request.DepartmentID)).Scan(&departmentExists); err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "department check"), http.StatusInternalServerError)
		}
		if !departmentExists {
			return CreateResponse{}, web.NewRequestError(postgres.ErrReferentialIntegrity, http.StatusBadRequest)
		}
	}

	loginUsed := true
	if err := r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT
						CASE WHEN
						(SELECT id FROM users WHERE login = '%s' AND deleted_at IS NULL) IS NOT NULL
						THEN true ELSE false END`, strings.Replace(*request.Login, "'", "''", -1))).Scan(&loginUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "login check"), http.StatusInternalServerError)
	}
	if loginUsed {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(errors.New(""), "login is used"), http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	var response CreateResponse

	response.FullName = request.FullName
	response.DepartmentID = request.DepartmentID
	response.Position = request.Position
	response.BaseSalary = request.BaseSalary
	response.Active = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	if request.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *request.BirthDate)
		if err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "birth_date parse"), http.StatusBadRequest)
		}
		response.BirthDate = &birthDate
	}
	if request.StartDate != nil {
		startDate, err := time.Parse("2006-01-02", *request.StartDate)
		if err != nil {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "start_date parse"), http.StatusBadRequest)
		}
		response.StartDate = &startDate
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID); err != nil {
			return errors.Wrap(err, "creating employee")
		}

		account := accountModel{
			EmployeeID: response.ID,
			Login:      *request.Login,
			Password:   string(hash),
			Role:       role,
			CreatedAt:  time.Now(),
			CreatedBy:  claims.UserId,
		}
		if _, err := tx.NewInsert().Model(&account).Exec(ctx); err != nil {
			return errors.Wrap(err, "creating account")
		}

		return nil
	})
	if postgresql.IsUniqueViolation(err) {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "login is used"), http.StatusBadRequest)
	}
	if err != nil {
		return CreateResponse{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	return response, nil
}

func (r Repository) UpdateColumns(ctx context.Context, request UpdateRequest) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	if err := r.ValidateStruct(&request, "ID"); err != nil {
		return err
	}

	q := r.NewUpdate().Table("employees").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.FullName != nil {
		q.Set("full_name = ?", request.FullName)
	}
	if request.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *request.BirthDate)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "birth_date parse"), http.StatusBadRequest)
		}
		q.Set("birth_date = ?", birthDate)
	}
	if request.DepartmentID != nil {
		departmentExists := false
		if err := r.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT EXISTS (SELECT id FROM department WHERE id = %d AND deleted_at IS NULL)`, *request.DepartmentID)).Scan(&departmentExists); err != nil {
			return web.NewRequestError(errors.Wrap(err, "department check"), http.StatusInternalServerError)
		}
		if !departmentExists {
			return web.NewRequestError(postgres.ErrReferentialIntegrity, http.StatusBadRequest)
		}
		q.Set("department_id = ?", request.DepartmentID)
	}
	if request.Position != nil {
		q.Set("position = ?", request.Position)
	}
	if request.BaseSalary != nil {
		if *request.BaseSalary < 0 {
			return web.NewRequestError(errors.New("base_salary must not be negative"), http.StatusBadRequest)
		}
		q.Set("base_salary = ?", request.BaseSalary)
	}
	if request.Active != nil {
		q.Set("active = ?", request.Active)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating employee"), http.StatusBadRequest)
	}

	return nil
}

// Delete soft deletes the employee together with its paired account, as one
// transaction. If either step fails everything is rolled back; a half
// deleted pair never survives. Attendance and request rows are left in
// place, the employee is only soft-referenced by them.
func (r Repository) Delete(ctx context.Context, id int) error {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return err
	}

	now := time.Now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewUpdate().
			Table("employees").
			Where("deleted_at IS NULL AND id = ?", id).
			Set("deleted_at = ?", now).
			Set("deleted_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "deleting employee")
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "checking deleted rows")
		}
		if rows == 0 {
			return postgres.ErrNotFound
		}

		if _, err = tx.NewUpdate().
			Table("users").
			Where("deleted_at IS NULL AND employee_id = ?", id).
			Set("deleted_at = ?", now).
			Set("deleted_by = ?", claims.UserId).
			Exec(ctx); err != nil {
			return errors.Wrap(err, "deleting account")
		}

		return nil
	})
	if errors.Is(err, postgres.ErrNotFound) {
		return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	return nil
}

// Rates is the directory read used by the payroll aggregator: identity,
// department and base salary for the whole active population, or for the
// given employees only.
func (r Repository) Rates(ctx context.Context, employeeIDs []int) ([]Rate, error) {
	whereQuery := `
		WHERE
			e.deleted_at IS NULL
		`

	if len(employeeIDs) > 0 {
		ids := make([]string, 0, len(employeeIDs))
		for _, id := range employeeIDs {
			ids = append(ids, fmt.Sprintf("%d", id))
		}
		whereQuery += fmt.Sprintf(` AND e.id IN (%s)`, strings.Join(ids, ","))
	}

	query := fmt.Sprintf(`
		SELECT
			e.id,
			e.full_name,
			COALESCE(e.department_id, 0),
			COALESCE(d.name, ''),
			COALESCE(e.base_salary, 0)
		FROM employees e
		LEFT JOIN department d ON d.id = e.department_id
		%s
		ORDER BY e.id
	`, whereQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting employee rates"), http.StatusInternalServerError)
	}
	defer rows.Close()

	var list []Rate

	for rows.Next() {
		var rate Rate
		if err = rows.Scan(
			&rate.EmployeeID,
			&rate.FullName,
			&rate.DepartmentID,
			&rate.Department,
			&rate.BaseSalary); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning employee rates"), http.StatusBadRequest)
		}
		list = append(list, rate)
	}

	return list, nil
}

// DepartmentMap resolves live department names to ids for the workbook
// import, where rows carry names instead of ids.
func (r Repository) DepartmentMap(ctx context.Context) (map[string]int, error) {
	rows, err := r.QueryContext(ctx, `SELECT id, name FROM department WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting departments"), http.StatusInternalServerError)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err = rows.Scan(&id, &name); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning departments"), http.StatusBadRequest)
		}
		out[name] = id
	}

	return out, nil
}

// UsedLogins lists the logins already taken by live accounts.
func (r Repository) UsedLogins(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.QueryContext(ctx, `SELECT login FROM users WHERE deleted_at IS NULL`)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting logins"), http.StatusInternalServerError)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var login string
		if err = rows.Scan(&login); err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "scanning logins"), http.StatusBadRequest)
		}
		out[login] = struct{}{}
	}

	return out, nil
}

package department

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

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

func (r Repository) GetById(ctx context.Context, id int) (entity.Department, error) {
	var detail entity.Department

	err := r.NewSelect().Model(&detail).Where("id = ? AND deleted_at IS NULL", id).Scan(ctx)

	return detail, err
}

// GetList returns departments with their live employee counts. The count is
// always a COUNT over referencing employees, never a stored counter that
// could drift.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	_, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return nil, 0, err
	}

	whereQuery := `
		WHERE
			d.deleted_at IS NULL
		`
	if filter.Search != nil {
		search := strings.Replace(*filter.Search, "'", "''", -1)
		whereQuery += fmt.Sprintf(` AND d.name ILIKE '%s'`, "%"+search+"%")
	}
	if filter.Active != nil {
		whereQuery += fmt.Sprintf(` AND d.active = %t`, *filter.Active)
	}

	orderQuery := "ORDER BY d.created_at desc"

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
			d.id,
			d.name,
			d.description,
			d.manager_id,
			d.active,
			(SELECT COUNT(e.id) FROM employees e WHERE e.department_id = d.id AND e.deleted_at IS NULL) AS employee_count
		FROM department d

		%s %s %s %s
	`, whereQuery, orderQuery, limitQuery, offsetQuery)

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "selecting department"), http.StatusBadRequest)
	}
	defer rows.Close()

	var list []GetListResponse

	for rows.Next() {
		var detail GetListResponse
		if err = rows.Scan(
			&detail.ID,
			&detail.Name,
			&detail.Description,
			&detail.ManagerID,
			&detail.Active,
			&detail.EmployeeCount); err != nil {
			return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning department list"), http.StatusBadRequest)
		}

		list = append(list, detail)
	}

	countQuery := fmt.Sprintf(`
		SELECT
			count(d.id)
		FROM department d
		%s
	`, whereQuery)

	count := 0
	if err = r.QueryRowContext(ctx, countQuery).Scan(&count); err != nil {
		return nil, 0, web.NewRequestError(errors.Wrap(err, "scanning department count"), http.StatusBadRequest)
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
			d.id,
			d.name,
			d.description,
			d.manager_id,
			m.full_name,
			d.active,
			(SELECT COUNT(e.id) FROM employees e WHERE e.department_id = d.id AND e.deleted_at IS NULL) AS employee_count
		FROM department d
		LEFT JOIN employees m ON m.id = d.manager_id
		WHERE d.deleted_at IS NULL AND d.id = %d
	`, id)

	var detail GetDetailByIdResponse

	err = r.QueryRowContext(ctx, query).Scan(
		&detail.ID,
		&detail.Name,
		&detail.Description,
		&detail.ManagerID,
		&detail.Manager,
		&detail.Active,
		&detail.EmployeeCount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(err, "selecting department detail"), http.StatusBadRequest)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name"); err != nil {
		return CreateResponse{}, err
	}

	nameUsed := true
	if err := r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT
						CASE WHEN
						(SELECT id FROM department WHERE name = '%s' AND deleted_at IS NULL) IS NOT NULL
						THEN true ELSE false END`, strings.Replace(*request.Name, "'", "''", -1))).Scan(&nameUsed); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "department name check"), http.StatusInternalServerError)
	}
	if nameUsed {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(errors.New(""), "department name is used"), http.StatusBadRequest)
	}

	var response CreateResponse

	response.Name = request.Name
	response.Description = request.Description
	response.ManagerID = request.ManagerID
	response.Active = true
	response.CreatedAt = time.Now()
	response.CreatedBy = claims.UserId

	_, err = r.NewInsert().Model(&response).Returning("id").Exec(ctx, &response.ID)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating department"), http.StatusBadRequest)
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

	q := r.NewUpdate().Table("department").Where("deleted_at IS NULL AND id = ?", request.ID)

	if request.Name != nil {
		nameUsed := true
		if err := r.QueryRowContext(ctx,
			fmt.Sprintf(`SELECT
							CASE WHEN
							(SELECT id FROM department WHERE name = '%s' AND deleted_at IS NULL AND id != %d) IS NOT NULL
							THEN true ELSE false END`, strings.Replace(*request.Name, "'", "''", -1), request.ID)).Scan(&nameUsed); err != nil {
			return web.NewRequestError(errors.Wrap(err, "department name check"), http.StatusBadRequest)
		}
		if nameUsed {
			return web.NewRequestError(errors.Wrap(errors.New(""), "department name is used"), http.StatusBadRequest)
		}
		q.Set("name = ?", request.Name)
	}
	if request.Description != nil {
		q.Set("description = ?", request.Description)
	}
	if request.ManagerID != nil {
		q.Set("manager_id = ?", request.ManagerID)
	}
	if request.Active != nil {
		q.Set("active = ?", request.Active)
	}
	q.Set("updated_at = ?", time.Now())
	q.Set("updated_by = ?", claims.UserId)

	if _, err = q.Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating department"), http.StatusBadRequest)
	}

	return nil
}

// Delete refuses to remove a department that employees still reference.
func (r Repository) Delete(ctx context.Context, id int) error {
	referencing := 0
	if err := r.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(id) FROM employees WHERE department_id = %d AND deleted_at IS NULL`, id)).Scan(&referencing); err != nil {
		return web.NewRequestError(errors.Wrap(err, "department reference check"), http.StatusInternalServerError)
	}
	if referencing > 0 {
		return web.NewRequestError(postgres.ErrReferentialIntegrity, http.StatusBadRequest)
	}

	return r.DeleteRow(ctx, "department", id)
}

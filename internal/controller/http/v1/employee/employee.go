package employee

import (
	"fmt"
	"net/http"
	"reflect"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/repository/postgres/employee"
	"hrms/backend/internal/service"
)

type Controller struct {
	employee Employee
}

func NewController(employee Employee) *Controller {
	return &Controller{employee}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter employee.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if departmentId, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentId
	}
	if active, ok := c.GetQueryFunc(reflect.Bool, "active").(*bool); ok {
		filter.Active = active
	}

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.employee.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request employee.CreateRequest

	if err := c.BindFunc(&request, "FullName", "BaseSalary", "Login", "Password", "Role"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.employee.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request employee.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	if err := uc.employee.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.employee.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// ExportEmployee streams the current directory as a workbook.
func (uc Controller) ExportEmployee(c *web.Context) error {
	list, _, err := uc.employee.GetList(c.Ctx, employee.Filter{})
	if err != nil {
		return c.RespondError(err)
	}

	rows := make([]service.EmployeeRow, 0, len(list))
	for _, e := range list {
		row := service.EmployeeRow{}
		if e.FullName != nil {
			row.FullName = *e.FullName
		}
		if e.Department != nil {
			row.Department = *e.Department
		}
		if e.Position != nil {
			row.Position = *e.Position
		}
		if e.BaseSalary != nil {
			row.BaseSalary = *e.BaseSalary
		}
		if e.Login != nil {
			row.Login = *e.Login
		}
		rows = append(rows, row)
	}

	f, err := service.EmployeeWorkbook(rows)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Writer.Header().Set("Content-Disposition", `attachment; filename="employees.xlsx"`)

	if err := f.Write(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return nil
}

// ExportTemplate streams the header-only workbook used for bulk import.
func (uc Controller) ExportTemplate(c *web.Context) error {
	f, err := service.EmployeeWorkbook(nil)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Writer.Header().Set("Content-Disposition", `attachment; filename="employee_template.xlsx"`)

	if err := f.Write(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return nil
}

// CreateByExcel bulk-creates employees from an uploaded workbook. Valid rows
// are created one by one; rows the reader rejected come back with their sheet
// row numbers so the caller can fix and re-upload them.
func (uc Controller) CreateByExcel(c *web.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	path, err := service.Upload(fileHeader, "import")
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	departmentMap, err := uc.employee.DepartmentMap(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}
	usedLogins, err := uc.employee.UsedLogins(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	rows, badRows, err := service.ReadEmployeeWorkbook(path, departmentMap, usedLogins)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusBadRequest))
	}

	created := 0
	for _, row := range rows {
		row := row
		departmentID := departmentMap[row.Department]

		request := employee.CreateRequest{
			FullName:   &row.FullName,
			BaseSalary: &row.BaseSalary,
			Login:      &row.Login,
			Password:   &row.Password,
			Role:       &row.Role,
			Position:   &row.Position,
		}
		if departmentID != 0 {
			request.DepartmentID = &departmentID
		}
		if row.BirthDate != "" {
			request.BirthDate = &row.BirthDate
		}
		if row.StartDate != "" {
			request.StartDate = &row.StartDate
		}

		if _, err := uc.employee.Create(c.Ctx, request); err != nil {
			return c.RespondError(err)
		}
		created++
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"created":   created,
			"bad_rows":  badRows,
			"file_path": path,
		},
		"status": true,
	}, http.StatusOK)
}

// GetBadge renders the employee's QR badge and responds with its path.
func (uc Controller) GetBadge(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.employee.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	login := ""
	if detail.Login != nil {
		login = *detail.Login
	}

	path, err := service.EmployeeBadge(detail.ID, login)
	if err != nil {
		return c.RespondError(web.NewRequestError(fmt.Errorf("rendering badge: %w", err), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]string{
			"qrcode": path,
		},
		"status": true,
	}, http.StatusOK)
}

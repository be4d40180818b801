package report

import (
	"fmt"
	"net/http"
	"reflect"

	"hrms/backend/foundation/web"
	"hrms/backend/internal/repository/postgres/report"
	"hrms/backend/internal/service"
)

type Controller struct {
	report Report
}

func NewController(report Report) *Controller {
	return &Controller{report}
}

func (uc Controller) filterFromQuery(c *web.Context) report.Filter {
	var filter report.Filter

	if from, ok := c.GetQueryFunc(reflect.String, "from").(*string); ok {
		filter.From = from
	}
	if to, ok := c.GetQueryFunc(reflect.String, "to").(*string); ok {
		filter.To = to
	}
	if departmentId, ok := c.GetQueryFunc(reflect.Int, "department_id").(*int); ok {
		filter.DepartmentID = departmentId
	}

	return filter
}

// GetPayroll responds with the computed payroll report for a period.
func (uc Controller) GetPayroll(c *web.Context) error {
	filter := uc.filterFromQuery(c)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.ComputePeriod(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// ExportPayrollExcel streams the report as a workbook.
func (uc Controller) ExportPayrollExcel(c *web.Context) error {
	filter := uc.filterFromQuery(c)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.ComputePeriod(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	f, err := service.PayrollWorkbook(response)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	name := fmt.Sprintf("payroll_%s_%s.xlsx",
		response.From.Format("2006-01-02"), response.To.Format("2006-01-02"))

	c.Writer.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))

	if err := f.Write(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return nil
}

// ExportPayrollPDF streams the report as a printable document.
func (uc Controller) ExportPayrollPDF(c *web.Context) error {
	filter := uc.filterFromQuery(c)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.report.ComputePeriod(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	buf, err := service.PayrollPDF(response)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	name := fmt.Sprintf("payroll_%s_%s.pdf",
		response.From.Format("2006-01-02"), response.To.Format("2006-01-02"))

	c.Writer.Header().Set("Content-Type", "application/pdf")
	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))

	if _, err := buf.WriteTo(c.Writer); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return nil
}

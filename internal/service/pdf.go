package service

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"hrms/backend/internal/payroll"
)

// PayrollPDF renders a computed payroll report as a printable document.
func PayrollPDF(report payroll.Report) (*bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Payroll Report %s - %s",
		report.From.Format("2006-01-02"), report.To.Format("2006-01-02")))
	pdf.Ln(14)

	headers := []string{"ID", "Full Name", "Department", "Hours", "Overtime", "Regular", "Overtime Pay", "Total"}
	widths := []float64{15, 55, 45, 25, 25, 35, 35, 35}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, e := range report.Employees {
		pdf.CellFormat(widths[0], 7, fmt.Sprintf("%d", e.EmployeeID), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[1], 7, e.FullName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, e.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, fmt.Sprintf("%.2f", e.WorkingHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, fmt.Sprintf("%.2f", e.OvertimeHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 7, fmt.Sprintf("%.2f", e.RegularPay), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.2f", e.OvertimePay), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 7, fmt.Sprintf("%.2f", e.TotalPay), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, "Departments")
	pdf.Ln(10)

	departmentHeaders := []string{"Department", "Employees", "Hours", "Overtime", "Total Pay", "Average Pay"}
	departmentWidths := []float64{60, 30, 30, 30, 40, 40}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range departmentHeaders {
		pdf.CellFormat(departmentWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, d := range report.Departments {
		pdf.CellFormat(departmentWidths[0], 7, d.Department, "1", 0, "L", false, 0, "")
		pdf.CellFormat(departmentWidths[1], 7, fmt.Sprintf("%d", d.EmployeeCount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(departmentWidths[2], 7, fmt.Sprintf("%.2f", d.WorkingHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(departmentWidths[3], 7, fmt.Sprintf("%.2f", d.OvertimeHours), "1", 0, "R", false, 0, "")
		pdf.CellFormat(departmentWidths[4], 7, fmt.Sprintf("%.2f", d.TotalPay), "1", 0, "R", false, 0, "")
		pdf.CellFormat(departmentWidths[5], 7, fmt.Sprintf("%.2f", d.AveragePay), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Employees: %d    Total: %.2f    Average: %.2f",
		report.Summary.EmployeeCount, report.Summary.TotalPay, report.Summary.AveragePay))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return &buf, nil
}

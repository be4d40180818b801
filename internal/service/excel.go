package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"hrms/backend/internal/payroll"
)

// EmployeeRow is one line of the employee directory workbook, both for export
// and for bulk import.
type EmployeeRow struct {
	FullName   string
	BirthDate  string
	Department string
	Position   string
	BaseSalary float64
	StartDate  string
	Login      string
	Password   string
	Role       string
}

const employeeSheet = "Employees"

var employeeHeaders = []string{
	"Full Name", "Birth Date", "Department", "Position",
	"Base Salary", "Start Date", "Login", "Password", "Role",
}

// EmployeeWorkbook renders the directory rows into a workbook. With no rows
// it still produces the header line, which doubles as the import template.
func EmployeeWorkbook(rows []EmployeeRow) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", employeeSheet)

	for i, header := range employeeHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(employeeSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		n := i + 2
		f.SetCellValue(employeeSheet, fmt.Sprintf("A%d", n), row.FullName)
		f.SetCellValue(employeeSheet, fmt.Sprintf("B%d", n), row.BirthDate)
		f.SetCellValue(employeeSheet, fmt.Sprintf("C%d", n), row.Department)
		f.SetCellValue(employeeSheet, fmt.Sprintf("D%d", n), row.Position)
		f.SetCellValue(employeeSheet, fmt.Sprintf("E%d", n), row.BaseSalary)
		f.SetCellValue(employeeSheet, fmt.Sprintf("F%d", n), row.StartDate)
		f.SetCellValue(employeeSheet, fmt.Sprintf("G%d", n), row.Login)
		f.SetCellValue(employeeSheet, fmt.Sprintf("H%d", n), "")
		f.SetCellValue(employeeSheet, fmt.Sprintf("I%d", n), row.Role)
	}

	return f, nil
}

// ReadEmployeeWorkbook parses an uploaded directory workbook for bulk
// creation. Rows that cannot be used are reported by their 1-based sheet row
// number instead of failing the whole file.
func ReadEmployeeWorkbook(filePath string, departmentMap map[string]int, existingLogins map[string]struct{}) ([]EmployeeRow, []int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(employeeSheet)
	if err != nil {
		return nil, nil, err
	}

	var out []EmployeeRow
	var badRows []int
	seenLogins := make(map[string]struct{})

	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 9 {
			badRows = append(badRows, i+1)
			continue
		}

		fullName := norm.NFKC.String(strings.TrimSpace(row[0]))
		department := norm.NFKC.String(strings.TrimSpace(row[2]))
		login := strings.ToLower(strings.TrimSpace(row[6]))
		password := strings.TrimSpace(row[7])
		role := strings.ToUpper(strings.TrimSpace(row[8]))

		if fullName == "" || login == "" || password == "" {
			badRows = append(badRows, i+1)
			continue
		}
		if role != "EMPLOYEE" && role != "ADMIN" {
			badRows = append(badRows, i+1)
			continue
		}
		if _, ok := departmentMap[department]; !ok {
			badRows = append(badRows, i+1)
			continue
		}
		if _, ok := existingLogins[login]; ok {
			badRows = append(badRows, i+1)
			continue
		}
		if _, ok := seenLogins[login]; ok {
			badRows = append(badRows, i+1)
			continue
		}
		seenLogins[login] = struct{}{}

		salary, err := strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		if err != nil || salary < 0 {
			badRows = append(badRows, i+1)
			continue
		}

		birthDate := strings.TrimSpace(row[1])
		if birthDate != "" {
			if _, err := time.Parse("2006-01-02", birthDate); err != nil {
				badRows = append(badRows, i+1)
				continue
			}
		}
		startDate := strings.TrimSpace(row[5])
		if startDate != "" {
			if _, err := time.Parse("2006-01-02", startDate); err != nil {
				badRows = append(badRows, i+1)
				continue
			}
		}

		out = append(out, EmployeeRow{
			FullName:   fullName,
			BirthDate:  birthDate,
			Department: department,
			Position:   norm.NFKC.String(strings.TrimSpace(row[3])),
			BaseSalary: salary,
			StartDate:  startDate,
			Login:      login,
			Password:   password,
			Role:       role,
		})
	}

	return out, badRows, nil
}

// PayrollWorkbook renders a computed payroll report into a workbook with one
// sheet of employee figures and one of department roll-ups.
func PayrollWorkbook(report payroll.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	employeePage := "Employees"
	f.SetSheetName("Sheet1", employeePage)

	headers := []string{
		"Employee ID", "Full Name", "Department",
		"Working Hours", "Overtime Hours", "Regular Pay", "Overtime Pay", "Total Pay",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(employeePage, cell, header); err != nil {
			return nil, err
		}
	}

	for i, e := range report.Employees {
		n := i + 2
		f.SetCellValue(employeePage, fmt.Sprintf("A%d", n), e.EmployeeID)
		f.SetCellValue(employeePage, fmt.Sprintf("B%d", n), e.FullName)
		f.SetCellValue(employeePage, fmt.Sprintf("C%d", n), e.Department)
		f.SetCellValue(employeePage, fmt.Sprintf("D%d", n), e.WorkingHours)
		f.SetCellValue(employeePage, fmt.Sprintf("E%d", n), e.OvertimeHours)
		f.SetCellValue(employeePage, fmt.Sprintf("F%d", n), e.RegularPay)
		f.SetCellValue(employeePage, fmt.Sprintf("G%d", n), e.OvertimePay)
		f.SetCellValue(employeePage, fmt.Sprintf("H%d", n), e.TotalPay)
	}

	departmentPage := "Departments"
	if _, err := f.NewSheet(departmentPage); err != nil {
		return nil, err
	}

	departmentHeaders := []string{
		"Department", "Employees", "Working Hours", "Overtime Hours", "Total Pay", "Average Pay",
	}
	for i, header := range departmentHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		if err := f.SetCellValue(departmentPage, cell, header); err != nil {
			return nil, err
		}
	}

	for i, d := range report.Departments {
		n := i + 2
		f.SetCellValue(departmentPage, fmt.Sprintf("A%d", n), d.Department)
		f.SetCellValue(departmentPage, fmt.Sprintf("B%d", n), d.EmployeeCount)
		f.SetCellValue(departmentPage, fmt.Sprintf("C%d", n), d.WorkingHours)
		f.SetCellValue(departmentPage, fmt.Sprintf("D%d", n), d.OvertimeHours)
		f.SetCellValue(departmentPage, fmt.Sprintf("E%d", n), d.TotalPay)
		f.SetCellValue(departmentPage, fmt.Sprintf("F%d", n), d.AveragePay)
	}

	summaryRow := len(report.Departments) + 3
	f.SetCellValue(departmentPage, fmt.Sprintf("A%d", summaryRow), "TOTAL")
	f.SetCellValue(departmentPage, fmt.Sprintf("B%d", summaryRow), report.Summary.EmployeeCount)
	f.SetCellValue(departmentPage, fmt.Sprintf("E%d", summaryRow), report.Summary.TotalPay)
	f.SetCellValue(departmentPage, fmt.Sprintf("F%d", summaryRow), report.Summary.AveragePay)

	return f, nil
}

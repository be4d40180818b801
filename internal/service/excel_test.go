package service

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/internal/payroll"
)

func TestEmployeeWorkbookTemplate(t *testing.T) {
	f, err := EmployeeWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue(employeeSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Full Name", got)

	got, err = f.GetCellValue(employeeSheet, "I1")
	require.NoError(t, err)
	assert.Equal(t, "Role", got)
}

func TestReadEmployeeWorkbook(t *testing.T) {
	f, err := EmployeeWorkbook(nil)
	require.NoError(t, err)

	rows := [][]interface{}{
		{"Aiko Tanaka", "1990-04-01", "Engineering", "Developer", 352000.0, "2020-01-15", "aiko", "secret", "EMPLOYEE"},
		{"", "", "Engineering", "Developer", 352000.0, "", "noname", "secret", "EMPLOYEE"},
		{"Taro Sato", "", "Unknown Dept", "Developer", 100000.0, "", "taro", "secret", "EMPLOYEE"},
		{"Hana Ito", "", "Engineering", "Designer", 264000.0, "", "taken", "secret", "EMPLOYEE"},
		{"Ken Mori", "", "Engineering", "Developer", 220000.0, "", "aiko", "secret", "EMPLOYEE"},
		{"Yui Abe", "", "Engineering", "Developer", -5.0, "", "yui", "secret", "EMPLOYEE"},
		{"Jun Oda", "", "Engineering", "Developer", 180000.0, "", "jun", "secret", "MANAGER"},
	}
	for i, row := range rows {
		for j, v := range row {
			cell := fmt.Sprintf("%c%d", 'A'+j, i+2)
			require.NoError(t, f.SetCellValue(employeeSheet, cell, v))
		}
	}

	path := filepath.Join(t.TempDir(), "import.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	departments := map[string]int{"Engineering": 3}
	usedLogins := map[string]struct{}{"taken": {}}

	out, badRows, err := ReadEmployeeWorkbook(path, departments, usedLogins)
	require.NoError(t, err)

	require.Len(t, out, 1)
	assert.Equal(t, "Aiko Tanaka", out[0].FullName)
	assert.Equal(t, "Engineering", out[0].Department)
	assert.Equal(t, 352000.0, out[0].BaseSalary)
	assert.Equal(t, "aiko", out[0].Login)
	assert.Equal(t, "EMPLOYEE", out[0].Role)

	// missing name, unknown department, taken login, duplicate login,
	// negative salary, bad role
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8}, badRows)
}

func TestPayrollWorkbook(t *testing.T) {
	report := payroll.Report{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Employees: []payroll.EmployeePay{
			{EmployeeID: 1, FullName: "Aiko Tanaka", Department: "Engineering", WorkingHours: 176, TotalPay: 352000},
		},
		Departments: []payroll.DepartmentPay{
			{Department: "Engineering", EmployeeCount: 1, WorkingHours: 176, TotalPay: 352000, AveragePay: 352000},
		},
		Summary: payroll.Summary{EmployeeCount: 1, TotalPay: 352000, AveragePay: 352000},
	}

	f, err := PayrollWorkbook(report)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Employees", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Aiko Tanaka", got)

	got, err = f.GetCellValue("Departments", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Engineering", got)

	got, err = f.GetCellValue("Departments", "A4")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", got)
}

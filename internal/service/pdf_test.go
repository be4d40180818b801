package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/internal/payroll"
)

func TestPayrollPDF(t *testing.T) {
	report := payroll.Report{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		Employees: []payroll.EmployeePay{
			{EmployeeID: 1, FullName: "Aiko Tanaka", Department: "Engineering", WorkingHours: 176, RegularPay: 352000, TotalPay: 352000},
			{EmployeeID: 2, FullName: "Taro Sato", Department: "Sales", WorkingHours: 160, RegularPay: 200000, TotalPay: 200000},
		},
		Departments: []payroll.DepartmentPay{
			{Department: "Engineering", EmployeeCount: 1, TotalPay: 352000, AveragePay: 352000},
			{Department: "Sales", EmployeeCount: 1, TotalPay: 200000, AveragePay: 200000},
		},
		Summary: payroll.Summary{EmployeeCount: 2, TotalPay: 552000, AveragePay: 276000},
	}

	buf, err := PayrollPDF(report)
	require.NoError(t, err)
	require.NotNil(t, buf)

	content := buf.Bytes()
	require.NotEmpty(t, content)
	assert.Equal(t, "%PDF", string(content[:4]))
}

func TestPayrollPDFEmptyReport(t *testing.T) {
	buf, err := PayrollPDF(payroll.Report{
		From: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, buf.Bytes())
}

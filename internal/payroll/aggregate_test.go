package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms/backend/internal/entity"
)

func day(d int) time.Time {
	return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterPeriodInclusiveBounds(t *testing.T) {
	records := []DayRecord{
		{EmployeeID: 1, WorkDay: day(1), Status: entity.AttendancePresent},
		{EmployeeID: 1, WorkDay: day(10), Status: entity.AttendancePresent},
		{EmployeeID: 1, WorkDay: day(11), Status: entity.AttendancePresent},
		{EmployeeID: 1, WorkDay: day(20), Status: entity.AttendancePresent},
		{EmployeeID: 1, WorkDay: day(21), Status: entity.AttendancePresent},
	}

	got := FilterPeriod(records, day(10), day(20))

	require.Len(t, got, 3)
	assert.Equal(t, day(10), got[0].WorkDay)
	assert.Equal(t, day(20), got[2].WorkDay)
}

func TestFilterPresentDropsNonWorkedDays(t *testing.T) {
	records := []DayRecord{
		{EmployeeID: 1, Status: entity.AttendancePresent, WorkingHours: 8},
		{EmployeeID: 1, Status: entity.AttendanceLeave, WorkingHours: 8},
		{EmployeeID: 1, Status: entity.AttendanceHoliday},
		{EmployeeID: 1, Status: entity.AttendanceAbsent},
	}

	got := FilterPresent(records)

	require.Len(t, got, 1)
	assert.Equal(t, 8.0, got[0].WorkingHours)
}

func TestSumByEmployee(t *testing.T) {
	records := []DayRecord{
		{EmployeeID: 1, WorkingHours: 8},
		{EmployeeID: 1, WorkingHours: 10, OvertimeHours: 2},
		{EmployeeID: 2, WorkingHours: 7.5},
	}

	totals := SumByEmployee(records)

	assert.Equal(t, EmployeeTotal{WorkingHours: 18, OvertimeHours: 2}, totals[1])
	assert.Equal(t, EmployeeTotal{WorkingHours: 7.5}, totals[2])
}

func TestDerivePayZeroTotalsForMissingEmployee(t *testing.T) {
	rates := []Rate{
		{EmployeeID: 1, FullName: "Aziza Karimova", DepartmentID: 10, Department: "Engineering", BaseSalary: 176000},
		{EmployeeID: 2, FullName: "Botir Aliyev", DepartmentID: 10, Department: "Engineering", BaseSalary: 176000},
	}
	totals := map[int]EmployeeTotal{
		1: {WorkingHours: 80, OvertimeHours: 2},
	}

	pays := DerivePay(totals, rates, DefaultPolicy())

	require.Len(t, pays, 2)

	// Hourly rate is 1000 here (176000 / 176).
	assert.Equal(t, 80000.0, pays[0].RegularPay)
	assert.Equal(t, 3000.0, pays[0].OvertimePay)
	assert.Equal(t, 83000.0, pays[0].TotalPay)

	// No records in range is a valid "no hours logged" state.
	assert.Equal(t, 0.0, pays[1].RegularPay)
	assert.Equal(t, 0.0, pays[1].OvertimePay)
	assert.Equal(t, 0.0, pays[1].TotalPay)
}

func TestGroupByDepartment(t *testing.T) {
	pays := []EmployeePay{
		{EmployeeID: 1, DepartmentID: 10, Department: "Engineering", WorkingHours: 80, RegularPay: 80000, TotalPay: 80000},
		{EmployeeID: 2, DepartmentID: 20, Department: "Sales", WorkingHours: 40, RegularPay: 30000, TotalPay: 30000},
		{EmployeeID: 3, DepartmentID: 10, Department: "Engineering", WorkingHours: 20, RegularPay: 20000, TotalPay: 20000},
	}

	departments := GroupByDepartment(pays)

	require.Len(t, departments, 2)
	assert.Equal(t, "Engineering", departments[0].Department)
	assert.Equal(t, 2, departments[0].EmployeeCount)
	assert.Equal(t, 100.0, departments[0].WorkingHours)
	assert.Equal(t, 100000.0, departments[0].TotalPay)
	assert.Equal(t, 50000.0, departments[0].AveragePay)
	assert.Equal(t, 1, departments[1].EmployeeCount)
}

func TestSummarizeEmptyNeverDividesByZero(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.EmployeeCount)
	assert.Equal(t, 0.0, s.TotalPay)
	assert.Equal(t, 0.0, s.AveragePay)
}

func TestComputeForPeriod(t *testing.T) {
	rates := []Rate{
		{EmployeeID: 1, FullName: "Aziza Karimova", DepartmentID: 10, Department: "Engineering", BaseSalary: 176000},
		{EmployeeID: 2, FullName: "Botir Aliyev", DepartmentID: 20, Department: "Sales", BaseSalary: 88000},
	}
	records := []DayRecord{
		{EmployeeID: 1, WorkDay: day(4), Status: entity.AttendancePresent, WorkingHours: 10, OvertimeHours: 2},
		{EmployeeID: 1, WorkDay: day(5), Status: entity.AttendancePresent, WorkingHours: 8},
		{EmployeeID: 1, WorkDay: day(6), Status: entity.AttendanceLeave},
		{EmployeeID: 2, WorkDay: day(5), Status: entity.AttendancePresent, WorkingHours: 8},
		// Outside the window, must not count.
		{EmployeeID: 2, WorkDay: day(25), Status: entity.AttendancePresent, WorkingHours: 8},
	}

	report, err := ComputeForPeriod(records, rates, day(1), day(15), DefaultPolicy())
	require.NoError(t, err)

	require.Len(t, report.Employees, 2)

	// Employee 1: 18h regular at 1000/h, 2h overtime at 1.5x.
	assert.Equal(t, 18.0, report.Employees[0].WorkingHours)
	assert.Equal(t, 18000.0, report.Employees[0].RegularPay)
	assert.Equal(t, 3000.0, report.Employees[0].OvertimePay)
	assert.Equal(t, 21000.0, report.Employees[0].TotalPay)

	// Employee 2: 8h at 500/h, the day(25) row excluded.
	assert.Equal(t, 8.0, report.Employees[1].WorkingHours)
	assert.Equal(t, 4000.0, report.Employees[1].TotalPay)

	require.Len(t, report.Departments, 2)
	assert.Equal(t, 21000.0, report.Departments[0].TotalPay)
	assert.Equal(t, 4000.0, report.Departments[1].TotalPay)

	assert.Equal(t, 2, report.Summary.EmployeeCount)
	assert.Equal(t, 25000.0, report.Summary.TotalPay)
	assert.Equal(t, 12500.0, report.Summary.AveragePay)
}

func TestComputeForPeriodSparseDataYieldsZeros(t *testing.T) {
	rates := []Rate{
		{EmployeeID: 7, FullName: "Dilnoza Rashidova", DepartmentID: 30, Department: "Support", BaseSalary: 176000},
	}

	report, err := ComputeForPeriod(nil, rates, day(1), day(31), DefaultPolicy())
	require.NoError(t, err)

	require.Len(t, report.Employees, 1)
	assert.Equal(t, 0.0, report.Employees[0].RegularPay)
	assert.Equal(t, 0.0, report.Employees[0].OvertimePay)
	assert.Equal(t, 0.0, report.Summary.TotalPay)
}

func TestComputeForPeriodInvalidPeriod(t *testing.T) {
	_, err := ComputeForPeriod(nil, nil, day(20), day(10), DefaultPolicy())
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestComputeForPeriodRoundsAtPresentationOnly(t *testing.T) {
	// 1/3 hour a day across three days sums to exactly 1.0 before rounding;
	// rounding each day first would give 0.99.
	rates := []Rate{
		{EmployeeID: 1, FullName: "Gulnora Tosheva", DepartmentID: 10, Department: "Engineering", BaseSalary: 176},
	}
	third := 1.0 / 3.0
	records := []DayRecord{
		{EmployeeID: 1, WorkDay: day(1), Status: entity.AttendancePresent, WorkingHours: third},
		{EmployeeID: 1, WorkDay: day(2), Status: entity.AttendancePresent, WorkingHours: third},
		{EmployeeID: 1, WorkDay: day(3), Status: entity.AttendancePresent, WorkingHours: third},
	}

	report, err := ComputeForPeriod(records, rates, day(1), day(3), DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, 1.0, report.Employees[0].WorkingHours)
	assert.Equal(t, 1.0, report.Employees[0].RegularPay)
}

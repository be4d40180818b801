package payroll

import (
	"time"

	"hrms/backend/internal/entity"
)

// DayRecord is one attendance ledger row as the aggregator sees it.
type DayRecord struct {
	EmployeeID    int
	WorkDay       time.Time
	Status        string
	WorkingHours  float64
	OvertimeHours float64
}

// Rate is the employee-directory view the aggregator joins against: who the
// employee is, where they sit, and what their base salary is.
type Rate struct {
	EmployeeID   int
	FullName     string
	DepartmentID int
	Department   string
	BaseSalary   float64
}

// EmployeeTotal is the per-employee sum of hours over a period.
type EmployeeTotal struct {
	WorkingHours  float64
	OvertimeHours float64
}

// EmployeePay is one employee's derived pay figures for a period.
type EmployeePay struct {
	EmployeeID    int     `json:"employee_id"`
	FullName      string  `json:"full_name"`
	DepartmentID  int     `json:"department_id"`
	Department    string  `json:"department"`
	WorkingHours  float64 `json:"working_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	RegularPay    float64 `json:"regular_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	TotalPay      float64 `json:"total_pay"`
}

// DepartmentPay sums employee figures per department.
type DepartmentPay struct {
	DepartmentID  int     `json:"department_id"`
	Department    string  `json:"department"`
	EmployeeCount int     `json:"employee_count"`
	WorkingHours  float64 `json:"working_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
	RegularPay    float64 `json:"regular_pay"`
	OvertimePay   float64 `json:"overtime_pay"`
	TotalPay      float64 `json:"total_pay"`
	AveragePay    float64 `json:"average_pay"`
}

// Summary is the report-wide roll-up.
type Summary struct {
	EmployeeCount int     `json:"employee_count"`
	TotalPay      float64 `json:"total_pay"`
	AveragePay    float64 `json:"average_pay"`
}

// Report is the fully computed payroll structure handed to the report sink.
// Every figure in it is already rounded for presentation.
type Report struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	Employees   []EmployeePay   `json:"employees"`
	Departments []DepartmentPay `json:"departments"`
	Summary     Summary         `json:"summary"`
}

// The aggregation is an explicit ordered list of named steps
// (filter -> join/derive -> group -> summarize), each testable on its own,
// composed by ComputeForPeriod.

// FilterPeriod keeps the records whose work day falls inside the inclusive
// [from, to] window.
func FilterPeriod(records []DayRecord, from, to time.Time) []DayRecord {
	var out []DayRecord
	for _, r := range records {
		day := DayOf(r.WorkDay)
		if day.Before(DayOf(from)) || day.After(DayOf(to)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FilterPresent keeps only worked days; leave, holiday and absent rows carry
// no payable hours.
func FilterPresent(records []DayRecord) []DayRecord {
	var out []DayRecord
	for _, r := range records {
		if r.Status != entity.AttendancePresent {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SumByEmployee folds day records into per-employee hour totals.
func SumByEmployee(records []DayRecord) map[int]EmployeeTotal {
	totals := make(map[int]EmployeeTotal)
	for _, r := range records {
		t := totals[r.EmployeeID]
		t.WorkingHours += r.WorkingHours
		t.OvertimeHours += r.OvertimeHours
		totals[r.EmployeeID] = t
	}
	return totals
}

// DerivePay joins the hour totals against the employee rates. The rate list
// is the population: an employee with no records in the window gets zero
// totals, which is a valid "no hours logged" state, not an error.
func DerivePay(totals map[int]EmployeeTotal, rates []Rate, p Policy) []EmployeePay {
	out := make([]EmployeePay, 0, len(rates))
	for _, rate := range rates {
		total := totals[rate.EmployeeID]
		hourly := p.HourlyRate(rate.BaseSalary)

		out = append(out, EmployeePay{
			EmployeeID:    rate.EmployeeID,
			FullName:      rate.FullName,
			DepartmentID:  rate.DepartmentID,
			Department:    rate.Department,
			WorkingHours:  total.WorkingHours,
			OvertimeHours: total.OvertimeHours,
			RegularPay:    total.WorkingHours * hourly,
			OvertimePay:   total.OvertimeHours * hourly * p.OvertimeMultiplier,
			TotalPay:      total.WorkingHours*hourly + total.OvertimeHours*hourly*p.OvertimeMultiplier,
		})
	}
	return out
}

// GroupByDepartment sums employee figures per department, keeping the order
// departments first appear in the employee list.
func GroupByDepartment(pays []EmployeePay) []DepartmentPay {
	index := make(map[int]int)
	var out []DepartmentPay

	for _, pay := range pays {
		i, ok := index[pay.DepartmentID]
		if !ok {
			i = len(out)
			index[pay.DepartmentID] = i
			out = append(out, DepartmentPay{
				DepartmentID: pay.DepartmentID,
				Department:   pay.Department,
			})
		}

		out[i].EmployeeCount++
		out[i].WorkingHours += pay.WorkingHours
		out[i].OvertimeHours += pay.OvertimeHours
		out[i].RegularPay += pay.RegularPay
		out[i].OvertimePay += pay.OvertimePay
		out[i].TotalPay += pay.TotalPay
	}

	for i := range out {
		// An empty group cannot happen through this path, but the average
		// must never divide by zero.
		if out[i].EmployeeCount > 0 {
			out[i].AveragePay = out[i].TotalPay / float64(out[i].EmployeeCount)
		}
	}

	return out
}

// Summarize rolls the department figures up into the report-wide summary.
func Summarize(departments []DepartmentPay) Summary {
	var s Summary
	for _, d := range departments {
		s.EmployeeCount += d.EmployeeCount
		s.TotalPay += d.TotalPay
	}
	if s.EmployeeCount > 0 {
		s.AveragePay = s.TotalPay / float64(s.EmployeeCount)
	}
	return s
}

// ComputeForPeriod runs the aggregation pipeline over an inclusive date
// range. All intermediate sums stay unrounded; the returned report carries
// presentation-rounded figures.
func ComputeForPeriod(records []DayRecord, rates []Rate, from, to time.Time, p Policy) (Report, error) {
	if DayOf(from).After(DayOf(to)) {
		return Report{}, ErrInvalidPeriod
	}

	inPeriod := FilterPeriod(records, from, to)
	present := FilterPresent(inPeriod)
	totals := SumByEmployee(present)
	pays := DerivePay(totals, rates, p)
	departments := GroupByDepartment(pays)
	summary := Summarize(departments)

	report := Report{
		From:        DayOf(from),
		To:          DayOf(to),
		Employees:   pays,
		Departments: departments,
		Summary:     summary,
	}
	roundReport(&report)

	return report, nil
}

func roundReport(r *Report) {
	for i := range r.Employees {
		e := &r.Employees[i]
		e.WorkingHours = Round2(e.WorkingHours)
		e.OvertimeHours = Round2(e.OvertimeHours)
		e.RegularPay = Round2(e.RegularPay)
		e.OvertimePay = Round2(e.OvertimePay)
		e.TotalPay = Round2(e.TotalPay)
	}
	for i := range r.Departments {
		d := &r.Departments[i]
		d.WorkingHours = Round2(d.WorkingHours)
		d.OvertimeHours = Round2(d.OvertimeHours)
		d.RegularPay = Round2(d.RegularPay)
		d.OvertimePay = Round2(d.OvertimePay)
		d.TotalPay = Round2(d.TotalPay)
		d.AveragePay = Round2(d.AveragePay)
	}
	r.Summary.TotalPay = Round2(r.Summary.TotalPay)
	r.Summary.AveragePay = Round2(r.Summary.AveragePay)
}

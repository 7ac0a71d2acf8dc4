package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixture struct {
	svc        report.ReportService
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRequestRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	p := policy.NewDefaultPolicy()
	p.Loc = time.UTC

	f := fixture{
		employees:  memory.NewEmployeeRepository(),
		attendance: memory.NewAttendanceRepository(),
		leaves:     memory.NewLeaveRequestRepository(),
	}
	f.svc = NewReportService(f.attendance, f.leaves, f.employees, p)
	return f
}

func (f fixture) addEmployee(t *testing.T, code, name string) employee.Employee {
	t.Helper()
	emp, err := f.employees.Create(context.Background(), employee.Employee{
		EmployeeCode: code,
		FullName:     name,
		AnnualSalary: decimal.NewFromInt(1_200_000),
	})
	require.NoError(t, err)
	return emp
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (f fixture) addRecord(t *testing.T, employeeID string, date time.Time, status attendance.Status, hours float64) {
	t.Helper()
	h := hours
	_, err := f.attendance.Create(context.Background(), attendance.Attendance{
		EmployeeID:  employeeID,
		Date:        date,
		CheckIn:     date.Add(9 * time.Hour),
		Status:      status,
		HoursWorked: &h,
	})
	require.NoError(t, err)
}

func (f fixture) addLeave(t *testing.T, employeeID string, start, end time.Time, status leave.LeaveRequestStatus) {
	t.Helper()
	_, err := f.leaves.Create(context.Background(), leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveTypeAnnual,
		StartDate:  start,
		EndDate:    end,
		Status:     status,
	})
	require.NoError(t, err)
}

func TestGetMonthlySummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.addEmployee(t, "EMP-001", "Ana Putri")

	f.addRecord(t, emp.ID, day(2024, time.February, 1), attendance.StatusPresent, 8.5)
	f.addRecord(t, emp.ID, day(2024, time.February, 2), attendance.StatusLate, 7.25)
	f.addRecord(t, emp.ID, day(2024, time.February, 5), attendance.StatusAbsent, 0)
	f.addRecord(t, emp.ID, day(2024, time.February, 6), attendance.StatusHalfDay, 4)
	// outside the month
	f.addRecord(t, emp.ID, day(2024, time.March, 1), attendance.StatusPresent, 8)

	f.addLeave(t, emp.ID, day(2024, time.January, 30), day(2024, time.February, 2), leave.LeaveRequestStatusApproved)
	f.addLeave(t, emp.ID, day(2024, time.February, 20), day(2024, time.February, 22), leave.LeaveRequestStatusPending)

	resp, err := f.svc.GetMonthlySummary(ctx, report.MonthlySummaryRequest{EmployeeID: emp.ID, Month: 2, Year: 2024})
	require.NoError(t, err)

	sum := resp.Summary
	assert.Equal(t, 29, sum.TotalDays)
	assert.Equal(t, 2, sum.PresentDays)
	assert.Equal(t, 1, sum.AbsentDays)
	assert.Equal(t, 2, sum.LeaveDays)
	assert.Equal(t, 4, sum.PayableDays)
	assert.Equal(t, 19.75, sum.TotalHours)

	assert.Len(t, resp.Records, 4)
	require.Len(t, resp.Leaves, 1)
	assert.Equal(t, 2, resp.Leaves[0].DaysInMonth)
}

func TestGetMonthlySummary_IsRepeatable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	emp := f.addEmployee(t, "EMP-001", "Ana Putri")
	f.addRecord(t, emp.ID, day(2024, time.April, 10), attendance.StatusPresent, 8)

	req := report.MonthlySummaryRequest{EmployeeID: emp.ID, Month: 4, Year: 2024}
	first, err := f.svc.GetMonthlySummary(ctx, req)
	require.NoError(t, err)
	second, err := f.svc.GetMonthlySummary(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
}

func TestGetMonthlySummary_PayableDaysNotCapped(t *testing.T) {
	f := newFixture(t)
	emp := f.addEmployee(t, "EMP-001", "Ana Putri")

	// present on days that are also covered by approved leave
	for d := 1; d <= 30; d++ {
		f.addRecord(t, emp.ID, day(2023, time.April, d), attendance.StatusPresent, 8)
	}
	f.addLeave(t, emp.ID, day(2023, time.April, 1), day(2023, time.April, 5), leave.LeaveRequestStatusApproved)

	resp, err := f.svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{EmployeeID: emp.ID, Month: 4, Year: 2023})
	require.NoError(t, err)

	assert.Equal(t, 30, resp.Summary.TotalDays)
	assert.Equal(t, 35, resp.Summary.PayableDays)
	assert.Equal(t, 240.0, resp.Summary.TotalHours)
}

func TestGetMonthlySummary_InvalidPeriod(t *testing.T) {
	f := newFixture(t)
	emp := f.addEmployee(t, "EMP-001", "Ana Putri")

	tests := []struct {
		name  string
		month int
		year  int
	}{
		{"month zero", 0, 2024},
		{"month thirteen", 13, 2024},
		{"year too small", 6, 1969},
		{"year too large", 6, 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{
				EmployeeID: emp.ID, Month: tt.month, Year: tt.year,
			})
			require.Error(t, err)
			assert.ErrorIs(t, err, report.ErrInvalidPeriod)

			var verrs validator.ValidationErrors
			assert.True(t, errors.As(err, &verrs))
		})
	}
}

func TestGetMonthlySummary_UnknownEmployee(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{
		EmployeeID: "0192f0a0-0000-7000-8000-000000000000", Month: 1, Year: 2024,
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestSummarize_SkipsUnapprovedLeave(t *testing.T) {
	leaves := []leave.LeaveRequest{
		{StartDate: day(2024, time.February, 25), EndDate: day(2024, time.March, 3), Status: leave.LeaveRequestStatusApproved},
		{StartDate: day(2024, time.February, 10), EndDate: day(2024, time.February, 12), Status: leave.LeaveRequestStatusRejected},
	}

	sum := Summarize("emp", 2, 2024, nil, leaves, time.UTC)
	assert.Equal(t, 5, sum.LeaveDays)
	assert.Equal(t, 5, sum.PayableDays)
	assert.Zero(t, sum.TotalHours)
}

func TestExportMonthlyReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "EMP-001", "Ana Putri")
	f.addEmployee(t, "EMP-002", "Budi Santoso")
	f.addRecord(t, ana.ID, day(2024, time.February, 1), attendance.StatusPresent, 8)

	data, err := f.svc.ExportMonthlyReport(ctx, report.MonthlyReportRequest{Month: 2, Year: 2024})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	book, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Attendance summary 2024-02", rows[0][0])
	assert.Equal(t, "Employee Code", rows[1][0])

	codes := []string{rows[2][0], rows[3][0]}
	assert.ElementsMatch(t, []string{"EMP-001", "EMP-002"}, codes)
}

func TestExportMonthlyReport_InvalidPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ExportMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: 14, Year: 2024})
	assert.ErrorIs(t, err, report.ErrInvalidPeriod)
}

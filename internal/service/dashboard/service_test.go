package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestGetDailyStatistics(t *testing.T) {
	ctx := context.Background()
	employees := memory.NewEmployeeRepository()
	attendances := memory.NewAttendanceRepository()
	leaves := memory.NewLeaveRequestRepository()

	var ids []string
	for _, code := range []string{"E1", "E2", "E3", "E4", "E5", "E6"} {
		emp, err := employees.Create(ctx, employee.Employee{EmployeeCode: code, FullName: code, AnnualSalary: decimal.NewFromInt(1)})
		require.NoError(t, err)
		ids = append(ids, emp.ID)
	}
	_, err := employees.Create(ctx, employee.Employee{EmployeeCode: "GONE", FullName: "gone", Status: employee.EmploymentStatusInactive})
	require.NoError(t, err)

	mark := func(empID string, status attendance.Status) {
		_, err := attendances.Create(ctx, attendance.Attendance{EmployeeID: empID, Date: day(12), CheckIn: day(12).Add(8 * time.Hour), Status: status})
		require.NoError(t, err)
	}
	mark(ids[0], attendance.StatusPresent)
	mark(ids[1], attendance.StatusLate)
	mark(ids[2], attendance.StatusAbsent)

	// E2 is both late and on approved leave and must be counted once
	for _, l := range []leave.LeaveRequest{
		{EmployeeID: ids[1], StartDate: day(11), EndDate: day(12), Status: leave.LeaveRequestStatusApproved},
		{EmployeeID: ids[3], StartDate: day(10), EndDate: day(15), Status: leave.LeaveRequestStatusApproved},
		{EmployeeID: ids[4], StartDate: day(12), EndDate: day(12), Status: leave.LeaveRequestStatusPending},
		{EmployeeID: ids[5], StartDate: day(13), EndDate: day(14), Status: leave.LeaveRequestStatusApproved},
	} {
		_, err := leaves.Create(ctx, l)
		require.NoError(t, err)
	}

	p := policy.NewDefaultPolicy()
	p.Loc = time.UTC
	svc := NewDashboardService(employees, attendances, leaves, p, &policy.FixedClock{T: day(12).Add(15 * time.Hour)})

	stats, err := svc.GetDailyStatistics(ctx, "2024-03-12")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-12", stats.Date)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 2, stats.Present)
	assert.Equal(t, 1, stats.Late)
	assert.Equal(t, 1, stats.Absent)
	assert.Equal(t, 2, stats.OnLeave)
	// E5 (pending leave) and E6 (leave starts tomorrow)
	assert.Equal(t, 2, stats.NotApplied)

	// no date means today on the clock
	today, err := svc.GetDailyStatistics(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, stats, today)
}

func TestGetDailyStatistics_InvalidDate(t *testing.T) {
	svc := NewDashboardService(memory.NewEmployeeRepository(), memory.NewAttendanceRepository(), memory.NewLeaveRequestRepository(),
		policy.NewDefaultPolicy(), policy.SystemClock{})

	_, err := svc.GetDailyStatistics(context.Background(), "12/03/2024")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestReconcile_NotAppliedNeverNegative(t *testing.T) {
	records := []attendance.Attendance{
		{EmployeeID: "a", Status: attendance.StatusPresent},
		{EmployeeID: "b", Status: attendance.StatusHalfDay},
	}
	leaves := []leave.LeaveRequest{{EmployeeID: "c"}}

	stats := Reconcile(1, records, leaves)
	assert.Equal(t, 0, stats.NotApplied)
	assert.Equal(t, 1, stats.Present)
	assert.Zero(t, stats.Absent)
	assert.Equal(t, 1, stats.OnLeave)

	empty := Reconcile(0, nil, nil)
	assert.Zero(t, empty.PresentPercent)
}

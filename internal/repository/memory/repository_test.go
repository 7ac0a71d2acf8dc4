package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAttendanceRepository_OneRecordPerDay(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	att := attendance.Attendance{EmployeeID: "emp-1", Date: day(2024, 3, 4), CheckIn: day(2024, 3, 4).Add(8 * time.Hour), Status: attendance.StatusPresent}
	created, err := repo.Create(ctx, att)
	require.NoError(t, err)

	_, err = repo.Create(ctx, att)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	other := att
	other.EmployeeID = "emp-2"
	_, err = repo.Create(ctx, other)
	require.NoError(t, err)

	_, err = repo.CloseSession(ctx, created.ID, att.CheckIn.Add(8*time.Hour), 8, 0)
	require.NoError(t, err)
	_, err = repo.CloseSession(ctx, created.ID, att.CheckIn.Add(9*time.Hour), 9, 1)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = repo.CloseSession(ctx, "missing", att.CheckIn, 0, 0)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	onDay, err := repo.ListByDate(ctx, day(2024, 3, 4))
	require.NoError(t, err)
	assert.Len(t, onDay, 2)
}

func TestLeaveRequestRepository_ApprovedOverlapping(t *testing.T) {
	ctx := context.Background()
	repo := NewLeaveRequestRepository()

	create := func(start, end time.Time) leave.LeaveRequest {
		req, err := repo.Create(ctx, leave.LeaveRequest{
			EmployeeID: "emp-1",
			LeaveType:  leave.LeaveTypeAnnual,
			StartDate:  start,
			EndDate:    end,
			Status:     leave.LeaveRequestStatusPending,
		})
		require.NoError(t, err)
		return req
	}

	spanning := create(day(2024, 4, 29), day(2024, 5, 3))
	inside := create(day(2024, 5, 20), day(2024, 5, 21))
	pending := create(day(2024, 5, 10), day(2024, 5, 10))
	after := create(day(2024, 6, 1), day(2024, 6, 2))

	for _, id := range []string{spanning.ID, inside.ID, after.ID} {
		_, err := repo.Resolve(ctx, id, leave.LeaveRequestStatusApproved, "admin", time.Now(), nil)
		require.NoError(t, err)
	}

	got, err := repo.ListApprovedOverlapping(ctx, "emp-1", day(2024, 5, 1), day(2024, 5, 31))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, spanning.ID, got[0].ID)
	assert.Equal(t, inside.ID, got[1].ID)

	assert.NoError(t, repo.DeletePending(ctx, pending.ID))
	assert.ErrorIs(t, repo.DeletePending(ctx, spanning.ID), leave.ErrLeaveCannotDelete)

	onDate, err := repo.ListApprovedOnDate(ctx, day(2024, 5, 3))
	require.NoError(t, err)
	require.Len(t, onDate, 1)
	assert.Equal(t, spanning.ID, onDate[0].ID)
}

func TestPayrollRepository_Upsert(t *testing.T) {
	ctx := context.Background()
	employees := NewEmployeeRepository()
	emp, err := employees.Create(ctx, employee.Employee{EmployeeCode: "EMP-001", FullName: "Ana Putri"})
	require.NoError(t, err)

	repo := NewPayrollRepository(employees)
	record := payroll.PayrollRecord{
		EmployeeID: emp.ID,
		Month:      5,
		Year:       2024,
		Mode:       payroll.ModeFlat,
		BaseSalary: decimal.NewFromInt(1000),
		Status:     payroll.PayrollStatusPending,
	}
	record.Recompute()

	first, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	require.NotNil(t, first.EmployeeName)
	assert.Equal(t, "Ana Putri", *first.EmployeeName)

	record.Bonus = decimal.NewFromInt(50)
	record.Recompute()
	second, err := repo.Upsert(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "1050", second.TotalSalary.String())

	_, total, err := repo.List(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, err = repo.Update(ctx, first.ID, func(r *payroll.PayrollRecord) error {
		r.Status = payroll.PayrollStatusPaid
		r.Month = 7
		return nil
	})
	require.NoError(t, err)

	stored, err := repo.GetByEmployeePeriod(ctx, emp.ID, 5, 2024)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid())
	assert.Equal(t, 5, stored.Month)

	_, err = repo.Upsert(ctx, record)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		n, page, limit     int
		wantStart, wantEnd int
	}{
		{10, 1, 3, 0, 3},
		{10, 4, 3, 9, 10},
		{10, 5, 3, 10, 10},
		{0, 1, 20, 0, 0},
		{5, 0, 0, 0, 5},
	}
	for _, tt := range tests {
		start, end := paginate(tt.n, tt.page, tt.limit)
		assert.Equal(t, tt.wantStart, start)
		assert.Equal(t, tt.wantEnd, end)
	}
}

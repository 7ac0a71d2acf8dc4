package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLeaveFixture(t *testing.T) (leave.LeaveService, leave.LeaveRequestRepository, employee.Employee) {
	t.Helper()

	employees := memory.NewEmployeeRepository()
	emp, err := employees.Create(context.Background(), employee.Employee{
		EmployeeCode: "EMP-010",
		FullName:     "Budi Santoso",
		AnnualSalary: decimal.NewFromInt(60_000_000),
	})
	require.NoError(t, err)

	repo := memory.NewLeaveRequestRepository()
	clock := &policy.FixedClock{T: time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)}
	return NewLeaveService(repo, employees, clock), repo, emp
}

func TestCreateLeaveRequest(t *testing.T) {
	svc, _, emp := newLeaveFixture(t)

	resp, err := svc.CreateLeaveRequest(context.Background(), leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID,
		LeaveType:  "Annual",
		StartDate:  "2024-02-27",
		EndDate:    "2024-03-02",
		Reason:     "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "annual", resp.LeaveType)
	assert.Equal(t, 5, resp.Days)
	assert.Equal(t, "2024-02-27", resp.StartDate)
	assert.Equal(t, "2024-03-02", resp.EndDate)
}

func TestCreateLeaveRequest_Invalid(t *testing.T) {
	svc, _, emp := newLeaveFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  leave.CreateLeaveRequestRequest
	}{
		{"end before start", leave.CreateLeaveRequestRequest{EmployeeID: emp.ID, LeaveType: "sick", StartDate: "2024-02-10", EndDate: "2024-02-09"}},
		{"bad type", leave.CreateLeaveRequestRequest{EmployeeID: emp.ID, LeaveType: "sabbatical", StartDate: "2024-02-10", EndDate: "2024-02-10"}},
		{"bad date", leave.CreateLeaveRequestRequest{EmployeeID: emp.ID, LeaveType: "sick", StartDate: "10/02/2024", EndDate: "2024-02-10"}},
		{"no employee", leave.CreateLeaveRequestRequest{LeaveType: "sick", StartDate: "2024-02-10", EndDate: "2024-02-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateLeaveRequest(ctx, tt.req)
			assert.Error(t, err)
		})
	}

	_, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: "0192f0a0-0000-7000-8000-000000000000", LeaveType: "sick", StartDate: "2024-02-10", EndDate: "2024-02-10",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestApproveLeaveRequest(t *testing.T) {
	svc, repo, emp := newLeaveFixture(t)
	ctx := context.Background()

	created, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, LeaveType: "sick", StartDate: "2024-02-12", EndDate: "2024-02-13",
	})
	require.NoError(t, err)

	comment := "get well soon"
	approved, err := svc.ApproveLeaveRequest(ctx, leave.ResolveLeaveRequest{ID: created.ID, ApprovedBy: "admin-1", Comments: &comment})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin-1", *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, "2024-02-01T10:00:00Z", *approved.ApprovedAt)

	onDate, err := repo.ListApprovedOnDate(ctx, time.Date(2024, time.February, 13, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, onDate, 1)

	_, err = svc.RejectLeaveRequest(ctx, leave.ResolveLeaveRequest{ID: created.ID, ApprovedBy: "admin-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)

	err = svc.DeleteLeaveRequest(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveCannotDelete)
}

func TestRejectedLeaveIsNotApproved(t *testing.T) {
	svc, repo, emp := newLeaveFixture(t)
	ctx := context.Background()

	created, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, LeaveType: "casual", StartDate: "2024-02-12", EndDate: "2024-02-12",
	})
	require.NoError(t, err)

	rejected, err := svc.RejectLeaveRequest(ctx, leave.ResolveLeaveRequest{ID: created.ID, ApprovedBy: "admin-1"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	overlapping, err := repo.ListApprovedOverlapping(ctx, emp.ID,
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Empty(t, overlapping)
}

func TestDeleteLeaveRequest(t *testing.T) {
	svc, _, emp := newLeaveFixture(t)
	ctx := context.Background()

	created, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
		EmployeeID: emp.ID, LeaveType: "other", StartDate: "2024-02-12", EndDate: "2024-02-12",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteLeaveRequest(ctx, created.ID))

	_, err = svc.GetLeaveRequest(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	err = svc.DeleteLeaveRequest(ctx, created.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestListLeaveRequest(t *testing.T) {
	svc, _, emp := newLeaveFixture(t)
	ctx := context.Background()

	for _, start := range []string{"2024-02-01", "2024-02-05", "2024-02-09"} {
		_, err := svc.CreateLeaveRequest(ctx, leave.CreateLeaveRequestRequest{
			EmployeeID: emp.ID, LeaveType: "annual", StartDate: start, EndDate: start,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListLeaveRequest(ctx, leave.LeaveRequestFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Requests, 2)

	approved := "approved"
	resp, err = svc.ListLeaveRequest(ctx, leave.LeaveRequestFilter{Status: &approved})
	require.NoError(t, err)
	assert.Zero(t, resp.TotalCount)
}

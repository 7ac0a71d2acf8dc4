package leave

import (
	"context"
	"time"
)

// LeaveReader is the read-only view used by aggregation and statistics.
type LeaveReader interface {
	// ListApprovedOverlapping returns the employee's approved leaves that share at least one date with [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)

	// ListApprovedOnDate returns every approved leave whose range contains date.
	ListApprovedOnDate(ctx context.Context, date time.Time) ([]LeaveRequest, error)
}

type LeaveRequestRepository interface {
	LeaveReader

	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// Resolve moves a pending request to approved or rejected.
	// It fails with ErrLeaveRequestAlreadyProcessed when the request is no longer pending.
	Resolve(ctx context.Context, id string, status LeaveRequestStatus, approvedBy string, approvedAt time.Time, comments *string) (LeaveRequest, error)

	// DeletePending removes a request that is still pending, otherwise ErrLeaveCannotDelete.
	DeletePending(ctx context.Context, id string) error
}

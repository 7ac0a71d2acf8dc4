package leave

import "context"

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListLeaveRequest(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)

	// ApproveLeaveRequest and RejectLeaveRequest resolve a pending request exactly once.
	ApproveLeaveRequest(ctx context.Context, req ResolveLeaveRequest) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, req ResolveLeaveRequest) (LeaveRequestResponse, error)

	DeleteLeaveRequest(ctx context.Context, id string) error
}

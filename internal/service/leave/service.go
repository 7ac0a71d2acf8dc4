package leave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	clock policy.Clock
}

func NewLeaveService(
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	clock policy.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		clock:                  clock,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Validate already checked the format
	startDate, _ := dateutil.ParseDate(req.StartDate, time.UTC)
	endDate, _ := dateutil.ParseDate(req.EndDate, time.UTC)

	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		LeaveType:  leave.LeaveType(strings.ToLower(req.LeaveType)),
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       InclusiveDays(startDate, endDate),
		Reason:     req.Reason,
		Status:     leave.LeaveRequestStatusPending,
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.EmployeeName = &emp.FullName

	return mapLeaveRequestToResponse(created), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return mapLeaveRequestToResponse(request), nil
}

// ListLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequest(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, mapLeaveRequestToResponse(request))
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}, nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, req leave.ResolveLeaveRequest) (leave.LeaveRequestResponse, error) {
	return l.resolve(ctx, req, leave.LeaveRequestStatusApproved)
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, req leave.ResolveLeaveRequest) (leave.LeaveRequestResponse, error) {
	return l.resolve(ctx, req, leave.LeaveRequestStatusRejected)
}

func (l *LeaveServiceImpl) resolve(ctx context.Context, req leave.ResolveLeaveRequest, status leave.LeaveRequestStatus) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	resolved, err := l.LeaveRequestRepository.Resolve(ctx, req.ID, status, req.ApprovedBy, l.clock.Now(), req.Comments)
	if err != nil {
		switch {
		case errors.Is(err, leave.ErrLeaveRequestNotFound):
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to mark leave request %s: %w", status, err)
	}

	return mapLeaveRequestToResponse(resolved), nil
}

// DeleteLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, id string) error {
	if err := l.LeaveRequestRepository.DeletePending(ctx, id); err != nil {
		switch {
		case errors.Is(err, leave.ErrLeaveRequestNotFound):
			return leave.ErrLeaveRequestNotFound
		case errors.Is(err, leave.ErrLeaveCannotDelete):
			return leave.ErrLeaveCannotDelete
		}
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}

func mapLeaveRequestToResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	var approvedAt *string
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		approvedAt = &s
	}

	return leave.LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		LeaveType:    string(r.LeaveType),
		StartDate:    r.StartDate.Format(dateutil.DateLayout),
		EndDate:      r.EndDate.Format(dateutil.DateLayout),
		Days:         r.Days,
		Reason:       r.Reason,
		Status:       string(r.Status),
		ApprovedBy:   r.ApprovedBy,
		ApprovedAt:   approvedAt,
		Comments:     r.Comments,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}

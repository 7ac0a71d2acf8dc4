package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
)

type leaveRequestRepository struct {
	mu       sync.RWMutex
	requests map[string]leave.LeaveRequest
}

func NewLeaveRequestRepository() leave.LeaveRequestRepository {
	return &leaveRequestRepository{requests: make(map[string]leave.LeaveRequest)}
}

func sortByStartDate(requests []leave.LeaveRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if !requests[i].StartDate.Equal(requests[j].StartDate) {
			return requests[i].StartDate.Before(requests[j].StartDate)
		}
		return requests[i].ID < requests[j].ID
	})
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req.ID = newID()
	req.CreatedAt = now()
	req.UpdatedAt = req.CreatedAt
	r.requests[req.ID] = req
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []leave.LeaveRequest
	for _, req := range r.requests {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && req.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(req.Status) != *filter.Status {
			continue
		}
		if filter.LeaveType != nil && *filter.LeaveType != "" && string(req.LeaveType) != *filter.LeaveType {
			continue
		}
		matched = append(matched, req)
	}
	// newest first, like the SQL listing
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start, end := paginate(len(matched), filter.Page, filter.Limit)
	return matched[start:end], int64(len(matched)), nil
}

// Resolve implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Resolve(ctx context.Context, id string, status leave.LeaveRequestStatus, approvedBy string, approvedAt time.Time, comments *string) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if !req.IsPending() {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	req.Status = status
	req.ApprovedBy = &approvedBy
	req.ApprovedAt = &approvedAt
	req.Comments = comments
	req.UpdatedAt = now()

	r.requests[id] = req
	return req, nil
}

// DeletePending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) DeletePending(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	if !req.IsPending() {
		return leave.ErrLeaveCannotDelete
	}
	delete(r.requests, id)
	return nil
}

// ListApprovedOverlapping implements leave.LeaveReader.
func (r *leaveRequestRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID != employeeID || req.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		// start <= to AND end >= from
		if dateutil.DaysBetween(req.StartDate, to) >= 0 && dateutil.DaysBetween(from, req.EndDate) >= 0 {
			result = append(result, req)
		}
	}
	sortByStartDate(result)
	return result, nil
}

// ListApprovedOnDate implements leave.LeaveReader.
func (r *leaveRequestRepository) ListApprovedOnDate(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.LeaveRequest
	for _, req := range r.requests {
		if req.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		if inRange(date, req.StartDate, req.EndDate) {
			result = append(result, req)
		}
	}
	sortByStartDate(result)
	return result, nil
}

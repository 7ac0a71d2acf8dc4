package attendance

import (
	"context"
)

// AttendanceService is the attendance ledger.
type AttendanceService interface {
	// CheckIn opens today's record for the employee.
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)

	// CheckOut closes today's record and computes worked and extra hours.
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)

	// GetTodayStatus tells whether the employee can check in or out right now.
	GetTodayStatus(ctx context.Context, employeeID string) (AttendanceStatusResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves attendance records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// UpdateAttendance corrects status or notes (admin)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)
}

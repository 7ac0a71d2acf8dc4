package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/shopspring/decimal"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy policy.AttendancePolicy
	clock  policy.Clock
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	attendancePolicy policy.AttendancePolicy,
	clock policy.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               attendancePolicy,
		clock:                clock,
	}
}

// ComputeHours returns worked hours and hours beyond the shift, both rounded to 2 decimals.
// A check-out before the check-in counts as zero hours.
func ComputeHours(checkIn, checkOut time.Time, shiftHours float64) (hoursWorked float64, extraHours float64) {
	elapsed := checkOut.Sub(checkIn)
	if elapsed < 0 {
		elapsed = 0
	}

	worked := decimal.NewFromInt(int64(elapsed)).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2)

	extra := worked.Sub(decimal.NewFromFloat(shiftHours))
	if extra.IsNegative() {
		extra = decimal.Zero
	}

	return worked.InexactFloat64(), extra.Round(2).InexactFloat64()
}

func (a *AttendanceServiceImpl) now(at *time.Time) time.Time {
	if at != nil {
		return *at
	}
	return a.clock.Now()
}

func (a *AttendanceServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := a.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := a.now(req.At)
	date := dateutil.StartOfDay(at, a.policy.Location())

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	status := attendance.StatusPresent
	if a.policy.IsLate(emp.ID, at) {
		status = attendance.StatusLate
	}

	// The (employee, date) uniqueness in the repository settles races the lookup above cannot see.
	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       date,
		CheckIn:    at,
		Status:     status,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	created.EmployeeName = &emp.FullName

	return a.mapAttendanceToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	at := a.now(req.At)
	date := dateutil.StartOfDay(at, a.policy.Location())

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNoCheckInFound
	}
	if !existing.IsOpen() {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	// check_out >= check_in is kept even when the caller's clock runs behind
	checkOut := dateutil.MaxTime(at, existing.CheckIn)
	hoursWorked, extraHours := ComputeHours(existing.CheckIn, checkOut, a.policy.ShiftHours(emp))

	closed, err := a.AttendanceRepository.CloseSession(ctx, existing.ID, checkOut, hoursWorked, extraHours)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}
	closed.EmployeeName = &emp.FullName

	return a.mapAttendanceToResponse(closed), nil
}

// GetTodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetTodayStatus(ctx context.Context, employeeID string) (attendance.AttendanceStatusResponse, error) {
	emp, err := a.getEmployee(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, err
	}

	date := dateutil.StartOfDay(a.clock.Now(), a.policy.Location())
	status := attendance.AttendanceStatusResponse{
		Date: date.Format(dateutil.DateLayout),
	}

	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
	if err != nil {
		return attendance.AttendanceStatusResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	switch {
	case existing == nil:
		status.CanCheckIn = true
		status.Message = "You have not checked in today"
	case existing.IsOpen():
		status.HasCheckedIn = true
		status.CanCheckOut = true
		status.Message = "You are checked in"
	default:
		status.HasCheckedIn = true
		status.Message = "You have completed today's attendance"
	}

	if existing != nil {
		existing.EmployeeName = &emp.FullName
		resp := a.mapAttendanceToResponse(*existing)
		status.TodayAttendance = &resp
	}

	return status, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a.mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	attendances, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	// Map to response
	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, a.mapAttendanceToResponse(att))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
// Corrections are allowed at any point of the record's lifecycle.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var status *attendance.Status
	if req.Status != nil {
		s := attendance.Status(strings.ToLower(*req.Status))
		status = &s
	}

	updated, err := a.AttendanceRepository.UpdateStatusNotes(ctx, req.ID, status, req.Notes)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	return a.mapAttendanceToResponse(updated), nil
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func (a *AttendanceServiceImpl) mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	loc := a.policy.Location()

	var checkOut *string
	if att.CheckOut != nil {
		s := att.CheckOut.In(loc).Format(time.RFC3339)
		checkOut = &s
	}

	return attendance.AttendanceResponse{
		ID:           att.ID,
		EmployeeID:   att.EmployeeID,
		EmployeeName: att.EmployeeName,
		Date:         att.Date.Format(dateutil.DateLayout),
		CheckIn:      att.CheckIn.In(loc).Format(time.RFC3339),
		CheckOut:     checkOut,
		Status:       string(att.Status),
		HoursWorked:  att.HoursWorked,
		ExtraHours:   att.ExtraHours,
		Notes:        att.Notes,
		CreatedAt:    att.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    att.UpdatedAt.Format(time.RFC3339),
	}
}

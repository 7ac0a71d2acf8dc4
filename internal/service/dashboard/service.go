package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employees        employee.EmployeeRepository
	attendanceReader attendance.AttendanceReader
	leaveReader      leave.LeaveReader
	policy           policy.AttendancePolicy
	clock            policy.Clock
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	attendanceReader attendance.AttendanceReader,
	leaveReader leave.LeaveReader,
	attendancePolicy policy.AttendancePolicy,
	clock policy.Clock,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		employees:        employeeRepo,
		attendanceReader: attendanceReader,
		leaveReader:      leaveReader,
		policy:           attendancePolicy,
		clock:            clock,
	}
}

// parseDate parses YYYY-MM-DD in the policy zone, defaults to today
func (s *DashboardServiceImpl) parseDate(date string) (time.Time, error) {
	loc := s.policy.Location()
	if date == "" {
		return dateutil.StartOfDay(s.clock.Now(), loc), nil
	}

	parsed, err := dateutil.ParseDate(date, loc)
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("date", "date must be in YYYY-MM-DD format")
		return time.Time{}, errs.Err()
	}
	return parsed, nil
}

// GetDailyStatistics runs its three reads in parallel goroutines
func (s *DashboardServiceImpl) GetDailyStatistics(ctx context.Context, date string) (dashboard.DailyStatisticsResponse, error) {
	day, err := s.parseDate(date)
	if err != nil {
		return dashboard.DailyStatisticsResponse{}, err
	}

	var (
		total   int
		records []attendance.Attendance
		leaves  []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Active headcount
	g.Go(func() error {
		count, err := s.employees.CountActive(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		total = count
		return nil
	})

	// 2. Attendance on the day
	g.Go(func() error {
		list, err := s.attendanceReader.ListByDate(gCtx, day)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		records = list
		return nil
	})

	// 3. Approved leave covering the day
	g.Go(func() error {
		list, err := s.leaveReader.ListApprovedOnDate(gCtx, day)
		if err != nil {
			return fmt.Errorf("failed to list approved leaves: %w", err)
		}
		leaves = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DailyStatisticsResponse{}, err
	}

	stats := Reconcile(total, records, leaves)
	stats.Date = day.Format(dateutil.DateLayout)
	return stats, nil
}

// Reconcile builds the day's counts. NotApplied counts active employees with neither an
// attendance record nor an approved leave; someone with both is counted once.
func Reconcile(total int, records []attendance.Attendance, leaves []leave.LeaveRequest) dashboard.DailyStatisticsResponse {
	stats := dashboard.DailyStatisticsResponse{
		Total:   total,
		OnLeave: len(leaves),
	}

	accounted := make(map[string]struct{}, len(records)+len(leaves))
	for _, rec := range records {
		switch {
		case rec.Status.CountsAsPresent():
			stats.Present++
			if rec.Status == attendance.StatusLate {
				stats.Late++
			}
		case rec.Status == attendance.StatusAbsent:
			stats.Absent++
		}
		accounted[rec.EmployeeID] = struct{}{}
	}
	for _, l := range leaves {
		accounted[l.EmployeeID] = struct{}{}
	}

	stats.NotApplied = max(0, total-len(accounted))

	if total > 0 {
		stats.PresentPercent = float64(stats.Present) / float64(total) * 100
		stats.AbsentPercent = float64(stats.Absent) / float64(total) * 100
		stats.OnLeavePercent = float64(stats.OnLeave) / float64(total) * 100
	}

	return stats
}

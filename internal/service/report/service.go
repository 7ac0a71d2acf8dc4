package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

const (
	exportSheet       = "Summary"
	exportConcurrency = 4
)

type ReportServiceImpl struct {
	attendanceReader attendance.AttendanceReader
	leaveReader      leave.LeaveReader
	employee.EmployeeRepository
	policy policy.AttendancePolicy
}

func NewReportService(
	attendanceReader attendance.AttendanceReader,
	leaveReader leave.LeaveReader,
	employeeRepo employee.EmployeeRepository,
	attendancePolicy policy.AttendancePolicy,
) report.ReportService {
	return &ReportServiceImpl{
		attendanceReader:   attendanceReader,
		leaveReader:        leaveReader,
		EmployeeRepository: employeeRepo,
		policy:             attendancePolicy,
	}
}

// Summarize folds a month of records and approved leaves into a MonthlySummary.
// Records and leaves outside the month are expected to be filtered by the caller;
// leaves are clipped to the month and non-approved ones are skipped.
func Summarize(employeeID string, month, year int, records []attendance.Attendance, leaves []leave.LeaveRequest, loc *time.Location) report.MonthlySummary {
	first, last := dateutil.MonthRange(year, time.Month(month), loc)

	summary := report.MonthlySummary{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		TotalDays:  dateutil.DaysInMonth(year, time.Month(month)),
	}

	totalHours := decimal.Zero
	for _, rec := range records {
		switch {
		case rec.Status.CountsAsPresent():
			summary.PresentDays++
		case rec.Status == attendance.StatusAbsent:
			summary.AbsentDays++
		}
		if rec.HoursWorked != nil {
			totalHours = totalHours.Add(decimal.NewFromFloat(*rec.HoursWorked))
		}
	}

	for _, l := range leaves {
		if l.Status != leave.LeaveRequestStatusApproved {
			continue
		}
		summary.LeaveDays += leaveService.OverlapDays(l.StartDate, l.EndDate, first, last)
	}

	summary.PayableDays = summary.PresentDays + summary.LeaveDays
	summary.TotalHours = totalHours.Round(2).InexactFloat64()

	return summary
}

// GetMonthlySummary implements report.MonthlySummarizer.
func (s *ReportServiceImpl) GetMonthlySummary(ctx context.Context, req report.MonthlySummaryRequest) (report.MonthlySummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlySummaryResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return report.MonthlySummaryResponse{}, employee.ErrEmployeeNotFound
		}
		return report.MonthlySummaryResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.summarizeEmployee(ctx, req.EmployeeID, req.Month, req.Year)
}

func (s *ReportServiceImpl) summarizeEmployee(ctx context.Context, employeeID string, month, year int) (report.MonthlySummaryResponse, error) {
	loc := s.policy.Location()
	first, last := dateutil.MonthRange(year, time.Month(month), loc)

	var (
		records []attendance.Attendance
		leaves  []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		records, err = s.attendanceReader.ListByEmployeeAndRange(gCtx, employeeID, first, last)
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		leaves, err = s.leaveReader.ListApprovedOverlapping(gCtx, employeeID, first, last)
		if err != nil {
			return fmt.Errorf("failed to list approved leaves: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return report.MonthlySummaryResponse{}, err
	}

	resp := report.MonthlySummaryResponse{
		Summary: Summarize(employeeID, month, year, records, leaves, loc),
		Records: make([]report.DailyRecord, 0, len(records)),
		Leaves:  make([]report.LeaveInMonth, 0, len(leaves)),
	}

	for _, rec := range records {
		var checkOut *string
		if rec.CheckOut != nil {
			v := rec.CheckOut.In(loc).Format(time.RFC3339)
			checkOut = &v
		}
		resp.Records = append(resp.Records, report.DailyRecord{
			AttendanceID: rec.ID,
			Date:         rec.Date.Format(dateutil.DateLayout),
			Status:       string(rec.Status),
			CheckIn:      rec.CheckIn.In(loc).Format(time.RFC3339),
			CheckOut:     checkOut,
			HoursWorked:  rec.HoursWorked,
			ExtraHours:   rec.ExtraHours,
		})
	}

	for _, l := range leaves {
		resp.Leaves = append(resp.Leaves, report.LeaveInMonth{
			LeaveID:     l.ID,
			LeaveType:   string(l.LeaveType),
			StartDate:   l.StartDate.Format(dateutil.DateLayout),
			EndDate:     l.EndDate.Format(dateutil.DateLayout),
			DaysInMonth: leaveService.OverlapDays(l.StartDate, l.EndDate, first, last),
		})
	}

	return resp, nil
}

// ExportMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.EmployeeRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	summaries := make([]report.MonthlySummary, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(exportConcurrency)
	for i, emp := range employees {
		g.Go(func() error {
			resp, err := s.summarizeEmployee(gCtx, emp.ID, req.Month, req.Year)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.EmployeeCode, err)
			}
			summaries[i] = resp.Summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return renderWorkbook(employees, summaries, req.Month, req.Year)
}

func renderWorkbook(employees []employee.Employee, summaries []report.MonthlySummary, month, year int) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	title := fmt.Sprintf("Attendance summary %04d-%02d", year, month)
	if err := f.SetCellValue(exportSheet, "A1", title); err != nil {
		return nil, err
	}

	header := []interface{}{
		"Employee Code", "Employee Name", "Total Days", "Present Days",
		"Absent Days", "Leave Days", "Payable Days", "Total Hours",
	}
	if err := f.SetSheetRow(exportSheet, "A2", &header); err != nil {
		return nil, err
	}

	for i, emp := range employees {
		sum := summaries[i]
		cell, err := excelize.CoordinatesToCellName(1, i+3)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			emp.EmployeeCode, emp.FullName, sum.TotalDays, sum.PresentDays,
			sum.AbsentDays, sum.LeaveDays, sum.PayableDays, sum.TotalHours,
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

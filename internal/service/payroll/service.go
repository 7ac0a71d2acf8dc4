package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
)

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	employee.EmployeeRepository
	summarizer report.MonthlySummarizer
	clock      policy.Clock
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	summarizer report.MonthlySummarizer,
	clock policy.Clock,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:  payrollRepo,
		EmployeeRepository: employeeRepo,
		summarizer:         summarizer,
		clock:              clock,
	}
}

func (s *PayrollServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (s *PayrollServiceImpl) getRecord(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	record, err := s.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordNotFound) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	return record, nil
}

// ========== PAYROLL RUN ==========

// RunAttendanceBasedPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) RunAttendanceBasedPayroll(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	monthly, err := s.summarizer.GetMonthlySummary(ctx, report.MonthlySummaryRequest{
		EmployeeID: emp.ID,
		Month:      req.Month,
		Year:       req.Year,
	})
	if err != nil {
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to summarize attendance: %w", err)
	}
	summary := monthly.Summary

	breakdown, err := AttendanceBasedSalary(emp.AnnualSalary, summary.PayableDays, summary.TotalDays, req.Allowances, req.Deductions, req.Bonus)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	return s.save(ctx, emp, payroll.PayrollRecord{
		EmployeeID:  emp.ID,
		Month:       req.Month,
		Year:        req.Year,
		Mode:        payroll.ModeAttendance,
		PayableDays: summary.PayableDays,
		TotalDays:   summary.TotalDays,
		BaseSalary:  breakdown.BaseSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Bonus:       req.Bonus,
		TotalSalary: breakdown.Total,
		Status:      payroll.PayrollStatusPending,
	})
}

// RunFlatPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) RunFlatPayroll(ctx context.Context, req payroll.RunPayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	emp, err := s.getEmployee(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	breakdown := MonthlySalary(emp.AnnualSalary, req.Allowances, req.Deductions, req.Bonus)

	return s.save(ctx, emp, payroll.PayrollRecord{
		EmployeeID:  emp.ID,
		Month:       req.Month,
		Year:        req.Year,
		Mode:        payroll.ModeFlat,
		BaseSalary:  breakdown.BaseSalary,
		Allowances:  req.Allowances,
		Deductions:  req.Deductions,
		Bonus:       req.Bonus,
		TotalSalary: breakdown.Total,
		Status:      payroll.PayrollStatusPending,
	})
}

// save overwrites the employee's record for the period, so re-running a month is idempotent.
func (s *PayrollServiceImpl) save(ctx context.Context, emp employee.Employee, record payroll.PayrollRecord) (payroll.PayrollRecordResponse, error) {
	saved, err := s.PayrollRepository.Upsert(ctx, record)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid) {
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to save payroll record for employee %s: %w", emp.ID, err)
	}
	saved.EmployeeName = &emp.FullName
	saved.EmployeeCode = &emp.EmployeeCode

	return mapToRecordResponse(saved), nil
}

// ========== PAYROLL RECORDS ==========

// GetPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayroll(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	return mapToRecordResponse(record), nil
}

// ListPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayroll(ctx context.Context, filter payroll.PayrollFilter) (payroll.ListPayrollRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayrollRecordResponse{}, err
	}

	records, totalCount, err := s.PayrollRepository.List(ctx, filter)
	if err != nil {
		return payroll.ListPayrollRecordResponse{}, fmt.Errorf("failed to list payroll records: %w", err)
	}

	data := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, mapToRecordResponse(r))
	}

	return payroll.ListPayrollRecordResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(filter.Limit))),
	}, nil
}

// UpdatePayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) UpdatePayroll(ctx context.Context, req payroll.UpdatePayrollRequest) (payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	updated, err := s.PayrollRepository.Update(ctx, req.ID, func(record *payroll.PayrollRecord) error {
		if record.IsPaid() {
			return payroll.ErrPayrollRecordAlreadyPaid
		}

		if req.BaseSalary != nil {
			record.BaseSalary = *req.BaseSalary
		}
		if req.Allowances != nil {
			record.Allowances = *req.Allowances
		}
		if req.Deductions != nil {
			record.Deductions = *req.Deductions
		}
		if req.Bonus != nil {
			record.Bonus = *req.Bonus
		}

		if req.PaymentDate != nil && *req.PaymentDate != "" {
			// Validate already checked the format
			paid, _ := dateutil.ParseDate(*req.PaymentDate, time.UTC)
			record.PaymentDate = &paid
		}
		if req.Status != nil {
			record.Status = payroll.PayrollStatus(strings.ToLower(*req.Status))
			if record.IsPaid() && record.PaymentDate == nil {
				now := s.clock.Now()
				record.PaymentDate = &now
			}
		}

		record.Recompute()
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrPayrollRecordNotFound):
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordNotFound
		case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
			return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
		}
		return payroll.PayrollRecordResponse{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	return mapToRecordResponse(updated), nil
}

// SyncEmployeeSalary implements payroll.PayrollService.
func (s *PayrollServiceImpl) SyncEmployeeSalary(ctx context.Context, payrollID string) error {
	record, err := s.getRecord(ctx, payrollID)
	if err != nil {
		return err
	}

	annual := record.BaseSalary.Mul(monthsPerYear)
	if err := s.EmployeeRepository.UpdateAnnualSalary(ctx, record.EmployeeID, annual); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to sync employee salary: %w", err)
	}
	return nil
}

// GeneratePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GeneratePayslip(ctx context.Context, id string) ([]byte, error) {
	record, err := s.getRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	emp, err := s.getEmployee(ctx, record.EmployeeID)
	if err != nil {
		return nil, err
	}

	return RenderPayslip(record, emp)
}

func mapToRecordResponse(r payroll.PayrollRecord) payroll.PayrollRecordResponse {
	var paymentDate *string
	if r.PaymentDate != nil {
		s := r.PaymentDate.Format(dateutil.DateLayout)
		paymentDate = &s
	}

	return payroll.PayrollRecordResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		EmployeeCode: r.EmployeeCode,
		Month:        r.Month,
		Year:         r.Year,
		Mode:         string(r.Mode),
		PayableDays:  r.PayableDays,
		TotalDays:    r.TotalDays,
		BaseSalary:   r.BaseSalary,
		Allowances:   r.Allowances,
		Deductions:   r.Deductions,
		Bonus:        r.Bonus,
		TotalSalary:  r.TotalSalary,
		Status:       string(r.Status),
		PaymentDate:  paymentDate,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}
}

package report

import (
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE SUMMARY
// ========================================

type MonthlySummaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	badPeriod := validatePeriod(&errs, r.Month, r.Year)

	return periodError(errs, badPeriod)
}

// validatePeriod appends month/year errors and reports whether there were any.
func validatePeriod(errs *validator.ValidationErrors, month, year int) bool {
	bad := false
	if !validator.IsValidMonth(month) {
		errs.Add("month", "month must be between 1 and 12")
		bad = true
	}
	if !validator.IsValidYear(year) {
		errs.Add("year", fmt.Sprintf("year must be between %d and %d", validator.MinYear, validator.MaxYear))
		bad = true
	}
	return bad
}

// periodError keeps the field details reachable with errors.As and the
// sentinel reachable with errors.Is.
func periodError(errs validator.ValidationErrors, badPeriod bool) error {
	err := errs.Err()
	if err == nil || !badPeriod {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
}

// MonthlySummary is derived on demand and never stored.
// PayableDays = PresentDays + LeaveDays and is not capped at TotalDays.
type MonthlySummary struct {
	EmployeeID  string  `json:"employee_id"`
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	TotalDays   int     `json:"total_days"`
	PresentDays int     `json:"present_days"`
	AbsentDays  int     `json:"absent_days"`
	LeaveDays   int     `json:"leave_days"`
	PayableDays int     `json:"payable_days"`
	TotalHours  float64 `json:"total_hours"`
}

type DailyRecord struct {
	AttendanceID string   `json:"attendance_id"`
	Date         string   `json:"date"`
	Status       string   `json:"status"`
	CheckIn      string   `json:"check_in"`
	CheckOut     *string  `json:"check_out,omitempty"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	ExtraHours   *float64 `json:"extra_hours,omitempty"`
}

type LeaveInMonth struct {
	LeaveID     string `json:"leave_id"`
	LeaveType   string `json:"leave_type"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	DaysInMonth int    `json:"days_in_month"`
}

type MonthlySummaryResponse struct {
	Summary MonthlySummary `json:"summary"`
	Records []DailyRecord  `json:"records"`
	Leaves  []LeaveInMonth `json:"leaves"`
}

// ========================================
// MONTHLY REPORT EXPORT
// ========================================

type MonthlyReportRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	badPeriod := validatePeriod(&errs, r.Month, r.Year)
	return periodError(errs, badPeriod)
}

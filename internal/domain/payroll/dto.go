package payroll

import (
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYROLL RUN DTOs ==========

type RunPayrollRequest struct {
	EmployeeID string          `json:"employee_id"`
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Allowances decimal.Decimal `json:"allowances"`
	Deductions decimal.Decimal `json:"deductions"`
	Bonus      decimal.Decimal `json:"bonus"`

	// Mode is only read at the HTTP boundary to pick the run operation. Empty means attendance.
	Mode string `json:"mode,omitempty"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if !validator.IsValidMonth(r.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if !validator.IsValidYear(r.Year) {
		errs.Add("year", fmt.Sprintf("year must be between %d and %d", validator.MinYear, validator.MaxYear))
	}
	if r.Allowances.IsNegative() {
		errs.Add("allowances", "allowances must be non-negative")
	}
	if r.Deductions.IsNegative() {
		errs.Add("deductions", "deductions must be non-negative")
	}
	if r.Bonus.IsNegative() {
		errs.Add("bonus", "bonus must be non-negative")
	}

	return errs.Err()
}

// RunMode resolves Mode, defaulting to attendance-based proration.
func (r *RunPayrollRequest) RunMode() (Mode, error) {
	mode := strings.ToLower(strings.TrimSpace(r.Mode))
	if mode == "" {
		return ModeAttendance, nil
	}
	if !validator.IsInSlice(mode, ValidModes) {
		return "", ErrInvalidPayrollMode
	}
	return Mode(mode), nil
}

// ========== PAYROLL RECORD DTOs ==========

type UpdatePayrollRequest struct {
	ID          string           `json:"-"`
	BaseSalary  *decimal.Decimal `json:"base_salary,omitempty"`
	Allowances  *decimal.Decimal `json:"allowances,omitempty"`
	Deductions  *decimal.Decimal `json:"deductions,omitempty"`
	Bonus       *decimal.Decimal `json:"bonus,omitempty"`
	Status      *string          `json:"status,omitempty"`
	PaymentDate *string          `json:"payment_date,omitempty"` // YYYY-MM-DD
}

func (r *UpdatePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	for field, amount := range map[string]*decimal.Decimal{
		"base_salary": r.BaseSalary,
		"allowances":  r.Allowances,
		"deductions":  r.Deductions,
		"bonus":       r.Bonus,
	} {
		if amount != nil && amount.IsNegative() {
			errs.Add(field, field+" must be non-negative")
		}
	}

	if r.Status != nil && !validator.IsInSlice(strings.ToLower(*r.Status), ValidStatuses) {
		errs.Add("status", "status must be one of: "+strings.Join(ValidStatuses, ", "))
	}
	if r.PaymentDate != nil && *r.PaymentDate != "" {
		if _, valid := validator.IsValidDate(*r.PaymentDate); !valid {
			errs.Add("payment_date", "payment_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

// ChangesBaseSalary tells the handler whether SyncEmployeeSalary should follow.
func (r *UpdatePayrollRequest) ChangesBaseSalary() bool {
	return r.BaseSalary != nil
}

type PayrollRecordResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Mode         string          `json:"mode"`
	PayableDays  int             `json:"payable_days"`
	TotalDays    int             `json:"total_days"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	Allowances   decimal.Decimal `json:"allowances"`
	Deductions   decimal.Decimal `json:"deductions"`
	Bonus        decimal.Decimal `json:"bonus"`
	TotalSalary  decimal.Decimal `json:"total_salary"`
	Status       string          `json:"status"`
	PaymentDate  *string         `json:"payment_date,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type PayrollFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if f.Year != nil && !validator.IsValidYear(*f.Year) {
		errs.Add("year", fmt.Sprintf("year must be between %d and %d", validator.MinYear, validator.MaxYear))
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, ValidStatuses) {
		errs.Add("status", "status must be one of: "+strings.Join(ValidStatuses, ", "))
	}

	return errs.Err()
}

type ListPayrollRecordResponse struct {
	Data       []PayrollRecordResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

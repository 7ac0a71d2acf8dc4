package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode is the payout policy a record was computed under.
type Mode string

const (
	ModeAttendance Mode = "attendance"
	ModeFlat       Mode = "flat"
)

var ValidModes = []string{
	string(ModeAttendance),
	string(ModeFlat),
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusPending    PayrollStatus = "pending"
	PayrollStatusProcessing PayrollStatus = "processing"
	PayrollStatusPaid       PayrollStatus = "paid"
)

var ValidStatuses = []string{
	string(PayrollStatusPending),
	string(PayrollStatusProcessing),
	string(PayrollStatusPaid),
}

// PayrollRecord is the snapshot of one employee's pay for one month.
// (EmployeeID, Month, Year) is unique.
type PayrollRecord struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int
	Mode       Mode

	// Attendance inputs, zero for flat payroll
	PayableDays int
	TotalDays   int

	BaseSalary  decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	Bonus       decimal.Decimal
	TotalSalary decimal.Decimal

	Status      PayrollStatus
	PaymentDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

func (p PayrollRecord) IsPaid() bool {
	return p.Status == PayrollStatusPaid
}

// Recompute sets TotalSalary from the components. The result is not clamped.
func (p *PayrollRecord) Recompute() {
	p.TotalSalary = p.BaseSalary.Add(p.Allowances).Sub(p.Deductions).Add(p.Bonus)
}

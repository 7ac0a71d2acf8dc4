package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(12)

// Breakdown is the result of one salary computation.
type Breakdown struct {
	// MonthlyBase is annual / 12, unrounded.
	MonthlyBase decimal.Decimal
	// DailyRate is MonthlyBase / days in month, unrounded. Zero for flat salary.
	// Round to 2 places only for display.
	DailyRate  decimal.Decimal
	BaseSalary decimal.Decimal
	Total      decimal.Decimal
}

// MonthlySalary pays a flat twelfth of the annual salary. Nothing is rounded.
func MonthlySalary(annual, allowances, deductions, bonus decimal.Decimal) Breakdown {
	base := annual.Div(monthsPerYear)
	return Breakdown{
		MonthlyBase: base,
		BaseSalary:  base,
		Total:       base.Add(allowances).Sub(deductions).Add(bonus),
	}
}

// AttendanceBasedSalary prorates the monthly base by payable days. BaseSalary and Total are
// rounded to 2 places; Total may be negative when deductions exceed earnings.
func AttendanceBasedSalary(annual decimal.Decimal, payableDays, totalDays int, allowances, deductions, bonus decimal.Decimal) (Breakdown, error) {
	if totalDays <= 0 || payableDays < 0 {
		return Breakdown{}, payroll.ErrInvalidProrationInput
	}

	monthly := annual.Div(monthsPerYear)
	daily := monthly.Div(decimal.NewFromInt(int64(totalDays)))
	base := daily.Mul(decimal.NewFromInt(int64(payableDays))).Round(2)

	return Breakdown{
		MonthlyBase: monthly,
		DailyRate:   daily,
		BaseSalary:  base,
		Total:       base.Add(allowances).Sub(deductions).Add(bonus).Round(2),
	}, nil
}

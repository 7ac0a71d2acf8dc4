package payroll

import "errors"

var (
	ErrPayrollRecordNotFound    = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyPaid = errors.New("payroll record already paid, cannot modify")
	ErrInvalidProrationInput    = errors.New("payable days must be non-negative and days in month positive")
	ErrInvalidPayrollMode       = errors.New("invalid payroll mode")
)

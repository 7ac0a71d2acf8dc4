package payroll

import "context"

type PayrollService interface {
	// RunAttendanceBasedPayroll prorates the monthly base by the employee's payable days.
	RunAttendanceBasedPayroll(ctx context.Context, req RunPayrollRequest) (PayrollRecordResponse, error)
	// RunFlatPayroll pays annual salary / 12 regardless of attendance.
	RunFlatPayroll(ctx context.Context, req RunPayrollRequest) (PayrollRecordResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListPayroll(ctx context.Context, filter PayrollFilter) (ListPayrollRecordResponse, error)

	// UpdatePayroll edits a record and recomputes its total. It never touches the employee.
	UpdatePayroll(ctx context.Context, req UpdatePayrollRequest) (PayrollRecordResponse, error)
	// SyncEmployeeSalary copies the record's base salary back to the employee as BaseSalary × 12.
	SyncEmployeeSalary(ctx context.Context, payrollID string) error

	GeneratePayslip(ctx context.Context, id string) ([]byte, error)
}

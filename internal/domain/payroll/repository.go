package payroll

import "context"

type PayrollRepository interface {
	// Upsert writes the record for (EmployeeID, Month, Year), replacing an existing one.
	// An existing paid record is left untouched and ErrPayrollRecordAlreadyPaid is returned.
	Upsert(ctx context.Context, record PayrollRecord) (PayrollRecord, error)

	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, int64, error)

	// Update loads the record, lets apply mutate it and stores the result atomically.
	Update(ctx context.Context, id string, apply func(*PayrollRecord) error) (PayrollRecord, error)
}

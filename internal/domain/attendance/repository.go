package attendance

import (
	"context"
	"time"
)

// AttendanceReader is the read-only view used by aggregation and statistics.
type AttendanceReader interface {
	// ListByEmployeeAndRange returns the employee's records with from <= date <= to, oldest first.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// ListByDate returns every record on the given date.
	ListByDate(ctx context.Context, date time.Time) ([]Attendance, error)
}

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	AttendanceReader

	// Create inserts a new record. A second record for the same (employee, date)
	// fails with ErrAlreadyCheckedIn, which is what makes concurrent check-ins safe.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil, nil when the employee has no record on that date.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// CloseSession stamps check-out on a record that is still open.
	// It fails with ErrAlreadyCheckedOut when the record was closed in the meantime.
	CloseSession(ctx context.Context, id string, checkOut time.Time, hoursWorked, extraHours float64) (Attendance, error)

	// UpdateStatusNotes applies an administrative correction. Nil fields are left untouched.
	UpdateStatusNotes(ctx context.Context, id string, status *Status, notes *string) (Attendance, error)

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)
}

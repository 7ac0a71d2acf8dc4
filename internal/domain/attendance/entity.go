package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half-day"
)

var ValidStatuses = []string{
	string(StatusPresent),
	string(StatusAbsent),
	string(StatusLate),
	string(StatusHalfDay),
}

// CountsAsPresent reports whether the status is paid as a worked day.
// half-day counts as neither present nor absent.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// Attendance is one employee's record for one local calendar date.
type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	CheckIn     time.Time
	CheckOut    *time.Time
	Status      Status
	HoursWorked *float64
	ExtraHours  *float64
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName *string
}

// IsOpen reports whether the employee has checked in but not out.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

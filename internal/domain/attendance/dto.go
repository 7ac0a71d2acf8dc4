package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp,omitempty"` // RFC3339, admin only; defaults to the server clock

	At *time.Time `json:"-"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if at, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs.Add("timestamp", "timestamp must be an RFC3339 date-time")
		} else {
			r.At = &at
		}
	}

	return errs.Err()
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	Timestamp  *string `json:"timestamp,omitempty"` // RFC3339, admin only; defaults to the server clock

	At *time.Time `json:"-"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if at, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs.Add("timestamp", "timestamp must be an RFC3339 date-time")
		} else {
			r.At = &at
		}
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeName *string  `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	CheckIn      string   `json:"check_in"`
	CheckOut     *string  `json:"check_out,omitempty"`
	Status       string   `json:"status"`
	HoursWorked  *float64 `json:"hours_worked,omitempty"`
	ExtraHours   *float64 `json:"extra_hours,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type AttendanceFilter struct {
	// Search & Filter
	EmployeeID *string `json:"employee_id,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, check_in, check_out, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, ValidStatuses) {
			errs.Add("status", "status must be one of: "+strings.Join(ValidStatuses, ", "))
		}
	}

	if f.EmployeeID != nil && *f.EmployeeID != "" && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	// Date validation
	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if hasStart && hasEnd && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "check_in", "check_out", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs.Add("sort_by", "sort_by must be one of: date, check_in, check_out, status")
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs.Add("sort_order", "sort_order must be one of: asc, desc")
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	return errs.Err()
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// UpdateAttendanceRequest lets an admin correct a record's status or notes.
type UpdateAttendanceRequest struct {
	ID     string  `json:"-"`
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.Status == nil && r.Notes == nil {
		errs.Add("status", "at least one of status or notes must be provided")
	}

	if r.Status != nil && !validator.IsInSlice(strings.ToLower(*r.Status), ValidStatuses) {
		errs.Add("status", "status must be one of: "+strings.Join(ValidStatuses, ", "))
	}

	if r.Notes != nil && len(*r.Notes) > 1000 {
		errs.Add("notes", "notes must not exceed 1000 characters")
	}

	return errs.Err()
}

// ========================================
// ATTENDANCE STATUS DTOs
// ========================================

type AttendanceStatusResponse struct {
	Date            string              `json:"date"`
	HasCheckedIn    bool                `json:"has_checked_in"`
	TodayAttendance *AttendanceResponse `json:"today_attendance,omitempty"`
	CanCheckIn      bool                `json:"can_check_in"`
	CanCheckOut     bool                `json:"can_check_out"`
	Message         string              `json:"message"`
}

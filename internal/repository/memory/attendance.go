package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
)

type attendanceRepository struct {
	mu       sync.RWMutex
	records  map[string]attendance.Attendance
	byDayKey map[string]string
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{
		records:  make(map[string]attendance.Attendance),
		byDayKey: make(map[string]string),
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(dateutil.DateLayout)
}

// inRange reports from <= date <= to at calendar-date granularity.
func inRange(date, from, to time.Time) bool {
	return dateutil.DaysBetween(from, date) >= 0 && dateutil.DaysBetween(date, to) >= 0
}

func sortByDate(records []attendance.Attendance) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].EmployeeID < records[j].EmployeeID
	})
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := dayKey(att.EmployeeID, att.Date)
	if _, exists := r.byDayKey[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}

	att.ID = newID()
	att.CreatedAt = now()
	att.UpdatedAt = att.CreatedAt

	r.records[att.ID] = att
	r.byDayKey[key] = att.ID
	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	att, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byDayKey[dayKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	att := r.records[id]
	return &att, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut time.Time, hoursWorked, extraHours float64) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if !att.IsOpen() {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	att.CheckOut = &checkOut
	att.HoursWorked = &hoursWorked
	att.ExtraHours = &extraHours
	att.UpdatedAt = now()

	r.records[id] = att
	return att, nil
}

// UpdateStatusNotes implements attendance.AttendanceRepository.
func (r *attendanceRepository) UpdateStatusNotes(ctx context.Context, id string, status *attendance.Status, notes *string) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	att, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	if status != nil {
		att.Status = *status
	}
	if notes != nil {
		att.Notes = *notes
	}
	att.UpdatedAt = now()

	r.records[id] = att
	return att, nil
}

// ListByEmployeeAndRange implements attendance.AttendanceReader.
func (r *attendanceRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.Attendance
	for _, att := range r.records {
		if att.EmployeeID == employeeID && inRange(att.Date, from, to) {
			result = append(result, att)
		}
	}
	sortByDate(result)
	return result, nil
}

// ListByDate implements attendance.AttendanceReader.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.Attendance
	for _, att := range r.records {
		if dateutil.SameDate(att.Date, date) {
			result = append(result, att)
		}
	}
	sortByDate(result)
	return result, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	parse := func(s *string) (time.Time, bool) {
		if s == nil || *s == "" {
			return time.Time{}, false
		}
		t, ok := parseDate(*s)
		return t, ok
	}
	date, hasDate := parse(filter.Date)
	start, hasStart := parse(filter.StartDate)
	end, hasEnd := parse(filter.EndDate)

	var matched []attendance.Attendance
	for _, att := range r.records {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && att.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(att.Status) != *filter.Status {
			continue
		}
		if hasDate && !dateutil.SameDate(att.Date, date) {
			continue
		}
		if hasStart && dateutil.DaysBetween(start, att.Date) < 0 {
			continue
		}
		if hasEnd && dateutil.DaysBetween(att.Date, end) < 0 {
			continue
		}
		matched = append(matched, att)
	}

	less := func(i, j int) bool {
		a, b := matched[i], matched[j]
		switch filter.SortBy {
		case "check_in":
			return a.CheckIn.Before(b.CheckIn)
		case "check_out":
			return timeOrZero(a.CheckOut).Before(timeOrZero(b.CheckOut))
		case "status":
			return a.Status < b.Status
		default:
			return a.Date.Before(b.Date)
		}
	}
	if strings.ToLower(filter.SortOrder) == "asc" {
		sort.SliceStable(matched, less)
	} else {
		sort.SliceStable(matched, func(i, j int) bool { return less(j, i) })
	}

	startIdx, endIdx := paginate(len(matched), filter.Page, filter.Limit)
	return matched[startIdx:endIdx], int64(len(matched)), nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func parseDate(s string) (time.Time, bool) {
	t, err := dateutil.ParseDate(s, time.UTC)
	return t, err == nil
}

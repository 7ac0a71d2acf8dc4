package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

type payrollRepository struct {
	mu        sync.RWMutex
	records   map[string]payroll.PayrollRecord
	byPeriod  map[periodKey]string
	employees employee.EmployeeRepository
}

type periodKey struct {
	employeeID string
	month      int
	year       int
}

// NewPayrollRepository joins employee name and code from employees on reads.
func NewPayrollRepository(employees employee.EmployeeRepository) payroll.PayrollRepository {
	return &payrollRepository{
		records:   make(map[string]payroll.PayrollRecord),
		byPeriod:  make(map[periodKey]string),
		employees: employees,
	}
}

func (r *payrollRepository) join(ctx context.Context, record payroll.PayrollRecord) payroll.PayrollRecord {
	if r.employees == nil {
		return record
	}
	if emp, err := r.employees.GetByID(ctx, record.EmployeeID); err == nil {
		record.EmployeeName = &emp.FullName
		record.EmployeeCode = &emp.EmployeeCode
	}
	return record
}

// Upsert implements payroll.PayrollRepository.
func (r *payrollRepository) Upsert(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := periodKey{record.EmployeeID, record.Month, record.Year}
	ts := now()

	if id, exists := r.byPeriod[key]; exists {
		existing := r.records[id]
		if existing.IsPaid() {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordAlreadyPaid
		}
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	} else {
		record.ID = newID()
		record.CreatedAt = ts
	}
	record.UpdatedAt = ts
	record.EmployeeName = nil
	record.EmployeeCode = nil

	r.records[record.ID] = record
	r.byPeriod[key] = record.ID
	return r.join(ctx, record), nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	record, ok := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.join(ctx, record), nil
}

// GetByEmployeePeriod implements payroll.PayrollRepository.
func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.PayrollRecord, error) {
	r.mu.RLock()
	id, ok := r.byPeriod[periodKey{employeeID, month, year}]
	record := r.records[id]
	r.mu.RUnlock()

	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r.join(ctx, record), nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, int64, error) {
	r.mu.RLock()
	var matched []payroll.PayrollRecord
	for _, rec := range r.records {
		if filter.EmployeeID != nil && *filter.EmployeeID != "" && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Month != nil && rec.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && rec.Year != *filter.Year {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(rec.Status) != *filter.Status {
			continue
		}
		matched = append(matched, rec)
	}
	r.mu.RUnlock()

	// latest period first
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		if a.Month != b.Month {
			return a.Month > b.Month
		}
		return a.EmployeeID < b.EmployeeID
	})

	start, end := paginate(len(matched), filter.Page, filter.Limit)
	page := matched[start:end]
	for i := range page {
		page[i] = r.join(ctx, page[i])
	}
	return page, int64(len(matched)), nil
}

// Update implements payroll.PayrollRepository.
func (r *payrollRepository) Update(ctx context.Context, id string, apply func(*payroll.PayrollRecord) error) (payroll.PayrollRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}

	if err := apply(&record); err != nil {
		return payroll.PayrollRecord{}, err
	}

	// identity and period are not editable
	stored := r.records[id]
	record.ID = stored.ID
	record.EmployeeID = stored.EmployeeID
	record.Month = stored.Month
	record.Year = stored.Year
	record.CreatedAt = stored.CreatedAt
	record.UpdatedAt = now()
	record.EmployeeName = nil
	record.EmployeeCode = nil

	r.records[id] = record
	return r.join(ctx, record), nil
}

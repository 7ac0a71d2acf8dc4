package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type employeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepository{employees: make(map[string]employee.Employee)}
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var active []employee.Employee
	for _, emp := range r.employees {
		if emp.IsActive() {
			active = append(active, emp)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].EmployeeCode < active[j].EmployeeCode
	})
	return active, nil
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepository) CountActive(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, emp := range r.employees {
		if emp.IsActive() {
			count++
		}
	}
	return count, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	if newEmployee.AnnualSalary.IsNegative() {
		return employee.Employee{}, employee.ErrNegativeSalary
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, emp := range r.employees {
		if emp.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}

	if newEmployee.ID == "" {
		newEmployee.ID = newID()
	}
	if newEmployee.Status == "" {
		newEmployee.Status = employee.EmploymentStatusActive
	}
	newEmployee.CreatedAt = now()
	newEmployee.UpdatedAt = newEmployee.CreatedAt

	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

// UpdateAnnualSalary implements employee.EmployeeRepository.
func (r *employeeRepository) UpdateAnnualSalary(ctx context.Context, id string, annualSalary decimal.Decimal) error {
	if annualSalary.IsNegative() {
		return employee.ErrNegativeSalary
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.AnnualSalary = annualSalary
	emp.UpdatedAt = now()
	r.employees[id] = emp
	return nil
}

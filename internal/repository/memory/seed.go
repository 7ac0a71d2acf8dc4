package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type seedEmployee struct {
	ID           string   `yaml:"id"`
	EmployeeCode string   `yaml:"employee_code"`
	FullName     string   `yaml:"full_name"`
	Status       string   `yaml:"status"`
	AnnualSalary string   `yaml:"annual_salary"`
	ShiftHours   *float64 `yaml:"shift_hours"`
}

type seedFile struct {
	Employees []seedEmployee `yaml:"employees"`
}

// ParseEmployeeSeed decodes a YAML document of the form
//
//	employees:
//	  - employee_code: EMP-001
//	    full_name: Ana Putri
//	    annual_salary: "120000000"
func ParseEmployeeSeed(raw []byte) ([]employee.Employee, error) {
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", employee.ErrInvalidEmployeeData, err)
	}

	employees := make([]employee.Employee, 0, len(doc.Employees))
	for i, e := range doc.Employees {
		if e.EmployeeCode == "" || e.FullName == "" {
			return nil, fmt.Errorf("%w: entry %d needs employee_code and full_name", employee.ErrInvalidEmployeeData, i)
		}

		salary := decimal.Zero
		if e.AnnualSalary != "" {
			parsed, err := decimal.NewFromString(e.AnnualSalary)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d annual_salary: %w", employee.ErrInvalidEmployeeData, i, err)
			}
			salary = parsed
		}

		status := employee.EmploymentStatus(e.Status)
		switch status {
		case "":
			status = employee.EmploymentStatusActive
		case employee.EmploymentStatusActive, employee.EmploymentStatusInactive:
		default:
			return nil, fmt.Errorf("%w: entry %d status %q", employee.ErrInvalidEmployeeData, i, e.Status)
		}

		employees = append(employees, employee.Employee{
			ID:           e.ID,
			EmployeeCode: e.EmployeeCode,
			FullName:     e.FullName,
			Status:       status,
			AnnualSalary: salary,
			ShiftHours:   e.ShiftHours,
		})
	}
	return employees, nil
}

// SeedEmployees loads the YAML file at path into repo and returns how many were created.
// Employees whose code already exists are skipped.
func SeedEmployees(ctx context.Context, repo employee.EmployeeRepository, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read seed file: %w", err)
	}

	employees, err := ParseEmployeeSeed(raw)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, emp := range employees {
		if _, err := repo.Create(ctx, emp); err != nil {
			if errors.Is(err, employee.ErrEmployeeCodeExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed employee %s: %w", emp.EmployeeCode, err)
		}
		created++
	}
	return created, nil
}

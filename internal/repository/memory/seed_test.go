package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedYAML = `
employees:
  - employee_code: EMP-001
    full_name: Ana Putri
    annual_salary: "120000000"
    shift_hours: 8
  - employee_code: EMP-002
    full_name: Budi Santoso
    status: inactive
`

func TestParseEmployeeSeed(t *testing.T) {
	employees, err := ParseEmployeeSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.Len(t, employees, 2)

	assert.Equal(t, "EMP-001", employees[0].EmployeeCode)
	assert.True(t, employees[0].AnnualSalary.Equal(decimal.NewFromInt(120000000)))
	assert.Equal(t, employee.EmploymentStatusActive, employees[0].Status)
	require.NotNil(t, employees[0].ShiftHours)
	assert.Equal(t, 8.0, *employees[0].ShiftHours)

	assert.Equal(t, employee.EmploymentStatusInactive, employees[1].Status)
	assert.True(t, employees[1].AnnualSalary.IsZero())
}

func TestParseEmployeeSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing name", "employees:\n  - employee_code: EMP-001\n"},
		{"bad salary", "employees:\n  - employee_code: EMP-001\n    full_name: A\n    annual_salary: lots\n"},
		{"bad status", "employees:\n  - employee_code: EMP-001\n    full_name: A\n    status: retired\n"},
		{"not yaml", "employees: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEmployeeSeed([]byte(tt.raw))
			assert.ErrorIs(t, err, employee.ErrInvalidEmployeeData)
		})
	}
}

func TestSeedEmployees_SkipsExistingCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	ctx := context.Background()
	repo := NewEmployeeRepository()

	created, err := SeedEmployees(ctx, repo, path)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = SeedEmployees(ctx, repo, path)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	count, err := repo.CountActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeRepository is the read model of employees plus the single write the payroll
// sync needs. Employee CRUD lives in another system.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	CountActive(ctx context.Context) (int, error)

	// Create is used to seed local and test data.
	Create(ctx context.Context, newEmployee Employee) (Employee, error)

	UpdateAnnualSalary(ctx context.Context, id string, annualSalary decimal.Decimal) error
}

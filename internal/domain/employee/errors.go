package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrNegativeSalary      = errors.New("annual salary must not be negative")
	ErrInvalidEmployeeData = errors.New("invalid employee data")
)

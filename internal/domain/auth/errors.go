package auth

import "errors"

var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrEmployeeClaimRequired  = errors.New("token is not linked to an employee")
	ErrForbiddenEmployee      = errors.New("cannot access another employee's records")
	ErrTimestampForbidden     = errors.New("only admins can set the attendance timestamp")
)

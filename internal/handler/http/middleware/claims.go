package middleware

import (
	"context"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the subset of the access token handlers act on.
type Claims struct {
	UserID     string
	EmployeeID string
	Role       string
}

func (c Claims) IsAdmin() bool {
	return c.Role == jwt.RoleAdmin
}

// CanAccessEmployee reports whether the caller may read or act on employeeID's records.
func (c Claims) CanAccessEmployee(employeeID string) bool {
	return c.IsAdmin() || (c.EmployeeID != "" && c.EmployeeID == employeeID)
}

// ResolveEmployeeID picks the employee a request acts on. Admins may name any
// employee; everyone else is bound to the employee_id claim.
func (c Claims) ResolveEmployeeID(requested string) (string, error) {
	if requested == "" {
		if c.EmployeeID == "" {
			return "", auth.ErrEmployeeClaimRequired
		}
		return c.EmployeeID, nil
	}
	if !c.CanAccessEmployee(requested) {
		return "", auth.ErrForbiddenEmployee
	}
	return requested, nil
}

func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil || raw == nil {
		return Claims{}, auth.ErrInvalidToken
	}

	var claims Claims
	claims.UserID, _ = raw["user_id"].(string)
	claims.EmployeeID, _ = raw["employee_id"].(string)
	claims.Role, _ = raw["role"].(string)

	if claims.UserID == "" {
		return Claims{}, auth.ErrInvalidToken
	}
	return claims, nil
}

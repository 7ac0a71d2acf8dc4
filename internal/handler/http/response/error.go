package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	isValidation := errors.As(err, &validationErrs)

	// Period errors wrap the field errors that caused them
	if errors.Is(err, report.ErrInvalidPeriod) {
		var details map[string]string
		if isValidation {
			details = validationErrs.ToMap()
		}
		Fail(w, http.StatusBadRequest, "INVALID_PERIOD", report.ErrInvalidPeriod.Error(), details)
		return
	}

	if isValidation {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAdminPrivilegeRequired),
		errors.Is(err, auth.ErrEmployeeClaimRequired),
		errors.Is(err, auth.ErrForbiddenEmployee),
		errors.Is(err, auth.ErrTimestampForbidden):
		Forbidden(w, err.Error())

	// Input errors
	case errors.Is(err, payroll.ErrInvalidProrationInput):
		Fail(w, http.StatusBadRequest, "INVALID_PRORATION_INPUT", err.Error(), nil)
	case errors.Is(err, payroll.ErrInvalidPayrollMode):
		Fail(w, http.StatusBadRequest, "INVALID_PAYROLL_MODE", err.Error(), nil)
	case errors.Is(err, employee.ErrNegativeSalary):
		Fail(w, http.StatusBadRequest, "NEGATIVE_SALARY", err.Error(), nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Fail(w, http.StatusConflict, "EMPLOYEE_CODE_EXISTS", err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Fail(w, http.StatusConflict, "ALREADY_CHECKED_IN", err.Error(), nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Fail(w, http.StatusConflict, "ALREADY_CHECKED_OUT", err.Error(), nil)
	case errors.Is(err, attendance.ErrNoCheckInFound):
		Fail(w, http.StatusConflict, "NO_CHECK_IN", err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Fail(w, http.StatusConflict, "LEAVE_ALREADY_PROCESSED", err.Error(), nil)
	case errors.Is(err, leave.ErrLeaveCannotDelete):
		Fail(w, http.StatusConflict, "LEAVE_CANNOT_DELETE", err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Fail(w, http.StatusConflict, "PAYROLL_ALREADY_PAID", err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}

package response

import (
	"errors"
	"net/http"

	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
	"github.com/kazipay/payroll-backend-go/internal/domain/user"
	"github.com/kazipay/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, "HR access required")
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoEmployeesSelected):
		BadRequest(w, "No employees selected for payroll run", nil)
	case errors.Is(err, payroll.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrComputation):
		InternalServerError(w, "Payroll computation failed")
	case errors.Is(err, payroll.ErrPersistence):
		InternalServerError(w, "Payroll could not be saved")

	// Statutory domain errors
	case errors.Is(err, statutory.ErrRatesNotFound):
		NotFound(w, "Statutory rate table not found")
	case errors.Is(err, statutory.ErrRatesVersionExists):
		Conflict(w, "Statutory rate table version already exists")
	case errors.Is(err, statutory.ErrMissingEffectiveDate),
		errors.Is(err, statutory.ErrEmptyBracketTable),
		errors.Is(err, statutory.ErrEmptyTierTable),
		errors.Is(err, statutory.ErrBracketOrder),
		errors.Is(err, statutory.ErrBracketGap),
		errors.Is(err, statutory.ErrBoundedLastBracket),
		errors.Is(err, statutory.ErrUnboundedInnerBracket),
		errors.Is(err, statutory.ErrDecreasingRates),
		errors.Is(err, statutory.ErrInvalidRate),
		errors.Is(err, statutory.ErrNegativeAmount),
		errors.Is(err, statutory.ErrInvalidExemptShare):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

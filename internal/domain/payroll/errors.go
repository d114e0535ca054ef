package payroll

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid payroll input")
	ErrNegativeGrossPay    = errors.New("gross pay must be non-negative")
	ErrNoEmployeesSelected = errors.New("no employees selected for payroll run")
	ErrPeriodNotFound      = errors.New("payroll period not found")
	ErrRecordNotFound      = errors.New("payroll record not found")
	ErrComputation         = errors.New("payroll computation failed")
	ErrPersistence         = errors.New("payroll persistence failed")
)

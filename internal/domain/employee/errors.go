package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidContractType = errors.New("invalid contract type")
	ErrNegativeBasicSalary = errors.New("basic salary must be non-negative")
)

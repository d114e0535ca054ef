package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractType string

const (
	ContractTypePermanent ContractType = "permanent"
	ContractTypeContract  ContractType = "contract"
	ContractTypeCasual    ContractType = "casual"
	ContractTypeIntern    ContractType = "intern"
)

func IsValidContractType(t ContractType) bool {
	switch t {
	case ContractTypePermanent, ContractTypeContract, ContractTypeCasual, ContractTypeIntern:
		return true
	}
	return false
}

type EmploymentStatus string

const (
	EmploymentStatusActive     EmploymentStatus = "active"
	EmploymentStatusInactive   EmploymentStatus = "inactive"
	EmploymentStatusTerminated EmploymentStatus = "terminated"
)

// PayComponent is a recurring allowance or deduction attached to an employee.
// Deduction components are non-statutory (loan repayments, welfare, sacco).
type PayComponent struct {
	ID         string
	EmployeeID string
	Name       string
	Amount     decimal.Decimal
	IsActive   bool
}

type Employee struct {
	ID               string
	CompanyID        string
	EmployeeNumber   string
	FirstName        string
	LastName         string
	KRAPin           *string
	ContractType     ContractType
	EmploymentStatus EmploymentStatus
	BasicSalary      decimal.Decimal
	HireDate         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Loaded by the active-components aggregate read
	Allowances []PayComponent
	Deductions []PayComponent
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// ActiveAllowanceTotal sums active allowance components.
func (e Employee) ActiveAllowanceTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range e.Allowances {
		if a.IsActive {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// ActiveDeductionTotal sums active non-statutory deduction components.
func (e Employee) ActiveDeductionTotal() decimal.Decimal {
	total := decimal.Zero
	for _, d := range e.Deductions {
		if d.IsActive {
			total = total.Add(d.Amount)
		}
	}
	return total
}

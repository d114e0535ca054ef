package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodStatus enum
type PeriodStatus string

const (
	PeriodStatusPending    PeriodStatus = "pending"
	PeriodStatusProcessing PeriodStatus = "processing"
	PeriodStatusCompleted  PeriodStatus = "completed"
)

// PayrollPeriod - one payroll cycle for a company. The natural key is
// (CompanyID, StartDate, EndDate); re-processing the same natural period
// creates a second row with a disambiguated name rather than overwriting.
type PayrollPeriod struct {
	ID         string
	CompanyID  string
	PeriodName string
	StartDate  time.Time
	EndDate    time.Time
	PayDate    time.Time
	Status     PeriodStatus
	CreatedBy  string
	CreatedAt  time.Time
}

// DeductionSet holds the statutory withholdings computed for one gross pay.
type DeductionSet struct {
	TaxableIncome  decimal.Decimal
	PAYE           decimal.Decimal
	SocialSecurity decimal.Decimal
	HealthLevy     decimal.Decimal
	HousingLevy    decimal.Decimal
}

// Total sums the statutory deductions. Taxable income is informational and
// not part of the sum.
func (d DeductionSet) Total() decimal.Decimal {
	return d.PAYE.Add(d.SocialSecurity).Add(d.HealthLevy).Add(d.HousingLevy)
}

// PayrollRecord - one employee's computed pay for one period. Immutable once
// persisted except by explicit deletion.
type PayrollRecord struct {
	ID              string
	EmployeeID      string
	PayrollPeriodID string
	CompanyID       string

	BasicSalary     decimal.Decimal
	GrossPay        decimal.Decimal
	TaxableIncome   decimal.Decimal
	PAYETax         decimal.Decimal
	SocialSecurity  decimal.Decimal
	HealthLevy      decimal.Decimal
	HousingLevy     decimal.Decimal
	TotalAllowances decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPay          decimal.Decimal

	DaysWorked     int
	OvertimeHours  decimal.Decimal
	OvertimeAmount decimal.Decimal

	CreatedAt time.Time

	// Joined fields
	EmployeeName   *string
	EmployeeNumber *string
}

// StatutoryTotal sums the statutory withholdings on the record.
func (r PayrollRecord) StatutoryTotal() decimal.Decimal {
	return r.PAYETax.Add(r.SocialSecurity).Add(r.HealthLevy).Add(r.HousingLevy)
}

// PeriodSummary - period row joined with record aggregates for listings.
type PeriodSummary struct {
	PayrollPeriod
	CreatedByName *string
	EmployeeCount int64
	TotalNetPay   decimal.Decimal
}

// PeriodStat - duplicate bookkeeping per period for the cleanup screen.
type PeriodStat struct {
	PeriodID        string
	PeriodName      string
	TotalRecords    int64
	UniqueEmployees int64
	DuplicateCount  int64
}

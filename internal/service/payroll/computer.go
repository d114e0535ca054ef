package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	domainStatutory "github.com/kazipay/payroll-backend-go/internal/domain/statutory"
	statutoryCalc "github.com/kazipay/payroll-backend-go/internal/service/statutory"
)

// defaultDaysWorked is assumed when the caller does not supply attendance
// figures; the quick-processing path always does this.
const defaultDaysWorked = 30

// PeriodContext carries the per-run figures that are not part of the
// employee record. Zero values mean "unspecified": days worked defaults,
// overtime stays zero.
type PeriodContext struct {
	DaysWorked    int
	OvertimeHours decimal.Decimal
	OvertimeRate  decimal.Decimal
}

// ComputeEmployeePayroll assembles one employee's full payroll record
// against a rates snapshot. Pure: no persistence, no I/O. A negative net
// pay is not clamped here; the record is produced and the batch processor
// flags the period for review.
func ComputeEmployeePayroll(emp employee.Employee, pctx PeriodContext, rates domainStatutory.Rates) (payroll.PayrollRecord, error) {
	if emp.BasicSalary.IsNegative() {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: employee %s: %s",
			payroll.ErrInvalidInput, emp.ID, employee.ErrNegativeBasicSalary)
	}
	if !employee.IsValidContractType(emp.ContractType) {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: employee %s: %s (%q)",
			payroll.ErrInvalidInput, emp.ID, employee.ErrInvalidContractType, emp.ContractType)
	}

	daysWorked := pctx.DaysWorked
	if daysWorked <= 0 {
		daysWorked = defaultDaysWorked
	}

	totalAllowances := emp.ActiveAllowanceTotal()
	overtimeAmount := pctx.OvertimeHours.Mul(pctx.OvertimeRate).Round(2)
	grossPay := emp.BasicSalary.Add(totalAllowances).Add(overtimeAmount)

	deductions, err := statutoryCalc.ComputeDeductions(grossPay, emp.ContractType, rates)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("%w: employee %s: %s",
			payroll.ErrComputation, emp.ID, err)
	}

	// Non-statutory deductions (loans, sacco, welfare) stay separate from
	// the statutory set in the output schema.
	totalDeductions := emp.ActiveDeductionTotal()

	record := payroll.PayrollRecord{
		EmployeeID:      emp.ID,
		CompanyID:       emp.CompanyID,
		BasicSalary:     emp.BasicSalary,
		GrossPay:        grossPay,
		TaxableIncome:   deductions.TaxableIncome,
		PAYETax:         deductions.PAYE,
		SocialSecurity:  deductions.SocialSecurity,
		HealthLevy:      deductions.HealthLevy,
		HousingLevy:     deductions.HousingLevy,
		TotalAllowances: totalAllowances,
		TotalDeductions: totalDeductions,
		DaysWorked:      daysWorked,
		OvertimeHours:   pctx.OvertimeHours,
		OvertimeAmount:  overtimeAmount,
	}
	record.NetPay = grossPay.
		Sub(record.StatutoryTotal()).
		Sub(totalDeductions)

	return record, nil
}

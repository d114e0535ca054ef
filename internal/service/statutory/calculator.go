package statutory

import (
	"github.com/shopspring/decimal"
	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
)

// Calculator turns gross pay into statutory withholdings against one Rates
// snapshot. Every function is pure and deterministic: same inputs, same
// outputs, no I/O.
//
// Rounding contract: each component is computed at full precision and
// rounded to 2 decimal places exactly once, at the end. decimal.Round
// rounds half away from zero, which for the non-negative amounts here is
// round-half-up.

// bracketTax walks the ordered bracket table at full precision. The portion
// of taxable income inside each bracket is min(taxable, upper) - lower,
// clipped at zero, so income exactly on a boundary lands in the lower
// bracket and is never counted twice.
func bracketTax(taxable decimal.Decimal, brackets []statutory.TaxBracket) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range brackets {
		upper := taxable
		if b.Upper != nil && b.Upper.LessThan(taxable) {
			upper = *b.Upper
		}
		slice := upper.Sub(b.Lower)
		if slice.IsPositive() {
			tax = tax.Add(slice.Mul(b.Rate))
		}
	}
	return tax
}

// PAYE computes progressive income tax on taxable income, less personal
// relief. Relief cannot produce a refund: the result floors at zero.
func PAYE(taxable decimal.Decimal, rates statutory.Rates) decimal.Decimal {
	tax := bracketTax(taxable, rates.Brackets).Sub(rates.PersonalRelief)
	if tax.IsNegative() {
		tax = decimal.Zero
	}
	return tax.Round(2)
}

// SocialSecurity computes the tiered contribution on gross pay, capped at
// the scheme maximum.
func SocialSecurity(gross decimal.Decimal, rates statutory.Rates) decimal.Decimal {
	contribution := decimal.Zero
	for _, tier := range rates.SocialSecurityTiers {
		upper := gross
		if tier.Upper != nil && tier.Upper.LessThan(gross) {
			upper = *tier.Upper
		}
		slice := upper.Sub(tier.Lower)
		if slice.IsPositive() {
			contribution = contribution.Add(slice.Mul(tier.Rate))
		}
	}
	if contribution.GreaterThan(rates.SocialSecurityMax) {
		contribution = rates.SocialSecurityMax
	}
	return contribution.Round(2)
}

// HealthLevy computes the flat-rate health-insurance contribution, subject
// to the table's minimum when gross pay is positive.
func HealthLevy(gross decimal.Decimal, rates statutory.Rates) decimal.Decimal {
	if !gross.IsPositive() {
		return decimal.Zero
	}
	levy := gross.Mul(rates.HealthLevyRate)
	if levy.LessThan(rates.HealthLevyMin) {
		levy = rates.HealthLevyMin
	}
	return levy.Round(2)
}

// HousingLevy computes the flat-rate housing contribution.
func HousingLevy(gross decimal.Decimal, rates statutory.Rates) decimal.Decimal {
	return gross.Mul(rates.HousingLevyRate).Round(2)
}

// TaxableIncome derives the PAYE base: gross pay less the deductible
// social-security contribution, scaled down by the contract type's exempt
// share. Floors at zero.
func TaxableIncome(gross, socialSecurity decimal.Decimal, contractType employee.ContractType, rates statutory.Rates) decimal.Decimal {
	taxable := gross.Sub(socialSecurity)
	exempt := rates.ExemptShareFor(contractType)
	if exempt.IsPositive() {
		taxable = taxable.Mul(decimal.NewFromInt(1).Sub(exempt))
	}
	if taxable.IsNegative() {
		return decimal.Zero
	}
	return taxable
}

// ComputeDeductions computes the full statutory deduction set for one gross
// pay figure. Zero gross pay yields all-zero deductions; negative gross pay
// is a contract violation.
func ComputeDeductions(gross decimal.Decimal, contractType employee.ContractType, rates statutory.Rates) (payroll.DeductionSet, error) {
	if gross.IsNegative() {
		return payroll.DeductionSet{}, payroll.ErrNegativeGrossPay
	}
	if gross.IsZero() {
		return payroll.DeductionSet{
			TaxableIncome:  decimal.Zero,
			PAYE:           decimal.Zero,
			SocialSecurity: decimal.Zero,
			HealthLevy:     decimal.Zero,
			HousingLevy:    decimal.Zero,
		}, nil
	}

	socialSecurity := SocialSecurity(gross, rates)
	taxable := TaxableIncome(gross, socialSecurity, contractType, rates)

	return payroll.DeductionSet{
		TaxableIncome:  taxable.Round(2),
		PAYE:           PAYE(taxable, rates),
		SocialSecurity: socialSecurity,
		HealthLevy:     HealthLevy(gross, rates),
		HousingLevy:    HousingLevy(gross, rates),
	}, nil
}

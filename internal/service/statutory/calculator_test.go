package statutory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "expected %s, got %s", expected, actual.String())
}

// ===== BRACKET TAX =====

func TestBracketTax_BoundaryStaysInLowerBracket(t *testing.T) {
	rates := statutory.DefaultRates()

	// Income exactly on the first boundary is taxed entirely at the first rate.
	assertDecimalEqual(t, "2400", bracketTax(d("24000"), rates.Brackets))

	// One shilling over picks up the second rate for that shilling only.
	assertDecimalEqual(t, "2400.25", bracketTax(d("24001"), rates.Brackets))
}

func TestBracketTax_WalksAllBrackets(t *testing.T) {
	rates := statutory.DefaultRates()

	// 48920 = 24000@10% + 8333@25% + 16587@30%
	assertDecimalEqual(t, "9459.35", bracketTax(d("48920"), rates.Brackets))
}

func TestBracketTax_TopBracketUnbounded(t *testing.T) {
	rates := statutory.DefaultRates()

	// 1000000 = 24000@10% + 8333@25% + 467667@30% + 300000@32.5% + 200000@35%
	expected := d("2400").Add(d("2083.25")).Add(d("140300.10")).Add(d("97500")).Add(d("70000"))
	assertDecimalEqual(t, expected.String(), bracketTax(d("1000000"), rates.Brackets))
}

// ===== PAYE =====

func TestPAYE_ReliefFloorsAtZero(t *testing.T) {
	rates := statutory.DefaultRates()

	// Tax on 24000 is exactly the personal relief.
	assertDecimalEqual(t, "0", PAYE(d("24000"), rates))

	// Below that, relief exceeds tax but never refunds.
	assertDecimalEqual(t, "0", PAYE(d("10000"), rates))
}

func TestPAYE_MidBandSalary(t *testing.T) {
	rates := statutory.DefaultRates()

	assertDecimalEqual(t, "7059.35", PAYE(d("48920"), rates))
}

// ===== SOCIAL SECURITY =====

func TestSocialSecurity_TierAndCap(t *testing.T) {
	rates := statutory.DefaultRates()

	// Below the tier ceiling the contribution is a straight 6%.
	assertDecimalEqual(t, "600", SocialSecurity(d("10000"), rates))

	// At and above the ceiling the contribution caps.
	assertDecimalEqual(t, "1080", SocialSecurity(d("18000"), rates))
	assertDecimalEqual(t, "1080", SocialSecurity(d("500000"), rates))
}

// ===== HEALTH LEVY =====

func TestHealthLevy_MinimumApplies(t *testing.T) {
	rates := statutory.DefaultRates()

	// 2.75% of 5000 is 137.50, below the statutory floor.
	assertDecimalEqual(t, "300", HealthLevy(d("5000"), rates))

	// Above the floor the rate applies directly.
	assertDecimalEqual(t, "1375", HealthLevy(d("50000"), rates))
}

func TestHealthLevy_ZeroGrossSkipsMinimum(t *testing.T) {
	rates := statutory.DefaultRates()

	assertDecimalEqual(t, "0", HealthLevy(decimal.Zero, rates))
}

// ===== HOUSING LEVY =====

func TestHousingLevy_RoundsHalfUp(t *testing.T) {
	rates := statutory.DefaultRates()

	// 1001 * 1.5% = 15.015, rounds up to 15.02.
	assertDecimalEqual(t, "15.02", HousingLevy(d("1001"), rates))
}

// ===== TAXABLE INCOME =====

func TestTaxableIncome_DeductsSocialSecurity(t *testing.T) {
	rates := statutory.DefaultRates()

	assertDecimalEqual(t, "48920", TaxableIncome(d("50000"), d("1080"), employee.ContractTypePermanent, rates))
}

func TestTaxableIncome_InternFullyExempt(t *testing.T) {
	rates := statutory.DefaultRates()

	assertDecimalEqual(t, "0", TaxableIncome(d("50000"), d("1080"), employee.ContractTypeIntern, rates))
}

func TestTaxableIncome_FloorsAtZero(t *testing.T) {
	rates := statutory.DefaultRates()

	assertDecimalEqual(t, "0", TaxableIncome(d("500"), d("1080"), employee.ContractTypePermanent, rates))
}

// ===== FULL DEDUCTION SET =====

func TestComputeDeductions_StandardSalary(t *testing.T) {
	rates := statutory.DefaultRates()

	set, err := ComputeDeductions(d("50000"), employee.ContractTypePermanent, rates)
	require.NoError(t, err)

	assertDecimalEqual(t, "48920", set.TaxableIncome)
	assertDecimalEqual(t, "7059.35", set.PAYE)
	assertDecimalEqual(t, "1080", set.SocialSecurity)
	assertDecimalEqual(t, "1375", set.HealthLevy)
	assertDecimalEqual(t, "750", set.HousingLevy)
	assertDecimalEqual(t, "10264.35", set.Total())
}

func TestComputeDeductions_ZeroGross(t *testing.T) {
	rates := statutory.DefaultRates()

	set, err := ComputeDeductions(decimal.Zero, employee.ContractTypePermanent, rates)
	require.NoError(t, err)

	assertDecimalEqual(t, "0", set.TaxableIncome)
	assertDecimalEqual(t, "0", set.Total())
}

func TestComputeDeductions_NegativeGross(t *testing.T) {
	rates := statutory.DefaultRates()

	_, err := ComputeDeductions(d("-1"), employee.ContractTypePermanent, rates)
	assert.ErrorIs(t, err, payroll.ErrNegativeGrossPay)
}

func TestComputeDeductions_InternPaysNoPAYE(t *testing.T) {
	rates := statutory.DefaultRates()

	set, err := ComputeDeductions(d("50000"), employee.ContractTypeIntern, rates)
	require.NoError(t, err)

	assertDecimalEqual(t, "0", set.PAYE)
	// The other contributions still apply.
	assertDecimalEqual(t, "1080", set.SocialSecurity)
	assertDecimalEqual(t, "1375", set.HealthLevy)
	assertDecimalEqual(t, "750", set.HousingLevy)
}

func TestComputeDeductions_Deterministic(t *testing.T) {
	rates := statutory.DefaultRates()

	first, err := ComputeDeductions(d("123456.78"), employee.ContractTypeContract, rates)
	require.NoError(t, err)
	second, err := ComputeDeductions(d("123456.78"), employee.ContractTypeContract, rates)
	require.NoError(t, err)

	assert.True(t, first.PAYE.Equal(second.PAYE))
	assert.True(t, first.SocialSecurity.Equal(second.SocialSecurity))
	assert.True(t, first.HealthLevy.Equal(second.HealthLevy))
	assert.True(t, first.HousingLevy.Equal(second.HousingLevy))
	assert.True(t, first.TaxableIncome.Equal(second.TaxableIncome))
}

package statutory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
)

// TaxBracket is one slice of the progressive income-tax table. Upper is nil
// for the final, unbounded bracket. Boundaries are inclusive on the upper
// end: income exactly at Upper is taxed in this bracket, not the next.
type TaxBracket struct {
	Lower decimal.Decimal  `json:"lower"`
	Upper *decimal.Decimal `json:"upper,omitempty"`
	Rate  decimal.Decimal  `json:"rate"`
}

// ContributionTier is one slice of the tiered social-security table.
type ContributionTier struct {
	Lower decimal.Decimal  `json:"lower"`
	Upper *decimal.Decimal `json:"upper,omitempty"`
	Rate  decimal.Decimal  `json:"rate"`
}

// ExemptionRule controls how much of an employee's income escapes income tax
// for a given contract type. ExemptShare is a fraction in [0, 1]: 0 means
// fully taxable, 1 means fully exempt.
type ExemptionRule struct {
	ExemptShare decimal.Decimal `json:"exempt_share"`
}

// Rates is a versioned snapshot of every statutory figure the calculator
// needs. Statutory changes ship as a new version, never as a code change.
type Rates struct {
	Version       int       `json:"version"`
	EffectiveFrom time.Time `json:"effective_from"`

	Brackets       []TaxBracket    `json:"brackets"`
	PersonalRelief decimal.Decimal `json:"personal_relief"`

	SocialSecurityTiers []ContributionTier `json:"social_security_tiers"`
	SocialSecurityMax   decimal.Decimal    `json:"social_security_max"`

	HealthLevyRate decimal.Decimal `json:"health_levy_rate"`
	HealthLevyMin  decimal.Decimal `json:"health_levy_min"`

	HousingLevyRate decimal.Decimal `json:"housing_levy_rate"`

	Exemptions map[employee.ContractType]ExemptionRule `json:"exemptions"`
}

// Validate enforces the structural invariants of a rate table: brackets and
// tiers ordered ascending, contiguous, last bracket unbounded, bracket rates
// non-decreasing, every figure non-negative, exempt shares within [0, 1].
func (r Rates) Validate() error {
	if len(r.Brackets) == 0 {
		return ErrEmptyBracketTable
	}
	if !r.Brackets[0].Lower.IsZero() {
		return ErrBracketGap
	}
	prevRate := decimal.Zero
	for i, b := range r.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidRate
		}
		if b.Rate.LessThan(prevRate) {
			return ErrDecreasingRates
		}
		prevRate = b.Rate

		last := i == len(r.Brackets)-1
		if last {
			if b.Upper != nil {
				return ErrBoundedLastBracket
			}
			continue
		}
		if b.Upper == nil {
			return ErrUnboundedInnerBracket
		}
		if b.Upper.LessThanOrEqual(b.Lower) {
			return ErrBracketOrder
		}
		if !r.Brackets[i+1].Lower.Equal(*b.Upper) {
			return ErrBracketGap
		}
	}

	if len(r.SocialSecurityTiers) == 0 {
		return ErrEmptyTierTable
	}
	for i, tier := range r.SocialSecurityTiers {
		if tier.Rate.IsNegative() || tier.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidRate
		}
		last := i == len(r.SocialSecurityTiers)-1
		if !last {
			if tier.Upper == nil {
				return ErrUnboundedInnerBracket
			}
			if tier.Upper.LessThanOrEqual(tier.Lower) {
				return ErrBracketOrder
			}
			if !r.SocialSecurityTiers[i+1].Lower.Equal(*tier.Upper) {
				return ErrBracketGap
			}
		}
	}

	if r.PersonalRelief.IsNegative() || r.SocialSecurityMax.IsNegative() ||
		r.HealthLevyMin.IsNegative() {
		return ErrNegativeAmount
	}
	if r.HealthLevyRate.IsNegative() || r.HealthLevyRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidRate
	}
	if r.HousingLevyRate.IsNegative() || r.HousingLevyRate.GreaterThan(decimal.NewFromInt(1)) {
		return ErrInvalidRate
	}

	for _, rule := range r.Exemptions {
		if rule.ExemptShare.IsNegative() || rule.ExemptShare.GreaterThan(decimal.NewFromInt(1)) {
			return ErrInvalidExemptShare
		}
	}

	return nil
}

// ExemptShareFor returns the exempt share for a contract type, zero when the
// table has no rule for it.
func (r Rates) ExemptShareFor(contractType employee.ContractType) decimal.Decimal {
	if rule, ok := r.Exemptions[contractType]; ok {
		return rule.ExemptShare
	}
	return decimal.Zero
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// DefaultRates is the 2024 statutory table the system ships with. It is the
// fallback when no versioned table has been stored yet.
func DefaultRates() Rates {
	return Rates{
		Version:       1,
		EffectiveFrom: time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
		Brackets: []TaxBracket{
			{Lower: dec("0"), Upper: decPtr("24000"), Rate: dec("0.10")},
			{Lower: dec("24000"), Upper: decPtr("32333"), Rate: dec("0.25")},
			{Lower: dec("32333"), Upper: decPtr("500000"), Rate: dec("0.30")},
			{Lower: dec("500000"), Upper: decPtr("800000"), Rate: dec("0.325")},
			{Lower: dec("800000"), Upper: nil, Rate: dec("0.35")},
		},
		PersonalRelief: dec("2400"),
		SocialSecurityTiers: []ContributionTier{
			{Lower: dec("0"), Upper: decPtr("18000"), Rate: dec("0.06")},
			{Lower: dec("18000"), Upper: nil, Rate: dec("0")},
		},
		SocialSecurityMax: dec("1080"),
		HealthLevyRate:    dec("0.0275"),
		HealthLevyMin:     dec("300"),
		HousingLevyRate:   dec("0.015"),
		Exemptions: map[employee.ContractType]ExemptionRule{
			employee.ContractTypePermanent: {ExemptShare: dec("0")},
			employee.ContractTypeContract:  {ExemptShare: dec("0")},
			employee.ContractTypeCasual:    {ExemptShare: dec("0")},
			employee.ContractTypeIntern:    {ExemptShare: dec("1")},
		},
	}
}

package statutory

import "errors"

var (
	ErrRatesNotFound         = errors.New("statutory rate table not found")
	ErrMissingEffectiveDate  = errors.New("effective_from date is required")
	ErrRatesVersionExists    = errors.New("statutory rate table version already exists")
	ErrEmptyBracketTable     = errors.New("tax bracket table is empty")
	ErrEmptyTierTable        = errors.New("contribution tier table is empty")
	ErrBracketOrder          = errors.New("bracket bounds out of order")
	ErrBracketGap            = errors.New("bracket table has a gap or overlap")
	ErrBoundedLastBracket    = errors.New("last bracket must be unbounded")
	ErrUnboundedInnerBracket = errors.New("only the last bracket may be unbounded")
	ErrDecreasingRates       = errors.New("bracket rates must be non-decreasing")
	ErrInvalidRate           = errors.New("rate must be between 0 and 1")
	ErrNegativeAmount        = errors.New("statutory amount must be non-negative")
	ErrInvalidExemptShare    = errors.New("exempt share must be between 0 and 1")
)

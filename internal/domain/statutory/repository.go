package statutory

import "context"

// RatesRepository stores versioned statutory rate tables. Tables are
// immutable once created; a statutory change is a new version.
type RatesRepository interface {
	GetCurrent(ctx context.Context) (Rates, error)
	GetByVersion(ctx context.Context, version int) (Rates, error)
	Create(ctx context.Context, rates Rates) (Rates, error)
	ListVersions(ctx context.Context) ([]Rates, error)
}

// Provider supplies the rate snapshot the calculator runs against.
type Provider interface {
	Current(ctx context.Context) (Rates, error)
}

// StaticProvider serves one fixed snapshot. Used by report verification
// paths and tests that need deterministic rates.
type StaticProvider struct {
	Rates Rates
}

func (p StaticProvider) Current(ctx context.Context) (Rates, error) {
	return p.Rates, nil
}

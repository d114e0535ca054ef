package statutory

import "context"

// RatesService administers versioned rate tables.
type RatesService interface {
	Current(ctx context.Context) (Rates, error)
	ByVersion(ctx context.Context, version int) (Rates, error)
	Create(ctx context.Context, req CreateRatesRequest) (Rates, error)
	ListVersions(ctx context.Context) ([]RatesVersion, error)
}

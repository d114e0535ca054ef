package statutory

import (
	"context"
	"errors"
	"fmt"

	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
)

// RatesServiceImpl serves and administers versioned statutory rate tables.
// It is also the statutory.Provider the calculator pipeline runs against:
// the stored current table wins, and the shipped default table is the
// fallback before any table has been stored.
type RatesServiceImpl struct {
	ratesRepo statutory.RatesRepository
}

func NewRatesService(ratesRepo statutory.RatesRepository) *RatesServiceImpl {
	return &RatesServiceImpl{ratesRepo: ratesRepo}
}

var _ statutory.RatesService = (*RatesServiceImpl)(nil)
var _ statutory.Provider = (*RatesServiceImpl)(nil)

func (s *RatesServiceImpl) Current(ctx context.Context) (statutory.Rates, error) {
	rates, err := s.ratesRepo.GetCurrent(ctx)
	if err != nil {
		if errors.Is(err, statutory.ErrRatesNotFound) {
			return statutory.DefaultRates(), nil
		}
		return statutory.Rates{}, err
	}
	return rates, nil
}

func (s *RatesServiceImpl) ByVersion(ctx context.Context, version int) (statutory.Rates, error) {
	return s.ratesRepo.GetByVersion(ctx, version)
}

func (s *RatesServiceImpl) Create(ctx context.Context, req statutory.CreateRatesRequest) (statutory.Rates, error) {
	if err := req.Validate(); err != nil {
		return statutory.Rates{}, err
	}

	// Version numbering continues from the stored current table, or from the
	// shipped default when nothing has been stored yet.
	next := statutory.DefaultRates().Version + 1
	current, err := s.ratesRepo.GetCurrent(ctx)
	if err != nil && !errors.Is(err, statutory.ErrRatesNotFound) {
		return statutory.Rates{}, fmt.Errorf("failed to resolve current rate table: %w", err)
	}
	if err == nil {
		next = current.Version + 1
	}

	rates := req.Rates
	rates.Version = next

	return s.ratesRepo.Create(ctx, rates)
}

func (s *RatesServiceImpl) ListVersions(ctx context.Context) ([]statutory.RatesVersion, error) {
	all, err := s.ratesRepo.ListVersions(ctx)
	if err != nil {
		return nil, err
	}

	versions := make([]statutory.RatesVersion, 0, len(all))
	for _, r := range all {
		versions = append(versions, statutory.RatesVersion{
			Version:       r.Version,
			EffectiveFrom: r.EffectiveFrom,
		})
	}
	return versions, nil
}

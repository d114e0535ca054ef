package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
	"github.com/kazipay/payroll-backend-go/internal/pkg/database"
)

type statutoryRepository struct {
	db *database.DB
}

func NewStatutoryRepository(db *database.DB) statutory.RatesRepository {
	return &statutoryRepository{db: db}
}

// Rate tables are stored as one JSONB payload per version. The version and
// effective date are mirrored into columns for lookups; the payload is the
// source of truth for everything else.

func (r *statutoryRepository) GetCurrent(ctx context.Context) (statutory.Rates, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT payload
		FROM statutory_rates
		ORDER BY version DESC
		LIMIT 1
	`

	return r.scanRates(q.QueryRow(ctx, query))
}

func (r *statutoryRepository) GetByVersion(ctx context.Context, version int) (statutory.Rates, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT payload FROM statutory_rates WHERE version = $1`

	return r.scanRates(q.QueryRow(ctx, query, version))
}

func (r *statutoryRepository) Create(ctx context.Context, rates statutory.Rates) (statutory.Rates, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(rates)
	if err != nil {
		return statutory.Rates{}, fmt.Errorf("failed to marshal rate table: %w", err)
	}

	query := `
		INSERT INTO statutory_rates (version, effective_from, payload)
		VALUES ($1, $2, $3)
	`

	_, err = q.Exec(ctx, query, rates.Version, rates.EffectiveFrom, payload)
	if err != nil {
		if strings.Contains(err.Error(), "statutory_rates_pkey") {
			return statutory.Rates{}, statutory.ErrRatesVersionExists
		}
		return statutory.Rates{}, fmt.Errorf("failed to create rate table: %w", err)
	}

	return rates, nil
}

func (r *statutoryRepository) ListVersions(ctx context.Context) ([]statutory.Rates, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT payload FROM statutory_rates ORDER BY version DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tables: %w", err)
	}
	defer rows.Close()

	var tables []statutory.Rates
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan rate table: %w", err)
		}
		var rates statutory.Rates
		if err := json.Unmarshal(payload, &rates); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rate table: %w", err)
		}
		tables = append(tables, rates)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rate tables: %w", err)
	}

	return tables, nil
}

func (r *statutoryRepository) scanRates(row pgx.Row) (statutory.Rates, error) {
	var payload []byte
	if err := row.Scan(&payload); err != nil {
		if err == pgx.ErrNoRows {
			return statutory.Rates{}, statutory.ErrRatesNotFound
		}
		return statutory.Rates{}, fmt.Errorf("failed to get rate table: %w", err)
	}

	var rates statutory.Rates
	if err := json.Unmarshal(payload, &rates); err != nil {
		return statutory.Rates{}, fmt.Errorf("failed to unmarshal rate table: %w", err)
	}

	return rates, nil
}

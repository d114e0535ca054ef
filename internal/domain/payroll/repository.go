package payroll

import (
	"context"
	"time"
)

// PayrollRepository is the persistence boundary for periods and records.
// All methods include companyID to prevent cross-company data access.
// Mutating methods participate in a context-carried transaction when one is
// open (see repository/postgresql.WithTransaction).
type PayrollRepository interface {
	// Periods
	FindPeriodByNaturalKey(ctx context.Context, companyID string, startDate, endDate time.Time) (PayrollPeriod, error)
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	UpdatePeriodStatus(ctx context.Context, periodID string, status PeriodStatus) error
	GetPeriodByID(ctx context.Context, periodID string, companyID string) (PayrollPeriod, error)
	ListPeriods(ctx context.Context, companyID string) ([]PeriodSummary, error)
	DeletePeriod(ctx context.Context, periodID string, companyID string) (int64, error)

	// Records
	CreateRecord(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	ListRecordsByPeriod(ctx context.Context, periodID string, companyID string) ([]PayrollRecord, error)
	DeleteRecordsByPeriod(ctx context.Context, periodID string) (int64, error)

	// Maintenance
	DeleteDuplicateRecords(ctx context.Context, companyID string) (int64, error)
	PeriodStats(ctx context.Context, companyID string) ([]PeriodStat, error)
}

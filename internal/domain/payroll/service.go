package payroll

import "context"

// PayrollService is the surface the HTTP layer and report generators call.
// companyID and actingUserID are threaded explicitly; the core never reads
// them from ambient session state.
type PayrollService interface {
	ProcessBatch(ctx context.Context, companyID, actingUserID string, req ProcessBatchRequest) (BatchResult, error)
	ComputePayroll(ctx context.Context, companyID string, req ComputeRequest) (RecordResponse, error)

	ListPeriods(ctx context.Context, companyID string) ([]PeriodResponse, error)
	GetPeriodDetail(ctx context.Context, periodID, companyID string) (PeriodDetailResponse, error)

	DeletePeriod(ctx context.Context, periodID, companyID string) (DeleteResult, error)
	DeletePeriods(ctx context.Context, companyID string, req DeletePeriodsRequest) (DeleteResult, error)
	DeleteDuplicateRecords(ctx context.Context, companyID string) (DedupResult, error)
	PeriodStats(ctx context.Context, companyID string) ([]PeriodStatResponse, error)
}

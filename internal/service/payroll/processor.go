package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kazipay/payroll-backend-go/internal/domain/employee"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
	"github.com/kazipay/payroll-backend-go/internal/pkg/database"
	"github.com/kazipay/payroll-backend-go/internal/pkg/validator"
)

// reprocessedSuffix disambiguates a re-run of an existing natural period so
// both periods stay visible side by side.
const reprocessedSuffix = " (Reprocessed)"

type PayrollServiceImpl struct {
	tx           database.TxRunner
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	rates        statutory.Provider
}

func NewPayrollService(
	tx database.TxRunner,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	rates statutory.Provider,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		rates:        rates,
	}
}

// ========== BATCH PROCESSING ==========

// ProcessBatch runs one payroll batch: resolve the period, compute every
// selected employee, persist everything in one transaction. All-or-nothing:
// any computation failure aborts before a single write, any write failure
// rolls the whole run back.
func (s *PayrollServiceImpl) ProcessBatch(ctx context.Context, companyID, actingUserID string, req payroll.ProcessBatchRequest) (payroll.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResult{}, err
	}
	if validator.IsEmpty(companyID) || validator.IsEmpty(actingUserID) {
		return payroll.BatchResult{}, fmt.Errorf("%w: company and acting user are required", payroll.ErrInvalidInput)
	}

	rates, err := s.rates.Current(ctx)
	if err != nil {
		return payroll.BatchResult{}, fmt.Errorf("%w: failed to load rate table: %v", payroll.ErrComputation, err)
	}
	if err := rates.Validate(); err != nil {
		return payroll.BatchResult{}, fmt.Errorf("%w: corrupt rate table: %v", payroll.ErrComputation, err)
	}

	startDate, endDate := req.PeriodBounds()
	payDate, _ := validator.IsValidDate(req.PayDate)

	employees, err := s.selectEmployees(ctx, companyID, req.EmployeeIDs)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	// PeriodResolving: an existing natural period does not block the run, it
	// only changes the new period's name and surfaces a warning.
	periodName := req.PeriodName
	if validator.IsEmpty(periodName) {
		periodName = GeneratePeriodName(startDate, endDate)
	}
	warning := ""
	existing, err := s.payrollRepo.FindPeriodByNaturalKey(ctx, companyID, startDate, endDate)
	switch {
	case err == nil:
		periodName = existing.PeriodName + reprocessedSuffix
		warning = fmt.Sprintf("period %q already covers %s to %s; created %q alongside it",
			existing.PeriodName, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"), periodName)
	case !errors.Is(err, payroll.ErrPeriodNotFound):
		return payroll.BatchResult{}, fmt.Errorf("%w: %v", payroll.ErrPersistence, err)
	}

	// Computing: fail-fast. Nothing is written until every employee computed.
	records := make([]payroll.PayrollRecord, 0, len(employees))
	var negativeNet []string
	for _, emp := range employees {
		record, err := ComputeEmployeePayroll(emp, PeriodContext{}, rates)
		if err != nil {
			return payroll.BatchResult{}, err
		}
		if record.NetPay.IsNegative() {
			negativeNet = append(negativeNet, emp.ID)
		}
		records = append(records, record)
	}

	// Persisting: one transaction for the period row and every record.
	period := payroll.PayrollPeriod{
		CompanyID:  companyID,
		PeriodName: periodName,
		StartDate:  startDate,
		EndDate:    endDate,
		PayDate:    payDate,
		Status:     payroll.PeriodStatusProcessing,
		CreatedBy:  actingUserID,
	}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		created, err := s.payrollRepo.CreatePeriod(ctx, period)
		if err != nil {
			return fmt.Errorf("create period: %w", err)
		}
		period = created

		for _, record := range records {
			record.PayrollPeriodID = created.ID
			if _, err := s.payrollRepo.CreateRecord(ctx, record); err != nil {
				return fmt.Errorf("create record for employee %s: %w", record.EmployeeID, err)
			}
		}

		if err := s.payrollRepo.UpdatePeriodStatus(ctx, created.ID, payroll.PeriodStatusCompleted); err != nil {
			return fmt.Errorf("complete period: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.BatchResult{}, fmt.Errorf("%w: %v", payroll.ErrPersistence, err)
	}

	return payroll.BatchResult{
		PeriodID:               period.ID,
		PeriodName:             period.PeriodName,
		ProcessedCount:         len(records),
		Warning:                warning,
		NegativeNetEmployeeIDs: negativeNet,
	}, nil
}

// selectEmployees resolves the caller's selection: an explicit id set, or
// every active employee of the company when the set is empty. Unknown ids in
// an explicit set are ignored; an empty result is an input error.
func (s *PayrollServiceImpl) selectEmployees(ctx context.Context, companyID string, employeeIDs []string) ([]employee.Employee, error) {
	active, err := s.employeeRepo.ListActiveWithComponents(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("%w: list employees: %v", payroll.ErrPersistence, err)
	}

	selected := active
	if len(employeeIDs) > 0 {
		idSet := make(map[string]bool, len(employeeIDs))
		for _, id := range employeeIDs {
			idSet[id] = true
		}
		selected = selected[:0:0]
		for _, emp := range active {
			if idSet[emp.ID] {
				selected = append(selected, emp)
			}
		}
	}

	if len(selected) == 0 {
		return nil, payroll.ErrNoEmployeesSelected
	}
	return selected, nil
}

// GeneratePeriodName names a period after its calendar month when the bounds
// line up with one, otherwise after the explicit date range.
func GeneratePeriodName(startDate, endDate time.Time) string {
	monthStart := time.Date(startDate.Year(), startDate.Month(), 1, 0, 0, 0, 0, startDate.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	if startDate.Equal(monthStart) && endDate.Equal(monthEnd) {
		return startDate.Format("January 2006") + " Payroll"
	}
	return startDate.Format("02 Jan 2006") + " - " + endDate.Format("02 Jan 2006") + " Payroll"
}

// ========== COMPUTE (NO PERSISTENCE) ==========

func (s *PayrollServiceImpl) ComputePayroll(ctx context.Context, companyID string, req payroll.ComputeRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByIDWithComponents(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	rates, err := s.rates.Current(ctx)
	if err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("%w: failed to load rate table: %v", payroll.ErrComputation, err)
	}
	if err := rates.Validate(); err != nil {
		return payroll.RecordResponse{}, fmt.Errorf("%w: corrupt rate table: %v", payroll.ErrComputation, err)
	}

	pctx := PeriodContext{}
	if req.DaysWorked != nil {
		pctx.DaysWorked = *req.DaysWorked
	}
	if req.OvertimeHours != nil {
		pctx.OvertimeHours = *req.OvertimeHours
	}
	if req.OvertimeRate != nil {
		pctx.OvertimeRate = *req.OvertimeRate
	}

	record, err := ComputeEmployeePayroll(emp, pctx, rates)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	resp := mapRecordResponse(record)
	resp.EmployeeName = emp.FullName()
	resp.EmployeeNumber = emp.EmployeeNumber
	return resp, nil
}

// ========== PERIOD QUERIES ==========

func (s *PayrollServiceImpl) ListPeriods(ctx context.Context, companyID string) ([]payroll.PeriodResponse, error) {
	summaries, err := s.payrollRepo.ListPeriods(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PeriodResponse, 0, len(summaries))
	for _, summary := range summaries {
		result = append(result, mapPeriodResponse(summary))
	}
	return result, nil
}

func (s *PayrollServiceImpl) GetPeriodDetail(ctx context.Context, periodID, companyID string) (payroll.PeriodDetailResponse, error) {
	period, err := s.payrollRepo.GetPeriodByID(ctx, periodID, companyID)
	if err != nil {
		return payroll.PeriodDetailResponse{}, err
	}

	records, err := s.payrollRepo.ListRecordsByPeriod(ctx, periodID, companyID)
	if err != nil {
		return payroll.PeriodDetailResponse{}, err
	}

	detail := payroll.PeriodDetailResponse{
		Period:  mapPeriodResponse(payroll.PeriodSummary{PayrollPeriod: period}),
		Records: make([]payroll.RecordResponse, 0, len(records)),
	}
	for _, record := range records {
		detail.Records = append(detail.Records, mapRecordResponse(record))
	}
	detail.Period.EmployeeCount = int64(len(records))
	for _, record := range records {
		detail.Period.TotalNetPay = detail.Period.TotalNetPay.Add(record.NetPay)
	}
	return detail, nil
}

// ========== MAINTENANCE ==========

// DeletePeriod removes a period and its records in one transaction, records
// first. A nonexistent period reports zero counts, not an error.
func (s *PayrollServiceImpl) DeletePeriod(ctx context.Context, periodID, companyID string) (payroll.DeleteResult, error) {
	var result payroll.DeleteResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.deletePeriodInTx(ctx, periodID, companyID, &result)
	})
	if err != nil {
		return payroll.DeleteResult{}, fmt.Errorf("%w: %v", payroll.ErrPersistence, err)
	}
	return result, nil
}

func (s *PayrollServiceImpl) DeletePeriods(ctx context.Context, companyID string, req payroll.DeletePeriodsRequest) (payroll.DeleteResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.DeleteResult{}, err
	}

	var result payroll.DeleteResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, periodID := range req.PeriodIDs {
			if err := s.deletePeriodInTx(ctx, periodID, companyID, &result); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return payroll.DeleteResult{}, fmt.Errorf("%w: %v", payroll.ErrPersistence, err)
	}
	return result, nil
}

func (s *PayrollServiceImpl) deletePeriodInTx(ctx context.Context, periodID, companyID string, result *payroll.DeleteResult) error {
	// Ownership check first so records of another company's period are never
	// touched. A missing period is a no-op.
	if _, err := s.payrollRepo.GetPeriodByID(ctx, periodID, companyID); err != nil {
		if errors.Is(err, payroll.ErrPeriodNotFound) {
			return nil
		}
		return err
	}

	deletedRecords, err := s.payrollRepo.DeleteRecordsByPeriod(ctx, periodID)
	if err != nil {
		return fmt.Errorf("delete records of period %s: %w", periodID, err)
	}
	deletedPeriods, err := s.payrollRepo.DeletePeriod(ctx, periodID, companyID)
	if err != nil {
		return fmt.Errorf("delete period %s: %w", periodID, err)
	}

	result.DeletedRecords += deletedRecords
	result.DeletedPeriods += deletedPeriods
	return nil
}

// DeleteDuplicateRecords keeps the most recently inserted record per
// (employee, period) pair and removes the rest. Idempotent: a second run
// removes nothing.
func (s *PayrollServiceImpl) DeleteDuplicateRecords(ctx context.Context, companyID string) (payroll.DedupResult, error) {
	var removed int64
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.payrollRepo.DeleteDuplicateRecords(ctx, companyID)
		return err
	})
	if err != nil {
		return payroll.DedupResult{}, fmt.Errorf("%w: %v", payroll.ErrPersistence, err)
	}
	return payroll.DedupResult{RemovedCount: removed}, nil
}

func (s *PayrollServiceImpl) PeriodStats(ctx context.Context, companyID string) ([]payroll.PeriodStatResponse, error) {
	stats, err := s.payrollRepo.PeriodStats(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PeriodStatResponse, 0, len(stats))
	for _, stat := range stats {
		result = append(result, payroll.PeriodStatResponse{
			PeriodID:        stat.PeriodID,
			PeriodName:      stat.PeriodName,
			TotalRecords:    stat.TotalRecords,
			UniqueEmployees: stat.UniqueEmployees,
			DuplicateCount:  stat.DuplicateCount,
		})
	}
	return result, nil
}

// ========== HELPERS ==========

func mapPeriodResponse(summary payroll.PeriodSummary) payroll.PeriodResponse {
	return payroll.PeriodResponse{
		ID:            summary.ID,
		CompanyID:     summary.CompanyID,
		PeriodName:    summary.PeriodName,
		StartDate:     summary.StartDate.Format("2006-01-02"),
		EndDate:       summary.EndDate.Format("2006-01-02"),
		PayDate:       summary.PayDate.Format("2006-01-02"),
		Status:        string(summary.Status),
		CreatedBy:     summary.CreatedBy,
		CreatedByName: summary.CreatedByName,
		EmployeeCount: summary.EmployeeCount,
		TotalNetPay:   summary.TotalNetPay,
	}
}

func mapRecordResponse(r payroll.PayrollRecord) payroll.RecordResponse {
	employeeName := ""
	employeeNumber := ""
	if r.EmployeeName != nil {
		employeeName = *r.EmployeeName
	}
	if r.EmployeeNumber != nil {
		employeeNumber = *r.EmployeeNumber
	}

	return payroll.RecordResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    employeeName,
		EmployeeNumber:  employeeNumber,
		PayrollPeriodID: r.PayrollPeriodID,
		BasicSalary:     r.BasicSalary,
		GrossPay:        r.GrossPay,
		TaxableIncome:   r.TaxableIncome,
		PAYETax:         r.PAYETax,
		SocialSecurity:  r.SocialSecurity,
		HealthLevy:      r.HealthLevy,
		HousingLevy:     r.HousingLevy,
		TotalAllowances: r.TotalAllowances,
		TotalDeductions: r.TotalDeductions,
		NetPay:          r.NetPay,
		DaysWorked:      r.DaysWorked,
		OvertimeHours:   r.OvertimeHours,
		OvertimeAmount:  r.OvertimeAmount,
	}
}

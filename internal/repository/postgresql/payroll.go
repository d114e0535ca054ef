package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== PERIODS ==========

func (r *payrollRepository) FindPeriodByNaturalKey(ctx context.Context, companyID string, startDate, endDate time.Time) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_name, start_date, end_date, pay_date,
			   status, created_by, created_at
		FROM payroll_periods
		WHERE company_id = $1 AND start_date = $2 AND end_date = $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, companyID, startDate, endDate).Scan(
		&p.ID, &p.CompanyID, &p.PeriodName, &p.StartDate, &p.EndDate, &p.PayDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to find payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	// UUIDv7 ids are time-ordered, which duplicate cleanup relies on.
	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to generate period id: %w", err)
	}

	query := `
		INSERT INTO payroll_periods (id, company_id, period_name, start_date, end_date, pay_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, company_id, period_name, start_date, end_date, pay_date, status, created_by, created_at
	`

	var p payroll.PayrollPeriod
	err = q.QueryRow(ctx, query,
		id.String(), period.CompanyID, period.PeriodName,
		period.StartDate, period.EndDate, period.PayDate,
		period.Status, period.CreatedBy,
	).Scan(
		&p.ID, &p.CompanyID, &p.PeriodName, &p.StartDate, &p.EndDate, &p.PayDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, periodID string, status payroll.PeriodStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE payroll_periods SET status = $1 WHERE id = $2`

	tag, err := q.Exec(ctx, query, status, periodID)
	if err != nil {
		return fmt.Errorf("failed to update payroll period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotFound
	}

	return nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, periodID string, companyID string) (payroll.PayrollPeriod, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, period_name, start_date, end_date, pay_date,
			   status, created_by, created_at
		FROM payroll_periods
		WHERE id = $1 AND company_id = $2
	`

	var p payroll.PayrollPeriod
	err := q.QueryRow(ctx, query, periodID, companyID).Scan(
		&p.ID, &p.CompanyID, &p.PeriodName, &p.StartDate, &p.EndDate, &p.PayDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, companyID string) ([]payroll.PeriodSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.company_id, p.period_name, p.start_date, p.end_date, p.pay_date,
			   p.status, p.created_by, p.created_at,
			   u.name AS created_by_name,
			   COUNT(r.id) AS employee_count,
			   COALESCE(SUM(r.net_pay), 0) AS total_net_pay
		FROM payroll_periods p
		LEFT JOIN users u ON u.id = p.created_by
		LEFT JOIN payroll_records r ON r.payroll_period_id = p.id
		WHERE p.company_id = $1
		GROUP BY p.id, p.company_id, p.period_name, p.start_date, p.end_date, p.pay_date,
				 p.status, p.created_by, p.created_at, u.name
		ORDER BY p.start_date DESC, p.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.PeriodSummary
	for rows.Next() {
		var s payroll.PeriodSummary
		err := rows.Scan(
			&s.ID, &s.CompanyID, &s.PeriodName, &s.StartDate, &s.EndDate, &s.PayDate,
			&s.Status, &s.CreatedBy, &s.CreatedAt,
			&s.CreatedByName, &s.EmployeeCount, &s.TotalNetPay,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll periods: %w", err)
	}

	return summaries, nil
}

func (r *payrollRepository) DeletePeriod(ctx context.Context, periodID string, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_periods WHERE id = $1 AND company_id = $2`

	tag, err := q.Exec(ctx, query, periodID, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payroll period: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ========== RECORDS ==========

func (r *payrollRepository) CreateRecord(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to generate record id: %w", err)
	}

	query := `
		INSERT INTO payroll_records (
			id, employee_id, payroll_period_id, company_id,
			basic_salary, gross_pay, taxable_income, paye_tax,
			social_security_deduction, health_levy_deduction, housing_levy_deduction,
			total_allowances, total_deductions, net_pay,
			days_worked, overtime_hours, overtime_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, employee_id, payroll_period_id, company_id,
			basic_salary, gross_pay, taxable_income, paye_tax,
			social_security_deduction, health_levy_deduction, housing_levy_deduction,
			total_allowances, total_deductions, net_pay,
			days_worked, overtime_hours, overtime_amount, created_at
	`

	var rec payroll.PayrollRecord
	err = q.QueryRow(ctx, query,
		id.String(), record.EmployeeID, record.PayrollPeriodID, record.CompanyID,
		record.BasicSalary, record.GrossPay, record.TaxableIncome, record.PAYETax,
		record.SocialSecurity, record.HealthLevy, record.HousingLevy,
		record.TotalAllowances, record.TotalDeductions, record.NetPay,
		record.DaysWorked, record.OvertimeHours, record.OvertimeAmount,
	).Scan(
		&rec.ID, &rec.EmployeeID, &rec.PayrollPeriodID, &rec.CompanyID,
		&rec.BasicSalary, &rec.GrossPay, &rec.TaxableIncome, &rec.PAYETax,
		&rec.SocialSecurity, &rec.HealthLevy, &rec.HousingLevy,
		&rec.TotalAllowances, &rec.TotalDeductions, &rec.NetPay,
		&rec.DaysWorked, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.CreatedAt,
	)
	if err != nil {
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecordsByPeriod(ctx context.Context, periodID string, companyID string) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.employee_id, r.payroll_period_id, r.company_id,
			   r.basic_salary, r.gross_pay, r.taxable_income, r.paye_tax,
			   r.social_security_deduction, r.health_levy_deduction, r.housing_levy_deduction,
			   r.total_allowances, r.total_deductions, r.net_pay,
			   r.days_worked, r.overtime_hours, r.overtime_amount, r.created_at,
			   e.first_name || ' ' || e.last_name AS employee_name,
			   e.employee_number
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.payroll_period_id = $1 AND r.company_id = $2
		ORDER BY e.employee_number
	`

	rows, err := q.Query(ctx, query, periodID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		var rec payroll.PayrollRecord
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PayrollPeriodID, &rec.CompanyID,
			&rec.BasicSalary, &rec.GrossPay, &rec.TaxableIncome, &rec.PAYETax,
			&rec.SocialSecurity, &rec.HealthLevy, &rec.HousingLevy,
			&rec.TotalAllowances, &rec.TotalDeductions, &rec.NetPay,
			&rec.DaysWorked, &rec.OvertimeHours, &rec.OvertimeAmount, &rec.CreatedAt,
			&rec.EmployeeName, &rec.EmployeeNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func (r *payrollRepository) DeleteRecordsByPeriod(ctx context.Context, periodID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_records WHERE payroll_period_id = $1`

	tag, err := q.Exec(ctx, query, periodID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete payroll records: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ========== MAINTENANCE ==========

// DeleteDuplicateRecords removes every record shadowed by a newer record for
// the same (employee, period) pair. UUIDv7 ids order by insertion time, so
// keeping the greatest id keeps the latest computation.
func (r *payrollRepository) DeleteDuplicateRecords(ctx context.Context, companyID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_records older
		USING payroll_records newer
		WHERE older.company_id = $1
		  AND newer.company_id = $1
		  AND older.employee_id = newer.employee_id
		  AND older.payroll_period_id = newer.payroll_period_id
		  AND older.id < newer.id
	`

	tag, err := q.Exec(ctx, query, companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicate payroll records: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *payrollRepository) PeriodStats(ctx context.Context, companyID string) ([]payroll.PeriodStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.period_name,
			   COUNT(r.id) AS total_records,
			   COUNT(DISTINCT r.employee_id) AS unique_employees,
			   COUNT(r.id) - COUNT(DISTINCT r.employee_id) AS duplicate_count
		FROM payroll_periods p
		LEFT JOIN payroll_records r ON r.payroll_period_id = p.id
		WHERE p.company_id = $1
		GROUP BY p.id, p.period_name
		ORDER BY p.start_date DESC, p.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get period stats: %w", err)
	}
	defer rows.Close()

	var stats []payroll.PeriodStat
	for rows.Next() {
		var s payroll.PeriodStat
		err := rows.Scan(&s.PeriodID, &s.PeriodName, &s.TotalRecords, &s.UniqueEmployees, &s.DuplicateCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate period stats: %w", err)
	}

	return stats, nil
}

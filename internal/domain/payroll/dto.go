package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/kazipay/payroll-backend-go/internal/pkg/validator"
)

// ========== BATCH PROCESSING DTOs ==========

// ProcessBatchRequest starts a payroll run. Either the explicit
// start/end/pay dates are given, or PayMonth ("2025-01") for the quick path,
// which derives the calendar-month bounds. Empty EmployeeIDs means all
// active employees of the company.
type ProcessBatchRequest struct {
	PeriodName  string   `json:"period_name,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	PayDate     string   `json:"pay_date"`
	PayMonth    string   `json:"pay_month,omitempty"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`
}

func (r *ProcessBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PayDate) {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "is required"})
	} else if _, ok := validator.IsValidDate(r.PayDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "pay_date", Message: "must be YYYY-MM-DD"})
	}

	if r.PayMonth != "" {
		if _, ok := validator.IsValidMonth(r.PayMonth); !ok {
			errs = append(errs, validator.ValidationError{Field: "pay_month", Message: "must be YYYY-MM"})
		}
	} else {
		start, startOK := validator.IsValidDate(r.StartDate)
		if !startOK {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
		end, endOK := validator.IsValidDate(r.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
		if startOK && endOK && !end.After(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be after start_date"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PeriodBounds resolves the requested start and end dates, deriving them
// from PayMonth when the quick path is used. Validate must pass first.
func (r *ProcessBatchRequest) PeriodBounds() (start, end time.Time) {
	if r.PayMonth != "" {
		month, _ := validator.IsValidMonth(r.PayMonth)
		start = month
		end = month.AddDate(0, 1, -1)
		return start, end
	}
	start, _ = validator.IsValidDate(r.StartDate)
	end, _ = validator.IsValidDate(r.EndDate)
	return start, end
}

// BatchResult reports one completed payroll run. Warning carries the
// duplicate-period notice when a natural period was re-processed; it is
// informational, never an error. NegativeNetEmployeeIDs flags records whose
// deductions exceeded gross pay so a human can review the period.
type BatchResult struct {
	PeriodID               string   `json:"period_id"`
	PeriodName             string   `json:"period_name"`
	ProcessedCount         int      `json:"processed_count"`
	Warning                string   `json:"warning,omitempty"`
	NegativeNetEmployeeIDs []string `json:"negative_net_employee_ids,omitempty"`
}

// ========== COMPUTE (NO PERSISTENCE) DTOs ==========

// ComputeRequest recomputes one employee's payroll without writing anything.
// Used by report generators to verify stored records.
type ComputeRequest struct {
	EmployeeID    string           `json:"employee_id"`
	DaysWorked    *int             `json:"days_worked,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	OvertimeRate  *decimal.Decimal `json:"overtime_rate,omitempty"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.DaysWorked != nil && (*r.DaysWorked < 0 || *r.DaysWorked > 31) {
		errs = append(errs, validator.ValidationError{Field: "days_worked", Message: "must be between 0 and 31"})
	}
	if r.OvertimeHours != nil && r.OvertimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}
	if r.OvertimeRate != nil && r.OvertimeRate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "overtime_rate", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== MAINTENANCE DTOs ==========

type DeletePeriodsRequest struct {
	PeriodIDs []string `json:"period_ids"`
}

func (r *DeletePeriodsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.PeriodIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "period_ids", Message: "at least one period is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DeleteResult reports a period deletion. Deleting a nonexistent period is a
// no-op with zero counts, not an error.
type DeleteResult struct {
	DeletedRecords int64 `json:"deleted_records"`
	DeletedPeriods int64 `json:"deleted_periods"`
}

type DedupResult struct {
	RemovedCount int64 `json:"removed_count"`
}

// ========== RESPONSE DTOs ==========

type PeriodResponse struct {
	ID            string          `json:"id"`
	CompanyID     string          `json:"company_id"`
	PeriodName    string          `json:"period_name"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	PayDate       string          `json:"pay_date"`
	Status        string          `json:"status"`
	CreatedBy     string          `json:"created_by"`
	CreatedByName *string         `json:"created_by_name,omitempty"`
	EmployeeCount int64           `json:"employee_count"`
	TotalNetPay   decimal.Decimal `json:"total_net_pay"`
}

type RecordResponse struct {
	ID              string          `json:"id,omitempty"`
	EmployeeID      string          `json:"employee_id"`
	EmployeeName    string          `json:"employee_name,omitempty"`
	EmployeeNumber  string          `json:"employee_number,omitempty"`
	PayrollPeriodID string          `json:"payroll_period_id,omitempty"`
	BasicSalary     decimal.Decimal `json:"basic_salary"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TaxableIncome   decimal.Decimal `json:"taxable_income"`
	PAYETax         decimal.Decimal `json:"paye_tax"`
	SocialSecurity  decimal.Decimal `json:"social_security_deduction"`
	HealthLevy      decimal.Decimal `json:"health_levy_deduction"`
	HousingLevy     decimal.Decimal `json:"housing_levy_deduction"`
	TotalAllowances decimal.Decimal `json:"total_allowances"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
	DaysWorked      int             `json:"days_worked"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
}

type PeriodDetailResponse struct {
	Period  PeriodResponse   `json:"period"`
	Records []RecordResponse `json:"records"`
}

type PeriodStatResponse struct {
	PeriodID        string `json:"period_id"`
	PeriodName      string `json:"period_name"`
	TotalRecords    int64  `json:"total_records"`
	UniqueEmployees int64  `json:"unique_employees"`
	DuplicateCount  int64  `json:"duplicate_count"`
}

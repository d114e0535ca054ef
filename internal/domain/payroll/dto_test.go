package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazipay/payroll-backend-go/internal/pkg/validator"
)

func TestProcessBatchRequest_Validate_MonthPath(t *testing.T) {
	req := ProcessBatchRequest{PayMonth: "2025-01", PayDate: "2025-01-31"}
	assert.NoError(t, req.Validate())
}

func TestProcessBatchRequest_Validate_DateRangePath(t *testing.T) {
	req := ProcessBatchRequest{StartDate: "2025-01-01", EndDate: "2025-01-31", PayDate: "2025-01-31"}
	assert.NoError(t, req.Validate())
}

func TestProcessBatchRequest_Validate_MissingPayDate(t *testing.T) {
	req := ProcessBatchRequest{PayMonth: "2025-01"}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "pay_date")
}

func TestProcessBatchRequest_Validate_EndBeforeStart(t *testing.T) {
	req := ProcessBatchRequest{StartDate: "2025-01-31", EndDate: "2025-01-01", PayDate: "2025-02-01"}

	err := req.Validate()
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "end_date")
}

func TestProcessBatchRequest_Validate_BadMonthFormat(t *testing.T) {
	req := ProcessBatchRequest{PayMonth: "January 2025", PayDate: "2025-01-31"}
	assert.Error(t, req.Validate())
}

func TestProcessBatchRequest_PeriodBounds_FromMonth(t *testing.T) {
	req := ProcessBatchRequest{PayMonth: "2025-02", PayDate: "2025-02-28"}
	require.NoError(t, req.Validate())

	start, end := req.PeriodBounds()
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), end)
}

func TestProcessBatchRequest_PeriodBounds_LeapFebruary(t *testing.T) {
	req := ProcessBatchRequest{PayMonth: "2024-02", PayDate: "2024-02-29"}
	require.NoError(t, req.Validate())

	_, end := req.PeriodBounds()
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), end)
}

func TestProcessBatchRequest_PeriodBounds_FromDates(t *testing.T) {
	req := ProcessBatchRequest{StartDate: "2025-03-10", EndDate: "2025-03-20", PayDate: "2025-03-21"}
	require.NoError(t, req.Validate())

	start, end := req.PeriodBounds()
	assert.Equal(t, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC), end)
}

func TestComputeRequest_Validate(t *testing.T) {
	req := ComputeRequest{EmployeeID: "emp-1"}
	assert.NoError(t, req.Validate())

	req = ComputeRequest{}
	assert.Error(t, req.Validate())

	days := 40
	req = ComputeRequest{EmployeeID: "emp-1", DaysWorked: &days}
	assert.Error(t, req.Validate())
}

func TestDeletePeriodsRequest_Validate(t *testing.T) {
	req := DeletePeriodsRequest{}
	assert.Error(t, req.Validate())

	req = DeletePeriodsRequest{PeriodIDs: []string{"p-1"}}
	assert.NoError(t, req.Validate())
}

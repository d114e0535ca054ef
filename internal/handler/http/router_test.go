package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
	"github.com/kazipay/payroll-backend-go/internal/domain/user"
	"github.com/kazipay/payroll-backend-go/internal/pkg/jwt"
)

const routerTestSecret = "test-secret-key-for-jwt"

// spyPayrollService records whether the service layer was reached. The
// middleware must reject unauthorized callers before any call lands here.
type spyPayrollService struct {
	processCalls int
	listCalls    int
}

func (s *spyPayrollService) ProcessBatch(ctx context.Context, companyID, actingUserID string, req payroll.ProcessBatchRequest) (payroll.BatchResult, error) {
	s.processCalls++
	return payroll.BatchResult{PeriodID: "period-1", PeriodName: "January 2025 Payroll", ProcessedCount: 1}, nil
}

func (s *spyPayrollService) ComputePayroll(ctx context.Context, companyID string, req payroll.ComputeRequest) (payroll.RecordResponse, error) {
	return payroll.RecordResponse{}, nil
}

func (s *spyPayrollService) ListPeriods(ctx context.Context, companyID string) ([]payroll.PeriodResponse, error) {
	s.listCalls++
	return nil, nil
}

func (s *spyPayrollService) GetPeriodDetail(ctx context.Context, periodID, companyID string) (payroll.PeriodDetailResponse, error) {
	return payroll.PeriodDetailResponse{}, nil
}

func (s *spyPayrollService) DeletePeriod(ctx context.Context, periodID, companyID string) (payroll.DeleteResult, error) {
	return payroll.DeleteResult{}, nil
}

func (s *spyPayrollService) DeletePeriods(ctx context.Context, companyID string, req payroll.DeletePeriodsRequest) (payroll.DeleteResult, error) {
	return payroll.DeleteResult{}, nil
}

func (s *spyPayrollService) DeleteDuplicateRecords(ctx context.Context, companyID string) (payroll.DedupResult, error) {
	return payroll.DedupResult{}, nil
}

func (s *spyPayrollService) PeriodStats(ctx context.Context, companyID string) ([]payroll.PeriodStatResponse, error) {
	return nil, nil
}

type spyRatesService struct {
	createCalls int
}

func (s *spyRatesService) Current(ctx context.Context) (statutory.Rates, error) {
	return statutory.DefaultRates(), nil
}

func (s *spyRatesService) ByVersion(ctx context.Context, version int) (statutory.Rates, error) {
	return statutory.DefaultRates(), nil
}

func (s *spyRatesService) Create(ctx context.Context, req statutory.CreateRatesRequest) (statutory.Rates, error) {
	s.createCalls++
	return req.Rates, nil
}

func (s *spyRatesService) ListVersions(ctx context.Context) ([]statutory.RatesVersion, error) {
	return nil, nil
}

func newRouterTestSetup() (http.Handler, *spyPayrollService, *spyRatesService, jwt.Service) {
	jwtService := jwt.NewJWTService(routerTestSecret, "1h")
	payrollSpy := &spyPayrollService{}
	ratesSpy := &spyRatesService{}
	router := NewRouter(jwtService, NewPayrollHandler(payrollSpy), NewStatutoryHandler(ratesSpy))
	return router, payrollSpy, ratesSpy, jwtService
}

func mintToken(t *testing.T, jwtService jwt.Service, role user.Role) string {
	t.Helper()
	token, _, err := jwtService.GenerateAccessToken("user-1", "company-1", role)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const processBody = `{"pay_month":"2025-01","pay_date":"2025-01-31"}`

// ===== PAYROLL GATE =====

func TestProcessPayroll_EmployeeRoleRejectedBeforeService(t *testing.T) {
	router, payrollSpy, _, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleEmployee)

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/process", token, processBody)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, payrollSpy.processCalls)
}

func TestProcessPayroll_MissingTokenRejected(t *testing.T) {
	router, payrollSpy, _, _ := newRouterTestSetup()

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/process", "", processBody)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, payrollSpy.processCalls)
}

func TestProcessPayroll_HRRoleAllowed(t *testing.T) {
	router, payrollSpy, _, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleHR)

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/process", token, processBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, payrollSpy.processCalls)
}

func TestProcessPayroll_OwnerRoleAllowed(t *testing.T) {
	router, payrollSpy, _, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleOwner)

	rec := doRequest(router, http.MethodPost, "/api/v1/payroll/process", token, processBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, payrollSpy.processCalls)
}

func TestListPeriods_EmployeeRoleRejected(t *testing.T) {
	router, payrollSpy, _, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleEmployee)

	rec := doRequest(router, http.MethodGet, "/api/v1/payroll/periods", token, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, payrollSpy.listCalls)
}

// ===== STATUTORY GATE =====

func TestCreateRates_HRRoleRejected(t *testing.T) {
	router, _, ratesSpy, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleHR)

	rec := doRequest(router, http.MethodPost, "/api/v1/statutory/rates", token, "{}")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, ratesSpy.createCalls)
}

func TestCreateRates_OwnerRoleAllowed(t *testing.T) {
	router, _, ratesSpy, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleOwner)

	rec := doRequest(router, http.MethodPost, "/api/v1/statutory/rates", token, "{}")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, ratesSpy.createCalls)
}

func TestGetCurrentRates_AnyAuthenticatedRole(t *testing.T) {
	router, _, _, jwtService := newRouterTestSetup()
	token := mintToken(t, jwtService, user.RoleEmployee)

	rec := doRequest(router, http.MethodGet, "/api/v1/statutory/rates", token, "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

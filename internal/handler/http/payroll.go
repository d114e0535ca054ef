package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kazipay/payroll-backend-go/internal/domain/payroll"
	"github.com/kazipay/payroll-backend-go/internal/domain/user"
	"github.com/kazipay/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Batch processing
	ProcessBatch(w http.ResponseWriter, r *http.Request)
	ComputePayroll(w http.ResponseWriter, r *http.Request)

	// Periods
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriodDetail(w http.ResponseWriter, r *http.Request)
	DeletePeriod(w http.ResponseWriter, r *http.Request)
	DeletePeriods(w http.ResponseWriter, r *http.Request)

	// Maintenance
	DeleteDuplicateRecords(w http.ResponseWriter, r *http.Request)
	PeriodStats(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// identityFromRequest pulls the company and user out of the verified token.
// The service layer takes both explicitly and never reads claims itself.
func identityFromRequest(r *http.Request) (companyID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", user.ErrInvalidToken
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", user.ErrInvalidToken
	}
	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", user.ErrInvalidToken
	}

	return companyID, userID, nil
}

// ========== BATCH PROCESSING ==========

func (h *payrollHandlerImpl) ProcessBatch(w http.ResponseWriter, r *http.Request) {
	companyID, userID, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.ProcessBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ProcessBatch(r.Context(), companyID, userID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll processed", result)
}

func (h *payrollHandlerImpl) ComputePayroll(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ComputePayroll(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== PERIODS ==========

func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListPeriods(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPeriodDetail(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	periodID := chi.URLParam(r, "periodID")

	result, err := h.payrollService.GetPeriodDetail(r.Context(), periodID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	periodID := chi.URLParam(r, "periodID")

	result, err := h.payrollService.DeletePeriod(r.Context(), periodID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period deleted", result)
}

func (h *payrollHandlerImpl) DeletePeriods(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.DeletePeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.DeletePeriods(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll periods deleted", result)
}

// ========== MAINTENANCE ==========

func (h *payrollHandlerImpl) DeleteDuplicateRecords(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.DeleteDuplicateRecords(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Duplicate payroll records removed", result)
}

func (h *payrollHandlerImpl) PeriodStats(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := identityFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.PeriodStats(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

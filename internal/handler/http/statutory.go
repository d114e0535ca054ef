package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kazipay/payroll-backend-go/internal/domain/statutory"
	"github.com/kazipay/payroll-backend-go/internal/handler/http/response"
)

type StatutoryHandler interface {
	GetCurrentRates(w http.ResponseWriter, r *http.Request)
	GetRatesByVersion(w http.ResponseWriter, r *http.Request)
	CreateRates(w http.ResponseWriter, r *http.Request)
	ListRatesVersions(w http.ResponseWriter, r *http.Request)
}

type statutoryHandlerImpl struct {
	ratesService statutory.RatesService
}

func NewStatutoryHandler(ratesService statutory.RatesService) StatutoryHandler {
	return &statutoryHandlerImpl{ratesService: ratesService}
}

func (h *statutoryHandlerImpl) GetCurrentRates(w http.ResponseWriter, r *http.Request) {
	result, err := h.ratesService.Current(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *statutoryHandlerImpl) GetRatesByVersion(w http.ResponseWriter, r *http.Request) {
	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		response.BadRequest(w, "Invalid version", nil)
		return
	}

	result, err := h.ratesService.ByVersion(r.Context(), version)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *statutoryHandlerImpl) CreateRates(w http.ResponseWriter, r *http.Request) {
	var req statutory.CreateRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.ratesService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Statutory rate table created", result)
}

func (h *statutoryHandlerImpl) ListRatesVersions(w http.ResponseWriter, r *http.Request) {
	result, err := h.ratesService.ListVersions(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

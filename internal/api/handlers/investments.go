package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/request"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/response"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/apperrors"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/service"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/validation"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the investmentService.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// CreateInvestment handles POST requests to record a new purchase lot.
//
// Endpoint: POST /api/investment
// Request Body: CreateInvestmentRequest (ticker, purchaseDate, initialAmount, initialUnitPrice, transactionFee)
// Response: 201 Created with the stored Investment
// Error: 400 Bad Request if the body is invalid or validation fails
// Error: 500 Internal Server Error if creation fails
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.CreateInvestment(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, investment)
}

// ListInvestments handles GET requests to retrieve every lot enriched with
// market data and freshly computed deemed-disposal tax figures.
//
// Endpoint: GET /api/investment
// Response: 200 OK with array of InvestmentDetail
// Error: 500 Internal Server Error if retrieval or enrichment fails
func (h *InvestmentHandler) ListInvestments(w http.ResponseWriter, r *http.Request) {
	investments, err := h.investmentService.ListInvestments(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestments.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// GetInvestment handles GET requests to retrieve one enriched lot by ID.
//
// Endpoint: GET /api/investment/{id}
// Response: 200 OK with InvestmentDetail
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the investment does not exist
// Error: 500 Internal Server Error if retrieval or enrichment fails
func (h *InvestmentHandler) GetInvestment(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid investment ID", err.Error())
		return
	}

	investment, err := h.investmentService.GetInvestment(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveInvestment.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

// GetSaleHistory handles GET requests to retrieve the full append-only sale
// history of one lot, including the zero-valued seed row.
//
// Endpoint: GET /api/investment/{id}/history
// Response: 200 OK with array of SaleEvent
// Error: 400 Bad Request if the ID is invalid (validated by middleware)
// Error: 404 Not Found if the investment does not exist
// Error: 500 Internal Server Error if retrieval fails
func (h *InvestmentHandler) GetSaleHistory(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid investment ID", err.Error())
		return
	}

	history, err := h.investmentService.GetSaleHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvestmentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// RecordSale handles PUT requests to record a full or partial sale against a lot.
//
// Endpoint: PUT /api/investment/{id}/sale
// Request Body: RecordSaleRequest (soldShareStatus, saleDate, quantitySold, salePrice)
// Response: 200 OK with the updated Investment
// Error: 400 Bad Request if validation fails or the lot cannot take the sale
// Error: 404 Not Found if the investment does not exist
// Error: 500 Internal Server Error if recording fails
func (h *InvestmentHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ValidateID(chi.URLParam(r, "id"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid investment ID", err.Error())
		return
	}

	req, err := parseJSON[request.RecordSaleRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRecordSale(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	investment, err := h.investmentService.RecordSale(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvestmentNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrInvestmentNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInsufficientShares):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInsufficientShares.Error(), err.Error())
		case errors.Is(err, apperrors.ErrAlreadySold):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrAlreadySold.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to record sale", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, investment)
}

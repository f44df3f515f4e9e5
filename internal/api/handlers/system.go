package handlers

import (
	"net/http"

	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/api/response"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/apperrors"
	"github.com/obriencian/Deemed-Disposal-Tracker-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService     *service.SystemService
	investmentService *service.InvestmentService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService, investmentService *service.InvestmentService) *SystemHandler {
	return &SystemHandler{
		systemService:     systemService,
		investmentService: investmentService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	if err := h.systemService.CheckHealth(); err != nil {
		response.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		})
		return
	}

	response.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:   "healthy",
		Database: "connected",
	})
}

// Version handles GET requests to retrieve version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	info, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to get version information", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, info)
}

// Reset handles POST requests to delete every investment and sale-history
// row and reset the ID counters. Guarded by the internal API-key middleware.
//
// Endpoint: POST /api/system/reset
// Response: 204 No Content on success
// Error: 500 Internal Server Error if the reset fails
func (h *SystemHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.investmentService.Reset(r.Context()); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToReset.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Package handlers contains HTTP request handlers for the triage API.
// Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adhaghani/cybercrime-platform-sub001/internal/models"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/services"
	"github.com/adhaghani/cybercrime-platform-sub001/internal/store"
	"go.uber.org/zap"
)

// TriageHandler serves the priority ranking and team metrics endpoints
type TriageHandler struct {
	triageSvc *services.TriageService
	logger    *zap.SugaredLogger
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(ts *services.TriageService, logger *zap.SugaredLogger) *TriageHandler {
	return &TriageHandler{triageSvc: ts, logger: logger}
}

// PriorityReports handles GET /api/v1/triage/reports
// Returns one page of the ranked unassigned reports. Accepts optional
// ?type=CRIME|FACILITY plus ?page and ?page_size.
func (h *TriageHandler) PriorityReports(w http.ResponseWriter, r *http.Request) {
	typeFilter, err := parseTypeFilter(r.URL.Query().Get("type"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", 10)

	result, err := h.triageSvc.PriorityReports(r.Context(), typeFilter, page, pageSize)
	if err != nil {
		h.respondServiceError(w, "Failed to rank reports", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// TeamMetrics handles GET /api/v1/triage/teams
func (h *TriageHandler) TeamMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.triageSvc.TeamMetrics(r.Context())
	if err != nil {
		h.respondServiceError(w, "Failed to compute team metrics", err)
		return
	}

	if metrics == nil {
		metrics = []models.TeamMetrics{}
	}
	respondJSON(w, http.StatusOK, metrics)
}

// TopPerformers handles GET /api/v1/triage/teams/top
func (h *TriageHandler) TopPerformers(w http.ResponseWriter, r *http.Request) {
	top, err := h.triageSvc.TopPerformers(r.Context())
	if err != nil {
		h.respondServiceError(w, "Failed to compute top performers", err)
		return
	}

	if top == nil {
		top = []models.TeamMetrics{}
	}
	respondJSON(w, http.StatusOK, top)
}

// respondServiceError maps snapshot-fetch failures to 502 (the
// external store is the failing party) and everything else to 500.
func (h *TriageHandler) respondServiceError(w http.ResponseWriter, msg string, err error) {
	h.logger.Errorw(msg, "error", err)
	if errors.Is(err, store.ErrSnapshotFetch) {
		respondError(w, http.StatusBadGateway, msg)
		return
	}
	respondError(w, http.StatusInternalServerError, msg)
}

func parseTypeFilter(raw string) (*models.ReportType, error) {
	if raw == "" {
		return nil, nil
	}
	t := models.ReportType(raw)
	if t != models.ReportTypeCrime && t != models.ReportTypeFacility {
		return nil, errors.New("type must be CRIME or FACILITY")
	}
	return &t, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	if val := r.URL.Query().Get(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

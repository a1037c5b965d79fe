// Package api provides HTTP API handlers.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/credcheck/claimscope/internal/analyzer"
	"github.com/credcheck/claimscope/internal/database"
	"github.com/credcheck/claimscope/internal/models"
)

// Handler contains all HTTP handlers.
type Handler struct {
	engine *analyzer.Engine
	store  database.Store
}

// NewHandler creates a new handler.
func NewHandler(engine *analyzer.Engine, store database.Store) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
	}
}

// HealthCheck returns the service health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

// AnalyzeClaim handles claim analysis requests. Empty or whitespace-only
// text is rejected; the analysis itself cannot fail, so a failure to
// persist still returns the computed analysis with persisted=false.
func (h *Handler) AnalyzeClaim(w http.ResponseWriter, r *http.Request) {
	var req models.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	analysis, err := h.engine.AnalyzeClaim(r.Context(), req.Text, req.PageURL, req.Domain)
	persisted := err == nil
	if err != nil {
		log.Error().Err(err).Msg("Analysis persisted with errors")
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"analysis":  analysis,
		"persisted": persisted,
	})
}

// CurrentAnalysis returns the most recently completed analysis.
func (h *Handler) CurrentAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis := h.engine.Latest()
	if analysis == nil {
		writeError(w, http.StatusNotFound, "No analysis available")
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

// GetHistory returns stored history entries, newest first.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.GetHistory(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get history")
		writeError(w, http.StatusInternalServerError, "Failed to get history")
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": entries,
	})
}

// ClearHistory removes all history entries and reports.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		log.Error().Err(err).Msg("Failed to clear history")
		writeError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// SubmitReport stores a user's verdict on an analyzed claim.
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.ClaimID == "" {
		writeError(w, http.StatusBadRequest, "Claim ID is required")
		return
	}

	report := models.UserReport{
		ClaimID:     req.ClaimID,
		ClaimText:   models.Truncate(req.ClaimText, models.MaxReportClaimLen),
		Domain:      req.Domain,
		Score:       req.Score,
		UserVerdict: req.UserVerdict,
		PageURL:     req.PageURL,
		Timestamp:   time.Now(),
	}

	total, err := h.store.AppendReport(r.Context(), report)
	if err != nil {
		log.Error().Err(err).Msg("Failed to save report")
		writeError(w, http.StatusInternalServerError, "Failed to save report")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"total":   total,
	})
}

// GetReports returns stored user reports, newest first.
func (h *Handler) GetReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.GetReports(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to get reports")
		writeError(w, http.StatusInternalServerError, "Failed to get reports")
		return
	}
	if reports == nil {
		reports = []models.UserReport{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reports": reports,
	})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

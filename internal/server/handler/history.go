package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// HistoryHandler serves persisted opportunity and prediction history. It is
// only registered when a history database is configured.
type HistoryHandler struct {
	opps   domain.OpportunityStore
	preds  domain.PredictionStore
	logger *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler over the given stores.
func NewHistoryHandler(opps domain.OpportunityStore, preds domain.PredictionStore, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		opps:   opps,
		preds:  preds,
		logger: logHandler(logger, "history"),
	}
}

// ListOpportunityHistory responds with the most recently persisted
// opportunities across refreshes.
// GET /api/opportunities/history?limit=
func (h *HistoryHandler) ListOpportunityHistory(w http.ResponseWriter, r *http.Request) {
	opts := parseListOpts(r)
	opps, err := h.opps.ListRecent(r.Context(), opts.Limit)
	if err != nil {
		h.logger.Error("opportunity history query failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if opps == nil {
		opps = []domain.EdgeOpportunity{}
	}
	writeJSON(w, http.StatusOK, opps)
}

// OpportunitySummary responds with opportunity counts by edge type over a
// trailing window.
// GET /api/opportunities/summary?hours=
func (h *HistoryHandler) OpportunitySummary(w http.ResponseWriter, r *http.Request) {
	hours := intQuery(r, "hours", 24)
	if hours < 1 {
		hours = 1
	}
	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)

	counts, err := h.opps.CountByType(r.Context(), since)
	if err != nil {
		h.logger.Error("opportunity summary query failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if counts == nil {
		counts = map[domain.EdgeType]int64{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"since":   since,
		"by_type": counts,
	})
}

// ListPredictionHistory responds with the most recently persisted predictions
// across refreshes.
// GET /api/predictions/history?limit=
func (h *HistoryHandler) ListPredictionHistory(w http.ResponseWriter, r *http.Request) {
	opts := parseListOpts(r)
	preds, err := h.preds.ListRecent(r.Context(), opts.Limit)
	if err != nil {
		h.logger.Error("prediction history query failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "history unavailable")
		return
	}
	if preds == nil {
		preds = []domain.Prediction{}
	}
	writeJSON(w, http.StatusOK, preds)
}

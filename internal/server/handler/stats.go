package handler

import (
	"net/http"
)

// StatsHandler serves dashboard summary statistics.
type StatsHandler struct {
	source SnapshotSource
}

// NewStatsHandler creates a StatsHandler backed by the given source.
func NewStatsHandler(source SnapshotSource) *StatsHandler {
	return &StatsHandler{source: source}
}

// GetStats responds with summary statistics over the current snapshot. An
// empty snapshot yields zero counts, not an error.
// GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.source.Current()
	stats := snap.Stats()
	if stats.MarketsByCategory == nil {
		stats.MarketsByCategory = map[string]int{}
	}
	writeJSON(w, http.StatusOK, stats)
}

package handler

import (
	"net/http"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// SnapshotSource serves the currently published snapshot and the refresh
// state. The in-memory snapshot store satisfies it.
type SnapshotSource interface {
	Current() (domain.Snapshot, bool)
	Loading() bool
}

// StatusHandler reports the refresh state for the dashboard.
type StatusHandler struct {
	source SnapshotSource
}

// NewStatusHandler creates a StatusHandler backed by the given source.
func NewStatusHandler(source SnapshotSource) *StatusHandler {
	return &StatusHandler{source: source}
}

// GetStatus responds with the current loading state and snapshot size.
// GET /api/status
func (h *StatusHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"is_loading":     h.source.Loading(),
		"markets_loaded": 0,
		"last_updated":   nil,
	}
	if snap, ok := h.source.Current(); ok {
		resp["markets_loaded"] = len(snap.Markets)
		resp["last_updated"] = snap.RefreshedAt
	}
	writeJSON(w, http.StatusOK, resp)
}

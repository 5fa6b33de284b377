package handler

import (
	"net/http"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// OpportunityHandler serves detected edge opportunities from the current
// snapshot.
type OpportunityHandler struct {
	source SnapshotSource
}

// NewOpportunityHandler creates an OpportunityHandler backed by the given
// source.
func NewOpportunityHandler(source SnapshotSource) *OpportunityHandler {
	return &OpportunityHandler{source: source}
}

// ListOpportunities responds with opportunities from the current snapshot,
// filtered by the query string. Snapshot order (confidence, highest first) is
// preserved.
// GET /api/opportunities?edge_type=&min_confidence=&risk_level=&limit=
func (h *OpportunityHandler) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.source.Current()

	edgeType := r.URL.Query().Get("edge_type")
	riskLevel := r.URL.Query().Get("risk_level")
	minConfidence := floatQuery(r, "min_confidence", 0)
	opts := parseListOpts(r)

	filtered := make([]domain.EdgeOpportunity, 0, len(snap.Opportunities))
	for _, o := range snap.Opportunities {
		if edgeType != "" && string(o.EdgeType) != edgeType {
			continue
		}
		if minConfidence > 0 && o.Confidence < minConfidence {
			continue
		}
		if riskLevel != "" && o.RiskLevel != riskLevel {
			continue
		}
		filtered = append(filtered, o)
		if len(filtered) == opts.Limit {
			break
		}
	}

	writeJSON(w, http.StatusOK, filtered)
}

package notify

import (
	"fmt"
	"strings"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// highConfidenceFloor is the confidence at which an opportunity is worth an
// immediate alert rather than only appearing in the dashboard.
const highConfidenceFloor = 85.0

// RefreshSummary formats the refresh-completed notification body.
func RefreshSummary(snap domain.Snapshot) (title, message string) {
	stats := snap.Stats()
	title = "Refresh completed"
	message = fmt.Sprintf(
		"Markets: %d\nOpportunities: %d (%d high confidence)\nPredictions: %d\nRefresh: %s",
		stats.TotalMarkets,
		stats.TotalOpportunities,
		stats.HighConfidenceOpps,
		stats.TotalPredictions,
		snap.RefreshID,
	)
	return title, message
}

// HighConfidenceAlert formats an alert for the strongest opportunities of a
// refresh. ok is false when nothing clears the confidence floor.
func HighConfidenceAlert(opps []domain.EdgeOpportunity) (title, message string, ok bool) {
	var lines []string
	for _, o := range opps {
		if o.Confidence < highConfidenceFloor {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s] %s (conf %.0f, ret %.1f%%)",
			o.EdgeType, o.Description, o.Confidence, o.ExpectedReturn))
		if len(lines) == 5 {
			break
		}
	}
	if len(lines) == 0 {
		return "", "", false
	}
	return "High confidence opportunities", strings.Join(lines, "\n"), true
}

// Package research routes markets to category-specific research agents that
// estimate true probability and the resulting edge versus market price.
//
// The current agents are heuristic placeholders with honest (low) confidence;
// each one documents the data sources a real implementation would pull.
package research

import (
	"strings"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// Agent analyzes markets in its specialty and produces predictions.
type Agent interface {
	Name() string
	// CanAnalyze reports whether the agent's specialty covers the market.
	CanAnalyze(m domain.Market) bool
	// Analyze produces a prediction. Callers must check CanAnalyze first.
	Analyze(m domain.Market) domain.Prediction
}

// Research runs the agent on the market and stamps the agent's name, or
// returns ok=false when the market is outside the agent's specialty.
func Research(a Agent, m domain.Market) (domain.Prediction, bool) {
	if !a.CanAnalyze(m) {
		return domain.Prediction{}, false
	}
	pred := a.Analyze(m)
	pred.AgentName = a.Name()
	return pred, true
}

// deriveDirection converts an edge into a trade direction and strength.
// Edges under 2 cents are noise.
func deriveDirection(edge float64) (direction, strength string) {
	switch {
	case edge < 0.02 && edge > -0.02:
		return domain.DirectionHold, domain.StrengthWeak
	case edge > 0:
		if edge > 0.1 {
			return domain.DirectionBuyYes, domain.StrengthStrong
		}
		return domain.DirectionBuyYes, domain.StrengthModerate
	default:
		if edge < -0.1 {
			return domain.DirectionBuyNo, domain.StrengthStrong
		}
		return domain.DirectionBuyNo, domain.StrengthModerate
	}
}

// questionMatches reports whether any keyword appears in the question,
// case-insensitively.
func questionMatches(question string, keywords []string) bool {
	q := strings.ToLower(question)
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// confidenceBand clamps [center-width, center+width] to [0, 1].
func confidenceBand(center, width float64) (low, high float64) {
	low = center - width
	if low < 0 {
		low = 0
	}
	high = center + width
	if high > 1 {
		high = 1
	}
	return low, high
}

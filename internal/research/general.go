package research

import "github.com/alanyoungcy/edgefinder/internal/domain"

// GeneralAgent is the fallback for markets no specialist claims.
type GeneralAgent struct{}

func NewGeneralAgent() *GeneralAgent { return &GeneralAgent{} }

func (a *GeneralAgent) Name() string { return "GeneralAgent" }

func (a *GeneralAgent) CanAnalyze(domain.Market) bool { return true }

func (a *GeneralAgent) Analyze(m domain.Market) domain.Prediction {
	current := m.CurrentPrice
	low, high := confidenceBand(current, 0.30)

	return domain.Prediction{
		MarketID:             m.ID,
		MarketQuestion:       m.Question,
		PredictedProbability: current,
		CurrentPrice:         current,
		Edge:                 0,
		Confidence:           30,
		ConfidenceLow:        low,
		ConfidenceHigh:       high,
		Direction:            domain.DirectionHold,
		Strength:             domain.StrengthWeak,
		Reasoning:            "Uncategorized market. Requires manual research.",
		KeyRisks:             []string{"Unknown factors"},
		Catalysts:            []string{"Varies"},
	}
}

var _ Agent = (*GeneralAgent)(nil)

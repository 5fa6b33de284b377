package research

import "github.com/alanyoungcy/edgefinder/internal/domain"

var economicsKeywords = []string{
	"fed", "interest rate", "inflation", "gdp", "unemployment",
	"recession", "cpi", "fomc",
}

// EconomicsAgent covers macro markets. FRED series, Fed communications and
// futures-implied probabilities are the intended data sources; those are
// public and well-calibrated, hence the higher baseline confidence.
type EconomicsAgent struct{}

func NewEconomicsAgent() *EconomicsAgent { return &EconomicsAgent{} }

func (a *EconomicsAgent) Name() string { return "EconomicsAgent" }

func (a *EconomicsAgent) CanAnalyze(m domain.Market) bool {
	return m.Category == domain.CategoryEconomics || questionMatches(m.Question, economicsKeywords)
}

func (a *EconomicsAgent) Analyze(m domain.Market) domain.Prediction {
	current := m.CurrentPrice
	low, high := confidenceBand(current, 0.10)

	return domain.Prediction{
		MarketID:             m.ID,
		MarketQuestion:       m.Question,
		PredictedProbability: current,
		CurrentPrice:         current,
		Edge:                 0,
		Confidence:           60,
		ConfidenceLow:        low,
		ConfidenceHigh:       high,
		Direction:            domain.DirectionHold,
		Strength:             domain.StrengthWeak,
		Reasoning:            "Would use FRED data, Fed communications, and futures implied probabilities.",
		KeyRisks:             []string{"Data revisions", "Fed pivot", "External shocks"},
		Catalysts:            []string{"FOMC meetings", "CPI releases", "Jobs reports"},
	}
}

var _ Agent = (*EconomicsAgent)(nil)

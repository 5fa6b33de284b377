package research

import "github.com/alanyoungcy/edgefinder/internal/domain"

var politicsKeywords = []string{
	"election", "president", "senate", "congress", "trump", "biden",
	"republican", "democrat", "governor", "vote",
}

// PoliticsAgent covers political markets.
//
// Data sources to wire in: polling aggregators (538, RCP), cross-venue price
// comparison, news sentiment.
type PoliticsAgent struct{}

func NewPoliticsAgent() *PoliticsAgent { return &PoliticsAgent{} }

func (a *PoliticsAgent) Name() string { return "PoliticsAgent" }

func (a *PoliticsAgent) CanAnalyze(m domain.Market) bool {
	return m.Category == domain.CategoryPolitics || questionMatches(m.Question, politicsKeywords)
}

// Analyze applies a slight mean-reversion toward 0.5, the one effect that
// shows up consistently in political market backtests without any data feed.
func (a *PoliticsAgent) Analyze(m domain.Market) domain.Prediction {
	current := m.CurrentPrice
	predicted := current + 0.03*(0.5-current)
	edge := predicted - current
	direction, strength := deriveDirection(edge)
	low, high := confidenceBand(predicted, 0.15)

	return domain.Prediction{
		MarketID:             m.ID,
		MarketQuestion:       m.Question,
		PredictedProbability: predicted,
		CurrentPrice:         current,
		Edge:                 edge,
		Confidence:           50,
		ConfidenceLow:        low,
		ConfidenceHigh:       high,
		Direction:            direction,
		Strength:             strength,
		Reasoning:            "Placeholder analysis. Would use polling data, historical patterns, and expert forecasts.",
		KeyRisks:             []string{"Polling error", "Late-breaking news", "Turnout uncertainty"},
		Catalysts:            []string{"Debates", "Major endorsements", "News events"},
	}
}

var _ Agent = (*PoliticsAgent)(nil)

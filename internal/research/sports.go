package research

import "github.com/alanyoungcy/edgefinder/internal/domain"

var sportsKeywords = []string{
	"nfl", "nba", "mlb", "nhl", "super bowl", "championship",
	"playoffs", "finals", "game", "match", "win",
}

// SportsAgent covers sports markets. Until team statistics, injury reports
// and Vegas lines are wired in, it takes the market price at face value.
type SportsAgent struct{}

func NewSportsAgent() *SportsAgent { return &SportsAgent{} }

func (a *SportsAgent) Name() string { return "SportsAgent" }

func (a *SportsAgent) CanAnalyze(m domain.Market) bool {
	return m.Category == domain.CategorySports || questionMatches(m.Question, sportsKeywords)
}

func (a *SportsAgent) Analyze(m domain.Market) domain.Prediction {
	current := m.CurrentPrice
	low, high := confidenceBand(current, 0.20)

	return domain.Prediction{
		MarketID:             m.ID,
		MarketQuestion:       m.Question,
		PredictedProbability: current,
		CurrentPrice:         current,
		Edge:                 0,
		Confidence:           40,
		ConfidenceLow:        low,
		ConfidenceHigh:       high,
		Direction:            domain.DirectionHold,
		Strength:             domain.StrengthWeak,
		Reasoning:            "Would use team statistics, injury reports, and Vegas lines.",
		KeyRisks:             []string{"Injuries", "Weather", "Unexpected events"},
		Catalysts:            []string{"Injury updates", "Lineup announcements"},
	}
}

var _ Agent = (*SportsAgent)(nil)

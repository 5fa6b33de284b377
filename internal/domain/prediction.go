package domain

// Trade directions for predictions.
const (
	DirectionBuyYes = "buy_yes"
	DirectionBuyNo  = "buy_no"
	DirectionHold   = "hold"
)

// Signal strengths for predictions.
const (
	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthWeak     = "weak"
)

// Prediction is a research agent's estimate of a market's true probability
// versus its current price. At most one prediction exists per market per
// research pass.
type Prediction struct {
	MarketID       string `json:"market_id"`
	MarketQuestion string `json:"market_question"`

	PredictedProbability float64 `json:"predicted_probability"`
	CurrentPrice         float64 `json:"current_price"`
	Edge                 float64 `json:"edge"` // predicted - current

	Confidence     float64 `json:"confidence"` // 0-100
	ConfidenceLow  float64 `json:"confidence_low"`
	ConfidenceHigh float64 `json:"confidence_high"`

	Direction string `json:"direction"` // buy_yes, buy_no, hold
	Strength  string `json:"strength"`  // strong, moderate, weak

	Reasoning string   `json:"reasoning"`
	KeyRisks  []string `json:"key_risks"`
	Catalysts []string `json:"catalysts"`

	AgentName string `json:"agent_name"`
}

package domain

// MarketCategory is the topical category of a market, used for filtering and
// agent routing.
type MarketCategory string

const (
	CategoryPolitics      MarketCategory = "politics"
	CategorySports        MarketCategory = "sports"
	CategoryCrypto        MarketCategory = "crypto"
	CategoryEconomics     MarketCategory = "economics"
	CategoryEntertainment MarketCategory = "entertainment"
	CategoryScience       MarketCategory = "science"
	CategoryLegal         MarketCategory = "legal"
	CategoryOther         MarketCategory = "other"
)

// Token is a single outcome leg of a market. Price is interpreted as the
// market-implied probability of that outcome.
type Token struct {
	TokenID string  `json:"token_id"`
	Outcome string  `json:"outcome"`
	Price   float64 `json:"price"`
	BestBid float64 `json:"best_bid"`
	BestAsk float64 `json:"best_ask"`
}

// Market is one prediction-market question with its outcome tokens and
// trading metadata. The four *Score fields are derived by the scorer; the
// rest comes from the ingestion layer.
type Market struct {
	ID          string         `json:"market_id"`
	ConditionID string         `json:"condition_id"`
	Question    string         `json:"question"`
	Description string         `json:"description"`
	Category    MarketCategory `json:"category"`
	Tags        []string       `json:"tags"`

	// Pricing
	CurrentPrice float64 `json:"current_price"`
	SpreadPct    float64 `json:"spread_pct"`

	// Volume & liquidity (USD)
	Volume24h float64 `json:"volume_24h"`
	Liquidity float64 `json:"liquidity"`

	// Timing
	EndDate             string `json:"end_date,omitempty"`
	DaysUntilResolution *int   `json:"days_until_resolution,omitempty"`

	// Derived scores (0-100), written by the scorer.
	EdgeScore            float64 `json:"edge_score"`
	LiquidityScore       float64 `json:"liquidity_score"`
	EfficiencyScore      float64 `json:"efficiency_score"`
	ResearchabilityScore float64 `json:"researchability_score"`

	Tokens []Token `json:"tokens"`

	URL string `json:"polymarket_url,omitempty"`
}

// YesNoTokens returns the Yes and No legs of a two-token market. ok is false
// when the market is not a binary Yes/No market.
func (m *Market) YesNoTokens() (yes, no Token, ok bool) {
	if len(m.Tokens) != 2 {
		return Token{}, Token{}, false
	}
	var haveYes, haveNo bool
	for _, t := range m.Tokens {
		switch t.Outcome {
		case "Yes":
			yes, haveYes = t, true
		case "No":
			no, haveNo = t, true
		}
	}
	return yes, no, haveYes && haveNo
}

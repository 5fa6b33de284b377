package research

import "github.com/alanyoungcy/edgefinder/internal/domain"

var cryptoKeywords = []string{
	"bitcoin", "btc", "ethereum", "eth", "crypto", "solana",
	"sol", "token", "halving",
}

// CryptoAgent covers crypto markets. Price technicals, on-chain metrics and
// sentiment indicators are the intended data sources.
type CryptoAgent struct{}

func NewCryptoAgent() *CryptoAgent { return &CryptoAgent{} }

func (a *CryptoAgent) Name() string { return "CryptoAgent" }

func (a *CryptoAgent) CanAnalyze(m domain.Market) bool {
	return m.Category == domain.CategoryCrypto || questionMatches(m.Question, cryptoKeywords)
}

func (a *CryptoAgent) Analyze(m domain.Market) domain.Prediction {
	current := m.CurrentPrice
	low, high := confidenceBand(current, 0.25)

	return domain.Prediction{
		MarketID:             m.ID,
		MarketQuestion:       m.Question,
		PredictedProbability: current,
		CurrentPrice:         current,
		Edge:                 0,
		Confidence:           35,
		ConfidenceLow:        low,
		ConfidenceHigh:       high,
		Direction:            domain.DirectionHold,
		Strength:             domain.StrengthWeak,
		Reasoning:            "Would use price technicals, on-chain metrics, and sentiment.",
		KeyRisks:             []string{"Volatility", "Regulatory news", "Market manipulation"},
		Catalysts:            []string{"ETF decisions", "Protocol upgrades", "Macro events"},
	}
}

var _ Agent = (*CryptoAgent)(nil)

package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// Binary price-sum thresholds. YES + NO should be 1.00; small deviations are
// eaten by fees, so only flag sums outside these bounds.
const (
	binaryUnderpricedBelow = 0.97
	binaryOverpricedAbove  = 1.04
	estimatedFeesPct       = 2.0
)

// BinaryMispricing flags two-outcome markets whose YES and NO prices do not
// sum to 1.00. Underpricing is a true arbitrage (buy both sides); overpricing
// only says one side is too expensive without naming which.
type BinaryMispricing struct{}

func NewBinaryMispricing() *BinaryMispricing { return &BinaryMispricing{} }

func (d *BinaryMispricing) Name() string { return "binary_mispricing" }

func (d *BinaryMispricing) Detect(_ context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error) {
	var opps []domain.EdgeOpportunity
	for i := range markets {
		m := &markets[i]
		yes, no, ok := m.YesNoTokens()
		if !ok {
			continue
		}
		total := yes.Price + no.Price

		switch {
		case total < binaryUnderpricedBelow:
			if total <= 0 {
				continue
			}
			expectedReturn := ((1.0-total)/total)*100 - estimatedFeesPct
			if expectedReturn <= 1 {
				continue
			}
			opps = append(opps, domain.EdgeOpportunity{
				ID:              newOpportunityID(),
				EdgeType:        domain.EdgeArbitrage,
				Description:     fmt.Sprintf("Binary underpricing: YES (%s) + NO (%s) = %s", pct(yes.Price), pct(no.Price), pct(total)),
				Confidence:      90,
				ExpectedReturn:  expectedReturn,
				RiskLevel:       domain.RiskLow,
				MarketID:        m.ID,
				MarketQuestion:  m.Question,
				SuggestedAction: fmt.Sprintf("Buy both YES at %s and NO at %s", pct2(yes.Price), pct2(no.Price)),
				Reasoning:       fmt.Sprintf("Combined price %s < 1.00 means guaranteed profit after fees", pct(total)),
				DetectedAt:      time.Now().UTC(),
			})

		case total > binaryOverpricedAbove:
			opps = append(opps, domain.EdgeOpportunity{
				ID:              newOpportunityID(),
				EdgeType:        domain.EdgeMispricing,
				Description:     fmt.Sprintf("Binary overpricing: Sum = %s", pct(total)),
				Confidence:      70,
				ExpectedReturn:  (total - 1.0) * 100 / 2,
				RiskLevel:       domain.RiskMedium,
				MarketID:        m.ID,
				MarketQuestion:  m.Question,
				SuggestedAction: "Identify and sell the overpriced side",
				Reasoning:       fmt.Sprintf("YES (%s) + NO (%s) = %s > 1.00", pct(yes.Price), pct(no.Price), pct(total)),
				DetectedAt:      time.Now().UTC(),
			})
		}
	}
	return opps, nil
}

var _ Detector = (*BinaryMispricing)(nil)

package detect

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

const multiUnderpricedBelow = 0.95

// MultiOutcomeMispricing flags markets with more than two mutually exclusive
// outcomes whose prices sum to well under 1.00. Buying every outcome
// proportionally then locks in the gap.
type MultiOutcomeMispricing struct{}

func NewMultiOutcomeMispricing() *MultiOutcomeMispricing { return &MultiOutcomeMispricing{} }

func (d *MultiOutcomeMispricing) Name() string { return "multi_outcome_mispricing" }

func (d *MultiOutcomeMispricing) Detect(_ context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error) {
	var opps []domain.EdgeOpportunity
	for i := range markets {
		m := &markets[i]
		if len(m.Tokens) <= 2 {
			continue
		}

		var total float64
		for _, t := range m.Tokens {
			total += t.Price
		}
		if total >= multiUnderpricedBelow || total <= 0 {
			continue
		}
		expectedReturn := ((1.0-total)/total)*100 - estimatedFeesPct
		if expectedReturn <= 2 {
			continue
		}

		summary := make([]string, 0, 4)
		for _, t := range m.Tokens[:min(4, len(m.Tokens))] {
			summary = append(summary, fmt.Sprintf("%s: %s", t.Outcome, pct(t.Price)))
		}

		opps = append(opps, domain.EdgeOpportunity{
			ID:              newOpportunityID(),
			EdgeType:        domain.EdgeArbitrage,
			Description:     fmt.Sprintf("Multi-outcome underpricing: Sum = %s", pct(total)),
			Confidence:      85,
			ExpectedReturn:  expectedReturn,
			RiskLevel:       domain.RiskLow,
			MarketID:        m.ID,
			MarketQuestion:  m.Question,
			SuggestedAction: "Buy all outcomes proportionally",
			Reasoning:       fmt.Sprintf("Outcomes: %s. Total %s < 1.00", strings.Join(summary, ", "), pct(total)),
			DetectedAt:      time.Now().UTC(),
		})
	}
	return opps, nil
}

var _ Detector = (*MultiOutcomeMispricing)(nil)

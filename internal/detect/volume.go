package detect

import (
	"context"
	"fmt"
	"time"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// DefaultVolumeSpikeThreshold is the volume-to-liquidity ratio above which a
// market is flagged. Turning over the whole book three times a day usually
// means someone is trading on information.
const DefaultVolumeSpikeThreshold = 3.0

// VolumeSpike flags markets whose 24h volume is a large multiple of their
// liquidity. Direction is unknown, so the expected return is zero and the
// signal is research-only.
type VolumeSpike struct {
	threshold float64
}

func NewVolumeSpike(threshold float64) *VolumeSpike {
	if threshold <= 0 {
		threshold = DefaultVolumeSpikeThreshold
	}
	return &VolumeSpike{threshold: threshold}
}

func (d *VolumeSpike) Name() string { return "volume_spike" }

func (d *VolumeSpike) Detect(_ context.Context, markets []domain.Market) ([]domain.EdgeOpportunity, error) {
	var opps []domain.EdgeOpportunity
	for i := range markets {
		m := &markets[i]
		if m.Liquidity == 0 {
			continue
		}
		ratio := m.Volume24h / m.Liquidity
		if ratio <= d.threshold {
			continue
		}
		opps = append(opps, domain.EdgeOpportunity{
			ID:              newOpportunityID(),
			EdgeType:        domain.EdgeVolumeSignal,
			Description:     fmt.Sprintf("Volume spike: %.1fx liquidity", ratio),
			Confidence:      55,
			ExpectedReturn:  0,
			RiskLevel:       domain.RiskHigh,
			MarketID:        m.ID,
			MarketQuestion:  m.Question,
			SuggestedAction: "Research why volume is elevated. Potential informed trading.",
			Reasoning:       fmt.Sprintf("24h volume (%s) is %.1fx liquidity (%s)", money(m.Volume24h), ratio, money(m.Liquidity)),
			DetectedAt:      time.Now().UTC(),
		})
	}
	return opps, nil
}

var _ Detector = (*VolumeSpike)(nil)

package research

import (
	"log/slog"
	"math"
	"sort"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// Orchestrator routes each market to the first agent that claims it.
// Specialists come first; GeneralAgent claims everything, so FindAgent always
// succeeds.
type Orchestrator struct {
	agents []Agent
	logger *slog.Logger
}

func NewOrchestrator(logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		agents: []Agent{
			NewPoliticsAgent(),
			NewSportsAgent(),
			NewCryptoAgent(),
			NewEconomicsAgent(),
			NewGeneralAgent(),
		},
		logger: logger.With(slog.String("component", "research")),
	}
}

// FindAgent returns the first agent that can analyze the market.
func (o *Orchestrator) FindAgent(m domain.Market) Agent {
	for _, a := range o.agents {
		if a.CanAnalyze(m) {
			return a
		}
	}
	return o.agents[len(o.agents)-1]
}

// ResearchMarket produces a prediction for one market.
func (o *Orchestrator) ResearchMarket(m domain.Market) domain.Prediction {
	agent := o.FindAgent(m)
	pred, _ := Research(agent, m)
	return pred
}

// ResearchMarkets researches each market, drops predictions whose absolute
// edge is under minEdge, and returns the rest sorted by absolute edge,
// largest first. The sort is stable so input order breaks ties.
func (o *Orchestrator) ResearchMarkets(markets []domain.Market, minEdge float64) []domain.Prediction {
	var preds []domain.Prediction
	for _, m := range markets {
		pred := o.ResearchMarket(m)
		if math.Abs(pred.Edge) >= minEdge {
			preds = append(preds, pred)
		}
	}
	sort.SliceStable(preds, func(i, j int) bool {
		return math.Abs(preds[i].Edge) > math.Abs(preds[j].Edge)
	})
	o.logger.Info("research pass complete",
		slog.Int("markets", len(markets)),
		slog.Int("predictions", len(preds)),
	)
	return preds
}

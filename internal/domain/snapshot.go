package domain

import "time"

// Snapshot is the result of one full refresh pass: scored markets, detected
// opportunities, and research predictions. Snapshots are immutable once
// published; a new refresh replaces the whole value.
type Snapshot struct {
	RefreshID     string            `json:"refresh_id"`
	Markets       []Market          `json:"markets"`
	Opportunities []EdgeOpportunity `json:"opportunities"`
	Predictions   []Prediction      `json:"predictions"`
	RefreshedAt   time.Time         `json:"refreshed_at"`
}

// DashboardStats summarizes a snapshot for the dashboard.
type DashboardStats struct {
	TotalMarkets       int            `json:"total_markets"`
	TotalOpportunities int            `json:"total_opportunities"`
	HighConfidenceOpps int            `json:"high_confidence_opps"`
	TotalPredictions   int            `json:"total_predictions"`
	MarketsByCategory  map[string]int `json:"markets_by_category"`
	LastUpdated        *time.Time     `json:"last_updated,omitempty"`
}

// Stats computes dashboard statistics for the snapshot. High confidence means
// confidence >= 70.
func (s *Snapshot) Stats() DashboardStats {
	byCategory := make(map[string]int)
	for _, m := range s.Markets {
		byCategory[string(m.Category)]++
	}
	highConf := 0
	for _, o := range s.Opportunities {
		if o.Confidence >= 70 {
			highConf++
		}
	}
	stats := DashboardStats{
		TotalMarkets:       len(s.Markets),
		TotalOpportunities: len(s.Opportunities),
		HighConfidenceOpps: highConf,
		TotalPredictions:   len(s.Predictions),
		MarketsByCategory:  byCategory,
	}
	if !s.RefreshedAt.IsZero() {
		t := s.RefreshedAt
		stats.LastUpdated = &t
	}
	return stats
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// PredictionStore implements domain.PredictionStore using PostgreSQL.
type PredictionStore struct {
	pool *pgxpool.Pool
}

func NewPredictionStore(pool *pgxpool.Pool) *PredictionStore {
	return &PredictionStore{pool: pool}
}

// InsertBatch stores the predictions of one research pass.
func (s *PredictionStore) InsertBatch(ctx context.Context, refreshID string, preds []domain.Prediction) error {
	if len(preds) == 0 {
		return nil
	}

	const query = `
		INSERT INTO prediction_history (
			refresh_id, market_id, market_question, predicted_probability,
			current_price, edge, confidence, confidence_low, confidence_high,
			direction, strength, reasoning, key_risks, catalysts, agent_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (refresh_id, market_id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, p := range preds {
		batch.Queue(query,
			refreshID, p.MarketID, p.MarketQuestion, p.PredictedProbability,
			p.CurrentPrice, p.Edge, p.Confidence, p.ConfidenceLow, p.ConfidenceHigh,
			p.Direction, p.Strength, p.Reasoning, p.KeyRisks, p.Catalysts, p.AgentName,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range preds {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("postgres: insert prediction batch: %w", err)
		}
	}
	return nil
}

// ListRecent returns the most recently stored predictions.
func (s *PredictionStore) ListRecent(ctx context.Context, limit int) ([]domain.Prediction, error) {
	if limit <= 0 {
		limit = 50
	}

	const query = `
		SELECT market_id, market_question, predicted_probability,
			current_price, edge, confidence, confidence_low, confidence_high,
			direction, strength, reasoning, key_risks, catalysts, agent_name
		FROM prediction_history
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list predictions: %w", err)
	}
	defer rows.Close()

	var preds []domain.Prediction
	for rows.Next() {
		var p domain.Prediction
		if err := rows.Scan(
			&p.MarketID, &p.MarketQuestion, &p.PredictedProbability,
			&p.CurrentPrice, &p.Edge, &p.Confidence, &p.ConfidenceLow, &p.ConfidenceHigh,
			&p.Direction, &p.Strength, &p.Reasoning, &p.KeyRisks, &p.Catalysts, &p.AgentName,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan prediction: %w", err)
		}
		preds = append(preds, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate predictions: %w", err)
	}
	return preds, nil
}

var _ domain.PredictionStore = (*PredictionStore)(nil)

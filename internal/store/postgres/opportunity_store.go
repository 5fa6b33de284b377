package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// OpportunityStore implements domain.OpportunityStore using PostgreSQL.
type OpportunityStore struct {
	pool *pgxpool.Pool
}

func NewOpportunityStore(pool *pgxpool.Pool) *OpportunityStore {
	return &OpportunityStore{pool: pool}
}

const oppSelectCols = `id, edge_type, description, confidence, expected_return,
	risk_level, market_id, market_question, suggested_action, reasoning, detected_at`

// InsertBatch stores the opportunities of one refresh pass.
func (s *OpportunityStore) InsertBatch(ctx context.Context, refreshID string, opps []domain.EdgeOpportunity) error {
	if len(opps) == 0 {
		return nil
	}

	const query = `
		INSERT INTO opportunity_history (
			id, refresh_id, edge_type, description, confidence, expected_return,
			risk_level, market_id, market_question, suggested_action, reasoning, detected_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (refresh_id, id) DO NOTHING`

	batch := &pgx.Batch{}
	for _, o := range opps {
		batch.Queue(query,
			o.ID, refreshID, string(o.EdgeType), o.Description, o.Confidence, o.ExpectedReturn,
			o.RiskLevel, o.MarketID, o.MarketQuestion, o.SuggestedAction, o.Reasoning, o.DetectedAt,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range opps {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("postgres: insert opportunity batch: %w", err)
		}
	}
	return nil
}

// ListRecent returns the most recently detected opportunities.
func (s *OpportunityStore) ListRecent(ctx context.Context, limit int) ([]domain.EdgeOpportunity, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s FROM opportunity_history
		ORDER BY detected_at DESC
		LIMIT $1`, oppSelectCols)

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list opportunities: %w", err)
	}
	defer rows.Close()

	var opps []domain.EdgeOpportunity
	for rows.Next() {
		var o domain.EdgeOpportunity
		var edgeType string
		if err := rows.Scan(
			&o.ID, &edgeType, &o.Description, &o.Confidence, &o.ExpectedReturn,
			&o.RiskLevel, &o.MarketID, &o.MarketQuestion, &o.SuggestedAction, &o.Reasoning, &o.DetectedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity: %w", err)
		}
		o.EdgeType = domain.EdgeType(edgeType)
		opps = append(opps, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate opportunities: %w", err)
	}
	return opps, nil
}

// CountByType counts opportunities detected since the given time, per edge
// type.
func (s *OpportunityStore) CountByType(ctx context.Context, since time.Time) (map[domain.EdgeType]int64, error) {
	const query = `
		SELECT edge_type, COUNT(*) FROM opportunity_history
		WHERE detected_at >= $1
		GROUP BY edge_type`

	rows, err := s.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("postgres: count opportunities: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.EdgeType]int64)
	for rows.Next() {
		var edgeType string
		var count int64
		if err := rows.Scan(&edgeType, &count); err != nil {
			return nil, fmt.Errorf("postgres: scan opportunity count: %w", err)
		}
		counts[domain.EdgeType(edgeType)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate opportunity counts: %w", err)
	}
	return counts, nil
}

var _ domain.OpportunityStore = (*OpportunityStore)(nil)

package domain

import (
	"context"
	"time"
)

// ListOpts provides pagination for list queries.
type ListOpts struct {
	Limit  int
	Offset int
}

// SnapshotStore holds the snapshot currently being served. Implementations
// must make a published snapshot fully visible before Loading reports false
// again.
type SnapshotStore interface {
	// Publish replaces the served snapshot.
	Publish(snap Snapshot)
	// Current returns the served snapshot. ok is false before the first
	// publish.
	Current() (Snapshot, bool)
	// BeginRefresh marks a refresh in progress. It returns
	// ErrRefreshInProgress when one is already running.
	BeginRefresh() error
	// EndRefresh clears the in-progress flag.
	EndRefresh()
	// Loading reports whether a refresh is in progress.
	Loading() bool
}

// OpportunityStore persists opportunity history across refreshes.
type OpportunityStore interface {
	InsertBatch(ctx context.Context, refreshID string, opps []EdgeOpportunity) error
	ListRecent(ctx context.Context, limit int) ([]EdgeOpportunity, error)
	CountByType(ctx context.Context, since time.Time) (map[EdgeType]int64, error)
}

// PredictionStore persists prediction history across refreshes.
type PredictionStore interface {
	InsertBatch(ctx context.Context, refreshID string, preds []Prediction) error
	ListRecent(ctx context.Context, limit int) ([]Prediction, error)
}

// Package memory holds the snapshot currently being served. The whole
// snapshot swaps atomically on publish, so readers never see a half-refreshed
// state.
package memory

import (
	"sync"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// SnapshotStore is a mutex-guarded single-slot snapshot holder.
type SnapshotStore struct {
	mu        sync.RWMutex
	snap      domain.Snapshot
	published bool
	loading   bool
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Publish replaces the served snapshot.
func (s *SnapshotStore) Publish(snap domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.published = true
}

// Current returns the served snapshot. ok is false before the first publish.
func (s *SnapshotStore) Current() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.published
}

// BeginRefresh marks a refresh in progress. Concurrent refreshes are
// rejected with ErrRefreshInProgress.
func (s *SnapshotStore) BeginRefresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return domain.ErrRefreshInProgress
	}
	s.loading = true
	return nil
}

// EndRefresh clears the in-progress flag.
func (s *SnapshotStore) EndRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Loading reports whether a refresh is in progress.
func (s *SnapshotStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

var _ domain.SnapshotStore = (*SnapshotStore)(nil)

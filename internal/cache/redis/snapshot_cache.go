package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// snapshotKey holds the latest published snapshot as one JSON blob.
const snapshotKey = "edgefinder:snapshot:latest"

// snapshotTTL is generous: a stale snapshot on boot is still better than an
// empty dashboard while the first refresh runs.
const snapshotTTL = 24 * time.Hour

// SnapshotCache implements domain.SnapshotCache with a single JSON value.
type SnapshotCache struct {
	rdb *redis.Client
}

func NewSnapshotCache(c *Client) *SnapshotCache {
	return &SnapshotCache{rdb: c.Underlying()}
}

// Set stores the snapshot, replacing any previous one.
func (sc *SnapshotCache) Set(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("redis: marshal snapshot %s: %w", snap.RefreshID, err)
	}
	if err := sc.rdb.Set(ctx, snapshotKey, data, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis: set snapshot: %w", err)
	}
	return nil
}

// Get retrieves the cached snapshot. It returns domain.ErrEmptySnapshot when
// no snapshot has been cached yet.
func (sc *SnapshotCache) Get(ctx context.Context) (domain.Snapshot, error) {
	data, err := sc.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Snapshot{}, domain.ErrEmptySnapshot
		}
		return domain.Snapshot{}, fmt.Errorf("redis: get snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("redis: unmarshal snapshot: %w", err)
	}
	return snap, nil
}

var _ domain.SnapshotCache = (*SnapshotCache)(nil)

package domain

import "context"

// SnapshotCache caches the latest published snapshot so restarted instances
// can serve immediately while the first refresh runs.
type SnapshotCache interface {
	Set(ctx context.Context, snap Snapshot) error
	Get(ctx context.Context) (Snapshot, error)
}

// EventBus publishes refresh lifecycle events to interested consumers (the
// WebSocket hub, notifiers on other instances).
type EventBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}

// BlobWriter writes archived snapshot objects to blob storage.
type BlobWriter interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

package s3blob

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

// SnapshotArchiver writes each published snapshot to blob storage as a
// dated JSON object, keeping full refresh history beyond what the relational
// stores retain.
type SnapshotArchiver struct {
	writer domain.BlobWriter
	logger *slog.Logger
}

func NewSnapshotArchiver(writer domain.BlobWriter, logger *slog.Logger) *SnapshotArchiver {
	return &SnapshotArchiver{
		writer: writer,
		logger: logger.With(slog.String("component", "archiver")),
	}
}

// Archive uploads the snapshot and returns the object key, shaped
// snapshots/YYYY/MM/DD/<refresh_id>.json.
func (a *SnapshotArchiver) Archive(ctx context.Context, snap domain.Snapshot) (string, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return "", fmt.Errorf("s3blob: marshal snapshot %s: %w", snap.RefreshID, err)
	}

	key := fmt.Sprintf("snapshots/%s/%s.json",
		snap.RefreshedAt.UTC().Format("2006/01/02"), snap.RefreshID)

	if err := a.writer.Put(ctx, key, data, "application/json"); err != nil {
		return "", fmt.Errorf("s3blob: archive snapshot %s: %w", snap.RefreshID, err)
	}

	a.logger.Info("snapshot archived",
		slog.String("key", key),
		slog.Int("bytes", len(data)),
	)
	return key, nil
}

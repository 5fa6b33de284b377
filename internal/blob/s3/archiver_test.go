package s3blob

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/edgefinder/internal/domain"
)

type fakeWriter struct {
	key         string
	data        []byte
	contentType string
	err         error
}

func (f *fakeWriter) Put(_ context.Context, key string, data []byte, contentType string) error {
	if f.err != nil {
		return f.err
	}
	f.key, f.data, f.contentType = key, data, contentType
	return nil
}

func TestSnapshotArchiver(t *testing.T) {
	writer := &fakeWriter{}
	a := NewSnapshotArchiver(writer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	snap := domain.Snapshot{
		RefreshID:   "abc12345",
		Markets:     []domain.Market{{ID: "m1"}},
		RefreshedAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}

	key, err := a.Archive(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, "snapshots/2026/08/28/abc12345.json", key)
	assert.Equal(t, "application/json", writer.contentType)

	var got domain.Snapshot
	require.NoError(t, json.Unmarshal(writer.data, &got))
	assert.Equal(t, "abc12345", got.RefreshID)
	assert.Len(t, got.Markets, 1)
}

func TestSnapshotArchiverWriteFailure(t *testing.T) {
	writer := &fakeWriter{err: errors.New("bucket gone")}
	a := NewSnapshotArchiver(writer, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := a.Archive(context.Background(), domain.Snapshot{RefreshID: "x"})
	require.Error(t, err)
}

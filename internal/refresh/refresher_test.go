package refresh

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/edgefinder/internal/domain"
	"github.com/alanyoungcy/edgefinder/internal/ingest"
	"github.com/alanyoungcy/edgefinder/internal/store/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeIngestor struct {
	markets []domain.Market
	err     error
}

func (f *fakeIngestor) Ingest(context.Context, ingest.Options) ([]domain.Market, error) {
	return f.markets, f.err
}

type fakeDetector struct {
	opps []domain.EdgeOpportunity
	err  error
}

func (f *fakeDetector) DetectAll(context.Context, []domain.Market) ([]domain.EdgeOpportunity, error) {
	return f.opps, f.err
}

type fakeResearcher struct {
	got   []domain.Market
	preds []domain.Prediction
}

func (f *fakeResearcher) ResearchMarkets(markets []domain.Market, _ float64) []domain.Prediction {
	f.got = markets
	return f.preds
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeNotifier) Notify(_ context.Context, event, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type fakeArchiver struct {
	archived int
	err      error
}

func (f *fakeArchiver) Archive(context.Context, domain.Snapshot) (string, error) {
	f.archived++
	return "key", f.err
}

func markets(n int) []domain.Market {
	out := make([]domain.Market, n)
	for i := range out {
		out[i] = domain.Market{ID: string(rune('a' + i))}
	}
	return out
}

func TestRunPublishesSnapshot(t *testing.T) {
	store := memory.NewSnapshotStore()
	researcher := &fakeResearcher{preds: []domain.Prediction{{MarketID: "a"}}}
	notifier := &fakeNotifier{}
	archiver := &fakeArchiver{}

	r := New(Config{},
		&fakeIngestor{markets: markets(3)},
		&fakeDetector{opps: []domain.EdgeOpportunity{{ID: "o1", Confidence: 90}}},
		researcher,
		store,
		Sinks{Notifier: notifier, Archiver: archiver},
		testLogger(),
	)

	snap, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.RefreshID, 8)
	assert.Len(t, snap.Markets, 3)
	assert.Len(t, snap.Opportunities, 1)
	assert.Len(t, snap.Predictions, 1)
	assert.False(t, snap.RefreshedAt.IsZero())

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, snap.RefreshID, got.RefreshID)
	assert.False(t, store.Loading())

	assert.Equal(t, 1, archiver.archived)
	assert.Contains(t, notifier.events, "refresh_completed")
	assert.Contains(t, notifier.events, "high_confidence_opportunity")
}

func TestRunResearchesTopMarketsOnly(t *testing.T) {
	store := memory.NewSnapshotStore()
	researcher := &fakeResearcher{}

	r := New(Config{ResearchTop: 2},
		&fakeIngestor{markets: markets(5)},
		&fakeDetector{},
		researcher,
		store,
		Sinks{},
		testLogger(),
	)

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, researcher.got, 2)
}

func TestRunIngestFailureLeavesOldSnapshot(t *testing.T) {
	store := memory.NewSnapshotStore()
	store.Publish(domain.Snapshot{RefreshID: "old"})
	notifier := &fakeNotifier{}

	r := New(Config{},
		&fakeIngestor{err: errors.New("gamma down")},
		&fakeDetector{},
		&fakeResearcher{},
		store,
		Sinks{Notifier: notifier},
		testLogger(),
	)

	_, err := r.Run(context.Background())
	require.Error(t, err)

	got, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "old", got.RefreshID)
	assert.False(t, store.Loading())
	assert.Contains(t, notifier.events, "refresh_failed")
}

func TestRunRejectsConcurrentRefresh(t *testing.T) {
	store := memory.NewSnapshotStore()
	require.NoError(t, store.BeginRefresh())

	r := New(Config{}, &fakeIngestor{}, &fakeDetector{}, &fakeResearcher{}, store, Sinks{}, testLogger())

	_, err := r.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrRefreshInProgress)
}

func TestRunSinkFailureDoesNotFailRefresh(t *testing.T) {
	store := memory.NewSnapshotStore()
	archiver := &fakeArchiver{err: errors.New("bucket gone")}

	r := New(Config{},
		&fakeIngestor{markets: markets(1)},
		&fakeDetector{},
		&fakeResearcher{},
		store,
		Sinks{Archiver: archiver},
		testLogger(),
	)

	_, err := r.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, archiver.archived)
}

package catalogsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// countingFetcher records how many times it was polled
type countingFetcher struct {
	mu    sync.Mutex
	count int
}

func (f *countingFetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
	return []byte(widgetSheet), nil
}

func (f *countingFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

func newTestWatcher(t *testing.T, fetcher Fetcher, interval time.Duration) *Watcher {
	t.Helper()
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	coordinator := NewCoordinator(fetcher, reconciler, 0, zap.NewNop())
	return NewWatcher(coordinator, interval, zap.NewNop())
}

func TestWatcher_RunsImmediatelyThenOnInterval(t *testing.T) {
	fetcher := &countingFetcher{}
	watcher := newTestWatcher(t, fetcher, 30*time.Millisecond)

	require.NoError(t, watcher.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = watcher.Stop(stopCtx)
	}()

	// Startup pass fires without waiting for the first tick
	assert.Eventually(t, func() bool { return fetcher.calls() >= 1 }, time.Second, 5*time.Millisecond)
	// Then scheduled passes keep coming
	assert.Eventually(t, func() bool { return fetcher.calls() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopTerminatesLoop(t *testing.T) {
	fetcher := &countingFetcher{}
	watcher := newTestWatcher(t, fetcher, 20*time.Millisecond)

	require.NoError(t, watcher.Start(context.Background()))
	assert.Eventually(t, func() bool { return fetcher.calls() >= 1 }, time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, watcher.Stop(stopCtx))

	after := fetcher.calls()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, fetcher.calls(), "no polls after Stop returns")
}

func TestWatcher_StartIsIdempotent(t *testing.T) {
	fetcher := &countingFetcher{}
	watcher := newTestWatcher(t, fetcher, time.Hour)

	require.NoError(t, watcher.Start(context.Background()))
	require.NoError(t, watcher.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, watcher.Stop(stopCtx))
	require.NoError(t, watcher.Stop(stopCtx))
}

func TestWatcher_SurvivesFailingRuns(t *testing.T) {
	fetcher := &flakyFetcher{}
	watcher := newTestWatcher(t, fetcher, 20*time.Millisecond)

	require.NoError(t, watcher.Start(context.Background()))
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = watcher.Stop(stopCtx)
	}()

	// First pass fails, later passes still happen and succeed
	assert.Eventually(t, func() bool { return fetcher.calls() >= 3 }, 2*time.Second, 10*time.Millisecond)
}

// flakyFetcher fails its first call and succeeds afterwards
type flakyFetcher struct {
	mu    sync.Mutex
	count int
}

func (f *flakyFetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.count++
	if f.count == 1 {
		return nil, &FetchError{URL: "http://sheet", StatusCode: 500}
	}
	return []byte(widgetSheet), nil
}

func (f *flakyFetcher) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

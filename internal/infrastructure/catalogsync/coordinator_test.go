package catalogsync

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nexkart/backend/internal/domain/catalog"
	"github.com/nexkart/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fetcherFunc adapts a function to the Fetcher interface
type fetcherFunc func(ctx context.Context) ([]byte, error)

func (f fetcherFunc) Fetch(ctx context.Context) ([]byte, error) { return f(ctx) }

// staticFetcher serves the current value of a mutex-guarded sheet
type staticFetcher struct {
	mu   sync.Mutex
	data []byte
}

func (f *staticFetcher) Fetch(ctx context.Context) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data, nil
}

func (f *staticFetcher) set(data []byte) {
	f.mu.Lock()
	f.data = data
	f.mu.Unlock()
}

const widgetSheet = `name,description,original_price,image_url,stock,retail_price,wholesaler_price
Widget,A widget,100,https://img/w.png,5,90,80
`

const widgetRestockedSheet = `name,description,original_price,image_url,stock,retail_price,wholesaler_price
Widget,A widget,100,https://img/w.png,17,90,80
`

func newTestCoordinator(t *testing.T, fetcher Fetcher) (*Coordinator, *persistence.Database) {
	t.Helper()
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	coordinator := NewCoordinator(fetcher, reconciler, 0, zap.NewNop())
	return coordinator, db
}

func TestCoordinator_WidgetEndToEnd(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, db := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	result, err := coordinator.TryRun(ctx, TriggerStartup)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 0, result.Updated)

	var widget catalog.Product
	require.NoError(t, db.DB.First(&widget, "name = ?", "Widget").Error)
	assert.Equal(t, 5, widget.Stock)

	// Restock in the sheet, next scheduled poll picks it up
	fetcher.set([]byte(widgetRestockedSheet))
	result, err = coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
	assert.Equal(t, 0, result.Added)
	assert.Equal(t, 1, result.Updated)

	require.NoError(t, db.DB.First(&widget, "name = ?", "Widget").Error)
	assert.Equal(t, 17, widget.Stock)
}

func TestCoordinator_ScheduledShortCircuitsOnUnchangedBytes(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, db := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	first, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, first.Status)

	// Remove the product behind the coordinator's back; an unchanged
	// scheduled run must not touch the store and so must not restore it
	require.NoError(t, db.DB.Delete(&catalog.Product{}, "name = ?", "Widget").Error)

	second, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, second.Status)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)

	var count int64
	require.NoError(t, db.DB.Model(&catalog.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "unchanged run performed zero writes")
}

func TestCoordinator_ManualAndStartupBypassDigest(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, _ := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	first, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, first.Status)

	for _, trigger := range []Trigger{TriggerManual, TriggerStartup} {
		result, err := coordinator.TryRun(ctx, trigger)
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, result.Status, "trigger %s must reconcile despite unchanged bytes", trigger)
		assert.Equal(t, 1, result.Updated)
	}
}

func TestCoordinator_AnyByteDifferenceReconciles(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, _ := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	_, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)

	// A trailing newline changes no parsed values but changes bytes
	fetcher.set([]byte(widgetSheet + "\n"))
	result, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, result.Status)
}

func TestCoordinator_ConcurrentRunsSingleSlot(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startOnce sync.Once

	fetcher := fetcherFunc(func(ctx context.Context) ([]byte, error) {
		startOnce.Do(func() { close(started) })
		<-release
		return []byte(widgetSheet), nil
	})
	coordinator, _ := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	var slowResult *RunResult
	go func() {
		defer wg.Done()
		slowResult, _ = coordinator.TryRun(ctx, TriggerScheduled)
	}()

	<-started
	fastResult, err := coordinator.TryRun(ctx, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, StatusSkippedBusy, fastResult.Status)
	assert.Zero(t, fastResult.Added)

	close(release)
	wg.Wait()
	require.NotNil(t, slowResult)
	assert.Equal(t, StatusCompleted, slowResult.Status)
}

func TestCoordinator_FailureKeepsFingerprint(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, _ := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	first, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	digest := first.Fingerprint
	require.NotEmpty(t, digest)

	// Corrupt sheet: coercion fails, run fails, fingerprint stays
	fetcher.set([]byte(`name,description,original_price,image_url,stock,retail_price,wholesaler_price
Widget,A widget,not-a-price,,5,90,80
`))
	result, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, digest, coordinator.LastFingerprint())

	// Source restored: the scheduled run still short-circuits against
	// the last successful digest
	fetcher.set([]byte(widgetSheet))
	result, err = coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, result.Status)
}

func TestCoordinator_FetchFailureIsFailedRun(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context) ([]byte, error) {
		return nil, &FetchError{URL: "http://sheet", StatusCode: 500}
	})
	coordinator, _ := newTestCoordinator(t, fetcher)

	result, err := coordinator.TryRun(context.Background(), TriggerScheduled)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Empty(t, coordinator.LastFingerprint())
}

func TestCoordinator_RunTimeout(t *testing.T) {
	fetcher := fetcherFunc(func(ctx context.Context) ([]byte, error) {
		select {
		case <-ctx.Done():
			return nil, &FetchError{URL: "http://sheet", Err: ctx.Err()}
		case <-time.After(2 * time.Second):
			return []byte(widgetSheet), nil
		}
	})
	db := setupSyncTestDB(t)
	reconciler := NewReconciler(db, zap.NewNop())
	coordinator := NewCoordinator(fetcher, reconciler, 50*time.Millisecond, zap.NewNop())

	result, err := coordinator.TryRun(context.Background(), TriggerManual)
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
}

func TestCoordinator_OnCatalogChangedHook(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, _ := newTestCoordinator(t, fetcher)

	calls := 0
	coordinator.OnCatalogChanged(func(ctx context.Context) { calls++ })
	ctx := context.Background()

	_, err := coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Unchanged run writes nothing, hook must not fire
	_, err = coordinator.TryRun(ctx, TriggerScheduled)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCoordinator_TryImport(t *testing.T) {
	fetcher := &staticFetcher{data: []byte(widgetSheet)}
	coordinator, db := newTestCoordinator(t, fetcher)
	ctx := context.Background()

	t.Run("reconciles uploaded sheet without moving fingerprint", func(t *testing.T) {
		result, err := coordinator.TryImport(ctx, []byte(widgetSheet))
		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, result.Status)
		assert.Equal(t, 1, result.Added)
		assert.Empty(t, coordinator.LastFingerprint())

		var count int64
		require.NoError(t, db.DB.Model(&catalog.Product{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("rejects sheet with missing columns", func(t *testing.T) {
		result, err := coordinator.TryImport(ctx, []byte("name,stock\nWidget,1\n"))
		require.Error(t, err)
		assert.Equal(t, StatusFailed, result.Status)
	})
}

package catalogsync

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Watcher polls the remote sheet on a fixed interval. One
// unconditional pass runs at start, then scheduled passes follow
// every interval. Run failures are logged and the loop keeps going.
type Watcher struct {
	coordinator *Coordinator
	interval    time.Duration
	logger      *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewWatcher creates a new Watcher
func NewWatcher(coordinator *Coordinator, interval time.Duration, logger *zap.Logger) *Watcher {
	return &Watcher{
		coordinator: coordinator,
		interval:    interval,
		logger:      logger,
	}
}

// Start starts the poll loop
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = true
	w.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.runLoop(ctx)

	w.logger.Info("Catalog watcher started",
		zap.Duration("poll_interval", w.interval),
	)
	return nil
}

// Stop stops the poll loop and waits for it to finish, bounded by ctx
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return nil
	}
	w.isRunning = false
	w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("Catalog watcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Watcher) runLoop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.runOnce(ctx, TriggerStartup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.runOnce(ctx, TriggerScheduled)
		}
	}
}

// runOnce executes one pass. TryRun already logs stage failures; the
// loop only has to survive them.
func (w *Watcher) runOnce(ctx context.Context, trigger Trigger) {
	if ctx.Err() != nil {
		return
	}
	if _, err := w.coordinator.TryRun(ctx, trigger); err != nil {
		w.logger.Warn("Catalog sync pass failed, will retry on next poll",
			zap.String("trigger", string(trigger)),
			zap.Error(err),
		)
	}
}

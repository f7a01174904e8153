package catalogsync

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Trigger identifies what started a sync run
type Trigger string

const (
	// TriggerStartup is the unconditional pass when the watcher starts
	TriggerStartup Trigger = "startup"
	// TriggerScheduled is a periodic poll; the only trigger that
	// consults the change detector
	TriggerScheduled Trigger = "scheduled"
	// TriggerManual is an operator-requested run, digest bypassed
	TriggerManual Trigger = "manual"
)

// RunStatus is the terminal outcome of a sync run
type RunStatus string

const (
	// StatusCompleted means the batch was reconciled and committed
	StatusCompleted RunStatus = "completed"
	// StatusUnchanged means the fetched bytes matched the last
	// successful run, so the store was not touched
	StatusUnchanged RunStatus = "unchanged"
	// StatusSkippedBusy means another run held the slot; nothing ran
	StatusSkippedBusy RunStatus = "skipped_busy"
	// StatusFailed means a stage errored; the store is unchanged
	StatusFailed RunStatus = "failed"
)

// RunResult describes one sync run
type RunResult struct {
	Trigger     Trigger       `json:"trigger"`
	Status      RunStatus     `json:"status"`
	Added       int           `json:"added"`
	Updated     int           `json:"updated"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Coordinator owns the sync pipeline: fetch, detect, parse, reconcile.
// At most one run executes at a time; a caller that finds the slot
// taken gets StatusSkippedBusy immediately instead of queueing.
type Coordinator struct {
	fetcher    Fetcher
	reconciler *Reconciler
	logger     *zap.Logger
	runTimeout time.Duration

	busy atomic.Bool

	mu         sync.Mutex
	lastDigest string

	onChanged func(context.Context)
}

// NewCoordinator creates a Coordinator. runTimeout of zero disables
// the whole-run deadline.
func NewCoordinator(fetcher Fetcher, reconciler *Reconciler, runTimeout time.Duration, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		fetcher:    fetcher,
		reconciler: reconciler,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// OnCatalogChanged registers a callback invoked after every run that
// wrote to the store. Used to drop cached product listings.
func (c *Coordinator) OnCatalogChanged(fn func(context.Context)) {
	c.onChanged = fn
}

// LastFingerprint returns the digest of the last successful run, or
// empty when no run has succeeded yet
func (c *Coordinator) LastFingerprint() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastDigest
}

func (c *Coordinator) setLastFingerprint(digest string) {
	c.mu.Lock()
	c.lastDigest = digest
	c.mu.Unlock()
}

// TryRun executes one sync run unless another is in flight. A busy
// slot is a normal outcome, not an error. On failure the error is
// returned alongside a StatusFailed result and the last fingerprint
// is left untouched.
func (c *Coordinator) TryRun(ctx context.Context, trigger Trigger) (*RunResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		c.logger.Info("Catalog sync skipped, run already in progress",
			zap.String("trigger", string(trigger)),
		)
		return &RunResult{Trigger: trigger, Status: StatusSkippedBusy}, nil
	}
	defer c.busy.Store(false)

	if c.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.runTimeout)
		defer cancel()
	}

	start := time.Now()

	data, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Error("Catalog sync failed",
			zap.String("trigger", string(trigger)),
			zap.String("stage", "fetch"),
			zap.Error(err),
		)
		return &RunResult{Trigger: trigger, Status: StatusFailed, Duration: time.Since(start)}, err
	}

	digest := Fingerprint(data)
	if trigger == TriggerScheduled && digest == c.LastFingerprint() {
		c.logger.Debug("Catalog sync unchanged, source fingerprint matches",
			zap.String("fingerprint", digest),
		)
		return &RunResult{
			Trigger:     trigger,
			Status:      StatusUnchanged,
			Fingerprint: digest,
			Duration:    time.Since(start),
		}, nil
	}

	records, err := ParseRecords(data)
	if err != nil {
		c.logger.Error("Catalog sync failed",
			zap.String("trigger", string(trigger)),
			zap.String("stage", "parse"),
			zap.Error(err),
		)
		return &RunResult{Trigger: trigger, Status: StatusFailed, Duration: time.Since(start)}, err
	}

	added, updated, err := c.reconciler.Reconcile(ctx, records)
	if err != nil {
		c.logger.Error("Catalog sync failed",
			zap.String("trigger", string(trigger)),
			zap.String("stage", "reconcile"),
			zap.Error(err),
		)
		return &RunResult{Trigger: trigger, Status: StatusFailed, Duration: time.Since(start)}, err
	}

	c.setLastFingerprint(digest)
	if c.onChanged != nil {
		c.onChanged(ctx)
	}

	result := &RunResult{
		Trigger:     trigger,
		Status:      StatusCompleted,
		Added:       added,
		Updated:     updated,
		Fingerprint: digest,
		Duration:    time.Since(start),
	}
	c.logger.Info("Catalog sync completed",
		zap.String("trigger", string(trigger)),
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.String("fingerprint", digest),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

// TryImport reconciles an operator-uploaded sheet through the same
// single-run gate. It skips fetch and change detection and does not
// move the fingerprint: the next scheduled poll still compares
// against the last fetched state of the remote source.
func (c *Coordinator) TryImport(ctx context.Context, data []byte) (*RunResult, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return &RunResult{Trigger: TriggerManual, Status: StatusSkippedBusy}, nil
	}
	defer c.busy.Store(false)

	start := time.Now()

	records, err := ParseRecords(data)
	if err != nil {
		c.logger.Error("Catalog import failed",
			zap.String("stage", "parse"),
			zap.Error(err),
		)
		return &RunResult{Trigger: TriggerManual, Status: StatusFailed, Duration: time.Since(start)}, err
	}

	added, updated, err := c.reconciler.Reconcile(ctx, records)
	if err != nil {
		c.logger.Error("Catalog import failed",
			zap.String("stage", "reconcile"),
			zap.Error(err),
		)
		return &RunResult{Trigger: TriggerManual, Status: StatusFailed, Duration: time.Since(start)}, err
	}

	if c.onChanged != nil {
		c.onChanged(ctx)
	}

	result := &RunResult{
		Trigger:  TriggerManual,
		Status:   StatusCompleted,
		Added:    added,
		Updated:  updated,
		Duration: time.Since(start),
	}
	c.logger.Info("Catalog import completed",
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}

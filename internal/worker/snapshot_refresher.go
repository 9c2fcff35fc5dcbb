package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/factra/internal/adapter/ledger"
	"github.com/polkiloo/factra/internal/domain/model"
)

// RefreshFacade exposes the subset of application functionality required by the worker.
type RefreshFacade interface {
	RefreshSnapshot(ctx context.Context) (*model.SyncReport, error)
}

// SnapshotRefresher keeps the cached invoice snapshot in step with the ledger.
type SnapshotRefresher struct {
	facade   RefreshFacade
	interval time.Duration
	logger   *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSnapshotRefresher constructs the refresher. A non-positive interval
// falls back to one minute.
func NewSnapshotRefresher(facade RefreshFacade, interval time.Duration, logger *slog.Logger) *SnapshotRefresher {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SnapshotRefresher{facade: facade, interval: interval, logger: logger}
}

// Start refreshes immediately and then on every tick until stopped.
func (r *SnapshotRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.loop(runCtx)
}

// Stop cancels an in-flight refresh and waits for the loop to exit.
func (r *SnapshotRefresher) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *SnapshotRefresher) loop(ctx context.Context) {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *SnapshotRefresher) refresh(ctx context.Context) {
	report, err := r.facade.RefreshSnapshot(ctx)
	if err == nil {
		r.logger.Info("snapshot refreshed",
			slog.Int("total", report.Total),
			slog.Int("loaded", report.Loaded),
			slog.Int("missing", report.Missing),
			slog.Int("invalid", report.Invalid),
			slog.Duration("took", report.FinishedAt.Sub(report.StartedAt)),
		)
		return
	}
	if ctx.Err() != nil {
		return
	}

	var limited ledger.TooManyRequestsError
	if !errors.As(err, &limited) {
		r.logger.Error("snapshot refresh failed", slog.String("error", err.Error()))
		return
	}

	r.logger.Warn("ledger rate limited", slog.Duration("retry_after", limited.RetryAfter))
	if limited.RetryAfter <= 0 || limited.RetryAfter >= r.interval {
		return
	}
	select {
	case <-ctx.Done():
		return
	case <-time.After(limited.RetryAfter):
	}
	if _, err := r.facade.RefreshSnapshot(ctx); err != nil && ctx.Err() == nil {
		r.logger.Error("snapshot refresh retry failed", slog.String("error", err.Error()))
	}
}

// Package scheduler drives the ingest-then-rollup pipeline on a fixed
// interval. Cycles run strictly one at a time; a slow cycle delays the next
// tick instead of overlapping with it.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/querystats-lab/querystats/internal/ingestion"
)

// Drainer pulls queued telemetry into the event store. Implemented by
// ingestion.Service.
type Drainer interface {
	Drain(ctx context.Context, queue string, batchSize int, timeBudget time.Duration) (ingestion.DrainResult, error)
}

// RollupRunner aggregates stored events into a snapshot. Implemented by
// rollup.Engine.
type RollupRunner interface {
	Compute(ctx context.Context, window time.Duration) (*stats.Snapshot, error)
}

// Config holds the per-cycle parameters.
type Config struct {
	Queue       string
	BatchSize   int
	DrainBudget time.Duration
	Window      time.Duration
	WarmupDelay time.Duration
	Interval    time.Duration
}

// Scheduler runs drain + rollup cycles until its context is cancelled.
type Scheduler struct {
	drainer Drainer
	rollup  RollupRunner
	cfg     Config

	// inFlight guards against overlapping cycles. The loop below is already
	// serial; the guard catches any future caller invoking runCycle directly.
	inFlight atomic.Bool
}

// New creates a scheduler. WarmupDelay gives the broker and store time to
// come up before the first cycle.
func New(drainer Drainer, rollup RollupRunner, cfg Config) *Scheduler {
	if drainer == nil {
		panic("scheduler: drainer must not be nil")
	}
	if rollup == nil {
		panic("scheduler: rollup runner must not be nil")
	}
	return &Scheduler{
		drainer: drainer,
		rollup:  rollup,
		cfg:     cfg,
	}
}

// Start begins the periodic cycle loop. It blocks until ctx is cancelled and
// always returns nil: cycle failures are contained and retried on the next
// tick, never escalated.
func (s *Scheduler) Start(ctx context.Context) error {
	slog.Info("[Scheduler] Starting statistics scheduler",
		"warmup_delay", s.cfg.WarmupDelay,
		"interval", s.cfg.Interval,
		"queue", s.cfg.Queue,
		"batch_size", s.cfg.BatchSize,
	)

	warmup := time.NewTimer(s.cfg.WarmupDelay)
	defer warmup.Stop()

	select {
	case <-warmup.C:
		s.runCycle(ctx)
	case <-ctx.Done():
		slog.Info("[Scheduler] Stopping before warmup (context cancelled)")
		return nil
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runCycle(ctx)
		case <-ctx.Done():
			slog.Info("[Scheduler] Stopping (context cancelled)")
			return nil
		}
	}
}

// runCycle performs one drain followed by one rollup. A drain failure aborts
// the cycle before the rollup so a stale snapshot is never computed from a
// partially flushed batch.
func (s *Scheduler) runCycle(ctx context.Context) {
	if !s.inFlight.CompareAndSwap(false, true) {
		slog.Warn("[Scheduler] Previous cycle still running, skipping tick")
		return
	}
	defer s.inFlight.Store(false)

	started := time.Now()

	drained, err := s.drainer.Drain(ctx, s.cfg.Queue, s.cfg.BatchSize, s.cfg.DrainBudget)
	if err != nil {
		slog.Error("[Scheduler] Drain cycle failed", "error", err)
		return
	}

	snapshot, err := s.rollup.Compute(ctx, s.cfg.Window)
	if err != nil {
		slog.Error("[Scheduler] Rollup cycle failed", "error", err)
		return
	}

	slog.Info("[Scheduler] Cycle complete",
		"accepted", drained.Accepted,
		"rejected", drained.Rejected,
		"snapshot_id", snapshot.ID,
		"sample_size", snapshot.SampleSize,
		"elapsed", time.Since(started),
	)
}

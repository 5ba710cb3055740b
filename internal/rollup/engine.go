package rollup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/querystats-lab/querystats/internal/core/storage"
	"github.com/shopspring/decimal"
)

// Engine turns a time window of stored query events into one immutable
// snapshot. It only ever reads events and inserts snapshots; events are
// never mutated, and snapshots never updated.
type Engine struct {
	events    storage.EventStore
	snapshots storage.SnapshotStore
	topN      int
	allTime   bool
	nowFn     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAllTime makes Compute aggregate from the earliest stored event
// instead of a sliding window.
func WithAllTime(allTime bool) Option {
	return func(e *Engine) { e.allTime = allTime }
}

// NewEngine creates a rollup engine writing snapshots with up to
// stats.TopRouteLimit top routes.
func NewEngine(events storage.EventStore, snapshots storage.SnapshotStore, opts ...Option) *Engine {
	if events == nil {
		panic("rollup: event store must not be nil")
	}
	if snapshots == nil {
		panic("rollup: snapshot store must not be nil")
	}
	e := &Engine{
		events:    events,
		snapshots: snapshots,
		topN:      stats.TopRouteLimit,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute aggregates the window [now - windowDuration, now) and persists the
// result as one new snapshot. All-or-nothing: any read or write error aborts
// without a partial snapshot.
func (e *Engine) Compute(ctx context.Context, windowDuration time.Duration) (*stats.Snapshot, error) {
	now := e.nowFn()

	windowStart, err := e.windowStart(ctx, now, windowDuration)
	if err != nil {
		return nil, err
	}

	slog.Info("[Rollup] Starting rollup",
		"window_start", windowStart,
		"window_end", now,
	)

	snapshot := &stats.Snapshot{
		ComputedAt:   now,
		WindowStart:  windowStart,
		WindowEnd:    now,
		AvgLatencyMs: decimal.Zero,
		TopRoutes:    []stats.RouteShare{},
	}

	sampleSize, err := e.events.CountInWindow(ctx, windowStart, now)
	if err != nil {
		return nil, fmt.Errorf("rollup: count window: %w", err)
	}
	snapshot.SampleSize = sampleSize

	if sampleSize > 0 {
		if err := e.aggregate(ctx, snapshot); err != nil {
			return nil, err
		}
	}

	if err := e.snapshots.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("rollup: %w: %v", coreerr.ErrStoreWrite, err)
	}

	slog.Info("[Rollup] Rollup complete",
		"snapshot_id", snapshot.ID,
		"sample_size", snapshot.SampleSize,
		"avg_ms", snapshot.AvgLatencyMs,
		"popular_hour", snapshot.PopularHour,
	)
	return snapshot, nil
}

// windowStart resolves the start of the aggregation window. In all-time
// mode it is the earliest stored event (now itself when no events exist,
// yielding an empty window).
func (e *Engine) windowStart(ctx context.Context, now time.Time, windowDuration time.Duration) (time.Time, error) {
	if !e.allTime {
		return now.Add(-windowDuration), nil
	}

	earliest, ok, err := e.events.EarliestEventTime(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("rollup: earliest event: %w", err)
	}
	if !ok {
		return now, nil
	}
	return earliest, nil
}

// aggregate fills the latency, route and hour aggregates for a non-empty
// window.
func (e *Engine) aggregate(ctx context.Context, snapshot *stats.Snapshot) error {
	start, end := snapshot.WindowStart, snapshot.WindowEnd

	avg, err := e.events.AverageLatency(ctx, start, end)
	if err != nil {
		return fmt.Errorf("rollup: average latency: %w", err)
	}
	snapshot.AvgLatencyMs = stats.RoundLatency(avg)

	routes, err := e.events.TopRoutes(ctx, start, end, e.topN)
	if err != nil {
		return fmt.Errorf("rollup: top routes: %w", err)
	}
	snapshot.TopRoutes = make([]stats.RouteShare, 0, len(routes))
	for _, rc := range routes {
		snapshot.TopRoutes = append(snapshot.TopRoutes, stats.RouteShare{
			Route: rc.Route,
			Count: rc.Count,
			// Percentage is against the whole window, not the top-N sum.
			Percentage: stats.ShareOf(rc.Count, snapshot.SampleSize),
		})
	}

	hour, hourCount, err := e.events.BusiestHour(ctx, start, end)
	if err != nil {
		return fmt.Errorf("rollup: busiest hour: %w", err)
	}
	snapshot.PopularHour = hour
	snapshot.PopularHourCount = hourCount

	return nil
}

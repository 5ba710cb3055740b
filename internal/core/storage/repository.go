package storage

import (
	"context"
	"time"

	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/shopspring/decimal"
)

// RouteCount is one (route, event count) pair from a windowed group-by.
type RouteCount struct {
	Route string
	Count int64
}

// EventStore persists query events and answers the windowed aggregate
// queries the rollup engine is built on. All windows are half-open
// intervals [start, end).
type EventStore interface {
	// InsertBatch writes all events in a single transaction.
	// Either every event is committed or none is. An empty batch is a no-op.
	InsertBatch(ctx context.Context, events []stats.QueryEvent) error

	// CountInWindow returns the number of events inside the window.
	CountInWindow(ctx context.Context, start, end time.Time) (int64, error)

	// AverageLatency returns the mean latency over the window at the
	// precision of the backing column. Zero when the window is empty.
	AverageLatency(ctx context.Context, start, end time.Time) (decimal.Decimal, error)

	// TopRoutes groups events by route and returns up to limit routes
	// ordered by count descending, ties broken by route name ascending.
	TopRoutes(ctx context.Context, start, end time.Time, limit int) ([]RouteCount, error)

	// BusiestHour returns the UTC hour of day with the most events in the
	// window and that hour's event count. Ties break toward the smaller
	// hour. Returns (0, 0) for an empty window.
	BusiestHour(ctx context.Context, start, end time.Time) (hour int, count int64, err error)

	// EarliestEventTime returns the occurred_at of the oldest stored event.
	// ok is false when no events exist. Supports the all-time window mode.
	EarliestEventTime(ctx context.Context) (t time.Time, ok bool, err error)
}

// SnapshotStore persists immutable rollup snapshots.
type SnapshotStore interface {
	// Save inserts a new snapshot row and populates snapshot.ID.
	// Snapshots are never updated after insert.
	Save(ctx context.Context, snapshot *stats.Snapshot) error

	// Latest returns the snapshot with the maximum computed_at, or nil
	// when no snapshot exists yet. A nil result is a normal state, not
	// an error.
	Latest(ctx context.Context) (*stats.Snapshot, error)
}

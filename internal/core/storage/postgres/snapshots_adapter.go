package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/shopspring/decimal"
)

// SnapshotAdapter implements storage.SnapshotStore using PostgreSQL.
// Snapshot rows are insert-only; because readers select by max computed_at
// they never observe a half-written row.
type SnapshotAdapter struct {
	db *sql.DB
}

// NewSnapshotAdapter creates a SnapshotAdapter sharing the given connection.
func NewSnapshotAdapter(db *sql.DB) *SnapshotAdapter {
	return &SnapshotAdapter{db: db}
}

// Save inserts the snapshot and populates snapshot.ID from the database.
func (a *SnapshotAdapter) Save(ctx context.Context, snapshot *stats.Snapshot) error {
	topJSON, err := marshalTopRoutes(snapshot.TopRoutes)
	if err != nil {
		return err
	}

	var id int64
	err = a.db.QueryRowContext(ctx, querySaveSnapshot,
		snapshot.ComputedAt,
		snapshot.WindowStart,
		snapshot.WindowEnd,
		snapshot.SampleSize,
		snapshot.AvgLatencyMs,
		snapshot.PopularHour,
		snapshot.PopularHourCount,
		topJSON,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	snapshot.ID = id

	slog.Debug("[Postgres] Saved snapshot",
		"snapshot_id", id,
		"sample_size", snapshot.SampleSize)
	return nil
}

// Latest returns the most recent snapshot, or nil when none exists.
func (a *SnapshotAdapter) Latest(ctx context.Context) (*stats.Snapshot, error) {
	var (
		snap    stats.Snapshot
		avgRaw  string
		topJSON []byte
	)

	err := a.db.QueryRowContext(ctx, queryLatestSnapshot).Scan(
		&snap.ID,
		&snap.ComputedAt,
		&snap.WindowStart,
		&snap.WindowEnd,
		&snap.SampleSize,
		&avgRaw,
		&snap.PopularHour,
		&snap.PopularHourCount,
		&topJSON,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}

	snap.AvgLatencyMs, err = decimal.NewFromString(avgRaw)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: parse avg_ms %q: %w", avgRaw, err)
	}

	if len(topJSON) > 0 {
		if err := json.Unmarshal(topJSON, &snap.TopRoutes); err != nil {
			return nil, fmt.Errorf("latest snapshot: unmarshal top_queries: %w", err)
		}
	}

	return &snap, nil
}

// marshalTopRoutes serializes the top-routes list for the JSONB column.
// An empty list is stored as [] rather than SQL NULL.
func marshalTopRoutes(routes []stats.RouteShare) ([]byte, error) {
	if routes == nil {
		routes = []stats.RouteShare{}
	}
	data, err := json.Marshal(routes)
	if err != nil {
		return nil, fmt.Errorf("marshal top routes: %w", err)
	}
	return data, nil
}

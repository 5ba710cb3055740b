// Package query is the read side of the statistics pipeline. It serves the
// latest rollup snapshot and never touches raw events, so a response is
// always cheap regardless of how much telemetry has been ingested.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/querystats-lab/querystats/internal/core/storage"
)

const msgNoStats = "No statistics available yet"

// TopQueryEntry is one route share in the top-queries payload. Percentage is
// a plain JSON number (fraction of the window sample), so the stored decimal
// is converted at this boundary.
type TopQueryEntry struct {
	Query      string  `json:"query"`
	Percentage float64 `json:"percentage"`
}

// AverageRequestTime carries the windowed mean latency in milliseconds.
type AverageRequestTime struct {
	AverageTimeMs float64 `json:"averageTimeMs"`
}

// PopularTime names the busiest UTC hour as a zero-padded two-digit string.
type PopularTime struct {
	Hour         string `json:"hour"`
	RequestCount int64  `json:"requestCount"`
}

// Envelope is the uniform response shape of every read endpoint.
type Envelope struct {
	Message string `json:"message"`
	Result  any    `json:"result"`
}

// Service answers statistics queries from the latest snapshot.
type Service struct {
	snapshots storage.SnapshotStore
	interval  time.Duration
	nowFn     func() time.Time
}

// NewService creates the read-path service. interval is the scheduled rollup
// interval, used to derive cache freshness.
func NewService(snapshots storage.SnapshotStore, interval time.Duration) *Service {
	if snapshots == nil {
		panic("query: snapshot store must not be nil")
	}
	return &Service{
		snapshots: snapshots,
		interval:  interval,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// TopQueries returns the most requested routes of the latest snapshot along
// with the cache directive for the response.
func (s *Service) TopQueries(ctx context.Context) (Envelope, string, error) {
	snapshot, err := s.latest(ctx)
	if err != nil {
		return Envelope{}, "", err
	}

	if snapshot == nil || len(snapshot.TopRoutes) == 0 {
		return Envelope{Message: msgNoStats, Result: []TopQueryEntry{}}, s.cacheControl(snapshot), nil
	}

	entries := make([]TopQueryEntry, 0, len(snapshot.TopRoutes))
	for _, route := range snapshot.TopRoutes {
		entries = append(entries, TopQueryEntry{
			Query:      route.Route,
			Percentage: route.Percentage.InexactFloat64(),
		})
	}

	return Envelope{
		Message: "Top queries retrieved successfully",
		Result:  entries,
	}, s.cacheControl(snapshot), nil
}

// AverageRequestTime returns the windowed mean latency of the latest snapshot.
func (s *Service) AverageRequestTime(ctx context.Context) (Envelope, string, error) {
	snapshot, err := s.latest(ctx)
	if err != nil {
		return Envelope{}, "", err
	}

	// A zero average reads as "no data" even when the window held events.
	if snapshot == nil || snapshot.AvgLatencyMs.IsZero() {
		return Envelope{
			Message: msgNoStats,
			Result:  AverageRequestTime{},
		}, s.cacheControl(snapshot), nil
	}

	return Envelope{
		Message: "Average request time retrieved successfully",
		Result:  AverageRequestTime{AverageTimeMs: snapshot.AvgLatencyMs.InexactFloat64()},
	}, s.cacheControl(snapshot), nil
}

// PopularTime returns the busiest hour of the latest snapshot.
func (s *Service) PopularTime(ctx context.Context) (Envelope, string, error) {
	snapshot, err := s.latest(ctx)
	if err != nil {
		return Envelope{}, "", err
	}

	if snapshot == nil || snapshot.PopularHourCount == 0 {
		return Envelope{
			Message: msgNoStats,
			Result:  PopularTime{Hour: "0", RequestCount: 0},
		}, s.cacheControl(snapshot), nil
	}

	return Envelope{
		Message: "Popular time retrieved successfully",
		Result: PopularTime{
			Hour:         fmt.Sprintf("%02d", snapshot.PopularHour),
			RequestCount: snapshot.PopularHourCount,
		},
	}, s.cacheControl(snapshot), nil
}

func (s *Service) latest(ctx context.Context) (*stats.Snapshot, error) {
	snapshot, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("query: latest snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *Service) cacheControl(snapshot *stats.Snapshot) string {
	return CacheControl(snapshot, s.nowFn(), s.interval)
}

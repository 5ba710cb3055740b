package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopRouteLimit is how many routes a snapshot retains, ordered by count.
const TopRouteLimit = 5

// RouteShare is one entry of a snapshot's top-routes list.
// JSON keys match the persisted top_queries column.
type RouteShare struct {
	Route string `json:"route"`

	// Count is the number of events for this route inside the window.
	Count int64 `json:"count"`

	// Percentage is Count over the window's total sample size, as a raw
	// fraction rounded to 3 decimal places. Display conversion is the
	// caller's concern.
	Percentage decimal.Decimal `json:"pct"`
}

// Snapshot is one immutable rollup of a window of query events. It is the
// only artifact the read path ever consults; raw events are never exposed.
// "Latest" means the row with the maximum computed_at.
type Snapshot struct {
	ID         int64
	ComputedAt time.Time

	// WindowStart/WindowEnd delimit the half-open interval
	// [WindowStart, WindowEnd) the aggregates describe.
	WindowStart time.Time
	WindowEnd   time.Time

	// SampleSize is the number of events inside the window.
	SampleSize int64

	// AvgLatencyMs is the arithmetic mean latency over the window, rounded
	// to 3 decimal places. Zero when the window is empty.
	AvgLatencyMs decimal.Decimal

	// PopularHour is the UTC hour of day (0-23) with the most events.
	// Zero when the window is empty.
	PopularHour      int
	PopularHourCount int64

	// TopRoutes holds up to TopRouteLimit routes ordered by count descending.
	TopRoutes []RouteShare
}

// Age reports how long ago the snapshot was computed.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.ComputedAt)
}

// ShareOf computes count/total rounded to 3 decimal places.
// Returns zero when total is zero.
func ShareOf(count, total int64) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(count).
		Div(decimal.NewFromInt(total)).
		Round(3)
}

// RoundLatency normalizes an average latency to the 3-decimal precision the
// snapshot column carries.
func RoundLatency(avg decimal.Decimal) decimal.Decimal {
	return avg.Round(3)
}

package stats

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// QueryEvent is one observed upstream request: "a request to route R took
// M milliseconds at time T". Events are append-only; nothing in this system
// updates or deletes them after insert.
type QueryEvent struct {
	// Path is the raw request path as observed, e.g. "/films/3".
	Path string

	// Route is the normalized template the path belongs to, e.g. "/films/:id".
	// Grouping key for all per-route statistics.
	Route string

	// LatencyMs is the observed request latency in milliseconds.
	LatencyMs int64

	// Source tags the originating service.
	Source string

	// OccurredAt is when the request was observed (producer clock, UTC).
	OccurredAt time.Time
}

// Validate checks the invariants the store relies on.
func (e *QueryEvent) Validate() error {
	if e.Path == "" {
		return fmt.Errorf("path is required")
	}
	if e.Route == "" {
		return fmt.Errorf("route is required")
	}
	if e.LatencyMs < 0 {
		return fmt.Errorf("latency must be non-negative, got %d", e.LatencyMs)
	}
	if e.OccurredAt.IsZero() {
		return fmt.Errorf("occurred_at is required")
	}
	return nil
}

// HourOfDay returns the UTC hour (0-23) the event occurred in.
// Persisted alongside the event so hour grouping never re-derives it.
func (e *QueryEvent) HourOfDay() int {
	return e.OccurredAt.UTC().Hour()
}

// NormalizeRoute collapses numeric path segments into the ":id" placeholder,
// turning a concrete resource path into its route template:
//
//	/films/3     -> /films/:id
//	/people/42/  -> /people/:id
//	/films       -> /films
//
// Used when a producer supplies a raw path without a route.
func NormalizeRoute(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}

	segments := strings.Split(trimmed, "/")
	for i, seg := range segments {
		if isNumeric(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

package ingestion

import (
	"encoding/json"
	"fmt"
	"time"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
	"github.com/querystats-lab/querystats/internal/core/stats"
)

// queueMessage is the wire schema of one telemetry message:
//
//	{"path": "/films/3", "route": "/films/:id", "ms": 120,
//	 "source": "starwars", "occurred_at": "2026-03-01T09:30:00Z"}
//
// source and occurred_at are optional; route may be omitted when path is
// present, in which case it is derived by collapsing numeric segments.
type queueMessage struct {
	Path       string   `json:"path"`
	Route      string   `json:"route"`
	Ms         *float64 `json:"ms"`
	Source     string   `json:"source"`
	OccurredAt string   `json:"occurred_at"`
}

// decodeMessage validates one raw message body into a QueryEvent.
// Any failure wraps coreerr.ErrMessageFormat — the caller acknowledges and
// drops such messages instead of letting them poison the queue.
func decodeMessage(body []byte, defaultSource string, now time.Time) (stats.QueryEvent, error) {
	var msg queueMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return stats.QueryEvent{}, fmt.Errorf("%w: invalid JSON: %v", coreerr.ErrMessageFormat, err)
	}

	if msg.Path == "" {
		return stats.QueryEvent{}, fmt.Errorf("%w: path is required", coreerr.ErrMessageFormat)
	}
	if msg.Ms == nil {
		return stats.QueryEvent{}, fmt.Errorf("%w: ms is required and must be numeric", coreerr.ErrMessageFormat)
	}
	if *msg.Ms < 0 {
		return stats.QueryEvent{}, fmt.Errorf("%w: ms must be non-negative, got %v", coreerr.ErrMessageFormat, *msg.Ms)
	}

	route := msg.Route
	if route == "" {
		route = stats.NormalizeRoute(msg.Path)
	}

	source := msg.Source
	if source == "" {
		source = defaultSource
	}

	occurredAt := now.UTC()
	if msg.OccurredAt != "" {
		parsed, err := time.Parse(time.RFC3339, msg.OccurredAt)
		if err != nil {
			return stats.QueryEvent{}, fmt.Errorf("%w: invalid occurred_at %q: %v", coreerr.ErrMessageFormat, msg.OccurredAt, err)
		}
		occurredAt = parsed.UTC()
	}

	evt := stats.QueryEvent{
		Path:       msg.Path,
		Route:      route,
		LatencyMs:  int64(*msg.Ms),
		Source:     source,
		OccurredAt: occurredAt,
	}
	if err := evt.Validate(); err != nil {
		return stats.QueryEvent{}, fmt.Errorf("%w: %v", coreerr.ErrMessageFormat, err)
	}

	return evt, nil
}

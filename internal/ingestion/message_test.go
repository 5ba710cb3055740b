package ingestion

import (
	"testing"
	"time"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
	"github.com/stretchr/testify/require"
)

func TestDecodeMessage(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantRoute  string
		wantSource string
		wantMs     int64
		wantTime   time.Time
	}{
		{
			name:       "complete message",
			body:       `{"path": "/films/3", "route": "/films/:id", "ms": 120, "source": "starwars", "occurred_at": "2026-02-28T18:15:00Z"}`,
			wantRoute:  "/films/:id",
			wantSource: "starwars",
			wantMs:     120,
			wantTime:   time.Date(2026, 2, 28, 18, 15, 0, 0, time.UTC),
		},
		{
			name:       "route derived from path",
			body:       `{"path": "/people/42", "ms": 85}`,
			wantRoute:  "/people/:id",
			wantSource: "starwars",
			wantMs:     85,
			wantTime:   now,
		},
		{
			name:       "source and occurred_at default",
			body:       `{"path": "/planets", "route": "/planets", "ms": 40}`,
			wantRoute:  "/planets",
			wantSource: "starwars",
			wantMs:     40,
			wantTime:   now,
		},
		{
			name:       "fractional ms truncated",
			body:       `{"path": "/planets", "ms": 40.9}`,
			wantRoute:  "/planets",
			wantSource: "starwars",
			wantMs:     40,
			wantTime:   now,
		},
		{
			name:       "occurred_at with offset normalized to UTC",
			body:       `{"path": "/planets", "ms": 10, "occurred_at": "2026-02-28T19:00:00-05:00"}`,
			wantRoute:  "/planets",
			wantSource: "starwars",
			wantMs:     10,
			wantTime:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "invalid json", body: `{"path": `, wantErr: true},
		{name: "missing path", body: `{"ms": 50}`, wantErr: true},
		{name: "missing ms", body: `{"path": "/films"}`, wantErr: true},
		{name: "non-numeric ms", body: `{"path": "/films", "ms": "fast"}`, wantErr: true},
		{name: "negative ms", body: `{"path": "/films", "ms": -5}`, wantErr: true},
		{name: "unparseable occurred_at", body: `{"path": "/films", "ms": 5, "occurred_at": "yesterday"}`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			evt, err := decodeMessage([]byte(tc.body), "starwars", now)
			if tc.wantErr {
				require.Error(t, err)
				require.ErrorIs(t, err, coreerr.ErrMessageFormat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantRoute, evt.Route)
			require.Equal(t, tc.wantSource, evt.Source)
			require.Equal(t, tc.wantMs, evt.LatencyMs)
			require.True(t, evt.OccurredAt.Equal(tc.wantTime), "occurred_at = %v, want %v", evt.OccurredAt, tc.wantTime)
		})
	}
}

func TestDecodeMessage_CustomDefaultSource(t *testing.T) {
	evt, err := decodeMessage([]byte(`{"path": "/films", "ms": 10}`), "edge-proxy", time.Now())
	require.NoError(t, err)
	require.Equal(t, "edge-proxy", evt.Source)
}

package ingestion

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
	"github.com/querystats-lab/querystats/internal/core/stats"
	storagemocks "github.com/querystats-lab/querystats/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeSource feeds pre-loaded deliveries over a channel the way a broker
// subscription would. When closeAfter is set the channel closes once the
// last delivery is taken, signalling the end of the subscription.
type fakeSource struct {
	deliveries chan Delivery
	consumeErr error
	closed     atomic.Bool
}

func newFakeSource(bodies []string, closeAfter bool) (*fakeSource, *atomic.Int64) {
	acks := &atomic.Int64{}
	ch := make(chan Delivery, len(bodies))
	for _, body := range bodies {
		ch <- Delivery{
			Body: []byte(body),
			Ack:  func() error { acks.Add(1); return nil },
		}
	}
	if closeAfter {
		close(ch)
	}
	return &fakeSource{deliveries: ch}, acks
}

func (f *fakeSource) Consume(_ context.Context, _ string, _ int) (<-chan Delivery, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	return f.deliveries, nil
}

func (f *fakeSource) Close() error {
	f.closed.Store(true)
	return nil
}

func TestService_Drain_StopsWhenBatchFull(t *testing.T) {
	source, acks := newFakeSource([]string{
		`{"path": "/films/1", "ms": 10}`,
		`{"path": "/films/2", "ms": 20}`,
		`{"path": "/films/3", "ms": 30}`,
	}, false)

	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		InsertBatch(mock.Anything, mock.MatchedBy(func(batch []stats.QueryEvent) bool {
			return len(batch) == 2
		})).
		Return(nil).
		Once()

	svc := NewService(source, store, time.Second, "starwars")

	res, err := svc.Drain(context.Background(), "query_events", 2, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, DrainResult{Accepted: 2}, res)
	require.EqualValues(t, 2, acks.Load(), "only consumed messages should be acked")
}

func TestService_Drain_StopsOnIdleTimeout(t *testing.T) {
	source, acks := newFakeSource([]string{
		`{"path": "/films/1", "ms": 10}`,
	}, false)

	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		InsertBatch(mock.Anything, mock.MatchedBy(func(batch []stats.QueryEvent) bool {
			return len(batch) == 1 && batch[0].Route == "/films/:id"
		})).
		Return(nil).
		Once()

	svc := NewService(source, store, 20*time.Millisecond, "starwars")

	start := time.Now()
	res, err := svc.Drain(context.Background(), "query_events", 100, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, DrainResult{Accepted: 1}, res)
	require.EqualValues(t, 1, acks.Load())
	require.Less(t, time.Since(start), time.Second, "idle timeout should cut the cycle short")
}

func TestService_Drain_StopsWhenChannelCloses(t *testing.T) {
	source, _ := newFakeSource([]string{
		`{"path": "/planets", "ms": 5}`,
	}, true)

	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		InsertBatch(mock.Anything, mock.AnythingOfType("[]stats.QueryEvent")).
		Return(nil).
		Once()

	svc := NewService(source, store, time.Second, "starwars")

	res, err := svc.Drain(context.Background(), "query_events", 100, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, 1, res.Accepted)
}

func TestService_Drain_StopsWhenTimeBudgetElapses(t *testing.T) {
	// A source that never yields anything keeps the receive loop blocked
	// until the drain deadline fires.
	source := &fakeSource{deliveries: make(chan Delivery)}

	store := storagemocks.NewEventStore(t)
	svc := NewService(source, store, time.Minute, "starwars")

	start := time.Now()
	res, err := svc.Drain(context.Background(), "query_events", 100, 30*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, DrainResult{}, res)
	require.Less(t, time.Since(start), time.Second)
}

func TestService_Drain_MalformedMessagesAckedAndCounted(t *testing.T) {
	source, acks := newFakeSource([]string{
		`{"path": "/films/1", "ms": 10}`,
		`not even json`,
		`{"ms": 20}`,
		`{"path": "/films/2", "ms": 20}`,
	}, true)

	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		InsertBatch(mock.Anything, mock.MatchedBy(func(batch []stats.QueryEvent) bool {
			return len(batch) == 2
		})).
		Return(nil).
		Once()

	svc := NewService(source, store, time.Second, "starwars")

	res, err := svc.Drain(context.Background(), "query_events", 100, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, DrainResult{Accepted: 2, Rejected: 2}, res)
	require.EqualValues(t, 4, acks.Load(), "malformed messages must still be acked")
}

func TestService_Drain_EmptyQueueSkipsInsert(t *testing.T) {
	source, _ := newFakeSource(nil, true)

	// No InsertBatch expectation: an empty cycle performs no writes.
	store := storagemocks.NewEventStore(t)
	svc := NewService(source, store, time.Second, "starwars")

	res, err := svc.Drain(context.Background(), "query_events", 100, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, DrainResult{}, res)
}

func TestService_Drain_FlushFailureWrapsStoreWrite(t *testing.T) {
	source, _ := newFakeSource([]string{
		`{"path": "/films/1", "ms": 10}`,
	}, true)

	store := storagemocks.NewEventStore(t)
	store.EXPECT().
		InsertBatch(mock.Anything, mock.AnythingOfType("[]stats.QueryEvent")).
		Return(errors.New("deadlock detected")).
		Once()

	svc := NewService(source, store, time.Second, "starwars")

	res, err := svc.Drain(context.Background(), "query_events", 100, 5*time.Second)
	require.Error(t, err)
	require.ErrorIs(t, err, coreerr.ErrStoreWrite)
	require.Equal(t, 0, res.Accepted)
}

func TestService_Drain_ConsumeFailurePropagates(t *testing.T) {
	source := &fakeSource{consumeErr: coreerr.ErrBrokerConnection}

	store := storagemocks.NewEventStore(t)
	svc := NewService(source, store, time.Second, "starwars")

	_, err := svc.Drain(context.Background(), "query_events", 10, time.Second)
	require.Error(t, err)
	require.ErrorIs(t, err, coreerr.ErrBrokerConnection)
}

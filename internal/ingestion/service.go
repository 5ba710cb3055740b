package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
	"github.com/querystats-lab/querystats/internal/core/stats"
	"github.com/querystats-lab/querystats/internal/core/storage"
)

const defaultIdleTimeout = 5 * time.Second

// Delivery is one raw message handed over by the broker. Ack must be called
// exactly once per delivery regardless of whether the body parses.
type Delivery struct {
	Body []byte
	Ack  func() error
}

// EventSource is the broker side of the ingestion pipeline. Consume opens a
// bounded-prefetch subscription on the queue; the returned channel closes
// when the subscription ends (context cancellation or connection loss).
type EventSource interface {
	Consume(ctx context.Context, queue string, prefetch int) (<-chan Delivery, error)
	Close() error
}

// DrainResult reports one drain cycle.
type DrainResult struct {
	// Accepted is the number of well-formed messages written to the store.
	Accepted int
	// Rejected is the number of malformed messages dropped (and acked).
	Rejected int
}

// Service drains telemetry messages from the broker queue in bounded batches
// and writes them through the event store.
type Service struct {
	source        EventSource
	store         storage.EventStore
	idleTimeout   time.Duration
	defaultSource string
	nowFn         func() time.Time
}

// NewService creates the ingestion service. idleTimeout bounds how long a
// drain waits for the next message before concluding the queue is empty.
func NewService(source EventSource, store storage.EventStore, idleTimeout time.Duration, defaultSource string) *Service {
	if source == nil {
		panic("ingestion: source must not be nil")
	}
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}
	return &Service{
		source:        source,
		store:         store,
		idleTimeout:   idleTimeout,
		defaultSource: defaultSource,
		nowFn:         func() time.Time { return time.Now().UTC() },
	}
}

// Drain consumes up to batchSize messages from the queue and flushes them as
// one transactional insert. It stops at whichever comes first: the batch is
// full, no message arrived within the idle timeout, or timeBudget elapsed.
//
// Malformed messages are acknowledged, counted as rejected and logged; they
// never abort the cycle. A store insert failure aborts the cycle — note the
// affected messages were already acknowledged to the broker, so delivery is
// at-most-once.
func (s *Service) Drain(ctx context.Context, queue string, batchSize int, timeBudget time.Duration) (DrainResult, error) {
	var res DrainResult

	drainCtx, cancel := context.WithTimeout(ctx, timeBudget)
	defer cancel()

	deliveries, err := s.source.Consume(drainCtx, queue, batchSize)
	if err != nil {
		return res, fmt.Errorf("drain %q: %w", queue, err)
	}

	batch := make([]stats.QueryEvent, 0, batchSize)

	idle := time.NewTimer(s.idleTimeout)
	defer idle.Stop()

receive:
	for len(batch) < batchSize {
		select {
		case d, ok := <-deliveries:
			if !ok {
				break receive
			}

			evt, decodeErr := s.consumeDelivery(d)

			// Ack happens inside consumeDelivery before this point; the
			// message is gone from the queue either way.
			if decodeErr != nil {
				res.Rejected++
			} else {
				batch = append(batch, evt)
				res.Accepted++
			}

			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(s.idleTimeout)

		case <-idle.C:
			slog.Debug("[Ingestion] Idle timeout reached", "queue", queue, "accumulated", len(batch))
			break receive

		case <-drainCtx.Done():
			slog.Debug("[Ingestion] Time budget elapsed", "queue", queue, "accumulated", len(batch))
			break receive
		}
	}

	if len(batch) == 0 {
		return res, nil
	}

	// The flush must not be cancelled by the drain deadline: these messages
	// are already acknowledged, so an aborted insert loses them outright.
	if err := s.store.InsertBatch(context.WithoutCancel(ctx), batch); err != nil {
		return DrainResult{Rejected: res.Rejected}, fmt.Errorf("drain %q: flush %d events: %w: %v",
			queue, len(batch), coreerr.ErrStoreWrite, err)
	}

	slog.Info("[Ingestion] Drain complete",
		"queue", queue,
		"accepted", res.Accepted,
		"rejected", res.Rejected,
	)
	return res, nil
}

// consumeDelivery decodes and acknowledges one delivery.
func (s *Service) consumeDelivery(d Delivery) (stats.QueryEvent, error) {
	evt, decodeErr := decodeMessage(d.Body, s.defaultSource, s.nowFn())

	if ackErr := d.Ack(); ackErr != nil {
		slog.Warn("[Ingestion] Failed to ack message", "error", ackErr)
	}

	if decodeErr != nil {
		if errors.Is(decodeErr, coreerr.ErrMessageFormat) {
			slog.Warn("[Ingestion] Dropping malformed message",
				"error", decodeErr,
				"body_size", len(d.Body),
			)
		}
		return stats.QueryEvent{}, decodeErr
	}

	return evt, nil
}

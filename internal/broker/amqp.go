// Package broker wraps the RabbitMQ client behind the narrow surface the
// ingestion pipeline needs: a bounded-prefetch manual-ack consumer and a
// plain JSON publisher.
package broker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
	"github.com/querystats-lab/querystats/internal/ingestion"
)

// AMQPSource consumes telemetry messages from a RabbitMQ queue. It satisfies
// ingestion.EventSource. The connection is established lazily on first use
// and reused across drain cycles.
type AMQPSource struct {
	url      string
	attempts int
	backoff  time.Duration

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPSource creates a source for the given broker URL. attempts bounds
// connection retries; backoff is the initial retry delay, doubled per attempt.
func NewAMQPSource(url string, attempts int, backoff time.Duration) *AMQPSource {
	if attempts <= 0 {
		attempts = 1
	}
	if backoff <= 0 {
		backoff = time.Second
	}
	return &AMQPSource{
		url:      url,
		attempts: attempts,
		backoff:  backoff,
	}
}

// Consume opens a manual-ack subscription on the queue with the prefetch
// window bounded to the caller's batch size. The returned channel closes when
// ctx is cancelled or the underlying connection drops.
func (s *AMQPSource) Consume(ctx context.Context, queue string, prefetch int) (<-chan ingestion.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.channel(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		s.reset()
		return nil, fmt.Errorf("broker: declare queue %q: %w", queue, err)
	}

	if err := ch.Qos(prefetch, 0, false); err != nil {
		s.reset()
		return nil, fmt.Errorf("broker: set prefetch %d: %w", prefetch, err)
	}

	consumerTag := "querystats-" + uuid.NewString()
	deliveries, err := ch.ConsumeWithContext(ctx, queue, consumerTag, false, false, false, false, nil)
	if err != nil {
		s.reset()
		return nil, fmt.Errorf("broker: consume %q: %w", queue, err)
	}

	out := make(chan ingestion.Delivery)
	go func() {
		defer close(out)
		for d := range deliveries {
			d := d
			select {
			case out <- ingestion.Delivery{
				Body: d.Body,
				Ack:  func() error { return d.Ack(false) },
			}:
			case <-ctx.Done():
				// Unconsumed prefetched messages are requeued by the broker
				// once the consumer is cancelled.
				return
			}
		}
	}()

	return out, nil
}

// Close shuts down the channel and connection. The source can be reused
// afterwards; the next Consume reconnects.
func (s *AMQPSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var chErr, connErr error
	if s.ch != nil {
		chErr = s.ch.Close()
	}
	if s.conn != nil {
		connErr = s.conn.Close()
	}
	s.ch = nil
	s.conn = nil

	if chErr != nil {
		return fmt.Errorf("broker: close channel: %w", chErr)
	}
	if connErr != nil {
		return fmt.Errorf("broker: close connection: %w", connErr)
	}
	return nil
}

// channel returns the cached channel, dialing with retry when needed.
// Callers must hold s.mu.
func (s *AMQPSource) channel(ctx context.Context) (*amqp.Channel, error) {
	if s.ch != nil && !s.ch.IsClosed() {
		return s.ch, nil
	}
	s.reset()

	conn, err := dialWithRetry(ctx, s.url, s.attempts, s.backoff)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("broker: open channel: %w", err)
	}

	s.conn = conn
	s.ch = ch
	return ch, nil
}

// reset drops the cached connection state so the next use reconnects.
// Callers must hold s.mu.
func (s *AMQPSource) reset() {
	if s.ch != nil {
		_ = s.ch.Close()
		s.ch = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}

// dialWithRetry connects to the broker, doubling the delay between attempts.
// Exhausting the retry budget wraps coreerr.ErrBrokerConnection so callers
// can branch on connectivity loss.
func dialWithRetry(ctx context.Context, url string, attempts int, backoff time.Duration) (*amqp.Connection, error) {
	var lastErr error
	delay := backoff

	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := amqp.Dial(url)
		if err == nil {
			if attempt > 1 {
				slog.Info("[Broker] Connected after retry", "attempt", attempt)
			}
			return conn, nil
		}
		lastErr = err

		slog.Warn("[Broker] Connection attempt failed",
			"attempt", attempt,
			"max_attempts", attempts,
			"retry_in", delay,
			"error", err,
		)

		if attempt == attempts {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("broker: %w: %v", coreerr.ErrBrokerConnection, ctx.Err())
		}
		delay *= 2
	}

	return nil, fmt.Errorf("broker: %w after %d attempts: %v", coreerr.ErrBrokerConnection, attempts, lastErr)
}

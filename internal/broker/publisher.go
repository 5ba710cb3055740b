package broker

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	coreerr "github.com/querystats-lab/querystats/internal/core/errors"
)

// Publisher sends JSON message bodies to a queue. Used by the load generator
// and by anything that wants to feed the ingestion pipeline in-process.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher dials the broker and declares the target queue durable.
func NewPublisher(ctx context.Context, url, queue string, attempts int, backoff time.Duration) (*Publisher, error) {
	conn, err := dialWithRetry(ctx, url, attempts, backoff)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("broker: open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("broker: declare queue %q: %w", queue, err)
	}

	return &Publisher{conn: conn, ch: ch}, nil
}

// Publish sends one persistent JSON message to the queue via the default
// exchange.
func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	err := p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("broker: %w: publish to %q: %v", coreerr.ErrBrokerConnection, queue, err)
	}
	return nil
}

// Close shuts down the channel and connection.
func (p *Publisher) Close() error {
	chErr := p.ch.Close()
	connErr := p.conn.Close()
	if chErr != nil {
		return fmt.Errorf("broker: close channel: %w", chErr)
	}
	if connErr != nil {
		return fmt.Errorf("broker: close connection: %w", connErr)
	}
	return nil
}

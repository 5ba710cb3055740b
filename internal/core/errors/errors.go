// Package errors defines the failure taxonomy shared across the ingestion
// and rollup pipeline. Callers branch on these sentinels with errors.Is;
// everything else is context added via fmt.Errorf wrapping.
package errors

import "errors"

var (
	// ErrBrokerConnection marks a broker connection failure that survived
	// the full retry budget. Fatal for the current cycle; the scheduler
	// logs it and retries on the next tick.
	ErrBrokerConnection = errors.New("broker connection failed")

	// ErrMessageFormat marks a single queue message that does not match
	// the expected schema. Never fatal: the message is acknowledged and
	// dropped so it cannot block the queue.
	ErrMessageFormat = errors.New("malformed message")

	// ErrStoreWrite marks a failed batch insert or snapshot insert.
	// Fatal for the current cycle only; nothing partial is committed.
	ErrStoreWrite = errors.New("store write failed")
)

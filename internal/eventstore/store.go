package eventstore

import (
	"context"
	"time"
)

// Store persists generation events. Events are append-only apart from Prune.
type Store interface {
	// Append adds a new event to the store.
	Append(ctx context.Context, invocationID, eventType string, payload []byte, metadata map[string]string) error

	// GetByInvocationID retrieves all events of one generation run.
	GetByInvocationID(ctx context.Context, invocationID string) ([]Event, error)

	// GetRange retrieves events within a time range.
	GetRange(ctx context.Context, start, end time.Time) ([]Event, error)

	// Recent retrieves the newest events, newest first.
	Recent(ctx context.Context, limit int) ([]Event, error)

	// CountByOutcome returns how many stored events carry each outcome.
	CountByOutcome(ctx context.Context) (map[string]int, error)

	// Prune deletes all but the newest keep events and returns how many
	// were removed.
	Prune(ctx context.Context, keep int) (int64, error)

	// Close closes the store and releases resources.
	Close() error
}

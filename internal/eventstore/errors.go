package eventstore

import (
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

var (
	// ErrDatabaseOpenFailed indicates the SQLite database could not be opened.
	ErrDatabaseOpenFailed = errors.EventStoreError("could not open event store database").Build()

	// ErrEventAppendFailed indicates appending an event failed.
	ErrEventAppendFailed = errors.EventStoreError("failed to append event to store").Build()

	// ErrEventQueryFailed indicates querying events failed.
	ErrEventQueryFailed = errors.EventStoreError("failed to query events from store").Build()

	// ErrEventPruneFailed indicates deleting old events failed.
	ErrEventPruneFailed = errors.EventStoreError("failed to prune events").Build()

	// ErrUnmarshalPayloadFailed indicates an event payload could not be decoded.
	ErrUnmarshalPayloadFailed = errors.EventStoreError("failed to unmarshal event payload").Build()
)

// wrap attaches cause to one of the sentinel errors while keeping it
// comparable with errors.Is.
func wrap(sentinel *errors.ClassifiedError, cause error) error {
	return errors.NewError(sentinel.Category(), sentinel.Message()).
		WithCause(cause).
		Build()
}

package eventstore

import "time"

// Event is one stored generation event.
type Event interface {
	// ID returns the unique identifier for this event.
	ID() int64
	// InvocationID returns the generation run this event belongs to.
	InvocationID() string
	// Type returns the event type name.
	Type() string
	// Timestamp returns when the event was stored.
	Timestamp() time.Time
	// Payload returns the event data as bytes.
	Payload() []byte
	// Metadata returns optional event metadata.
	Metadata() map[string]string
}

// BaseEvent provides a default implementation of Event.
type BaseEvent struct {
	EventID           int64
	EventInvocationID string
	EventType         string
	EventTimestamp    time.Time
	EventPayload      []byte
	EventMetadata     map[string]string
}

func (e *BaseEvent) ID() int64                   { return e.EventID }
func (e *BaseEvent) InvocationID() string        { return e.EventInvocationID }
func (e *BaseEvent) Type() string                { return e.EventType }
func (e *BaseEvent) Timestamp() time.Time        { return e.EventTimestamp }
func (e *BaseEvent) Payload() []byte             { return e.EventPayload }
func (e *BaseEvent) Metadata() map[string]string { return e.EventMetadata }

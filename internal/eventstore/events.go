package eventstore

import (
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/generator"
)

// Event type names.
const (
	TypeGenerationCompleted = "GenerationCompleted"
	TypeGenerationFailed    = "GenerationFailed"
)

// Metadata keys set on generation events. MetadataOutcome is also indexed
// by SQLiteStore.
const (
	MetadataOutcome    = "outcome"
	MetadataOutputPath = "output_path"
)

// GenerationRecorded is stored once per finished generation. Its payload is
// the generation report.
type GenerationRecorded struct {
	BaseEvent
	Report generator.Report
}

// NewGenerationRecorded creates the event for a finished generation.
func NewGenerationRecorded(report *generator.Report) (*GenerationRecorded, error) {
	payload, err := json.Marshal(report)
	if err != nil {
		return nil, errors.EventStoreError("failed to marshal generation report").
			WithCause(err).
			WithContext("invocation_id", report.InvocationID).
			Build()
	}

	eventType := TypeGenerationCompleted
	if report.Outcome == generator.OutcomeFailed {
		eventType = TypeGenerationFailed
	}

	return &GenerationRecorded{
		BaseEvent: BaseEvent{
			EventInvocationID: report.InvocationID,
			EventType:         eventType,
			EventTimestamp:    time.Now(),
			EventPayload:      payload,
			EventMetadata: map[string]string{
				MetadataOutcome:    string(report.Outcome),
				MetadataOutputPath: report.OutputPath,
			},
		},
		Report: *report,
	}, nil
}

// Package eventstore keeps a history of generation runs in SQLite.
package eventstore

import (
	"context"
	"encoding/json"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/generator"
)

// Summary is the read model of one generation run.
type Summary struct {
	InvocationID string            `json:"invocation_id"`
	Outcome      generator.Outcome `json:"outcome"`
	StartedAt    time.Time         `json:"started_at"`
	Duration     time.Duration     `json:"duration"`
	OutputPath   string            `json:"output_path,omitempty"`
	SourceHash   string            `json:"source_hash,omitempty"`
	ConfigHash   string            `json:"config_hash,omitempty"`
	Assets       int               `json:"assets"`
	Error        string            `json:"error,omitempty"`
}

// SummaryFromEvent decodes a generation event. ok is false for other event
// types.
func SummaryFromEvent(event Event) (summary Summary, ok bool, err error) {
	switch event.Type() {
	case TypeGenerationCompleted, TypeGenerationFailed:
	default:
		return Summary{}, false, nil
	}

	var report generator.Report
	if err := json.Unmarshal(event.Payload(), &report); err != nil {
		return Summary{}, false, wrap(ErrUnmarshalPayloadFailed, err)
	}
	return Summary{
		InvocationID: event.InvocationID(),
		Outcome:      report.Outcome,
		StartedAt:    report.Start,
		Duration:     report.Duration(),
		OutputPath:   report.OutputPath,
		SourceHash:   report.SourceHash,
		ConfigHash:   report.ConfigHash,
		Assets:       report.Assets,
		Error:        report.Error,
	}, true, nil
}

// History returns up to limit of the newest generation summaries, newest first.
func History(ctx context.Context, store Store, limit int) ([]Summary, error) {
	events, err := store.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(events))
	for _, event := range events {
		summary, ok, err := SummaryFromEvent(event)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, summary)
		}
	}
	return out, nil
}

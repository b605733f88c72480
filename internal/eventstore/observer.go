package eventstore

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/generator"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
)

// Observer records every finished generation in a Store. Failures to record
// are logged and never affect the generation.
type Observer struct {
	generator.NoopObserver
	store   Store
	logger  *slog.Logger
	timeout time.Duration
}

// NewObserver returns an observer appending to store.
func NewObserver(store Store, logger *slog.Logger) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Observer{store: store, logger: logger, timeout: 5 * time.Second}
}

// OnGenerationComplete implements generator.Observer.
func (o *Observer) OnGenerationComplete(report *generator.Report) {
	event, err := NewGenerationRecorded(report)
	if err != nil {
		o.logger.Warn("Could not encode generation event", logfields.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()
	if err := o.store.Append(ctx, event.InvocationID(), event.Type(), event.Payload(), event.Metadata()); err != nil {
		o.logger.Warn("Could not record generation",
			logfields.InvocationID(report.InvocationID), logfields.Error(err))
	}
}

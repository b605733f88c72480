// Package notify publishes a NATS message for every finished generation.
//
// Messages go to "<subject>.<outcome>" so subscribers can listen to
// "<subject>.>" or to failures only.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/generator"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/retry"
)

// DefaultSubject is the subject prefix used when none is configured.
const DefaultSubject = "faviconbuilder.generation"

// HeaderInvocationID carries the invocation ID of the generation.
const HeaderInvocationID = "Faviconbuilder-Invocation-Id"

// Notification is the JSON body of a published message.
type Notification struct {
	InvocationID string    `json:"invocation_id"`
	Outcome      string    `json:"outcome"`
	OutputPath   string    `json:"output_path,omitempty"`
	SourceHash   string    `json:"source_hash,omitempty"`
	ConfigHash   string    `json:"config_hash,omitempty"`
	Assets       int       `json:"assets"`
	DurationMS   int64     `json:"duration_ms"`
	Error        string    `json:"error,omitempty"`
	FinishedAt   time.Time `json:"finished_at"`
}

// Conn is the part of *nats.Conn the publisher needs.
type Conn interface {
	PublishMsg(msg *nats.Msg) error
}

// Publisher is a generator.Observer that announces finished generations.
type Publisher struct {
	generator.NoopObserver
	conn    Conn
	subject string
	logger  *slog.Logger
	retry   retry.Policy
	close   func() error
}

// NewPublisher publishes through conn.
func NewPublisher(conn Conn, subject string, logger *slog.Logger) *Publisher {
	if subject == "" {
		subject = DefaultSubject
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{conn: conn, subject: subject, logger: logger, retry: retry.DefaultPolicy()}
}

// WithRetry sets the backoff used when a publish fails.
func (p *Publisher) WithRetry(policy retry.Policy) *Publisher {
	p.retry = policy
	return p
}

// Connect dials the NATS server at url and returns a publisher owning the
// connection.
func Connect(url, subject string, logger *slog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("faviconbuilder"), nats.Timeout(5*time.Second))
	if err != nil {
		return nil, errors.NotifyError("failed to connect to NATS").
			WithCause(err).
			WithContext("url", url).
			Build()
	}
	p := NewPublisher(nc, subject, logger)
	p.close = nc.Drain
	p.logger.Debug("NATS publisher connected", slog.String("url", url), logfields.Subject(p.subject))
	return p, nil
}

// Subject returns the subject a report is published on.
func (p *Publisher) Subject(report *generator.Report) string {
	return p.subject + "." + string(report.Outcome)
}

// Publish sends the notification for report, retrying failed publishes.
func (p *Publisher) Publish(ctx context.Context, report *generator.Report) error {
	data, err := json.Marshal(Notification{
		InvocationID: report.InvocationID,
		Outcome:      string(report.Outcome),
		OutputPath:   report.OutputPath,
		SourceHash:   report.SourceHash,
		ConfigHash:   report.ConfigHash,
		Assets:       report.Assets,
		DurationMS:   report.Duration().Milliseconds(),
		Error:        report.Error,
		FinishedAt:   report.End,
	})
	if err != nil {
		return errors.NotifyError("failed to marshal notification").WithCause(err).Build()
	}

	msg := nats.NewMsg(p.Subject(report))
	msg.Data = data
	msg.Header.Set(HeaderInvocationID, report.InvocationID)

	if err := p.retry.Do(ctx, func() error { return p.conn.PublishMsg(msg) }); err != nil {
		return errors.NotifyError("failed to publish notification").
			WithCause(err).
			WithContext(logfields.KeySubject, msg.Subject).
			WithContext(logfields.KeyInvocationID, report.InvocationID).
			Build()
	}
	p.logger.Debug("Published generation notification",
		logfields.Subject(msg.Subject), logfields.InvocationID(report.InvocationID))
	return nil
}

// OnGenerationComplete implements generator.Observer. Publish failures are
// logged only.
func (p *Publisher) OnGenerationComplete(report *generator.Report) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.Publish(ctx, report); err != nil {
		p.logger.Warn("Could not publish generation notification", logfields.Error(err))
	}
}

// Close drains the connection when the publisher owns it.
func (p *Publisher) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// Package retry holds the backoff policy used for transient side-channel
// failures such as publishing notifications.
package retry

import (
	"context"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Mode selects how the delay grows between attempts.
type Mode string

const (
	ModeFixed       Mode = "fixed"
	ModeLinear      Mode = "linear"
	ModeExponential Mode = "exponential"
)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       Mode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // retries after the first failure
}

// DefaultPolicy returns exponential backoff from 100ms capped at 2s with 2 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: ModeExponential, Initial: 100 * time.Millisecond, Max: 2 * time.Second, MaxRetries: 2}
}

// NewPolicy builds a policy from raw fields; zero or invalid values fall back to defaults.
func NewPolicy(mode Mode, initial, maxDelay time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDelay > 0 {
		p.Max = maxDelay
	}
	switch mode {
	case ModeFixed, ModeLinear, ModeExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff before retry n (1-based).
func (p Policy) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	switch p.Mode {
	case ModeFixed:
		return p.Initial
	case ModeExponential:
		d := p.Initial << (n - 1)
		if d > p.Max || d <= 0 {
			return p.Max
		}
		return d
	default:
		d := time.Duration(n) * p.Initial
		if d > p.Max {
			return p.Max
		}
		return d
	}
}

// Validate ensures the policy can be applied.
func (p Policy) Validate() error {
	switch {
	case p.Initial <= 0:
		return errors.ValidationError("retry initial delay must be > 0").Build()
	case p.Max <= 0:
		return errors.ValidationError("retry max delay must be > 0").Build()
	case p.MaxRetries < 0:
		return errors.ValidationError("retry count cannot be negative").Build()
	}
	return nil
}

// Do calls fn until it succeeds, the retries are used up or ctx is done.
// It returns the last error from fn, or ctx's error when canceled while
// waiting.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	err := fn()
	for n := 1; err != nil && n <= p.MaxRetries; n++ {
		t := time.NewTimer(p.Delay(n))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		err = fn()
	}
	return err
}

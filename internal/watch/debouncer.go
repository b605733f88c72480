package watch

import (
	"context"
	"slices"
	"sync"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
)

// Debounce causes reported in Batch.Cause.
const (
	CauseQuiet    = "quiet"
	CauseMaxDelay = "max_delay"
)

// DebouncerConfig controls how requests are coalesced.
type DebouncerConfig struct {
	// QuietWindow is how long the debouncer waits after the last request.
	QuietWindow time.Duration
	// MaxDelay bounds how long a burst can postpone the handler.
	MaxDelay time.Duration
}

// Batch describes the requests folded into one handler call.
type Batch struct {
	Count   int
	Reasons []string
	First   time.Time
	Last    time.Time
	Cause   string
}

func (b *Batch) add(count int, reasons []string, first, last time.Time) {
	if b.Count == 0 {
		b.First = first
	}
	b.Count += count
	b.Last = last
	for _, r := range reasons {
		if r != "" && !slices.Contains(b.Reasons, r) {
			b.Reasons = append(b.Reasons, r)
		}
	}
}

// Debouncer coalesces bursts of requests into a single handler call.
//
// The handler runs on the Run goroutine, so calls never overlap. Requests
// arriving while it runs are folded into exactly one follow-up batch.
// Requests are recorded under a lock; the channel only wakes Run.
type Debouncer struct {
	cfg    DebouncerConfig
	handle func(context.Context, Batch)
	wake   chan struct{}

	mu     sync.Mutex
	queued Batch

	readyOnce sync.Once
	ready     chan struct{}
}

// NewDebouncer validates cfg and returns a debouncer calling handle.
func NewDebouncer(cfg DebouncerConfig, handle func(context.Context, Batch)) (*Debouncer, error) {
	if handle == nil {
		return nil, errors.ValidationError("debounce handler is required").Build()
	}
	if cfg.QuietWindow <= 0 {
		return nil, errors.ValidationError("quiet window must be > 0").Build()
	}
	if cfg.MaxDelay <= 0 {
		return nil, errors.ValidationError("max delay must be > 0").Build()
	}
	return &Debouncer{
		cfg:    cfg,
		handle: handle,
		wake:   make(chan struct{}, 1),
		ready:  make(chan struct{}),
	}, nil
}

// Ready is closed once Run is accepting requests.
func (d *Debouncer) Ready() <-chan struct{} { return d.ready }

// Request asks for a handler call. It never blocks.
func (d *Debouncer) Request(reason string) {
	now := time.Now()
	d.mu.Lock()
	d.queued.add(1, []string{reason}, now, now)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

// take returns and clears the requests recorded since the last call.
func (d *Debouncer) take() Batch {
	d.mu.Lock()
	defer d.mu.Unlock()
	b := d.queued
	d.queued = Batch{}
	return b
}

// Run processes requests until ctx is done.
func (d *Debouncer) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.ValidationError("context cannot be nil").Build()
	}
	d.readyOnce.Do(func() { close(d.ready) })

	quietTimer := stoppedTimer()
	maxTimer := stoppedTimer()
	defer quietTimer.Stop()
	defer maxTimer.Stop()

	var (
		quietC  <-chan time.Time
		maxC    <-chan time.Time
		pending *Batch
	)

	fire := func(cause string) {
		batch := *pending
		batch.Cause = cause
		pending = nil
		quietC, maxC = nil, nil
		quietTimer.Stop()
		maxTimer.Stop()
		d.handle(ctx, batch)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-d.wake:
			queued := d.take()
			if queued.Count == 0 {
				continue
			}
			if pending == nil {
				pending = &Batch{}
				maxTimer.Reset(d.cfg.MaxDelay)
				maxC = maxTimer.C
			}
			pending.add(queued.Count, queued.Reasons, queued.First, queued.Last)
			quietTimer.Stop()
			quietTimer.Reset(d.cfg.QuietWindow)
			quietC = quietTimer.C
		case <-quietC:
			fire(CauseQuiet)
		case <-maxC:
			fire(CauseMaxDelay)
		}
	}
}

func stoppedTimer() *time.Timer {
	t := time.NewTimer(time.Hour)
	t.Stop()
	return t
}

package generator

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Coalescer lets concurrent runs over identical inputs share one execution.
// Runs are keyed by cache key, source hash and configuration hash, so two
// callers only share work when they would produce the same output.
type Coalescer struct {
	group singleflight.Group
}

// NewCoalescer returns an empty Coalescer.
func NewCoalescer() *Coalescer { return &Coalescer{} }

// Run executes g.Run for source unless an identical run is already in
// flight, in which case it waits for and returns that run's generation.
// shared reports whether the result came from another caller's run.
func (c *Coalescer) Run(ctx context.Context, g *Generator, source []byte) (gen *Generation, shared bool, err error) {
	fp, err := g.Fingerprint(source)
	if err != nil {
		return nil, false, err
	}
	key := fp.CacheKey + "\x00" + fp.SourceHash + "\x00" + fp.ConfigHash

	v, err, shared := c.group.Do(key, func() (any, error) {
		return g.Run(ctx, source)
	})
	if err != nil {
		return nil, shared, err
	}
	gen = v.(*Generation)
	if shared {
		cp := *gen
		cp.Result = gen.Result.Clone()
		gen = &cp
	}
	return gen, shared, nil
}

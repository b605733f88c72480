package generator

import (
	"context"
	stderrors "errors"
	"log/slog"
	"path"
	"time"

	"git.home.luguber.info/inful/faviconbuilder/internal/asset"
	"git.home.luguber.info/inful/faviconbuilder/internal/cache"
	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/fingerprint"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/metrics"
	"git.home.luguber.info/inful/faviconbuilder/internal/render"
	"git.home.luguber.info/inful/faviconbuilder/internal/storage"
	"git.home.luguber.info/inful/faviconbuilder/internal/version"
)

var errNoResponse = stderrors.New("renderer returned no response")

// Generation is the outcome of a successful run.
type Generation struct {
	Result     *asset.Result
	OutputPath string
	SourceHash string
	ConfigHash string
	CacheKey   string
	Report     *Report
}

// Fingerprints identify the inputs of a run.
type Fingerprints struct {
	SourceHash string
	ConfigHash string
	OutputPath string
	CacheKey   string
}

// hashInput is what the configuration hash covers: the whole resolved
// configuration plus the output path it interpolates to.
type hashInput struct {
	Config     config.Configuration `json:"config"`
	OutputPath string               `json:"outputPath"`
}

// Generator runs generations for one resolved configuration. It holds no
// per-run state and may be used from several goroutines.
type Generator struct {
	cfg      config.Configuration
	renderer render.Renderer
	store    storage.Store
	cache    *cache.Store
	hasher   fingerprint.ContentHasher
	observer Observer
	logger   *slog.Logger
	detail   slog.Level
	schema   string
	now      func() time.Time
}

// New creates a generator writing through store.
func New(cfg config.Configuration, renderer render.Renderer, store storage.Store) *Generator {
	g := &Generator{
		cfg:      cfg,
		renderer: renderer,
		store:    store,
		cache:    cache.NewStore(store, cfg.Cache),
		hasher:   fingerprint.MD5Hasher{},
		observer: NoopObserver{},
		logger:   slog.Default(),
		detail:   slog.LevelDebug,
		schema:   version.CacheTag(),
		now:      time.Now,
	}
	if cfg.Logging {
		g.detail = slog.LevelInfo
	}
	return g
}

// WithObserver sets the observer.
func (g *Generator) WithObserver(o Observer) *Generator {
	if o != nil {
		g.observer = o
	}
	return g
}

// WithLogger sets the logger used by the generator and its cache.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	if logger != nil {
		g.logger = logger
		g.cache.WithLogger(logger)
	}
	return g
}

// WithHasher replaces the content hasher.
func (g *Generator) WithHasher(h fingerprint.ContentHasher) *Generator {
	if h != nil {
		g.hasher = h
	}
	return g
}

// WithSchemaVersion overrides the version tag stored in cache records.
func (g *Generator) WithSchemaVersion(v string) *Generator {
	g.schema = v
	return g
}

// Config returns the configuration the generator runs with.
func (g *Generator) Config() config.Configuration { return g.cfg }

// Fingerprint computes the hashes and cache key for source without running
// any stage.
func (g *Generator) Fingerprint(source []byte) (Fingerprints, error) {
	fp := Fingerprints{SourceHash: g.hasher.Hash(source)}
	fp.OutputPath = fingerprint.Interpolate(g.cfg.Path, fp.SourceHash)

	configHash, err := fingerprint.ConfigHash(hashInput{Config: g.cfg, OutputPath: fp.OutputPath})
	if err != nil {
		return Fingerprints{}, errors.WrapError(err, errors.CategoryInternal, "hash configuration").
			WithContext(logfields.KeySourceHash, fp.SourceHash).
			Build()
	}
	fp.ConfigHash = configHash
	fp.CacheKey = cache.Key(fp.OutputPath)
	return fp, nil
}

// Run executes one generation for the source bytes.
func (g *Generator) Run(ctx context.Context, source []byte) (*Generation, error) {
	report := newReport(g.now())
	log := g.logger.With(logfields.InvocationID(report.InvocationID))

	gen, outcome, err := g.run(ctx, source, report, log)
	report.finish(g.now(), outcome, err)

	if err != nil {
		log.Error("Favicon generation failed", logfields.Outcome(string(outcome)), logfields.Error(err))
	} else {
		if outcome == OutcomeGenerated {
			report.Assets = len(gen.Result.Images) + len(gen.Result.Files)
		}
		log.Log(ctx, g.detail, "Favicon generation finished",
			logfields.Outcome(string(outcome)),
			logfields.Path(gen.OutputPath),
			logfields.DurationMS(float64(report.Duration().Microseconds())/1000))
	}
	g.observer.OnGenerationComplete(report)

	if err != nil {
		return nil, err
	}
	gen.Report = report
	return gen, nil
}

func (g *Generator) run(ctx context.Context, source []byte, report *Report, log *slog.Logger) (*Generation, Outcome, error) {
	var fp Fingerprints
	err := g.stage(ctx, report, log, StageResolve, func() error {
		if err := g.cfg.Validate(); err != nil {
			return err
		}
		var err error
		fp, err = g.Fingerprint(source)
		return err
	})
	if err != nil {
		return nil, OutcomeFailed, err
	}
	report.SourceHash, report.ConfigHash = fp.SourceHash, fp.ConfigHash
	report.OutputPath, report.CacheKey = fp.OutputPath, fp.CacheKey
	log = log.With(logfields.SourceHash(fp.SourceHash), logfields.ConfigHash(fp.ConfigHash))

	gen := &Generation{OutputPath: fp.OutputPath, SourceHash: fp.SourceHash, ConfigHash: fp.ConfigHash, CacheKey: fp.CacheKey}

	var cached *asset.Result
	err = g.stage(ctx, report, log, StageCacheCheck, func() error {
		cached = g.lookup(ctx, fp, report)
		return nil
	})
	if err != nil {
		return nil, OutcomeFailed, err
	}
	if cached != nil {
		log.Log(ctx, g.detail, "Reusing cached favicons", logfields.CacheKey(fp.CacheKey))
		gen.Result = cached
		return gen, OutcomeHit, nil
	}

	var resp *render.Response
	err = g.stage(ctx, report, log, StageRender, func() error {
		var err error
		resp, err = g.render(ctx, source, fp)
		return err
	})
	if err != nil {
		return nil, OutcomeFailed, err
	}

	var result *asset.Result
	err = g.stage(ctx, report, log, StageEmit, func() error {
		var err error
		result, err = g.emit(ctx, resp, fp)
		return err
	})
	if err != nil {
		return nil, OutcomeFailed, err
	}

	// A failed cache write costs a re-render next time and nothing else.
	_ = g.stage(ctx, report, log, StagePersist, func() error {
		if !g.cache.Enabled() {
			return nil
		}
		if err := g.cache.Write(ctx, fp.CacheKey, fp.SourceHash, fp.ConfigHash, g.schema, result); err != nil {
			report.CacheWriteFailed = true
			log.Warn("Could not write generation cache", logfields.CacheKey(fp.CacheKey), logfields.Error(err))
		}
		return nil
	})

	gen.Result = result
	return gen, OutcomeGenerated, nil
}

// stage runs fn as stage and reports it to the observer.
func (g *Generator) stage(ctx context.Context, report *Report, log *slog.Logger, stage Stage, fn func() error) error {
	if err := ctx.Err(); err != nil {
		g.observer.OnStageStart(stage)
		report.StageResults[stage] = StageResultCanceled
		g.observer.OnStageComplete(stage, 0, StageResultCanceled)
		return errors.WrapError(err, errors.CategoryRuntime, "generation canceled").
			WithContext(logfields.KeyStage, string(stage)).
			Build()
	}

	g.observer.OnStageStart(stage)
	start := g.now()
	err := fn()
	d := g.now().Sub(start)

	result := resultFor(err)
	switch {
	case err != nil:
	case stage == StageCacheCheck && report.CacheLookup == metrics.CacheDisabled,
		stage == StagePersist && !g.cache.Enabled():
		result = StageResultSkipped
	case stage == StagePersist && report.CacheWriteFailed:
		result = StageResultWarning
	}

	report.StageDurations[stage] = d
	report.StageResults[stage] = result
	g.observer.OnStageComplete(stage, d, result)

	log.Log(ctx, g.detail, "Stage complete",
		logfields.Stage(string(stage)),
		slog.String("result", string(result)),
		logfields.DurationMS(float64(d.Microseconds())/1000))
	return err
}

// lookup returns the cached result when the stored record matches fp.
func (g *Generator) lookup(ctx context.Context, fp Fingerprints, report *Report) *asset.Result {
	if !g.cache.Enabled() {
		report.CacheLookup = metrics.CacheDisabled
		return nil
	}
	rec, ok := g.cache.Read(ctx, fp.CacheKey)
	if !ok || !g.cache.Validate(rec, fp.SourceHash, fp.ConfigHash, g.schema) {
		report.CacheLookup = metrics.CacheMiss
		return nil
	}
	report.CacheLookup = metrics.CacheHit
	result := rec.Result.Clone()
	result.Cached = true
	return result
}

// htmlPath is the prefix asset references get in HTML and manifests.
func (g *Generator) htmlPath(outputPath string) string {
	return fingerprint.EnsureTrailingSlash(fingerprint.EnsureTrailingSlash(g.cfg.PublicPath) + outputPath)
}

func (g *Generator) render(ctx context.Context, source []byte, fp Fingerprints) (*render.Response, error) {
	resp, err := g.renderer.Render(ctx, source, render.Request{
		Icons: g.cfg.Icons.Clone(),
		App:   g.cfg.App,
		Path:  g.htmlPath(fp.OutputPath),
	})
	if err == nil && resp == nil {
		err = errNoResponse
	}
	if err != nil {
		return nil, errors.RenderError("render icons").
			WithCause(err).
			WithContext(logfields.KeySourceHash, fp.SourceHash).
			WithContext(logfields.KeyConfigHash, fp.ConfigHash).
			WithContext(logfields.KeyPath, fp.OutputPath).
			Build()
	}
	return resp, nil
}

// emit normalizes the response and hands every asset to the store.
func (g *Generator) emit(ctx context.Context, resp *render.Response, fp Fingerprints) (*asset.Result, error) {
	if err := render.ValidateFragments(resp.HTML); err != nil {
		return nil, errors.RenderError("renderer produced invalid HTML").
			WithCause(err).
			WithContext(logfields.KeySourceHash, fp.SourceHash).
			Build()
	}

	result := &asset.Result{
		Images: make([]string, 0, len(resp.Images)),
		Files:  make([]asset.File, 0, len(resp.Files)),
		HTML:   append([]string{}, resp.HTML...),
	}

	for _, img := range resp.Images {
		if err := g.emitOne(ctx, fp, img.Name, img.Contents); err != nil {
			return nil, err
		}
		result.Images = append(result.Images, img.Name)
	}
	for _, f := range resp.Files {
		if err := g.emitOne(ctx, fp, f.Name, []byte(f.Contents)); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, asset.File{Name: f.Name, Content: f.Contents})
	}
	return result, nil
}

func (g *Generator) emitOne(ctx context.Context, fp Fingerprints, name string, data []byte) error {
	target := path.Join(fp.OutputPath, name)
	if err := g.store.Emit(ctx, target, data); err != nil {
		return errors.FileSystemError("emit asset").
			WithCause(err).
			WithContext(logfields.KeyPath, target).
			WithContext(logfields.KeySourceHash, fp.SourceHash).
			WithContext(logfields.KeyConfigHash, fp.ConfigHash).
			Build()
	}
	return nil
}

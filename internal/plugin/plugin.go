package plugin

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path"
	"sync"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/fingerprint"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/generator"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/project"
	"git.home.luguber.info/inful/faviconbuilder/internal/render"
	"git.home.luguber.info/inful/faviconbuilder/internal/storage"
)

// FaviconName is the icon copied to the output root on request.
const FaviconName = "favicon.ico"

// Compilation is the outcome of one Compile.
type Compilation struct {
	*generator.Generation
	// StatsName is the interpolated stats file name.
	StatsName string
	// Stats is the JSON encoded result, staged for Finalize.
	Stats []byte
}

type settings struct {
	renderer   render.Renderer
	logger     *slog.Logger
	observer   generator.Observer
	descriptor project.Descriptor
	coalescer  *generator.Coalescer
}

// Option configures a Plugin.
type Option func(*settings)

// WithRenderer sets the renderer. The default is render.NewBasic().
func WithRenderer(r render.Renderer) Option {
	return func(s *settings) { s.renderer = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithObserver sets the generation observer.
func WithObserver(o generator.Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithDescriptor supplies the project descriptor the app name is guessed from.
func WithDescriptor(d project.Descriptor) Option {
	return func(s *settings) { s.descriptor = d }
}

// WithCoalescer shares in-flight generations with other plugins using the
// same Coalescer.
func WithCoalescer(c *generator.Coalescer) Option {
	return func(s *settings) { s.coalescer = c }
}

// Plugin generates favicons for a host build.
type Plugin struct {
	cfg      config.Configuration
	settings settings

	mu          sync.Mutex
	compilation *Compilation
}

// New resolves opts. Every configuration problem is reported here, before
// any build work starts.
func New(opts config.Options, options ...Option) (*Plugin, error) {
	s := settings{observer: generator.NoopObserver{}, logger: slog.Default()}
	for _, o := range options {
		o(&s)
	}
	if s.renderer == nil {
		s.renderer = render.NewBasic().WithLogger(s.logger)
	}

	cfg, err := config.Resolve(opts, s.descriptor)
	if err != nil {
		return nil, err
	}
	return &Plugin{cfg: cfg, settings: s}, nil
}

// Config returns the resolved configuration.
func (p *Plugin) Config() config.Configuration { return p.cfg }

// Compilation returns the result of the last successful Compile, or nil.
func (p *Plugin) Compilation() *Compilation {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.compilation
}

func (p *Plugin) generator(host Host) *generator.Generator {
	return generator.New(p.cfg, p.settings.renderer, host.Assets()).
		WithLogger(p.settings.logger).
		WithObserver(p.settings.observer)
}

// Compile reads the source image through host and runs a generation.
func (p *Plugin) Compile(ctx context.Context, host Host) (*Compilation, error) {
	source, err := host.ReadSource(ctx, p.cfg.Source)
	if err != nil {
		return nil, sourceError(p.cfg.Source, err)
	}

	g := p.generator(host)
	var gen *generator.Generation
	if p.settings.coalescer != nil {
		gen, _, err = p.settings.coalescer.Run(ctx, g, source)
	} else {
		gen, err = g.Run(ctx, source)
	}
	if err != nil {
		return nil, err
	}

	stats, err := json.MarshalIndent(gen.Result, "", "  ")
	if err != nil {
		return nil, errors.InternalError("encode generation stats").WithCause(err).Build()
	}

	c := &Compilation{
		Generation: gen,
		StatsName:  fingerprint.Interpolate(p.cfg.StatsFilename, gen.SourceHash),
		Stats:      stats,
	}

	p.mu.Lock()
	p.compilation = c
	p.mu.Unlock()
	return c, nil
}

func sourceError(source string, err error) error {
	if stderrors.Is(err, fs.ErrNotExist) || storage.IsNotFound(err) {
		return errors.NewError(errors.CategoryNotFound, "source image not found").
			WithCause(err).
			WithContext(logfields.KeyPath, source).
			Build()
	}
	return errors.FileSystemError("read source image").
		WithCause(err).
		WithContext(logfields.KeyPath, source).
		Build()
}

// Finalize writes or withdraws the stats file and copies the favicon to the
// output root when configured.
func (p *Plugin) Finalize(ctx context.Context, host Host) error {
	c := p.Compilation()
	if c == nil {
		return errors.RuntimeError("finalize called before a successful compile").Build()
	}
	out := host.Assets()

	if p.cfg.EmitStats {
		if err := out.Emit(ctx, c.StatsName, c.Stats); err != nil {
			return errors.FileSystemError("emit generation stats").
				WithCause(err).
				WithContext(logfields.KeyPath, c.StatsName).
				Build()
		}
	} else if err := out.Remove(ctx, c.StatsName); err != nil && !storage.IsNotFound(err) {
		return errors.FileSystemError("remove generation stats").
			WithCause(err).
			WithContext(logfields.KeyPath, c.StatsName).
			Build()
	}

	if p.cfg.CopyFaviconToRoot && c.Result.HasImage(FaviconName) {
		return copyFavicon(ctx, out, path.Join(c.OutputPath, FaviconName))
	}
	return nil
}

func copyFavicon(ctx context.Context, out storage.Store, from string) error {
	data, err := out.ReadFile(ctx, from)
	if err == nil {
		err = out.Emit(ctx, FaviconName, data)
	}
	if err != nil {
		return errors.FileSystemError("copy favicon to output root").
			WithCause(err).
			WithContext(logfields.KeyPath, from).
			Build()
	}
	return nil
}

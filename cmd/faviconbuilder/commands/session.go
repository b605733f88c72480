package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/faviconbuilder/internal/config"
	"git.home.luguber.info/inful/faviconbuilder/internal/eventstore"
	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/generator"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/metrics"
	"git.home.luguber.info/inful/faviconbuilder/internal/notify"
	"git.home.luguber.info/inful/faviconbuilder/internal/plugin"
	"git.home.luguber.info/inful/faviconbuilder/internal/project"
	"git.home.luguber.info/inful/faviconbuilder/internal/storage"
)

// session holds what a command needs across one or more generations:
// the output host and the observers that outlive a single plugin.
type session struct {
	root     *CLI
	logger   *slog.Logger
	host     *plugin.DiskHost
	observer generator.Observer
	closers  []func() error
}

// openSession prepares the output directory and side channels. recorder may
// be nil.
func (c *CLI) openSession(g *Global, output string, recorder metrics.Recorder) (*session, error) {
	out, err := storage.NewFSStore(output)
	if err != nil {
		return nil, errors.FileSystemError("prepare output directory").
			WithCause(err).
			WithContext(logfields.KeyPath, output).
			Build()
	}
	s := &session{root: c, logger: g.logger(), host: plugin.NewDiskHost(out)}

	observers := generator.MultiObserver{}
	if recorder != nil {
		observers = append(observers, generator.RecorderObserver{Recorder: recorder})
	}
	if c.HistoryDB != "" {
		store, err := eventstore.NewSQLiteStore(c.HistoryDB)
		if err != nil {
			return nil, errors.EventStoreError("open history database").
				WithCause(err).
				WithContext(logfields.KeyPath, c.HistoryDB).
				Build()
		}
		s.closers = append(s.closers, store.Close)
		observers = append(observers, eventstore.NewObserver(store, s.logger))
	}
	if c.NATSURL != "" {
		pub, err := notify.Connect(c.NATSURL, c.subject(), s.logger)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		s.closers = append(s.closers, pub.Close)
		observers = append(observers, pub)
	}
	s.observer = observers
	return s, nil
}

// Close releases side channels in reverse order of opening.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return stderrors.Join(errs...)
}

// loadOptions reads the configuration file and discovers the project the
// app name may be guessed from.
func (c *CLI) loadOptions() (config.Options, project.Descriptor, error) {
	opts, err := config.Load(c.Config)
	if err != nil {
		return config.Options{}, project.Descriptor{}, err
	}
	desc, err := project.Discover(filepath.Dir(c.Config))
	if err != nil {
		slog.Debug("Project discovery failed", logfields.Error(err))
		desc = project.Descriptor{}
	}
	return opts, desc, nil
}

// newPlugin loads the configuration and builds a plugin wired to the session.
func (s *session) newPlugin() (*plugin.Plugin, error) {
	opts, desc, err := s.root.loadOptions()
	if err != nil {
		return nil, err
	}
	return plugin.New(opts,
		plugin.WithLogger(s.logger),
		plugin.WithObserver(s.observer),
		plugin.WithDescriptor(desc),
	)
}

// generate compiles, injects into pages and finalizes.
func (s *session) generate(ctx context.Context, p *plugin.Plugin, pages []string) (*plugin.Compilation, error) {
	c, err := p.Compile(ctx, s.host)
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if err := injectPage(p, page); err != nil {
			return nil, err
		}
	}
	if err := p.Finalize(ctx, s.host); err != nil {
		return nil, err
	}
	return c, nil
}

// injectPage rewrites an HTML file in place with the favicon markup. Markup
// from an earlier run is replaced, so a page carries one block at most.
func injectPage(p *plugin.Plugin, page string) error {
	info, err := os.Stat(page)
	if err != nil {
		return errors.FileSystemError("stat html page").WithCause(err).WithContext(logfields.KeyPath, page).Build()
	}
	data, err := os.ReadFile(page) // #nosec G304 -- user supplied page
	if err != nil {
		return errors.FileSystemError("read html page").WithCause(err).WithContext(logfields.KeyPath, page).Build()
	}
	injected := p.InjectHTML(string(data), plugin.PageOptions{})
	if injected == string(data) {
		return nil
	}
	if err := os.WriteFile(page, []byte(injected), info.Mode().Perm()); err != nil {
		return errors.FileSystemError("write html page").WithCause(err).WithContext(logfields.KeyPath, page).Build()
	}
	return nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	ferrors "git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
	"git.home.luguber.info/inful/faviconbuilder/internal/metrics"
	"git.home.luguber.info/inful/faviconbuilder/internal/plugin"
	"git.home.luguber.info/inful/faviconbuilder/internal/watch"
)

// Reasons passed to the debouncer.
const (
	reasonConfig   = "config"
	reasonSource   = "source"
	reasonInterval = "interval"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output      string        `short:"o" help:"Build output directory" default:"./dist"`
	HTML        []string      `name:"html" help:"HTML pages to inject the favicon markup into, rewritten in place"`
	Interval    time.Duration `help:"Periodic regeneration check, 0 disables it" default:"10m"`
	Quiet       time.Duration `help:"Quiet period before regenerating after a change" default:"300ms"`
	MaxDelay    time.Duration `name:"max-delay" help:"Longest a burst of changes can postpone regeneration" default:"5s"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address, e.g. :9090"`
}

func (w *WatchCmd) Run(global *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return w.run(ctx, global, root)
}

type watchLoop struct {
	cmd     *WatchCmd
	session *session
	logger  *slog.Logger

	mu     sync.Mutex
	plugin *plugin.Plugin
}

func (w *WatchCmd) run(ctx context.Context, global *Global, root *CLI) error {
	logger := global.logger()

	var (
		recorder metrics.Recorder
		registry *prom.Registry
	)
	if w.MetricsAddr != "" {
		registry = prom.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	s, err := root.openSession(global, w.Output, recorder)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(); err != nil {
			logger.Warn("Failed to close session", logfields.Error(err))
		}
	}()

	p, err := s.newPlugin()
	if err != nil {
		return err
	}
	loop := &watchLoop{cmd: w, session: s, logger: logger, plugin: p}
	loop.regenerate(ctx, watch.Batch{Reasons: []string{"startup"}})

	debouncer, err := watch.NewDebouncer(watch.DebouncerConfig{QuietWindow: w.Quiet, MaxDelay: w.MaxDelay}, loop.regenerate)
	if err != nil {
		return err
	}

	configPath, err := filepath.Abs(root.Config)
	if err != nil {
		return ferrors.FileSystemError("resolve configuration path").WithCause(err).Build()
	}
	sourcePath, err := filepath.Abs(p.Config().Source)
	if err != nil {
		return ferrors.FileSystemError("resolve source path").WithCause(err).Build()
	}
	watcher, err := watch.NewWatcher([]string{configPath, sourcePath}, func(path string) {
		if path == configPath {
			debouncer.Request(reasonConfig)
			return
		}
		debouncer.Request(reasonSource)
	})
	if err != nil {
		return err
	}
	watcher.WithLogger(logger)

	if w.Interval > 0 {
		scheduler, err := watch.NewScheduler()
		if err != nil {
			return err
		}
		scheduler.WithLogger(logger)
		if _, err := scheduler.Every("favicon-recheck", w.Interval, func() { debouncer.Request(reasonInterval) }); err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.Warn("Failed to stop scheduler", logfields.Error(err))
			}
		}()
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return debouncer.Run(gctx) })
	group.Go(func() error { return watcher.Run(gctx) })
	if registry != nil {
		srv := &http.Server{Addr: w.MetricsAddr, Handler: metricsMux(registry), ReadHeaderTimeout: 5 * time.Second}
		group.Go(func() error {
			logger.Info("Serving metrics", slog.String("addr", w.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return ferrors.RuntimeError("metrics server failed").WithCause(err).WithContext("addr", w.MetricsAddr).Build()
			}
			return nil
		})
		group.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	logger.Info("Watching for changes",
		logfields.Path(sourcePath),
		slog.String("config", configPath),
		slog.Duration("interval", w.Interval))
	return group.Wait()
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}

// regenerate runs one generation. Configuration changes rebuild the plugin
// first; an invalid configuration keeps the previous one. Failures are
// logged and never stop the loop.
func (l *watchLoop) regenerate(ctx context.Context, batch watch.Batch) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, reason := range batch.Reasons {
		if reason != reasonConfig {
			continue
		}
		p, err := l.session.newPlugin()
		if err != nil {
			l.logger.Error("Configuration reload failed, keeping previous configuration", logfields.Error(err))
			break
		}
		if p.Config().Source != l.plugin.Config().Source {
			l.logger.Warn("Source path changed, restart watch to follow the new file", logfields.Path(p.Config().Source))
		}
		l.plugin = p
		l.logger.Info("Configuration reloaded")
	}

	c, err := l.session.generate(ctx, l.plugin, l.cmd.HTML)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.logger.Error("Regeneration failed", logfields.Error(err), slog.Any("reasons", batch.Reasons))
		return
	}
	l.logger.Info("Favicons up to date",
		logfields.Path(c.OutputPath),
		logfields.Assets(len(c.Result.Images)+len(c.Result.Files)),
		slog.Bool("cached", c.Result.Cached),
		slog.Any("reasons", batch.Reasons),
		slog.Int("requests", batch.Count))
}

// Package watch regenerates favicons when their inputs change. A Watcher
// reports file changes, a Scheduler adds periodic re-checks, and a Debouncer
// folds both into serialized regeneration calls.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/faviconbuilder/internal/logfields"
)

// Watcher monitors a set of files. It watches their parent directories,
// which survives editors that save by renaming over the original.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    map[string]struct{}
	onChange func(path string)
	logger   *slog.Logger
}

// NewWatcher starts watching paths. onChange receives the absolute path of
// every written, created or renamed file among them.
func NewWatcher(paths []string, onChange func(path string)) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, errors.ValidationError("nothing to watch").Build()
	}
	if onChange == nil {
		return nil, errors.ValidationError("change handler is required").Build()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.RuntimeError("create file watcher").WithCause(err).Build()
	}

	w := &Watcher{fs: fsw, files: make(map[string]struct{}, len(paths)), onChange: onChange, logger: slog.Default()}
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, errors.FileSystemError("resolve watched path").
				WithCause(err).
				WithContext(logfields.KeyPath, p).
				Build()
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, errors.FileSystemError("watch directory").
				WithCause(err).
				WithContext(logfields.KeyPath, dir).
				Build()
		}
	}
	return w, nil
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(l *slog.Logger) *Watcher {
	w.logger = l
	return w
}

// Run delivers change events until ctx is done, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() {
		if err := w.fs.Close(); err != nil {
			w.logger.Error("Error closing file watcher", logfields.Error(err))
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if _, ok := w.files[name]; !ok {
		return
	}
	switch {
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
		w.logger.Debug("Watched file changed", logfields.Path(name), slog.String("op", event.Op.String()))
		w.onChange(name)
	case event.Has(fsnotify.Remove):
		w.logger.Warn("Watched file removed", logfields.Path(name))
	}
}

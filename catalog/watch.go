package catalog

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a catalog when any of its source files change on disk.
type Watcher struct {
	catalog *Catalog
	paths   map[string]struct{}
	all     []string
	fsw     *fsnotify.Watcher
	logger  *zap.Logger
	done    chan struct{}
}

// Watch starts watching the given metadata files. Each write or create event
// on a watched file triggers a full reload; a failed reload keeps the
// previous catalog generation.
func Watch(c *Catalog, logger *zap.Logger, paths ...string) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		catalog: c,
		paths:   make(map[string]struct{}, len(paths)),
		all:     paths,
		fsw:     fsw,
		logger:  logger,
		done:    make(chan struct{}),
	}

	// Watch the parent directories: editors often replace files by rename,
	// which drops a watch registered on the file itself.
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()

			return nil, err
		}

		w.paths[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()

			return nil, err
		}
	}

	go w.run()

	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}

			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}

			if _, watched := w.paths[abs]; !watched {
				continue
			}

			w.logger.Info("catalog file changed", zap.String("path", abs))

			if err := w.catalog.Reload(w.all...); err != nil {
				w.logger.Error("catalog reload failed", zap.Error(err))
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			w.logger.Warn("catalog watch error", zap.Error(err))

		case <-w.done:
			return
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)

	return w.fsw.Close()
}

// Package watcher rebuilds a mesh whenever one of its source files changes.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/philipparndt/meshforge/pkg/mesh"
)

// LoadFunc builds the mesh for path and returns the files it was built
// from, path included.
type LoadFunc func(ctx context.Context, path string) (*mesh.Mesh, []string, error)

// Reload is the outcome of one (re)build
type Reload struct {
	Path string
	Mesh *mesh.Mesh
	Err  error
}

// MeshWatcher watches the sources of a model and reloads it on change.
// Directories are watched rather than files so that editors replacing a
// file through a rename are noticed.
type MeshWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	load     LoadFunc
	logger   *slog.Logger

	sources map[string]bool
	dirs    map[string]bool
}

// New creates a watcher that waits debounce after the last change before
// reloading.
func New(debounce time.Duration, load LoadFunc) (*MeshWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	return &MeshWatcher{
		watcher:  watcher,
		debounce: debounce,
		load:     load,
		logger:   slog.Default(),
		sources:  make(map[string]bool),
		dirs:     make(map[string]bool),
	}, nil
}

// SetLogger replaces the logger
func (w *MeshWatcher) SetLogger(l *slog.Logger) {
	if l != nil {
		w.logger = l
	}
}

// Run loads path, reports it, and reports again after every change of its
// sources until ctx is done. A failed load is reported and the previous
// set of sources stays watched.
func (w *MeshWatcher) Run(ctx context.Context, path string, onReload func(Reload)) error {
	defer w.watcher.Close()

	reload := func() {
		m, files, err := w.load(ctx, path)
		if err == nil {
			if werr := w.watch(files); werr != nil {
				w.logger.Warn("watcher: cannot watch sources", "error", werr)
			}
		}
		onReload(Reload{Path: path, Mesh: m, Err: err})
	}

	if err := w.watch([]string{path}); err != nil {
		return err
	}
	reload()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.sources[filepath.Clean(event.Name)] {
				continue
			}
			w.logger.Debug("watcher: source changed", "file", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
			pending = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher: error", "error", err)

		case <-pending:
			pending = nil
			reload()
		}
	}
}

// watch replaces the watched sources with files
func (w *MeshWatcher) watch(files []string) error {
	sources := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		sources[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	for dir := range w.dirs {
		if !dirs[dir] {
			_ = w.watcher.Remove(dir)
		}
	}
	w.sources = sources
	w.dirs = dirs
	return nil
}

// Sources returns the files currently watched
func (w *MeshWatcher) Sources() []string {
	out := make([]string, 0, len(w.sources))
	for s := range w.sources {
		out = append(out, s)
	}
	return out
}

package symbology

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is how long the watcher waits for further writes before
// reloading, so editors that write files in several steps trigger one reload.
const defaultDebounce = 500 * time.Millisecond

// Watcher reloads the catalog when any of its definition files change.
// The catalog value itself stays immutable: every reload parses the files
// into a fresh Catalog and hands it to the callback, which owns the swap.
type Watcher struct {
	paths    []string
	onReload func(*Catalog)
	logger   *slog.Logger
	debounce time.Duration

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	pending bool
	timer   *time.Timer
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithDebounce sets the reload debounce delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// NewWatcher creates a watcher over the given definition files. onReload is
// called with the freshly loaded catalog after each (debounced) change; it is
// never called with a nil catalog.
func NewWatcher(paths []string, onReload func(*Catalog), opts ...WatcherOption) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("watch symbology: no definition files given")
	}
	if onReload == nil {
		return nil, fmt.Errorf("watch symbology: onReload callback is required")
	}

	w := &Watcher{
		paths:    paths,
		onReload: onReload,
		logger:   slog.Default(),
		debounce: defaultDebounce,
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch symbology: %w", err)
	}
	w.watcher = fsw

	// Watch parent directories rather than the files themselves so
	// rename-and-replace saves keep being observed.
	dirs := map[string]bool{}
	for _, p := range paths {
		dirs[filepath.Dir(p)] = true
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watch symbology %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run processes file events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()
	watched := map[string]bool{}
	for _, p := range w.paths {
		watched[filepath.Clean(p)] = true
	}

	for {
		select {
		case <-ctx.Done():
			w.cancelTimer()
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("Symbology definition changed", "path", event.Name, "op", event.Op.String())
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Symbology watch error", "error", err)
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending {
		w.timer.Reset(w.debounce)
		return
	}
	w.pending = true
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) cancelTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pending = false
}

func (w *Watcher) reload() {
	w.mu.Lock()
	w.pending = false
	w.mu.Unlock()

	catalog, err := LoadFiles(w.paths...)
	if err != nil {
		w.logger.Warn("Symbology reload failed, keeping previous catalog", "error", err)
		return
	}
	if dups := catalog.Validate(); len(dups) > 0 {
		for _, d := range dups {
			w.logger.Warn("Symbology duplicate function", "duplicate", d.String())
		}
	}
	w.onReload(catalog)
}

package dev

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/routegen/internal/errors"
)

// ChangeType represents the type of file change.
type ChangeType int

const (
	ChangeAdd ChangeType = iota
	ChangeRemove
)

// String returns the change type name.
func (t ChangeType) String() string {
	switch t {
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Change represents a detected file change.
type Change struct {
	Path string
	Type ChangeType
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Root is the directory watched recursively.
	Root string

	// Matches reports whether a file is a route component. Nil matches
	// every file.
	Matches func(path string) bool

	// Ignore contains doublestar globs, relative to Root, whose events are
	// dropped.
	Ignore []string

	// Skip lists absolute file paths whose events are dropped.
	Skip []string

	// Debounce is the quiet period before a batch is emitted.
	Debounce time.Duration

	// Logger receives watcher diagnostics.
	Logger *slog.Logger
}

// Watcher monitors a directory tree for added and removed route files.
// Content changes are not reported.
type Watcher struct {
	config    WatcherConfig
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	logger    *slog.Logger
	skip      map[string]bool

	mu   sync.Mutex
	dirs map[string]bool
}

// NewWatcher creates a recursive watcher on config.Root. Every directory
// below the root is registered immediately.
func NewWatcher(config WatcherConfig) (*Watcher, error) {
	if config.Debounce <= 0 {
		config.Debounce = 100 * time.Millisecond
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.New("R120").Wrap(err)
	}

	w := &Watcher{
		config:    config,
		fs:        fsw,
		debouncer: NewDebouncer(config.Debounce),
		logger:    logger,
		skip:      make(map[string]bool, len(config.Skip)),
		dirs:      make(map[string]bool),
	}
	for _, p := range config.Skip {
		w.skip[filepath.Clean(p)] = true
	}

	if err := fsw.Add(config.Root); err != nil {
		fsw.Close()
		return nil, errors.New("R120").
			WithDetail("Could not watch " + config.Root).
			WithSuggestion("Create the routes directory or set \"routes\" in routegen.json").
			Wrap(err)
	}
	w.dirs[filepath.Clean(config.Root)] = true
	w.addTree(config.Root, false)

	return w, nil
}

// Events returns the channel that receives debounced batches of changes.
func (w *Watcher) Events() <-chan []Change {
	return w.debouncer.Output()
}

// Start processes file system events until ctx is done or the watcher is
// closed.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.debouncer.Stop()
	return w.fs.Close()
}

// handleEvent turns one fsnotify event into route file changes.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	switch {
	case event.Has(fsnotify.Create):
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			if w.ignored(path) {
				return
			}
			if err := w.fs.Add(path); err != nil {
				w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				return
			}
			w.mu.Lock()
			w.dirs[path] = true
			w.mu.Unlock()
			// Files moved in with the directory produce no events of
			// their own.
			w.addTree(path, true)
			return
		}
		w.emit(path, ChangeAdd)

	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		w.mu.Lock()
		wasDir := w.dirs[path]
		delete(w.dirs, path)
		w.mu.Unlock()
		if wasDir {
			if !w.ignored(path) {
				w.debouncer.Add(Change{Path: path, Type: ChangeRemove})
			}
			return
		}
		w.emit(path, ChangeRemove)
	}
}

// emit forwards a file change that passes the filters.
func (w *Watcher) emit(path string, t ChangeType) {
	if w.skip[path] || w.ignored(path) {
		return
	}
	if w.config.Matches != nil && !w.config.Matches(path) {
		return
	}
	w.logger.Debug("file change", "path", path, "type", t.String())
	w.debouncer.Add(Change{Path: path, Type: t})
}

// addTree registers every directory below root. When report is set, the
// files found are emitted as additions.
func (w *Watcher) addTree(root string, report bool) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		path = filepath.Clean(path)
		if !d.IsDir() {
			if report {
				w.emit(path, ChangeAdd)
			}
			return nil
		}
		if path == filepath.Clean(root) {
			return nil
		}
		if w.ignored(path) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", err)
			return nil
		}
		w.mu.Lock()
		w.dirs[path] = true
		w.mu.Unlock()
		return nil
	})
}

// ignored reports whether path matches one of the ignore globs.
func (w *Watcher) ignored(path string) bool {
	if len(w.config.Ignore) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.config.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.config.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

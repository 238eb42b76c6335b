// Package watch re-runs a callback when watched files change on disk.
//
// Directories are watched rather than the files themselves: editors
// commonly save by writing a temp file and renaming it over the target,
// which drops a watch registered on the file inode.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after an event before the callback
// fires. Editors often produce several events per save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher observes a fixed set of files and invokes a callback when any
// of them changes.
type Watcher struct {
	files    map[string]bool // absolute path -> watched
	dirs     []string
	debounce time.Duration
	logger   *slog.Logger
	onChange func(paths []string)
}

// New creates a watcher for the given files. The callback receives the
// set of files that changed during one debounce window.
func New(paths []string, onChange func(paths []string), logger *slog.Logger) (*Watcher, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no paths to watch")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files := make(map[string]bool, len(paths))
	dirSet := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		files[abs] = true
		dirSet[filepath.Dir(abs)] = true
	}

	dirs := make([]string, 0, len(dirSet))
	for d := range dirSet {
		dirs = append(dirs, d)
	}

	return &Watcher{
		files:    files,
		dirs:     dirs,
		debounce: DefaultDebounce,
		logger:   logger,
		onChange: onChange,
	}, nil
}

// SetDebounce overrides the debounce window. Zero disables debouncing.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run blocks watching for changes until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	var debounceTimer *time.Timer
	pending := make(map[string]bool)
	fired := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.files[abs] {
				continue
			}

			w.logger.Debug("change detected", "path", abs, "op", event.Op.String())
			pending[abs] = true

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case fired <- struct{}{}:
				default:
				}
			})

		case <-fired:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			pending = make(map[string]bool)
			w.onChange(changed)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

// Package watch re-runs a callback whenever a watched file changes on disk.
// Used by the promtext CLI to keep rendered output current while a render
// spec is being edited.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors one file and invokes OnChange after edits settle.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func()
	debounce time.Duration
	stopChan chan struct{}
}

// New creates a watcher for path. onChange runs on the watcher goroutine, so
// it must not block indefinitely.
func New(path string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	return &Watcher{
		path:     absPath,
		watcher:  fsw,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		stopChan: make(chan struct{}),
	}, nil
}

// Start begins monitoring. Watching the containing directory is more
// reliable than watching the file itself (editors replace files on save).
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}

	slog.Info("Watching for changes", "path", w.path)
	go w.watchLoop(ctx)
	return nil
}

// Stop shuts the watcher down. Safe to call once.
func (w *Watcher) Stop() {
	close(w.stopChan)
	if err := w.watcher.Close(); err != nil {
		slog.Error("Error closing file watcher", "error", err)
	}
}

func (w *Watcher) watchLoop(ctx context.Context) {
	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			// Debounce bursts of events from a single save.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			slog.Debug("File changed, triggering reload", "path", w.path)
			w.onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Name != w.path {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// Package watcher reports file changes with fsnotify, debounced so that
// editors which write in several steps trigger a single callback.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	debounceDelay = 100 * time.Millisecond

	meaningfulOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
)

// Watcher calls a callback after changes to the watched paths settle.
type Watcher struct {
	fsw      *fsnotify.Watcher
	callback func()

	// only restricts events to these base names when non-empty.
	only map[string]bool
}

// New watches each of paths (files or directories).
func New(paths []string, callback func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, p := range paths {
		if err := fsw.Add(p); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", p, err)
		}
	}
	return &Watcher{fsw: fsw, callback: callback}, nil
}

// NewFile watches a single file through its parent directory, so that
// atomic replace-by-rename saves keep being observed.
func NewFile(path string, callback func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	w, err := New([]string{filepath.Dir(abs)}, callback)
	if err != nil {
		return nil, err
	}
	w.only = map[string]bool{filepath.Base(abs): true}
	return w, nil
}

// Run processes events until ctx is done or the watcher is closed.
// errFn, if non-nil, receives watcher errors.
func (w *Watcher) Run(ctx context.Context, errFn func(error)) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, w.callback)
			mu.Unlock()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if errFn != nil {
				errFn(err)
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&meaningfulOps == 0 {
		return false
	}
	if len(w.only) > 0 && !w.only[filepath.Base(ev.Name)] {
		return false
	}
	return true
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

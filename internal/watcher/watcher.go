// pattern: Imperative Shell

// Package watcher reports directory-level changes beneath the scan root so
// the dashboard can offer a rescan when projects appear or vanish.
package watcher

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"gitdash/internal/events"
)

// Watcher watches one directory at a time, the current scan root. It is
// best-effort: watch errors are logged and never fatal to the dashboard.
type Watcher struct {
	fsw    *fsnotify.Watcher
	logger *zap.SugaredLogger
	out    chan events.RootChangedMsg

	mu   sync.Mutex
	root string
}

// New creates a watcher and starts its event loop.
func New(logger *zap.SugaredLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsw:    fsw,
		logger: logger,
		out:    make(chan events.RootChangedMsg, 8),
	}
	go w.loop()
	return w, nil
}

// Watch points the watcher at a new root, dropping any previous one.
func (w *Watcher) Watch(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.root != "" {
		if err := w.fsw.Remove(w.root); err != nil {
			w.logger.Debugw("removing old watch", "path", w.root, "error", err)
		}
		w.root = ""
	}
	if err := w.fsw.Add(root); err != nil {
		return err
	}
	w.root = root
	w.logger.Infow("watching scan root", "path", root)
	return nil
}

// Events returns the channel on which root-changed notifications arrive.
func (w *Watcher) Events() <-chan events.RootChangedMsg {
	return w.out
}

// Close stops the watcher. The events channel is closed once the loop drains.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) loop() {
	defer close(w.out)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			// Only structural changes matter: a new or removed entry can
			// change the project listing. Writes inside files do not.
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.mu.Lock()
			root := w.root
			w.mu.Unlock()

			select {
			case w.out <- events.RootChangedMsg{Path: root}:
			default:
				// Consumer is behind; one pending notification is enough.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("watch error", "error", err)
		}
	}
}

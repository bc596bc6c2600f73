package workspace

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reloads a Store when its backing file changes on disk.
type Watcher struct {
	store    *Store
	fsw      *fsnotify.Watcher
	logger   *zap.Logger
	onReload func()

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithOnReload runs fn on the watch goroutine after each successful
// reload.
func WithOnReload(fn func()) WatchOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// Watch starts watching the store's backing file. The watch directory is
// the file's parent, so the file may be replaced atomically (write to
// temp, rename) and still be picked up.
func Watch(ctx context.Context, store *Store, logger *zap.Logger, opts ...WatchOption) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch workspace: %w", err)
	}
	dir := filepath.Dir(store.Path())
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch workspace %q: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w := &Watcher{
		store:  store,
		fsw:    fsw,
		logger: logger,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run(ctx)
	return w, nil
}

// Stop ends the watch and waits for the watch goroutine to exit.
// Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		w.cancel()
		w.fsw.Close()
	})
	<-w.done
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	target := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if err := w.store.Reload(); err == nil {
				w.logger.Debug("workspace reloaded", zap.String("path", target))
				if w.onReload != nil {
					w.onReload()
				}
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("workspace watch error", zap.Error(err))
		}
	}
}

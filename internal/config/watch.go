package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/touchgesture/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of file
// events to settle before reloading.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a profile when its file changes.
type Watcher struct {
	path     string
	fsw      *fsnotify.Watcher
	onLoad   func(*Profile)
	onError  func(error)
	debounce time.Duration
	logger   *logging.Logger

	stop   context.CancelFunc
	done   chan struct{}
	closed atomic.Bool
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler receives load errors. Without one they are logged.
func WithErrorHandler(fn func(error)) WatchOption {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithWatchLogger sets the watcher logger.
func WithWatchLogger(l *logging.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watch starts watching the profile at path. onLoad receives every profile
// that loads successfully after a change; the initial load is left to the
// caller. The watcher stops when ctx is done or Close is called.
//
// The parent directory is watched so that editors replacing the file
// through a rename are noticed.
func Watch(ctx context.Context, path string, onLoad func(*Profile), opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		fsw:      fsw,
		onLoad:   onLoad,
		debounce: DefaultDebounce,
		logger:   logging.Null,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("config").WithField("path", abs)

	ctx, w.stop = context.WithCancel(ctx)
	go w.run(ctx)
	return w, nil
}

// Path returns the absolute path of the watched profile.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher and waits for a reload in progress to finish.
func (w *Watcher) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return ErrWatcherClosed
	}
	w.stop()
	<-w.done
	return w.fsw.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	// Created stopped; the first relevant event arms it.
	settle := time.NewTimer(0)
	if !settle.Stop() {
		<-settle.C
	}
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.touches(ev) {
				w.logger.Debug("%s", ev.Op)
				settle.Reset(w.debounce)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fsnotify: %v", err)
		case <-settle.C:
			w.reload()
		}
	}
}

// touches reports whether ev writes or recreates the watched file.
func (w *Watcher) touches(ev fsnotify.Event) bool {
	return filepath.Clean(ev.Name) == w.path &&
		(ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create))
}

func (w *Watcher) reload() {
	p, err := Load(w.path)
	switch {
	case err != nil && w.onError != nil:
		w.onError(err)
	case err != nil:
		w.logger.Error("reload failed: %v", err)
	default:
		w.logger.Info("reloaded %d bindings", len(p.Bindings))
		if w.onLoad != nil {
			w.onLoad(p)
		}
	}
}

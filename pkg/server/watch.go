package server

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher calls a handler once writes to a single file have settled.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it over the original
// keep triggering reloads.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	handler  func(ctx context.Context)
	debounce time.Duration

	changes  chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	watching bool
	onError  func(error)
}

// NewWatcher returns a watcher for path. Call [Watcher.Start] to begin.
func NewWatcher(path string, debounce time.Duration, handler func(ctx context.Context)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     abs,
		watcher:  fw,
		handler:  handler,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. Both goroutines exit when ctx is cancelled or
// [Watcher.Stop] is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	go w.processEvents(ctx)
	go w.debounceLoop(ctx)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// One pending signal is enough; the debouncer coalesces the rest.
			select {
			case w.changes <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-w.changes:
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			if w.handler != nil {
				w.handler(ctx)
			}
		}
	}
}

// Watch reloads the dataset whenever the input file changes, until ctx is
// cancelled. The returned watcher is already running.
func (s *Server) Watch(ctx context.Context) (*Watcher, error) {
	if s.opts.Input == "" {
		return nil, fmt.Errorf("watch: server has no input file")
	}
	w, err := NewWatcher(s.opts.Input, s.opts.Debounce, func(ctx context.Context) {
		if err := s.Reload(ctx); err != nil {
			s.logger.Warn("reload failed, keeping previous dataset", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}
	w.onError = func(err error) { s.logger.Warn("watch error", "error", err) }
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return nil, err
	}
	s.logger.Info("watching dataset", "input", s.opts.Input)
	return w, nil
}

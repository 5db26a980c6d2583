package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces rapid write bursts from editors into one
// reload.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned after Close.
var ErrWatcherClosed = errors.New("config: watcher closed")

// ReloadHandler receives the freshly loaded configuration after the
// watched file changes.
type ReloadHandler func(cfg Config)

// Watcher hot-reloads a configuration file. Writes and renames to the
// watched path trigger a debounced reload; reloads that fail validation
// are logged and dropped, keeping the last good configuration active.
type Watcher struct {
	mu      sync.Mutex
	path    string
	watcher *fsnotify.Watcher
	logger  zerolog.Logger
	handler ReloadHandler
	done    chan struct{}
	closed  bool
}

// NewWatcher watches a configuration file. The parent directory is
// watched rather than the file itself, so atomic save-and-rename editors
// still trigger.
func NewWatcher(path string, handler ReloadHandler, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    abs,
		watcher: fsw,
		logger:  logger,
		handler: handler,
		done:    make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Path returns the watched file path.
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(DefaultDebounce)
				timerC = timer.C
			} else {
				timer.Reset(DefaultDebounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("config watch error")
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn().Err(err).Str("path", w.path).Msg("config reload failed, keeping previous")
		return
	}
	w.logger.Info().Str("path", w.path).Msg("config reloaded")

	w.mu.Lock()
	handler := w.handler
	closed := w.closed
	w.mu.Unlock()
	if !closed && handler != nil {
		handler(cfg)
	}
}

// Close stops watching. Idempotent.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/ngsteer/internal/log"
)

// DefaultDebounce is how long the watcher waits after the last manifest
// write before re-running detection. Editors and package managers rewrite
// package.json in bursts.
const DefaultDebounce = 500 * time.Millisecond

// WatcherConfig configures a manifest Watcher.
type WatcherConfig struct {
	// Dir is the project directory whose package.json is watched.
	Dir string

	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	// OnChange is invoked with the new detection after each debounced
	// change. Detection failures are delivered through OnError.
	OnChange func(Detection)

	// OnError is invoked when re-detection fails. Optional.
	OnError func(error)
}

// Watcher re-runs Angular version detection whenever the project's
// package.json changes. Safe to Stop more than once.
type Watcher struct {
	cfg     WatcherConfig
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

// NewWatcher creates a watcher for the project directory. The directory is
// watched rather than the file itself so that atomic rename-style rewrites
// are not lost.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("watcher requires an OnChange callback")
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}
	if err := fw.Add(cfg.Dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", cfg.Dir, err)
	}

	return &Watcher{
		cfg:     cfg,
		watcher: fw,
		done:    make(chan struct{}),
	}, nil
}

// Start runs the watch loop until the context is canceled or Stop is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Stop stops the watch loop and releases the fs watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	w.stopped = true
	close(w.done)
	_ = w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	var debounce *time.Timer
	var debounceC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.isManifestEvent(event) {
				continue
			}
			log.Debug(log.CatDetect, "manifest changed", "op", event.Op.String(), "path", event.Name)
			if debounce == nil {
				debounce = time.NewTimer(w.cfg.Debounce)
			} else {
				if !debounce.Stop() {
					select {
					case <-debounce.C:
					default:
					}
				}
				debounce.Reset(w.cfg.Debounce)
			}
			debounceC = debounce.C
		case <-debounceC:
			debounceC = nil
			w.redetect()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatDetect, "fs watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) isManifestEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Base(event.Name) == "package.json"
}

func (w *Watcher) redetect() {
	d, err := Detect(w.cfg.Dir)
	if err != nil {
		log.Warn(log.CatDetect, "re-detection failed", "error", err.Error())
		if w.cfg.OnError != nil {
			w.cfg.OnError(err)
		}
		return
	}
	w.cfg.OnChange(d)
}

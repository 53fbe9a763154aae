package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/greenpitch/greenpitch/internal/dom"
)

// DefaultDebounce groups the burst of writes an editor makes on save.
const DefaultDebounce = 200 * time.Millisecond

// DocumentWatcher reloads the page template when it changes on disk
type DocumentWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload func(*dom.Document)
	log      *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewDocumentWatcher watches path. The parent directory is watched so that
// rename-on-save editors are followed.
func NewDocumentWatcher(path string, debounce time.Duration, onReload func(*dom.Document), log *slog.Logger) (*DocumentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DocumentWatcher{
		path:     abs,
		watcher:  w,
		debounce: debounce,
		onReload: onReload,
		log:      log,
	}, nil
}

// Run processes file events until ctx is cancelled.
func (dw *DocumentWatcher) Run(ctx context.Context) {
	defer dw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			dw.mu.Lock()
			if dw.timer != nil {
				dw.timer.Stop()
			}
			dw.mu.Unlock()
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handle(event)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue watching
			dw.log.Warn("document watcher error", "error", err)
		}
	}
}

func (dw *DocumentWatcher) handle(event fsnotify.Event) {
	if filepath.Clean(event.Name) != dw.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.timer != nil {
		dw.timer.Stop()
	}
	dw.timer = time.AfterFunc(dw.debounce, dw.reload)
}

func (dw *DocumentWatcher) reload() {
	doc, err := LoadDocument(dw.path)
	if err != nil {
		// keep serving the previous document
		dw.log.Error("document reload failed", "path", dw.path, "error", err)
		return
	}
	dw.onReload(doc)
	dw.log.Info("document reloaded", "path", dw.path)
}

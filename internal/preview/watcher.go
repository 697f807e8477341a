package preview

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ankitkaran99/tinymce-components/internal/logging"
)

// debounceDelay coalesces bursts of filesystem events into one reload.
const debounceDelay = 100 * time.Millisecond

// StyleWatcher watches the configured catalog style files and feeds their
// aggregated CSS into the preview server whenever one changes.
type StyleWatcher struct {
	paths  []string
	server *Server
	logger logging.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewStyleWatcher creates a watcher over the given style files.
func NewStyleWatcher(paths []string, server *Server, logger logging.Logger) *StyleWatcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StyleWatcher{
		paths:  paths,
		server: server,
		logger: logger.WithComponent("stylewatcher"),
	}
}

// Start loads the styles once, then watches until ctx is cancelled.
func (w *StyleWatcher) Start(ctx context.Context) error {
	w.server.SetExtraCSS(w.load(ctx))
	if len(w.paths) == 0 {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range w.paths {
		if err := watcher.Add(p); err != nil {
			w.logger.Warn(ctx, err, "cannot watch style file", "path", p)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.scheduleReload(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn(ctx, err, "style watcher error")
		}
	}
}

func (w *StyleWatcher) scheduleReload(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, func() {
		w.server.SetExtraCSS(w.load(ctx))
	})
}

func (w *StyleWatcher) load(ctx context.Context) string {
	var parts []string
	for _, p := range w.paths {
		data, err := os.ReadFile(p)
		if err != nil {
			w.logger.Warn(ctx, err, "cannot read style file", "path", p)
			continue
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n")
}

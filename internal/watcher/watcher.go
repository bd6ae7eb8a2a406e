package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

const minPollInterval = 10 * time.Millisecond

// pendingFile tracks a media file that is still being written.
type pendingFile struct {
	size    int64
	changed time.Time
}

type implWatcher struct {
	root    string
	match   MatchFunc
	handler EventHandler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	settle  time.Duration
	pending map[string]*pendingFile
}

// Start blocks until ctx is cancelled or the underlying watcher fails.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s (%d directories)", w.root, len(w.watcher.WatchList()))

	ticker := time.NewTicker(w.pollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			switch {
			case event.Has(fsnotify.Create):
				w.handleCreate(ctx, event.Name)
			case event.Has(fsnotify.Write):
				w.handleWrite(event.Name)
			}

		case <-ticker.C:
			w.processSettled(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) pollInterval() time.Duration {
	if interval := w.settle / 2; interval > minPollInterval {
		return interval
	}
	return minPollInterval
}

func (w *implWatcher) handleCreate(ctx context.Context, path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.logger.Debug(ctx, "Ignoring vanished path: %s", path)
		return
	}

	if info.IsDir() {
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn(ctx, "Failed to watch new directory %s: %v", path, err)
			return
		}
		w.logger.Debug(ctx, "Watching new directory: %s", path)
		return
	}

	if !info.Mode().IsRegular() || !w.match(filepath.Base(path)) {
		w.logger.Debug(ctx, "Ignoring non-media file: %s", path)
		return
	}

	w.logger.Info(ctx, "New media detected: %s", path)
	w.pending[path] = &pendingFile{size: info.Size(), changed: time.Now()}
}

// handleWrite restarts the settle wait of a file that is still being copied.
func (w *implWatcher) handleWrite(path string) {
	if p, ok := w.pending[path]; ok {
		p.changed = time.Now()
	}
}

// processSettled hands over every pending file whose size has not changed
// for a full settle delay.
func (w *implWatcher) processSettled(ctx context.Context) {
	if len(w.pending) == 0 {
		return
	}

	now := time.Now()
	var ready []string
	for path, p := range w.pending {
		info, err := os.Stat(path)
		if err != nil {
			w.logger.Debug(ctx, "Ignoring vanished path: %s", path)
			delete(w.pending, path)
			continue
		}
		if info.Size() != p.size {
			p.size = info.Size()
			p.changed = now
			continue
		}
		if now.Sub(p.changed) < w.settle {
			continue
		}
		delete(w.pending, path)
		ready = append(ready, path)
	}
	sort.Strings(ready)

	for _, path := range ready {
		if ctx.Err() != nil {
			return
		}
		if err := w.handler(ctx, path); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", path, err)
		}
	}
}

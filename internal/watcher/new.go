package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
)

// New creates a Watcher over dirs. Subdirectories created later are added
// automatically. A new file is handed to handler once its size has been
// stable for settle. The handler runs on the watcher goroutine, one file at
// a time.
func New(dirs []string, match MatchFunc, handler EventHandler, log logger.Logger, settle time.Duration) (Watcher, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("watcher: no directories to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("add watch path %s: %w", dir, err)
		}
	}

	return &implWatcher{
		root:    dirs[0],
		match:   match,
		handler: handler,
		logger:  log,
		watcher: watcher,
		settle:  settle,
		pending: make(map[string]*pendingFile),
	}, nil
}

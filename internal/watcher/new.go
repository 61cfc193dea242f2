package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// New creates a Watcher on dir. Matching files are handled one at a time,
// settleDelay after they appear.
func New(dir string, handler EventHandler, filter Filter, settleDelay time.Duration, log logger.Logger) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		dir:         dir,
		handler:     handler,
		filter:      filter,
		settleDelay: settleDelay,
		logger:      log,
		watcher:     watcher,
	}, nil
}

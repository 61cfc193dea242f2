package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type implWatcher struct {
	dir         string
	handler     EventHandler
	filter      Filter
	settleDelay time.Duration
	logger      logger.Logger
	watcher     *fsnotify.Watcher
}

// Start monitors the directory for new recordings. Each one is handled
// inline, so a long transcription delays the next event rather than running
// alongside it.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !w.filter(event.Name) {
				w.logger.Debug(ctx, "Ignoring file: %s", filepath.Base(event.Name))
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			// Let the writer finish before reading the file.
			select {
			case <-time.After(w.settleDelay):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.handler(ctx, event.Name); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", event.Name, err)
			}

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

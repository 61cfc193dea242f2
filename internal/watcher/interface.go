package watcher

import "context"

// Watcher defines the interface for file system monitoring
type Watcher interface {
	// Start handles matching files until ctx is cancelled.
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles file events
type EventHandler func(ctx context.Context, filePath string) error

// Filter selects which created files are handed to the EventHandler.
type Filter func(path string) bool

package recorder

import (
	"context"
	"time"
)

// Recorder captures the microphone and the system audio into one
// two-track Matroska file per session.
type Recorder interface {
	// NewSession creates the session folder for a recording started at now.
	NewSession(now time.Time) (Session, error)
	// Record runs ffmpeg until stop is closed or ctx is cancelled.
	Record(ctx context.Context, session Session, stop <-chan struct{}) error
	// ListDevices returns ffmpeg's capture device listing for the
	// configured input format.
	ListDevices(ctx context.Context) (string, error)
}

// Session is one recording folder.
type Session struct {
	Dir       string
	AudioPath string
	StartedAt time.Time
}

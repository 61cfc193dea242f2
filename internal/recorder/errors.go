package recorder

import "errors"

var (
	ErrFFmpegNotFound = errors.New("ffmpeg is not installed or not in PATH")
	// ErrExitedEarly means ffmpeg quit before it was asked to stop,
	// usually because a capture device could not be opened.
	ErrExitedEarly = errors.New("ffmpeg exited before recording was stopped")
)

package transcriber

import "errors"

var (
	ErrFFmpegNotFound  = errors.New("ffmpeg is not installed or not in PATH")
	ErrWhisperNotFound = errors.New("whisper binary not found")
	ErrModelNotFound   = errors.New("whisper model not found")
	ErrServerDown      = errors.New("whisper server unreachable")
)

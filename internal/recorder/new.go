package recorder

import (
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

type implRecorder struct {
	cfg      config.RecorderConfig
	ffmpeg   string
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Recorder instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Recorder {
	return &implRecorder{
		cfg:      cfg.Recorder,
		ffmpeg:   cfg.FFmpeg.BinaryPath,
		executor: exec,
		logger:   log,
	}
}

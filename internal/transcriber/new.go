package transcriber

import (
	"net/http"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

type implTranscriber struct {
	cfg        *config.Config
	executor   executor.Executor
	logger     logger.Logger
	httpClient *http.Client
	model      string
	loadEngine EngineLoader
}

// Option customises a Transcriber.
type Option func(*implTranscriber)

// WithModel overrides whisper.model for this Transcriber.
func WithModel(name string) Option {
	return func(t *implTranscriber) {
		if name != "" {
			t.model = name
		}
	}
}

// WithEngineLoader replaces the engine selected by whisper.engine.
func WithEngineLoader(load EngineLoader) Option {
	return func(t *implTranscriber) {
		t.loadEngine = load
	}
}

// WithHTTPClient sets the client used by the server engine.
func WithHTTPClient(c *http.Client) Option {
	return func(t *implTranscriber) {
		t.httpClient = c
	}
}

// New creates a new Transcriber instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger, opts ...Option) Transcriber {
	t := &implTranscriber{
		cfg:        cfg,
		executor:   exec,
		logger:     log,
		httpClient: &http.Client{}, // local inference is never timed out
		model:      cfg.Whisper.Model,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.loadEngine == nil {
		t.loadEngine = t.defaultEngineLoader
	}
	return t
}

package summarizer

import (
	"net/http"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

type implSummarizer struct {
	cfg     config.SummarizerConfig
	backend Backend
	logger  logger.Logger
}

// Option customises a Summarizer.
type Option func(*options)

type options struct {
	backend    Backend
	httpClient *http.Client
}

// WithBackend replaces the backend selected by summarizer.method.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithHTTPClient sets the client used by HTTP backends.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// New creates a Summarizer for the configured method.
func New(cfg config.SummarizerConfig, log logger.Logger, opts ...Option) Summarizer {
	o := options{httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = NewBackend(cfg, o.httpClient, log)
	}

	return &implSummarizer{
		cfg:     cfg,
		backend: o.backend,
		logger:  log,
	}
}

package cli

import (
	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/pipeline"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
	"github.com/nguyentantai21042004/meetscribe/internal/transcriber"
)

func (d *Dependencies) transcriber(model string) transcriber.Transcriber {
	return transcriber.New(d.Config, d.Executor, d.Logger,
		transcriber.WithModel(model),
		transcriber.WithHTTPClient(d.HTTPClient),
	)
}

func (d *Dependencies) summarizer(cfg config.SummarizerConfig) summarizer.Summarizer {
	return summarizer.New(cfg, d.Logger, summarizer.WithHTTPClient(d.HTTPClient))
}

func (d *Dependencies) pipeline() *pipeline.Pipeline {
	return pipeline.New(d.transcriber(""), d.summarizer(d.Config.Summarizer), d.Logger)
}

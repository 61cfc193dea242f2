// Package pipeline chains transcription and summarization over one folder.
package pipeline

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/summarizer"
	"github.com/nguyentantai21042004/meetscribe/internal/transcriber"
)

type Mode int

const (
	// ModeFull transcribes audio, then summarizes the transcripts.
	ModeFull Mode = iota
	// ModeSummarizeOnly summarizes the .txt files already in the folder.
	ModeSummarizeOnly
)

func (m Mode) String() string {
	switch m {
	case ModeFull:
		return "transcribe + summarize"
	case ModeSummarizeOnly:
		return "summarize only"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Outcome holds the per-stage reports. Transcripts is nil in
// ModeSummarizeOnly.
type Outcome struct {
	Transcripts *batch.Report
	Summaries   *batch.Report
}

type Pipeline struct {
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	logger      logger.Logger
}

func New(t transcriber.Transcriber, s summarizer.Summarizer, log logger.Logger) *Pipeline {
	return &Pipeline{transcriber: t, summarizer: s, logger: log}
}

// Run processes dir in place: transcripts and summaries are written next to
// the audio.
func (p *Pipeline) Run(ctx context.Context, dir string, mode Mode) (*Outcome, error) {
	out := &Outcome{}
	p.logger.Info(ctx, "Processing %s (%s)", dir, mode)

	if mode == ModeFull {
		report, err := p.transcriber.TranscribeDir(ctx, dir, dir)
		if err != nil {
			return out, fmt.Errorf("transcribe: %w", err)
		}
		out.Transcripts = report
	}

	report, err := p.summarizer.SummarizeDir(ctx, dir)
	if err != nil {
		return out, fmt.Errorf("summarize: %w", err)
	}
	out.Summaries = report

	p.logger.Info(ctx, "Processing finished: %s", out)
	return out, nil
}

// RunFiles transcribes the given audio files into dir and summarizes only
// the transcripts that run produced. Used by the watcher.
func (p *Pipeline) RunFiles(ctx context.Context, files []string, dir string) (*Outcome, error) {
	report, err := p.transcriber.TranscribeFiles(ctx, files, dir)
	if err != nil {
		return &Outcome{}, fmt.Errorf("transcribe: %w", err)
	}
	out := &Outcome{Transcripts: report}

	transcripts := report.Outputs()
	if len(transcripts) == 0 {
		p.logger.Info(ctx, "No new transcripts, skipping summarization")
		return out, nil
	}

	summaries, err := p.summarizer.SummarizeFiles(ctx, transcripts)
	if err != nil {
		return out, fmt.Errorf("summarize: %w", err)
	}
	out.Summaries = summaries
	return out, nil
}

func (o *Outcome) String() string {
	switch {
	case o.Transcripts != nil && o.Summaries != nil:
		return o.Transcripts.String() + "; " + o.Summaries.String()
	case o.Transcripts != nil:
		return o.Transcripts.String()
	case o.Summaries != nil:
		return o.Summaries.String()
	default:
		return "nothing processed"
	}
}

// Failed reports whether any item in any stage failed.
func (o *Outcome) Failed() bool {
	for _, r := range []*batch.Report{o.Transcripts, o.Summaries} {
		if r != nil && r.Count(batch.StatusFailed) > 0 {
			return true
		}
	}
	return false
}

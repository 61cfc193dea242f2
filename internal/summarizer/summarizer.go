package summarizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
)

const (
	transcriptExt = ".txt"
	summarySuffix = ".summary.txt"
	docxSuffix    = ".summary.docx"
)

// IsTranscript reports whether name is a transcript this package should
// summarize. Its own outputs are excluded so reruns never summarize a summary.
func IsTranscript(name string) bool {
	return strings.HasSuffix(name, transcriptExt) && !strings.HasSuffix(name, summarySuffix)
}

// SummaryPath returns <dir>/<stem>.summary.txt for a transcript path.
func SummaryPath(transcriptPath string) string {
	return strings.TrimSuffix(transcriptPath, transcriptExt) + summarySuffix
}

// SummarizeDir summarizes every transcript in dir.
func (s *implSummarizer) SummarizeDir(ctx context.Context, dir string) (*batch.Report, error) {
	files, err := discoverTranscripts(dir)
	if err != nil {
		return nil, fmt.Errorf("discover transcripts: %w", err)
	}
	if len(files) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", dir)
		return batch.NewReport("summarize"), nil
	}

	return s.SummarizeFiles(ctx, files)
}

// SummarizeFiles summarizes the given transcripts, skipping anything that is
// not a transcript.
func (s *implSummarizer) SummarizeFiles(ctx context.Context, files []string) (*batch.Report, error) {
	report := batch.NewReport("summarize")

	s.logger.Info(ctx, "Summarizing %d files (method: %s)", len(files), s.backend.Method())

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !IsTranscript(filepath.Base(path)) {
			report.Add(batch.Skipped(path, "not a transcript"))
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(files), filepath.Base(path))
		res := s.summarizeFile(ctx, path)
		switch res.Status {
		case batch.StatusDone:
			s.logger.Info(ctx, "Summary saved: %s", res.Output)
		case batch.StatusSkipped:
			s.logger.Warn(ctx, "Skipped %s: %s", filepath.Base(path), res.Reason)
		case batch.StatusFailed:
			if res.Output != "" {
				s.logger.Error(ctx, "Summary for %s failed, error written to %s: %v", filepath.Base(path), res.Output, res.Err)
			} else {
				s.logger.Error(ctx, "Failed to summarize %s: %v", filepath.Base(path), res.Err)
			}
		}
		report.Add(res)
	}

	s.logger.Info(ctx, "Summary complete: %s", report)
	return report, nil
}

func (s *implSummarizer) summarizeFile(ctx context.Context, path string) batch.Result {
	content, err := os.ReadFile(path)
	if err != nil {
		return batch.Failed(path, fmt.Errorf("read transcript: %w", err))
	}

	transcript := strings.TrimSpace(string(content))
	if transcript == "" {
		return batch.Skipped(path, "empty transcript")
	}

	summary, genErr := s.generate(ctx, transcript)
	if genErr != nil {
		summary = failureText(genErr)
	}

	summaryPath := SummaryPath(path)
	if err := os.WriteFile(summaryPath, []byte(summary), 0644); err != nil {
		return batch.Failed(path, fmt.Errorf("write summary: %w", err))
	}

	if genErr != nil {
		res := batch.Failed(path, genErr)
		res.Output = summaryPath
		return res
	}

	if s.cfg.ExportDocx {
		stem := strings.TrimSuffix(filepath.Base(path), transcriptExt)
		docxPath := strings.TrimSuffix(path, transcriptExt) + docxSuffix
		if err := markdownToDocx(stem, summary, docxPath); err != nil {
			s.logger.Warn(ctx, "Failed to export %s: %v", docxPath, err)
		}
	}

	return batch.Done(path, summaryPath)
}

// GenerateSummary never returns an error: failures come back as text.
func (s *implSummarizer) GenerateSummary(ctx context.Context, text string) string {
	summary, err := s.generate(ctx, text)
	if err != nil {
		return failureText(err)
	}
	return summary
}

func (s *implSummarizer) generate(ctx context.Context, text string) (string, error) {
	summary, err := s.backend.Summarize(ctx, CleanText(text))
	if err != nil {
		return "", err
	}
	if summary == "" {
		return "", fmt.Errorf("%w from %s", ErrEmptyResponse, s.backend.Method())
	}
	return summary, nil
}

func failureText(err error) string {
	return fmt.Sprintf("⚠️ summary generation failed: %v", err)
}

func discoverTranscripts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if IsTranscript(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	return files, nil
}

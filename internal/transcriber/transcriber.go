package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
)

// TranscribeDir transcribes every supported audio file in inputDir.
func (t *implTranscriber) TranscribeDir(ctx context.Context, inputDir, outputDir string) (*batch.Report, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("read input dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		files = append(files, filepath.Join(inputDir, e.Name()))
	}

	return t.TranscribeFiles(ctx, files, outputDir)
}

// TranscribeFiles checks preconditions, loads the engine once and runs every
// file through preprocess -> inference -> formatting.
func (t *implTranscriber) TranscribeFiles(ctx context.Context, files []string, outputDir string) (*batch.Report, error) {
	if _, err := t.executor.LookPath(t.cfg.FFmpeg.BinaryPath); err != nil {
		return nil, ErrFFmpegNotFound
	}

	device := t.selectDevice(ctx)
	t.logger.Info(ctx, "Using device: %s", device)

	t.logger.Info(ctx, "Loading whisper model: %s (%s engine)", t.model, t.cfg.Whisper.Engine)
	engine, err := t.loadEngine(ctx, device)
	if err != nil {
		return nil, fmt.Errorf("load whisper engine: %w", err)
	}
	defer engine.Close()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	report := batch.NewReport("transcribe")
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !IsAudioFile(path) {
			t.logger.Debug(ctx, "Skipping non-audio file: %s", filepath.Base(path))
			report.Add(batch.Skipped(path, "not an audio file"))
			continue
		}

		res := t.transcribeFile(ctx, engine, path, outputDir)
		switch res.Status {
		case batch.StatusDone:
			t.logger.Info(ctx, "Saved transcript to: %s", res.Output)
		case batch.StatusSkipped:
			t.logger.Warn(ctx, "Skipped %s: %s", filepath.Base(path), res.Reason)
		case batch.StatusFailed:
			t.logger.Error(ctx, "Error processing %s: %v", filepath.Base(path), res.Err)
		}
		report.Add(res)
	}

	t.logger.Info(ctx, "Transcription completed: %s", report)
	return report, nil
}

func (t *implTranscriber) transcribeFile(ctx context.Context, engine Engine, path, outputDir string) batch.Result {
	startTime := time.Now()
	t.logger.Info(ctx, "Processing: %s", filepath.Base(path))

	cleaned := t.preprocess(ctx, path)
	if cleaned != path {
		defer t.cleanupTempFile(ctx, cleaned)
	}

	result, err := engine.Transcribe(ctx, cleaned)
	if err != nil {
		return batch.Failed(path, err)
	}

	text := strings.TrimSpace(result.Text)
	if text == "" {
		return batch.Skipped(path, "empty transcript")
	}

	formatted := FormatTranscript(text, t.cfg.Whisper.SentencesPerParagraph)

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outputPath := filepath.Join(outputDir, stem+".txt")
	if err := os.WriteFile(outputPath, []byte(formatted), 0644); err != nil {
		return batch.Failed(path, fmt.Errorf("write transcript: %w", err))
	}

	t.logger.Debug(ctx, "Transcribed %s in %s", filepath.Base(path), time.Since(startTime).Round(time.Millisecond))
	return batch.Done(path, outputPath)
}

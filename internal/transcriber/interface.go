package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
)

// Transcriber turns recorded audio into paragraph-formatted text files.
type Transcriber interface {
	// TranscribeDir transcribes every audio file in inputDir into
	// <stem>.txt files in outputDir. The error is non-nil only for fatal
	// preconditions; per-file problems are reported in the Report.
	TranscribeDir(ctx context.Context, inputDir, outputDir string) (*batch.Report, error)
	// TranscribeFiles does the same for an explicit list of files.
	TranscribeFiles(ctx context.Context, files []string, outputDir string) (*batch.Report, error)
}

// Engine runs speech recognition on one audio file. An Engine is loaded
// once per batch and reused for every file in it.
type Engine interface {
	Transcribe(ctx context.Context, audioPath string) (Result, error)
	Close() error
}

// Result is the raw recognizer output.
type Result struct {
	Text string
}

// EngineLoader loads an Engine for the selected compute device.
type EngineLoader func(ctx context.Context, device Device) (Engine, error)

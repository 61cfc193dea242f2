package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
)

// Summarizer reads transcript .txt files and writes LLM-generated
// <stem>.summary.txt files next to them.
type Summarizer interface {
	// SummarizeDir summarizes every transcript in dir. Backend failures
	// never abort the batch: the error text is written as the summary.
	SummarizeDir(ctx context.Context, dir string) (*batch.Report, error)
	// SummarizeFiles is SummarizeDir for an explicit list of transcripts.
	SummarizeFiles(ctx context.Context, files []string) (*batch.Report, error)
	// GenerateSummary returns the summary for text, or a readable error
	// string if the backend failed.
	GenerateSummary(ctx context.Context, text string) string
}

// Backend is one summary provider.
type Backend interface {
	Method() Method
	Summarize(ctx context.Context, text string) (string, error)
}

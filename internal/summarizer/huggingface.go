package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// huggingFaceBackend calls a Hugging Face summarization inference endpoint
// (bart-large-cnn by default).
type huggingFaceBackend struct {
	client         *http.Client
	url            string
	apiKey         string
	requestTimeout time.Duration
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

func (b *huggingFaceBackend) Method() Method { return MethodHuggingFace }

func (b *huggingFaceBackend) Summarize(ctx context.Context, text string) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w for %s: set HF_API_TOKEN or pass --api-key", ErrMissingAPIKey, MethodHuggingFace)
	}

	var out []hfSummary
	if err := postJSON(ctx, b.client, b.url, b.apiKey, b.requestTimeout, hfRequest{Inputs: text}, &out); err != nil {
		return "", err
	}
	if len(out) == 0 {
		return "", fmt.Errorf("%w from %s", ErrEmptyResponse, MethodHuggingFace)
	}
	return strings.TrimSpace(out[0].SummaryText), nil
}

package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiBackend summarizes with Google's Gemini API through the genai SDK.
type geminiBackend struct {
	model          string
	apiKey         string
	prompts        prompts
	temperature    float64
	requestTimeout time.Duration
}

func (b *geminiBackend) Method() Method { return MethodGemini }

func (b *geminiBackend) Summarize(ctx context.Context, text string) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w for %s: set GEMINI_API_KEY or pass --api-key", ErrMissingAPIKey, MethodGemini)
	}

	if b.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.requestTimeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  b.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	temperature := float32(b.temperature)
	genCfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(b.prompts.system, genai.RoleUser),
		Temperature:       &temperature,
	}

	result, err := client.Models.GenerateContent(ctx, b.model, genai.Text(b.prompts.render(text)), genCfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var sb strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			return s, nil
		}
	}

	return "", fmt.Errorf("%w from Gemini", ErrEmptyResponse)
}

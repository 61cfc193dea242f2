package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// lmStudioBackend talks to a local LM Studio (OpenAI-compatible) server and
// uses whatever model is currently loaded there.
type lmStudioBackend struct {
	client         *http.Client
	logger         logger.Logger
	baseURL        string
	completionsURL string // overrides baseURL + /v1/chat/completions
	fallbackModel  string
	prompts        prompts
	temperature    float64
	modelsTimeout  time.Duration
	requestTimeout time.Duration
}

func (b *lmStudioBackend) Method() Method { return MethodLMStudio }

func (b *lmStudioBackend) Summarize(ctx context.Context, text string) (string, error) {
	model := b.fallbackModel
	models, err := listModels(ctx, b.client, b.baseURL, b.modelsTimeout)
	switch {
	case err != nil:
		b.logger.Warn(ctx, "Failed to list LM Studio models: %v", err)
	case len(models) == 0:
		b.logger.Warn(ctx, "LM Studio reports no loaded models")
	default:
		model = models[0]
	}
	b.logger.Info(ctx, "Using model: %s", model)

	req := newChatRequest(model, b.prompts, text, b.temperature)
	req.Stream = boolPtr(false)

	if payload, err := json.MarshalIndent(req, "", "  "); err == nil {
		b.logger.Debug(ctx, "Sending request to LM Studio:\n%s", payload)
	}

	url := firstNonEmpty(b.completionsURL, b.baseURL+"/v1/chat/completions")
	var resp chatResponse
	if err := postJSON(ctx, b.client, url, "", b.requestTimeout, req, &resp); err != nil {
		return "", err
	}
	return resp.content()
}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// listModels returns the ids from GET {baseURL}/v1/models.
func listModels(ctx context.Context, client *http.Client, baseURL string, timeout time.Duration) ([]string, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/v1/models", nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, excerpt(body))
	}

	var mr modelsResponse
	if err := json.Unmarshal(body, &mr); err != nil {
		return nil, fmt.Errorf("parsing models: %w", err)
	}

	ids := make([]string, 0, len(mr.Data))
	for _, m := range mr.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// CheckResult is what CheckLMStudio found.
type CheckResult struct {
	Models []string
	Reply  string
}

const checkPrompt = "Hi! Tell me one sentence about yourself."

// CheckLMStudio lists the loaded models and sends a short test prompt to the
// first one.
func CheckLMStudio(ctx context.Context, cfg config.SummarizerConfig, client *http.Client) (*CheckResult, error) {
	if client == nil {
		client = &http.Client{}
	}
	baseURL := strings.TrimRight(cfg.LMStudio.BaseURL, "/")

	models, err := listModels(ctx, client, baseURL, cfg.ModelsTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect to LM Studio: %w", err)
	}
	if len(models) == 0 {
		return &CheckResult{}, ErrNoModels
	}

	req := chatRequest{
		Model:    models[0],
		Messages: []chatMessage{{Role: "user", Content: checkPrompt}},
	}
	var resp chatResponse
	if err := postJSON(ctx, client, baseURL+"/v1/chat/completions", "", cfg.RequestTimeout, req, &resp); err != nil {
		return &CheckResult{Models: models}, fmt.Errorf("test completion: %w", err)
	}

	reply, err := resp.content()
	if err != nil {
		return &CheckResult{Models: models}, fmt.Errorf("test completion: %w", err)
	}
	return &CheckResult{Models: models, Reply: reply}, nil
}

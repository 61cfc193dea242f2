package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      *bool         `json:"stream,omitempty"`
}

// chatResponse accepts the usual choices[].message shape and the
// choices[].messages[] shape some local servers return.
type chatResponse struct {
	Choices []struct {
		Message  *chatMessage  `json:"message"`
		Messages []chatMessage `json:"messages"`
	} `json:"choices"`
}

func (r chatResponse) content() (string, error) {
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrUnexpectedBody)
	}
	choice := r.Choices[0]
	if choice.Message != nil && choice.Message.Content != "" {
		return strings.TrimSpace(choice.Message.Content), nil
	}
	if len(choice.Messages) > 0 {
		return strings.TrimSpace(choice.Messages[0].Content), nil
	}
	if choice.Message != nil {
		return "", nil
	}
	return "", fmt.Errorf("%w: choice has no message", ErrUnexpectedBody)
}

func newChatRequest(model string, p prompts, text string, temperature float64) chatRequest {
	return chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: p.system},
			{Role: "user", Content: p.render(text)},
		},
		Temperature: temperature,
	}
}

// postJSON sends body to url and decodes a 2xx JSON response into out.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, timeout time.Duration, body, out interface{}) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d from %s: %s", resp.StatusCode, url, excerpt(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func excerpt(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 300 {
		return s[:300] + "..."
	}
	return s
}

// chatAPIBackend covers OpenAI-compatible cloud chat-completion APIs.
type chatAPIBackend struct {
	method         Method
	client         *http.Client
	url            string
	model          string
	apiKey         string
	keyHint        string
	prompts        prompts
	temperature    float64
	stream         *bool
	requestTimeout time.Duration
}

func (b *chatAPIBackend) Method() Method { return b.method }

func (b *chatAPIBackend) Summarize(ctx context.Context, text string) (string, error) {
	if b.apiKey == "" {
		return "", fmt.Errorf("%w for %s: set %s or pass --api-key", ErrMissingAPIKey, b.method, b.keyHint)
	}

	req := newChatRequest(b.model, b.prompts, text, b.temperature)
	req.Stream = b.stream

	var resp chatResponse
	if err := postJSON(ctx, b.client, b.url, b.apiKey, b.requestTimeout, req, &resp); err != nil {
		return "", err
	}
	return resp.content()
}

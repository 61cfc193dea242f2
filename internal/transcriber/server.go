package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const serverProbeTimeout = 5 * time.Second

// serverEngine talks to a running whisper.cpp whisper-server, which keeps
// the model resident between requests.
type serverEngine struct {
	client  *http.Client
	baseURL string
}

func loadServerEngine(ctx context.Context, client *http.Client, baseURL string) (Engine, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	probeCtx, cancel := context.WithTimeout(ctx, serverProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, baseURL+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerDown, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServerDown, err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return &serverEngine{client: client, baseURL: baseURL}, nil
}

type inferenceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error"`
}

// Transcribe uploads the file to POST /inference.
func (e *serverEngine) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	file, err := os.Open(audioPath)
	if err != nil {
		return Result{}, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return Result{}, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return Result{}, err
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return Result{}, err
	}
	if err := writer.Close(); err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/inference", body)
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("calling whisper server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("whisper server error (HTTP %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out inferenceResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return Result{}, fmt.Errorf("parsing whisper server response: %w", err)
	}
	if out.Error != "" {
		return Result{}, fmt.Errorf("whisper server: %s", out.Error)
	}
	return Result{Text: strings.TrimSpace(out.Text)}, nil
}

func (e *serverEngine) Close() error { return nil }

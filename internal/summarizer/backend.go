package summarizer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// Method names a summary backend.
type Method string

const (
	MethodLMStudio    Method = "lmstudio"
	MethodOpenAI      Method = "openai"
	MethodDeepSeek    Method = "deepseek"
	MethodHuggingFace Method = "huggingface"
	MethodGemini      Method = "gemini"
	MethodDummy       Method = "dummy"
)

// Methods lists every supported method.
var Methods = []Method{MethodLMStudio, MethodOpenAI, MethodDeepSeek, MethodHuggingFace, MethodGemini, MethodDummy}

const dummySummary = "⚠️ Summary not generated (use LM Studio or an API backend)."

// NewBackend selects the backend for cfg.Method. An unknown method yields a
// backend that fails every call, so the batch still runs and records why.
func NewBackend(cfg config.SummarizerConfig, client *http.Client, log logger.Logger) Backend {
	p := prompts{system: cfg.SystemPrompt, user: cfg.UserPrompt}

	switch Method(strings.ToLower(strings.TrimSpace(cfg.Method))) {
	case MethodLMStudio:
		return &lmStudioBackend{
			client:         client,
			logger:         log,
			baseURL:        strings.TrimRight(cfg.LMStudio.BaseURL, "/"),
			completionsURL: cfg.APIURL,
			fallbackModel:  cfg.LMStudio.Model,
			prompts:        p,
			temperature:    cfg.SamplingTemperature(),
			modelsTimeout:  cfg.ModelsTimeout,
			requestTimeout: cfg.RequestTimeout,
		}
	case MethodOpenAI:
		return &chatAPIBackend{
			method:         MethodOpenAI,
			client:         client,
			url:            firstNonEmpty(cfg.APIURL, cfg.OpenAI.URL),
			model:          cfg.OpenAI.Model,
			apiKey:         APIKey(cfg, MethodOpenAI),
			keyHint:        "OPENAI_API_KEY",
			prompts:        p,
			temperature:    cfg.SamplingTemperature(),
			requestTimeout: cfg.RequestTimeout,
		}
	case MethodDeepSeek:
		return &chatAPIBackend{
			method:         MethodDeepSeek,
			client:         client,
			url:            firstNonEmpty(cfg.APIURL, cfg.DeepSeek.URL),
			model:          cfg.DeepSeek.Model,
			apiKey:         APIKey(cfg, MethodDeepSeek),
			keyHint:        "DEEPSEEK_API_KEY",
			prompts:        p,
			temperature:    cfg.SamplingTemperature(),
			stream:         boolPtr(false),
			requestTimeout: cfg.RequestTimeout,
		}
	case MethodHuggingFace:
		return &huggingFaceBackend{
			client:         client,
			url:            firstNonEmpty(cfg.APIURL, cfg.HuggingFace.URL),
			apiKey:         APIKey(cfg, MethodHuggingFace),
			requestTimeout: cfg.RequestTimeout,
		}
	case MethodGemini:
		return &geminiBackend{
			model:          cfg.Gemini.Model,
			apiKey:         APIKey(cfg, MethodGemini),
			prompts:        p,
			temperature:    cfg.SamplingTemperature(),
			requestTimeout: cfg.RequestTimeout,
		}
	case MethodDummy:
		return dummyBackend{}
	default:
		return unknownBackend{method: Method(cfg.Method)}
	}
}

type dummyBackend struct{}

func (dummyBackend) Method() Method { return MethodDummy }

func (dummyBackend) Summarize(ctx context.Context, text string) (string, error) {
	return dummySummary, nil
}

type unknownBackend struct {
	method Method
}

func (b unknownBackend) Method() Method { return b.method }

func (b unknownBackend) Summarize(ctx context.Context, text string) (string, error) {
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, string(b.method))
}

// prompts holds the system prompt and the user template (%s = transcript).
type prompts struct {
	system string
	user   string
}

func (p prompts) render(text string) string {
	if strings.Contains(p.user, "%s") {
		return strings.Replace(p.user, "%s", text, 1)
	}
	return p.user + "\n\n" + text
}

// APIKey returns the key a cloud method will send: summarizer.api_key
// first, then the method's own section. Local methods have none.
func APIKey(cfg config.SummarizerConfig, m Method) string {
	switch m {
	case MethodOpenAI:
		return firstNonEmpty(cfg.APIKey, cfg.OpenAI.APIKey)
	case MethodDeepSeek:
		return firstNonEmpty(cfg.APIKey, cfg.DeepSeek.APIKey)
	case MethodHuggingFace:
		return firstNonEmpty(cfg.APIKey, cfg.HuggingFace.APIKey)
	case MethodGemini:
		return firstNonEmpty(cfg.APIKey, cfg.Gemini.APIKey)
	default:
		return ""
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func boolPtr(b bool) *bool { return &b }

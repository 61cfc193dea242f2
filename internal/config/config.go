package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when it exists and no --config flag is given.
const DefaultConfigFile = "config.yaml"

// DefaultEnvFile holds secrets (API keys) outside the YAML config.
const DefaultEnvFile = ".env"

const (
	DefaultSystemPrompt = "You are an assistant that writes a short summary and the key points of a meeting transcript."
	DefaultUserPrompt   = "Meeting transcript:\n\n%s\n\nWrite a short summary (a few paragraphs) followed by a list of key points."
)

type Config struct {
	Recorder   RecorderConfig   `yaml:"recorder"`
	FFmpeg     FFmpegConfig     `yaml:"ffmpeg"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Watch      WatchConfig      `yaml:"watch"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type RecorderConfig struct {
	RecordingsDir string        `yaml:"recordings_dir"`
	InputFormat   string        `yaml:"input_format"`
	MicDevice     string        `yaml:"mic_device"`
	SystemDevice  string        `yaml:"system_device"`
	FileName      string        `yaml:"file_name"`
	StopTimeout   time.Duration `yaml:"stop_timeout"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	Filter     string `yaml:"filter"`
	SampleRate int    `yaml:"sample_rate"`
}

type WhisperConfig struct {
	Engine                string `yaml:"engine"` // cli or server
	BinaryPath            string `yaml:"binary_path"`
	ModelsDir             string `yaml:"models_dir"`
	Model                 string `yaml:"model"`
	ModelPath             string `yaml:"model_path"`
	ServerURL             string `yaml:"server_url"`
	Language              string `yaml:"language"`
	Threads               int    `yaml:"threads"`
	Device                string `yaml:"device"` // auto, gpu or cpu
	SentencesPerParagraph int    `yaml:"sentences_per_paragraph"`
}

const DefaultTemperature = 0.3

type SummarizerConfig struct {
	Method         string        `yaml:"method"`
	APIURL         string        `yaml:"api_url"`
	APIKey         string        `yaml:"api_key"`
	Temperature    *float64      `yaml:"temperature"` // nil means DefaultTemperature; 0 is kept
	RequestTimeout time.Duration `yaml:"request_timeout"`
	ModelsTimeout  time.Duration `yaml:"models_timeout"`
	SystemPrompt   string        `yaml:"system_prompt"`
	UserPrompt     string        `yaml:"user_prompt"`
	ExportDocx     bool          `yaml:"export_docx"`

	LMStudio    LMStudioConfig    `yaml:"lmstudio"`
	OpenAI      ChatAPIConfig     `yaml:"openai"`
	DeepSeek    ChatAPIConfig     `yaml:"deepseek"`
	HuggingFace HuggingFaceConfig `yaml:"huggingface"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type LMStudioConfig struct {
	BaseURL string `yaml:"base_url"`
	// Model is used when the server's model list is unavailable.
	Model string `yaml:"model"`
}

type ChatAPIConfig struct {
	URL    string `yaml:"url"`
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

type HuggingFaceConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type GeminiConfig struct {
	Model  string `yaml:"model"`
	APIKey string `yaml:"api_key"`
}

type WatchConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}

// Load reads a YAML config file. Missing fields get defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnv loads envFile (if present) into the process environment, then
// copies secrets from the environment into cfg where the config leaves them
// empty. Values already in the environment are not overwritten by the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
		}
	}

	setIfEmpty(&c.Summarizer.DeepSeek.APIKey, "DEEPSEEK_API_KEY", "DeepSeek_API")
	setIfEmpty(&c.Summarizer.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfEmpty(&c.Summarizer.HuggingFace.APIKey, "HF_API_TOKEN", "HUGGINGFACE_API_KEY")
	setIfEmpty(&c.Summarizer.Gemini.APIKey, "GEMINI_API_KEY")

	if v := os.Getenv("MEETSCRIBE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

func setIfEmpty(dst *string, keys ...string) {
	if *dst != "" {
		return
	}
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			*dst = v
			return
		}
	}
}

// Validate checks enum-like fields and fills defaults.
func (c *Config) Validate() error {
	if c.Recorder.RecordingsDir == "" {
		c.Recorder.RecordingsDir = "recordings"
	}
	if c.Recorder.InputFormat == "" {
		c.Recorder.InputFormat = defaultInputFormat(runtime.GOOS)
	}
	if c.Recorder.MicDevice == "" || c.Recorder.SystemDevice == "" {
		mic, sys := defaultDevices(c.Recorder.InputFormat)
		if c.Recorder.MicDevice == "" {
			c.Recorder.MicDevice = mic
		}
		if c.Recorder.SystemDevice == "" {
			c.Recorder.SystemDevice = sys
		}
	}
	if c.Recorder.FileName == "" {
		c.Recorder.FileName = "recording.mka"
	}
	if c.Recorder.StopTimeout == 0 {
		c.Recorder.StopTimeout = 10 * time.Second
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.Filter == "" {
		c.FFmpeg.Filter = "highpass=f=200, lowpass=f=3000, dynaudnorm"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}

	if c.Whisper.Engine == "" {
		c.Whisper.Engine = "cli"
	}
	if c.Whisper.Engine != "cli" && c.Whisper.Engine != "server" {
		return fmt.Errorf("whisper.engine must be cli or server, got %q", c.Whisper.Engine)
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelsDir == "" {
		c.Whisper.ModelsDir = "models"
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = "large"
	}
	if c.Whisper.ServerURL == "" {
		c.Whisper.ServerURL = "http://127.0.0.1:8080"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.Device == "" {
		c.Whisper.Device = "auto"
	}
	switch c.Whisper.Device {
	case "auto", "gpu", "cpu":
	default:
		return fmt.Errorf("whisper.device must be auto, gpu or cpu, got %q", c.Whisper.Device)
	}
	if c.Whisper.SentencesPerParagraph <= 0 {
		c.Whisper.SentencesPerParagraph = 3
	}

	s := &c.Summarizer
	if s.Method == "" {
		s.Method = "lmstudio"
	}
	if s.Temperature == nil {
		t := DefaultTemperature
		s.Temperature = &t
	}
	if s.RequestTimeout == 0 {
		s.RequestTimeout = 20 * time.Minute
	}
	if s.ModelsTimeout == 0 {
		s.ModelsTimeout = 5 * time.Second
	}
	if s.SystemPrompt == "" {
		s.SystemPrompt = DefaultSystemPrompt
	}
	if s.UserPrompt == "" {
		s.UserPrompt = DefaultUserPrompt
	}
	if s.LMStudio.BaseURL == "" {
		s.LMStudio.BaseURL = "http://localhost:1234"
	}
	if s.OpenAI.URL == "" {
		s.OpenAI.URL = "https://api.openai.com/v1/chat/completions"
	}
	if s.OpenAI.Model == "" {
		s.OpenAI.Model = "gpt-4o-mini"
	}
	if s.DeepSeek.URL == "" {
		s.DeepSeek.URL = "https://api.deepseek.com/chat/completions"
	}
	if s.DeepSeek.Model == "" {
		s.DeepSeek.Model = "deepseek-chat"
	}
	if s.HuggingFace.URL == "" {
		s.HuggingFace.URL = "https://api-inference.huggingface.co/models/facebook/bart-large-cnn"
	}
	if s.Gemini.Model == "" {
		s.Gemini.Model = "gemini-2.5-flash"
	}

	if c.Watch.SettleDelay == 0 {
		c.Watch.SettleDelay = 500 * time.Millisecond
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

func defaultInputFormat(goos string) string {
	switch goos {
	case "windows":
		return "dshow"
	case "darwin":
		return "avfoundation"
	default:
		return "pulse"
	}
}

func defaultDevices(inputFormat string) (mic, system string) {
	switch inputFormat {
	case "dshow":
		return "audio=Microphone", "audio=Stereo Mix"
	case "avfoundation":
		return ":0", ":1"
	default:
		return "default", "default.monitor"
	}
}

// SamplingTemperature returns the configured temperature, or
// DefaultTemperature when the key was never set.
func (s SummarizerConfig) SamplingTemperature() float64 {
	if s.Temperature == nil {
		return DefaultTemperature
	}
	return *s.Temperature
}

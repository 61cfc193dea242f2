package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "empty config gets defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name:    "server engine",
			config:  Config{Whisper: WhisperConfig{Engine: "server"}},
			wantErr: false,
		},
		{
			name:    "unknown engine",
			config:  Config{Whisper: WhisperConfig{Engine: "torch"}},
			wantErr: true,
		},
		{
			name:    "unknown device",
			config:  Config{Whisper: WhisperConfig{Device: "tpu"}},
			wantErr: true,
		},
		{
			name:    "unknown summary method is not a config error",
			config:  Config{Summarizer: SummarizerConfig{Method: "carrier-pigeon"}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Whisper.Model != "large" {
		t.Errorf("Whisper.Model = %q, want large", cfg.Whisper.Model)
	}
	if cfg.Whisper.SentencesPerParagraph != 3 {
		t.Errorf("SentencesPerParagraph = %d, want 3", cfg.Whisper.SentencesPerParagraph)
	}
	if cfg.Summarizer.Method != "lmstudio" {
		t.Errorf("Summarizer.Method = %q, want lmstudio", cfg.Summarizer.Method)
	}
	if cfg.Summarizer.ModelsTimeout != 5*time.Second {
		t.Errorf("ModelsTimeout = %v, want 5s", cfg.Summarizer.ModelsTimeout)
	}
	if cfg.Summarizer.DeepSeek.Model != "deepseek-chat" {
		t.Errorf("DeepSeek.Model = %q", cfg.Summarizer.DeepSeek.Model)
	}
	if cfg.Recorder.FileName != "recording.mka" {
		t.Errorf("Recorder.FileName = %q", cfg.Recorder.FileName)
	}
	if cfg.Recorder.MicDevice == "" || cfg.Recorder.SystemDevice == "" {
		t.Error("capture devices should have defaults")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
recorder:
  recordings_dir: "data/recordings"
  input_format: "dshow"
  mic_device: "audio=Microphone (USB)"
  stop_timeout: 3s

whisper:
  model: "medium"
  threads: 4
  sentences_per_paragraph: 5

summarizer:
  method: "deepseek"
  request_timeout: 2m
  lmstudio:
    base_url: "http://studio:1234"

logging:
  level: "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Recorder.RecordingsDir != "data/recordings" {
		t.Errorf("RecordingsDir = %v", cfg.Recorder.RecordingsDir)
	}
	if cfg.Recorder.MicDevice != "audio=Microphone (USB)" {
		t.Errorf("MicDevice = %v", cfg.Recorder.MicDevice)
	}
	if cfg.Recorder.SystemDevice != "audio=Stereo Mix" {
		t.Errorf("SystemDevice default for dshow = %v", cfg.Recorder.SystemDevice)
	}
	if cfg.Recorder.StopTimeout != 3*time.Second {
		t.Errorf("StopTimeout = %v", cfg.Recorder.StopTimeout)
	}
	if cfg.Whisper.Model != "medium" || cfg.Whisper.Threads != 4 || cfg.Whisper.SentencesPerParagraph != 5 {
		t.Errorf("Whisper = %+v", cfg.Whisper)
	}
	if cfg.Summarizer.Method != "deepseek" {
		t.Errorf("Method = %v", cfg.Summarizer.Method)
	}
	if cfg.Summarizer.RequestTimeout != 2*time.Minute {
		t.Errorf("RequestTimeout = %v", cfg.Summarizer.RequestTimeout)
	}
	if cfg.Summarizer.LMStudio.BaseURL != "http://studio:1234" {
		t.Errorf("LMStudio.BaseURL = %v", cfg.Summarizer.LMStudio.BaseURL)
	}
	if cfg.Summarizer.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("OpenAI.Model default = %v", cfg.Summarizer.OpenAI.Model)
	}
}

func TestLoadTemperature(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{name: "unset gets default", content: "summarizer:\n  method: \"dummy\"\n", want: 0.3},
		{name: "explicit zero is kept", content: "summarizer:\n  temperature: 0\n", want: 0},
		{name: "explicit value", content: "summarizer:\n  temperature: 0.7\n", want: 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if cfg.Summarizer.Temperature == nil {
				t.Fatal("Temperature should be set after Validate")
			}
			if got := cfg.Summarizer.SamplingTemperature(); got != tt.want {
				t.Errorf("SamplingTemperature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("whisper: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoadEnv(t *testing.T) {
	for _, k := range []string{"DEEPSEEK_API_KEY", "DeepSeek_API", "OPENAI_API_KEY", "MEETSCRIBE_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "DeepSeek_API=ds-from-file\nMEETSCRIBE_LOG_LEVEL=warn\n"
	if err := os.WriteFile(envFile, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPENAI_API_KEY", "oa-from-env")

	cfg := Default()
	cfg.Summarizer.HuggingFace.APIKey = "hf-from-config"
	if err := cfg.LoadEnv(envFile); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("DeepSeek_API")
		os.Unsetenv("MEETSCRIBE_LOG_LEVEL")
	})

	if cfg.Summarizer.DeepSeek.APIKey != "ds-from-file" {
		t.Errorf("DeepSeek.APIKey = %q", cfg.Summarizer.DeepSeek.APIKey)
	}
	if cfg.Summarizer.OpenAI.APIKey != "oa-from-env" {
		t.Errorf("OpenAI.APIKey = %q", cfg.Summarizer.OpenAI.APIKey)
	}
	if cfg.Summarizer.HuggingFace.APIKey != "hf-from-config" {
		t.Errorf("HuggingFace.APIKey = %q, config value should win", cfg.Summarizer.HuggingFace.APIKey)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing env file should be ignored, got %v", err)
	}
}

func TestExampleConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load(config.example.yaml) error = %v", err)
	}

	def := Default()
	if cfg.Summarizer.RequestTimeout != def.Summarizer.RequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", cfg.Summarizer.RequestTimeout, def.Summarizer.RequestTimeout)
	}
	if cfg.Watch.SettleDelay != def.Watch.SettleDelay {
		t.Errorf("SettleDelay = %v, want %v", cfg.Watch.SettleDelay, def.Watch.SettleDelay)
	}
	if cfg.Whisper.Model != def.Whisper.Model || cfg.Summarizer.Method != def.Summarizer.Method {
		t.Errorf("example config drifted from defaults: %+v", cfg.Whisper)
	}
}

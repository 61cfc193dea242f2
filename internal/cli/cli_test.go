package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/internal/output"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor/executortest"
)

type testEnv struct {
	dir    string
	config string
	fake   *executortest.Fake
	out    *bytes.Buffer
}

// newTestEnv writes a config whose whisper model exists in a temp models dir.
func newTestEnv(t *testing.T, extraYAML string) *testEnv {
	t.Helper()
	root := t.TempDir()

	models := filepath.Join(root, "models")
	if err := os.MkdirAll(models, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(models, "ggml-large.bin"), []byte("model"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := fmt.Sprintf("whisper:\n  models_dir: %s\n  device: cpu\nsummarizer:\n  method: dummy\n%s", models, extraYAML)
	cfgPath := filepath.Join(root, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(root, "session")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	return &testEnv{dir: dir, config: cfgPath, fake: executortest.New(), out: &bytes.Buffer{}}
}

func (e *testEnv) run(args ...string) error {
	deps := &Dependencies{
		Executor: e.fake,
		In:       strings.NewReader(""),
		Out:      e.out,
		Logger:   logger.Discard(),
	}
	cmd := NewRootCmd(deps)
	cmd.SetArgs(append([]string{"--config", e.config, "--env-file", ""}, args...))
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}

func (e *testEnv) write(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func (e *testEnv) read(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(e.dir, name))
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

// whisperSays makes the fake whisper-cli print text; ffmpeg fails so the
// original file is used.
func (e *testEnv) whisperSays(text string) {
	e.fake.Handlers["ffmpeg"] = func(args []string) (string, error) {
		return "", errors.New("command 'ffmpeg' failed: exit status 1")
	}
	e.fake.Handlers["/usr/bin/whisper-cli"] = func(args []string) (string, error) {
		return text, nil
	}
}

func TestProcessFull(t *testing.T) {
	env := newTestEnv(t, "")
	env.write(t, "recording.mka", "audio")
	env.whisperSays("One. Two. Three. Four.")

	if err := env.run("process", env.dir); err != nil {
		t.Fatalf("process error = %v", err)
	}

	if got := env.read(t, "recording.txt"); got != "One. Two. Three.\n\nFour." {
		t.Errorf("transcript = %q", got)
	}
	if got := env.read(t, "recording.summary.txt"); !strings.Contains(got, "Summary not generated") {
		t.Errorf("summary = %q", got)
	}
	if !strings.Contains(env.out.String(), "recording.mka -> recording.txt") {
		t.Errorf("output:\n%s", env.out.String())
	}
}

func TestProcessSummarizeOnly(t *testing.T) {
	env := newTestEnv(t, "")
	env.write(t, "recording.mka", "audio")
	env.write(t, "notes.txt", "Existing transcript.")

	if err := env.run("process", "--summarize-only", env.dir); err != nil {
		t.Fatalf("process error = %v", err)
	}

	if len(env.fake.CallsTo("/usr/bin/whisper-cli")) != 0 {
		t.Error("whisper ran in summarize-only mode")
	}
	if _, err := os.Stat(filepath.Join(env.dir, "notes.summary.txt")); err != nil {
		t.Errorf("summary not written: %v", err)
	}
}

func TestProcessMissingFFmpeg(t *testing.T) {
	env := newTestEnv(t, "")
	env.write(t, "recording.mka", "audio")
	env.fake.Missing["ffmpeg"] = true

	err := env.run("process", env.dir)
	if err == nil || !strings.Contains(err.Error(), "ffmpeg") {
		t.Fatalf("process error = %v, want ffmpeg precondition error", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, "recording.summary.txt")); !os.IsNotExist(err) {
		t.Error("summarization ran after a fatal transcription error")
	}
}

func TestProcessMissingFolder(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("process", filepath.Join(env.dir, "nope")); err == nil {
		t.Error("process error = nil for a missing folder")
	}
}

func TestTranscribeWithOutputAndModel(t *testing.T) {
	env := newTestEnv(t, "")
	env.write(t, "a.wav", "audio")
	env.whisperSays("Hello there.")

	models := filepath.Join(filepath.Dir(env.dir), "models")
	if err := os.WriteFile(filepath.Join(models, "ggml-small.bin"), []byte("m"), 0644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(t.TempDir(), "out")

	if err := env.run("transcribe", env.dir, "--output", outDir, "--model", "small"); err != nil {
		t.Fatalf("transcribe error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "a.txt")); err != nil {
		t.Errorf("transcript not in output dir: %v", err)
	}
	calls := env.fake.CallsTo("/usr/bin/whisper-cli")
	if len(calls) != 1 || !strings.Contains(strings.Join(calls[0].Args, " "), "ggml-small.bin") {
		t.Errorf("whisper calls = %+v", calls)
	}
}

func TestSummarizeMethodFlag(t *testing.T) {
	env := newTestEnv(t, "")
	env.write(t, "meeting.txt", "Some words.")

	if err := env.run("summarize", env.dir, "--method", "nonsense"); err != nil {
		t.Fatalf("summarize error = %v", err)
	}
	got := env.read(t, "meeting.summary.txt")
	if !strings.HasPrefix(got, "⚠️ summary generation failed:") {
		t.Errorf("summary = %q", got)
	}
}

func TestSummarizeAPIFlags(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{"choices":[{"message":{"content":"Flagged summary"}}]}`)
	}))
	defer srv.Close()

	env := newTestEnv(t, "")
	env.write(t, "meeting.txt", "Some words.")

	if err := env.run("summarize", env.dir, "--method", "deepseek", "--api-url", srv.URL, "--api-key", "sk-flag"); err != nil {
		t.Fatalf("summarize error = %v", err)
	}
	if got := env.read(t, "meeting.summary.txt"); got != "Flagged summary" {
		t.Errorf("summary = %q", got)
	}
	if auth != "Bearer sk-flag" {
		t.Errorf("Authorization = %q", auth)
	}
}

func TestCheck(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data":[{"id":"llama-3"}]}`)
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices":[{"message":{"content":"I am Llama."}}]}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	env := newTestEnv(t, fmt.Sprintf("  lmstudio:\n    base_url: %s\n", srv.URL))
	if err := env.run("check"); err != nil {
		t.Fatalf("check error = %v", err)
	}
	out := env.out.String()
	if !strings.Contains(out, "llama-3") || !strings.Contains(out, "I am Llama.") {
		t.Errorf("output:\n%s", out)
	}
}

func TestManualNeedsTerminal(t *testing.T) {
	env := newTestEnv(t, "")
	err := env.run("manual", env.dir)
	if err == nil || !strings.Contains(err.Error(), "terminal") {
		t.Errorf("manual error = %v, want terminal error", err)
	}
}

func TestDoctor(t *testing.T) {
	env := newTestEnv(t, "")
	env.fake.Missing["ffmpeg"] = true

	if err := env.run("doctor"); err != nil {
		t.Fatalf("doctor error = %v", err)
	}
	out := env.out.String()
	for _, want := range []string{"❌ ffmpeg", "✅ whisper.cpp", "✅ Whisper model", "dummy", "Some prerequisites are missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctorAllMet(t *testing.T) {
	env := newTestEnv(t, "")

	if err := env.run("doctor"); err != nil {
		t.Fatalf("doctor error = %v", err)
	}
	out := env.out.String()
	if !strings.Contains(out, "\n✅ All prerequisites met. Ready to record!\n") {
		t.Errorf("summary line should follow a blank line:\n%s", out)
	}
	if strings.Contains(out, "✅ \n") {
		t.Errorf("summary line starts with a stray newline:\n%s", out)
	}
}

func TestCheckSummarizer(t *testing.T) {
	tests := []struct {
		method  string
		key     string
		wantOK  bool
		wantOut string
	}{
		{"openai", "", false, "OPENAI_API_KEY"},
		{"openai", "sk-1", true, "API key configured"},
		{"deepseek", "", false, "DEEPSEEK_API_KEY"},
		{"huggingface", "", false, "HF_API_TOKEN"},
		{"gemini", "", false, "GEMINI_API_KEY"},
		{"lmstudio", "", true, "meetscribe check"},
		{"dummy", "", true, "dummy"},
		{"carrier-pigeon", "", false, "unknown method"},
	}

	for _, tt := range tests {
		t.Run(tt.method+"/"+tt.key, func(t *testing.T) {
			cfg := config.Default().Summarizer
			cfg.Method = tt.method
			cfg.APIKey = tt.key

			var buf bytes.Buffer
			ok := checkSummarizer(cfg, output.NewFormatter(&buf))
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !strings.Contains(buf.String(), tt.wantOut) {
				t.Errorf("output = %q, want %q", buf.String(), tt.wantOut)
			}
		})
	}
}

func TestInvalidLogLevel(t *testing.T) {
	env := newTestEnv(t, "")
	if err := env.run("--log-level", "loud", "doctor"); err == nil {
		t.Error("error = nil for an invalid log level")
	}
}

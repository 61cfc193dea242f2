package summarizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nguyentantai21042004/meetscribe/internal/batch"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
)

// stubBackend records what it was asked to summarize.
type stubBackend struct {
	mu    sync.Mutex
	seen  []string
	reply func(text string) (string, error)
}

func (b *stubBackend) Method() Method { return "stub" }

func (b *stubBackend) Summarize(ctx context.Context, text string) (string, error) {
	b.mu.Lock()
	b.seen = append(b.seen, text)
	b.mu.Unlock()
	return b.reply(text)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestIsTranscript(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"meeting.txt", true},
		{"meeting.summary.txt", false},
		{"meeting.wav", false},
		{"notes.txt.bak", false},
	}
	for _, tt := range tests {
		if got := IsTranscript(tt.name); got != tt.want {
			t.Errorf("IsTranscript(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSummaryPath(t *testing.T) {
	if got := SummaryPath("/x/meeting.txt"); got != "/x/meeting.summary.txt" {
		t.Errorf("SummaryPath() = %q", got)
	}
}

func TestSummarizeDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "First line.\n\nSecond line!")
	writeFile(t, dir, "b.txt", "   \n ")
	writeFile(t, dir, "c.txt", "boom")
	writeFile(t, dir, "old.summary.txt", "previous summary")
	writeFile(t, dir, "audio.wav", "RIFF")

	backend := &stubBackend{reply: func(text string) (string, error) {
		if text == "boom" {
			return "", errors.New("connection refused")
		}
		return "Summary of: " + text, nil
	}}
	s := New(testConfig("dummy"), logger.Discard(), WithBackend(backend))

	report, err := s.SummarizeDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("SummarizeDir() error = %v", err)
	}

	if len(report.Results) != 3 {
		t.Fatalf("results = %d, want 3 (summary files excluded): %v", len(report.Results), report.Results)
	}
	if report.Count(batch.StatusDone) != 1 || report.Count(batch.StatusSkipped) != 1 || report.Count(batch.StatusFailed) != 1 {
		t.Errorf("report = %s", report)
	}

	if got := readFile(t, filepath.Join(dir, "a.summary.txt")); got != "Summary of: First line. Second line!" {
		t.Errorf("a.summary.txt = %q", got)
	}

	if _, err := os.Stat(filepath.Join(dir, "b.summary.txt")); !os.IsNotExist(err) {
		t.Errorf("empty transcript produced a summary file (stat err = %v)", err)
	}

	failed, ok := report.Find("c.txt")
	if !ok || failed.Status != batch.StatusFailed {
		t.Fatalf("c.txt result = %+v", failed)
	}
	if failed.Output != filepath.Join(dir, "c.summary.txt") {
		t.Errorf("failed Output = %q", failed.Output)
	}
	got := readFile(t, filepath.Join(dir, "c.summary.txt"))
	if got != "⚠️ summary generation failed: connection refused" {
		t.Errorf("c.summary.txt = %q", got)
	}

	if got := readFile(t, filepath.Join(dir, "old.summary.txt")); got != "previous summary" {
		t.Errorf("existing summary was modified: %q", got)
	}

	for _, text := range backend.seen {
		if strings.Contains(text, "previous summary") {
			t.Error("summary file was sent to the backend")
		}
	}
}

func TestSummarizeDirUnknownMethod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meeting.txt", "Some words.")

	s := New(testConfig("telepathy"), logger.Discard())
	report, err := s.SummarizeDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("SummarizeDir() error = %v", err)
	}
	if report.Count(batch.StatusFailed) != 1 {
		t.Errorf("report = %s, want 1 failed", report)
	}

	got := readFile(t, filepath.Join(dir, "meeting.summary.txt"))
	if !strings.HasPrefix(got, "⚠️ summary generation failed:") || !strings.Contains(got, "telepathy") {
		t.Errorf("summary = %q", got)
	}
}

func TestSummarizeDirDummy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meeting.txt", "Some words.")

	report, err := New(testConfig("dummy"), logger.Discard()).SummarizeDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("SummarizeDir() error = %v", err)
	}
	if report.Count(batch.StatusDone) != 1 {
		t.Errorf("report = %s", report)
	}
	if got := readFile(t, filepath.Join(dir, "meeting.summary.txt")); got != dummySummary {
		t.Errorf("summary = %q", got)
	}
}

func TestSummarizeDirEmptyBackendReply(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meeting.txt", "Some words.")

	backend := &stubBackend{reply: func(string) (string, error) { return "", nil }}
	report, err := New(testConfig("dummy"), logger.Discard(), WithBackend(backend)).SummarizeDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	res, _ := report.Find("meeting.txt")
	if !errors.Is(res.Err, ErrEmptyResponse) {
		t.Errorf("Err = %v, want ErrEmptyResponse", res.Err)
	}
}

func TestSummarizeDirNoTranscripts(t *testing.T) {
	report, err := New(testConfig("dummy"), logger.Discard()).SummarizeDir(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Results) != 0 {
		t.Errorf("results = %v", report.Results)
	}
}

func TestSummarizeDirMissing(t *testing.T) {
	_, err := New(testConfig("dummy"), logger.Discard()).SummarizeDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("SummarizeDir() error = nil for missing dir")
	}
}

func TestSummarizeDirCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig("dummy"), logger.Discard()).SummarizeDir(ctx, dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSummarizeDirExportDocx(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meeting.txt", "Words.")

	backend := &stubBackend{reply: func(string) (string, error) {
		return "# Meeting\n\n- **Decision**: ship it\n1. Follow up", nil
	}}
	cfg := testConfig("dummy")
	cfg.ExportDocx = true

	if _, err := New(cfg, logger.Discard(), WithBackend(backend)).SummarizeDir(context.Background(), dir); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(filepath.Join(dir, "meeting.summary.docx"))
	if err != nil {
		t.Fatalf("docx not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("docx is empty")
	}
}

func TestGenerateSummary(t *testing.T) {
	backend := &stubBackend{reply: func(text string) (string, error) { return "ok: " + text, nil }}
	s := New(testConfig("dummy"), logger.Discard(), WithBackend(backend))

	if got := s.GenerateSummary(context.Background(), "a\nb  $c"); got != "ok: a b c" {
		t.Errorf("GenerateSummary() = %q", got)
	}

	backend.reply = func(string) (string, error) { return "", errors.New("timeout") }
	if got := s.GenerateSummary(context.Background(), "x"); got != "⚠️ summary generation failed: timeout" {
		t.Errorf("GenerateSummary() = %q", got)
	}
}

func TestSummarizeFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "Alpha.")
	writeFile(t, dir, "b.txt", "Beta.")
	old := writeFile(t, dir, "a.summary.txt", "old")

	backend := &stubBackend{reply: func(text string) (string, error) { return "S " + text, nil }}
	s := New(testConfig("dummy"), logger.Discard(), WithBackend(backend))

	report, err := s.SummarizeFiles(context.Background(), []string{a, old})
	if err != nil {
		t.Fatal(err)
	}
	if report.Count(batch.StatusDone) != 1 || report.Count(batch.StatusSkipped) != 1 {
		t.Errorf("report = %s", report)
	}
	if len(backend.seen) != 1 || backend.seen[0] != "Alpha." {
		t.Errorf("backend saw %v", backend.seen)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.summary.txt")); !os.IsNotExist(err) {
		t.Error("unlisted transcript was summarized")
	}
}

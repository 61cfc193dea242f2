package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/nguyentantai21042004/meetscribe/internal/config"
	"github.com/nguyentantai21042004/meetscribe/internal/logger"
	"github.com/nguyentantai21042004/meetscribe/pkg/executor/executortest"
)

// writeWAV writes one second of 16kHz mono silence.
func writeWAV(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, 16000, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 16000},
		Data:           make([]int, 16000),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
}

// ffmpegWritesWAV makes the fake ffmpeg produce a valid cleaned file.
func ffmpegWritesWAV(t *testing.T, fake *executortest.Fake) {
	fake.Handlers["ffmpeg"] = func(args []string) (string, error) {
		writeWAV(t, args[len(args)-1])
		return "", nil
	}
}

func ffmpegFails(fake *executortest.Fake) {
	fake.Handlers["ffmpeg"] = func(args []string) (string, error) {
		return "", errors.New("command 'ffmpeg' failed: exit status 1")
	}
}

// fakeEngine returns canned text per input base name.
type fakeEngine struct {
	mu     sync.Mutex
	texts  map[string]string
	errs   map[string]error
	seen   []string
	closed bool
}

func (e *fakeEngine) Transcribe(ctx context.Context, path string) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.seen = append(e.seen, path)
	name := filepath.Base(path)
	if err, ok := e.errs[name]; ok {
		return Result{}, err
	}
	return Result{Text: e.texts[name]}, nil
}

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

func newTestTranscriber(fake *executortest.Fake, engine *fakeEngine, loads *int) *implTranscriber {
	cfg := config.Default()
	return New(cfg, fake, logger.Discard(), WithEngineLoader(func(ctx context.Context, d Device) (Engine, error) {
		*loads++
		return engine, nil
	})).(*implTranscriber)
}

package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

// defaultEngineLoader builds the engine named by whisper.engine.
func (t *implTranscriber) defaultEngineLoader(ctx context.Context, device Device) (Engine, error) {
	switch t.cfg.Whisper.Engine {
	case "server":
		return loadServerEngine(ctx, t.httpClient, t.cfg.Whisper.ServerURL)
	default:
		return t.loadCLIEngine(device)
	}
}

// ResolveModelPath maps a model name such as "large" to the ggml file
// whisper.cpp expects. An explicit path (or whisper.model_path) wins.
func ResolveModelPath(modelsDir, modelPath, name string) string {
	if modelPath != "" {
		return modelPath
	}
	if strings.HasSuffix(name, ".bin") || strings.ContainsRune(name, os.PathSeparator) {
		return name
	}
	return filepath.Join(modelsDir, "ggml-"+name+".bin")
}

// cliEngine shells out to whisper.cpp's whisper-cli for every file.
type cliEngine struct {
	executor  executor.Executor
	binary    string
	modelPath string
	language  string
	threads   int
	device    Device
}

func (t *implTranscriber) loadCLIEngine(device Device) (Engine, error) {
	binary, err := t.executor.LookPath(t.cfg.Whisper.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrWhisperNotFound, t.cfg.Whisper.BinaryPath)
	}

	// A model set via WithModel overrides whisper.model_path too.
	modelPath := t.cfg.Whisper.ModelPath
	if t.model != t.cfg.Whisper.Model {
		modelPath = ""
	}
	modelPath = ResolveModelPath(t.cfg.Whisper.ModelsDir, modelPath, t.model)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, modelPath)
	}

	return &cliEngine{
		executor:  t.executor,
		binary:    binary,
		modelPath: modelPath,
		language:  t.cfg.Whisper.Language,
		threads:   t.cfg.Whisper.Threads,
		device:    device,
	}, nil
}

// Transcribe runs whisper-cli and reads the plain text it prints.
// -nt: no timestamps
// -np: no progress/system prints, only the transcript on stdout
// -ng: disable GPU when running on the CPU device
func (e *cliEngine) Transcribe(ctx context.Context, audioPath string) (Result, error) {
	args := []string{
		"-m", e.modelPath,
		"-f", audioPath,
		"-l", e.language,
		"-t", strconv.Itoa(e.threads),
		"-nt",
		"-np",
	}
	if e.device == DeviceCPU {
		args = append(args, "-ng")
	}

	out, err := e.executor.Execute(ctx, e.binary, args...)
	if err != nil {
		return Result{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(out, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return Result{Text: strings.Join(lines, " ")}, nil
}

func (e *cliEngine) Close() error { return nil }

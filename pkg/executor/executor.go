package executor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return e.run(exec.CommandContext(ctx, name, args...), name)
}

// ExecuteInDir runs an external command in a specific working directory
func (e *implExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return e.run(cmd, name)
}

func (e *implExecutor) run(cmd *exec.Cmd, name string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(name, err, stderr.String())
	}

	return stdout.String(), nil
}

// Start launches name without waiting for it. The caller owns the returned
// Process and must Wait on it.
func (e *implExecutor) Start(ctx context.Context, name string, args ...string) (Process, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe for '%s': %w", name, err)
	}

	p := &implProcess{cmd: cmd, stdin: stdin, name: name}
	cmd.Stderr = &p.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start '%s': %w", name, err)
	}

	return p, nil
}

func (e *implExecutor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

type implProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	name   string
	stderr syncBuffer
}

func (p *implProcess) Stdin() io.WriteCloser { return p.stdin }

func (p *implProcess) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return commandError(p.name, err, p.stderr.String())
	}
	return nil
}

func (p *implProcess) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *implProcess) Stderr() string { return p.stderr.String() }

// commandError includes stderr in the error message for debugging
func commandError(name string, err error, stderr string) error {
	stderrStr := strings.TrimSpace(stderr)
	if stderrStr != "" {
		return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, tail(stderrStr, 2000))
	}
	return fmt.Errorf("command '%s' failed: %w", name, err)
}

// tail keeps the last n bytes; ffmpeg is chatty and the useful line is last.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}

// syncBuffer is written by the exec copy goroutine and read by callers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

package executor

import (
	"context"
	"io"
)

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	// Start launches a long-running command with a writable stdin.
	Start(ctx context.Context, name string, args ...string) (Process, error)
	LookPath(name string) (string, error)
}

// Process is a started command.
type Process interface {
	// Stdin is the write end of the process's standard input.
	Stdin() io.WriteCloser
	// Wait blocks until the process exits. Safe to call once.
	Wait() error
	Kill() error
	// Stderr returns what the process has written to stderr so far.
	Stderr() string
}

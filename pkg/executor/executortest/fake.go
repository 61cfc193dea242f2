// Package executortest provides a scriptable executor.Executor for tests.
package executortest

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/meetscribe/pkg/executor"
)

// Call records one Execute/ExecuteInDir/Start invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Fake is an executor.Executor whose behaviour is set per command name.
type Fake struct {
	mu sync.Mutex

	// Handlers maps a command name to the function that runs it.
	// Commands without a handler succeed with empty output.
	Handlers map[string]func(args []string) (string, error)
	// Missing lists commands LookPath should report as absent.
	Missing map[string]bool
	// Processes maps a command name to the process Start returns.
	Processes map[string]*Process

	Calls []Call
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		Handlers:  map[string]func([]string) (string, error){},
		Missing:   map[string]bool{},
		Processes: map[string]*Process{},
	}
}

func (f *Fake) record(dir, name string, args []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Dir: dir, Name: name, Args: append([]string(nil), args...)})
}

// CallsTo returns the recorded calls for name.
func (f *Fake) CallsTo(name string) []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Call
	for _, c := range f.Calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *Fake) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.record(dir, name, args)
	if h, ok := f.Handlers[name]; ok {
		return h(args)
	}
	return "", nil
}

func (f *Fake) Start(ctx context.Context, name string, args ...string) (executor.Process, error) {
	f.record("", name, args)
	p, ok := f.Processes[name]
	if !ok {
		return nil, fmt.Errorf("start '%s': no fake process", name)
	}
	return p, nil
}

func (f *Fake) LookPath(name string) (string, error) {
	if f.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Process is a fake executor.Process. It exits when something is written to
// stdin (if ExitOnInput) or when Exit is called.
type Process struct {
	ExitOnInput bool
	ExitErr     error
	StderrText  string

	mu     sync.Mutex
	input  strings.Builder
	done   chan struct{}
	once   sync.Once
	killed bool
}

// NewProcess returns a fake process that stays alive until input or Exit.
func NewProcess(exitOnInput bool) *Process {
	return &Process{ExitOnInput: exitOnInput, done: make(chan struct{})}
}

// Exit makes Wait return err.
func (p *Process) Exit(err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.ExitErr = err
		p.mu.Unlock()
		close(p.done)
	})
}

// Input returns everything written to stdin.
func (p *Process) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.input.String()
}

// Killed reports whether Kill was called.
func (p *Process) Killed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.killed
}

func (p *Process) Stdin() io.WriteCloser { return stdin{p} }

func (p *Process) Wait() error {
	<-p.done
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ExitErr
}

func (p *Process) Kill() error {
	p.mu.Lock()
	p.killed = true
	p.mu.Unlock()
	p.Exit(fmt.Errorf("signal: killed"))
	return nil
}

func (p *Process) Stderr() string { return p.StderrText }

type stdin struct{ p *Process }

func (s stdin) Write(b []byte) (int, error) {
	s.p.mu.Lock()
	s.p.input.Write(b)
	s.p.mu.Unlock()
	if s.p.ExitOnInput {
		s.p.Exit(nil)
	}
	return len(b), nil
}

func (s stdin) Close() error { return nil }

// Package testing provides test doubles for the exec package.
package testing

import (
	"context"
	"io"
	"sync"

	"github.com/rileyhilliard/stackctl/internal/exec"
)

// Response scripts the outcome of one Run call.
type Response struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Call records one Run invocation.
type Call struct {
	Argv  []string
	Stdin []byte // drained stdin, if any was attached
	Env   []string
}

// FakeRunner records commands instead of executing them.
// Responses are consumed in order; once exhausted every call succeeds with exit 0.
type FakeRunner struct {
	mu        sync.Mutex
	Responses []Response
	Calls     []Call
}

// NewFakeRunner creates a runner that replays the given responses.
func NewFakeRunner(responses ...Response) *FakeRunner {
	return &FakeRunner{Responses: responses}
}

// Run implements exec.Runner.
func (f *FakeRunner) Run(ctx context.Context, cmd exec.Command) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := Call{
		Argv: append([]string(nil), cmd.Argv...),
		Env:  append([]string(nil), cmd.Env...),
	}
	if cmd.Stdin != nil {
		call.Stdin, _ = io.ReadAll(cmd.Stdin)
	}
	f.Calls = append(f.Calls, call)

	var resp Response
	if len(f.Responses) > 0 {
		resp = f.Responses[0]
		f.Responses = f.Responses[1:]
	}

	if resp.Err != nil {
		return -1, resp.Err
	}
	if cmd.Stdout != nil && resp.Stdout != "" {
		if _, err := io.WriteString(cmd.Stdout, resp.Stdout); err != nil {
			return -1, err
		}
	}
	if cmd.Stderr != nil && resp.Stderr != "" {
		_, _ = io.WriteString(cmd.Stderr, resp.Stderr)
	}
	return resp.ExitCode, nil
}

// LastArgv returns the argv of the most recent call, or nil.
func (f *FakeRunner) LastArgv() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Calls) == 0 {
		return nil
	}
	return f.Calls[len(f.Calls)-1].Argv
}

// CallCount returns the number of recorded calls.
func (f *FakeRunner) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}

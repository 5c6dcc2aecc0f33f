// Package exec runs external tools for stackctl.
//
// Every component that shells out goes through Runner, so argument-vector
// handling, stdio passthrough, exit-code propagation and interrupt forwarding
// live in one place.
package exec

import (
	"context"
	"io"
)

// Command is a single external process invocation.
type Command struct {
	// Argv is the program followed by its arguments, one token per element.
	Argv []string

	// Redacted marks argv positions holding secrets. Display hides them.
	Redacted map[int]bool

	// Env entries (KEY=VALUE) appended to the inherited environment.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Display returns argv with redacted positions masked, for logs and --dry-run.
func (c Command) Display() []string {
	out := make([]string, len(c.Argv))
	for i, a := range c.Argv {
		if c.Redacted[i] {
			out[i] = "****"
			continue
		}
		out[i] = a
	}
	return out
}

// Runner runs an argument vector as an external process.
type Runner interface {
	// Run blocks until the process exits and returns its exit code.
	// err is non-nil only if the process could not be started.
	Run(ctx context.Context, cmd Command) (exitCode int, err error)
}

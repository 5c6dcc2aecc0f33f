// Package reset tears a stack down together with its volumes, after the
// operator confirms.
package reset

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/exec"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
)

// Outcome reports whether the reset ran.
type Outcome int

const (
	Aborted Outcome = iota
	Proceeded
)

func (o Outcome) String() string {
	if o == Proceeded {
		return "proceeded"
	}
	return "aborted"
}

// Engine runs a confirmed "down --volumes" for a target.
type Engine struct {
	Runner     exec.Runner
	Dispatcher *stack.Dispatcher
	Confirm    ui.Confirmer

	// Env is passed to the engine process (local override values).
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Log    logger.Logger
}

// Prompt is the question shown before resetting target.
func Prompt(target stack.Target) string {
	return fmt.Sprintf("This removes all %s containers AND volumes (%s). Continue?", target.Mode, target.Namespace)
}

// Run asks for confirmation and, on an explicit yes, removes the target's
// containers and volumes. Declining returns Aborted with a nil error.
// A non-zero exit from the engine is returned as an *errors.ExitError.
func (e *Engine) Run(ctx context.Context, target stack.Target) (Outcome, error) {
	log := e.Log
	if log == nil {
		log = logger.Noop()
	}

	ok, err := e.Confirm.Confirm(Prompt(target))
	if err != nil {
		return Aborted, errors.WrapWithCode(err, errors.ErrIO, "Couldn't read confirmation", "")
	}
	if !ok {
		log.Debug("reset of %s declined", target.Namespace)
		return Aborted, nil
	}

	plan, err := e.Dispatcher.Dispatch("down", target, "", []string{"--volumes"})
	if err != nil {
		return Aborted, err
	}

	code, err := e.Runner.Run(ctx, exec.Command{
		Argv:   plan.Argv,
		Env:    e.Env,
		Stdin:  e.Stdin,
		Stdout: e.Stdout,
		Stderr: e.Stderr,
	})
	if err != nil {
		return Proceeded, err
	}
	if code != 0 {
		return Proceeded, errors.NewExitError(code)
	}
	return Proceeded, nil
}

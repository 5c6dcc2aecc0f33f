package exec

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/rileyhilliard/stackctl/internal/util"
)

// DefaultGracePeriod is how long an interrupted child gets to exit before it is killed.
const DefaultGracePeriod = 10 * time.Second

// interruptedExitCode is reported when the operator interrupted a child that
// then died from the forwarded signal (shell convention for SIGINT).
const interruptedExitCode = 130

// LocalRunner runs commands as direct child processes of stackctl.
// The argument vector is handed to the OS as-is; no shell is involved.
type LocalRunner struct {
	// GracePeriod bounds the wait after an interrupt is forwarded.
	GracePeriod time.Duration
	Log         logger.Logger
}

// NewLocalRunner creates a runner with the default grace period.
func NewLocalRunner(log logger.Logger) *LocalRunner {
	if log == nil {
		log = logger.Noop()
	}
	return &LocalRunner{GracePeriod: DefaultGracePeriod, Log: log}
}

// Run executes cmd and waits for it to finish.
//
// A non-zero exit is not an error: the exit code is returned verbatim with a
// nil error. An error is returned only when the process could not be started.
// When ctx is cancelled the child receives an interrupt, and is killed if it
// is still alive after GracePeriod.
func (r *LocalRunner) Run(ctx context.Context, cmd Command) (int, error) {
	if len(cmd.Argv) == 0 {
		return -1, errors.New(errors.ErrExec,
			"Nothing to run",
			"This shouldn't happen - please report this bug!")
	}

	r.Log.Debug("exec: %s", util.FormatArgv(cmd.Display()))

	command := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	command.Cancel = func() error {
		return command.Process.Signal(os.Interrupt)
	}
	command.WaitDelay = r.GracePeriod

	if len(cmd.Env) > 0 {
		command.Env = append(os.Environ(), cmd.Env...)
	}
	command.Stdin = cmd.Stdin
	command.Stdout = cmd.Stdout
	command.Stderr = cmd.Stderr

	runErr := command.Run()

	// ProcessState is only set once the child actually ran.
	if state := command.ProcessState; state != nil {
		code := state.ExitCode()
		if code < 0 {
			// Terminated by a signal.
			if ctx.Err() != nil {
				code = interruptedExitCode
			} else {
				code = 1
			}
		}
		return code, nil
	}

	return -1, errors.WrapWithCode(runErr, errors.ErrExec,
		"Couldn't start "+cmd.Argv[0],
		"Make sure "+cmd.Argv[0]+" is installed and on your PATH.")
}

// Capture runs cmd through r and collects stdout and stderr instead of
// streaming them. Any writers already set on cmd are replaced.
func Capture(ctx context.Context, r Runner, cmd Command) (stdout, stderr []byte, exitCode int, err error) {
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	exitCode, err = r.Run(ctx, cmd)
	return outBuf.Bytes(), errBuf.Bytes(), exitCode, err
}

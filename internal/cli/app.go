package cli

import (
	"io"
	"os"
	"time"

	"github.com/rileyhilliard/stackctl/internal/exec"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/rileyhilliard/stackctl/internal/ui"
)

// App holds the process-level collaborators commands run against.
type App struct {
	Runner exec.Runner

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Confirmer returns the gate used by reset and restore.
	Confirmer func() ui.Confirmer

	Now func() time.Time
	Log logger.Logger
}

// DefaultApp wires the App to the real terminal and process runner.
func DefaultApp() *App {
	log := logger.NewEnvLogger("[stackctl]")
	return &App{
		Runner: exec.NewLocalRunner(log),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Confirmer: func() ui.Confirmer {
			return ui.NewConfirmer(os.Stdin, os.Stdout)
		},
		Now: time.Now,
		Log: log,
	}
}

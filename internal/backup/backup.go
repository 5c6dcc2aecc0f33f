// Package backup dumps and restores the database of a stack through the
// engine's exec verb. Artifacts are gzip archives named after the mode and
// the moment they were taken.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/exec"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
)

// Options configures a Manager.
type Options struct {
	Runner   exec.Runner
	Engine   stack.Engine
	Database stack.Database
	Settings *config.Settings

	// Dir is the artifact directory, relative to the working directory.
	Dir string

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Stderr receives the dump and restore tool diagnostics.
	Stderr io.Writer

	Log logger.Logger
}

// Manager creates, lists and restores backup artifacts.
type Manager struct {
	opts Options
}

// NewManager creates a Manager, filling in defaults for unset options.
func NewManager(opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Log == nil {
		opts.Log = logger.Noop()
	}
	if opts.Settings == nil {
		opts.Settings = &config.Settings{}
	}
	return &Manager{opts: opts}
}

// Dir returns the artifact directory.
func (m *Manager) Dir() string {
	return m.opts.Dir
}

func (m *Manager) credentials(action string) (config.Credentials, error) {
	creds, ok := m.opts.Settings.Credentials()
	if !ok {
		return config.Credentials{}, errors.NewMissingCredentials(action)
	}
	return creds, nil
}

// Create dumps the target's database into a new artifact and returns its path.
//
// Credentials are checked before anything touches the filesystem or the
// engine. An artifact that already exists is never overwritten. A failed
// write to the artifact is an IO error even when the dump tool then exits
// non-zero on the broken pipe. Otherwise a non-zero dump exit is returned as
// an *errors.ExitError. Either way the partial artifact is removed.
func (m *Manager) Create(ctx context.Context, target stack.Target) (string, error) {
	creds, err := m.credentials("backup")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.opts.Dir, 0o755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrIO,
			"Couldn't create backup directory "+m.opts.Dir,
			"Check permissions on the working directory.")
	}

	path := filepath.Join(m.opts.Dir, ArtifactName(target.Mode, m.opts.Now()))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if os.IsExist(err) {
			return "", errors.New(errors.ErrIO,
				fmt.Sprintf("Backup %s already exists", path),
				"Wait a second and run the backup again, or move the existing file.")
		}
		return "", errors.WrapWithCode(err, errors.ErrIO,
			"Couldn't create "+path,
			"Check permissions on "+m.opts.Dir+".")
	}

	plan := stack.DumpPlan(m.opts.Engine, target, m.opts.Database, creds)
	m.opts.Log.Debug("backup %s into %s", target.Namespace, path)

	out := &trackingWriter{w: f}
	code, runErr := m.opts.Runner.Run(ctx, exec.Command{
		Argv:     plan.Argv,
		Redacted: plan.Redacted,
		Stdout:   out,
		Stderr:   m.opts.Stderr,
	})
	closeErr := f.Close()

	switch {
	case runErr != nil:
		m.discard(path)
		return "", runErr
	case out.err != nil:
		m.discard(path)
		return "", errors.WrapWithCode(out.err, errors.ErrIO,
			"Couldn't write "+path,
			"Check free disk space.")
	case closeErr != nil:
		m.discard(path)
		return "", errors.WrapWithCode(closeErr, errors.ErrIO,
			"Couldn't finish writing "+path,
			"Check free disk space.")
	case code != 0:
		m.discard(path)
		return "", errors.NewExitError(code)
	}

	return path, nil
}

func (m *Manager) discard(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.opts.Log.Warn("couldn't remove partial backup %s: %v", path, err)
	}
}

// RestoreOutcome reports whether a restore ran.
type RestoreOutcome int

const (
	RestoreAborted RestoreOutcome = iota
	RestoreProceeded
)

// Resolve turns a restore argument into an artifact path. A bare file name
// is looked up in the artifact directory.
func (m *Manager) Resolve(name string) string {
	if filepath.Base(name) == name {
		if _, err := os.Stat(name); err != nil {
			return filepath.Join(m.opts.Dir, name)
		}
	}
	return name
}

// Restore streams the artifact at path into the target's database, dropping
// each collection before it is restored. The operator must confirm first;
// anything but an explicit yes returns RestoreAborted with no error.
func (m *Manager) Restore(ctx context.Context, target stack.Target, path string, confirm ui.Confirmer) (RestoreOutcome, error) {
	creds, err := m.credentials("restore")
	if err != nil {
		return RestoreAborted, err
	}

	f, err := os.Open(path)
	if err != nil {
		return RestoreAborted, errors.WrapWithCode(err, errors.ErrIO,
			"Couldn't open backup "+path,
			"Run 'stackctl backup list' to see the available backups.")
	}
	defer f.Close()

	prompt := fmt.Sprintf("Restore %s into the %s database (%s)? Existing collections will be dropped.",
		filepath.Base(path), target.Mode, target.Namespace)
	ok, err := confirm.Confirm(prompt)
	if err != nil {
		return RestoreAborted, errors.WrapWithCode(err, errors.ErrIO,
			"Couldn't read confirmation", "")
	}
	if !ok {
		return RestoreAborted, nil
	}

	plan := stack.RestorePlan(m.opts.Engine, target, m.opts.Database, creds)
	m.opts.Log.Debug("restore %s from %s", target.Namespace, path)

	code, err := m.opts.Runner.Run(ctx, exec.Command{
		Argv:     plan.Argv,
		Redacted: plan.Redacted,
		Stdin:    f,
		Stdout:   m.opts.Stderr,
		Stderr:   m.opts.Stderr,
	})
	if err != nil {
		return RestoreProceeded, err
	}
	if code != 0 {
		return RestoreProceeded, errors.NewExitError(code)
	}
	return RestoreProceeded, nil
}

// trackingWriter remembers the first write error so it can be reported
// after the child exits.
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if t.err != nil {
		return 0, t.err
	}
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}

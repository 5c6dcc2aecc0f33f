package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/stack"
)

// ProjectFileCheck reports whether a project file is in use and valid.
// Running without one is fine; defaults apply.
type ProjectFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
}

func (c *ProjectFileCheck) Name() string     { return "project_file" }
func (c *ProjectFileCheck) Category() string { return CategoryConfig }

func (c *ProjectFileCheck) Run(_ context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding project file: %v", err),
			Suggestion: "Check the --config path",
		}
	}
	if path == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: fmt.Sprintf("No %s, using defaults", config.ConfigFileName),
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load %s", filepath.Base(path)),
			Suggestion: "Check the YAML syntax in your project file",
		}
	}
	if err := config.Validate(cfg); err != nil {
		res := CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s is invalid", filepath.Base(path)),
			Suggestion: "Fix the field above, or run 'stackctl init --force' to start over",
		}
		var cfgErr *errors.Error
		if stderrors.As(err, &cfgErr) {
			res.Message = fmt.Sprintf("%s: %s", filepath.Base(path), cfgErr.Message)
		}
		return res
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Project file: %s", filepath.Base(path)),
	}
}

// ComposeFileCheck verifies the configuration file for one mode exists.
type ComposeFileCheck struct {
	Target stack.Target
}

func (c *ComposeFileCheck) Name() string     { return "compose_file_" + string(c.Target.Mode) }
func (c *ComposeFileCheck) Category() string { return CategoryConfig }

func (c *ComposeFileCheck) Run(_ context.Context) CheckResult {
	info, err := os.Stat(c.Target.ConfigPath)
	switch {
	case os.IsNotExist(err):
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s: %s not found", c.Target.Mode, c.Target.ConfigPath),
			Suggestion: fmt.Sprintf("Create %s, or point modes.%s.file at your compose file", c.Target.ConfigPath, c.Target.Mode),
		}
	case err != nil:
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("%s: can't read %s: %v", c.Target.Mode, c.Target.ConfigPath, err),
		}
	case info.IsDir():
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("%s: %s is a directory", c.Target.Mode, c.Target.ConfigPath),
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %s (project %s)", c.Target.Mode, c.Target.ConfigPath, c.Target.Namespace),
	}
}

package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rileyhilliard/stackctl/internal/exec"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/util"
)

// EngineCheck verifies the orchestration engine starts and reports a version.
type EngineCheck struct {
	Runner exec.Runner
	Engine stack.Engine
}

func (c *EngineCheck) Name() string     { return "engine" }
func (c *EngineCheck) Category() string { return CategoryEngine }

func (c *EngineCheck) Run(ctx context.Context) CheckResult {
	argv := append([]string{c.Engine.Binary}, c.Engine.Compose...)
	argv = append(argv, "version")
	display := util.FormatArgv(argv)

	stdout, stderr, code, err := exec.Capture(ctx, c.Runner, exec.Command{Argv: argv})
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("Couldn't run %s", display),
			Suggestion: fmt.Sprintf("Install %s, or set engine.binary in .stackctl.yaml", c.Engine.Binary),
		}
	}
	if code != 0 {
		detail := firstLine(string(stderr))
		if detail == "" {
			detail = fmt.Sprintf("exit code %d", code)
		}
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s failed: %s", display, detail),
			Suggestion: "Make sure the compose plugin is installed and the engine daemon is running",
		}
	}

	version := firstLine(string(stdout))
	if version == "" {
		version = display + " works"
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: version,
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

package doctor

import (
	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/exec"
	"github.com/rileyhilliard/stackctl/internal/stack"
)

// Inputs are what the checks inspect.
type Inputs struct {
	Runner     exec.Runner
	Engine     stack.Engine
	Targets    []stack.Target
	ConfigPath string
	EnvFile    string
	Settings   *config.Settings
}

// Collect builds the full check list in display order.
func Collect(in Inputs) []Check {
	checks := []Check{
		&EngineCheck{Runner: in.Runner, Engine: in.Engine},
		&ProjectFileCheck{ConfigPath: in.ConfigPath},
	}
	for _, t := range in.Targets {
		checks = append(checks, &ComposeFileCheck{Target: t})
	}
	checks = append(checks,
		&EnvFileCheck{Path: in.EnvFile},
		&CredentialsCheck{Settings: in.Settings},
		&GatewayPortCheck{Settings: in.Settings},
	)
	return checks
}

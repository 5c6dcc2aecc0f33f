package stack

import (
	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/util"
)

// Engine is the orchestration engine invocation prefix.
type Engine struct {
	// Binary is the container CLI, also used for "exec <container>".
	Binary string
	// Compose selects the compose subcommand (["compose"] for docker compose).
	Compose []string
}

// EngineFromConfig reads the engine section of the project config.
func EngineFromConfig(cfg *config.Config) Engine {
	return Engine{
		Binary:  cfg.Engine.Binary,
		Compose: append([]string(nil), cfg.Engine.Compose...),
	}
}

func (e Engine) composePrefix() []string {
	argv := make([]string, 0, 1+len(e.Compose))
	argv = append(argv, e.Binary)
	return append(argv, e.Compose...)
}

// Plan is a ready-to-run argument vector.
type Plan struct {
	Argv []string

	// Redacted marks argv positions holding secrets.
	Redacted map[int]bool

	// Interactive plans need the operator's stdin attached.
	Interactive bool
}

// Display returns argv with secrets masked.
func (p Plan) Display() []string {
	out := make([]string, len(p.Argv))
	for i, a := range p.Argv {
		if p.Redacted[i] {
			out[i] = "****"
			continue
		}
		out[i] = a
	}
	return out
}

// String renders the plan as a shell-quoted command line with secrets masked.
func (p Plan) String() string {
	return util.FormatArgv(p.Display())
}

// Compose builds
//
//	<engine> -f <configPath> -p <namespace> <verb> [extra...] [service]
//
// Extra arguments come before the service so flags bind to the verb instead
// of being read as another service name. Every token stays a separate argv
// element; nothing is ever joined into a shell string.
func Compose(engine Engine, target Target, verb, service string, extra []string) Plan {
	argv := engine.composePrefix()
	argv = append(argv, "-f", target.ConfigPath, "-p", target.Namespace, verb)
	argv = append(argv, extra...)
	if service != "" {
		argv = append(argv, service)
	}
	return Plan{Argv: argv}
}

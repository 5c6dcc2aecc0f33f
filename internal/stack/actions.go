package stack

import (
	"fmt"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
)

// ActionSpec binds an action name to an engine verb and its defaults.
type ActionSpec struct {
	Name string
	Verb string

	// DefaultArgs always precede the caller's extra arguments.
	DefaultArgs []string

	// DefaultService applies only when the caller names no service.
	DefaultService string

	// TrailingArgs follow the service (the command run inside a container).
	TrailingArgs []string

	Interactive bool
	Description string
}

// BuiltinActions is the static action table.
var BuiltinActions = []ActionSpec{
	{Name: "up", Verb: "up", Description: "Start services"},
	{Name: "down", Verb: "down", Description: "Stop and remove services"},
	{Name: "build", Verb: "build", Description: "Build service images"},
	{Name: "logs", Verb: "logs", DefaultArgs: []string{"-f"}, Description: "Follow service logs"},
	{Name: "restart", Verb: "restart", Description: "Restart services"},
	{
		Name:           "shell",
		Verb:           "exec",
		DefaultService: "backend",
		TrailingArgs:   []string{"sh"},
		Interactive:    true,
		Description:    "Open a shell in a service container (default: backend)",
	},
	{Name: "ps", Verb: "ps", Description: "List service containers"},
}

// Dispatcher looks actions up in the table and composes their plans.
type Dispatcher struct {
	engine  Engine
	actions []ActionSpec
	byName  map[string]int
}

// NewDispatcher builds a dispatcher over BuiltinActions, applying the shell
// settings from the project config.
func NewDispatcher(cfg *config.Config) *Dispatcher {
	actions := make([]ActionSpec, len(BuiltinActions))
	copy(actions, BuiltinActions)

	byName := make(map[string]int, len(actions))
	for i := range actions {
		if actions[i].Name == "shell" {
			if cfg.Shell.Service != "" {
				actions[i].DefaultService = cfg.Shell.Service
			}
			if len(cfg.Shell.Command) > 0 {
				actions[i].TrailingArgs = append([]string(nil), cfg.Shell.Command...)
			}
		}
		byName[actions[i].Name] = i
	}

	return &Dispatcher{
		engine:  EngineFromConfig(cfg),
		actions: actions,
		byName:  byName,
	}
}

// Engine returns the engine the dispatcher composes for.
func (d *Dispatcher) Engine() Engine {
	return d.engine
}

// Actions returns the action table in declaration order.
func (d *Dispatcher) Actions() []ActionSpec {
	return append([]ActionSpec(nil), d.actions...)
}

// Lookup finds an action by name.
func (d *Dispatcher) Lookup(name string) (ActionSpec, bool) {
	i, ok := d.byName[name]
	if !ok {
		return ActionSpec{}, false
	}
	return d.actions[i], true
}

// Dispatch composes the plan for an action. An empty service means all
// services unless the action has a default service.
func (d *Dispatcher) Dispatch(name string, target Target, service string, extra []string) (Plan, error) {
	spec, ok := d.Lookup(name)
	if !ok {
		return Plan{}, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown action '%s'", name),
			"Run 'stackctl help' to see the available actions.")
	}

	if service == "" {
		service = spec.DefaultService
	}

	args := make([]string, 0, len(spec.DefaultArgs)+len(extra))
	args = append(args, spec.DefaultArgs...)
	args = append(args, extra...)

	plan := Compose(d.engine, target, spec.Verb, service, args)
	plan.Argv = append(plan.Argv, spec.TrailingArgs...)
	plan.Interactive = spec.Interactive
	return plan, nil
}

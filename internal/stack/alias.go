package stack

import (
	"fmt"

	"github.com/rileyhilliard/stackctl/internal/errors"
)

// MongoShellAlias opens the database client instead of a generic shell.
const MongoShellAlias = "mongo-shell"

// AliasSpec pre-binds a mode and/or service onto an action.
// Empty Mode means the caller's mode applies.
type AliasSpec struct {
	Name        string
	Mode        Mode
	Service     string
	Action      string
	Description string
}

// Aliases is the static alias table.
var Aliases = []AliasSpec{
	{Name: "dev-up", Mode: Dev, Action: "up", Description: "Start the development stack"},
	{Name: "dev-down", Mode: Dev, Action: "down", Description: "Stop the development stack"},
	{Name: "dev-build", Mode: Dev, Action: "build", Description: "Build development images"},
	{Name: "dev-logs", Mode: Dev, Action: "logs", Description: "Follow development logs"},
	{Name: "dev-restart", Mode: Dev, Action: "restart", Description: "Restart development services"},
	{Name: "dev-shell", Mode: Dev, Service: "backend", Action: "shell", Description: "Shell into the development backend"},
	{Name: "dev-ps", Mode: Dev, Action: "ps", Description: "List development containers"},
	{Name: "prod-up", Mode: Prod, Action: "up", Description: "Start the production stack"},
	{Name: "prod-down", Mode: Prod, Action: "down", Description: "Stop the production stack"},
	{Name: "prod-build", Mode: Prod, Action: "build", Description: "Build production images"},
	{Name: "prod-logs", Mode: Prod, Action: "logs", Description: "Follow production logs"},
	{Name: "prod-restart", Mode: Prod, Action: "restart", Description: "Restart production services"},
	{Name: "prod-shell", Mode: Prod, Service: "backend", Action: "shell", Description: "Shell into the production backend"},
	{Name: "prod-ps", Mode: Prod, Action: "ps", Description: "List production containers"},
	{Name: "backend-logs", Service: "backend", Action: "logs", Description: "Follow backend logs"},
	{Name: "gateway-logs", Service: "gateway", Action: "logs", Description: "Follow gateway logs"},
	{Name: "mongo-logs", Service: "mongo", Action: "logs", Description: "Follow database logs"},
	{Name: "backend-restart", Service: "backend", Action: "restart", Description: "Restart the backend"},
	{Name: "gateway-restart", Service: "gateway", Action: "restart", Description: "Restart the gateway"},
	{Name: MongoShellAlias, Description: "Open an authenticated database client"},
}

// LookupAlias finds an alias by name.
func LookupAlias(name string) (AliasSpec, bool) {
	for _, a := range Aliases {
		if a.Name == name {
			return a, true
		}
	}
	return AliasSpec{}, false
}

// Invocation is what the operator asked for on the command line.
type Invocation struct {
	// Mode is the requested mode token, possibly empty.
	Mode string
	// ModeExplicit is set when the operator supplied Mode themselves.
	ModeExplicit bool
	Service      string
	Extra        []string
}

// Apply fills the alias's bound fields into inv.
//
// A service given by the caller beats the alias service. A mode-qualified
// alias binds its mode: an explicit mode that agrees is accepted, one that
// conflicts is rejected rather than silently ignored.
func (a AliasSpec) Apply(inv Invocation) (Invocation, error) {
	if a.Mode != "" {
		if inv.ModeExplicit {
			if requested, _ := ParseMode(inv.Mode); requested != a.Mode {
				return inv, errors.New(errors.ErrConfig,
					fmt.Sprintf("'%s' always targets %s, but --mode %s was given", a.Name, a.Mode, inv.Mode),
					fmt.Sprintf("Drop --mode, or use the plain action instead: stackctl %s --mode %s", a.Action, inv.Mode))
			}
		}
		inv.Mode = string(a.Mode)
	}

	if inv.Service == "" {
		inv.Service = a.Service
	}
	return inv, nil
}

package cli

import (
	"fmt"

	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/exec"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

// addActionCommands registers one command per entry in the action table.
func (c *commands) addActionCommands(root *cobra.Command) {
	for _, spec := range stack.BuiltinActions {
		name := spec.Name
		root.AddCommand(&cobra.Command{
			Use:     name + " [-- extra...]",
			Short:   spec.Description,
			GroupID: groupActions,
			Args:    cobra.ArbitraryArgs,
			Example: fmt.Sprintf("  stackctl %s --mode prod\n  stackctl %s --service backend", name, name),
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.runAction(cmd, name, c.invocation(args))
			},
		})
	}
}

// addAliasCommands registers the alias table. mongo-shell has its own
// composition; every other alias pre-binds fields and defers to its action.
func (c *commands) addAliasCommands(root *cobra.Command) {
	for _, alias := range stack.Aliases {
		cmd := &cobra.Command{
			Use:     alias.Name + " [-- extra...]",
			Short:   alias.Description,
			GroupID: groupAliases,
			Args:    cobra.ArbitraryArgs,
		}
		if alias.Name == stack.MongoShellAlias {
			cmd.RunE = func(cmd *cobra.Command, args []string) error {
				return c.runMongoShell(cmd, c.invocation(args))
			}
		} else {
			cmd.RunE = func(cmd *cobra.Command, args []string) error {
				inv, err := alias.Apply(c.invocation(args))
				if err != nil {
					return err
				}
				return c.runAction(cmd, alias.Action, inv)
			}
		}
		root.AddCommand(cmd)
	}
}

func (c *commands) runAction(cmd *cobra.Command, action string, inv stack.Invocation) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	target := s.selector.Resolve(inv.Mode)

	plan, err := s.dispatcher.Dispatch(action, target, inv.Service, inv.Extra)
	if err != nil {
		return err
	}
	return c.execute(cmd, s, plan)
}

func (c *commands) runMongoShell(cmd *cobra.Command, inv stack.Invocation) error {
	s, err := c.session()
	if err != nil {
		return err
	}
	creds, ok := s.settings.Credentials()
	if !ok {
		return errors.NewMissingCredentials(stack.MongoShellAlias)
	}
	target := s.selector.Resolve(inv.Mode)

	plan := stack.DatabaseShell(stack.EngineFromConfig(s.cfg), target, stack.DatabaseFromConfig(s.cfg), creds, inv.Service, inv.Extra)
	return c.execute(cmd, s, plan)
}

// execute hands a plan to the runner with the operator's stdio attached, or
// prints it under --dry-run. Interactive plans also get stdin.
func (c *commands) execute(cmd *cobra.Command, s *session, plan stack.Plan) error {
	if c.dryRun() {
		fmt.Fprintln(c.app.Stdout, plan.String())
		return nil
	}

	command := exec.Command{
		Argv:     plan.Argv,
		Redacted: plan.Redacted,
		Env:      s.settings.Overrides,
		Stdout:   c.app.Stdout,
		Stderr:   c.app.Stderr,
	}
	if plan.Interactive {
		command.Stdin = c.app.Stdin
	}

	code, err := c.app.Runner.Run(cmd.Context(), command)
	if err != nil {
		return err
	}
	if code != 0 {
		return errors.NewExitError(code)
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/rileyhilliard/stackctl/internal/help"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

const usageLine = "stackctl <action> [--mode dev|prod] [--service NAME] [-- extra...]"

// setupHelp replaces cobra's root help with the catalog listing. Help for a
// single subcommand keeps cobra's default rendering.
func (c *commands) setupHelp(root *cobra.Command) {
	defaultHelp := root.HelpFunc()
	root.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd == root {
			_ = c.printCatalog(cmd)
			return
		}
		defaultHelp(cmd, args)
	})

	root.SetHelpCommand(&cobra.Command{
		Use:   "help [command]",
		Short: "Show the command listing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.printCatalog(cmd)
			}
			target, _, err := root.Find(args)
			if err != nil || target == root {
				return c.printCatalog(cmd)
			}
			return target.Help()
		},
	})
}

func (c *commands) printCatalog(_ *cobra.Command) error {
	sections := stack.Catalog(stack.BuiltinActions)
	_, err := fmt.Fprint(c.app.Stdout, help.Render(usageLine, sections))
	return err
}

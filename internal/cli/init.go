package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/ui"
	"github.com/spf13/cobra"
)

func (c *commands) initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .stackctl.yaml",
		Args:  cobra.NoArgs,
		Long: `Write a project file with every setting at its default value.

stackctl works without a project file; init is for when the compose file
names, namespaces or database tools differ from the defaults.

Examples:
  stackctl init
  stackctl init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.v.GetString(keyConfig)
			if path == "" {
				path = filepath.Join(".", config.ConfigFileName)
			}
			if err := config.WriteDefault(path, force); err != nil {
				return err
			}
			fmt.Fprintln(c.app.Stdout, ui.Success("Wrote "+path))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing project file")
	return cmd
}

package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/stackctl/internal/backup"
	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/health"
	"github.com/rileyhilliard/stackctl/internal/reset"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
	"github.com/spf13/cobra"
)

func (c *commands) backupManager(s *session) *backup.Manager {
	return backup.NewManager(backup.Options{
		Runner:   c.app.Runner,
		Engine:   stack.EngineFromConfig(s.cfg),
		Database: stack.DatabaseFromConfig(s.cfg),
		Settings: s.settings,
		Dir:      s.cfg.Backup.Dir,
		Now:      c.app.Now,
		Stderr:   c.app.Stderr,
		Log:      c.app.Log,
	})
}

func (c *commands) backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "backup",
		Short:   "Dump the database to backups/<mode>_<timestamp>.gz",
		GroupID: groupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Dump the database of the selected mode into a gzip archive.

The archive is written to the backup directory as <mode>_<YYYYMMDD_HHMMSS>.gz.
An existing archive is never overwritten. MONGO_USERNAME and MONGO_PASSWORD
must be set, in the environment or in the override file.

Examples:
  stackctl backup --mode prod
  stackctl backup list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			target := s.selector.Resolve(c.v.GetString(keyMode))

			if c.dryRun() {
				creds, ok := s.settings.Credentials()
				if !ok {
					return errors.NewMissingCredentials("backup")
				}
				plan := stack.DumpPlan(stack.EngineFromConfig(s.cfg), target, stack.DatabaseFromConfig(s.cfg), creds)
				out := filepath.Join(s.cfg.Backup.Dir, backup.ArtifactName(target.Mode, c.app.Now()))
				fmt.Fprintf(c.app.Stdout, "%s > %s\n", plan.String(), out)
				return nil
			}

			path, err := c.backupManager(s).Create(cmd.Context(), target)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.app.Stdout, ui.Success("Backup written to "+path))
			return nil
		},
	}
	cmd.AddCommand(c.backupListCmd())
	return cmd
}

func (c *commands) backupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List backup archives, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			artifacts, err := c.backupManager(s).List()
			if err != nil {
				return err
			}
			if len(artifacts) == 0 {
				fmt.Fprintln(c.app.Stdout, ui.Pending("No backups in "+s.cfg.Backup.Dir))
				return nil
			}

			rows := make([][]string, 0, len(artifacts))
			for _, a := range artifacts {
				rows = append(rows, []string{
					string(a.Mode),
					filepath.Base(a.Path),
					humanize.RelTime(a.TakenAt, c.app.Now(), "ago", "from now"),
					humanize.Bytes(uint64(a.Size)),
				})
			}
			fmt.Fprintln(c.app.Stdout, ui.RenderTable([]string{"MODE", "FILE", "TAKEN", "SIZE"}, rows))
			return nil
		},
	}
}

func (c *commands) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "restore <artifact>",
		Short:   "Restore the database from a backup artifact (asks first)",
		GroupID: groupMaintenance,
		Args:    cobra.ExactArgs(1),
		Long: `Stream a backup archive into the database of the selected mode.

Existing collections are dropped before they are restored, so stackctl asks
for confirmation first. A bare file name is looked up in the backup directory.

Examples:
  stackctl restore prod_20240101_120000.gz --mode prod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			target := s.selector.Resolve(c.v.GetString(keyMode))
			mgr := c.backupManager(s)
			path := mgr.Resolve(args[0])

			if c.dryRun() {
				creds, ok := s.settings.Credentials()
				if !ok {
					return errors.NewMissingCredentials("restore")
				}
				plan := stack.RestorePlan(stack.EngineFromConfig(s.cfg), target, stack.DatabaseFromConfig(s.cfg), creds)
				fmt.Fprintf(c.app.Stdout, "%s < %s\n", plan.String(), path)
				return nil
			}

			outcome, err := mgr.Restore(cmd.Context(), target, path, c.app.Confirmer())
			if err != nil {
				return err
			}
			if outcome == backup.RestoreAborted {
				fmt.Fprintln(c.app.Stdout, ui.Pending("Restore cancelled, nothing happened"))
				return nil
			}
			fmt.Fprintln(c.app.Stdout, ui.Success(fmt.Sprintf("Restored %s into %s", filepath.Base(path), target.Namespace)))
			return nil
		},
	}
}

func (c *commands) resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "reset",
		Short:   "Remove the stack and its volumes for the mode (asks first)",
		GroupID: groupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Stop the stack of the selected mode and delete its volumes.

All data in the stack's volumes is lost. stackctl asks first, and only an
explicit "y" or "yes" proceeds. Anything else leaves everything as it was.

Examples:
  stackctl reset
  stackctl reset --mode prod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			target := s.selector.Resolve(c.v.GetString(keyMode))

			if c.dryRun() {
				plan, err := s.dispatcher.Dispatch("down", target, "", []string{"--volumes"})
				if err != nil {
					return err
				}
				fmt.Fprintln(c.app.Stdout, plan.String())
				return nil
			}

			engine := &reset.Engine{
				Runner:     c.app.Runner,
				Dispatcher: s.dispatcher,
				Confirm:    c.app.Confirmer(),
				Env:        s.settings.Overrides,
				Stdout:     c.app.Stdout,
				Stderr:     c.app.Stderr,
				Log:        c.app.Log,
			}
			outcome, err := engine.Run(cmd.Context(), target)
			if err != nil {
				return err
			}
			if outcome == reset.Aborted {
				fmt.Fprintln(c.app.Stdout, ui.Pending("Reset cancelled, nothing happened"))
				return nil
			}
			fmt.Fprintln(c.app.Stdout, ui.Success(fmt.Sprintf("Reset %s", target.Namespace)))
			return nil
		},
	}
}

func (c *commands) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Short:   "Check the gateway and the backend through the gateway",
		GroupID: groupMaintenance,
		Args:    cobra.NoArgs,
		Long: `Probe the gateway and the backend (through the gateway) once each.

An endpoint is up only when it answers 200. The command reports both
endpoints and always exits 0.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session()
			if err != nil {
				return err
			}
			port, err := s.settings.Port()
			if err != nil {
				return err
			}
			prober := health.NewProber(s.cfg.Health, port, c.app.Log)

			start := time.Now()
			report := prober.Probe(cmd.Context())
			c.app.Log.Debug("health probes took %s", time.Since(start).Round(time.Millisecond))

			for _, r := range report.Results() {
				fmt.Fprintln(c.app.Stdout, healthLine(r))
			}
			return nil
		},
	}
}

func healthLine(r health.Result) string {
	if r.Status == health.Up {
		return ui.Success(fmt.Sprintf("%s up  %s", r.Name, ui.Muted(r.URL)))
	}
	return ui.Fail(fmt.Sprintf("%s down (%s)  %s", r.Name, r.Reason, ui.Muted(r.URL)))
}

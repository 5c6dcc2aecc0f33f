package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables bound to global flags.
const EnvPrefix = "STACKCTL"

// Viper keys for the global flags.
const (
	keyMode    = "mode"
	keyService = "service"
	keyEnvFile = "env-file"
	keyConfig  = "config"
	keyDryRun  = "dry-run"
	keyVerbose = "verbose"
	keyNoColor = "no-color"
)

// Command groups for cobra's own usage output.
const (
	groupActions     = "actions"
	groupAliases     = "aliases"
	groupMaintenance = "maintenance"
)

// Execute runs the root command and exits with the resulting code.
// SIGINT and SIGTERM cancel the command context, which forwards the
// interrupt to any running child.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Run(ctx, DefaultApp(), os.Args[1:])
	stop()
	os.Exit(exitCode(err, os.Stderr))
}

// Run executes one command line against app.
func Run(ctx context.Context, app *App, args []string) error {
	root := NewRootCmd(app)
	root.SetArgs(args)
	return friendlyError(root.ExecuteContext(ctx))
}

// exitCode maps a command error to the process exit code. Exit errors from
// external commands pass through silently; their output already reached
// the operator.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if code, ok := errors.GetExitCode(err); ok {
		return code
	}
	fmt.Fprint(stderr, err.Error())
	if !strings.HasSuffix(err.Error(), "\n") {
		fmt.Fprintln(stderr)
	}
	return 1
}

// NewRootCmd builds the full command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	c := &commands{app: app, v: v}

	root := &cobra.Command{
		Use:   "stackctl",
		Short: "Operate the development and production stacks",
		Long: `stackctl translates operational intents (start, stop, logs, shell, backup,
reset, health) into docker compose invocations, keeping the development and
production stacks on separate files, namespaces and volumes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if v.GetBool(keyNoColor) {
				ui.DisableColors()
			}
			logger.SetVerbose(v.GetBool(keyVerbose))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.printCatalog(cmd)
		},
	}
	root.SetIn(app.Stdin)
	root.SetOut(app.Stdout)
	root.SetErr(app.Stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid flags for '"+cmd.CommandPath()+"'",
			"Pass engine flags after '--', e.g. 'stackctl up -- --build'.")
	})

	flags := root.PersistentFlags()
	flags.String(keyMode, "", "deployment mode: dev or prod (env STACKCTL_MODE)")
	flags.String(keyService, "", "target a single service (env STACKCTL_SERVICE)")
	flags.String(keyEnvFile, config.DefaultEnvFile, "local override file")
	flags.String(keyConfig, "", "project file (default .stackctl.yaml if present)")
	flags.Bool(keyDryRun, false, "print the command instead of running it")
	flags.BoolP(keyVerbose, "v", false, "debug output")
	flags.Bool(keyNoColor, false, "disable colored output")
	_ = v.BindPFlags(flags)

	root.AddGroup(
		&cobra.Group{ID: groupActions, Title: "Actions:"},
		&cobra.Group{ID: groupAliases, Title: "Aliases:"},
		&cobra.Group{ID: groupMaintenance, Title: "Maintenance:"},
	)

	c.addActionCommands(root)
	c.addAliasCommands(root)
	root.AddCommand(
		c.backupCmd(),
		c.restoreCmd(),
		c.resetCmd(),
		c.healthCmd(),
		c.initCmd(),
		c.doctorCmd(),
		versionCmd(),
		completionCmd(root),
	)
	c.setupHelp(root)

	return root
}

// commands carries what every subcommand needs.
type commands struct {
	app *App
	v   *viper.Viper
}

// session is the resolved context for one invocation: project config and
// environment settings, loaded once per command.
type session struct {
	cfg        *config.Config
	settings   *config.Settings
	selector   *stack.Selector
	dispatcher *stack.Dispatcher
}

func (c *commands) session() (*session, error) {
	cfg, err := config.LoadOrDefault(c.v.GetString(keyConfig))
	if err != nil {
		return nil, err
	}
	settings, err := config.LoadSettings(c.v.GetString(keyEnvFile))
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:        cfg,
		settings:   settings,
		selector:   stack.NewSelector(cfg, c.app.Log),
		dispatcher: stack.NewDispatcher(cfg),
	}, nil
}

// invocation reads the mode and service the operator supplied.
func (c *commands) invocation(extra []string) stack.Invocation {
	return stack.Invocation{
		Mode:         c.v.GetString(keyMode),
		ModeExplicit: c.v.IsSet(keyMode),
		Service:      c.v.GetString(keyService),
		Extra:        extra,
	}
}

func (c *commands) dryRun() bool {
	return c.v.GetBool(keyDryRun)
}

// isUnknownCommandError checks if the error is from cobra not recognizing a command.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unknown command") || strings.Contains(msg, "unknown flag")
}

// extractUnknownCommand pulls the command name out of cobra's
// `unknown command "foo" for "stackctl"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// friendlyError rewrites cobra's unknown command error into a
// configuration error pointing at the catalog.
func friendlyError(err error) error {
	if err == nil || !isUnknownCommandError(err) {
		return err
	}
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return err
	}
	if name := extractUnknownCommand(err); name != "" && strings.Contains(err.Error(), "unknown command") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown action '%s'", name),
			"Run 'stackctl help' to see the available actions.")
	}
	return errors.WrapWithCode(err, errors.ErrConfig,
		"Invalid arguments",
		"Pass engine flags after '--', e.g. 'stackctl up -- --build'.")
}

package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"runtime"
	"strings"
	"testing"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
	exectesting "github.com/rileyhilliard/stackctl/internal/exec/testing"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_ListsEveryCommand(t *testing.T) {
	for _, args := range [][]string{{"help"}, {}, {"--help"}} {
		t.Run(strings.Join(append([]string{"stackctl"}, args...), " "), func(t *testing.T) {
			h := newHarness(t)

			h.mustRun(args...)

			out := h.out.String()
			for _, section := range stack.Catalog(stack.BuiltinActions) {
				assert.Contains(t, out, section.Title)
				for _, e := range section.Entries {
					assert.Contains(t, out, "  "+e.Name+" ", "missing %q", e.Name)
				}
			}
			assert.Zero(t, h.runner.CallCount())
		})
	}
}

func TestHelp_ForOneCommand(t *testing.T) {
	h := newHarness(t)

	h.mustRun("help", "reset")

	assert.Contains(t, h.out.String(), "delete its volumes")
}

func TestCatalogMatchesRegisteredCommands(t *testing.T) {
	root := NewRootCmd(newHarness(t).app())
	root.InitDefaultHelpCmd()

	for _, section := range stack.Catalog(stack.BuiltinActions) {
		for _, e := range section.Entries {
			cmd, _, err := root.Find([]string{e.Name})
			require.NoError(t, err, "catalog entry %q has no command", e.Name)
			assert.NotEqual(t, root, cmd, "catalog entry %q has no command", e.Name)
		}
	}
}

func TestUnknownAction(t *testing.T) {
	h := newHarness(t)

	err := h.run("upp")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "Unknown action 'upp'")
	assert.Zero(t, h.runner.CallCount())
}

func TestUnknownFlag(t *testing.T) {
	h := newHarness(t)

	err := h.run("up", "--build")

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "--")
	assert.Zero(t, h.runner.CallCount())
}

func TestIsUnknownCommandError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "unknown command error", err: stderrors.New(`unknown command "foo" for "stackctl"`), want: true},
		{name: "unknown flag error", err: stderrors.New(`unknown flag: --foo`), want: true},
		{name: "other error", err: stderrors.New("connection failed"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUnknownCommandError(tt.err))
		})
	}
}

func TestExtractUnknownCommand(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "standard cobra format", err: stderrors.New(`unknown command "foo" for "stackctl"`), want: "foo"},
		{name: "command with hyphen", err: stderrors.New(`unknown command "dev-upp" for "stackctl"`), want: "dev-upp"},
		{name: "no quotes returns empty", err: stderrors.New("unknown command foo"), want: ""},
		{name: "single quote returns empty", err: stderrors.New(`unknown command "foo`), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractUnknownCommand(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStderr string
	}{
		{name: "success", err: nil, wantCode: 0},
		{name: "engine exit code passes through", err: errors.NewExitError(42), wantCode: 42},
		{name: "interrupted child", err: errors.NewExitError(130), wantCode: 130},
		{name: "structured error", err: errors.New(errors.ErrConfig, "Unknown action 'x'", "Run 'stackctl help'"), wantCode: 1, wantStderr: "✗ Unknown action 'x'"},
		{name: "plain error", err: stderrors.New("boom"), wantCode: 1, wantStderr: "boom\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer

			code := exitCode(tt.err, &stderr)

			assert.Equal(t, tt.wantCode, code)
			if tt.wantStderr == "" {
				assert.Empty(t, stderr.String())
			} else {
				assert.Contains(t, stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestInit(t *testing.T) {
	h := newHarness(t)

	h.mustRun("init")

	cfg, err := config.Load(config.ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Modes, cfg.Modes)

	err = h.run("init")
	assert.True(t, errors.IsCode(err, errors.ErrConfig), "existing file needs --force")

	h.mustRun("init", "--force")
}

func TestInvalidProjectFile(t *testing.T) {
	h := newHarness(t)
	writeFile(t, config.ConfigFileName, "modes:\n  dev:\n    file: same.yml\n  prod:\n    file: same.yml\n")

	err := h.run("up")

	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Zero(t, h.runner.CallCount())
}

func TestProjectFileChangesComposition(t *testing.T) {
	h := newHarness(t)
	writeFile(t, config.ConfigFileName, "project: shop\nengine:\n  binary: podman\n")

	h.mustRun("up", "--mode", "prod")

	assert.Equal(t, []string{"podman", "compose", "-f", "docker-compose.prod.yml", "-p", "shop-prod", "up"}, h.runner.LastArgv())
}

func TestVersion(t *testing.T) {
	orig := []string{version, commit, date}
	t.Cleanup(func() { SetVersionInfo(orig[0], orig[1], orig[2]) })
	SetVersionInfo("1.2.3", "abc1234", "2025-01-08T12:00:00Z")

	h := newHarness(t)
	h.mustRun("version")

	out := h.out.String()
	assert.Contains(t, out, "stackctl v1.2.3")
	assert.Contains(t, out, "commit: abc1234")
	assert.Contains(t, out, "go: "+runtime.Version())

	h.mustRun("version", "--short")
	assert.Equal(t, "1.2.3\n", h.out.String())
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "dev", want: "dev"},
		{input: "1.2.3", want: "v1.2.3"},
		{input: "v1.2.3", want: "v1.2.3"},
		{input: "1.2.3-beta.1", want: "v1.2.3-beta.1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatVersion(tt.input))
	}
}

func TestCompletion(t *testing.T) {
	tests := []struct {
		shell string
		want  string
	}{
		{shell: "bash", want: "# bash completion"},
		{shell: "zsh", want: "#compdef stackctl"},
		{shell: "fish", want: "complete -c stackctl"},
		{shell: "powershell", want: "Register-ArgumentCompleter"},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			h := newHarness(t)

			h.mustRun("completion", tt.shell)

			assert.Contains(t, h.out.String(), tt.want)
		})
	}
}

func TestDoctor(t *testing.T) {
	h := newHarness(t, exectesting.Response{Stdout: "Docker Compose version v2.27.0\n"}).withCredentials()
	writeFile(t, "docker-compose.dev.yml", "services: {}\n")
	writeFile(t, "docker-compose.prod.yml", "services: {}\n")

	h.mustRun("doctor")

	out := h.out.String()
	assert.Contains(t, out, "Docker Compose version v2.27.0")
	assert.Contains(t, out, "Everything looks good")
	assert.Equal(t, []string{"docker", "compose", "version"}, h.runner.LastArgv())
}

func TestDoctor_FailuresExitOne(t *testing.T) {
	h := newHarness(t, exectesting.Response{Stdout: "Docker Compose version v2.27.0\n"})

	err := h.run("doctor", "--json")

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)

	var output DoctorOutput
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &output))
	assert.False(t, output.Summary.AllClear)
	assert.Equal(t, 2, output.Summary.Fail, "both compose files are missing")
	assert.Equal(t, 1, output.Summary.Warn, "credentials are missing")
	require.NotEmpty(t, output.Categories)
	assert.Equal(t, "ENGINE", output.Categories[0].Name)
}

package reset

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/errors"
	exectesting "github.com/rileyhilliard/stackctl/internal/exec/testing"
	"github.com/rileyhilliard/stackctl/internal/stack"
	"github.com/rileyhilliard/stackctl/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prodTarget = stack.Target{Mode: stack.Prod, ConfigPath: "docker-compose.prod.yml", Namespace: "app-prod"}

func newEngine(runner *exectesting.FakeRunner, answer string, prompt *bytes.Buffer) *Engine {
	return &Engine{
		Runner:     runner,
		Dispatcher: stack.NewDispatcher(config.DefaultConfig()),
		Confirm:    ui.LineConfirmer{In: strings.NewReader(answer), Out: prompt},
	}
}

func TestRun_Answers(t *testing.T) {
	tests := []struct {
		answer string
		want   Outcome
	}{
		{answer: "y\n", want: Proceeded},
		{answer: " y \n", want: Proceeded},
		{answer: "Y\n", want: Aborted},
		{answer: "yes\n", want: Aborted},
		{answer: "YES\n", want: Aborted},
		{answer: "\n", want: Aborted},
		{answer: "n\n", want: Aborted},
		{answer: "N\n", want: Aborted},
		{answer: "nope\n", want: Aborted},
		{answer: "", want: Aborted},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.answer), func(t *testing.T) {
			runner := exectesting.NewFakeRunner()
			var prompt bytes.Buffer

			outcome, err := newEngine(runner, tt.answer, &prompt).Run(context.Background(), prodTarget)

			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome)
			assert.Contains(t, prompt.String(), "prod")
			if tt.want == Proceeded {
				require.Equal(t, 1, runner.CallCount())
				assert.Equal(t, []string{
					"docker", "compose", "-f", "docker-compose.prod.yml", "-p", "app-prod", "down", "--volumes",
				}, runner.LastArgv())
			} else {
				assert.Zero(t, runner.CallCount())
			}
		})
	}
}

func TestRun_PropagatesExitCode(t *testing.T) {
	runner := exectesting.NewFakeRunner(exectesting.Response{ExitCode: 3})

	outcome, err := newEngine(runner, "y\n", &bytes.Buffer{}).Run(context.Background(), prodTarget)

	assert.Equal(t, Proceeded, outcome)
	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 3, code)
}

func TestPrompt_NamesMode(t *testing.T) {
	devTarget := stack.Target{Mode: stack.Dev, Namespace: "app-dev"}

	assert.Contains(t, Prompt(devTarget), "dev")
	assert.Contains(t, Prompt(devTarget), "app-dev")
	assert.Contains(t, Prompt(prodTarget), "prod")
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "proceeded", Proceeded.String())
	assert.Equal(t, "aborted", Aborted.String())
}

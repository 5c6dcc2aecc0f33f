package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"
	"time"

	exectesting "github.com/rileyhilliard/stackctl/internal/exec/testing"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/rileyhilliard/stackctl/internal/ui"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// harness runs command lines against a fake runner in a scratch directory.
type harness struct {
	t      *testing.T
	runner *exectesting.FakeRunner
	stdin  string
	answer string
	out    bytes.Buffer
	errOut bytes.Buffer
	log    *logger.BufferLogger
}

func newHarness(t *testing.T, responses ...exectesting.Response) *harness {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"MONGO_USERNAME", "MONGO_PASSWORD", "GATEWAY_PORT",
		"STACKCTL_MODE", "STACKCTL_SERVICE", "STACKCTL_DRY_RUN", "STACKCTL_CONFIG", "STACKCTL_ENV_FILE",
	} {
		t.Setenv(key, "")
	}
	ui.DisableColors()
	t.Cleanup(func() { logger.SetVerbose(false) })

	return &harness{
		t:      t,
		runner: exectesting.NewFakeRunner(responses...),
		log:    logger.NewBufferLogger(),
	}
}

func (h *harness) withCredentials() *harness {
	h.t.Setenv("MONGO_USERNAME", "root")
	h.t.Setenv("MONGO_PASSWORD", "s3cret")
	return h
}

func (h *harness) app() *App {
	return &App{
		Runner: h.runner,
		Stdin:  strings.NewReader(h.stdin),
		Stdout: &h.out,
		Stderr: &h.errOut,
		Confirmer: func() ui.Confirmer {
			return ui.LineConfirmer{In: strings.NewReader(h.answer), Out: &h.out}
		},
		Now: func() time.Time { return fixedNow },
		Log: h.log,
	}
}

func (h *harness) run(args ...string) error {
	h.t.Helper()
	h.out.Reset()
	h.errOut.Reset()
	return Run(context.Background(), h.app(), args)
}

func (h *harness) mustRun(args ...string) {
	h.t.Helper()
	require.NoError(h.t, h.run(args...))
}

func composeArgv(mode string, tail ...string) []string {
	argv := []string{"docker", "compose", "-f", "docker-compose." + mode + ".yml", "-p", "app-" + mode}
	return append(argv, tail...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

package cli

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/stackctl/internal/errors"
	exectesting "github.com/rileyhilliard/stackctl/internal/exec/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackup(t *testing.T) {
	h := newHarness(t, exectesting.Response{Stdout: "ARCHIVE"}).withCredentials()

	h.mustRun("backup", "--mode", "prod")

	path := filepath.Join("backups", "prod_20240101_120000.gz")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ARCHIVE", string(data))
	assert.Contains(t, h.out.String(), path)
	assert.Equal(t, []string{"docker", "exec", "app-prod-mongo-1", "mongodump"}, h.runner.LastArgv()[:4])
}

func TestBackup_MissingCredentials(t *testing.T) {
	h := newHarness(t)

	err := h.run("backup")

	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Zero(t, h.runner.CallCount())
	_, statErr := os.Stat("backups")
	assert.True(t, os.IsNotExist(statErr))
}

func TestBackup_ContainerUnavailable(t *testing.T) {
	h := newHarness(t, exectesting.Response{ExitCode: 1, Stderr: "Error: No such container: app-dev-mongo-1\n"}).withCredentials()

	err := h.run("backup")

	code, ok := errors.GetExitCode(err)
	require.True(t, ok)
	assert.Equal(t, 1, code)
	assert.Contains(t, h.errOut.String(), "No such container")

	entries, _ := os.ReadDir("backups")
	assert.Empty(t, entries)
}

func TestBackup_DryRun(t *testing.T) {
	h := newHarness(t).withCredentials()

	h.mustRun("backup", "--dry-run")

	assert.Zero(t, h.runner.CallCount())
	assert.Contains(t, h.out.String(), "docker exec app-dev-mongo-1 mongodump")
	assert.Contains(t, h.out.String(), "> backups/dev_20240101_120000.gz")
	assert.NotContains(t, h.out.String(), "s3cret")
}

func TestBackupList(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.MkdirAll("backups", 0o755))
	writeFile(t, "backups/dev_20231231_120000.gz", "x")
	writeFile(t, "backups/prod_20240101_110000.gz", "xx")

	h.mustRun("backup", "list")

	out := h.out.String()
	assert.Less(t, strings.Index(out, "prod_20240101_110000.gz"), strings.Index(out, "dev_20231231_120000.gz"),
		"newest first")
	assert.Contains(t, out, "1 hour ago")
}

func TestBackupList_Empty(t *testing.T) {
	h := newHarness(t)

	h.mustRun("backup", "list")

	assert.Contains(t, h.out.String(), "No backups")
}

func TestRestore(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantCalls int
		wantOut   string
	}{
		{name: "confirmed", answer: "y\n", wantCalls: 1, wantOut: "Restored"},
		{name: "yes is not y", answer: "yes\n", wantCalls: 0, wantOut: "nothing happened"},
		{name: "declined", answer: "\n", wantCalls: 0, wantOut: "nothing happened"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t).withCredentials()
			h.answer = tt.answer
			require.NoError(t, os.MkdirAll("backups", 0o755))
			writeFile(t, "backups/prod_20240101_110000.gz", "ARCHIVE")

			h.mustRun("restore", "prod_20240101_110000.gz", "--mode", "prod")

			assert.Equal(t, tt.wantCalls, h.runner.CallCount())
			assert.Contains(t, h.out.String(), tt.wantOut)
			if tt.wantCalls > 0 {
				assert.Equal(t, "ARCHIVE", string(h.runner.Calls[0].Stdin))
			}
		})
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		name      string
		answer    string
		wantCalls int
		wantOut   string
	}{
		{name: "y proceeds", answer: "y\n", wantCalls: 1, wantOut: "Reset app-prod"},
		{name: "YES aborts", answer: "YES\n", wantCalls: 0, wantOut: "nothing happened"},
		{name: "empty aborts", answer: "\n", wantCalls: 0, wantOut: "nothing happened"},
		{name: "n aborts", answer: "n\n", wantCalls: 0, wantOut: "nothing happened"},
		{name: "anything else aborts", answer: "sure\n", wantCalls: 0, wantOut: "nothing happened"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.answer = tt.answer

			h.mustRun("reset", "--mode", "prod")

			assert.Equal(t, tt.wantCalls, h.runner.CallCount())
			assert.Contains(t, h.out.String(), "prod")
			assert.Contains(t, h.out.String(), tt.wantOut)
			if tt.wantCalls > 0 {
				assert.Equal(t, composeArgv("prod", "down", "--volumes"), h.runner.LastArgv())
			}
		})
	}
}

func TestReset_DryRunSkipsPrompt(t *testing.T) {
	h := newHarness(t)

	h.mustRun("reset", "--dry-run")

	assert.Zero(t, h.runner.CallCount())
	assert.Equal(t, "docker compose -f docker-compose.dev.yml -p app-dev down --volumes\n", h.out.String())
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name        string
		backendCode int
		wantBackend string
	}{
		{name: "both up", backendCode: http.StatusOK, wantBackend: "✓ backend up"},
		{name: "backend down", backendCode: http.StatusServiceUnavailable, wantBackend: "✗ backend down (HTTP 503)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/api/health" {
					w.WriteHeader(tt.backendCode)
					return
				}
				w.WriteHeader(http.StatusOK)
			}))
			t.Cleanup(srv.Close)

			host, port, err := net.SplitHostPort(srv.Listener.Addr().String())
			require.NoError(t, err)
			writeFile(t, ".stackctl.yaml", fmt.Sprintf("health:\n  host: %s\n", host))
			t.Setenv("GATEWAY_PORT", port)

			require.NoError(t, h.run("health"))

			assert.Contains(t, h.out.String(), "✓ gateway up")
			assert.Contains(t, h.out.String(), tt.wantBackend)
			assert.Zero(t, h.runner.CallCount())
		})
	}
}

func TestHealth_NothingListeningStillExitsZero(t *testing.T) {
	h := newHarness(t)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, _ := net.SplitHostPort(l.Addr().String())
	require.NoError(t, l.Close())
	writeFile(t, ".stackctl.yaml", "health:\n  host: 127.0.0.1\n")
	t.Setenv("GATEWAY_PORT", port)

	err = h.run("health")

	assert.NoError(t, err)
	assert.Contains(t, h.out.String(), "✗ gateway down")
	assert.Contains(t, h.out.String(), "✗ backend down")
}

func TestBadGatewayPortOnlyBreaksHealth(t *testing.T) {
	h := newHarness(t)
	writeFile(t, ".env", "GATEWAY_PORT=eighty\n")

	h.mustRun("up")
	assert.Equal(t, composeArgv("dev", "up"), h.runner.LastArgv())

	err := h.run("health")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
	assert.Contains(t, err.Error(), "GATEWAY_PORT")
}

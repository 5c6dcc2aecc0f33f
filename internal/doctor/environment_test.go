package doctor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFileCheck(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(present, []byte("A=1\n"), 0o600))

	found := (&EnvFileCheck{Path: present}).Run(context.Background())
	missing := (&EnvFileCheck{Path: filepath.Join(dir, "nope.env")}).Run(context.Background())

	assert.Equal(t, StatusPass, found.Status)
	assert.Contains(t, found.Message, "Override file")
	assert.Equal(t, StatusPass, missing.Status, "the override file is optional")
	assert.Contains(t, missing.Message, "No ")
}

func TestCredentialsCheck(t *testing.T) {
	tests := []struct {
		name       string
		values     config.EnvValues
		wantStatus CheckStatus
	}{
		{name: "both set", values: config.EnvValues{MongoUsername: "root", MongoPassword: "pw"}, wantStatus: StatusPass},
		{name: "password missing", values: config.EnvValues{MongoUsername: "root"}, wantStatus: StatusWarn},
		{name: "nothing set", wantStatus: StatusWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check := &CredentialsCheck{Settings: &config.Settings{EnvValues: tt.values}}

			result := check.Run(context.Background())

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.NotContains(t, result.Message, "pw")
		})
	}
}

func TestGatewayPortCheck(t *testing.T) {
	tests := []struct {
		port       string
		wantStatus CheckStatus
	}{
		{port: "8080", wantStatus: StatusPass},
		{port: "0", wantStatus: StatusFail},
		{port: "70000", wantStatus: StatusFail},
		{port: "eighty", wantStatus: StatusFail},
	}

	for _, tt := range tests {
		check := &GatewayPortCheck{Settings: &config.Settings{EnvValues: config.EnvValues{GatewayPort: tt.port}}}
		result := check.Run(context.Background())
		assert.Equal(t, tt.wantStatus, result.Status, "port %s", tt.port)
		if tt.wantStatus == StatusFail {
			assert.Contains(t, result.Message, "GATEWAY_PORT")
		}
	}
}

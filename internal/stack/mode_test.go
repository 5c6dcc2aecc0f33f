package stack

import (
	"testing"

	"github.com/rileyhilliard/stackctl/internal/config"
	"github.com/rileyhilliard/stackctl/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		token  string
		want   Mode
		wantOk bool
	}{
		{"", Dev, true},
		{"dev", Dev, true},
		{"development", Dev, true},
		{"prod", Prod, true},
		{"PROD", Prod, true},
		{" production ", Prod, true},
		{"staging", Dev, false},
		{"prdo", Dev, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseMode(tt.token)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestSelector_ResolveIsStableAndIsolated(t *testing.T) {
	s := NewSelector(config.DefaultConfig(), nil)

	dev := s.Resolve("dev")
	prod := s.Resolve("prod")

	assert.Equal(t, dev, s.Resolve("dev"), "repeated resolution is constant")
	assert.Equal(t, prod, s.Resolve("prod"), "repeated resolution is constant")

	assert.Equal(t, Target{Mode: Dev, ConfigPath: "docker-compose.dev.yml", Namespace: "app-dev"}, dev)
	assert.Equal(t, Target{Mode: Prod, ConfigPath: "docker-compose.prod.yml", Namespace: "app-prod"}, prod)
	assert.NotEqual(t, dev.ConfigPath, prod.ConfigPath)
	assert.NotEqual(t, dev.Namespace, prod.Namespace)
}

func TestSelector_UnknownModeFallsBackToDev(t *testing.T) {
	log := logger.NewBufferLogger()
	s := NewSelector(config.DefaultConfig(), log)

	got := s.Resolve("staging")

	assert.Equal(t, Dev, got.Mode)
	assert.True(t, log.HasLevel("warn"))
	assert.True(t, log.Contains(`"staging"`))
}

func TestSelector_EmptyModeIsDevWithoutWarning(t *testing.T) {
	log := logger.NewBufferLogger()
	s := NewSelector(config.DefaultConfig(), log)

	assert.Equal(t, Dev, s.Resolve("").Mode)
	assert.Empty(t, log.Messages)
}

func TestSelector_UsesConfiguredNamespaces(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Project = "shop"
	cfg.Modes.Prod.Namespace = "shop-live"

	s := NewSelector(cfg, nil)

	assert.Equal(t, "shop-dev", s.Resolve("dev").Namespace)
	assert.Equal(t, "shop-live", s.Resolve("prod").Namespace)
}

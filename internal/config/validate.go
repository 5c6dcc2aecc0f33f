package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/stackctl/internal/errors"
)

// Validate checks the project config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but stackctl only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade stackctl.")
	}

	if strings.TrimSpace(cfg.Engine.Binary) == "" {
		return errors.New(errors.ErrConfig,
			"engine.binary is empty",
			"Set it to the container CLI, e.g. 'docker' or 'podman'.")
	}

	if err := validateModes(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'modes' section in your "+ConfigFileName+".")
	}

	if cfg.Backup.Dir == "" {
		return errors.New(errors.ErrConfig,
			"backup.dir is empty",
			"Set a directory for backup artifacts, e.g. 'backups'.")
	}

	if err := validateHealth(cfg.Health); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(),
			"Check the 'health' section in your "+ConfigFileName+".")
	}

	return nil
}

// validateModes enforces the dev/prod isolation: both modes need a file,
// and neither the files nor the namespaces may be shared.
func validateModes(cfg *Config) error {
	devFile, devNS := cfg.FileAndNamespace("dev")
	prodFile, prodNS := cfg.FileAndNamespace("prod")

	if devFile == "" || prodFile == "" {
		return fmt.Errorf("both modes need a configuration file")
	}
	if devFile == prodFile {
		return fmt.Errorf("dev and prod share the configuration file %q", devFile)
	}
	if devNS == prodNS {
		return fmt.Errorf("dev and prod share the namespace %q", devNS)
	}
	return nil
}

func validateHealth(h HealthConfig) error {
	for name, p := range map[string]string{"gateway_path": h.GatewayPath, "backend_path": h.BackendPath} {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("health.%s must start with '/', got %q", name, p)
		}
	}
	if h.Timeout <= 0 {
		return fmt.Errorf("health.timeout must be positive")
	}
	return nil
}

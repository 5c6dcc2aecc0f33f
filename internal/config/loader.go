package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/stackctl/internal/errors"
	"github.com/spf13/viper"
)

// ConfigFileName is the default project file name.
const ConfigFileName = ".stackctl.yaml"

// Load reads the project file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Run 'stackctl init' to create one, or drop --config to use defaults.")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the project file:
// 1. Explicit path (from --config flag), which must exist
// 2. .stackctl.yaml in the current directory
//
// Returns an empty path when there is no project file.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Specified config file not found: "+explicit,
				"Check the path is correct")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	local := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}
	return "", nil
}

// LoadOrDefault loads the project file if one is found, or returns defaults.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return DefaultConfig(), nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// setDefaults mirrors DefaultConfig so partially written files keep the
// values they leave out.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("project", d.Project)
	v.SetDefault("engine.binary", d.Engine.Binary)
	v.SetDefault("engine.compose", d.Engine.Compose)
	v.SetDefault("modes.dev.file", d.Modes.Dev.File)
	v.SetDefault("modes.prod.file", d.Modes.Prod.File)
	v.SetDefault("shell.service", d.Shell.Service)
	v.SetDefault("shell.command", d.Shell.Command)
	v.SetDefault("database.service", d.Database.Service)
	v.SetDefault("database.auth_db", d.Database.AuthDB)
	v.SetDefault("database.dump_tool", d.Database.DumpTool)
	v.SetDefault("database.restore_tool", d.Database.RestoreTool)
	v.SetDefault("database.client_tool", d.Database.ClientTool)
	v.SetDefault("backup.dir", d.Backup.Dir)
	v.SetDefault("health.host", d.Health.Host)
	v.SetDefault("health.gateway_path", d.Health.GatewayPath)
	v.SetDefault("health.backend_path", d.Health.BackendPath)
	v.SetDefault("health.timeout", d.Health.Timeout.String())
}

package config

import "time"

// CurrentConfigVersion is the schema version for the project file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the optional .stackctl.yaml project file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Project prefixes the default namespaces (<project>-dev, <project>-prod).
	Project string `yaml:"project" mapstructure:"project"`

	Engine   EngineConfig   `yaml:"engine" mapstructure:"engine"`
	Modes    ModesConfig    `yaml:"modes" mapstructure:"modes"`
	Shell    ShellConfig    `yaml:"shell" mapstructure:"shell"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Backup   BackupConfig   `yaml:"backup" mapstructure:"backup"`
	Health   HealthConfig   `yaml:"health" mapstructure:"health"`
}

// EngineConfig describes how to invoke the orchestration engine.
type EngineConfig struct {
	// Binary is the container CLI. It must also support "exec <container>".
	Binary string `yaml:"binary" mapstructure:"binary"`

	// Compose holds the arguments that select the compose subcommand,
	// e.g. ["compose"] for "docker compose". Empty for a standalone binary.
	Compose []string `yaml:"compose" mapstructure:"compose"`
}

// ModesConfig holds the per-mode configuration file and namespace.
type ModesConfig struct {
	Dev  ModeConfig `yaml:"dev" mapstructure:"dev"`
	Prod ModeConfig `yaml:"prod" mapstructure:"prod"`
}

// ModeConfig is the (file, namespace) pair for one deployment mode.
type ModeConfig struct {
	File string `yaml:"file" mapstructure:"file"`

	// Namespace is the compose project name. Empty means <project>-<mode>.
	Namespace string `yaml:"namespace" mapstructure:"namespace"`
}

// ShellConfig controls the shell action.
type ShellConfig struct {
	Service string   `yaml:"service" mapstructure:"service"`
	Command []string `yaml:"command" mapstructure:"command"`
}

// DatabaseConfig describes the database service and its tools.
type DatabaseConfig struct {
	Service string `yaml:"service" mapstructure:"service"`

	// Container overrides the derived <namespace>-<service>-1 container name.
	Container   string `yaml:"container" mapstructure:"container"`
	AuthDB      string `yaml:"auth_db" mapstructure:"auth_db"`
	DumpTool    string `yaml:"dump_tool" mapstructure:"dump_tool"`
	RestoreTool string `yaml:"restore_tool" mapstructure:"restore_tool"`
	ClientTool  string `yaml:"client_tool" mapstructure:"client_tool"`
}

// BackupConfig controls where backup artifacts are written.
type BackupConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// HealthConfig describes the liveness endpoints.
type HealthConfig struct {
	Host        string        `yaml:"host" mapstructure:"host"`
	GatewayPath string        `yaml:"gateway_path" mapstructure:"gateway_path"`
	BackendPath string        `yaml:"backend_path" mapstructure:"backend_path"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Project: "app",
		Engine: EngineConfig{
			Binary:  "docker",
			Compose: []string{"compose"},
		},
		Modes: ModesConfig{
			Dev:  ModeConfig{File: "docker-compose.dev.yml"},
			Prod: ModeConfig{File: "docker-compose.prod.yml"},
		},
		Shell: ShellConfig{
			Service: "backend",
			Command: []string{"sh"},
		},
		Database: DatabaseConfig{
			Service:     "mongo",
			AuthDB:      "admin",
			DumpTool:    "mongodump",
			RestoreTool: "mongorestore",
			ClientTool:  "mongosh",
		},
		Backup: BackupConfig{
			Dir: "backups",
		},
		Health: HealthConfig{
			Host:        "localhost",
			GatewayPath: "/health",
			BackendPath: "/api/health",
			Timeout:     5 * time.Second,
		},
	}
}

// FileAndNamespace returns the configuration file and namespace for a mode
// name ("dev" or "prod"), deriving the namespace from Project when unset.
func (c *Config) FileAndNamespace(mode string) (file, namespace string) {
	m := c.Modes.Dev
	if mode == "prod" {
		m = c.Modes.Prod
	}
	namespace = m.Namespace
	if namespace == "" {
		namespace = c.Project + "-" + mode
	}
	return m.File, namespace
}

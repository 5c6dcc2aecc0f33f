package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rileyhilliard/stackctl/internal/errors"
	"go-simpler.org/env"
)

// DefaultEnvFile is the optional local override file.
const DefaultEnvFile = ".env"

// Settings are the environment-derived values stackctl needs, resolved once
// at startup and handed to components explicitly.
type Settings struct {
	EnvValues

	// Overrides are the KEY=VALUE pairs read from the override file. They are
	// passed to child processes so compose files can interpolate them.
	Overrides []string
}

// EnvValues are decoded from the merged environment.
type EnvValues struct {
	MongoUsername string `env:"MONGO_USERNAME"`
	MongoPassword string `env:"MONGO_PASSWORD"`
	// GatewayPort is raw; Port parses it where it is needed.
	GatewayPort string `env:"GATEWAY_PORT" default:"8080"`
}

// Credentials is the database username/password pair.
type Credentials struct {
	Username string
	Password string
}

// Credentials returns the credential pair, or false if either half is unset.
func (s *Settings) Credentials() (Credentials, bool) {
	if s.MongoUsername == "" || s.MongoPassword == "" {
		return Credentials{}, false
	}
	return Credentials{Username: s.MongoUsername, Password: s.MongoPassword}, true
}

// Port parses GATEWAY_PORT.
func (s *Settings) Port() (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s.GatewayPort))
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("GATEWAY_PORT %q is not a number", s.GatewayPort),
			"Set GATEWAY_PORT to a port between 1 and 65535.")
	}
	if port <= 0 || port > 65535 {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("GATEWAY_PORT %d is out of range", port),
			"Set GATEWAY_PORT to a port between 1 and 65535.")
	}
	return port, nil
}

// LoadSettings reads the process environment and, when envFile exists,
// layers its values on top. The process environment itself is not modified.
// A missing override file is not an error.
func LoadSettings(envFile string) (*Settings, error) {
	vars := environMap(os.Environ())

	var overrides map[string]string
	if envFile != "" {
		if _, statErr := os.Stat(envFile); statErr == nil {
			read, err := godotenv.Read(envFile)
			if err != nil {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Couldn't parse "+envFile,
					"Use KEY=VALUE lines, one per line.")
			}
			overrides = read
		}
	}
	for k, v := range overrides {
		vars[k] = v
	}
	// Empty values count as unset so defaults apply.
	for k, v := range vars {
		if v == "" {
			delete(vars, k)
		}
	}

	var values EnvValues
	if err := env.Load(&values, &env.Options{Source: env.Map(vars)}); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid environment value",
			"Check MONGO_USERNAME, MONGO_PASSWORD and GATEWAY_PORT.")
	}

	return &Settings{EnvValues: values, Overrides: pairs(overrides)}, nil
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// pairs returns KEY=VALUE entries sorted by key for deterministic output.
func pairs(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+m[k])
	}
	return out
}

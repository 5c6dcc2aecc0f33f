package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rileyhilliard/stackctl/internal/errors"
	"gopkg.in/yaml.v3"
)

const fileHeader = "# stackctl project configuration. Every key is optional.\n"

// WriteDefault writes the default project file to path.
// An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrConfig,
				path+" already exists",
				"Use --force to overwrite it.")
		}
	}

	data, err := MarshalConfig(DefaultConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't render the default config",
			"This shouldn't happen - please report this bug!")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrIO,
			"Couldn't write "+path,
			"Check directory permissions.")
	}
	return nil
}

// MarshalConfig renders cfg as YAML, writing durations in their
// human-readable form ("5s") rather than as nanoseconds.
func MarshalConfig(cfg *Config) ([]byte, error) {
	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return nil, err
	}

	health := findMapValue(&root, "health")
	if health == nil {
		return nil, fmt.Errorf("'health' key missing from encoded config")
	}
	if timeout := findMapValue(health, "timeout"); timeout != nil {
		timeout.Tag = "!!str"
		timeout.Value = cfg.Health.Timeout.String()
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// findMapValue finds the value node for a given key in a mapping node.
func findMapValue(mapNode *yaml.Node, key string) *yaml.Node {
	if mapNode.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapNode.Content); i += 2 {
		if mapNode.Content[i].Value == key {
			return mapNode.Content[i+1]
		}
	}
	return nil
}

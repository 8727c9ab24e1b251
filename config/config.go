// Package config loads and validates the generator configuration from
// file, defaults and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "swaggelize.yaml"

// Load loads configuration with priority:
// 1. Environment variables (highest priority)
// 2. The YAML configuration file
// 3. Default values (lowest priority)
//
// A missing configuration file is a configuration error: without input
// paths and the document envelope there is nothing to compile.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}

	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, NewMissingFileError(path, err)
	}

	return finish(k)
}

// LoadBytes builds a configuration from raw YAML, layered over the same
// defaults as Load. Used by tests and embedding applications.
func LoadBytes(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(envprovider.Provider(".", envprovider.Opt{
		Prefix: "SWAGGELIZE_",
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, "SWAGGELIZE_")
			return strings.ReplaceAll(strings.ToLower(key), "_", "."), value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"models.path":   "app/models",
		"services.path": "app/services",
		"routes.prefix": "/api",

		"definition.openapi":      "3.0.0",
		"definition.info.title":   "API documentation",
		"definition.info.version": "1.0.0",

		"output.file": "openapi.json",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "15s",
		"server.write_timeout":    "30s",
		"server.shutdown_timeout": "10s",

		"log.level":  "info",
		"log.pretty": false,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}

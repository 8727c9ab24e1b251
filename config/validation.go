package config

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "disabled"}

var validHTTPMethods = []string{
	http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
	http.MethodDelete, http.MethodHead, http.MethodOptions,
}

// Validate checks the loaded configuration for the mistakes that would
// otherwise surface deep inside a compiler run.
func Validate(cfg *Config) error {
	if err := validateInputs(cfg); err != nil {
		return err
	}

	if err := validateDefinition(&cfg.Definition); err != nil {
		return fmt.Errorf("definition config: %w", err)
	}

	if err := validateRoutes(&cfg.Routes); err != nil {
		return fmt.Errorf("routes config: %w", err)
	}

	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	return nil
}

func validateInputs(cfg *Config) error {
	if cfg.Models.Path == "" {
		return NewMissingFieldError("models.path", "SWAGGELIZE_MODELS_PATH", "models.path")
	}
	if cfg.Services.Path == "" {
		return NewMissingFieldError("services.path", "SWAGGELIZE_SERVICES_PATH", "services.path")
	}
	if cfg.Output.File == "" {
		return NewMissingFieldError("output.file", "SWAGGELIZE_OUTPUT_FILE", "output.file")
	}
	return nil
}

func validateDefinition(cfg *DefinitionConfig) error {
	if cfg.OpenAPI == "" {
		return fmt.Errorf("openapi version is required")
	}
	if !strings.HasPrefix(cfg.OpenAPI, "3.") {
		return fmt.Errorf("unsupported openapi version: %s (must be a 3.x release)", cfg.OpenAPI)
	}
	if cfg.Info.Title == "" {
		return fmt.Errorf("info title is required")
	}
	if cfg.Info.Version == "" {
		return fmt.Errorf("info version is required")
	}
	for i, target := range cfg.Servers {
		if target.URL == "" {
			return fmt.Errorf("server %d: url is required", i)
		}
	}
	return nil
}

func validateRoutes(cfg *RoutesConfig) error {
	if cfg.Prefix != "" && !strings.HasPrefix(cfg.Prefix, "/") {
		return fmt.Errorf("prefix must start with '/': %s", cfg.Prefix)
	}
	for i, route := range cfg.Static {
		method := strings.ToUpper(route.Method)
		if !slices.Contains(validHTTPMethods, method) {
			return fmt.Errorf("static route %d: invalid method: %s (must be one of: %s)",
				i, route.Method, strings.Join(validHTTPMethods, ", "))
		}
		if !strings.HasPrefix(route.Path, "/") {
			return fmt.Errorf("static route %d: path must start with '/': %s", i, route.Path)
		}
	}
	return nil
}

func validateServer(cfg *ServerConfig) error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", cfg.Port)
	}
	if cfg.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive")
	}
	if cfg.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

func validateLog(cfg *LogConfig) error {
	if !slices.Contains(validLogLevels, cfg.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			cfg.Level, strings.Join(validLogLevels, ", "))
	}
	return nil
}

package config

import "time"

// Config is the full generator configuration.
type Config struct {
	Models     ModelsConfig     `koanf:"models"`
	Services   ServicesConfig   `koanf:"services"`
	Routes     RoutesConfig     `koanf:"routes"`
	Definition DefinitionConfig `koanf:"definition"`
	Output     OutputConfig     `koanf:"output"`
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
}

// ModelsConfig locates the model-definition sources.
type ModelsConfig struct {
	Path string `koanf:"path"`
}

// ServicesConfig locates the service descriptors.
type ServicesConfig struct {
	Path string `koanf:"path"`
}

// RoutesConfig carries the global route prefix and, for standalone runs
// with no live application, a static route table.
type RoutesConfig struct {
	Prefix string        `koanf:"prefix"`
	Static []StaticRoute `koanf:"static"`
}

// StaticRoute is one entry of the configured route table.
type StaticRoute struct {
	Method string `koanf:"method"`
	Path   string `koanf:"path"`
}

// DefinitionConfig is the OpenAPI document envelope, passed through to the
// generated document verbatim.
type DefinitionConfig struct {
	OpenAPI string         `koanf:"openapi"`
	Info    InfoConfig     `koanf:"info"`
	Servers []ServerTarget `koanf:"servers"`
}

// InfoConfig is the info block of the generated document.
type InfoConfig struct {
	Title       string `koanf:"title"`
	Version     string `koanf:"version"`
	Description string `koanf:"description"`
}

// ServerTarget is one entry of the generated document's servers list.
type ServerTarget struct {
	URL         string `koanf:"url"`
	Description string `koanf:"description"`
}

// OutputConfig names the file the generated document is written to.
type OutputConfig struct {
	File string `koanf:"file"`
}

// ServerConfig configures the documentation server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

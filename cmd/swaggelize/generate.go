package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaborage/swaggelize/compiler"
	"github.com/gaborage/swaggelize/config"
	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/openapi"
	"github.com/gaborage/swaggelize/service"
)

// generateOptions holds options for the generate command.
type generateOptions struct {
	ConfigFile string
	OutputFile string
}

func newGenerateCommand() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the OpenAPI specification and write it to disk",
		Long: `Runs the full pipeline once: extracts models, reconciles relations,
parses service descriptors against the configured route table and writes the
assembled document as indented JSON.`,
		Example: `  # Generate using swaggelize.yaml in the current directory
  swaggelize generate

  # Generate with an explicit configuration file and output location
  swaggelize generate --config ./docs/swaggelize.yaml --output docs/openapi.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file path")
	cmd.Flags().StringVarP(&opts.OutputFile, "output", "o", "", "Output file path (overrides configuration)")

	return cmd
}

func runGenerate(opts *generateOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}
	if opts.OutputFile != "" {
		cfg.Output.File = opts.OutputFile
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	doc, err := compiler.New(log).Run(compilerInput(cfg))
	if err != nil {
		return err
	}

	return writeDocument(doc, cfg.Output.File)
}

// compilerInput maps the loaded configuration onto one compiler run.
func compilerInput(cfg *config.Config) compiler.Input {
	return compiler.Input{
		ModelsDir:   cfg.Models.Path,
		ServicesDir: cfg.Services.Path,
		RoutePrefix: cfg.Routes.Prefix,
		Routes:      staticRoutes(cfg),
		Definition:  definitionFrom(cfg),
	}
}

// staticRoutes builds the route table from configuration, for standalone
// runs with no live application to snapshot.
func staticRoutes(cfg *config.Config) service.RouteTable {
	table := make(service.RouteTable, 0, len(cfg.Routes.Static))
	for _, route := range cfg.Routes.Static {
		table = append(table, service.Route{
			Method: strings.ToUpper(route.Method),
			Path:   route.Path,
		})
	}
	return table
}

// definitionFrom carries the configured document envelope through to the
// generated document.
func definitionFrom(cfg *config.Config) openapi.Definition {
	info := map[string]any{
		"title":   cfg.Definition.Info.Title,
		"version": cfg.Definition.Info.Version,
	}
	if cfg.Definition.Info.Description != "" {
		info["description"] = cfg.Definition.Info.Description
	}

	servers := make([]any, 0, len(cfg.Definition.Servers))
	for _, target := range cfg.Definition.Servers {
		entry := map[string]any{"url": target.URL}
		if target.Description != "" {
			entry["description"] = target.Description
		}
		servers = append(servers, entry)
	}

	return openapi.Definition{
		OpenAPI: cfg.Definition.OpenAPI,
		Info:    info,
		Servers: servers,
	}
}

func writeDocument(doc openapi.Document, path string) error {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Printf("OpenAPI specification generated: %s\n", path)
	return nil
}

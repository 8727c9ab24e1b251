package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev" // Will be set during build

func main() {
	rootCmd := &cobra.Command{
		Use:   "swaggelize",
		Short: "Generate OpenAPI specs from Sequelize model definitions",
		Long: `Syntax-tree based OpenAPI 3.x specification generator for Sequelize applications.

The tool analyzes annotated model definition files, service descriptors and the
application route table, and produces a referentially consistent API
specification with per-view schemas, composite relation schemas and
model-derived error responses.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newGenerateCommand(),
		newServeCommand(),
		newVersionCommand(version),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

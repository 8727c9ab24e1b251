package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaborage/swaggelize/compiler"
	"github.com/gaborage/swaggelize/config"
	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/server"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	ConfigFile string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Generate the specification and serve it with an interactive UI",
		Long: `Runs the pipeline once, then hosts the generated document at /openapi.json
with a Swagger UI at /docs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file path")

	return cmd
}

func runServe(opts *serveOptions) error {
	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	doc, err := compiler.New(log).Run(compilerInput(cfg))
	if err != nil {
		return err
	}

	srv := server.New(cfg, log)
	srv.SetDocument(doc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

// Package server provides the documentation HTTP server using the Echo
// framework. It serves the generated document as JSON alongside an
// interactive Swagger UI.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gaborage/swaggelize/config"
	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/openapi"
)

// Server hosts the generated OpenAPI document. It manages the Echo
// instance lifecycle and exposes it so callers can register the
// application routes the generator should observe.
type Server struct {
	echo   *echo.Echo
	cfg    *config.Config
	logger logger.Logger
	doc    openapi.Document
}

// New creates a documentation server for the given configuration and
// logger. Routes are registered immediately; the document is attached
// later via SetDocument so route registration can precede compilation.
func New(cfg *config.Config, log logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		cfg:    cfg,
		logger: log,
	}

	e.GET("/health", s.healthCheck)
	e.GET("/openapi.json", s.document)
	e.GET("/docs", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/docs/")
	})
	e.GET("/docs/*", docsHandler("/openapi.json"))

	return s
}

// Echo returns the underlying Echo instance so applications can register
// the routes the generator resolves operation paths against.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// SetDocument attaches the compiled document served at /openapi.json.
func (s *Server) SetDocument(doc openapi.Document) {
	s.doc = doc
}

// Start starts the HTTP server and blocks until it is shut down or
// encounters an error.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.logger.Info().
		Str("address", addr).
		Msg("Starting documentation server...")

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	return s.echo.StartServer(server)
}

// Shutdown gracefully shuts down the HTTP server, waiting for in-flight
// requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func (s *Server) document(c echo.Context) error {
	if s.doc == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "document not generated yet")
	}
	return c.JSONPretty(http.StatusOK, s.doc, "  ")
}

package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/swaggelize/config"
	"github.com/gaborage/swaggelize/logger"
	"github.com/gaborage/swaggelize/openapi"
	"github.com/gaborage/swaggelize/service"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second

	return New(cfg, logger.NewWithOutput("disabled", false, io.Discard))
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestDocumentEndpointBeforeGeneration(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDocumentEndpointServesAttachedDocument(t *testing.T) {
	srv := testServer(t)
	srv.SetDocument(openapi.Document{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "Test API"},
		"paths":   map[string]any{},
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	srv.Echo().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.0", doc["openapi"])
}

func TestDocsRedirect(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/docs/", rec.Header().Get("Location"))
}

func TestRegisteredRoutesVisibleToRouteTable(t *testing.T) {
	srv := testServer(t)
	srv.Echo().GET("/api/users/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	table := service.FromEcho(srv.Echo())
	assert.Contains(t, table, service.Route{Method: http.MethodGet, Path: "/api/users/:id"})
}

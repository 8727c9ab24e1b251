package server

import (
	"github.com/labstack/echo/v4"
	_ "github.com/swaggo/files"
	httpSwagger "github.com/swaggo/http-swagger"
)

// docsHandler serves the interactive Swagger UI, pointed at the JSON
// document endpoint.
func docsHandler(documentURL string) echo.HandlerFunc {
	handler := httpSwagger.Handler(
		httpSwagger.URL(documentURL),
		httpSwagger.DeepLinking(true),
	)
	return echo.WrapHandler(handler)
}

// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/fileforge/backend/internal/config"
	"github.com/fileforge/backend/internal/convert"
	"github.com/fileforge/backend/internal/ratelimit"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Config  *config.Config
	Limiter *ratelimit.Limiter
	Office  *convert.OfficeConverter
	Version string
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Convert ConvertHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Version),
		Convert: NewConvertHandler(deps.Config, deps.Limiter, deps.Office),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	e.GET("/health", handlers.Health.HandleHealth)

	convertGroup := e.Group("/convert")
	convertGroup.POST("/image", handlers.Convert.HandleConvertImage)
	convertGroup.POST("/pdf", handlers.Convert.HandleConvertPDF)
	convertGroup.POST("/pdf/split", handlers.Convert.HandleSplitPDF)
	convertGroup.POST("/pdf/merge", handlers.Convert.HandleMergePDF)
}

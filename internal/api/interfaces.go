// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import "github.com/labstack/echo/v4"

// ConvertHandler handles the four conversion operations
type ConvertHandler interface {
	HandleConvertImage(c echo.Context) error
	HandleConvertPDF(c echo.Context) error
	HandleSplitPDF(c echo.Context) error
	HandleMergePDF(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

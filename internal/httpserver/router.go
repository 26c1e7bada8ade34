package httpserver

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/madhusmita6505/mads-poc/internal/config"
)

// New creates the configured Echo server with all routes registered.
func New(cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(noCacheStatic)

	h := NewHandlers(cfg)
	h.Register(e)
	return e
}

// noCacheStatic disables caching for the operator console so UI changes are
// picked up without a hard refresh.
func noCacheStatic(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		if path == "/" || strings.HasPrefix(path, "/static/") {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		return next(c)
	}
}

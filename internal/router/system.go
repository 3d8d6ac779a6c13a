package router

import (
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that sit outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}

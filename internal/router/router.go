// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/handler"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/middleware"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the Echo instance with the middleware chain and every
// route registered.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// The request id and transaction must exist before the context logger
	// reads them. Rejected requests are still logged.
	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	h.League.Register(v1)
	h.Team.Register(v1)
	h.Player.Register(v1)
	h.Fixture.Register(v1)
	h.Live.Register(v1)
	h.Sync.Register(v1)

	return router
}

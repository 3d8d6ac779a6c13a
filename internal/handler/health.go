package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/middleware"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its database are usable,
// along with how much of the API-Football quota is left.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

func (h *HealthHandler) recordError(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		attrs["operation"] = "health_check"
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}

// CheckHealth answers 200 when every check passes and 503 otherwise.
// The upstream quota is informational and never fails the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	env := ""
	if h.server.Config != nil {
		env = h.server.Config.Primary.Env
	}

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": env,
		"checks":      checks,
	}
	isHealthy := true

	timeout, probeUpstream := 5*time.Second, true
	if cfg := h.server.Config; cfg != nil && cfg.Observability != nil {
		hc := cfg.Observability.HealthChecks
		if hc.Timeout > 0 {
			timeout = hc.Timeout
		}
		probeUpstream = slices.Contains(hc.Checks, "api_football")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	dbStart := time.Now()
	if err := h.server.DB.Ping(ctx); err != nil {
		checks["database"] = map[string]any{
			"status":        "unhealthy",
			"response_time": time.Since(dbStart).String(),
			"error":         err.Error(),
		}
		isHealthy = false

		logger.Error().
			Err(err).
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check failed")

		h.recordError(map[string]any{
			"check_type":       "database",
			"error_type":       "database_unhealthy",
			"response_time_ms": time.Since(dbStart).Milliseconds(),
			"error_message":    err.Error(),
		})
	} else {
		checks["database"] = map[string]any{
			"status":        "healthy",
			"response_time": time.Since(dbStart).String(),
		}

		logger.Info().
			Dur("response_time", time.Since(dbStart)).
			Msg("database health check passed")
	}

	if probeUpstream && h.server.Football != nil {
		stats, err := h.server.Football.Quota(ctx)
		if err != nil {
			checks["api_football"] = map[string]any{"status": "unknown", "error": err.Error()}
		} else {
			checks["api_football"] = map[string]any{
				"status":      "healthy",
				"quota":       stats.Quota,
				"window":      stats.Window.String(),
				"used":        stats.Used,
				"remaining":   stats.Remaining,
				"retry_after": stats.RetryAfter.String(),
			}
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordError(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")

		h.recordError(map[string]any{
			"check_type":    "response",
			"error_type":    "json_response_error",
			"error_message": err.Error(),
		})

		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

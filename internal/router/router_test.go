package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/config"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/database"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/handler"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/apifootball"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/middleware"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, rps float64) *echo.Echo {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewSQLite(context.Background(), ":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	football := config.DefaultAPIFootballConfig()
	football.Key = "test"

	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				RequestsPerSecond:  rps,
			},
			APIFootball: football,
		},
		DB:       db,
		Logger:   &logger,
		Football: apifootball.New(football, &logger),
	}

	services, err := service.NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)
	return NewRouter(s, handler.NewHandlers(s, services))
}

func get(r *echo.Echo, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestStatusRoute(t *testing.T) {
	r := newTestRouter(t, 0)

	rec := get(r, "/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRequestIDIsEchoed(t *testing.T) {
	r := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, 0)

	rec := get(r, "/api/v1/nowhere")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestVersionedRoutes(t *testing.T) {
	r := newTestRouter(t, 0)

	rec := get(r, "/api/v1/leagues")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = get(r, "/api/v1/teams/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInboundRateLimit(t *testing.T) {
	r := newTestRouter(t, 1)

	assert.Equal(t, http.StatusOK, get(r, "/api/v1/leagues").Code)
	assert.Equal(t, http.StatusOK, get(r, "/api/v1/leagues").Code)

	rec := get(r, "/api/v1/leagues")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Too many requests", body.Message)
}

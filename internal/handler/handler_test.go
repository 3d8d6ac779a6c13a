package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/config"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/database"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/apifootball"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/middleware"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFootball serves both the live endpoints and the sync service.
type fakeFootball struct {
	mu    sync.Mutex
	items []json.RawMessage
	err   error

	calls        []string
	lastFixtures apifootball.FixturesQuery
	lastH2H      apifootball.HeadToHeadQuery
	lastPlayers  apifootball.PlayersQuery
	lastLeague   int
	lastSeason   int
}

func (f *fakeFootball) record(name string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.items, f.err
}

func (f *fakeFootball) Leagues(ctx context.Context, q apifootball.LeaguesQuery) ([]json.RawMessage, error) {
	f.lastSeason = q.Season
	return f.record("leagues")
}

func (f *fakeFootball) Teams(ctx context.Context, q apifootball.TeamsQuery) ([]json.RawMessage, error) {
	f.lastLeague, f.lastSeason = q.League, q.Season
	return f.record("teams")
}

func (f *fakeFootball) Fixtures(ctx context.Context, q apifootball.FixturesQuery) ([]json.RawMessage, error) {
	f.lastFixtures = q
	return f.record("fixtures")
}

func (f *fakeFootball) LiveFixtures(ctx context.Context) ([]json.RawMessage, error) {
	return f.record("live")
}

func (f *fakeFootball) FixtureStatistics(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return f.record("statistics")
}

func (f *fakeFootball) FixtureEvents(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return f.record("events")
}

func (f *fakeFootball) FixtureLineups(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return f.record("lineups")
}

func (f *fakeFootball) Standings(ctx context.Context, league, season, team int) ([]json.RawMessage, error) {
	f.lastLeague, f.lastSeason = league, season
	return f.record("standings")
}

func (f *fakeFootball) TopScorers(ctx context.Context, league, season int) ([]json.RawMessage, error) {
	f.lastLeague, f.lastSeason = league, season
	return f.record("topscorers")
}

func (f *fakeFootball) TopAssists(ctx context.Context, league, season int) ([]json.RawMessage, error) {
	f.lastLeague, f.lastSeason = league, season
	return f.record("topassists")
}

func (f *fakeFootball) HeadToHead(ctx context.Context, q apifootball.HeadToHeadQuery) ([]json.RawMessage, error) {
	f.lastH2H = q
	return f.record("h2h")
}

func (f *fakeFootball) TeamStatistics(ctx context.Context, team, league, season int) (json.RawMessage, error) {
	f.record("teamstatistics")
	return json.RawMessage(`{"form":"WWD"}`), f.err
}

func (f *fakeFootball) Players(ctx context.Context, q apifootball.PlayersQuery) ([]json.RawMessage, error) {
	f.lastPlayers = q
	return f.record("players")
}

func (f *fakeFootball) Predictions(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return f.record("predictions")
}

type testEnv struct {
	echo     *echo.Echo
	services *service.Services
	football *fakeFootball
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewSQLite(context.Background(), ":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		DB:     db,
		Logger: &logger,
	}
	services, err := service.NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)

	football := &fakeFootball{}
	services.Sync = service.NewSyncService(football, services.Leagues, services.Seasons,
		services.Teams, services.Venues, &logger)

	h := NewHandlers(s, services)
	h.Live = NewLiveHandler(s, football, services.Sync)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	v1 := e.Group("/api/v1")
	h.League.Register(v1)
	h.Team.Register(v1)
	h.Player.Register(v1)
	h.Fixture.Register(v1)
	h.Live.Register(v1)
	h.Sync.Register(v1)
	e.GET("/status", h.Health.CheckHealth)

	return &testEnv{echo: e, services: services, football: football}
}

func (env *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (env *testEnv) seed(t *testing.T, create func(ctx context.Context) error) {
	t.Helper()
	require.NoError(t, create(context.Background()))
}

func (env *testEnv) createLeagues(t *testing.T, names ...string) {
	env.seed(t, func(ctx context.Context) error {
		for i, name := range names {
			if _, err := env.services.Leagues.Create(ctx, payload.FromMap(map[string]any{
				"id": int64(i + 1), "name": name,
			})); err != nil {
				return err
			}
		}
		return nil
	})
}

func (env *testEnv) createTeams(t *testing.T, names ...string) {
	env.seed(t, func(ctx context.Context) error {
		for i, name := range names {
			if _, err := env.services.Teams.Create(ctx, payload.FromMap(map[string]any{
				"id": int64(i + 1), "name": name,
			})); err != nil {
				return err
			}
		}
		return nil
	})
}

func TestHandleAllocatesRequestPerCall(t *testing.T) {
	var seen []*GetLeagueRequest
	h := Handle(Handler{}, func(c echo.Context, req *GetLeagueRequest) (int64, error) {
		seen = append(seen, req)
		return req.ID, nil
	}, http.StatusOK)

	e := echo.New()
	e.GET("/leagues/:id", h)

	for _, id := range []string{"1", "2"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leagues/"+id, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, strings.TrimSpace(rec.Body.String()))
	}

	require.Len(t, seen, 2)
	assert.NotSame(t, seen[0], seen[1])
}

func TestHandleValidationError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/leagues?limit=1000", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "Validation failed", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "limit", body.Errors[0].Field)
	assert.Equal(t, "must not exceed 500", body.Errors[0].Error)
}

func TestHandleBindError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/leagues/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

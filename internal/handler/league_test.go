package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListLeagues(t *testing.T) {
	env := newTestEnv(t)
	env.createLeagues(t, "Premier League", "La Liga", "Serie A")

	rec := env.do(t, http.MethodGet, "/api/v1/leagues?limit=2&offset=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[Page[model.League]](t, rec)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, 1, page.Offset)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "La Liga", page.Data[0].Name)
	assert.Equal(t, "Serie A", page.Data[1].Name)
}

func TestListLeaguesDefaultLimit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/leagues", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[Page[model.League]](t, rec)
	assert.Equal(t, 100, page.Limit)
	assert.Empty(t, page.Data)
	assert.NotNil(t, page.Data)
}

func TestGetLeague(t *testing.T) {
	env := newTestEnv(t)
	env.createLeagues(t, "Premier League")

	rec := env.do(t, http.MethodGet, "/api/v1/leagues/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Premier League", decode[model.League](t, rec).Name)

	rec = env.do(t, http.MethodGet, "/api/v1/leagues/2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "League not found", decode[errs.HTTPError](t, rec).Message)
}

func TestLeagueSeasons(t *testing.T) {
	env := newTestEnv(t)
	env.createLeagues(t, "Premier League")
	env.seed(t, func(ctx context.Context) error {
		for _, year := range []string{"2022", "2024", "2023"} {
			if _, err := env.services.Seasons.Create(ctx, payload.FromMap(map[string]any{
				"league_id": int64(1), "year": year,
			})); err != nil {
				return err
			}
		}
		return nil
	})

	rec := env.do(t, http.MethodGet, "/api/v1/leagues/1/seasons", "")
	require.Equal(t, http.StatusOK, rec.Code)

	seasons := decode[[]model.Season](t, rec)
	require.Len(t, seasons, 3)
	assert.Equal(t, "2024", seasons[0].Year)
	assert.Equal(t, "2023", seasons[1].Year)
	assert.Equal(t, "2022", seasons[2].Year)

	rec = env.do(t, http.MethodGet, "/api/v1/leagues/9/seasons", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

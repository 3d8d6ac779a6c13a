package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTeam(t *testing.T) {
	env := newTestEnv(t)
	env.createTeams(t, "Arsenal")

	rec := env.do(t, http.MethodGet, "/api/v1/teams/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Arsenal", decode[model.Team](t, rec).Name)

	rec = env.do(t, http.MethodGet, "/api/v1/teams/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTeamFixtures(t *testing.T) {
	env := newTestEnv(t)
	env.createTeams(t, "Arsenal", "Chelsea")

	older := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 15, 0, 0, 0, time.UTC)
	env.seed(t, func(ctx context.Context) error {
		for _, f := range []map[string]any{
			{"id": int64(10), "home_team_id": int64(1), "away_team_id": int64(2), "event_date": older},
			{"id": int64(11), "home_team_id": int64(2), "away_team_id": int64(1), "event_date": newer},
		} {
			if _, err := env.services.Fixtures.Create(ctx, payload.FromMap(f)); err != nil {
				return err
			}
		}
		return nil
	})

	rec := env.do(t, http.MethodGet, "/api/v1/teams/1/fixtures", "")
	require.Equal(t, http.StatusOK, rec.Code)

	fixtures := decode[[]model.Fixture](t, rec)
	require.Len(t, fixtures, 2)
	assert.Equal(t, int64(11), fixtures[0].ID)
	assert.Equal(t, int64(10), fixtures[1].ID)
}

func TestUpdateTeamPartial(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, func(ctx context.Context) error {
		_, err := env.services.Teams.Create(ctx, payload.FromMap(map[string]any{
			"id": int64(1), "name": "Arsenal", "country": "England",
		}))
		return err
	})

	rec := env.do(t, http.MethodPatch, "/api/v1/teams/1", `{"short_code":"ARS","founded":1886}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	team := decode[model.Team](t, rec)
	assert.Equal(t, "Arsenal", team.Name)
	require.NotNil(t, team.Country)
	assert.Equal(t, "England", *team.Country)
	require.NotNil(t, team.ShortCode)
	assert.Equal(t, "ARS", *team.ShortCode)
	require.NotNil(t, team.Founded)
	assert.Equal(t, int64(1886), *team.Founded)
}

func TestUpdateTeamErrors(t *testing.T) {
	env := newTestEnv(t)
	env.createTeams(t, "Arsenal", "Chelsea")

	t.Run("missing team", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/teams/9", `{"name":"Ghost"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid field", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/teams/1", `{"logo":"not a url"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode[errs.HTTPError](t, rec)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "logo", body.Errors[0].Field)
	})

	t.Run("unique name", func(t *testing.T) {
		rec := env.do(t, http.MethodPatch, "/api/v1/teams/2", `{"name":"Arsenal"}`)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "CONSTRAINT_VIOLATION", decode[errs.HTTPError](t, rec).Code)
	})
}

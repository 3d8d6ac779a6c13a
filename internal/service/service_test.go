package service

import (
	"context"
	"testing"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/database"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newTestServices(t *testing.T, gateway Gateway) *Services {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewSQLite(context.Background(), ":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := &server.Server{DB: db, Logger: &logger}
	services, err := NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)
	if gateway != nil {
		services.Sync.gateway = gateway
	}
	return services
}

type teamRequest struct {
	ID      int64   `db:"id" validate:"required"`
	Name    string  `db:"name" validate:"required,min=2"`
	Country *string `db:"country"`
}

func (r *teamRequest) Validate() error { return validation.Struct(r) }

func createTeams(t *testing.T, s *Services, names ...string) {
	t.Helper()
	for i, name := range names {
		_, err := s.Teams.Create(context.Background(), payload.FromMap(map[string]any{"id": int64(i + 1), "name": name}))
		require.NoError(t, err)
	}
}

func TestCreateFromEquivalentShapes(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	fromStruct, err := s.Teams.Create(ctx, payload.FromValidated(&teamRequest{ID: 1, Name: "Arsenal", Country: ptr("England")}))
	require.NoError(t, err)

	_, _, err = s.Teams.Delete(ctx, int64(1))
	require.NoError(t, err)

	fromMap, err := s.Teams.Create(ctx, payload.FromMap(map[string]any{"id": int64(1), "name": "Arsenal", "country": "England"}))
	require.NoError(t, err)

	assert.Equal(t, fromStruct, fromMap)
}

func TestCreateValidationFailure(t *testing.T) {
	s := newTestServices(t, nil)

	_, err := s.Teams.Create(context.Background(), payload.FromValidated(&teamRequest{ID: 1, Name: "A"}))
	require.Error(t, err)

	count, err := s.Teams.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateUnsupportedShape(t *testing.T) {
	s := newTestServices(t, nil)

	_, err := s.Teams.Create(context.Background(), payload.Input{})
	assert.ErrorIs(t, err, errs.ErrUnsupportedPayloadShape)

	_, err = s.Teams.Create(context.Background(), payload.FromObject(42))
	assert.ErrorIs(t, err, errs.ErrUnsupportedPayloadShape)
}

func TestListPaging(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)
	createTeams(t, s, "Arsenal", "Chelsea", "Everton")

	all, err := s.Teams.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	page, err := s.Teams.List(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Chelsea", page[0].Name)
	assert.Equal(t, "Everton", page[1].Name)
}

func TestBulkCreateIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	_, err := s.Teams.BulkCreate(ctx, []payload.Input{
		payload.FromMap(map[string]any{"id": int64(1), "name": "Arsenal"}),
		payload.FromMap(map[string]any{"id": int64(2), "name": "Arsenal"}),
	})
	assert.ErrorIs(t, err, errs.ErrConstraintViolation)

	count, err := s.Teams.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	created, err := s.Teams.BulkCreate(ctx, []payload.Input{
		payload.FromMap(map[string]any{"id": int64(1), "name": "Arsenal"}),
		payload.FromObject(model.Team{ID: 2, Name: "Chelsea"}),
	})
	require.NoError(t, err)
	assert.Len(t, created, 2)
}

func TestUpdatePartial(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)
	_, err := s.Teams.Create(ctx, payload.FromMap(map[string]any{"id": int64(1), "name": "Arsenal", "country": "England"}))
	require.NoError(t, err)

	updated, found, err := s.Teams.Update(ctx, int64(1), payload.FromMap(map[string]any{"short_code": "ARS"}))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Arsenal", updated.Name)
	assert.Equal(t, "England", *updated.Country)
	assert.Equal(t, "ARS", *updated.ShortCode)

	_, found, err = s.Teams.Update(ctx, int64(99), payload.FromMap(map[string]any{"name": "Ghost"}))
	require.NoError(t, err)
	assert.False(t, found)

	count, err := s.Teams.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, _, err = s.Teams.Update(ctx, int64(1), payload.FromMap(map[string]any{"id": int64(2)}))
	assert.ErrorIs(t, err, errs.ErrImmutableIdentity)
}

func TestUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	match := payload.FromMap(map[string]any{"id": int64(39)})
	first, err := s.Leagues.Upsert(ctx, match, payload.FromMap(map[string]any{"name": "Premier League"}))
	require.NoError(t, err)

	second, err := s.Leagues.Upsert(ctx, match, payload.FromMap(map[string]any{"name": "Premier League", "country": "England"}))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "England", *second.Country)

	count, err := s.Leagues.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTeamFixturesNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)
	createTeams(t, s, "Arsenal", "Chelsea", "Everton")

	jan := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)
	for _, f := range []map[string]any{
		{"id": int64(10), "home_team_id": int64(1), "away_team_id": int64(2), "event_date": jan},
		{"id": int64(11), "home_team_id": int64(3), "away_team_id": int64(1), "event_date": mar},
		{"id": int64(12), "home_team_id": int64(1), "away_team_id": int64(3)},
		{"id": int64(13), "home_team_id": int64(2), "away_team_id": int64(3), "event_date": mar},
	} {
		_, err := s.Fixtures.Create(ctx, payload.FromMap(f))
		require.NoError(t, err)
	}

	fixtures, err := s.Teams.Fixtures(ctx, 1)
	require.NoError(t, err)
	require.Len(t, fixtures, 3)
	assert.Equal(t, int64(11), fixtures[0].ID)
	assert.Equal(t, int64(10), fixtures[1].ID)
	assert.Equal(t, int64(12), fixtures[2].ID)
	assert.Nil(t, fixtures[2].EventDate)
}

func TestLeagueSeasonsByYearDescending(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)

	_, err := s.Leagues.Create(ctx, payload.FromMap(map[string]any{"id": int64(39), "name": "Premier League"}))
	require.NoError(t, err)
	_, err = s.Leagues.Create(ctx, payload.FromMap(map[string]any{"id": int64(140), "name": "La Liga"}))
	require.NoError(t, err)

	for _, year := range []string{"2022", "2024", "2023"} {
		_, err := s.Seasons.Create(ctx, payload.FromMap(map[string]any{"league_id": int64(39), "year": year}))
		require.NoError(t, err)
	}
	_, err = s.Seasons.Create(ctx, payload.FromMap(map[string]any{"league_id": int64(140), "year": "2025"}))
	require.NoError(t, err)

	seasons, err := s.Leagues.Seasons(ctx, 39)
	require.NoError(t, err)
	require.Len(t, seasons, 3)
	assert.Equal(t, "2024", seasons[0].Year)
	assert.Equal(t, "2023", seasons[1].Year)
	assert.Equal(t, "2022", seasons[2].Year)
}

func TestPlayerCurrentTeam(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)
	createTeams(t, s, "Arsenal", "Chelsea")

	_, err := s.Leagues.Create(ctx, payload.FromMap(map[string]any{"id": int64(39), "name": "Premier League"}))
	require.NoError(t, err)
	season, err := s.Seasons.Create(ctx, payload.FromMap(map[string]any{"league_id": int64(39), "year": "2024"}))
	require.NoError(t, err)

	_, err = s.Players.Create(ctx, payload.FromMap(map[string]any{"id": int64(7), "name": "B. Saka"}))
	require.NoError(t, err)
	_, err = s.Players.Create(ctx, payload.FromMap(map[string]any{"id": int64(8), "name": "Free Agent"}))
	require.NoError(t, err)

	_, err = s.Rosters.Create(ctx, payload.FromMap(map[string]any{"player_id": int64(7), "team_id": int64(2), "season_id": season.ID, "is_current": false}))
	require.NoError(t, err)
	_, err = s.Rosters.Create(ctx, payload.FromMap(map[string]any{"player_id": int64(7), "team_id": int64(1), "season_id": season.ID, "is_current": true}))
	require.NoError(t, err)

	team, found, err := s.Players.CurrentTeam(ctx, 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Arsenal", team.Name)

	_, found, err = s.Players.CurrentTeam(ctx, 8)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFixtureWithEvents(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t, nil)
	createTeams(t, s, "Arsenal", "Chelsea")

	_, err := s.Fixtures.Create(ctx, payload.FromMap(map[string]any{"id": int64(10), "home_team_id": int64(1), "away_team_id": int64(2)}))
	require.NoError(t, err)

	for _, e := range []map[string]any{
		{"fixture_id": int64(10), "event_type": "Goal", "minute": int64(78)},
		{"fixture_id": int64(10), "event_type": "Card"},
		{"fixture_id": int64(10), "event_type": "Goal", "minute": int64(12)},
		{"fixture_id": int64(10), "event_type": "subst", "minute": int64(45), "extra_minute": int64(2)},
	} {
		_, err := s.Events.Create(ctx, payload.FromMap(e))
		require.NoError(t, err)
	}

	got, found, err := s.Fixtures.WithEvents(ctx, 10)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(10), got.ID)
	require.Len(t, got.Events, 4)
	assert.Equal(t, int64(12), *got.Events[0].Minute)
	assert.Equal(t, int64(45), *got.Events[1].Minute)
	assert.Equal(t, int64(78), *got.Events[2].Minute)
	assert.Nil(t, got.Events[3].Minute)

	_, found, err = s.Fixtures.WithEvents(ctx, 99)
	require.NoError(t, err)
	assert.False(t, found)
}

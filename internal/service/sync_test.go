package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/apifootball"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	leagues  []json.RawMessage
	teams    []json.RawMessage
	fixtures []json.RawMessage
	err      error
	calls    atomic.Int32

	lastLeagues apifootball.LeaguesQuery
	lastTeams   apifootball.TeamsQuery
}

func raw(s string) []json.RawMessage { return []json.RawMessage{json.RawMessage(s)} }

func (g *fakeGateway) Leagues(ctx context.Context, q apifootball.LeaguesQuery) ([]json.RawMessage, error) {
	g.calls.Add(1)
	g.lastLeagues = q
	return g.leagues, g.err
}

func (g *fakeGateway) Teams(ctx context.Context, q apifootball.TeamsQuery) ([]json.RawMessage, error) {
	g.calls.Add(1)
	g.lastTeams = q
	return g.teams, g.err
}

func (g *fakeGateway) Fixtures(ctx context.Context, q apifootball.FixturesQuery) ([]json.RawMessage, error) {
	g.calls.Add(1)
	return g.fixtures, g.err
}

func (g *fakeGateway) FixtureStatistics(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	g.calls.Add(1)
	return raw(`{"type":"statistics"}`), nil
}

func (g *fakeGateway) FixtureEvents(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	g.calls.Add(1)
	return raw(`{"type":"events"}`), nil
}

func (g *fakeGateway) FixtureLineups(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	g.calls.Add(1)
	return raw(`{"type":"lineups"}`), nil
}

const leagueJSON = `{
	"league": {"id": 39, "name": "Premier League", "type": "League", "logo": "https://media.api-sports.io/football/leagues/39.png"},
	"country": {"name": "England", "code": "GB", "flag": "https://media.api-sports.io/flags/gb.svg"},
	"seasons": [
		{"year": 2023, "start": "2023-08-11", "end": "2024-05-19", "current": false},
		{"year": 2024, "start": "2024-08-16", "end": "2025-05-25", "current": true}
	]
}`

func TestSyncLeagueCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{leagues: raw(leagueJSON)}
	s := newTestServices(t, gw)

	league, err := s.Sync.SyncLeague(ctx, 39, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(39), league.ID)
	assert.Equal(t, "Premier League", league.Name)
	assert.Equal(t, "GB", *league.CountryCode)
	assert.Equal(t, apifootball.LeaguesQuery{ID: 39, Season: 2024}, gw.lastLeagues)

	seasons, err := s.Leagues.Seasons(ctx, 39)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	assert.Equal(t, "2024", seasons[0].Year)
	assert.True(t, seasons[0].IsCurrent)
	require.NotNil(t, seasons[0].StartDate)
	assert.Equal(t, 16, seasons[0].StartDate.Day())

	gw.leagues = raw(`{"league": {"id": 39, "name": "EPL"}, "country": {"name": "England"}, "seasons": []}`)
	league, err = s.Sync.SyncLeague(ctx, 39, 0)
	require.NoError(t, err)
	assert.Equal(t, "EPL", league.Name)
	assert.Nil(t, league.CountryCode)

	count, err := s.Leagues.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSyncLeagueNotFound(t *testing.T) {
	s := newTestServices(t, &fakeGateway{leagues: []json.RawMessage{}})

	_, err := s.Sync.SyncLeague(context.Background(), 9999, 0)
	assert.ErrorIs(t, err, errs.ErrNotFoundUpstream)
}

func TestSyncLeaguePropagatesGatewayError(t *testing.T) {
	s := newTestServices(t, &fakeGateway{err: &apifootball.RateLimitError{Status: 429}})

	_, err := s.Sync.SyncLeague(context.Background(), 39, 0)
	assert.ErrorIs(t, err, errs.ErrUpstreamRateLimited)

	count, err := s.Leagues.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSyncTeamWithVenue(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{teams: raw(`{
		"team": {"id": 42, "name": "Arsenal", "code": "ARS", "country": "England", "founded": 1886, "national": false},
		"venue": {"id": 494, "name": "Emirates Stadium", "city": "London", "capacity": 60383, "surface": "grass"}
	}`)}
	s := newTestServices(t, gw)

	team, err := s.Sync.SyncTeam(ctx, 42, 39, 2024)
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", team.Name)
	assert.Equal(t, int64(1886), *team.Founded)
	require.NotNil(t, team.VenueID)
	assert.Equal(t, int64(494), *team.VenueID)
	assert.Equal(t, apifootball.TeamsQuery{ID: 42, League: 39, Season: 2024}, gw.lastTeams)

	venue, found, err := s.Venues.Get(ctx, int64(494))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(60383), *venue.Capacity)
}

func TestSyncTeamWithoutVenue(t *testing.T) {
	gw := &fakeGateway{teams: raw(`{"team": {"id": 7, "name": "Nomads"}, "venue": {"id": null}}`)}
	s := newTestServices(t, gw)

	team, err := s.Sync.SyncTeam(context.Background(), 7, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, team.VenueID)

	count, err := s.Venues.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFixtureDetails(t *testing.T) {
	gw := &fakeGateway{fixtures: raw(`{"fixture":{"id":1035}}`)}
	s := newTestServices(t, gw)

	details, err := s.Sync.FixtureDetails(context.Background(), 1035)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fixture":{"id":1035}}`, string(details.Fixture))
	assert.JSONEq(t, `{"type":"statistics"}`, string(details.Statistics[0]))
	assert.JSONEq(t, `{"type":"events"}`, string(details.Events[0]))
	assert.JSONEq(t, `{"type":"lineups"}`, string(details.Lineups[0]))
	assert.Equal(t, int32(4), gw.calls.Load())
}

func TestFixtureDetailsErrors(t *testing.T) {
	s := newTestServices(t, &fakeGateway{fixtures: []json.RawMessage{}})
	_, err := s.Sync.FixtureDetails(context.Background(), 1)
	assert.ErrorIs(t, err, errs.ErrNotFoundUpstream)

	boom := errors.New("boom")
	s = newTestServices(t, &fakeGateway{err: boom})
	_, err = s.Sync.FixtureDetails(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

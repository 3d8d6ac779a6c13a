package apifootball

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// query collects parameters, dropping the ones left unset.
type query url.Values

func (q query) setInt(key string, v int) query {
	if v != 0 {
		url.Values(q).Set(key, strconv.Itoa(v))
	}
	return q
}

func (q query) setStr(key, v string) query {
	if v != "" {
		url.Values(q).Set(key, v)
	}
	return q
}

func (q query) setBool(key string, v *bool) query {
	if v != nil {
		url.Values(q).Set(key, strconv.FormatBool(*v))
	}
	return q
}

func (q query) values() url.Values { return url.Values(q) }

// LeaguesQuery filters /leagues. Zero values are not sent.
type LeaguesQuery struct {
	ID      int
	Name    string
	Country string
	Season  int
	Current *bool
}

func (q LeaguesQuery) values() url.Values {
	return query{}.
		setInt("id", q.ID).
		setStr("name", q.Name).
		setStr("country", q.Country).
		setInt("season", q.Season).
		setBool("current", q.Current).
		values()
}

// Leagues lists competitions.
func (c *Client) Leagues(ctx context.Context, q LeaguesQuery) ([]json.RawMessage, error) {
	return c.list(ctx, "/leagues", q.values())
}

// Seasons lists every season year known upstream.
func (c *Client) Seasons(ctx context.Context) ([]json.RawMessage, error) {
	return c.list(ctx, "/leagues/seasons", nil)
}

// TeamsQuery filters /teams.
type TeamsQuery struct {
	ID      int
	Name    string
	League  int
	Season  int
	Country string
}

func (q TeamsQuery) values() url.Values {
	return query{}.
		setInt("id", q.ID).
		setStr("name", q.Name).
		setInt("league", q.League).
		setInt("season", q.Season).
		setStr("country", q.Country).
		values()
}

// Teams lists teams with their venue.
func (c *Client) Teams(ctx context.Context, q TeamsQuery) ([]json.RawMessage, error) {
	return c.list(ctx, "/teams", q.values())
}

// TeamStatistics returns one team's season statistics. API-Football
// answers this endpoint with an object rather than a list.
func (c *Client) TeamStatistics(ctx context.Context, team, league, season int) (json.RawMessage, error) {
	env, err := c.fetch(ctx, "/teams/statistics", query{}.
		setInt("team", team).
		setInt("league", league).
		setInt("season", season).
		values())
	if err != nil {
		return nil, err
	}
	return env.Response, nil
}

// FixturesQuery filters /fixtures. Date, From and To are YYYY-MM-DD.
type FixturesQuery struct {
	ID     int
	League int
	Season int
	Team   int
	Date   string
	From   string
	To     string
	Round  string
	Status string
	Live   string
	Last   int
	Next   int
}

func (q FixturesQuery) values() url.Values {
	return query{}.
		setInt("id", q.ID).
		setInt("league", q.League).
		setInt("season", q.Season).
		setInt("team", q.Team).
		setStr("date", q.Date).
		setStr("from", q.From).
		setStr("to", q.To).
		setStr("round", q.Round).
		setStr("status", q.Status).
		setStr("live", q.Live).
		setInt("last", q.Last).
		setInt("next", q.Next).
		values()
}

// Fixtures lists matches.
func (c *Client) Fixtures(ctx context.Context, q FixturesQuery) ([]json.RawMessage, error) {
	return c.list(ctx, "/fixtures", q.values())
}

// FixturesByDate lists the matches played on date (YYYY-MM-DD).
func (c *Client) FixturesByDate(ctx context.Context, date string) ([]json.RawMessage, error) {
	return c.Fixtures(ctx, FixturesQuery{Date: date})
}

// LiveFixtures lists matches in progress.
func (c *Client) LiveFixtures(ctx context.Context) ([]json.RawMessage, error) {
	return c.Fixtures(ctx, FixturesQuery{Live: "all"})
}

func (c *Client) fixtureDetail(ctx context.Context, kind string, fixture int) ([]json.RawMessage, error) {
	return c.list(ctx, "/fixtures/"+kind, query{}.setInt("fixture", fixture).values())
}

// FixtureStatistics returns both teams' statistics for a match.
func (c *Client) FixtureStatistics(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return c.fixtureDetail(ctx, "statistics", fixture)
}

// FixtureEvents returns goals, cards and substitutions of a match.
func (c *Client) FixtureEvents(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return c.fixtureDetail(ctx, "events", fixture)
}

// FixtureLineups returns the starting elevens and benches of a match.
func (c *Client) FixtureLineups(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return c.fixtureDetail(ctx, "lineups", fixture)
}

// FixturePlayerStatistics returns per-player statistics of a match.
func (c *Client) FixturePlayerStatistics(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return c.fixtureDetail(ctx, "players", fixture)
}

// Standings returns a league table. team is optional.
func (c *Client) Standings(ctx context.Context, league, season, team int) ([]json.RawMessage, error) {
	return c.list(ctx, "/standings", query{}.
		setInt("league", league).
		setInt("season", season).
		setInt("team", team).
		values())
}

// PlayersQuery filters /players.
type PlayersQuery struct {
	ID     int
	Team   int
	League int
	Season int
	Search string
}

func (q PlayersQuery) values() url.Values {
	return query{}.
		setInt("id", q.ID).
		setInt("team", q.Team).
		setInt("league", q.League).
		setInt("season", q.Season).
		setStr("search", q.Search).
		values()
}

// Players lists players with their season statistics.
func (c *Client) Players(ctx context.Context, q PlayersQuery) ([]json.RawMessage, error) {
	return c.list(ctx, "/players", q.values())
}

// PlayerSeasons lists the seasons a player has statistics for.
func (c *Client) PlayerSeasons(ctx context.Context, player int) ([]json.RawMessage, error) {
	return c.list(ctx, "/players/seasons", query{}.setInt("player", player).values())
}

// TopScorers returns a league's scoring chart.
func (c *Client) TopScorers(ctx context.Context, league, season int) ([]json.RawMessage, error) {
	return c.list(ctx, "/players/topscorers", query{}.setInt("league", league).setInt("season", season).values())
}

// TopAssists returns a league's assist chart.
func (c *Client) TopAssists(ctx context.Context, league, season int) ([]json.RawMessage, error) {
	return c.list(ctx, "/players/topassists", query{}.setInt("league", league).setInt("season", season).values())
}

// Predictions returns API-Football's prediction for a match.
func (c *Client) Predictions(ctx context.Context, fixture int) ([]json.RawMessage, error) {
	return c.list(ctx, "/predictions", query{}.setInt("fixture", fixture).values())
}

// HeadToHeadQuery filters /fixtures/headtohead. TeamA and TeamB are required.
type HeadToHeadQuery struct {
	TeamA  int
	TeamB  int
	Date   string
	League int
	Season int
	Last   int
	Next   int
}

func (q HeadToHeadQuery) values() url.Values {
	return query{}.
		setStr("h2h", fmt.Sprintf("%d-%d", q.TeamA, q.TeamB)).
		setStr("date", q.Date).
		setInt("league", q.League).
		setInt("season", q.Season).
		setInt("last", q.Last).
		setInt("next", q.Next).
		values()
}

// HeadToHead lists the meetings between two teams.
func (c *Client) HeadToHead(ctx context.Context, q HeadToHeadQuery) ([]json.RawMessage, error) {
	return c.list(ctx, "/fixtures/headtohead", q.values())
}

// Countries lists countries, optionally filtered by name.
func (c *Client) Countries(ctx context.Context, name string) ([]json.RawMessage, error) {
	return c.list(ctx, "/countries", query{}.setStr("name", name).values())
}

// Timezones lists the timezones accepted by the fixtures endpoints.
func (c *Client) Timezones(ctx context.Context) ([]json.RawMessage, error) {
	return c.list(ctx, "/timezone", nil)
}

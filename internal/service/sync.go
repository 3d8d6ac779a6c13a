package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/apifootball"
	loggerPkg "github.com/IlyasBaratov/FootballAnayticsDashboard/internal/logger"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Gateway is the part of the API-Football client the sync service needs.
type Gateway interface {
	Leagues(ctx context.Context, q apifootball.LeaguesQuery) ([]json.RawMessage, error)
	Teams(ctx context.Context, q apifootball.TeamsQuery) ([]json.RawMessage, error)
	Fixtures(ctx context.Context, q apifootball.FixturesQuery) ([]json.RawMessage, error)
	FixtureStatistics(ctx context.Context, fixture int) ([]json.RawMessage, error)
	FixtureEvents(ctx context.Context, fixture int) ([]json.RawMessage, error)
	FixtureLineups(ctx context.Context, fixture int) ([]json.RawMessage, error)
}

// SyncService copies upstream records into the database on request.
type SyncService struct {
	gateway Gateway
	leagues *LeagueService
	seasons *Base[model.Season, *model.Season]
	teams   *TeamService
	venues  *Base[model.Venue, *model.Venue]
	logger  *zerolog.Logger
}

func NewSyncService(gateway Gateway, leagues *LeagueService, seasons *Base[model.Season, *model.Season],
	teams *TeamService, venues *Base[model.Venue, *model.Venue], logger *zerolog.Logger,
) *SyncService {
	return &SyncService{
		gateway: gateway,
		leagues: leagues,
		seasons: seasons,
		teams:   teams,
		venues:  venues,
		logger:  logger,
	}
}

// log prefers the request-scoped logger carried by ctx.
func (s *SyncService) log(ctx context.Context) *zerolog.Logger {
	if l := loggerPkg.FromContext(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return s.logger
}

func first[T any](items []json.RawMessage, what string, id int) (*T, error) {
	if len(items) == 0 {
		return nil, errors.Wrapf(errs.ErrNotFoundUpstream, "%s %d", what, id)
	}
	var out T
	if err := json.Unmarshal(items[0], &out); err != nil {
		return nil, errors.Wrapf(err, "decoding %s %d", what, id)
	}
	return &out, nil
}

// SyncLeague fetches a league and stores it along with the seasons
// API-Football lists for it. season is optional.
func (s *SyncService) SyncLeague(ctx context.Context, leagueID, season int) (*model.League, error) {
	items, err := s.gateway.Leagues(ctx, apifootball.LeaguesQuery{ID: leagueID, Season: season})
	if err != nil {
		return nil, err
	}
	item, err := first[apifootball.LeagueItem](items, "league", leagueID)
	if err != nil {
		return nil, err
	}

	league, err := s.leagues.Upsert(ctx,
		payload.FromMap(map[string]any{"id": item.League.ID}),
		payload.FromMap(map[string]any{
			"name":         item.League.Name,
			"type":         item.League.Type,
			"logo":         item.League.Logo,
			"country":      item.Country.Name,
			"country_code": item.Country.Code,
			"flag":         item.Country.Flag,
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "storing league %d", leagueID)
	}

	for _, ss := range item.Seasons {
		_, err := s.seasons.Upsert(ctx,
			payload.FromMap(map[string]any{"league_id": league.ID, "year": strconv.Itoa(ss.Year)}),
			payload.FromMap(map[string]any{
				"start_date": parseDate(ss.Start),
				"end_date":   parseDate(ss.End),
				"is_current": ss.Current,
			}),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "storing season %d of league %d", ss.Year, leagueID)
		}
	}

	s.log(ctx).Info().
		Int64("league_id", league.ID).
		Str("name", league.Name).
		Int("seasons", len(item.Seasons)).
		Msg("synced league")

	return league, nil
}

// SyncTeam fetches a team and stores it with its venue. league and season
// are optional.
func (s *SyncService) SyncTeam(ctx context.Context, teamID, league, season int) (*model.Team, error) {
	items, err := s.gateway.Teams(ctx, apifootball.TeamsQuery{ID: teamID, League: league, Season: season})
	if err != nil {
		return nil, err
	}
	item, err := first[apifootball.TeamItem](items, "team", teamID)
	if err != nil {
		return nil, err
	}

	var venueID *int64
	if v := item.Venue; v != nil && v.ID != nil {
		venue, err := s.venues.Upsert(ctx,
			payload.FromMap(map[string]any{"id": *v.ID}),
			payload.FromMap(map[string]any{
				"name":     v.Name,
				"address":  v.Address,
				"city":     v.City,
				"capacity": v.Capacity,
				"surface":  v.Surface,
			}),
		)
		if err != nil {
			return nil, errors.Wrapf(err, "storing venue %d", *v.ID)
		}
		venueID = &venue.ID
	}

	team, err := s.teams.Upsert(ctx,
		payload.FromMap(map[string]any{"id": item.Team.ID}),
		payload.FromMap(map[string]any{
			"name":       item.Team.Name,
			"short_code": item.Team.Code,
			"country":    item.Team.Country,
			"founded":    item.Team.Founded,
			"national":   item.Team.National,
			"logo":       item.Team.Logo,
			"venue_id":   venueID,
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "storing team %d", teamID)
	}

	s.log(ctx).Info().Int64("team_id", team.ID).Str("name", team.Name).Msg("synced team")
	return team, nil
}

// FixtureDetails is a fixture with its statistics, events and lineups as
// returned upstream.
type FixtureDetails struct {
	Fixture    json.RawMessage   `json:"fixture"`
	Statistics []json.RawMessage `json:"statistics"`
	Events     []json.RawMessage `json:"events"`
	Lineups    []json.RawMessage `json:"lineups"`
}

// FixtureDetails fetches the four parts concurrently. Every call still
// goes through the client's limiter.
func (s *SyncService) FixtureDetails(ctx context.Context, fixtureID int) (*FixtureDetails, error) {
	var (
		out      FixtureDetails
		fixtures []json.RawMessage
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		fixtures, err = s.gateway.Fixtures(gctx, apifootball.FixturesQuery{ID: fixtureID})
		return err
	})
	g.Go(func() error {
		var err error
		out.Statistics, err = s.gateway.FixtureStatistics(gctx, fixtureID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Events, err = s.gateway.FixtureEvents(gctx, fixtureID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Lineups, err = s.gateway.FixtureLineups(gctx, fixtureID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(fixtures) == 0 {
		return nil, errors.Wrapf(errs.ErrNotFoundUpstream, "fixture %d", fixtureID)
	}
	out.Fixture = fixtures[0]
	return &out, nil
}

// parseDate reads API-Football's YYYY-MM-DD dates. Missing or malformed
// dates are stored as null.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil
	}
	return &t
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/apifootball"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

// Football is the part of the API-Football client served through the
// live endpoints. Responses are passed through untouched.
type Football interface {
	Fixtures(ctx context.Context, q apifootball.FixturesQuery) ([]json.RawMessage, error)
	LiveFixtures(ctx context.Context) ([]json.RawMessage, error)
	Standings(ctx context.Context, league, season, team int) ([]json.RawMessage, error)
	TopScorers(ctx context.Context, league, season int) ([]json.RawMessage, error)
	TopAssists(ctx context.Context, league, season int) ([]json.RawMessage, error)
	HeadToHead(ctx context.Context, q apifootball.HeadToHeadQuery) ([]json.RawMessage, error)
	TeamStatistics(ctx context.Context, team, league, season int) (json.RawMessage, error)
	Players(ctx context.Context, q apifootball.PlayersQuery) ([]json.RawMessage, error)
	Predictions(ctx context.Context, fixture int) ([]json.RawMessage, error)
}

type LiveHandler struct {
	Handler
	football Football
	sync     *service.SyncService
}

func NewLiveHandler(s *server.Server, football Football, sync *service.SyncService) *LiveHandler {
	return &LiveHandler{Handler: NewHandler(s), football: football, sync: sync}
}

// LiveResponse mirrors the upstream envelope's results/response pair.
type LiveResponse struct {
	Results  int               `json:"results"`
	Response []json.RawMessage `json:"response"`
}

func (r LiveResponse) Len() int { return len(r.Response) }

func live(items []json.RawMessage, err error) (LiveResponse, error) {
	if err != nil {
		return LiveResponse{}, err
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return LiveResponse{Results: len(items), Response: items}, nil
}

// LiveFixturesRequest without any filter asks for the fixtures in play.
type LiveFixturesRequest struct {
	Date   string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	League int    `query:"league" validate:"omitempty,min=1"`
	Season int    `query:"season" validate:"omitempty,min=1900,max=2100"`
	Team   int    `query:"team" validate:"omitempty,min=1"`
}

func (r *LiveFixturesRequest) Validate() error { return validation.Struct(r) }

func (h *LiveHandler) Fixtures(c echo.Context, req *LiveFixturesRequest) (LiveResponse, error) {
	ctx := c.Request().Context()
	if *req == (LiveFixturesRequest{}) {
		return live(h.football.LiveFixtures(ctx))
	}
	return live(h.football.Fixtures(ctx, apifootball.FixturesQuery{
		Date:   req.Date,
		League: req.League,
		Season: req.Season,
		Team:   req.Team,
	}))
}

type FixtureDetailsRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

func (r *FixtureDetailsRequest) Validate() error { return validation.Struct(r) }

// FixtureDetails fetches a fixture with its statistics, events and lineups.
func (h *LiveHandler) FixtureDetails(c echo.Context, req *FixtureDetailsRequest) (*service.FixtureDetails, error) {
	return h.sync.FixtureDetails(c.Request().Context(), req.ID)
}

type StandingsRequest struct {
	League int `query:"league" validate:"required,min=1"`
	Season int `query:"season" validate:"required,min=1900,max=2100"`
	Team   int `query:"team" validate:"omitempty,min=1"`
}

func (r *StandingsRequest) Validate() error { return validation.Struct(r) }

func (h *LiveHandler) Standings(c echo.Context, req *StandingsRequest) (LiveResponse, error) {
	return live(h.football.Standings(c.Request().Context(), req.League, req.Season, req.Team))
}

type LeagueSeasonRequest struct {
	League int `query:"league" validate:"required,min=1"`
	Season int `query:"season" validate:"required,min=1900,max=2100"`
}

func (r *LeagueSeasonRequest) Validate() error { return validation.Struct(r) }

func (h *LiveHandler) TopScorers(c echo.Context, req *LeagueSeasonRequest) (LiveResponse, error) {
	return live(h.football.TopScorers(c.Request().Context(), req.League, req.Season))
}

func (h *LiveHandler) TopAssists(c echo.Context, req *LeagueSeasonRequest) (LiveResponse, error) {
	return live(h.football.TopAssists(c.Request().Context(), req.League, req.Season))
}

type HeadToHeadRequest struct {
	TeamA  int `query:"team_a" validate:"required,min=1"`
	TeamB  int `query:"team_b" validate:"required,min=1,nefield=TeamA"`
	League int `query:"league" validate:"omitempty,min=1"`
	Season int `query:"season" validate:"omitempty,min=1900,max=2100"`
	Last   int `query:"last" validate:"omitempty,min=1,max=50"`
}

func (r *HeadToHeadRequest) Validate() error { return validation.Struct(r) }

func (h *LiveHandler) HeadToHead(c echo.Context, req *HeadToHeadRequest) (LiveResponse, error) {
	return live(h.football.HeadToHead(c.Request().Context(), apifootball.HeadToHeadQuery{
		TeamA:  req.TeamA,
		TeamB:  req.TeamB,
		League: req.League,
		Season: req.Season,
		Last:   req.Last,
	}))
}

type TeamStatisticsRequest struct {
	Team   int `param:"id" validate:"required,min=1"`
	League int `query:"league" validate:"required,min=1"`
	Season int `query:"season" validate:"required,min=1900,max=2100"`
}

func (r *TeamStatisticsRequest) Validate() error { return validation.Struct(r) }

func (h *LiveHandler) TeamStatistics(c echo.Context, req *TeamStatisticsRequest) (json.RawMessage, error) {
	return h.football.TeamStatistics(c.Request().Context(), req.Team, req.League, req.Season)
}

func (h *LiveHandler) Predictions(c echo.Context, req *FixtureDetailsRequest) (LiveResponse, error) {
	return live(h.football.Predictions(c.Request().Context(), req.ID))
}

// LivePlayersRequest needs a player id, a team or a search term.
type LivePlayersRequest struct {
	ID     int    `query:"id" validate:"omitempty,min=1"`
	Team   int    `query:"team" validate:"omitempty,min=1"`
	League int    `query:"league" validate:"omitempty,min=1"`
	Season int    `query:"season" validate:"required,min=1900,max=2100"`
	Search string `query:"search" validate:"omitempty,min=4"`
}

func (r *LivePlayersRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.ID == 0 && r.Team == 0 && r.Search == "" {
		return validation.CustomValidationErrors{{Field: "id", Message: "id, team or search is required"}}
	}
	return nil
}

func (h *LiveHandler) Players(c echo.Context, req *LivePlayersRequest) (LiveResponse, error) {
	return live(h.football.Players(c.Request().Context(), apifootball.PlayersQuery{
		ID:     req.ID,
		Team:   req.Team,
		League: req.League,
		Season: req.Season,
		Search: req.Search,
	}))
}

func (h *LiveHandler) Register(g *echo.Group) {
	lg := g.Group("/live")
	lg.GET("/fixtures", Handle(h.Handler, h.Fixtures, http.StatusOK))
	lg.GET("/fixtures/:id", Handle(h.Handler, h.FixtureDetails, http.StatusOK))
	lg.GET("/fixtures/:id/predictions", Handle(h.Handler, h.Predictions, http.StatusOK))
	lg.GET("/players", Handle(h.Handler, h.Players, http.StatusOK))
	lg.GET("/standings", Handle(h.Handler, h.Standings, http.StatusOK))
	lg.GET("/top-scorers", Handle(h.Handler, h.TopScorers, http.StatusOK))
	lg.GET("/top-assists", Handle(h.Handler, h.TopAssists, http.StatusOK))
	lg.GET("/head-to-head", Handle(h.Handler, h.HeadToHead, http.StatusOK))
	lg.GET("/teams/:id/statistics", Handle(h.Handler, h.TeamStatistics, http.StatusOK))
}

package handler

import (
	"net/http"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type SyncHandler struct {
	Handler
	sync *service.SyncService
}

func NewSyncHandler(s *server.Server, sync *service.SyncService) *SyncHandler {
	return &SyncHandler{Handler: NewHandler(s), sync: sync}
}

type SyncLeagueRequest struct {
	ID     int `param:"id" json:"-" validate:"required,min=1"`
	Season int `json:"season" validate:"omitempty,min=1900,max=2100"`
}

func (r *SyncLeagueRequest) Validate() error { return validation.Struct(r) }

type SyncTeamRequest struct {
	ID     int `param:"id" json:"-" validate:"required,min=1"`
	League int `json:"league" validate:"omitempty,min=1"`
	Season int `json:"season" validate:"omitempty,min=1900,max=2100"`
}

func (r *SyncTeamRequest) Validate() error { return validation.Struct(r) }

func (h *SyncHandler) League(c echo.Context, req *SyncLeagueRequest) (*model.League, error) {
	return h.sync.SyncLeague(c.Request().Context(), req.ID, req.Season)
}

func (h *SyncHandler) Team(c echo.Context, req *SyncTeamRequest) (*model.Team, error) {
	return h.sync.SyncTeam(c.Request().Context(), req.ID, req.League, req.Season)
}

func (h *SyncHandler) Register(g *echo.Group) {
	g.POST("/sync/leagues/:id", Handle(h.Handler, h.League, http.StatusOK))
	g.POST("/sync/teams/:id", Handle(h.Handler, h.Team, http.StatusOK))
}

package handler

import (
	"net/http"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type LeagueHandler struct {
	Handler
	leagues *service.LeagueService
	crud    crud[model.League]
}

func NewLeagueHandler(s *server.Server, leagues *service.LeagueService) *LeagueHandler {
	return &LeagueHandler{
		Handler: NewHandler(s),
		leagues: leagues,
		crud:    crud[model.League]{svc: leagues, name: "League"},
	}
}

type ListLeaguesRequest struct {
	PageRequest
}

func (r *ListLeaguesRequest) Validate() error { return validation.Struct(r) }

type GetLeagueRequest struct {
	IDRequest
}

func (r *GetLeagueRequest) Validate() error { return validation.Struct(r) }

// CreateLeagueRequest carries the API-Football league id.
type CreateLeagueRequest struct {
	ID          int64   `json:"id" db:"id" validate:"required,min=1"`
	Name        string  `json:"name" db:"name" validate:"required,max=255"`
	Type        *string `json:"type" db:"type" validate:"omitempty,max=50"`
	Country     *string `json:"country" db:"country" validate:"omitempty,max=100"`
	CountryCode *string `json:"country_code" db:"country_code" validate:"omitempty,max=10"`
	Logo        *string `json:"logo" db:"logo" validate:"omitempty,url"`
	Flag        *string `json:"flag" db:"flag" validate:"omitempty,url"`
}

func (r *CreateLeagueRequest) Validate() error { return validation.Struct(r) }

type BulkCreateLeaguesRequest struct {
	Items []CreateLeagueRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

func (r *BulkCreateLeaguesRequest) Validate() error { return validation.Struct(r) }

// UpdateLeagueRequest is a partial update. Absent fields are left untouched.
type UpdateLeagueRequest struct {
	ID          int64   `param:"id" json:"-" db:"-" validate:"required,min=1"`
	Name        *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	Type        *string `json:"type" db:"type" validate:"omitempty,max=50"`
	Country     *string `json:"country" db:"country" validate:"omitempty,max=100"`
	CountryCode *string `json:"country_code" db:"country_code" validate:"omitempty,max=10"`
	Logo        *string `json:"logo" db:"logo" validate:"omitempty,url"`
	Flag        *string `json:"flag" db:"flag" validate:"omitempty,url"`
}

func (r *UpdateLeagueRequest) Validate() error { return validation.Struct(r) }

func (h *LeagueHandler) List(c echo.Context, req *ListLeaguesRequest) (Page[model.League], error) {
	return h.crud.list(c, req.PageRequest)
}

func (h *LeagueHandler) Get(c echo.Context, req *GetLeagueRequest) (*model.League, error) {
	return h.crud.get(c, req.ID)
}

func (h *LeagueHandler) Create(c echo.Context, req *CreateLeagueRequest) (*model.League, error) {
	return h.crud.create(c, req)
}

func (h *LeagueHandler) BulkCreate(c echo.Context, req *BulkCreateLeaguesRequest) ([]model.League, error) {
	return bulkCreate(c, h.crud, req.Items)
}

func (h *LeagueHandler) Update(c echo.Context, req *UpdateLeagueRequest) (*model.League, error) {
	return h.crud.update(c, req.ID, req)
}

func (h *LeagueHandler) Delete(c echo.Context, req *DeleteRequest) error {
	return h.crud.delete(c, req.ID)
}

// Seasons lists a league's seasons, newest first.
func (h *LeagueHandler) Seasons(c echo.Context, req *GetLeagueRequest) ([]model.Season, error) {
	if err := h.crud.exists(c, req.ID); err != nil {
		return nil, err
	}
	return h.leagues.Seasons(c.Request().Context(), req.ID)
}

func (h *LeagueHandler) Register(g *echo.Group) {
	g.GET("/leagues", Handle(h.Handler, h.List, http.StatusOK))
	g.POST("/leagues", Handle(h.Handler, h.Create, http.StatusCreated))
	g.POST("/leagues/bulk", Handle(h.Handler, h.BulkCreate, http.StatusCreated))
	g.GET("/leagues/:id", Handle(h.Handler, h.Get, http.StatusOK))
	g.PUT("/leagues/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.PATCH("/leagues/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.DELETE("/leagues/:id", HandleNoContent(h.Handler, h.Delete, http.StatusNoContent))
	g.GET("/leagues/:id/seasons", Handle(h.Handler, h.Seasons, http.StatusOK))
}

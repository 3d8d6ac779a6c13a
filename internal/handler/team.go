package handler

import (
	"net/http"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type TeamHandler struct {
	Handler
	teams *service.TeamService
	crud  crud[model.Team]
}

func NewTeamHandler(s *server.Server, teams *service.TeamService) *TeamHandler {
	return &TeamHandler{
		Handler: NewHandler(s),
		teams:   teams,
		crud:    crud[model.Team]{svc: teams, name: "Team"},
	}
}

type ListTeamsRequest struct {
	PageRequest
}

func (r *ListTeamsRequest) Validate() error { return validation.Struct(r) }

type GetTeamRequest struct {
	IDRequest
}

func (r *GetTeamRequest) Validate() error { return validation.Struct(r) }

type CreateTeamRequest struct {
	ID        int64   `json:"id" db:"id" validate:"required,min=1"`
	Name      string  `json:"name" db:"name" validate:"required,max=255"`
	ShortCode *string `json:"short_code" db:"short_code" validate:"omitempty,max=10"`
	Country   *string `json:"country" db:"country" validate:"omitempty,max=100"`
	Founded   *int64  `json:"founded" db:"founded" validate:"omitempty,min=1800,max=2100"`
	National  *bool   `json:"national" db:"national"`
	Logo      *string `json:"logo" db:"logo" validate:"omitempty,url"`
	VenueID   *int64  `json:"venue_id" db:"venue_id" validate:"omitempty,min=1"`
}

func (r *CreateTeamRequest) Validate() error { return validation.Struct(r) }

type BulkCreateTeamsRequest struct {
	Items []CreateTeamRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

func (r *BulkCreateTeamsRequest) Validate() error { return validation.Struct(r) }

// UpdateTeamRequest is a partial update. Absent fields are left untouched.
type UpdateTeamRequest struct {
	ID        int64   `param:"id" json:"-" db:"-" validate:"required,min=1"`
	Name      *string `json:"name" db:"name" validate:"omitempty,min=1,max=255"`
	ShortCode *string `json:"short_code" db:"short_code" validate:"omitempty,max=10"`
	Country   *string `json:"country" db:"country" validate:"omitempty,max=100"`
	Founded   *int64  `json:"founded" db:"founded" validate:"omitempty,min=1800,max=2100"`
	National  *bool   `json:"national" db:"national"`
	Logo      *string `json:"logo" db:"logo" validate:"omitempty,url"`
	VenueID   *int64  `json:"venue_id" db:"venue_id" validate:"omitempty,min=1"`
}

func (r *UpdateTeamRequest) Validate() error { return validation.Struct(r) }

func (h *TeamHandler) List(c echo.Context, req *ListTeamsRequest) (Page[model.Team], error) {
	return h.crud.list(c, req.PageRequest)
}

func (h *TeamHandler) Get(c echo.Context, req *GetTeamRequest) (*model.Team, error) {
	return h.crud.get(c, req.ID)
}

func (h *TeamHandler) Create(c echo.Context, req *CreateTeamRequest) (*model.Team, error) {
	return h.crud.create(c, req)
}

func (h *TeamHandler) BulkCreate(c echo.Context, req *BulkCreateTeamsRequest) ([]model.Team, error) {
	return bulkCreate(c, h.crud, req.Items)
}

func (h *TeamHandler) Update(c echo.Context, req *UpdateTeamRequest) (*model.Team, error) {
	return h.crud.update(c, req.ID, req)
}

func (h *TeamHandler) Delete(c echo.Context, req *DeleteRequest) error {
	return h.crud.delete(c, req.ID)
}

// Fixtures lists the team's home and away fixtures, newest first.
func (h *TeamHandler) Fixtures(c echo.Context, req *GetTeamRequest) ([]model.Fixture, error) {
	if err := h.crud.exists(c, req.ID); err != nil {
		return nil, err
	}
	return h.teams.Fixtures(c.Request().Context(), req.ID)
}

func (h *TeamHandler) Register(g *echo.Group) {
	g.GET("/teams", Handle(h.Handler, h.List, http.StatusOK))
	g.POST("/teams", Handle(h.Handler, h.Create, http.StatusCreated))
	g.POST("/teams/bulk", Handle(h.Handler, h.BulkCreate, http.StatusCreated))
	g.GET("/teams/:id", Handle(h.Handler, h.Get, http.StatusOK))
	g.PUT("/teams/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.PATCH("/teams/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.DELETE("/teams/:id", HandleNoContent(h.Handler, h.Delete, http.StatusNoContent))
	g.GET("/teams/:id/fixtures", Handle(h.Handler, h.Fixtures, http.StatusOK))
}

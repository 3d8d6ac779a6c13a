package handler

import (
	"net/http"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type FixtureHandler struct {
	Handler
	fixtures *service.FixtureService
	crud     crud[model.Fixture]
}

func NewFixtureHandler(s *server.Server, fixtures *service.FixtureService) *FixtureHandler {
	return &FixtureHandler{
		Handler:  NewHandler(s),
		fixtures: fixtures,
		crud:     crud[model.Fixture]{svc: fixtures, name: "Fixture"},
	}
}

type ListFixturesRequest struct {
	PageRequest
}

func (r *ListFixturesRequest) Validate() error { return validation.Struct(r) }

type GetFixtureRequest struct {
	IDRequest
}

func (r *GetFixtureRequest) Validate() error { return validation.Struct(r) }

// FixtureFields are the writable columns shared by create and update. It is
// exported so payload normalization reads its fields.
type FixtureFields struct {
	LeagueID  *int64     `json:"league_id" db:"league_id" validate:"omitempty,min=1"`
	SeasonID  *string    `json:"season_id" db:"season_id"`
	VenueID   *int64     `json:"venue_id" db:"venue_id" validate:"omitempty,min=1"`
	Referee   *string    `json:"referee" db:"referee" validate:"omitempty,max=255"`
	EventDate *time.Time `json:"event_date" db:"event_date"`
	Status    *string    `json:"status" db:"status" validate:"omitempty,max=50"`
	RoundName *string    `json:"round_name" db:"round_name" validate:"omitempty,max=100"`
	HomeScore *int64     `json:"home_score" db:"home_score" validate:"omitempty,min=0"`
	AwayScore *int64     `json:"away_score" db:"away_score" validate:"omitempty,min=0"`
}

// validate runs the tag checks on v, then requires season_id to be a UUID.
func (f *FixtureFields) validate(v any) error {
	if err := validation.Struct(v); err != nil {
		return err
	}
	if f.SeasonID != nil && !validation.IsValidUUID(*f.SeasonID) {
		return validation.CustomValidationErrors{{Field: "season_id", Message: "must be a valid UUID"}}
	}
	return nil
}

type CreateFixtureRequest struct {
	ID         int64 `json:"id" db:"id" validate:"required,min=1"`
	HomeTeamID int64 `json:"home_team_id" db:"home_team_id" validate:"required,min=1"`
	AwayTeamID int64 `json:"away_team_id" db:"away_team_id" validate:"required,min=1,nefield=HomeTeamID"`
	FixtureFields
}

func (r *CreateFixtureRequest) Validate() error { return r.FixtureFields.validate(r) }

type BulkCreateFixturesRequest struct {
	Items []CreateFixtureRequest `json:"items" validate:"required,min=1,max=500"`
}

func (r *BulkCreateFixturesRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	for i := range r.Items {
		if err := r.Items[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

type UpdateFixtureRequest struct {
	ID         int64  `param:"id" json:"-" db:"-" validate:"required,min=1"`
	HomeTeamID *int64 `json:"home_team_id" db:"home_team_id" validate:"omitempty,min=1"`
	AwayTeamID *int64 `json:"away_team_id" db:"away_team_id" validate:"omitempty,min=1"`
	FixtureFields
}

func (r *UpdateFixtureRequest) Validate() error { return r.FixtureFields.validate(r) }

func (h *FixtureHandler) List(c echo.Context, req *ListFixturesRequest) (Page[model.Fixture], error) {
	return h.crud.list(c, req.PageRequest)
}

// Get answers with the fixture and its events in match order.
func (h *FixtureHandler) Get(c echo.Context, req *GetFixtureRequest) (*service.FixtureWithEvents, error) {
	fixture, found, err := h.fixtures.WithEvents(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewNotFoundError("Fixture not found", false, nil)
	}
	return fixture, nil
}

func (h *FixtureHandler) Create(c echo.Context, req *CreateFixtureRequest) (*model.Fixture, error) {
	return h.crud.create(c, req)
}

func (h *FixtureHandler) BulkCreate(c echo.Context, req *BulkCreateFixturesRequest) ([]model.Fixture, error) {
	return bulkCreate(c, h.crud, req.Items)
}

func (h *FixtureHandler) Update(c echo.Context, req *UpdateFixtureRequest) (*model.Fixture, error) {
	return h.crud.update(c, req.ID, req)
}

func (h *FixtureHandler) Delete(c echo.Context, req *DeleteRequest) error {
	return h.crud.delete(c, req.ID)
}

func (h *FixtureHandler) Register(g *echo.Group) {
	g.GET("/fixtures", Handle(h.Handler, h.List, http.StatusOK))
	g.POST("/fixtures", Handle(h.Handler, h.Create, http.StatusCreated))
	g.POST("/fixtures/bulk", Handle(h.Handler, h.BulkCreate, http.StatusCreated))
	g.GET("/fixtures/:id", Handle(h.Handler, h.Get, http.StatusOK))
	g.PUT("/fixtures/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.PATCH("/fixtures/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.DELETE("/fixtures/:id", HandleNoContent(h.Handler, h.Delete, http.StatusNoContent))
}

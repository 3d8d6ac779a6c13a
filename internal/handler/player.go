package handler

import (
	"net/http"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

type PlayerHandler struct {
	Handler
	players *service.PlayerService
	crud    crud[model.Player]
}

func NewPlayerHandler(s *server.Server, players *service.PlayerService) *PlayerHandler {
	return &PlayerHandler{
		Handler: NewHandler(s),
		players: players,
		crud:    crud[model.Player]{svc: players, name: "Player"},
	}
}

type ListPlayersRequest struct {
	PageRequest
}

func (r *ListPlayersRequest) Validate() error { return validation.Struct(r) }

type GetPlayerRequest struct {
	IDRequest
}

func (r *GetPlayerRequest) Validate() error { return validation.Struct(r) }

// CreatePlayerRequest takes birth_date as an RFC 3339 timestamp.
type CreatePlayerRequest struct {
	ID          int64      `json:"id" db:"id" validate:"required,min=1"`
	Name        *string    `json:"name" db:"name" validate:"omitempty,max=255"`
	Firstname   *string    `json:"firstname" db:"firstname" validate:"omitempty,max=255"`
	Lastname    *string    `json:"lastname" db:"lastname" validate:"omitempty,max=255"`
	Nationality *string    `json:"nationality" db:"nationality" validate:"omitempty,max=100"`
	BirthDate   *time.Time `json:"birth_date" db:"birth_date"`
	Height      *string    `json:"height" db:"height" validate:"omitempty,max=20"`
	Weight      *string    `json:"weight" db:"weight" validate:"omitempty,max=20"`
	Photo       *string    `json:"photo" db:"photo" validate:"omitempty,url"`
}

func (r *CreatePlayerRequest) Validate() error { return validation.Struct(r) }

type BulkCreatePlayersRequest struct {
	Items []CreatePlayerRequest `json:"items" validate:"required,min=1,max=500,dive"`
}

func (r *BulkCreatePlayersRequest) Validate() error { return validation.Struct(r) }

type UpdatePlayerRequest struct {
	ID          int64      `param:"id" json:"-" db:"-" validate:"required,min=1"`
	Name        *string    `json:"name" db:"name" validate:"omitempty,max=255"`
	Firstname   *string    `json:"firstname" db:"firstname" validate:"omitempty,max=255"`
	Lastname    *string    `json:"lastname" db:"lastname" validate:"omitempty,max=255"`
	Nationality *string    `json:"nationality" db:"nationality" validate:"omitempty,max=100"`
	BirthDate   *time.Time `json:"birth_date" db:"birth_date"`
	Height      *string    `json:"height" db:"height" validate:"omitempty,max=20"`
	Weight      *string    `json:"weight" db:"weight" validate:"omitempty,max=20"`
	Photo       *string    `json:"photo" db:"photo" validate:"omitempty,url"`
}

func (r *UpdatePlayerRequest) Validate() error { return validation.Struct(r) }

type CurrentTeamResponse struct {
	PlayerID int64       `json:"player_id"`
	Team     *model.Team `json:"team"`
}

func (h *PlayerHandler) List(c echo.Context, req *ListPlayersRequest) (Page[model.Player], error) {
	return h.crud.list(c, req.PageRequest)
}

func (h *PlayerHandler) Get(c echo.Context, req *GetPlayerRequest) (*model.Player, error) {
	return h.crud.get(c, req.ID)
}

func (h *PlayerHandler) Create(c echo.Context, req *CreatePlayerRequest) (*model.Player, error) {
	return h.crud.create(c, req)
}

func (h *PlayerHandler) BulkCreate(c echo.Context, req *BulkCreatePlayersRequest) ([]model.Player, error) {
	return bulkCreate(c, h.crud, req.Items)
}

func (h *PlayerHandler) Update(c echo.Context, req *UpdatePlayerRequest) (*model.Player, error) {
	return h.crud.update(c, req.ID, req)
}

func (h *PlayerHandler) Delete(c echo.Context, req *DeleteRequest) error {
	return h.crud.delete(c, req.ID)
}

// CurrentTeam answers with a null team when the player has no current
// roster entry.
func (h *PlayerHandler) CurrentTeam(c echo.Context, req *GetPlayerRequest) (CurrentTeamResponse, error) {
	if err := h.crud.exists(c, req.ID); err != nil {
		return CurrentTeamResponse{}, err
	}

	team, _, err := h.players.CurrentTeam(c.Request().Context(), req.ID)
	if err != nil {
		return CurrentTeamResponse{}, err
	}
	return CurrentTeamResponse{PlayerID: req.ID, Team: team}, nil
}

func (h *PlayerHandler) Register(g *echo.Group) {
	g.GET("/players", Handle(h.Handler, h.List, http.StatusOK))
	g.POST("/players", Handle(h.Handler, h.Create, http.StatusCreated))
	g.POST("/players/bulk", Handle(h.Handler, h.BulkCreate, http.StatusCreated))
	g.GET("/players/:id", Handle(h.Handler, h.Get, http.StatusOK))
	g.PUT("/players/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.PATCH("/players/:id", Handle(h.Handler, h.Update, http.StatusOK))
	g.DELETE("/players/:id", HandleNoContent(h.Handler, h.Delete, http.StatusNoContent))
	g.GET("/players/:id/current-team", Handle(h.Handler, h.CurrentTeam, http.StatusOK))
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID          int64      `json:"id"`
	Name        *string    `json:"name"`
	Firstname   *string    `json:"firstname"`
	Lastname    *string    `json:"lastname"`
	Nationality *string    `json:"nationality"`
	BirthDate   *time.Time `json:"birth_date"`
	Height      *string    `json:"height"`
	Weight      *string    `json:"weight"`
	Photo       *string    `json:"photo"`
}

var playerSchema = &Schema{
	Table:    "players",
	Identity: "id",
	Columns:  []string{"id", "name", "firstname", "lastname", "nationality", "birth_date", "height", "weight", "photo"},
	OrderBy:  "id",
	ParseID:  ParseInt64ID,
}

func (p *Player) Schema() *Schema { return playerSchema }
func (p *Player) Identity() any   { return p.ID }

func (p *Player) Attributes() map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        nullable(p.Name),
		"firstname":   nullable(p.Firstname),
		"lastname":    nullable(p.Lastname),
		"nationality": nullable(p.Nationality),
		"birth_date":  nullable(p.BirthDate),
		"height":      nullable(p.Height),
		"weight":      nullable(p.Weight),
		"photo":       nullable(p.Photo),
	}
}

func (p *Player) ScanDest() []any {
	return []any{&p.ID, &p.Name, &p.Firstname, &p.Lastname, &p.Nationality, &p.BirthDate, &p.Height, &p.Weight, &p.Photo}
}

// PlayerTeamSeason links a player to a team for one season.
type PlayerTeamSeason struct {
	ID        uuid.UUID `json:"id"`
	PlayerID  int64     `json:"player_id"`
	TeamID    int64     `json:"team_id"`
	SeasonID  uuid.UUID `json:"season_id"`
	Number    *int64    `json:"number"`
	Position  *string   `json:"position"`
	IsCurrent bool      `json:"is_current"`
}

var playerTeamSeasonSchema = &Schema{
	Table:    "player_team_seasons",
	Identity: "id",
	Columns:  []string{"id", "player_id", "team_id", "season_id", "number", "position", "is_current"},
	OrderBy:  "id",
	NewID:    newUUID,
	ParseID:  ParseUUID,
}

func (p *PlayerTeamSeason) Schema() *Schema { return playerTeamSeasonSchema }
func (p *PlayerTeamSeason) Identity() any   { return p.ID }

func (p *PlayerTeamSeason) Attributes() map[string]any {
	return map[string]any{
		"id":         p.ID,
		"player_id":  p.PlayerID,
		"team_id":    p.TeamID,
		"season_id":  p.SeasonID,
		"number":     nullable(p.Number),
		"position":   nullable(p.Position),
		"is_current": p.IsCurrent,
	}
}

func (p *PlayerTeamSeason) ScanDest() []any {
	return []any{&p.ID, &p.PlayerID, &p.TeamID, &p.SeasonID, &p.Number, &p.Position, &p.IsCurrent}
}

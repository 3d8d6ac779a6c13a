package model

import (
	"time"

	"github.com/google/uuid"
)

// Fixture is a single match.
type Fixture struct {
	ID         int64         `json:"id"`
	LeagueID   *int64        `json:"league_id"`
	SeasonID   uuid.NullUUID `json:"season_id"`
	VenueID    *int64        `json:"venue_id"`
	HomeTeamID int64         `json:"home_team_id"`
	AwayTeamID int64         `json:"away_team_id"`
	Referee    *string       `json:"referee"`
	EventDate  *time.Time    `json:"event_date"`
	Status     *string       `json:"status"`
	RoundName  *string       `json:"round_name"`
	HomeScore  *int64        `json:"home_score"`
	AwayScore  *int64        `json:"away_score"`
}

var fixtureSchema = &Schema{
	Table:    "fixtures",
	Identity: "id",
	Columns: []string{
		"id", "league_id", "season_id", "venue_id", "home_team_id", "away_team_id",
		"referee", "event_date", "status", "round_name", "home_score", "away_score",
	},
	OrderBy: "id",
	ParseID: ParseInt64ID,
}

func (f *Fixture) Schema() *Schema { return fixtureSchema }
func (f *Fixture) Identity() any   { return f.ID }

func (f *Fixture) Attributes() map[string]any {
	return map[string]any{
		"id":           f.ID,
		"league_id":    nullable(f.LeagueID),
		"season_id":    f.SeasonID,
		"venue_id":     nullable(f.VenueID),
		"home_team_id": f.HomeTeamID,
		"away_team_id": f.AwayTeamID,
		"referee":      nullable(f.Referee),
		"event_date":   nullable(f.EventDate),
		"status":       nullable(f.Status),
		"round_name":   nullable(f.RoundName),
		"home_score":   nullable(f.HomeScore),
		"away_score":   nullable(f.AwayScore),
	}
}

func (f *Fixture) ScanDest() []any {
	return []any{
		&f.ID, &f.LeagueID, &f.SeasonID, &f.VenueID, &f.HomeTeamID, &f.AwayTeamID,
		&f.Referee, &f.EventDate, &f.Status, &f.RoundName, &f.HomeScore, &f.AwayScore,
	}
}

// Event is something that happened during a fixture: goal, card, substitution.
type Event struct {
	ID          uuid.UUID `json:"id"`
	FixtureID   int64     `json:"fixture_id"`
	TeamID      *int64    `json:"team_id"`
	PlayerID    *int64    `json:"player_id"`
	AssistID    *int64    `json:"assist_id"`
	EventType   string    `json:"event_type"`
	Detail      *string   `json:"detail"`
	Minute      *int64    `json:"minute"`
	ExtraMinute *int64    `json:"extra_minute"`
}

var eventSchema = &Schema{
	Table:    "events",
	Identity: "id",
	Columns:  []string{"id", "fixture_id", "team_id", "player_id", "assist_id", "event_type", "detail", "minute", "extra_minute"},
	OrderBy:  "minute ASC NULLS LAST, extra_minute ASC NULLS LAST, id",
	NewID:    newUUID,
	ParseID:  ParseUUID,
}

func (e *Event) Schema() *Schema { return eventSchema }
func (e *Event) Identity() any   { return e.ID }

func (e *Event) Attributes() map[string]any {
	return map[string]any{
		"id":           e.ID,
		"fixture_id":   e.FixtureID,
		"team_id":      nullable(e.TeamID),
		"player_id":    nullable(e.PlayerID),
		"assist_id":    nullable(e.AssistID),
		"event_type":   e.EventType,
		"detail":       nullable(e.Detail),
		"minute":       nullable(e.Minute),
		"extra_minute": nullable(e.ExtraMinute),
	}
}

func (e *Event) ScanDest() []any {
	return []any{
		&e.ID, &e.FixtureID, &e.TeamID, &e.PlayerID, &e.AssistID,
		&e.EventType, &e.Detail, &e.Minute, &e.ExtraMinute,
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// League is an API-Football competition.
type League struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Type        *string `json:"type"`
	Country     *string `json:"country"`
	CountryCode *string `json:"country_code"`
	Logo        *string `json:"logo"`
	Flag        *string `json:"flag"`
}

var leagueSchema = &Schema{
	Table:    "leagues",
	Identity: "id",
	Columns:  []string{"id", "name", "type", "country", "country_code", "logo", "flag"},
	OrderBy:  "id",
	ParseID:  ParseInt64ID,
}

func (l *League) Schema() *Schema { return leagueSchema }
func (l *League) Identity() any   { return l.ID }

func (l *League) Attributes() map[string]any {
	return map[string]any{
		"id":           l.ID,
		"name":         l.Name,
		"type":         nullable(l.Type),
		"country":      nullable(l.Country),
		"country_code": nullable(l.CountryCode),
		"logo":         nullable(l.Logo),
		"flag":         nullable(l.Flag),
	}
}

func (l *League) ScanDest() []any {
	return []any{&l.ID, &l.Name, &l.Type, &l.Country, &l.CountryCode, &l.Logo, &l.Flag}
}

// Season is one year of a league. Its id is generated.
type Season struct {
	ID        uuid.UUID  `json:"id"`
	LeagueID  int64      `json:"league_id"`
	Year      string     `json:"year"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IsCurrent bool       `json:"is_current"`
}

var seasonSchema = &Schema{
	Table:    "seasons",
	Identity: "id",
	Columns:  []string{"id", "league_id", "year", "start_date", "end_date", "is_current"},
	OrderBy:  "id",
	NewID:    newUUID,
	ParseID:  ParseUUID,
}

func (s *Season) Schema() *Schema { return seasonSchema }
func (s *Season) Identity() any   { return s.ID }

func (s *Season) Attributes() map[string]any {
	return map[string]any{
		"id":         s.ID,
		"league_id":  s.LeagueID,
		"year":       s.Year,
		"start_date": nullable(s.StartDate),
		"end_date":   nullable(s.EndDate),
		"is_current": s.IsCurrent,
	}
}

func (s *Season) ScanDest() []any {
	return []any{&s.ID, &s.LeagueID, &s.Year, &s.StartDate, &s.EndDate, &s.IsCurrent}
}

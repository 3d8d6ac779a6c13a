package model

import "github.com/shopspring/decimal"

// Venue is a stadium. Coordinates are NUMERIC(9,6).
type Venue struct {
	ID        int64               `json:"id"`
	Name      *string             `json:"name"`
	City      *string             `json:"city"`
	Country   *string             `json:"country"`
	Capacity  *int64              `json:"capacity"`
	Surface   *string             `json:"surface"`
	Address   *string             `json:"address"`
	Latitude  decimal.NullDecimal `json:"latitude"`
	Longitude decimal.NullDecimal `json:"longitude"`
}

var venueSchema = &Schema{
	Table:    "venues",
	Identity: "id",
	Columns:  []string{"id", "name", "city", "country", "capacity", "surface", "address", "latitude", "longitude"},
	OrderBy:  "id",
	ParseID:  ParseInt64ID,
}

func (v *Venue) Schema() *Schema { return venueSchema }
func (v *Venue) Identity() any   { return v.ID }

func (v *Venue) Attributes() map[string]any {
	return map[string]any{
		"id":        v.ID,
		"name":      nullable(v.Name),
		"city":      nullable(v.City),
		"country":   nullable(v.Country),
		"capacity":  nullable(v.Capacity),
		"surface":   nullable(v.Surface),
		"address":   nullable(v.Address),
		"latitude":  v.Latitude,
		"longitude": v.Longitude,
	}
}

func (v *Venue) ScanDest() []any {
	return []any{&v.ID, &v.Name, &v.City, &v.Country, &v.Capacity, &v.Surface, &v.Address, &v.Latitude, &v.Longitude}
}

// Team is an API-Football club or national side.
type Team struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	ShortCode *string `json:"short_code"`
	Country   *string `json:"country"`
	Founded   *int64  `json:"founded"`
	National  bool    `json:"national"`
	Logo      *string `json:"logo"`
	VenueID   *int64  `json:"venue_id"`
}

var teamSchema = &Schema{
	Table:    "teams",
	Identity: "id",
	Columns:  []string{"id", "name", "short_code", "country", "founded", "national", "logo", "venue_id"},
	OrderBy:  "id",
	ParseID:  ParseInt64ID,
}

func (t *Team) Schema() *Schema { return teamSchema }
func (t *Team) Identity() any   { return t.ID }

func (t *Team) Attributes() map[string]any {
	return map[string]any{
		"id":         t.ID,
		"name":       t.Name,
		"short_code": nullable(t.ShortCode),
		"country":    nullable(t.Country),
		"founded":    nullable(t.Founded),
		"national":   t.National,
		"logo":       nullable(t.Logo),
		"venue_id":   nullable(t.VenueID),
	}
}

func (t *Team) ScanDest() []any {
	return []any{&t.ID, &t.Name, &t.ShortCode, &t.Country, &t.Founded, &t.National, &t.Logo, &t.VenueID}
}

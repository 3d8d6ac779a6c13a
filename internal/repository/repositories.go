package repository

import (
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Leagues           *Repository[model.League, *model.League]
	Seasons           *Repository[model.Season, *model.Season]
	Venues            *Repository[model.Venue, *model.Venue]
	Teams             *Repository[model.Team, *model.Team]
	Players           *Repository[model.Player, *model.Player]
	PlayerTeamSeasons *Repository[model.PlayerTeamSeason, *model.PlayerTeamSeason]
	Fixtures          *Repository[model.Fixture, *model.Fixture]
	Events            *Repository[model.Event, *model.Event]
}

// NewRepositories builds every repository over the server's database.
func NewRepositories(s *server.Server) *Repositories {
	db := s.DB.SQL

	return &Repositories{
		Leagues:           New[model.League](db, s.Logger),
		Seasons:           New[model.Season](db, s.Logger),
		Venues:            New[model.Venue](db, s.Logger),
		Teams:             New[model.Team](db, s.Logger),
		Players:           New[model.Player](db, s.Logger),
		PlayerTeamSeasons: New[model.PlayerTeamSeason](db, s.Logger),
		Fixtures:          New[model.Fixture](db, s.Logger),
		Events:            New[model.Event](db, s.Logger),
	}
}

package service

import (
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
)

type Services struct {
	Leagues  *LeagueService
	Seasons  *Base[model.Season, *model.Season]
	Venues   *Base[model.Venue, *model.Venue]
	Teams    *TeamService
	Players  *PlayerService
	Rosters  *Base[model.PlayerTeamSeason, *model.PlayerTeamSeason]
	Fixtures *FixtureService
	Events   *Base[model.Event, *model.Event]
	Sync     *SyncService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	services := &Services{
		Leagues:  NewLeagueService(repos),
		Seasons:  NewBase(repos.Seasons),
		Venues:   NewBase(repos.Venues),
		Teams:    NewTeamService(repos),
		Players:  NewPlayerService(repos),
		Rosters:  NewBase(repos.PlayerTeamSeasons),
		Fixtures: NewFixtureService(repos),
		Events:   NewBase(repos.Events),
	}
	services.Sync = NewSyncService(s.Football, services.Leagues, services.Seasons,
		services.Teams, services.Venues, s.Logger)

	return services, nil
}

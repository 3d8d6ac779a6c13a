// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// It parses requests, handles input validation using the
// validation package, and calls the appropriate service layer.
package handler

import (
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/server"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	League  *LeagueHandler
	Team    *TeamHandler
	Player  *PlayerHandler
	Fixture *FixtureHandler
	Live    *LiveHandler
	Sync    *SyncHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		League:  NewLeagueHandler(s, services.Leagues),
		Team:    NewTeamHandler(s, services.Teams),
		Player:  NewPlayerHandler(s, services.Players),
		Fixture: NewFixtureHandler(s, services.Fixtures),
		Live:    NewLiveHandler(s, s.Football, services.Sync),
		Sync:    NewSyncHandler(s, services.Sync),
	}
}

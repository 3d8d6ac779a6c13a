package service

import (
	"context"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
)

type PlayerService struct {
	*Base[model.Player, *model.Player]
	teams *repository.Repository[model.Team, *model.Team]
}

func NewPlayerService(repos *repository.Repositories) *PlayerService {
	return &PlayerService{
		Base:  NewBase(repos.Players),
		teams: repos.Teams,
	}
}

// CurrentTeam returns the team a player is currently registered with.
func (s *PlayerService) CurrentTeam(ctx context.Context, playerID int64) (*model.Team, bool, error) {
	teams, err := s.teams.Select(ctx, repository.Query{
		Join:    "JOIN player_team_seasons ON player_team_seasons.team_id = teams.id",
		Where:   "player_team_seasons.player_id = $1 AND player_team_seasons.is_current = $2",
		OrderBy: "player_team_seasons.id",
		Limit:   1,
		Args:    []any{playerID, true},
	})
	if err != nil {
		return nil, false, err
	}
	if len(teams) == 0 {
		return nil, false, nil
	}
	return &teams[0], true, nil
}

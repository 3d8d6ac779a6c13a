package service

import (
	"context"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
)

type TeamService struct {
	*Base[model.Team, *model.Team]
	fixtures *repository.Repository[model.Fixture, *model.Fixture]
}

func NewTeamService(repos *repository.Repositories) *TeamService {
	return &TeamService{
		Base:     NewBase(repos.Teams),
		fixtures: repos.Fixtures,
	}
}

// Fixtures returns the matches a team played home or away, newest first.
// Fixtures without a date come last.
func (s *TeamService) Fixtures(ctx context.Context, teamID int64) ([]model.Fixture, error) {
	return s.fixtures.Select(ctx, repository.Query{
		Where:   "fixtures.home_team_id = $1 OR fixtures.away_team_id = $1",
		OrderBy: "fixtures.event_date DESC NULLS LAST, fixtures.id",
		Args:    []any{teamID},
	})
}

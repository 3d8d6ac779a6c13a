package service

import (
	"context"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
)

type LeagueService struct {
	*Base[model.League, *model.League]
	seasons *repository.Repository[model.Season, *model.Season]
}

func NewLeagueService(repos *repository.Repositories) *LeagueService {
	return &LeagueService{
		Base:    NewBase(repos.Leagues),
		seasons: repos.Seasons,
	}
}

// Seasons returns a league's seasons, most recent year first.
func (s *LeagueService) Seasons(ctx context.Context, leagueID int64) ([]model.Season, error) {
	return s.seasons.Select(ctx, repository.Query{
		Where:   "seasons.league_id = $1",
		OrderBy: "seasons.year DESC, seasons.id",
		Args:    []any{leagueID},
	})
}

package service

import (
	"context"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
)

type FixtureService struct {
	*Base[model.Fixture, *model.Fixture]
	events *repository.Repository[model.Event, *model.Event]
}

func NewFixtureService(repos *repository.Repositories) *FixtureService {
	return &FixtureService{
		Base:   NewBase(repos.Fixtures),
		events: repos.Events,
	}
}

// FixtureWithEvents is a fixture and its timeline.
type FixtureWithEvents struct {
	model.Fixture
	Events []model.Event `json:"events"`
}

// WithEvents returns a fixture and its events ordered by minute.
func (s *FixtureService) WithEvents(ctx context.Context, fixtureID int64) (*FixtureWithEvents, bool, error) {
	fixture, found, err := s.Get(ctx, fixtureID)
	if err != nil || !found {
		return nil, found, err
	}

	events, err := s.events.Find(ctx, map[string]any{"fixture_id": fixtureID})
	if err != nil {
		return nil, false, err
	}

	return &FixtureWithEvents{Fixture: *fixture, Events: events}, true, nil
}

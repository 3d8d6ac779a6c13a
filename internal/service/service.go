// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"context"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/repository"
)

// DefaultLimit is the page size used when a caller asks for none.
const DefaultLimit = 100

// Base is the generic service over one repository. Inputs are normalized
// before they reach storage.
type Base[T any, P repository.EntityPtr[T]] struct {
	repo *repository.Repository[T, P]
}

func NewBase[T any, P repository.EntityPtr[T]](repo *repository.Repository[T, P]) *Base[T, P] {
	return &Base[T, P]{repo: repo}
}

func (s *Base[T, P]) Get(ctx context.Context, id any) (*T, bool, error) {
	return s.repo.Get(ctx, id)
}

// List returns one page. A non-positive limit means DefaultLimit.
func (s *Base[T, P]) List(ctx context.Context, limit, offset int) ([]T, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListPage(ctx, limit, offset)
}

func (s *Base[T, P]) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *Base[T, P]) Find(ctx context.Context, filters map[string]any) ([]T, error) {
	return s.repo.Find(ctx, filters)
}

func (s *Base[T, P]) Create(ctx context.Context, in payload.Input) (*T, error) {
	attrs, err := payload.Normalize(in)
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, attrs)
}

// BulkCreate inserts every input in one transaction.
func (s *Base[T, P]) BulkCreate(ctx context.Context, ins []payload.Input) ([]T, error) {
	batch := make([]map[string]any, 0, len(ins))
	for _, in := range ins {
		attrs, err := payload.Normalize(in)
		if err != nil {
			return nil, err
		}
		batch = append(batch, attrs)
	}
	return s.repo.CreateMany(ctx, batch)
}

// Update applies only the fields present in the input. A missing entity
// is reported as absent, never created.
func (s *Base[T, P]) Update(ctx context.Context, id any, in payload.Input) (*T, bool, error) {
	attrs, err := payload.Normalize(in)
	if err != nil {
		return nil, false, err
	}
	return s.repo.Update(ctx, id, attrs)
}

func (s *Base[T, P]) Upsert(ctx context.Context, match, defaults payload.Input) (*T, error) {
	m, err := payload.Normalize(match)
	if err != nil {
		return nil, err
	}
	d, err := payload.Normalize(defaults)
	if err != nil {
		return nil, err
	}
	return s.repo.Upsert(ctx, m, d)
}

func (s *Base[T, P]) Delete(ctx context.Context, id any) (*T, bool, error) {
	return s.repo.Delete(ctx, id)
}

// ParseID converts a path parameter into the entity's identity type.
func (s *Base[T, P]) ParseID(raw string) (any, error) {
	return s.repo.Schema().ParseID(raw)
}

package handler

import (
	"context"
	"fmt"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/payload"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/service"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/labstack/echo/v4"
)

// entityService is the part of service.Base behind the stored-entity routes.
type entityService[T any] interface {
	Get(ctx context.Context, id any) (*T, bool, error)
	List(ctx context.Context, limit, offset int) ([]T, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, in payload.Input) (*T, error)
	BulkCreate(ctx context.Context, ins []payload.Input) ([]T, error)
	Update(ctx context.Context, id any, in payload.Input) (*T, bool, error)
	Delete(ctx context.Context, id any) (*T, bool, error)
	ParseID(raw string) (any, error)
}

// crud implements list, get, create, update and delete for one entity.
// name is used in not-found messages.
type crud[T any] struct {
	svc  entityService[T]
	name string
}

func (r crud[T]) notFound() *errs.HTTPError {
	return errs.NewNotFoundError(r.name+" not found", false, nil)
}

func (r crud[T]) list(c echo.Context, req PageRequest) (Page[T], error) {
	ctx := c.Request().Context()

	limit := req.Limit
	if limit == 0 {
		limit = service.DefaultLimit
	}

	items, err := r.svc.List(ctx, limit, req.Offset)
	if err != nil {
		return Page[T]{}, err
	}
	total, err := r.svc.Count(ctx)
	if err != nil {
		return Page[T]{}, err
	}

	return Page[T]{Data: items, Total: total, Limit: limit, Offset: req.Offset}, nil
}

func (r crud[T]) get(c echo.Context, id any) (*T, error) {
	item, found, err := r.svc.Get(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, r.notFound()
	}
	return item, nil
}

// exists answers 404 when id is not stored.
func (r crud[T]) exists(c echo.Context, id any) error {
	_, err := r.get(c, id)
	return err
}

func (r crud[T]) create(c echo.Context, req validation.Validatable) (*T, error) {
	return r.svc.Create(c.Request().Context(), payload.FromValidated(req))
}

func (r crud[T]) update(c echo.Context, id any, req validation.Validatable) (*T, error) {
	item, found, err := r.svc.Update(c.Request().Context(), id, payload.FromValidated(req))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, r.notFound()
	}
	return item, nil
}

func (r crud[T]) delete(c echo.Context, raw string) error {
	id, err := r.svc.ParseID(raw)
	if err != nil {
		return errs.NewBadRequestError(fmt.Sprintf("Invalid %s id", r.name), false, nil,
			[]errs.FieldError{{Field: "id", Error: err.Error()}})
	}

	_, found, err := r.svc.Delete(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !found {
		return r.notFound()
	}
	return nil
}

// bulkCreate stores every item or none of them.
func bulkCreate[T any, V any, PV interface {
	*V
	validation.Validatable
}](c echo.Context, r crud[T], items []V) ([]T, error) {
	ins := make([]payload.Input, len(items))
	for i := range items {
		ins[i] = payload.FromValidated(PV(&items[i]))
	}
	return r.svc.BulkCreate(c.Request().Context(), ins)
}

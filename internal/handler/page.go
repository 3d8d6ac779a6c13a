package handler

import "github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"

// Page is one page of a listing.
type Page[T any] struct {
	Data   []T   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

func (p Page[T]) Len() int { return len(p.Data) }

// PageRequest carries the paging query parameters.
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=500"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// IDRequest binds a numeric :id path parameter.
type IDRequest struct {
	ID int64 `param:"id" validate:"required,min=1"`
}

// DeleteRequest keeps the :id path parameter raw so each entity can parse
// it into its own identity type.
type DeleteRequest struct {
	ID string `param:"id" validate:"required"`
}

func (r *DeleteRequest) Validate() error { return validation.Struct(r) }

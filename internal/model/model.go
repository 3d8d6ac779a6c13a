// Package model declares the persisted entities and their table schemas.
//
// Each entity lists its columns explicitly: Attributes returns the values
// to write and ScanDest the destinations to read into, both in Columns
// order. The repository never copies fields by reflection.
package model

import (
	"slices"
	"strconv"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Schema describes how an entity is stored.
type Schema struct {
	Table    string
	Identity string

	// Columns includes Identity and is the order used by Attributes and
	// ScanDest.
	Columns []string

	// OrderBy is the default, stable ordering for lists.
	OrderBy string

	// NewID generates an identity when one is not supplied. Nil means the
	// caller must supply it (API-Football ids).
	NewID func() any

	// ParseID converts a path parameter into an identity value.
	ParseID func(string) (any, error)
}

// HasColumn reports whether name is a column of the schema.
func (s *Schema) HasColumn(name string) bool {
	return slices.Contains(s.Columns, name)
}

// Entity is implemented by pointers to the model structs.
type Entity interface {
	Schema() *Schema
	Identity() any
	Attributes() map[string]any
	ScanDest() []any
}

// ParseInt64ID parses API-Football numeric ids.
func ParseInt64ID(s string) (any, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid id %q", s)
	}
	return id, nil
}

// ParseUUID parses generated identities.
func ParseUUID(s string) (any, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid id %q", s)
	}
	return id, nil
}

func newUUID() any { return uuid.New() }

// nullable returns *p, or nil for a nil pointer.
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

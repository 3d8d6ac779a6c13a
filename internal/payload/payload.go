// Package payload turns the different input shapes accepted by the
// services into one canonical field -> value mapping.
//
// Callers tag their input explicitly:
//
//	payload.FromMap(map[string]any{"name": "Arsenal"})
//	payload.FromValidated(&UpdateTeamRequest{...})
//	payload.FromObject(model.Team{...})
package payload

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/validation"
	"github.com/pkg/errors"
)

type kind int

const (
	kindNone kind = iota
	kindMap
	kindValidated
	kindObject
)

// Input is one of the accepted input shapes. The zero value is not a valid
// input.
type Input struct {
	kind  kind
	m     map[string]any
	value any
}

// FromMap wraps a keyed mapping. Keys are field names; an explicit nil
// value means "set to null".
func FromMap(m map[string]any) Input {
	return Input{kind: kindMap, m: m}
}

// FromValidated wraps a structured object whose Validate method runs
// before its fields are read.
func FromValidated(v validation.Validatable) Input {
	return Input{kind: kindValidated, value: v}
}

// FromObject wraps a plain struct (or pointer to struct).
func FromObject(v any) Input {
	return Input{kind: kindObject, value: v}
}

// Canonical is the normalized field -> value mapping.
type Canonical map[string]any

// Keys returns the field names in sorted order.
func (c Canonical) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether field is present.
func (c Canonical) Has(field string) bool {
	_, ok := c[field]
	return ok
}

// Normalize converts in into its canonical payload.
//
// Struct fields are read by their `db` tag, falling back to the snake_case
// field name. Unexported fields and `db:"-"` are skipped. Nil pointers,
// slices, maps and interfaces are treated as "not set" and omitted, and
// `db:",omitempty"` also omits zero values. Pointers are dereferenced, so
// equivalent inputs of different shapes produce identical payloads.
func Normalize(in Input) (Canonical, error) {
	switch in.kind {
	case kindMap:
		if in.m == nil {
			return nil, errors.Wrap(errs.ErrUnsupportedPayloadShape, "nil map")
		}
		out := make(Canonical, len(in.m))
		for k, v := range in.m {
			out[k] = deref(v)
		}
		return out, nil

	case kindValidated:
		if in.value == nil || isNilPointer(reflect.ValueOf(in.value)) {
			return nil, errors.Wrap(errs.ErrUnsupportedPayloadShape, "nil validated object")
		}
		if err := in.value.(validation.Validatable).Validate(); err != nil {
			return nil, err
		}
		return fromStruct(in.value)

	case kindObject:
		return fromStruct(in.value)

	default:
		return nil, errors.Wrap(errs.ErrUnsupportedPayloadShape, "empty input")
	}
}

func fromStruct(v any) (Canonical, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, errors.Wrap(errs.ErrUnsupportedPayloadShape, "nil object")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, errors.Wrapf(errs.ErrUnsupportedPayloadShape, "%T is not a struct", v)
	}

	out := Canonical{}
	collect(rv, out)
	return out, nil
}

func collect(rv reflect.Value, out Canonical) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		fv := rv.Field(i)

		// Untagged embedded structs contribute their own fields.
		if field.Anonymous && name == "" {
			inner := fv
			if inner.Kind() == reflect.Pointer {
				if inner.IsNil() {
					continue
				}
				inner = inner.Elem()
			}
			if inner.Kind() == reflect.Struct {
				collect(inner, out)
				continue
			}
		}

		if name == "" {
			name = SnakeCase(field.Name)
		}

		switch fv.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			if fv.IsNil() {
				continue
			}
		}

		if strings.Contains(opts, "omitempty") && fv.IsZero() {
			continue
		}

		out[name] = deref(fv.Interface())
	}
}

func isNilPointer(rv reflect.Value) bool {
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

// deref follows pointers down to the value. A nil pointer becomes nil.
func deref(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return v
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// SnakeCase converts a Go identifier to snake_case, keeping acronyms
// together: "VenueID" -> "venue_id", "HTTPStatus" -> "http_status".
func SnakeCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Package repository handles all interactions with the database.
//
// Repository is a generic single-table store driven by the entity's
// model.Schema. Every field name that reaches SQL is checked against the
// schema's column list, and every write runs in its own transaction.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/database"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/model"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/sqlerr"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// EntityPtr constrains P to *T implementing model.Entity.
type EntityPtr[T any] interface {
	*T
	model.Entity
}

// Repository stores entities of one kind.
type Repository[T any, P EntityPtr[T]] struct {
	db      *sql.DB
	schema  *model.Schema
	columns string
	logger  zerolog.Logger
}

// New builds a repository for T over db.
func New[T any, P EntityPtr[T]](db *sql.DB, logger *zerolog.Logger) *Repository[T, P] {
	var zero T
	schema := P(&zero).Schema()

	return &Repository[T, P]{
		db:      db,
		schema:  schema,
		columns: strings.Join(schema.Columns, ", "),
		logger:  logger.With().Str("table", schema.Table).Logger(),
	}
}

// Schema returns the schema the repository was built for.
func (r *Repository[T, P]) Schema() *model.Schema {
	return r.schema
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *Repository[T, P]) scan(row rowScanner) (*T, error) {
	var out T
	if err := row.Scan(P(&out).ScanDest()...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repository[T, P]) scanAll(rows *sql.Rows) ([]T, error) {
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, errors.Wrapf(err, "scanning %s", r.schema.Table)
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating %s", r.schema.Table)
	}
	return out, nil
}

// checkFields rejects names that are not columns of the schema.
func (r *Repository[T, P]) checkFields(fields map[string]any) error {
	for name := range fields {
		if !r.schema.HasColumn(name) {
			return errors.Wrapf(errs.ErrUnknownField, "%s has no field %q", r.schema.Table, name)
		}
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// where renders equality filters as a WHERE clause. Placeholders start at
// $next. A nil value matches NULL.
func where(filters map[string]any, next int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}

	var (
		conds []string
		args  []any
	)
	for _, name := range sortedKeys(filters) {
		value := filters[name]
		if value == nil {
			conds = append(conds, name+" IS NULL")
			continue
		}
		conds = append(conds, fmt.Sprintf("%s = $%d", name, next))
		args = append(args, value)
		next++
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Get returns the entity with the given identity. Absence is (nil, false, nil).
func (r *Repository[T, P]) Get(ctx context.Context, id any) (*T, bool, error) {
	return r.get(ctx, r.db, id)
}

// List returns every entity in the schema's default order.
func (r *Repository[T, P]) List(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", r.columns, r.schema.Table, r.schema.OrderBy)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", r.schema.Table)
	}
	return r.scanAll(rows)
}

// ListPage returns one page of List.
func (r *Repository[T, P]) ListPage(ctx context.Context, limit, offset int) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s LIMIT $1 OFFSET $2",
		r.columns, r.schema.Table, r.schema.OrderBy)

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", r.schema.Table)
	}
	return r.scanAll(rows)
}

// Count returns the number of stored entities.
func (r *Repository[T, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + r.schema.Table
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, errors.Wrapf(err, "counting %s", r.schema.Table)
	}
	return n, nil
}

// Find returns the entities matching every filter.
func (r *Repository[T, P]) Find(ctx context.Context, filters map[string]any) ([]T, error) {
	if err := r.checkFields(filters); err != nil {
		return nil, err
	}

	clause, args := where(filters, 1)
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s", r.columns, r.schema.Table, clause, r.schema.OrderBy)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "finding %s", r.schema.Table)
	}
	return r.scanAll(rows)
}

// Query is a filter for projections that equality filters cannot express.
// Join, Where and OrderBy are trusted SQL; values go in Args.
type Query struct {
	Join    string
	Where   string
	OrderBy string
	Limit   int
	Args    []any
}

// Select runs q and scans the rows of this repository's table.
func (r *Repository[T, P]) Select(ctx context.Context, q Query) ([]T, error) {
	qualified := make([]string, len(r.schema.Columns))
	for i, c := range r.schema.Columns {
		qualified[i] = r.schema.Table + "." + c
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(qualified, ", "), r.schema.Table)
	if q.Join != "" {
		b.WriteString(" " + q.Join)
	}
	if q.Where != "" {
		b.WriteString(" WHERE " + q.Where)
	}
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = r.schema.Table + "." + r.schema.Identity
	}
	b.WriteString(" ORDER BY " + orderBy)
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}

	rows, err := r.db.QueryContext(ctx, b.String(), q.Args...)
	if err != nil {
		return nil, errors.Wrapf(err, "selecting %s", r.schema.Table)
	}
	return r.scanAll(rows)
}

func isZero(v any) bool {
	return v == nil || reflect.ValueOf(v).IsZero()
}

// withIdentity fills in a generated identity when the schema has a
// generator and attrs carries none.
func (r *Repository[T, P]) withIdentity(attrs map[string]any) map[string]any {
	if r.schema.NewID == nil || !isZero(attrs[r.schema.Identity]) {
		return attrs
	}
	out := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	out[r.schema.Identity] = r.schema.NewID()
	return out
}

// get reads one row through q so writes can return what they stored.
func (r *Repository[T, P]) get(ctx context.Context, q database.Querier, id any) (*T, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1", r.columns, r.schema.Table, r.schema.Identity)

	item, err := r.scan(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrapf(err, "getting %s", r.schema.Table)
	}
	return item, true, nil
}

func (r *Repository[T, P]) insert(ctx context.Context, q database.Querier, attrs map[string]any) (*T, error) {
	if err := r.checkFields(attrs); err != nil {
		return nil, err
	}
	attrs = r.withIdentity(attrs)

	// Identities without a generator come from API-Football and are never zero.
	id := attrs[r.schema.Identity]
	if isZero(id) {
		return nil, errors.Wrapf(errs.ErrConstraintViolation, "inserting into %s: %s is required",
			r.schema.Table, r.schema.Identity)
	}

	names := sortedKeys(attrs)
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = attrs[name]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		r.schema.Table, strings.Join(names, ", "), strings.Join(placeholders, ", "))

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return nil, errors.Wrapf(sqlerr.Classify(err), "inserting into %s", r.schema.Table)
	}

	item, _, err := r.get(ctx, q, id)
	return item, err
}

func (r *Repository[T, P]) update(ctx context.Context, q database.Querier, id any, attrs map[string]any) (*T, bool, error) {
	names := sortedKeys(attrs)
	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+1)
	for i, name := range names {
		sets[i] = fmt.Sprintf("%s = $%d", name, i+1)
		args = append(args, attrs[name])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = $%d",
		r.schema.Table, strings.Join(sets, ", "), r.schema.Identity, len(args))

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, false, errors.Wrapf(sqlerr.Classify(err), "updating %s", r.schema.Table)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, false, nil
	}

	return r.get(ctx, q, id)
}

// Add inserts entity and returns the stored row. A zero identity is
// generated for schemas that have a generator.
func (r *Repository[T, P]) Add(ctx context.Context, entity *T) (*T, error) {
	return r.Create(ctx, P(entity).Attributes())
}

// AddMany inserts all entities in one transaction. Any failure rolls the
// whole batch back.
func (r *Repository[T, P]) AddMany(ctx context.Context, entities []*T) ([]T, error) {
	attrs := make([]map[string]any, len(entities))
	for i, e := range entities {
		attrs[i] = P(e).Attributes()
	}
	return r.CreateMany(ctx, attrs)
}

// Create inserts a row from a field -> value mapping.
func (r *Repository[T, P]) Create(ctx context.Context, attrs map[string]any) (*T, error) {
	var out *T
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		item, err := r.insert(ctx, tx, attrs)
		out = item
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMany inserts every mapping in one transaction.
func (r *Repository[T, P]) CreateMany(ctx context.Context, attrs []map[string]any) ([]T, error) {
	out := make([]T, 0, len(attrs))
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for i, a := range attrs {
			item, err := r.insert(ctx, tx, a)
			if err != nil {
				return errors.Wrapf(err, "item %d", i)
			}
			out = append(out, *item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies only the supplied fields to the entity with identity id.
// An unknown id is absence; the identity itself cannot be changed.
func (r *Repository[T, P]) Update(ctx context.Context, id any, attrs map[string]any) (*T, bool, error) {
	if err := r.checkFields(attrs); err != nil {
		return nil, false, err
	}
	if _, ok := attrs[r.schema.Identity]; ok {
		return nil, false, errors.Wrapf(errs.ErrImmutableIdentity, "%s.%s", r.schema.Table, r.schema.Identity)
	}
	if len(attrs) == 0 {
		return r.Get(ctx, id)
	}

	var (
		out   *T
		found bool
	)
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		item, ok, err := r.update(ctx, tx, id, attrs)
		out, found = item, ok
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

// Delete removes the entity with identity id and returns it as it was.
func (r *Repository[T, P]) Delete(ctx context.Context, id any) (*T, bool, error) {
	var (
		out   *T
		found bool
	)
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		item, ok, err := r.get(ctx, tx, id)
		if err != nil || !ok {
			return err
		}

		query := fmt.Sprintf("DELETE FROM %s WHERE %s = $1", r.schema.Table, r.schema.Identity)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return errors.Wrapf(sqlerr.Classify(err), "deleting from %s", r.schema.Table)
		}
		out, found = item, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

// Upsert locates the entity matching every field of match and updates it
// with defaults, or inserts match merged with defaults when none exists.
// Match values win over defaults for the same field. More than one match
// is ErrAmbiguousMatch. The whole operation is one transaction.
func (r *Repository[T, P]) Upsert(ctx context.Context, match, defaults map[string]any) (*T, error) {
	if err := r.checkFields(match); err != nil {
		return nil, err
	}
	if err := r.checkFields(defaults); err != nil {
		return nil, err
	}

	var out *T
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		clause, args := where(match, 1)
		query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT 2",
			r.columns, r.schema.Table, clause, r.schema.Identity)

		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return errors.Wrapf(err, "matching %s", r.schema.Table)
		}
		existing, err := r.scanAll(rows)
		if err != nil {
			return err
		}

		switch len(existing) {
		case 0:
			merged := make(map[string]any, len(match)+len(defaults))
			for k, v := range defaults {
				merged[k] = v
			}
			for k, v := range match {
				merged[k] = v
			}

			item, err := r.insert(ctx, tx, merged)
			if err != nil {
				return err
			}
			r.logger.Debug().Interface("id", P(item).Identity()).Msg("upsert inserted")
			out = item
			return nil

		case 1:
			current := &existing[0]
			id := P(current).Identity()

			changes := make(map[string]any, len(defaults))
			for k, v := range defaults {
				if k == r.schema.Identity {
					if fmt.Sprint(v) != fmt.Sprint(id) {
						return errors.Wrapf(errs.ErrImmutableIdentity, "%s.%s", r.schema.Table, k)
					}
					continue
				}
				changes[k] = v
			}
			if len(changes) == 0 {
				out = current
				return nil
			}

			item, _, err := r.update(ctx, tx, id, changes)
			if err != nil {
				return err
			}
			r.logger.Debug().Interface("id", id).Msg("upsert updated")
			out = item
			return nil

		default:
			return errors.Wrapf(errs.ErrAmbiguousMatch, "%s upsert", r.schema.Table)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

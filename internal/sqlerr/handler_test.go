package sqlerr

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPostgres(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		Severity:       "ERROR",
		Message:        "duplicate key value violates unique constraint",
		TableName:      "teams",
		ConstraintName: "teams_code_key",
	}

	err := Classify(errors.Wrap(pgErr, "inserting team"))

	assert.ErrorIs(t, err, errs.ErrConstraintViolation)
	assert.Equal(t, UniqueViolation, ErrCode(err))

	var got *pgconn.PgError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, "23505", got.Code)
}

func TestClassifyLeavesOtherErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Same(t, plain, Classify(plain))
	assert.NoError(t, Classify(nil))

	nonConstraint := Classify(&pgconn.PgError{Code: "53300", Severity: "FATAL"})
	assert.NotErrorIs(t, nonConstraint, errs.ErrConstraintViolation)
	assert.Equal(t, TooManyConnections, ErrCode(nonConstraint))
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE venues (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
		CREATE TABLE teams (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT UNIQUE,
			venue_id INTEGER REFERENCES venues(id)
		);`)
	require.NoError(t, err)
	return db
}

func TestClassifySQLite(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO teams (id, name, code) VALUES (1, 'Arsenal', 'ARS')`)
	require.NoError(t, err)

	tests := []struct {
		name   string
		query  string
		code   Code
		table  string
		column string
	}{
		{"unique", `INSERT INTO teams (id, name, code) VALUES (2, 'Other', 'ARS')`, UniqueViolation, "teams", "code"},
		{"primary key", `INSERT INTO teams (id, name) VALUES (1, 'Dup')`, UniqueViolation, "teams", "id"},
		{"not null", `INSERT INTO teams (id) VALUES (3)`, NotNullViolation, "teams", "name"},
		{"foreign key", `INSERT INTO teams (id, name, venue_id) VALUES (4, 'X', 99)`, ForeignKeyViolation, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Exec(tt.query)
			require.Error(t, err)

			classified := Classify(err)
			assert.ErrorIs(t, classified, errs.ErrConstraintViolation)

			var sqlErr *Error
			require.ErrorAs(t, classified, &sqlErr)
			assert.Equal(t, tt.code, sqlErr.Code)
			assert.Equal(t, tt.table, sqlErr.TableName)
			assert.Equal(t, tt.column, sqlErr.ColumnName)

			var liteErr sqlite3.Error
			assert.ErrorAs(t, classified, &liteErr)
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Run("http error passes through", func(t *testing.T) {
		in := errs.NewNotFoundError("team not found", true, nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("unique violation", func(t *testing.T) {
		out := HandleError(&pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			TableName:      "teams",
			ConstraintName: "teams_code_key",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, out, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "TEAM_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A Team with this Code already exists", httpErr.Message)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		out := HandleError(&pgconn.PgError{
			Code:       "23503",
			Severity:   "ERROR",
			TableName:  "teams",
			ColumnName: "venue_id",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, out, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, "TEAM_NOT_FOUND", httpErr.Code)
		assert.Equal(t, "The referenced Venue does not exist", httpErr.Message)
	})

	t.Run("not null violation has field errors", func(t *testing.T) {
		out := HandleError(&pgconn.PgError{
			Code:       "23502",
			Severity:   "ERROR",
			TableName:  "leagues",
			ColumnName: "name",
		})

		var httpErr *errs.HTTPError
		require.ErrorAs(t, out, &httpErr)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "name", httpErr.Errors[0].Field)
	})

	t.Run("no rows", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(sql.ErrNoRows), &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("error kinds", func(t *testing.T) {
		cases := map[error]int{
			errs.ErrUnknownField:        http.StatusBadRequest,
			errs.ErrAmbiguousMatch:      http.StatusConflict,
			errs.ErrUpstreamRateLimited: http.StatusTooManyRequests,
			errs.ErrUpstreamAPI:         http.StatusBadGateway,
			errs.ErrTransientNetwork:    http.StatusGatewayTimeout,
		}
		for kind, status := range cases {
			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(errors.Wrap(kind, "context")), &httpErr)
			assert.Equal(t, status, httpErr.Status, kind.Error())
		}
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(errors.New("disk on fire")), &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	})
}

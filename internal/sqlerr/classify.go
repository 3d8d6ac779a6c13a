package sqlerr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Classify converts a driver error into *Error so callers can match it with
// errors.Is(err, errs.ErrConstraintViolation). Other errors are returned
// unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}

	return err
}

// ConvertSQLiteError converts a go-sqlite3 error into *Error.
//
// SQLite reports the offending column in the message, e.g.
// "UNIQUE constraint failed: teams.id", which fills TableName and ColumnName.
func ConvertSQLiteError(src sqlite3.Error) *Error {
	out := &Error{
		Code:         Other,
		Severity:     SeverityError,
		DatabaseCode: src.ExtendedCode.Error(),
		Message:      src.Error(),
		driverErr:    src,
	}

	if src.Code != sqlite3.ErrConstraint {
		return out
	}

	switch src.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		out.Code = UniqueViolation
	case sqlite3.ErrConstraintForeignKey:
		out.Code = ForeignKeyViolation
	case sqlite3.ErrConstraintNotNull:
		out.Code = NotNullViolation
	case sqlite3.ErrConstraintCheck:
		out.Code = CheckViolation
	default:
		out.Code = CheckViolation
	}

	if _, target, ok := strings.Cut(src.Error(), "failed: "); ok {
		// Composite keys list several columns; the first is enough.
		target, _, _ = strings.Cut(target, ",")
		if table, column, ok := strings.Cut(strings.TrimSpace(target), "."); ok {
			out.TableName = table
			out.ColumnName = column
		}
	}

	return out
}

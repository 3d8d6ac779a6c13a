// Package sqlerr specifically handles database driver errors.
//
// It normalizes Postgres (pgconn) and SQLite (go-sqlite3) errors into one
// Error type, classifies integrity failures as errs.ErrConstraintViolation
// and converts them into user-friendly 409 responses.
package sqlerr

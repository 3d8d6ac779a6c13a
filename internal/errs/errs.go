// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures..
// (e.g. FieldErrors for forms or HTTPError for API responses)..
// to ensure the client receive meaningful, actionable, and consistent..
// error messages.
//
// It also declares the error kinds shared by the persistence layer and the
// API-Football gateway. Concrete errors match their kind through errors.Is,
// and the route layer turns a kind into an HTTPError with FromKind.
package errs

import "errors"

// Error kinds.
var (
	// ErrUnsupportedPayloadShape means an input could not be normalized.
	ErrUnsupportedPayloadShape = errors.New("unsupported payload shape")

	// ErrUnknownField means a field name is not a column of the entity.
	ErrUnknownField = errors.New("unknown field")

	// ErrImmutableIdentity means an update tried to change the identity key.
	ErrImmutableIdentity = errors.New("identity field cannot be updated")

	// ErrConstraintViolation wraps unique, foreign key, not-null and check
	// failures reported by the database.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrAmbiguousMatch means an upsert match specification located more
	// than one stored entity.
	ErrAmbiguousMatch = errors.New("match specification is ambiguous")

	// ErrTransientNetwork is reported once retries of a transient failure
	// are exhausted.
	ErrTransientNetwork = errors.New("transient network error")

	// ErrUpstreamAPI means API-Football answered with a non-empty errors field.
	ErrUpstreamAPI = errors.New("upstream api error")

	// ErrUpstreamRateLimited means API-Football refused the call for quota.
	ErrUpstreamRateLimited = errors.New("upstream rate limit exceeded")

	// ErrNotFoundUpstream means API-Football returned no result for a lookup.
	ErrNotFoundUpstream = errors.New("not found upstream")
)

package errs

import (
	"errors"
	"net/http"
)

func newHTTPError(status int, message string, override bool, code *string) *HTTPError {
	// http.StatusText(409) => "Conflict" => "CONFLICT"
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(status))
	if code != nil {
		formattedCode = *code
	}
	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code overrides the default "BAD_REQUEST" when non-nil; errors carries
// optional field-level details.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusBadRequest, message, override, code)
	e.Errors = errors
	return e
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, override, code)
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	e := newHTTPError(http.StatusConflict, message, override, code)
	e.Errors = errors
	return e
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, message, override, nil)
}

// NewBadGatewayError creates a 502 Bad Gateway HTTPError.
func NewBadGatewayError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusBadGateway, message, override, nil)
}

// NewGatewayTimeoutError creates a 504 Gateway Timeout HTTPError.
func NewGatewayTimeoutError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusGatewayTimeout, message, override, nil)
}

// NewInternalServerError creates a generic 500. The real cause is never
// sent to the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError), false, nil)
}

func codePtr(s string) *string { return &s }

// FromKind maps an error kind onto the HTTPError returned to clients.
// It returns nil when err matches no known kind.
func FromKind(err error) *HTTPError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnsupportedPayloadShape):
		return NewBadRequestError(err.Error(), true, codePtr("UNSUPPORTED_PAYLOAD"), nil)
	case errors.Is(err, ErrUnknownField):
		return NewBadRequestError(err.Error(), true, codePtr("UNKNOWN_FIELD"), nil)
	case errors.Is(err, ErrImmutableIdentity):
		return NewBadRequestError(err.Error(), true, codePtr("IMMUTABLE_IDENTITY"), nil)
	case errors.Is(err, ErrAmbiguousMatch):
		return NewConflictError(err.Error(), true, codePtr("AMBIGUOUS_MATCH"), nil)
	case errors.Is(err, ErrConstraintViolation):
		return NewConflictError("The request conflicts with stored data", true, codePtr("CONSTRAINT_VIOLATION"), nil)
	case errors.Is(err, ErrNotFoundUpstream):
		return NewNotFoundError(err.Error(), true, codePtr("NOT_FOUND_UPSTREAM"))
	case errors.Is(err, ErrUpstreamRateLimited):
		return NewTooManyRequestsError("API-Football quota exhausted, try again later", true)
	case errors.Is(err, ErrUpstreamAPI):
		return NewBadGatewayError(err.Error(), true)
	case errors.Is(err, ErrTransientNetwork):
		return NewGatewayTimeoutError("API-Football did not respond", true)
	}
	return nil
}

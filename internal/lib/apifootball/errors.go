package apifootball

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/lib/retry"
)

// RateLimitError means API-Football refused the call because the account
// quota is spent, either with HTTP 429 or through the envelope.
type RateLimitError struct {
	Status     int
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return "api-football rate limit exceeded: " + e.Message
	}
	return "api-football rate limit exceeded"
}

func (e *RateLimitError) Is(target error) bool {
	return target == errs.ErrUpstreamRateLimited
}

// HTTPError is a non-2xx answer other than 429.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("api-football responded %d: %s", e.Status, e.Body)
}

func (e *HTTPError) Is(target error) bool {
	return target == errs.ErrUpstreamAPI
}

// APIError carries the errors field of a 200 envelope.
type APIError struct {
	Errors map[string]string
}

func (e *APIError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Errors[k])
	}
	return "api-football error: " + strings.Join(parts, "; ")
}

func (e *APIError) Is(target error) bool {
	return target == errs.ErrUpstreamAPI
}

// Classify sorts a failed request into retry classes. Only network level
// failures are transient.
func Classify(err error) retry.Class {
	var (
		rateLimit *RateLimitError
		httpErr   *HTTPError
		apiErr    *APIError
		dnsErr    *net.DNSError
		opErr     *net.OpError
		netErr    net.Error
	)

	switch {
	case err == nil:
		return retry.Fatal
	case errors.As(err, &rateLimit):
		return retry.RateLimited
	case errors.As(err, &httpErr), errors.As(err, &apiErr):
		return retry.Fatal
	case errors.Is(err, context.Canceled):
		return retry.Fatal
	case errors.As(err, &netErr) && netErr.Timeout():
		return retry.Transient
	case errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ETIMEDOUT),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF):
		return retry.Transient
	case errors.As(err, &dnsErr), errors.As(err, &opErr):
		return retry.Transient
	}
	return retry.Fatal
}

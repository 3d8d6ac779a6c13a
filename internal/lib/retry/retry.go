// Package retry runs a single outbound call with bounded, exponentially
// backed-off retries on transient failures.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IlyasBaratov/FootballAnayticsDashboard/internal/errs"
)

// Class is the outcome category of a failed attempt.
type Class int

const (
	// Fatal failures end the call immediately.
	Fatal Class = iota
	// Transient failures are retried until the attempt budget runs out.
	Transient
	// RateLimited failures end the call immediately and are never retried.
	RateLimited
)

func (c Class) String() string {
	switch c {
	case Transient:
		return "transient"
	case RateLimited:
		return "rate_limited"
	default:
		return "fatal"
	}
}

// Classifier maps an attempt's error onto a Class.
type Classifier func(error) Class

const (
	DefaultMaxAttempts = 3
	DefaultBase        = 2 * time.Second
	DefaultMax         = 10 * time.Second
)

// Policy bounds the retries of one call.
type Policy struct {
	MaxAttempts int
	Base        time.Duration
	Max         time.Duration

	// Sleep waits between attempts. Nil means a timer honouring ctx.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each wait.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy is 3 attempts, 2s base and a 10s cap.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: DefaultMaxAttempts, Base: DefaultBase, Max: DefaultMax}
}

// Delay is the wait after the given failed attempt: Base·2^(attempt-1),
// capped at Max.
func (p Policy) Delay(attempt int) time.Duration {
	d := p.Base
	for i := 1; i < attempt; i++ {
		if p.Max > 0 && d >= p.Max {
			break
		}
		d *= 2
	}
	if p.Max > 0 && d > p.Max {
		d = p.Max
	}
	return d
}

// TransientError is returned when every attempt failed transiently.
type TransientError struct {
	Attempts int
	Err      error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

func (e *TransientError) Is(target error) bool {
	return target == errs.ErrTransientNetwork
}

// Do calls fn until it succeeds, fails non-transiently or the attempt
// budget is spent.
func Do[T any](ctx context.Context, policy Policy, classify Classifier, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	sleep := policy.Sleep
	if sleep == nil {
		sleep = wait
	}

	for attempt := 1; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		switch classify(err) {
		case RateLimited:
			if !errors.Is(err, errs.ErrUpstreamRateLimited) {
				err = fmt.Errorf("%w: %w", errs.ErrUpstreamRateLimited, err)
			}
			return zero, err
		case Transient:
			if attempt >= maxAttempts {
				return zero, &TransientError{Attempts: attempt, Err: err}
			}
		default:
			return zero, err
		}

		delay := policy.Delay(attempt)
		if policy.OnRetry != nil {
			policy.OnRetry(attempt, delay, err)
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

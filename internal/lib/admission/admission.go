// Package admission implements the sliding-window budget that gates every
// outbound API-Football call.
//
// At most Quota calls are admitted in any Window. A caller arriving when
// the window is full waits until the oldest admission expires; admitters are
// serialized through one section, so waits queue up in arrival order.
// Reading the window never waits behind a sleeping admitter.
package admission

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// SleepFunc suspends for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Limiter is safe for concurrent use.
type Limiter struct {
	quota  int
	window time.Duration

	// section orders admitters. It is a semaphore so that waiting for it
	// can be cancelled. It is held across the quota wait.
	section *semaphore.Weighted

	// mu guards stamps and is never held while sleeping.
	mu     sync.Mutex
	stamps []time.Time

	now    func() time.Time
	sleep  SleepFunc
	logger zerolog.Logger
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// WithSleep replaces the timer-based wait.
func WithSleep(sleep SleepFunc) Option {
	return func(l *Limiter) { l.sleep = sleep }
}

// WithLogger sets the logger used to report waits.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Limiter) { l.logger = logger }
}

// New creates a limiter admitting quota calls per window.
func New(quota int, window time.Duration, opts ...Option) *Limiter {
	if quota < 1 {
		quota = 1
	}

	l := &Limiter{
		quota:   quota,
		window:  window,
		section: semaphore.NewWeighted(1),
		stamps:  make([]time.Time, 0, quota),
		now:     time.Now,
		sleep:   Sleep,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Sleep waits for d unless ctx is done first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// prune drops admissions older than the window.
func (l *Limiter) prune(now time.Time) {
	keep := l.stamps[:0]
	for _, t := range l.stamps {
		if now.Sub(t) < l.window {
			keep = append(keep, t)
		}
	}
	l.stamps = keep
}

// Admit blocks until the call may proceed. It returns ctx.Err() if ctx is
// cancelled first, in which case nothing is recorded.
func (l *Limiter) Admit(ctx context.Context) error {
	if err := l.section.Acquire(ctx, 1); err != nil {
		return err
	}
	defer l.section.Release(1)

	wait := l.tryRecord()
	if wait <= 0 {
		return nil
	}

	l.logger.Warn().
		Dur("wait", wait).
		Int("quota", l.quota).
		Dur("window", l.window).
		Msg("api-football quota reached, waiting")

	if err := l.sleep(ctx, wait); err != nil {
		return err
	}

	// The whole window has turned over.
	l.mu.Lock()
	l.stamps = append(l.stamps[:0], l.now())
	l.mu.Unlock()
	return nil
}

// tryRecord records an admission if the window has room. Otherwise it
// returns how long until the oldest admission expires.
func (l *Limiter) tryRecord() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	if len(l.stamps) < l.quota {
		l.stamps = append(l.stamps, now)
		return 0
	}

	wait := l.window - now.Sub(l.stamps[0])
	if wait <= 0 {
		l.stamps = append(l.stamps[:0], now)
		return 0
	}
	return wait
}

// Stats describes the current window without admitting anything.
type Stats struct {
	Quota      int           `json:"quota"`
	Window     time.Duration `json:"window"`
	Used       int           `json:"used"`
	Remaining  int           `json:"remaining"`
	RetryAfter time.Duration `json:"retry_after"`
}

// Stats reports the window as of now. It does not wait for admitters.
func (l *Limiter) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.prune(now)

	s := Stats{
		Quota:     l.quota,
		Window:    l.window,
		Used:      len(l.stamps),
		Remaining: l.quota - len(l.stamps),
	}
	if s.Remaining == 0 {
		s.RetryAfter = l.window - now.Sub(l.stamps[0])
	}
	return s, nil
}

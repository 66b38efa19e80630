// Package retry runs storage operations with capped exponential backoff.
// The postgres and redis backends use it to ride out a server that is
// still starting when UltiStudent opens its data.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// ERROR MARKERS
// ══════════════════════════════════════════════════════════════════════════════

// permanentError carries an error that retrying cannot fix, such as bad
// credentials or a missing database.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err so the Retrier gives up after the current attempt.
// Do returns the original err, not the marker.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Cancelled reports whether err comes from a cancelled or expired context.
func Cancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ══════════════════════════════════════════════════════════════════════════════
// BACKOFF
// ══════════════════════════════════════════════════════════════════════════════

// Backoff computes the wait before each retry.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
	Factor  float64
	// Jitter spreads each wait by up to this fraction either way.
	Jitter float64
}

// Wait returns the delay before retry number n (1-based).
func (b Backoff) Wait(n int) time.Duration {
	d := float64(b.Initial) * math.Pow(b.Factor, float64(n-1))
	d = math.Min(d, float64(b.Max))
	if b.Jitter > 0 {
		d *= 1 + b.Jitter*(2*rand.Float64()-1)
	}
	return time.Duration(math.Max(d, 0))
}

// ══════════════════════════════════════════════════════════════════════════════
// RETRIER
// ══════════════════════════════════════════════════════════════════════════════

// Retrier repeats an operation while it fails with a retryable error.
// The zero value is not usable; build one with New or DatabaseRetrier.
type Retrier struct {
	attempts int
	backoff  Backoff
	onRetry  func(attempt int, err error, wait time.Duration)
}

// Option configures a Retrier.
type Option func(*Retrier)

// WithMaxAttempts bounds the number of calls, the first one included.
func WithMaxAttempts(n int) Option {
	return func(r *Retrier) {
		if n > 0 {
			r.attempts = n
		}
	}
}

// WithInitialDelay sets the wait before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d > 0 {
			r.backoff.Initial = d
		}
	}
}

// WithMaxDelay caps the wait between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(r *Retrier) {
		if d > 0 {
			r.backoff.Max = d
		}
	}
}

// WithOnRetry registers a hook run before each wait, usually to log the failure.
func WithOnRetry(fn func(attempt int, err error, wait time.Duration)) Option {
	return func(r *Retrier) { r.onRetry = fn }
}

// New returns a Retrier making three attempts 100ms apart, doubling up to 5s.
func New(opts ...Option) *Retrier {
	r := &Retrier{
		attempts: 3,
		backoff:  Backoff{Initial: 100 * time.Millisecond, Max: 5 * time.Second, Factor: 2, Jitter: 0.1},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DatabaseRetrier is the policy the storage backends use while connecting:
// five attempts starting at 200ms, capped at 3s.
func DatabaseRetrier() *Retrier {
	return New(
		WithMaxAttempts(5),
		WithInitialDelay(200*time.Millisecond),
		WithMaxDelay(3*time.Second),
	)
}

// With returns a copy of r with opts applied on top.
func (r *Retrier) With(opts ...Option) *Retrier {
	c := *r
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Do calls op until it returns nil, fails with a Permanent or cancellation
// error, runs out of attempts, or ctx ends while waiting. The last error
// from op is returned unmarked.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		switch {
		case err == nil:
			return nil
		case IsPermanent(err):
			var p *permanentError
			errors.As(err, &p)
			return p.err
		case Cancelled(err), attempt >= r.attempts:
			return err
		}

		wait := r.backoff.Wait(attempt)
		if r.onRetry != nil {
			r.onRetry(attempt, err, wait)
		}
		if !sleep(ctx, wait) {
			return err
		}
	}
}

// DoWithData is Do for an operation that produces a value.
func DoWithData[T any](ctx context.Context, r *Retrier, op func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := r.Do(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err == nil {
			out = v
		}
		return err
	})
	return out, err
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

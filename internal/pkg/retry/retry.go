// Package retry provides a generic exponential-backoff-with-jitter retrier
// parameterized by a retryability predicate. It retries transient failures
// of external providers; validation and conflict errors are never retried.
package retry

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"syscall"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
)

// Config controls the retry schedule. Delay for attempt n is
// BaseDelay * BackoffMultiplier^(n-1), capped at MaxDelay.
type Config struct {
	MaxAttempts       int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	Jitter            bool
}

// DefaultConfig returns the schedule used for external provider calls.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		BaseDelay:         200 * time.Millisecond,
		MaxDelay:          5 * time.Second,
		BackoffMultiplier: 2,
		Jitter:            true,
	}
}

type options struct {
	predicate func(error) bool
	sleep     func(context.Context, time.Duration) error
	rand      *rand.Rand
}

// Option customizes a Do call. Mostly used by tests to observe delays.
type Option func(*options)

// WithPredicate replaces the default retryability predicate.
func WithPredicate(predicate func(error) bool) Option {
	return func(o *options) { o.predicate = predicate }
}

// WithSleepFunc replaces the sleep between attempts.
func WithSleepFunc(sleep func(context.Context, time.Duration) error) Option {
	return func(o *options) { o.sleep = sleep }
}

// WithRand replaces the jitter randomness source.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rand = r }
}

// Do runs op until it succeeds, the error is not retryable, or attempts are
// exhausted. The last error is returned unchanged. The sleep between
// attempts respects ctx cancellation.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error), opts ...Option) (T, error) {
	o := options{
		predicate: IsRetryable,
		sleep:     sleepContext,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(&o)
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var zero T
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == maxAttempts || !o.predicate(err) {
			break
		}
		if err := o.sleep(ctx, delayFor(cfg, attempt, o.rand)); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func delayFor(cfg Config, attempt int, r *rand.Rand) time.Duration {
	delay := float64(cfg.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= cfg.BackoffMultiplier
	}
	if max := float64(cfg.MaxDelay); cfg.MaxDelay > 0 && delay > max {
		delay = max
	}
	if cfg.Jitter {
		// Up to +-25% around the computed delay.
		delay *= 0.75 + r.Float64()*0.5
	}

	return time.Duration(delay)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsRetryable is the default predicate: transient provider failures marked
// retryable, network timeouts, and connection resets/refusals.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errs.IsRetryable(err) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED)
}

// IsRetryableStatus reports whether an HTTP status from a provider is worth
// retrying: server errors, request timeout and rate limiting.
func IsRetryableStatus(status int) bool {
	return status >= 500 || status == 408 || status == 429
}

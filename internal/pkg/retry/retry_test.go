package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/errs"
	"github.com/MatheusFDS/deliveryserver-sub000/internal/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingSleep(delays *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*delays = append(*delays, d)
		return nil
	}
}

func testConfig() retry.Config {
	return retry.Config{
		MaxAttempts:       4,
		BaseDelay:         100 * time.Millisecond,
		MaxDelay:          300 * time.Millisecond,
		BackoffMultiplier: 2,
	}
}

func TestDo(t *testing.T) {
	t.Run("success_on_first_attempt_never_sleeps", func(t *testing.T) {
		var delays []time.Duration

		result, err := retry.Do(context.Background(), testConfig(),
			func(context.Context) (string, error) { return "ok", nil },
			retry.WithSleepFunc(recordingSleep(&delays)),
		)

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.Empty(t, delays)
	})

	t.Run("non_retryable_error_is_attempted_exactly_once", func(t *testing.T) {
		attempts := 0
		wantErr := errs.NewValueIsInvalidError("address")

		_, err := retry.Do(context.Background(), testConfig(),
			func(context.Context) (string, error) {
				attempts++
				return "", wantErr
			},
		)

		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 1, attempts)
	})

	t.Run("retryable_error_is_retried_up_to_max_attempts", func(t *testing.T) {
		attempts := 0
		var delays []time.Duration
		wantErr := errs.NewServiceUnavailableError("maps", true)

		_, err := retry.Do(context.Background(), testConfig(),
			func(context.Context) (string, error) {
				attempts++
				return "", wantErr
			},
			retry.WithSleepFunc(recordingSleep(&delays)),
		)

		require.ErrorIs(t, err, errs.ErrServiceUnavailable)
		assert.Equal(t, 4, attempts)
		assert.Len(t, delays, 3)
	})

	t.Run("delays_grow_monotonically_until_the_cap", func(t *testing.T) {
		var delays []time.Duration

		_, _ = retry.Do(context.Background(), testConfig(),
			func(context.Context) (string, error) {
				return "", errs.NewServiceUnavailableError("maps", true)
			},
			retry.WithSleepFunc(recordingSleep(&delays)),
		)

		require.Len(t, delays, 3)
		assert.Equal(t, 100*time.Millisecond, delays[0])
		assert.Equal(t, 200*time.Millisecond, delays[1])
		assert.Equal(t, 300*time.Millisecond, delays[2]) // capped at MaxDelay
	})

	t.Run("recovery_mid_schedule_returns_the_result", func(t *testing.T) {
		attempts := 0
		var delays []time.Duration

		result, err := retry.Do(context.Background(), testConfig(),
			func(context.Context) (int, error) {
				attempts++
				if attempts < 3 {
					return 0, errs.NewServiceUnavailableError("maps", true)
				}
				return 42, nil
			},
			retry.WithSleepFunc(recordingSleep(&delays)),
		)

		require.NoError(t, err)
		assert.Equal(t, 42, result)
		assert.Equal(t, 3, attempts)
		assert.Len(t, delays, 2)
	})

	t.Run("custom_predicate_overrides_the_default", func(t *testing.T) {
		attempts := 0
		wantErr := errors.New("flaky")

		_, err := retry.Do(context.Background(), testConfig(),
			func(context.Context) (string, error) {
				attempts++
				return "", wantErr
			},
			retry.WithPredicate(func(err error) bool { return errors.Is(err, wantErr) }),
			retry.WithSleepFunc(recordingSleep(&[]time.Duration{})),
		)

		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 4, attempts)
	})

	t.Run("cancelled_context_stops_the_schedule", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0

		_, err := retry.Do(ctx, testConfig(),
			func(context.Context) (string, error) {
				attempts++
				cancel()
				return "", errs.NewServiceUnavailableError("maps", true)
			},
		)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	})
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, retry.IsRetryable(nil))
	assert.False(t, retry.IsRetryable(errs.NewValueIsRequiredError("driverId")))
	assert.False(t, retry.IsRetryable(errs.NewServiceUnavailableError("maps", false)))
	assert.True(t, retry.IsRetryable(errs.NewServiceUnavailableError("maps", true)))
	assert.False(t, retry.IsRetryable(errors.New("plain")))
}

func TestIsRetryableStatus(t *testing.T) {
	assert.True(t, retry.IsRetryableStatus(500))
	assert.True(t, retry.IsRetryableStatus(503))
	assert.True(t, retry.IsRetryableStatus(408))
	assert.True(t, retry.IsRetryableStatus(429))
	assert.False(t, retry.IsRetryableStatus(400))
	assert.False(t, retry.IsRetryableStatus(404))
	assert.False(t, retry.IsRetryableStatus(200))
}

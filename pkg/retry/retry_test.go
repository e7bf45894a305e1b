package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeoutError mimics a network timeout.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := DoWithBackoff(context.Background(), 3, time.Millisecond, 10*time.Millisecond, func() error {
		attempts++
		if attempts < 3 {
			return timeoutError{}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustsRetries(t *testing.T) {
	attempts := 0
	err := DoWithBackoff(context.Background(), 3, time.Millisecond, 10*time.Millisecond, func() error {
		attempts++
		return timeoutError{}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Equal(t, 3, attempts)
}

func TestDo_NonTransientFailsImmediately(t *testing.T) {
	permanent := errors.New("received status 404")
	attempts := 0
	err := DoWithBackoff(context.Background(), 3, time.Millisecond, 10*time.Millisecond, func() error {
		attempts++
		return permanent
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.NotErrorIs(t, err, ErrMaxRetriesExceeded)
	assert.Equal(t, 1, attempts)
}

func TestDo_RateLimitedSurfacesWithoutRetry(t *testing.T) {
	attempts := 0
	err := DoWithBackoff(context.Background(), 3, time.Millisecond, 10*time.Millisecond, func() error {
		attempts++
		return ErrRateLimited
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, attempts)
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := DoWithBackoff(ctx, 3, time.Second, 10*time.Second, func() error {
		return timeoutError{}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(timeoutError{}))
	assert.False(t, IsTransient(errors.New("received status 500")))
	assert.False(t, IsTransient(nil))
}

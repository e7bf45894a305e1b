package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"
)

// ErrRateLimited indicates the upstream rejected the request with HTTP 429.
// It is surfaced to the caller rather than retried automatically.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrMaxRetriesExceeded indicates the operation kept failing transiently until
// the retry budget was exhausted.
var ErrMaxRetriesExceeded = errors.New("max retries exceeded")

const (
	// DefaultBackoffBase is the initial backoff between attempts.
	DefaultBackoffBase = 1 * time.Second
	// DefaultBackoffCap bounds the exponential backoff growth.
	DefaultBackoffCap = 10 * time.Second
)

// IsTransient reports whether err is a network-level failure worth retrying:
// timeouts and connection-level errors. Application-level failures (bad status,
// malformed payloads) are not transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// Do invokes op, retrying on transient failures with exponential backoff
// (base 1s, doubling per attempt, capped at 10s), up to maxRetries attempts
// total. Non-transient failures and ErrRateLimited propagate immediately.
func Do(ctx context.Context, maxRetries int, op func() error) error {
	return DoWithBackoff(ctx, maxRetries, DefaultBackoffBase, DefaultBackoffCap, op)
}

// DoWithBackoff is Do with an explicit backoff base and cap.
func DoWithBackoff(ctx context.Context, maxRetries int, base, cap time.Duration, op func() error) error {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := op()
		if err == nil {
			return nil
		}

		if errors.Is(err, ErrRateLimited) {
			return err
		}
		if !IsTransient(err) {
			return err
		}

		lastErr = err

		if attempt == maxRetries-1 {
			break
		}

		backoff := base << attempt
		if backoff > cap {
			backoff = cap
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("%w after %d attempts: %v", ErrMaxRetriesExceeded, maxRetries, lastErr)
}

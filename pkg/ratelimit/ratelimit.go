package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget for LLM API calls.
// Wait blocks until the requested number of tokens fits in the current
// one-minute window.
type TokenLimiter struct {
	mu          sync.Mutex
	maxPerMin   int
	used        int
	windowStart time.Time
}

// NewTokenLimiter creates a limiter allowing maxPerMinute tokens per minute.
func NewTokenLimiter(maxPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxPerMin:   maxPerMinute,
		windowStart: time.Now(),
	}
}

// GetRemaining returns the number of tokens still available in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollWindow(time.Now())
	return l.maxPerMin - l.used
}

// Wait blocks until n tokens are available, then consumes them.
// Requests larger than the whole budget are consumed immediately after a
// fresh window rather than blocking forever.
func (l *TokenLimiter) Wait(ctx context.Context, n int) error {
	for {
		l.mu.Lock()
		now := time.Now()
		l.rollWindow(now)

		if l.used+n <= l.maxPerMin || (l.used == 0 && n > l.maxPerMin) {
			l.used += n
			l.mu.Unlock()
			return nil
		}

		wait := l.windowStart.Add(time.Minute).Sub(now)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (l *TokenLimiter) rollWindow(now time.Time) {
	if now.Sub(l.windowStart) >= time.Minute {
		l.used = 0
		l.windowStart = now
	}
}

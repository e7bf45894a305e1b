package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuotaClient(maxDailyPosts int, base time.Time) *client {
	return &client{
		maxDailyPosts: maxDailyPosts,
		lastReset:     base,
		now:           func() time.Time { return base },
	}
}

func TestConsumeQuota_BlocksAtDailyLimit(t *testing.T) {
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	c := newQuotaClient(2, base)

	require.NoError(t, c.consumeQuota())
	require.NoError(t, c.consumeQuota())
	assert.ErrorIs(t, c.consumeQuota(), ErrDailyPostLimit)
}

func TestConsumeQuota_ResetsOnNewDay(t *testing.T) {
	base := time.Date(2025, 6, 10, 23, 50, 0, 0, time.UTC)
	c := newQuotaClient(1, base)

	require.NoError(t, c.consumeQuota())
	require.ErrorIs(t, c.consumeQuota(), ErrDailyPostLimit)

	c.now = func() time.Time { return time.Date(2025, 6, 11, 0, 10, 0, 0, time.UTC) }
	assert.NoError(t, c.consumeQuota())
	assert.ErrorIs(t, c.consumeQuota(), ErrDailyPostLimit)
}

func TestConsumeQuota_DisabledWhenNonPositive(t *testing.T) {
	base := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	c := newQuotaClient(0, base)

	for i := 0; i < 50; i++ {
		require.NoError(t, c.consumeQuota())
	}
}

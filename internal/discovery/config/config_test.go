package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, "https://api.dexscreener.com", cfg.Dexscreener.BaseURL)
	assert.Equal(t, 3, cfg.Dexscreener.MaxRetries)
	assert.Equal(t, 50_000.0, cfg.Dexscreener.MinLiquidityUSD)
	assert.Equal(t, 10_000.0, cfg.Dexscreener.MinVolume24h)
	assert.Equal(t, 50, cfg.Dexscreener.MinTxns24h)
	assert.Equal(t, 1_000_000.0, cfg.Dexscreener.MinMarketCap)
	assert.Equal(t, 100_000_000.0, cfg.Dexscreener.MaxMarketCap)
	assert.InDelta(t, 1.0, cfg.Score.Sum(), 0.001)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
	assert.Equal(t, 24, cfg.Scheduler.MaxDailyRuns)
	assert.Equal(t, 17, cfg.Telegram.MaxDailyPosts)

	require.NoError(t, cfg.Validate())
}

func TestValidate_WeightSum(t *testing.T) {
	cfg := validConfig()
	cfg.Score.LiquidityWeight = 0.5
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum to 1.0")

	// Deviation inside the tolerance is accepted.
	cfg = validConfig()
	cfg.Score.LiquidityWeight = 0.2505
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.Score.PriceChangeWeight = -0.15
	cfg.Score.LiquidityWeight = 0.55
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestValidate_SchedulerBounds(t *testing.T) {
	cfg := validConfig()
	cfg.Scheduler.StartHour = 10
	cfg.Scheduler.EndHour = 8
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Scheduler.EndHour = 24
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Scheduler.IntervalMinutes = 61
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Scheduler.IntervalMinutes = 0
	assert.Error(t, cfg.Validate())
}

func TestValidate_AcceptsDefaultHourlyInterval(t *testing.T) {
	cfg := validConfig()
	require.Equal(t, 60, cfg.Scheduler.IntervalMinutes)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MarketCapBand(t *testing.T) {
	cfg := validConfig()
	cfg.Dexscreener.MinMarketCap = 200_000_000
	assert.Error(t, cfg.Validate())
}

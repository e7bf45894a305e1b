package config

import (
	"fmt"
	"math"
	"time"

	"golang-token-pulse/pkg/config"
)

// Dexscreener holds the configuration for the DexScreener API client.
type Dexscreener struct {
	BaseURL         string        `mapstructure:"base_url"`
	RequestInterval time.Duration `mapstructure:"request_interval"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	MaxRetries      int           `mapstructure:"max_retries"`

	MinLiquidityUSD float64 `mapstructure:"min_liquidity_usd"`
	MinVolume24h    float64 `mapstructure:"min_volume_24h"`
	MinTxns24h      int     `mapstructure:"min_txns_24h"`
	MinMarketCap    float64 `mapstructure:"min_market_cap"`
	MaxMarketCap    float64 `mapstructure:"max_market_cap"`
}

// Score holds the composite-score weights. The weights must sum to 1.0
// within tolerance 0.001; violations are a startup-time fatal error.
type Score struct {
	LiquidityWeight    float64 `mapstructure:"liquidity_weight"`
	VolumeWeight       float64 `mapstructure:"volume_weight"`
	TransactionsWeight float64 `mapstructure:"transactions_weight"`
	PriceChangeWeight  float64 `mapstructure:"price_change_weight"`
	MarketCapWeight    float64 `mapstructure:"market_cap_weight"`
}

// Sum returns the total of all five weights.
func (s Score) Sum() float64 {
	return s.LiquidityWeight + s.VolumeWeight + s.TransactionsWeight + s.PriceChangeWeight + s.MarketCapWeight
}

// Scheduler holds the discovery scheduler configuration.
type Scheduler struct {
	Enabled         bool   `mapstructure:"enabled"`
	IntervalMinutes int    `mapstructure:"interval_minutes"`
	Timezone        string `mapstructure:"timezone"`
	MaxDailyRuns    int    `mapstructure:"max_daily_runs"`
	StartHour       int    `mapstructure:"start_hour"`
	EndHour         int    `mapstructure:"end_hour"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken      string `mapstructure:"bot_token"`
	ChatID        int64  `mapstructure:"chat_id"`
	MaxDailyPosts int    `mapstructure:"max_daily_posts"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Reporter holds the configuration for downstream reporting.
type Reporter struct {
	DedupeTTL time.Duration `mapstructure:"dedupe_ttl"`
}

// Config holds the full configuration for the discovery service.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	API         config.API      `mapstructure:"api"`
	Dexscreener Dexscreener     `mapstructure:"dexscreener"`
	Score       Score           `mapstructure:"score"`
	Scheduler   Scheduler       `mapstructure:"scheduler"`
	Telegram    Telegram        `mapstructure:"telegram"`
	Gemini      Gemini          `mapstructure:"gemini"`
	Reporter    Reporter        `mapstructure:"reporter"`
}

// Load loads the discovery configuration from the given path and validates it.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	d := &c.Dexscreener
	if d.BaseURL == "" {
		d.BaseURL = "https://api.dexscreener.com"
	}
	if d.RequestInterval == 0 {
		d.RequestInterval = time.Second
	}
	if d.RequestTimeout == 0 {
		d.RequestTimeout = 5 * time.Second
	}
	if d.MaxRetries == 0 {
		d.MaxRetries = 3
	}
	if d.MinLiquidityUSD == 0 {
		d.MinLiquidityUSD = 50_000
	}
	if d.MinVolume24h == 0 {
		d.MinVolume24h = 10_000
	}
	if d.MinTxns24h == 0 {
		d.MinTxns24h = 50
	}
	if d.MinMarketCap == 0 {
		d.MinMarketCap = 1_000_000
	}
	if d.MaxMarketCap == 0 {
		d.MaxMarketCap = 100_000_000
	}

	if c.Score.Sum() == 0 {
		c.Score = Score{
			LiquidityWeight:    0.25,
			VolumeWeight:       0.25,
			TransactionsWeight: 0.20,
			PriceChangeWeight:  0.15,
			MarketCapWeight:    0.15,
		}
	}

	s := &c.Scheduler
	if s.IntervalMinutes == 0 {
		s.IntervalMinutes = 60
	}
	if s.Timezone == "" {
		s.Timezone = "UTC"
	}
	if s.MaxDailyRuns == 0 {
		s.MaxDailyRuns = 24
	}
	if s.EndHour == 0 {
		s.EndHour = 23
	}

	if c.Telegram.MaxDailyPosts == 0 {
		c.Telegram.MaxDailyPosts = 17
	}

	g := &c.Gemini
	if g.BaseURL == "" {
		g.BaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	}
	if g.Model == "" {
		g.Model = "gemini-2.0-flash"
	}
	if g.MaxRequestPerMinute == 0 {
		g.MaxRequestPerMinute = 10
	}
	if g.MaxTokenPerMinute == 0 {
		g.MaxTokenPerMinute = 1_000_000
	}
	if c.Reporter.DedupeTTL == 0 {
		c.Reporter.DedupeTTL = 24 * time.Hour
	}
}

// Validate checks construction-time invariants. Violations abort startup.
func (c *Config) Validate() error {
	if diff := math.Abs(c.Score.Sum() - 1.0); diff > 0.001 {
		return fmt.Errorf("score weights must sum to 1.0 within 0.001, got %.4f", c.Score.Sum())
	}
	for name, w := range map[string]float64{
		"liquidity_weight":    c.Score.LiquidityWeight,
		"volume_weight":       c.Score.VolumeWeight,
		"transactions_weight": c.Score.TransactionsWeight,
		"price_change_weight": c.Score.PriceChangeWeight,
		"market_cap_weight":   c.Score.MarketCapWeight,
	} {
		if w < 0 {
			return fmt.Errorf("score weight %s must be non-negative, got %.4f", name, w)
		}
	}

	s := c.Scheduler
	if s.StartHour < 0 || s.StartHour > 23 || s.EndHour < 0 || s.EndHour > 23 {
		return fmt.Errorf("scheduler hours must be within [0,23], got start=%d end=%d", s.StartHour, s.EndHour)
	}
	if s.StartHour > s.EndHour {
		return fmt.Errorf("scheduler start_hour %d must not be after end_hour %d", s.StartHour, s.EndHour)
	}
	if s.IntervalMinutes < 1 || s.IntervalMinutes > 60 {
		return fmt.Errorf("scheduler interval_minutes must be within [1,60], got %d", s.IntervalMinutes)
	}

	if c.Dexscreener.MinMarketCap > c.Dexscreener.MaxMarketCap {
		return fmt.Errorf("min_market_cap %.0f exceeds max_market_cap %.0f", c.Dexscreener.MinMarketCap, c.Dexscreener.MaxMarketCap)
	}

	return nil
}

package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang-token-pulse/internal/discovery/config"
	"golang-token-pulse/pkg/logger"
	"golang-token-pulse/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDexRepo(t *testing.T, baseURL string, interval time.Duration) DexScreenerRepository {
	t.Helper()

	cfg := &config.Config{
		Dexscreener: config.Dexscreener{
			BaseURL:         baseURL,
			RequestInterval: interval,
			RequestTimeout:  2 * time.Second,
			MaxRetries:      3,
		},
	}
	log, err := logger.New("error", "console")
	require.NoError(t, err)
	return NewDexScreenerRepository(cfg, log)
}

func TestGetLatestTokenProfiles_ParsesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token-profiles/latest/v1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"url": "https://dexscreener.com/solana/abc",
				"chainId": "solana",
				"tokenAddress": "abc",
				"description": "first",
				"links": [{"type": "twitter", "url": "https://x.com/abc"}]
			},
			{"url": "https://dexscreener.com/base/def", "chainId": "base", "tokenAddress": "def"}
		]`))
	}))
	defer srv.Close()

	repo := newDexRepo(t, srv.URL, time.Millisecond)

	profiles, err := repo.GetLatestTokenProfiles(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	assert.Equal(t, "solana", profiles[0].ChainID)
	assert.Equal(t, "abc", profiles[0].TokenAddress)
	require.Len(t, profiles[0].Links, 1)
	assert.Equal(t, "twitter", profiles[0].Links[0].Type)
	assert.Equal(t, "base", profiles[1].ChainID)
}

func TestGetLatestTokenProfiles_ServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := newDexRepo(t, srv.URL, time.Millisecond)

	profiles, err := repo.GetLatestTokenProfiles(context.Background())
	require.Error(t, err)
	assert.Nil(t, profiles)
}

func TestGetLatestTokenProfiles_RateLimitedSurfaces(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	repo := newDexRepo(t, srv.URL, time.Millisecond)

	_, err := repo.GetLatestTokenProfiles(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, retry.ErrRateLimited)
	// A 429 is never retried locally.
	assert.Equal(t, int32(1), hits.Load())
}

func TestGetTokenPairs_ParsesOptionalFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token-pairs/v1/solana/abc", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"chainId": "solana",
				"pairAddress": "pair1",
				"priceUsd": "0.0042",
				"txns": {"h24": {"buys": 30, "sells": 25}},
				"volume": {"h24": 12500.5},
				"priceChange": {"h24": -12.5},
				"liquidity": {"usd": 80000, "base": 1, "quote": 2},
				"marketCap": 2500000
			},
			{"chainId": "solana", "pairAddress": "pair2", "priceUsd": "0.001"}
		]`))
	}))
	defer srv.Close()

	repo := newDexRepo(t, srv.URL, time.Millisecond)

	pairs, err := repo.GetTokenPairs(context.Background(), "solana", "abc")
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	full := pairs[0]
	assert.Equal(t, 55, full.TxCount24h())
	assert.Equal(t, 12500.5, full.Volume24h())
	assert.Equal(t, -12.5, full.PriceChange24h())
	assert.Equal(t, 80000.0, full.LiquidityUSD())
	mc, ok := full.MarketCapValue()
	assert.True(t, ok)
	assert.Equal(t, 2500000.0, mc)
	assert.Equal(t, 0.0042, full.PriceUSDValue())

	// The bare pair defaults every optional metric and reports no market cap.
	bare := pairs[1]
	assert.Equal(t, 0, bare.TxCount24h())
	assert.Equal(t, 0.0, bare.Volume24h())
	_, ok = bare.MarketCapValue()
	assert.False(t, ok)
}

func TestGetTokenPairs_FailureYieldsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := newDexRepo(t, srv.URL, time.Millisecond)

	pairs, err := repo.GetTokenPairs(context.Background(), "solana", "missing")
	assert.NoError(t, err)
	assert.Nil(t, pairs)
}

func TestGetTokenPairs_MalformedBodyYieldsEmptyNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer srv.Close()

	repo := newDexRepo(t, srv.URL, time.Millisecond)

	pairs, err := repo.GetTokenPairs(context.Background(), "solana", "abc")
	assert.NoError(t, err)
	assert.Nil(t, pairs)
}

func TestRequestsObserveMinimumInterval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	interval := 50 * time.Millisecond
	repo := newDexRepo(t, srv.URL, interval)

	ctx := context.Background()
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := repo.GetLatestTokenProfiles(ctx)
		require.NoError(t, err)
	}

	// Three requests through one limiter take at least two full intervals.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang-token-pulse/internal/discovery/config"
	"golang-token-pulse/internal/discovery/dto"
	"golang-token-pulse/pkg/logger"
	"golang-token-pulse/pkg/retry"

	"golang.org/x/time/rate"
)

type dexScreenerRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// NewDexScreenerRepository creates a DexScreener API client. A single rate
// limiter gates every outbound request, whichever endpoint issues it, so the
// overall cadence never exceeds one request per request_interval.
func NewDexScreenerRepository(cfg *config.Config, log *logger.Logger) DexScreenerRepository {
	requestLimiter := rate.NewLimiter(rate.Every(cfg.Dexscreener.RequestInterval), 1)
	return &dexScreenerRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: cfg.Dexscreener.RequestTimeout,
		},
		requestLimiter: requestLimiter,
	}
}

// GetLatestTokenProfiles fetches the latest token-profiles listing, in the
// order the upstream returns it.
func (r *dexScreenerRepository) GetLatestTokenProfiles(ctx context.Context) ([]dto.TokenProfile, error) {
	url := r.cfg.Dexscreener.BaseURL + "/token-profiles/latest/v1"

	body, err := r.getWithRetry(ctx, url)
	if err != nil {
		return nil, err
	}

	var profiles []dto.TokenProfile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode token profiles: %w", err)
	}

	r.log.DebugContext(ctx, "Fetched latest token profiles", logger.IntField("count", len(profiles)))
	return profiles, nil
}

// GetTokenPairs fetches the trading pairs for a token. A fetch failure is
// logged and yields an empty slice so one candidate cannot abort a batch.
func (r *dexScreenerRepository) GetTokenPairs(ctx context.Context, chainID, tokenAddress string) ([]dto.Pair, error) {
	url := fmt.Sprintf("%s/token-pairs/v1/%s/%s", r.cfg.Dexscreener.BaseURL, chainID, tokenAddress)

	body, err := r.getWithRetry(ctx, url)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to fetch pair data",
			logger.ErrorField(err),
			logger.StringField("chain_id", chainID),
			logger.StringField("token_address", tokenAddress))
		return nil, nil
	}

	var pairs []dto.Pair
	if err := json.Unmarshal(body, &pairs); err != nil {
		r.log.ErrorContext(ctx, "Failed to decode pair data",
			logger.ErrorField(err),
			logger.StringField("token_address", tokenAddress))
		return nil, nil
	}

	return pairs, nil
}

// getWithRetry issues a rate-limited GET with bounded retries on transient
// network failures. A 429 response surfaces as retry.ErrRateLimited; other
// non-200 statuses propagate without retry.
func (r *dexScreenerRepository) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := retry.Do(ctx, r.cfg.Dexscreener.MaxRetries, func() error {
		if err := r.requestLimiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request to %s failed: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %s", retry.ErrRateLimited, url)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("received status %d from %s", resp.StatusCode, url)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return body, nil
}

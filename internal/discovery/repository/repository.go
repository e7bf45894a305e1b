package repository

import (
	"context"

	"golang-token-pulse/internal/discovery/dto"
	"golang-token-pulse/internal/entity"
)

// DexScreenerRepository fetches token listings and pair data from the
// DexScreener API.
type DexScreenerRepository interface {
	GetLatestTokenProfiles(ctx context.Context) ([]dto.TokenProfile, error)
	GetTokenPairs(ctx context.Context, chainID, tokenAddress string) ([]dto.Pair, error)
}

// AIRepository produces a sentiment verdict for a selected token.
type AIRepository interface {
	AnalyzeTokenSentiment(ctx context.Context, token *entity.RankedToken) (*entity.SentimentAnalysis, error)
}

// DiscoveryRunRepository persists pipeline run telemetry.
type DiscoveryRunRepository interface {
	Create(ctx context.Context, run *entity.DiscoveryRun) error
	Update(ctx context.Context, run *entity.DiscoveryRun) error
	FindLatest(ctx context.Context, limit int) ([]entity.DiscoveryRun, error)
}

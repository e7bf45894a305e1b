package service

import (
	"fmt"
	"math"
	"sort"

	"golang-token-pulse/internal/discovery/config"
	"golang-token-pulse/internal/discovery/dto"
	"golang-token-pulse/internal/entity"
	"golang-token-pulse/pkg/logger"
)

// TokenScreener applies the hard threshold filters and the weighted
// multi-metric scoring to a batch of candidates.
type TokenScreener struct {
	cfg *config.Config
	log *logger.Logger
}

// NewTokenScreener creates a screener. An invalid weight configuration is a
// construction-time error, never a runtime one.
func NewTokenScreener(cfg *config.Config, log *logger.Logger) (*TokenScreener, error) {
	if diff := math.Abs(cfg.Score.Sum() - 1.0); diff > 0.001 {
		return nil, fmt.Errorf("score weights must sum to 1.0 within 0.001, got %.4f", cfg.Score.Sum())
	}
	return &TokenScreener{cfg: cfg, log: log}, nil
}

// IsValid reports whether a candidate's main pair passes every threshold.
// The main pair is pairs[0]; a candidate with no pairs is invalid.
func (s *TokenScreener) IsValid(pairs []dto.Pair) bool {
	if len(pairs) == 0 {
		return false
	}

	mainPair := &pairs[0]
	thresholds := s.cfg.Dexscreener

	marketCap, hasMarketCap := mainPair.MarketCapValue()
	if !hasMarketCap || marketCap < thresholds.MinMarketCap || marketCap > thresholds.MaxMarketCap {
		return false
	}

	return mainPair.LiquidityUSD() >= thresholds.MinLiquidityUSD &&
		mainPair.Volume24h() >= thresholds.MinVolume24h &&
		mainPair.TxCount24h() >= thresholds.MinTxns24h
}

// Rank scores the batch relative to itself and returns it ordered by
// composite score, highest first. Sorting is stable, so equal scores keep
// their input order. Scores are batch-relative and never leave this method.
func (s *TokenScreener) Rank(batch []entity.RankedToken) []entity.RankedToken {
	if len(batch) == 0 {
		return batch
	}

	extremes := computeExtremes(batch)

	type scoredToken struct {
		token entity.RankedToken
		score float64
	}

	scored := make([]scoredToken, 0, len(batch))
	for _, token := range batch {
		scored = append(scored, scoredToken{
			token: token,
			score: s.compositeScore(&token, &extremes),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	ranked := make([]entity.RankedToken, 0, len(scored))
	for _, st := range scored {
		ranked = append(ranked, st.token)
	}
	return ranked
}

// metricRange tracks per-metric min/max across the batch.
type metricRange struct {
	min, max float64
}

func (r *metricRange) observe(v float64) {
	if v < r.min {
		r.min = v
	}
	if v > r.max {
		r.max = v
	}
}

type batchExtremes struct {
	liquidity    metricRange
	volume       metricRange
	transactions metricRange
	priceChange  metricRange
	marketCap    metricRange
}

func computeExtremes(batch []entity.RankedToken) batchExtremes {
	e := batchExtremes{
		liquidity:    metricRange{min: math.Inf(1), max: math.Inf(-1)},
		volume:       metricRange{min: math.Inf(1), max: math.Inf(-1)},
		transactions: metricRange{min: math.Inf(1), max: math.Inf(-1)},
		priceChange:  metricRange{min: math.Inf(1), max: math.Inf(-1)},
		marketCap:    metricRange{min: math.Inf(1), max: math.Inf(-1)},
	}
	for _, t := range batch {
		e.liquidity.observe(t.LiquidityUSD)
		e.volume.observe(t.Volume24h)
		e.transactions.observe(float64(t.TxCount24h))
		e.priceChange.observe(t.PriceChange24h)
		e.marketCap.observe(t.MarketCap)
	}
	return e
}

func (s *TokenScreener) compositeScore(token *entity.RankedToken, e *batchExtremes) float64 {
	weights := s.cfg.Score

	liquidityScore := normalize(token.LiquidityUSD, e.liquidity.min, e.liquidity.max) * weights.LiquidityWeight
	volumeScore := normalize(token.Volume24h, e.volume.min, e.volume.max) * weights.VolumeWeight
	txScore := normalize(float64(token.TxCount24h), e.transactions.min, e.transactions.max) * weights.TransactionsWeight

	// Moderate positive moves score best; extreme pumps are penalized.
	changeScore := priceChangeScore(token.PriceChange24h) * weights.PriceChangeWeight

	// Lower market cap within the valid band scores higher.
	marketCapScore := (1 - normalize(token.MarketCap, e.marketCap.min, e.marketCap.max)) * weights.MarketCapWeight

	return liquidityScore + volumeScore + txScore + changeScore + marketCapScore
}

// normalize maps v into [0,1] relative to [min,max]. A degenerate range
// scores 1.0 so a singleton batch rates every metric as maximal.
func normalize(v, min, max float64) float64 {
	if max == min {
		return 1
	}
	return (v - min) / (max - min)
}

// priceChangeScore rates the 24h change: pct/30 up to +30%, decreasing above
// that (unclamped), and partial credit down to -20% for negative moves.
func priceChangeScore(pct float64) float64 {
	switch {
	case pct > 0 && pct <= 30:
		return pct / 30
	case pct > 30:
		return 1 - (pct-30)/70
	default:
		return math.Max(0, (pct+20)/20)
	}
}

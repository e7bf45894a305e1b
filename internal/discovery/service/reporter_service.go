package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang-token-pulse/internal/discovery/config"
	"golang-token-pulse/internal/discovery/repository"
	"golang-token-pulse/internal/entity"
	"golang-token-pulse/pkg/common"
	"golang-token-pulse/pkg/logger"
	pkgredis "golang-token-pulse/pkg/redis"
	"golang-token-pulse/pkg/telegram"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// ReporterService hands a selected token to downstream consumers: sentiment
// analysis, the Telegram channel and the Redis report stream.
type ReporterService interface {
	Report(ctx context.Context, token *entity.RankedToken)
	Latest() *entity.TokenReport
}

// NewReporterService creates the reporter. A token already reported within
// the dedupe TTL is silently skipped.
func NewReporterService(
	cfg *config.Config,
	aiRepo repository.AIRepository,
	notifier telegram.Notifier,
	redisClient *pkgredis.Client,
	log *logger.Logger,
) ReporterService {
	return &reporterService{
		cfg:         cfg,
		aiRepo:      aiRepo,
		notifier:    notifier,
		redisClient: redisClient,
		log:         log,
		reported:    cache.New(cfg.Reporter.DedupeTTL, cfg.Reporter.DedupeTTL),
	}
}

type reporterService struct {
	cfg         *config.Config
	aiRepo      repository.AIRepository
	notifier    telegram.Notifier
	redisClient *pkgredis.Client
	log         *logger.Logger
	reported    *cache.Cache

	mu     sync.RWMutex
	latest *entity.TokenReport
}

// Report publishes the token downstream. Every failure here is logged and
// swallowed: reporting sits past the selection boundary and must never fail
// the discovery run.
func (s *reporterService) Report(ctx context.Context, token *entity.RankedToken) {
	if token == nil {
		return
	}

	dedupeKey := token.ChainID + ":" + token.TokenAddress
	if _, seen := s.reported.Get(dedupeKey); seen {
		s.log.InfoContext(ctx, "Token already reported recently, skipping",
			logger.StringField("token_address", token.TokenAddress))
		return
	}

	report := &entity.TokenReport{
		Token:       *token,
		GeneratedAt: time.Now(),
	}

	sentiment, err := s.aiRepo.AnalyzeTokenSentiment(ctx, token)
	if err != nil {
		s.log.ErrorContext(ctx, "Sentiment analysis failed, reporting without it",
			logger.ErrorField(err),
			logger.StringField("token_address", token.TokenAddress))
	} else {
		report.Sentiment = sentiment
		s.log.InfoContext(ctx, "Sentiment analysis completed",
			logger.StringField("sentiment", sentiment.Sentiment),
			logger.Float64Field("confidence", sentiment.Confidence),
			logger.StringField("token_address", token.TokenAddress))
	}

	if err := s.notifier.SendMessage(telegram.FormatTokenReport(report)); err != nil {
		if errors.Is(err, telegram.ErrDailyPostLimit) {
			s.log.WarnContext(ctx, "Daily post limit reached, skipping Telegram message")
		} else {
			s.log.ErrorContext(ctx, "Failed to send Telegram message", logger.ErrorField(err))
		}
	}

	if err := s.publishReport(ctx, report); err != nil {
		s.log.ErrorContext(ctx, "Failed to publish report to stream", logger.ErrorField(err))
	}

	s.reported.Set(dedupeKey, struct{}{}, cache.DefaultExpiration)

	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()
}

// Latest returns the most recent report, nil when none has been produced yet.
func (s *reporterService) Latest() *entity.TokenReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *reporterService) publishReport(ctx context.Context, report *entity.TokenReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return s.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamDiscoveryReport,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: s.cfg.Redis.StreamMaxLen,
	}).Err()
}

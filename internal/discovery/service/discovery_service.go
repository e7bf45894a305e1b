package service

import (
	"context"
	"database/sql"
	"time"

	"golang-token-pulse/internal/discovery/repository"
	"golang-token-pulse/internal/entity"
	"golang-token-pulse/pkg/logger"
)

// DiscoveryService runs one full discovery cycle: fetch, validate, rank.
// Run returns (nil, nil) when no candidate qualifies; that is a legitimate
// empty outcome, not a failure.
type DiscoveryService interface {
	Run(ctx context.Context) (*entity.RankedToken, error)
}

// NewDiscoveryService creates the discovery pipeline.
func NewDiscoveryService(
	dexRepo repository.DexScreenerRepository,
	runRepo repository.DiscoveryRunRepository,
	screener *TokenScreener,
	log *logger.Logger,
) DiscoveryService {
	return &discoveryService{
		dexRepo:  dexRepo,
		runRepo:  runRepo,
		screener: screener,
		log:      log,
	}
}

type discoveryService struct {
	dexRepo  repository.DexScreenerRepository
	runRepo  repository.DiscoveryRunRepository
	screener *TokenScreener
	log      *logger.Logger
}

// Run fetches the latest candidates, validates each one against its main
// pair, ranks the survivors and returns the top token. A listing fetch
// failure is fatal to the run; a single candidate's pair fetch failure only
// excludes that candidate. Pair lookups are issued sequentially so the shared
// rate limiter stays the only pacing mechanism.
func (s *discoveryService) Run(ctx context.Context) (*entity.RankedToken, error) {
	run := &entity.DiscoveryRun{
		Status:    entity.RunStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to record run start", logger.ErrorField(err))
	}

	best, err := s.discover(ctx, run)
	s.finishRun(ctx, run, best, err)
	if err != nil {
		return nil, err
	}
	return best, nil
}

func (s *discoveryService) discover(ctx context.Context, run *entity.DiscoveryRun) (*entity.RankedToken, error) {
	profiles, err := s.dexRepo.GetLatestTokenProfiles(ctx)
	if err != nil {
		return nil, err
	}
	run.CandidatesSeen = len(profiles)

	var validTokens []entity.RankedToken
	for _, profile := range profiles {
		pairs, err := s.dexRepo.GetTokenPairs(ctx, profile.ChainID, profile.TokenAddress)
		if err != nil {
			// The repository already degrades failures to an empty
			// slice; this only guards interface implementations that
			// propagate instead.
			s.log.WarnContext(ctx, "Skipping candidate after pair fetch failure",
				logger.ErrorField(err),
				logger.StringField("token_address", profile.TokenAddress))
			continue
		}

		if !s.screener.IsValid(pairs) {
			continue
		}

		validTokens = append(validTokens, entity.RankedToken{
			TokenCandidate: profile.ToTokenCandidate(),
			PairMetrics:    pairs[0].ToPairMetrics(),
		})
	}
	run.CandidatesValid = len(validTokens)

	if len(validTokens) == 0 {
		return nil, nil
	}

	ranked := s.screener.Rank(validTokens)
	best := ranked[0]

	s.log.InfoContext(ctx, "Discovery run selected a token",
		logger.StringField("chain_id", best.ChainID),
		logger.StringField("token_address", best.TokenAddress),
		logger.IntField("candidates_seen", run.CandidatesSeen),
		logger.IntField("candidates_valid", run.CandidatesValid))

	return &best, nil
}

func (s *discoveryService) finishRun(ctx context.Context, run *entity.DiscoveryRun, best *entity.RankedToken, runErr error) {
	run.CompletedAt = sql.NullTime{Time: time.Now(), Valid: true}

	switch {
	case runErr != nil:
		run.Status = entity.RunStatusFailed
		run.ErrorMessage = sql.NullString{String: runErr.Error(), Valid: true}
	case best == nil:
		run.Status = entity.RunStatusNoResult
	default:
		run.Status = entity.RunStatusCompleted
		run.SelectedChainID = sql.NullString{String: best.ChainID, Valid: true}
		run.SelectedAddress = sql.NullString{String: best.TokenAddress, Valid: true}
	}

	if err := s.runRepo.Update(ctx, run); err != nil {
		s.log.ErrorContext(ctx, "Failed to record run completion", logger.ErrorField(err), logger.Field("run_id", run.ID))
	}
}

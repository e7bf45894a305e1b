package service

import (
	"context"
	"testing"

	"golang-token-pulse/internal/discovery/dto"
	"golang-token-pulse/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDexRepo serves canned listings and per-token pair responses.
type fakeDexRepo struct {
	profiles    []dto.TokenProfile
	profilesErr error
	pairs       map[string][]dto.Pair
	pairErrs    map[string]error
	pairCalls   []string
}

func (f *fakeDexRepo) GetLatestTokenProfiles(_ context.Context) ([]dto.TokenProfile, error) {
	return f.profiles, f.profilesErr
}

func (f *fakeDexRepo) GetTokenPairs(_ context.Context, _, tokenAddress string) ([]dto.Pair, error) {
	f.pairCalls = append(f.pairCalls, tokenAddress)
	if err, ok := f.pairErrs[tokenAddress]; ok {
		return nil, err
	}
	return f.pairs[tokenAddress], nil
}

// fakeRunRepo records run telemetry in memory.
type fakeRunRepo struct {
	created []*entity.DiscoveryRun
	updated []*entity.DiscoveryRun
}

func (f *fakeRunRepo) Create(_ context.Context, run *entity.DiscoveryRun) error {
	f.created = append(f.created, run)
	return nil
}

func (f *fakeRunRepo) Update(_ context.Context, run *entity.DiscoveryRun) error {
	f.updated = append(f.updated, run)
	return nil
}

func (f *fakeRunRepo) FindLatest(_ context.Context, _ int) ([]entity.DiscoveryRun, error) {
	return nil, nil
}

func profileFor(address string) dto.TokenProfile {
	return dto.TokenProfile{
		ChainID:      "solana",
		TokenAddress: address,
		URL:          "https://dexscreener.com/solana/" + address,
	}
}

func pairWith(liquidity, marketCap float64) dto.Pair {
	p := validPair()
	p.Liquidity.USD = liquidity
	p.MarketCap = floatPtr(marketCap)
	return p
}

func newTestDiscovery(t *testing.T, dex *fakeDexRepo, runs *fakeRunRepo) DiscoveryService {
	t.Helper()
	return NewDiscoveryService(dex, runs, newTestScreener(t), testLogger(t))
}

func TestDiscoveryRun_ListingFailureIsFatal(t *testing.T) {
	dex := &fakeDexRepo{profilesErr: assert.AnError}
	runs := &fakeRunRepo{}
	svc := newTestDiscovery(t, dex, runs)

	best, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Nil(t, best)

	require.Len(t, runs.updated, 1)
	assert.Equal(t, entity.RunStatusFailed, runs.updated[0].Status)
	assert.True(t, runs.updated[0].ErrorMessage.Valid)
}

func TestDiscoveryRun_CandidateFailureOnlySkipsThatCandidate(t *testing.T) {
	dex := &fakeDexRepo{
		profiles: []dto.TokenProfile{profileFor("bad"), profileFor("good")},
		pairs:    map[string][]dto.Pair{"good": {pairWith(80_000, 2_000_000)}},
		pairErrs: map[string]error{"bad": assert.AnError},
	}
	runs := &fakeRunRepo{}
	svc := newTestDiscovery(t, dex, runs)

	best, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "good", best.TokenAddress)
	assert.Equal(t, []string{"bad", "good"}, dex.pairCalls)
}

func TestDiscoveryRun_NoQualifyingTokenIsNotAnError(t *testing.T) {
	thin := validPair()
	thin.Liquidity.USD = 1_000

	dex := &fakeDexRepo{
		profiles: []dto.TokenProfile{profileFor("thin")},
		pairs:    map[string][]dto.Pair{"thin": {thin}},
	}
	runs := &fakeRunRepo{}
	svc := newTestDiscovery(t, dex, runs)

	best, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, best)

	require.Len(t, runs.updated, 1)
	assert.Equal(t, entity.RunStatusNoResult, runs.updated[0].Status)
	assert.Equal(t, 1, runs.updated[0].CandidatesSeen)
	assert.Equal(t, 0, runs.updated[0].CandidatesValid)
}

func TestDiscoveryRun_SelectsTopRankedToken(t *testing.T) {
	dex := &fakeDexRepo{
		profiles: []dto.TokenProfile{profileFor("heavy"), profileFor("light")},
		pairs: map[string][]dto.Pair{
			// Same liquidity; the smaller market cap scores higher.
			"heavy": {pairWith(80_000, 90_000_000)},
			"light": {pairWith(80_000, 2_000_000)},
		},
	}
	runs := &fakeRunRepo{}
	svc := newTestDiscovery(t, dex, runs)

	best, err := svc.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, "light", best.TokenAddress)

	require.Len(t, runs.updated, 1)
	run := runs.updated[0]
	assert.Equal(t, entity.RunStatusCompleted, run.Status)
	assert.Equal(t, "light", run.SelectedAddress.String)
	assert.Equal(t, 2, run.CandidatesSeen)
	assert.Equal(t, 2, run.CandidatesValid)
}

func TestDiscoveryRun_OnlyMainPairDecidesValidity(t *testing.T) {
	// First pair fails thresholds even though a later pair would pass.
	thin := validPair()
	thin.Liquidity.USD = 1_000

	dex := &fakeDexRepo{
		profiles: []dto.TokenProfile{profileFor("mixed")},
		pairs:    map[string][]dto.Pair{"mixed": {thin, pairWith(80_000, 2_000_000)}},
	}
	runs := &fakeRunRepo{}
	svc := newTestDiscovery(t, dex, runs)

	best, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Nil(t, best)
}

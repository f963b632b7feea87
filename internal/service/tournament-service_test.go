package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podiumlabs/podium/config"
	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/internal/events/publisher"
	"github.com/podiumlabs/podium/internal/pricing"
	"github.com/podiumlabs/podium/internal/repository"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

type fakeTournamentRepo struct {
	byId    map[string]*models.Tournament
	created []*models.Tournament
	listed  []models.Tournament
	listErr error
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	f.created = append(f.created, t)
	if f.byId == nil {
		f.byId = make(map[string]*models.Tournament)
	}
	f.byId[t.TournamentId] = t
	return nil
}

func (f *fakeTournamentRepo) GetById(ctx context.Context, id string) (*models.Tournament, error) {
	if t, ok := f.byId[id]; ok {
		return t, nil
	}
	return nil, apperrors.New(apperrors.CodeNotFound, "tournament not found")
}

func (f *fakeTournamentRepo) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeTournamentRepo) IncrementEntryCount(ctx context.Context, id string) (*models.Tournament, error) {
	t, ok := f.byId[id]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "tournament not found")
	}
	t.EntryCount++
	return t, nil
}

type fakePrizeRepo struct {
	prizes []models.SponsoredPrize
	err    error
}

func (f *fakePrizeRepo) ListSponsoredPrizes(ctx context.Context, id string) ([]models.SponsoredPrize, error) {
	return f.prizes, f.err
}

type fakeClaimRepo struct {
	records []models.ClaimRecord
	err     error
}

func (f *fakeClaimRepo) ListClaims(ctx context.Context, id string) ([]models.ClaimRecord, error) {
	return f.records, f.err
}

type fakeTokenRepo struct {
	directory repository.TokenDirectory
	err       error
}

func (f *fakeTokenRepo) GetTokens(ctx context.Context, addresses []string) (repository.TokenDirectory, error) {
	return f.directory, f.err
}

type fixture struct {
	service     TournamentService
	tournaments *fakeTournamentRepo
	prizes      *fakePrizeRepo
	claims      *fakeClaimRepo
	tokens      *fakeTokenRepo
	rules       config.RulesConfig
}

func newFixture(rules config.RulesConfig) *fixture {
	f := &fixture{
		tournaments: &fakeTournamentRepo{byId: make(map[string]*models.Tournament)},
		prizes:      &fakePrizeRepo{},
		claims:      &fakeClaimRepo{},
		tokens:      &fakeTokenRepo{directory: repository.TokenDirectory{}},
		rules:       rules,
	}
	f.service = NewTournamentService(
		f.tournaments,
		f.prizes,
		f.claims,
		f.tokens,
		pricing.StaticPrices{},
		publisher.NewEventPublisher(nil, logger.Development("test")),
		rules,
		logger.Development("test"),
	)
	return f
}

func validSchedule(now time.Time) models.Schedule {
	return models.Schedule{
		Registration: &models.Window{
			Start: now.Add(5 * time.Minute),
			End:   now.Add(1 * time.Hour),
		},
		Game: models.Window{
			Start: now.Add(2 * time.Hour),
			End:   now.Add(6 * time.Hour),
		},
		SubmissionSeconds: int64(48 * time.Hour / time.Second),
	}
}

func TestCreateTournament(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture(config.DefaultRules())

	tournament, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:               "spring cup",
		GameId:             "game-1",
		CreatorAddress:     "0xabc",
		GameCreatorAddress: "0xdef",
		Schedule:           validSchedule(now),
		EntryFee: &models.EntryFee{
			TokenAddress:         "0xToken",
			AmountPerEntry:       "100",
			Distribution:         []int{70, 30},
			TournamentCreatorPct: 0,
			GameCreatorPct:       0,
		},
	})

	require.Nil(t, err)
	require.NotNil(t, tournament)
	assert.NotEmpty(t, tournament.TournamentId)
	assert.Equal(t, models.Open, tournament.Status)
	assert.Len(t, f.tournaments.created, 1)
}

func TestCreateTournamentGeneratesDistributionFromCurve(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture(config.DefaultRules())

	tournament, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:            "curve cup",
		Schedule:        validSchedule(now),
		PayoutPositions: 3,
		CurveWeight:     0,
		EntryFee: &models.EntryFee{
			TokenAddress:         "0xToken",
			AmountPerEntry:       "100",
			TournamentCreatorPct: 10,
		},
	})

	require.Nil(t, err)
	// Uniform split of the 90 points left after the creator cut.
	assert.Equal(t, []int{30, 30, 30}, tournament.EntryFee.Distribution)
}

func TestCreateTournamentClampsCurveWeight(t *testing.T) {
	now := time.Now().UTC()
	rules := config.DefaultRules()
	rules.MaxCurveWeight = 0
	f := newFixture(rules)

	tournament, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:            "flat cup",
		Schedule:        validSchedule(now),
		PayoutPositions: 3,
		CurveWeight:     5,
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "100",
		},
	})

	require.Nil(t, err)
	// Weight clamps to the configured maximum of 0: a uniform split
	// with the rounding remainder handed to the top.
	assert.Equal(t, []int{34, 33, 33}, tournament.EntryFee.Distribution)
}

func TestCreateTournamentKeepsExplicitDistribution(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture(config.DefaultRules())

	tournament, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:            "explicit",
		Schedule:        validSchedule(now),
		PayoutPositions: 5,
		CurveWeight:     2,
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "100",
			Distribution:   []int{70, 30},
		},
	})

	require.Nil(t, err)
	assert.Equal(t, []int{70, 30}, tournament.EntryFee.Distribution)
}

func TestCreateTournamentRejectsBadSchedule(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture(config.DefaultRules())

	schedule := validSchedule(now)
	// Game window shorter than the 15 minute minimum.
	schedule.Game.End = schedule.Game.Start.Add(5 * time.Minute)

	_, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "too short",
		Schedule: schedule,
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeScheduleInvalid, err.Code)
}

func TestCreateTournamentRejectsBadEntryFee(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture(config.DefaultRules())

	_, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "bad fee",
		Schedule: validSchedule(now),
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "100",
			Distribution:   []int{70, 20}, // sums to 90
		},
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeEntryFeeInvalid, err.Code)
}

func TestCreateTournamentEnforcesTokenWhitelist(t *testing.T) {
	now := time.Now().UTC()
	rules := config.DefaultRules()
	rules.TokenWhitelist = []string{"0xAllowed"}
	f := newFixture(rules)

	_, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "off list",
		Schedule: validSchedule(now),
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xOther",
			AmountPerEntry: "100",
			Distribution:   []int{100},
		},
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeEntryFeeInvalid, err.Code)

	// Whitelist match is case-insensitive.
	_, err = f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "on list",
		Schedule: validSchedule(now),
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xALLOWED",
			AmountPerEntry: "100",
			Distribution:   []int{100},
		},
	})
	require.Nil(t, err)
}

func TestCreateTournamentEnforcesGameWhitelist(t *testing.T) {
	now := time.Now().UTC()
	rules := config.DefaultRules()
	rules.GameWhitelist = []string{"game-1"}
	f := newFixture(rules)

	_, err := f.service.CreateTournament(context.Background(), CreateTournamentInput{
		Name:     "unknown game",
		GameId:   "game-9",
		Schedule: validSchedule(now),
	})

	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, err.Code)
}

func TestEnterTournamentGating(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(config.DefaultRules())

	f.tournaments.byId["t1"] = &models.Tournament{
		TournamentId: "t1",
		Schedule:     validSchedule(now),
		Status:       models.Open,
	}

	// Inside the registration window.
	updated, err := f.service.EnterTournament(context.Background(), "t1", "0xplayer", now.Add(30*time.Minute))
	require.Nil(t, err)
	assert.Equal(t, 1, updated.EntryCount)

	// After registration closed but before the game starts.
	_, err = f.service.EnterTournament(context.Background(), "t1", "0xplayer", now.Add(90*time.Minute))
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeRegistrationClosed, err.Code)

	// During the game with a fixed window: still closed.
	_, err = f.service.EnterTournament(context.Background(), "t1", "0xplayer", now.Add(3*time.Hour))
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeRegistrationClosed, err.Code)
}

func TestEnterTournamentOpenRegistration(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(config.DefaultRules())

	schedule := validSchedule(now)
	schedule.Registration = nil
	f.tournaments.byId["t1"] = &models.Tournament{
		TournamentId: "t1",
		Schedule:     schedule,
		Status:       models.Open,
	}

	// Before the game: allowed.
	_, err := f.service.EnterTournament(context.Background(), "t1", "0xplayer", now)
	require.Nil(t, err)

	// During the game: still allowed.
	_, err = f.service.EnterTournament(context.Background(), "t1", "0xplayer", now.Add(3*time.Hour))
	require.Nil(t, err)

	// After the game: closed.
	_, err = f.service.EnterTournament(context.Background(), "t1", "0xplayer", now.Add(7*time.Hour))
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeRegistrationClosed, err.Code)
}

func TestEnterTournamentNotFound(t *testing.T) {
	f := newFixture(config.DefaultRules())

	_, err := f.service.EnterTournament(context.Background(), "missing", "0xplayer", time.Now().UTC())
	require.NotNil(t, err)
	assert.Equal(t, apperrors.CodeNotFound, err.Code)
}

func TestGetTournamentView(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rules := config.DefaultRules()
	rules.SettlementContract = "0xSettlement"
	f := newFixture(rules)

	f.tournaments.byId["t1"] = &models.Tournament{
		TournamentId: "t1",
		Schedule:     validSchedule(now),
		EntryCount:   5,
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "10",
			Distribution:   []int{70, 30},
		},
		Status: models.Open,
	}
	f.prizes.prizes = []models.SponsoredPrize{
		{TournamentId: "t1", SponsorId: 7, Position: 1, TokenAddress: "0xNFT", TokenId: "42"},
	}

	view, err := f.service.GetTournamentView(context.Background(), "t1", now.Add(3*time.Hour))
	require.Nil(t, err)

	assert.Equal(t, "Live", view.Phase)
	assert.Equal(t, "0xSettlement", view.SettlementContract)
	require.NotNil(t, view.Prizes)

	// Two fee positions plus one sponsored NFT, nothing claimed yet.
	assert.Len(t, view.Claimable, 3)

	// Pool of 50 split 70/30 lands on positions 1 and 2; the NFT also
	// sits on position 1.
	assert.Len(t, view.Prizes.ByPosition[1], 2)
	assert.Len(t, view.Prizes.ByPosition[2], 1)
}

func TestGetClaimableSharesFiltersLedger(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(config.DefaultRules())

	f.tournaments.byId["t1"] = &models.Tournament{
		TournamentId: "t1",
		Schedule:     validSchedule(now),
		EntryCount:   2,
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "10",
			Distribution:   []int{70, 30},
		},
		Status: models.Open,
	}
	f.claims.records = []models.ClaimRecord{
		{TournamentId: "t1", Role: `{"position":{"n":1}}`, Claimed: true},
	}

	claimable, err := f.service.GetClaimableShares(context.Background(), "t1", now)
	require.Nil(t, err)

	require.Len(t, claimable, 1)
	assert.Equal(t, 2, claimable[0].Share.Role.Position)
}

func TestGetClaimableSharesFailsOpenOnLedgerError(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(config.DefaultRules())

	f.tournaments.byId["t1"] = &models.Tournament{
		TournamentId: "t1",
		Schedule:     validSchedule(now),
		EntryCount:   2,
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "10",
			Distribution:   []int{70, 30},
		},
		Status: models.Open,
	}
	f.claims.err = errors.New("ledger unreachable")

	claimable, err := f.service.GetClaimableShares(context.Background(), "t1", now)
	require.Nil(t, err)

	// Every share stays visible when the ledger cannot be read.
	assert.Len(t, claimable, 2)
}

func TestGetTournamentViewToleratesPrizeRepoError(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(config.DefaultRules())

	f.tournaments.byId["t1"] = &models.Tournament{
		TournamentId: "t1",
		Schedule:     validSchedule(now),
		EntryCount:   1,
		EntryFee: &models.EntryFee{
			TokenAddress:   "0xToken",
			AmountPerEntry: "10",
			Distribution:   []int{100},
		},
		Status: models.Open,
	}
	f.prizes.err = errors.New("index lagging")

	view, err := f.service.GetTournamentView(context.Background(), "t1", now)
	require.Nil(t, err)

	// Fee shares still render without the sponsored prizes.
	assert.Len(t, view.Claimable, 1)
}

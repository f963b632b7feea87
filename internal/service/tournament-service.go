package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/podiumlabs/podium/config"
	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/internal/claims"
	"github.com/podiumlabs/podium/internal/distribution"
	tournamenterrors "github.com/podiumlabs/podium/internal/errors"
	"github.com/podiumlabs/podium/internal/events/publisher"
	"github.com/podiumlabs/podium/internal/phase"
	"github.com/podiumlabs/podium/internal/prize"
	"github.com/podiumlabs/podium/internal/repository"
	"github.com/podiumlabs/podium/internal/timeline"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, *apperrors.AppError)
	ListTournaments(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, *apperrors.AppError)
	GetTournamentView(ctx context.Context, tournamentId string, now time.Time) (*TournamentView, *apperrors.AppError)
	GetClaimableShares(ctx context.Context, tournamentId string, now time.Time) ([]claims.Claimable, *apperrors.AppError)
	EnterTournament(ctx context.Context, tournamentId, entrantAddress string, now time.Time) (*models.Tournament, *apperrors.AppError)
	PreviewTimeline(input TimelinePreviewInput, now time.Time) (*TimelinePreview, *apperrors.AppError)
}

type CreateTournamentInput struct {
	Name               string           `json:"name"`
	GameId             string           `json:"gameId"`
	CreatorAddress     string           `json:"creatorAddress"`
	GameCreatorAddress string           `json:"gameCreatorAddress"`
	Schedule           models.Schedule  `json:"schedule"`
	EntryFee           *models.EntryFee `json:"entryFee,omitempty"`

	// PayoutPositions + CurveWeight generate the fee distribution when
	// the form's steepness slider is used instead of explicit
	// percentages; ignored when EntryFee.Distribution is set.
	PayoutPositions int     `json:"payoutPositions,omitempty"`
	CurveWeight     float64 `json:"curveWeight,omitempty"`
}

// TournamentView is everything a tournament page renders: the stored
// record, the phase derived for "now", the aggregated prize pool and
// the shares still open for claiming. It is recomputed from inputs on
// every call; nothing in it is cached or persisted.
type TournamentView struct {
	Tournament *models.Tournament `json:"tournament"`
	Phase      string             `json:"phase"`
	Prizes     *prize.Summary     `json:"prizes"`
	Claimable  []claims.Claimable `json:"claimable"`

	// SettlementContract is where the claim ids in Claimable are
	// submitted on-chain.
	SettlementContract string `json:"settlementContract,omitempty"`
}

type tournamentService struct {
	tournamentRepo repository.TournamentRepository
	prizeRepo      repository.PrizeRepository
	claimRepo      repository.ClaimLedgerRepository
	tokenRepo      repository.TokenRepository
	prices         prize.PriceSource
	reconciler     *claims.Reconciler
	eventPublisher *publisher.EventPublisher
	rules          config.RulesConfig
	logger         *logger.Logger
}

func NewTournamentService(
	tournamentRepo repository.TournamentRepository,
	prizeRepo repository.PrizeRepository,
	claimRepo repository.ClaimLedgerRepository,
	tokenRepo repository.TokenRepository,
	prices prize.PriceSource,
	eventPublisher *publisher.EventPublisher,
	rules config.RulesConfig,
	logger *logger.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		prizeRepo:      prizeRepo,
		claimRepo:      claimRepo,
		tokenRepo:      tokenRepo,
		prices:         prices,
		reconciler:     claims.NewReconciler(logger),
		eventPublisher: eventPublisher,
		rules:          rules,
		logger:         logger,
	}
}

func (s *tournamentService) CreateTournament(
	ctx context.Context,
	input CreateTournamentInput,
) (*models.Tournament, *apperrors.AppError) {
	now := time.Now().UTC()

	draft := timeline.FromSchedule(now, s.rules, input.Schedule)
	if err := draft.Validate(); err != nil {
		return nil, tournamenterrors.ScheduleInvalidError(err)
	}

	if fee := input.EntryFee; fee != nil && len(fee.Distribution) == 0 && input.PayoutPositions > 0 {
		weight := input.CurveWeight
		if weight > s.rules.MaxCurveWeight {
			weight = s.rules.MaxCurveWeight
		}
		fee.Distribution = distribution.Curve(input.PayoutPositions, weight, fee.ReservedPct())
	}

	if err := s.validateEntryFee(input.EntryFee); err != nil {
		return nil, err
	}
	if err := s.validateGame(input.GameId); err != nil {
		return nil, err
	}

	tournament := &models.Tournament{
		TournamentId:       uuid.New().String(),
		Name:               input.Name,
		GameId:             input.GameId,
		CreatorAddress:     input.CreatorAddress,
		GameCreatorAddress: input.GameCreatorAddress,
		Schedule:           draft.Schedule(),
		EntryFee:           input.EntryFee,
		Status:             models.Open,
	}

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to persist tournament")
	}

	if err := s.eventPublisher.PublishTournamentCreated(
		ctx,
		tournament.TournamentId,
		tournament.Name,
		tournament.CreatorAddress,
		tournament.Schedule.Game.Start,
	); err != nil {
		s.logger.Warn("tournament created but event publish failed",
			"tournamentId", tournament.TournamentId,
			"error", err,
		)
	}

	return tournament, nil
}

func (s *tournamentService) ListTournaments(
	ctx context.Context,
	status models.TournamentStatus,
) ([]models.Tournament, *apperrors.AppError) {
	tournaments, err := s.tournamentRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to list tournaments")
	}
	return tournaments, nil
}

func (s *tournamentService) GetTournamentView(
	ctx context.Context,
	tournamentId string,
	now time.Time,
) (*TournamentView, *apperrors.AppError) {
	tournament, err := s.getTournament(ctx, tournamentId)
	if err != nil {
		return nil, err
	}

	shares := s.deriveShares(ctx, tournament)

	records := make([]prize.Record, 0, len(shares))
	for _, share := range shares {
		records = append(records, prize.RecordFromShare(share))
	}

	summary := prize.Aggregate(records, s.lookupTokens(ctx, records), s.prices)

	return &TournamentView{
		Tournament:         tournament,
		Phase:              phase.Resolve(now, tournament.Schedule).String(),
		Prizes:             summary,
		Claimable:          s.reconciler.Unclaimed(shares, s.loadLedger(ctx, tournamentId)),
		SettlementContract: s.rules.SettlementContract,
	}, nil
}

func (s *tournamentService) GetClaimableShares(
	ctx context.Context,
	tournamentId string,
	now time.Time,
) ([]claims.Claimable, *apperrors.AppError) {
	tournament, err := s.getTournament(ctx, tournamentId)
	if err != nil {
		return nil, err
	}

	shares := s.deriveShares(ctx, tournament)
	return s.reconciler.Unclaimed(shares, s.loadLedger(ctx, tournamentId)), nil
}

func (s *tournamentService) EnterTournament(
	ctx context.Context,
	tournamentId, entrantAddress string,
	now time.Time,
) (*models.Tournament, *apperrors.AppError) {
	tournament, err := s.getTournament(ctx, tournamentId)
	if err != nil {
		return nil, err
	}

	current := phase.Resolve(now, tournament.Schedule)
	if !entryAllowed(current, tournament.Schedule) {
		return nil, tournamenterrors.RegistrationClosedError(current.String())
	}

	updated, repoErr := s.tournamentRepo.IncrementEntryCount(ctx, tournamentId)
	if repoErr != nil {
		return nil, apperrors.Wrap(repoErr, apperrors.CodeDatabaseError, "failed to record entry")
	}

	if err := s.eventPublisher.PublishTournamentEntered(ctx, tournamentId, entrantAddress, updated.EntryCount); err != nil {
		s.logger.Warn("entry recorded but event publish failed",
			"tournamentId", tournamentId,
			"error", err,
		)
	}

	return updated, nil
}

// Private methods

func (s *tournamentService) getTournament(ctx context.Context, tournamentId string) (*models.Tournament, *apperrors.AppError) {
	tournament, err := s.tournamentRepo.GetById(ctx, tournamentId)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			return nil, appErr
		}
		return nil, apperrors.Wrap(err, apperrors.CodeDatabaseError, "failed to load tournament")
	}
	return tournament, nil
}

// deriveShares recomputes the full prize share list: the entry-fee pool
// split over the current entry count, plus every sponsored prize.
// Collaborator failures degrade to a partial list with a warning; a
// tournament page with a lagging sponsor index still renders.
func (s *tournamentService) deriveShares(ctx context.Context, tournament *models.Tournament) []prize.Share {
	shares := distribution.SplitEntryFees(tournament.EntryFee, tournament.EntryCount)

	sponsored, err := s.prizeRepo.ListSponsoredPrizes(ctx, tournament.TournamentId)
	if err != nil {
		s.logger.Warn("sponsored prizes unavailable, rendering fee shares only",
			"tournamentId", tournament.TournamentId,
			"error", err,
		)
		return shares
	}

	for i := range sponsored {
		if share, ok := prize.FromSponsored(&sponsored[i]); ok {
			shares = append(shares, share)
		}
	}

	return shares
}

// loadLedger fetches the claim ledger mirror. Failing to read it means
// no share can be proven claimed, so reconciliation fails open with an
// empty ledger rather than hiding entitlements.
func (s *tournamentService) loadLedger(ctx context.Context, tournamentId string) []models.ClaimRecord {
	ledger, err := s.claimRepo.ListClaims(ctx, tournamentId)
	if err != nil {
		s.logger.Warn("claim ledger unavailable, treating all shares as unclaimed",
			"tournamentId", tournamentId,
			"error", err,
		)
		return nil
	}
	return ledger
}

func (s *tournamentService) lookupTokens(ctx context.Context, records []prize.Record) repository.TokenDirectory {
	seen := make(map[string]struct{}, len(records))
	addresses := make([]string, 0, len(records))
	for _, r := range records {
		lower := strings.ToLower(r.TokenAddress)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		addresses = append(addresses, lower)
	}

	directory, err := s.tokenRepo.GetTokens(ctx, addresses)
	if err != nil {
		s.logger.Warn("token metadata unavailable, valuations degrade to unknown", "error", err)
		return nil
	}
	return directory
}

func (s *tournamentService) validateEntryFee(fee *models.EntryFee) *apperrors.AppError {
	if fee == nil {
		return nil
	}
	if err := distribution.ValidateEntryFee(fee); err != nil {
		return tournamenterrors.EntryFeeInvalidError(err)
	}
	if len(s.rules.TokenWhitelist) > 0 && !containsFold(s.rules.TokenWhitelist, fee.TokenAddress) {
		return tournamenterrors.TokenNotWhitelistedError(fee.TokenAddress)
	}
	return nil
}

func (s *tournamentService) validateGame(gameId string) *apperrors.AppError {
	if gameId == "" || len(s.rules.GameWhitelist) == 0 {
		return nil
	}
	for _, id := range s.rules.GameWhitelist {
		if id == gameId {
			return nil
		}
	}
	return tournamenterrors.GameNotWhitelistedError(gameId)
}

// entryAllowed gates entries on the lifecycle phase. With a fixed
// registration window entries land only inside it; with open
// registration anyone may enter until the game window closes.
func entryAllowed(current phase.Phase, schedule models.Schedule) bool {
	if schedule.Registration != nil {
		return current == phase.Registration
	}
	return current == phase.Upcoming || current == phase.Live
}

func containsFold(list []string, needle string) bool {
	for _, item := range list {
		if strings.EqualFold(item, needle) {
			return true
		}
	}
	return false
}

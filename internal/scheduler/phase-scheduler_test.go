package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/podiumlabs/podium/errors"
	"github.com/podiumlabs/podium/internal/events/publisher"
	"github.com/podiumlabs/podium/internal/phase"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

type fakeTournamentRepo struct {
	listed  []models.Tournament
	listErr error
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	return nil
}

func (f *fakeTournamentRepo) GetById(ctx context.Context, id string) (*models.Tournament, error) {
	return nil, apperrors.New(apperrors.CodeNotFound, "tournament not found")
}

func (f *fakeTournamentRepo) ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error) {
	return f.listed, f.listErr
}

func (f *fakeTournamentRepo) IncrementEntryCount(ctx context.Context, id string) (*models.Tournament, error) {
	return nil, apperrors.New(apperrors.CodeNotFound, "tournament not found")
}

func testTournament(now time.Time) models.Tournament {
	return models.Tournament{
		TournamentId: "t1",
		Schedule: models.Schedule{
			Game: models.Window{
				Start: now.Add(1 * time.Hour),
				End:   now.Add(2 * time.Hour),
			},
			SubmissionSeconds: int64(24 * time.Hour / time.Second),
		},
		Status: models.Open,
	}
}

func newTestScheduler(repo *fakeTournamentRepo) *PhaseScheduler {
	log := logger.Development("test")
	// Publisher without a connection; publishes fail, which is the
	// re-announce path under test.
	return NewPhaseScheduler(repo, publisher.NewEventPublisher(nil, log), time.Minute, log)
}

func TestTickSeedsWithoutAnnouncing(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeTournamentRepo{listed: []models.Tournament{testTournament(now)}}
	s := newTestScheduler(repo)

	s.Tick(context.Background(), now)

	require.Contains(t, s.lastPhase, "t1")
	assert.Equal(t, phase.Upcoming, s.lastPhase["t1"])
}

func TestTickRetriesFailedAnnouncement(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeTournamentRepo{listed: []models.Tournament{testTournament(now)}}
	s := newTestScheduler(repo)

	s.Tick(context.Background(), now)
	require.Equal(t, phase.Upcoming, s.lastPhase["t1"])

	// The game is live now, but the publish fails, so the cached phase
	// rolls back and the transition stays pending.
	s.Tick(context.Background(), now.Add(90*time.Minute))
	assert.Equal(t, phase.Upcoming, s.lastPhase["t1"])
}

func TestTickForgetsClosedTournaments(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeTournamentRepo{listed: []models.Tournament{testTournament(now)}}
	s := newTestScheduler(repo)

	s.Tick(context.Background(), now)
	require.Contains(t, s.lastPhase, "t1")

	repo.listed = nil
	s.Tick(context.Background(), now)
	assert.NotContains(t, s.lastPhase, "t1")
}

func TestTickSurvivesListError(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeTournamentRepo{listErr: errors.New("dynamo throttled")}
	s := newTestScheduler(repo)

	s.Tick(context.Background(), now)
	assert.Empty(t, s.lastPhase)
}

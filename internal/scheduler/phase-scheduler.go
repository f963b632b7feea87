package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/podiumlabs/podium/internal/events/publisher"
	"github.com/podiumlabs/podium/internal/phase"
	"github.com/podiumlabs/podium/internal/repository"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

// PhaseScheduler polls open tournaments and announces phase transitions.
// Phases are derived from the schedule on every tick, so a missed tick
// only delays the announcement, it never loses a transition.
type PhaseScheduler struct {
	tournamentRepo repository.TournamentRepository
	eventPublisher *publisher.EventPublisher
	logger         *logger.Logger
	interval       time.Duration

	mu        sync.Mutex
	lastPhase map[string]phase.Phase

	stopChan chan struct{}
	doneChan chan struct{}
}

func NewPhaseScheduler(
	tournamentRepo repository.TournamentRepository,
	eventPublisher *publisher.EventPublisher,
	interval time.Duration,
	logger *logger.Logger,
) *PhaseScheduler {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return &PhaseScheduler{
		tournamentRepo: tournamentRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
		interval:       interval,
		lastPhase:      make(map[string]phase.Phase),
		stopChan:       make(chan struct{}),
		doneChan:       make(chan struct{}),
	}
}

func (s *PhaseScheduler) Start(ctx context.Context) {
	go s.run(ctx)
	s.logger.Info(fmt.Sprintf("Phase scheduler started with interval %s", s.interval))
}

func (s *PhaseScheduler) Stop() {
	close(s.stopChan)
	<-s.doneChan
	s.logger.Info("Phase scheduler stopped")
}

func (s *PhaseScheduler) run(ctx context.Context) {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx, time.Now().UTC())
		}
	}
}

// Tick resolves the phase of every open tournament and publishes an event
// for each one that moved since the previous tick.
func (s *PhaseScheduler) Tick(ctx context.Context, now time.Time) {
	tournaments, err := s.tournamentRepo.ListByStatus(ctx, models.Open)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Phase scheduler failed to list tournaments: %v", err))
		return
	}

	seen := make(map[string]struct{}, len(tournaments))
	for i := range tournaments {
		t := &tournaments[i]
		seen[t.TournamentId] = struct{}{}
		s.observe(ctx, t, now)
	}

	s.forget(seen)
}

func (s *PhaseScheduler) observe(ctx context.Context, t *models.Tournament, now time.Time) {
	current := phase.Resolve(now, t.Schedule)

	s.mu.Lock()
	previous, known := s.lastPhase[t.TournamentId]
	s.lastPhase[t.TournamentId] = current
	s.mu.Unlock()

	if !known || previous == current {
		return
	}

	if err := s.eventPublisher.PublishPhaseChanged(ctx, t.TournamentId, previous.String(), current.String()); err != nil {
		// Drop the cached phase so the transition is re-announced next tick.
		s.mu.Lock()
		s.lastPhase[t.TournamentId] = previous
		s.mu.Unlock()
	}
}

// forget drops cache entries for tournaments no longer listed as open.
func (s *PhaseScheduler) forget(seen map[string]struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.lastPhase {
		if _, ok := seen[id]; !ok {
			delete(s.lastPhase, id)
		}
	}
}

package publisher

import (
	"context"
	"fmt"
	"time"

	commonevents "github.com/podiumlabs/podium/events"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/natsjetstream"
)

type EventPublisher struct {
	publisher *natsjetstream.Publisher
	logger    *logger.Logger
}

func NewEventPublisher(client *natsjetstream.Client, logger *logger.Logger) *EventPublisher {
	return &EventPublisher{
		publisher: natsjetstream.NewPublisher(client),
		logger:    logger,
	}
}

func (p *EventPublisher) PublishTournamentCreated(
	ctx context.Context,
	tournamentId, name, creatorAddress string,
	gameStartsAt time.Time,
) error {
	event := &commonevents.TournamentCreatedEvent{
		TournamentId:   tournamentId,
		Name:           name,
		CreatorAddress: creatorAddress,
		GameStartsAt:   gameStartsAt.Unix(),
		Timestamp:      time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.TournamentCreated, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish tournament created event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Published tournament created event: %s", tournamentId))
	return nil
}

func (p *EventPublisher) PublishTournamentEntered(
	ctx context.Context,
	tournamentId, entrantAddress string,
	entryCount int,
) error {
	event := &commonevents.TournamentEnteredEvent{
		TournamentId:   tournamentId,
		EntrantAddress: entrantAddress,
		EntryCount:     entryCount,
		Timestamp:      time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.TournamentEntered, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish tournament entered event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Published tournament entered event for entrant: %s", entrantAddress))
	return nil
}

func (p *EventPublisher) PublishPhaseChanged(
	ctx context.Context,
	tournamentId, from, to string,
) error {
	event := &commonevents.TournamentPhaseChangedEvent{
		TournamentId: tournamentId,
		From:         from,
		To:           to,
		Timestamp:    time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.TournamentPhaseChanged, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish phase changed event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Info(fmt.Sprintf("Published phase change %s -> %s for tournament %s", from, to, tournamentId))
	return nil
}

func (p *EventPublisher) PublishClaimSeen(
	ctx context.Context,
	tournamentId string,
	records int,
) error {
	event := &commonevents.TournamentClaimSeenEvent{
		TournamentId: tournamentId,
		Records:      records,
		Timestamp:    time.Now().Unix(),
	}

	if err := p.publisher.PublishJSON(ctx, commonevents.TournamentClaimSeen, event); err != nil {
		p.logger.Error(fmt.Sprintf("Failed to publish claim observed event: %v", err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

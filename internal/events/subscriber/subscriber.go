package subscriber

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"

	commonevents "github.com/podiumlabs/podium/events"
	"github.com/podiumlabs/podium/internal/events/publisher"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/natsjetstream"
)

// EventSubscriber listens for the settlement indexer's claim batches
// and re-announces them per tournament on the tournament stream, so UI
// sessions watching a single tournament know to refetch the ledger.
// Nothing is cached here: claimable reads always hit the ledger fresh.
type EventSubscriber struct {
	natsClient     *natsjetstream.Client
	subscriber     *natsjetstream.Subscriber
	eventPublisher *publisher.EventPublisher
	logger         *logger.Logger
}

func NewEventSubscriber(
	natsClient *natsjetstream.Client,
	eventPublisher *publisher.EventPublisher,
	logger *logger.Logger,
) *EventSubscriber {
	return &EventSubscriber{
		natsClient:     natsClient,
		subscriber:     natsjetstream.NewSubscriber(natsClient),
		eventPublisher: eventPublisher,
		logger:         logger.With("component", "event-subscriber"),
	}
}

func (s *EventSubscriber) Start(ctx context.Context) error {
	s.logger.Info("Starting event subscriptions")

	if err := s.subscribeToClaimEvents(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to claim events: %w", err)
	}

	s.logger.Info("All event subscriptions started")
	return nil
}

func (s *EventSubscriber) subscribeToClaimEvents(ctx context.Context) error {
	cfg := natsjetstream.ConsumerConfig{
		StreamName:   commonevents.ClaimEventsStream,
		ConsumerName: "podium-claim-consumer",
		Durable:      "podium-claims",
		AckPolicy:    "explicit",
	}

	s.logger.Info("Subscribing to claim events",
		"stream", cfg.StreamName,
		"consumer", cfg.ConsumerName,
	)

	return s.subscriber.Subscribe(ctx, cfg, s.handleClaimEvents)
}

func (s *EventSubscriber) handleClaimEvents(ctx context.Context, msg jetstream.Msg) error {
	subject := msg.Subject()

	s.logger.Debug("Received claim event", "subject", subject)

	switch subject {
	case commonevents.ClaimsIndexed:
		return s.handleClaimsIndexed(ctx, msg)
	default:
		s.logger.Warn("Unknown claim event subject", "subject", subject)
		return nil
	}
}

func (s *EventSubscriber) handleClaimsIndexed(ctx context.Context, msg jetstream.Msg) error {
	var event commonevents.ClaimsIndexedEvent
	if err := natsjetstream.UnmarshalJSON(msg, &event); err != nil {
		s.logger.Error("Failed to unmarshal claims indexed event", "error", err)
		return err
	}

	if event.TournamentId == "" {
		s.logger.Warn("Claims indexed event without tournament id")
		return nil
	}

	s.logger.Info("Claim ledger grew",
		"tournamentId", event.TournamentId,
		"records", event.Records,
	)

	return s.eventPublisher.PublishClaimSeen(ctx, event.TournamentId, event.Records)
}

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/podiumlabs/podium/cache"
	"github.com/podiumlabs/podium/config"
	"github.com/podiumlabs/podium/database"
	apperrors "github.com/podiumlabs/podium/errors"
	commonevents "github.com/podiumlabs/podium/events"
	"github.com/podiumlabs/podium/internal/events/publisher"
	"github.com/podiumlabs/podium/internal/events/subscriber"
	"github.com/podiumlabs/podium/internal/handler"
	"github.com/podiumlabs/podium/internal/pricing"
	"github.com/podiumlabs/podium/internal/repository"
	"github.com/podiumlabs/podium/internal/scheduler"
	"github.com/podiumlabs/podium/internal/service"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/natsjetstream"
)

type App struct {
	cfg               *config.Config
	httpServer        *fiber.App
	db                *database.DynamoDBClient
	redis             *cache.RedisClient
	natsClient        *natsjetstream.Client
	logger            *logger.Logger
	tournamentService service.TournamentService
	scheduler         *scheduler.PhaseScheduler
	eventPublisher    *publisher.EventPublisher
	eventSubscriber   *subscriber.EventSubscriber

	cleanup []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, *apperrors.AppError) {
	app := &App{
		cfg:     cfg,
		cleanup: make([]func() error, 0),
	}

	if err := app.initLogger(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init logger")
	}

	if err := app.initDatabase(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init database")
	}

	if err := app.initRedis(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init redis client")
	}

	if err := app.initNATS(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init nats client")
	}

	if err := app.initMessagePublisher(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init messaging publisher")
	}

	if err := app.initHTTP(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init http server")
	}

	if err := app.initMessageSubscriber(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init messaging subscriber")
	}

	if err := app.initScheduler(ctx); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to init scheduler")
	}

	return app, nil
}

func (a *App) initLogger() *apperrors.AppError {
	a.logger = logger.New(logger.Config{
		Level:       a.cfg.Server.LogLevel,
		Format:      "json",
		ServiceName: "podium",
	})
	return nil
}

func (a *App) initDatabase() *apperrors.AppError {
	dynamoClient, err := database.NewDynamoDBClient(a.cfg)
	if err != nil {
		a.logger.Fatal("Failed to create DynamoDB client: %v", err)
	}

	a.db = dynamoClient
	return nil
}

func (a *App) initRedis() *apperrors.AppError {
	redisClient, err := cache.NewRedisClient(a.cfg.Redis)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeRedisOperationError, "failed to connect to redis")
	}

	a.redis = redisClient
	a.cleanup = append(a.cleanup, redisClient.Close)

	return nil
}

func (a *App) initNATS(ctx context.Context) *apperrors.AppError {
	natsClient, err := natsjetstream.NewClient(&natsjetstream.Config{
		URL:           a.cfg.NATS.URL,
		MaxReconnect:  a.cfg.NATS.MaxReconnect,
		ReconnectWait: time.Duration(a.cfg.NATS.ReconnectWaitSeconds) * time.Second,
		Timeout:       time.Duration(a.cfg.NATS.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	a.natsClient = natsClient

	streams := []jetstream.StreamConfig{
		{
			Name:     commonevents.TournamentEventsStream,
			Subjects: []string{commonevents.TournamentEventsWildcard},
		},
		{
			Name:     commonevents.ClaimEventsStream,
			Subjects: []string{commonevents.ClaimEventsWildcard},
		},
	}

	for _, stream := range streams {
		if _, err := a.natsClient.JetStream().CreateOrUpdateStream(ctx, stream); err != nil {
			a.logger.Error("Failed to create stream",
				"error", err,
				"stream", stream.Name,
			)
			return apperrors.Wrap(err, apperrors.CodeInternalServer, "failed to create jetstream event stream")
		}
		a.logger.Info("Stream ready", "stream", stream.Name)
	}

	a.cleanup = append(a.cleanup, natsClient.Close)

	return nil
}

func (a *App) initMessagePublisher(ctx context.Context) *apperrors.AppError {
	a.eventPublisher = publisher.NewEventPublisher(a.natsClient, a.logger)
	return nil
}

func (a *App) initMessageSubscriber(ctx context.Context) *apperrors.AppError {
	a.eventSubscriber = subscriber.NewEventSubscriber(a.natsClient, a.eventPublisher, a.logger)
	if err := a.eventSubscriber.Start(ctx); err != nil {
		return apperrors.Wrap(err, apperrors.CodeEventSubscribeError, "failed to start event subscriber")
	}
	return nil
}

func (a *App) initHTTP() *apperrors.AppError {
	tournamentRepo := repository.NewTournamentRepository(a.db)
	prizeRepo := repository.NewPrizeRepository(a.db)
	claimRepo := repository.NewClaimLedgerRepository(a.db)
	tokenRepo := repository.NewTokenRepository(a.db)
	priceSource := pricing.NewRedisPriceSource(a.redis, a.logger)

	a.tournamentService = service.NewTournamentService(
		tournamentRepo,
		prizeRepo,
		claimRepo,
		tokenRepo,
		priceSource,
		a.eventPublisher,
		a.cfg.Rules,
		a.logger,
	)

	tournamentHandler := handler.NewTournamentHandler(a.tournamentService, a.logger)

	a.httpServer = fiber.New(fiber.Config{
		AppName:               "podium",
		DisableStartupMessage: true,
	})

	handler.RegisterRoutes(a.httpServer, tournamentHandler)

	return nil
}

func (a *App) initScheduler(ctx context.Context) *apperrors.AppError {
	tournamentRepo := repository.NewTournamentRepository(a.db)
	interval := time.Duration(a.cfg.Server.PhaseTickSeconds) * time.Second

	a.scheduler = scheduler.NewPhaseScheduler(tournamentRepo, a.eventPublisher, interval, a.logger)
	a.scheduler.Start(ctx)

	return nil
}

func (a *App) Start() *apperrors.AppError {
	go func() {
		addr := fmt.Sprintf(":%d", a.cfg.Server.HTTPPort)
		a.logger.Info(fmt.Sprintf("HTTP server listening on %s", addr))
		if err := a.httpServer.Listen(addr); err != nil {
			a.logger.Fatal("Failed to serve: %v", err)
		}
	}()

	a.logger.Info("Application started successfully")

	return nil
}

func (a *App) Stop() *apperrors.AppError {
	a.logger.Info("Stopping application...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.httpServer != nil {
		timeout := time.Duration(a.cfg.Server.ShutdownTimeoutMs) * time.Millisecond
		if err := a.httpServer.ShutdownWithTimeout(timeout); err != nil {
			a.logger.Error(fmt.Sprintf("HTTP shutdown error: %v", err))
		}
	}

	for _, cleanup := range a.cleanup {
		if err := cleanup(); err != nil {
			a.logger.Error(fmt.Sprintf("Cleanup error: %v", err))
		}
	}

	a.logger.Info("Application stopped")
	return nil
}

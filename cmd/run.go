package cmd

import (
	"context"
	"fmt"
	"time"

	"ladder/bot"
	"ladder/config"
	"ladder/database"
	"ladder/events"
	"ladder/infrastructure"
	"ladder/infrastructure/observability"
	"ladder/repository"
	"ladder/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.Info("Starting ladder bot...")

	// Initialize metrics
	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("Database connection established successfully")

	// Initialize event bus
	eventBus := events.NewBus()
	eventBus.SubscribeAll(observability.GetMetrics().HandleEvent)

	// Forward events to NATS when configured
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient, err = connectNATS(ctx, cfg, eventBus)
		if err != nil {
			db.Close()
			return err
		}
	}

	// Initialize unit of work factory and services
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)
	ladderService := service.NewLadderService(uowFactory, cfg)
	log.WithField("threshold", cfg.LadderThreshold).Info("Ladder service initialized")

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:           cfg.DiscordToken,
		GuildID:         cfg.GuildID,
		LadderChannelID: cfg.LadderChannelID,
	}
	discordBot, err := bot.New(botConfig, ladderService, eventBus)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	// Give cleanup operations time to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}

	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Closing database connection...")
	db.Close()

	log.Info("Shutdown completed")
	return nil
}

// connectNATS connects to NATS, makes sure the ladder stream exists and
// starts forwarding bus events to it
func connectNATS(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (*infrastructure.NATSClient, error) {
	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureStream(infrastructure.LadderEventStream, mapper.GetAllSubjects()); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure NATS stream: %w", err)
	}

	infrastructure.NewNATSEventPublisher(client, mapper).Forward(eventBus)
	log.WithField("servers", cfg.NATSServers).Info("Forwarding ladder events to NATS")
	return client, nil
}

// configureLogging applies the configured level and picks JSON output in production
func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"coinbot/application"
	"coinbot/bot"
	"coinbot/bot/middleware"
	"coinbot/config"
	"coinbot/database"
	"coinbot/domain/services"
	"coinbot/events"
	"coinbot/infrastructure"
	"coinbot/infrastructure/observability"
	"coinbot/repository"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context, cfg *config.Config) error {
	if err := configureLogging(cfg); err != nil {
		return err
	}
	log.Info("Starting coinbot...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), cfg.DatabaseMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrationsWithURL(cfg.GetDatabaseURL()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database ready")

	// Initialize event bus
	eventBus := events.NewBus()

	// Initialize metrics
	metrics := observability.NewMetricsProvider(cfg)
	if err := metrics.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics.SubscribeTo(eventBus)

	// Initialize NATS publishing when configured
	var natsClient *infrastructure.NATSClient
	if cfg.NATSURL != "" {
		natsClient, err = startNATSPublisher(ctx, cfg.NATSURL, eventBus, metrics)
		if err != nil {
			return err
		}
	} else {
		log.Info("NATS_URL not set, domain events stay in-process")
	}

	// Initialize unit of work factory and economy
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus, metrics)
	economy := application.NewEconomy(cfg, services.SystemClock{})

	// Initialize rate limiter
	limiter := middleware.NewUserRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst, 10*time.Minute)
	go limiter.Run(ctx)

	// Initialize Discord bot
	log.Info("Initializing Discord bot...")
	botConfig := bot.Config{
		Token:                cfg.DiscordToken,
		GuildID:              cfg.DiscordGuildID,
		Prefix:               cfg.CommandPrefix,
		LeaderboardChannelID: cfg.LeaderboardChannelID,
	}
	discordBot, err := bot.New(botConfig, uowFactory, economy, limiter, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Info("Discord bot initialized successfully")

	// Initialize scheduled jobs
	stopScheduler, err := startScheduler(ctx, cfg, uowFactory, economy, discordBot)
	if err != nil {
		discordBot.Close()
		return err
	}

	// Wait for context cancellation
	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	// Cleanup resources
	log.Info("Shutting down bot...")
	stopScheduler()

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}
	if err := metrics.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

func startNATSPublisher(ctx context.Context, url string, bus *events.Bus, metrics *observability.MetricsProvider) (*infrastructure.NATSClient, error) {
	client := infrastructure.NewNATSClient(url)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	mapper := infrastructure.NewEventSubjectMapper()
	if err := client.EnsureEconomyEventStream(mapper); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}

	infrastructure.NewNATSEventPublisher(client, mapper, metrics).Bridge(bus)
	log.WithField("stream", infrastructure.EconomyEventStream).Info("Publishing domain events to NATS")
	return client, nil
}

func startScheduler(ctx context.Context, cfg *config.Config, uowFactory application.UnitOfWorkFactory, economy *application.Economy, discordBot *bot.Bot) (func(), error) {
	location, err := time.LoadLocation(cfg.SchedulerTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_TIMEZONE %q: %w", cfg.SchedulerTimezone, err)
	}

	schedulerConfig := application.SchedulerConfig{
		Location:         location,
		RemindersEnabled: cfg.StreakRemindersEnabled,
		ReminderLead:     cfg.StreakReminderLead,
	}

	var poster application.LeaderboardPoster
	if cfg.LeaderboardChannelID != "" {
		poster = discordBot.LeaderboardPoster()
		schedulerConfig.LeaderboardSchedule = cfg.LeaderboardSchedule
	}

	scheduler, err := application.NewScheduler(uowFactory, economy, poster, discordBot.StreakReminderSender(), schedulerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return scheduler.Start(ctx), nil
}

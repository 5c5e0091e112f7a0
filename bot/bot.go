package bot

import (
	"fmt"

	"coinbot/application"
	"coinbot/bot/common"
	"coinbot/bot/features/balance"
	"coinbot/bot/features/daily"
	"coinbot/bot/features/leaderboard"
	"coinbot/bot/features/ping"
	"coinbot/bot/features/weekly"
	"coinbot/bot/middleware"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token                string
	GuildID              string
	Prefix               string
	LeaderboardChannelID string
}

// CommandRecorder counts handled commands by outcome
type CommandRecorder interface {
	RecordCommand(command, source, outcome string)
}

// Bot manages the Discord session and all feature modules
type Bot struct {
	// Core components
	config   Config
	session  *discordgo.Session
	limiter  *middleware.UserRateLimiter
	recorder CommandRecorder
	routes   map[string]route

	// Feature modules
	balance     *balance.Feature
	daily       *daily.Feature
	weekly      *weekly.Feature
	leaderboard *leaderboard.Feature
	ping        *ping.Feature
}

// New creates the bot, opens the gateway connection and registers slash commands
func New(config Config, uowFactory application.UnitOfWorkFactory, economy *application.Economy, limiter *middleware.UserRateLimiter, recorder CommandRecorder) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	bot := &Bot{
		config:   config,
		session:  dg,
		limiter:  limiter,
		recorder: recorder,
	}

	// Create feature modules
	bot.balance = balance.New(uowFactory, economy, common.SessionNameResolver(dg))
	bot.daily = daily.New(dg, uowFactory, economy)
	bot.weekly = weekly.New(uowFactory, economy)
	bot.leaderboard = leaderboard.New(dg, uowFactory, economy, config.LeaderboardChannelID)
	bot.ping = ping.New(dg)
	bot.routes = bot.buildRoutes()

	// Register handlers
	dg.AddHandler(bot.handleMessageCreate)
	dg.AddHandler(bot.handleInteractionCreate)
	dg.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.WithField("user", r.User.Username).Info("Connected to Discord")
	})

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

// LeaderboardPoster returns the feature that posts scheduled leaderboards
func (b *Bot) LeaderboardPoster() application.LeaderboardPoster {
	return b.leaderboard
}

// StreakReminderSender returns the feature that DMs streak reminders
func (b *Bot) StreakReminderSender() application.StreakReminderSender {
	return b.daily
}

// Close gracefully shuts down the bot
func (b *Bot) Close() error {
	return b.session.Close()
}

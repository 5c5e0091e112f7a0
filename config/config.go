package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"coinbot/database"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string `envconfig:"DISCORD_TOKEN"`
	DiscordGuildID string `envconfig:"DISCORD_GUILD_ID"` // Registers slash commands to one guild when set
	CommandPrefix  string `envconfig:"COMMAND_PREFIX" default:"pls"`

	// Database configuration
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	DatabaseName     string `envconfig:"DATABASE_NAME"`
	DatabaseMaxConns int32  `envconfig:"DATABASE_MAX_CONNS" default:"10"`

	// Economy configuration
	MaxBankBalance   int64  `envconfig:"MAX_BANK_BALANCE" default:"17373077"`
	DailyBaseReward  int64  `envconfig:"DAILY_BASE_REWARD" default:"100000"`
	DailyStreakBonus int64  `envconfig:"DAILY_STREAK_BONUS" default:"1000"`
	WeeklyReward     int64  `envconfig:"WEEKLY_REWARD" default:"2000000"`
	OwnerDiscordID   int64  `envconfig:"OWNER_DISCORD_ID" default:"807822793327509544"`

	// Rate limiting
	RateLimitPerSecond float64 `envconfig:"RATE_LIMIT_PER_SECOND" default:"1"`
	RateLimitBurst     int     `envconfig:"RATE_LIMIT_BURST" default:"5"`

	// NATS configuration (publishing is disabled when empty)
	NATSURL string `envconfig:"NATS_URL"`

	// OpenTelemetry configuration
	OTelEnabled              bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTelExporterType         string `envconfig:"OTEL_EXPORTER_TYPE" default:"none"` // none, console, otlp
	OTelOTLPEndpoint         string `envconfig:"OTEL_OTLP_ENDPOINT" default:"otel-collector:4317"`
	OTelExportIntervalMillis int    `envconfig:"OTEL_EXPORT_INTERVAL_MS" default:"15000"`
	OTelServiceName          string `envconfig:"OTEL_SERVICE_NAME" default:"coinbot"`

	// Scheduled jobs
	LeaderboardChannelID   string        `envconfig:"LEADERBOARD_CHANNEL_ID"`
	LeaderboardSchedule    string        `envconfig:"LEADERBOARD_SCHEDULE" default:"0 14 * * *"`
	StreakRemindersEnabled bool          `envconfig:"STREAK_REMINDERS_ENABLED" default:"false"`
	StreakReminderLead     time.Duration `envconfig:"STREAK_REMINDER_LEAD" default:"8h"`
	SchedulerTimezone      string        `envconfig:"SCHEDULER_TIMEZONE" default:"UTC"`

	// Environment
	Environment string `envconfig:"ENVIRONMENT" default:"development"` // "development", "production" or "test"
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDatabaseURL reads only the database settings, so migrations can run
// without Discord credentials.
func LoadDatabaseURL() (string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("failed to read .env file: %w", err)
	}

	var db struct {
		URL  string `envconfig:"DATABASE_URL" required:"true"`
		Name string `envconfig:"DATABASE_NAME"`
	}
	if err := envconfig.Process("", &db); err != nil {
		return "", fmt.Errorf("failed to process environment: %w", err)
	}
	return database.ConstructDatabaseURL(db.URL, db.Name), nil
}

// Validate checks required values and economy bounds
func (c *Config) Validate() error {
	if c.Environment != "test" {
		if c.DiscordToken == "" {
			return fmt.Errorf("DISCORD_TOKEN is required")
		}
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}
		if c.DatabaseName != "" && strings.TrimSpace(c.DatabaseName) == "" {
			return fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	if c.MaxBankBalance < 0 {
		return fmt.Errorf("MAX_BANK_BALANCE must not be negative")
	}
	if c.DailyBaseReward < 0 || c.DailyStreakBonus < 0 || c.WeeklyReward < 0 {
		return fmt.Errorf("reward amounts must not be negative")
	}
	if strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("COMMAND_PREFIX cannot be empty")
	}
	if c.RateLimitPerSecond <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND and RATE_LIMIT_BURST must be positive")
	}
	if c.StreakReminderLead <= 0 || c.StreakReminderLead >= 24*time.Hour {
		return fmt.Errorf("STREAK_REMINDER_LEAD must be between 0 and 24h")
	}
	return nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		CommandPrefix:            "pls",
		DatabaseMaxConns:         4,
		MaxBankBalance:           17373077,
		DailyBaseReward:          100000,
		DailyStreakBonus:         1000,
		WeeklyReward:             2000000,
		OwnerDiscordID:           807822793327509544,
		RateLimitPerSecond:       1,
		RateLimitBurst:           5,
		OTelExporterType:         "none",
		OTelExportIntervalMillis: 15000,
		OTelServiceName:          "coinbot-test",
		LeaderboardSchedule:      "0 14 * * *",
		StreakReminderLead:       8 * time.Hour,
		SchedulerTimezone:        "UTC",
		Environment:              "test",
		LogLevel:                 "debug",
		LogFormat:                "text",
	}
}

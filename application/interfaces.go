package application

import (
	"context"
	"time"

	"coinbot/domain/entities"
)

// LeaderboardPoster posts the scheduled leaderboard to Discord
type LeaderboardPoster interface {
	PostLeaderboard(ctx context.Context, entries []*entities.LeaderboardEntry) error
}

// StreakReminderSender warns a user that their daily streak is about to reset
type StreakReminderSender interface {
	SendStreakReminder(ctx context.Context, discordID int64, streak int, expiresAt time.Time) error
}

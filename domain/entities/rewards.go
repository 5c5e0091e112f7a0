package entities

import (
	"time"

	"github.com/google/uuid"
)

// RewardKind distinguishes the periodic claims
type RewardKind string

const (
	RewardKindDaily  RewardKind = "daily"
	RewardKindWeekly RewardKind = "weekly"
)

const (
	// DailyCooldown is the minimum time between daily claims
	DailyCooldown = 24 * time.Hour
	// StreakWindow is how long after the last claim a streak survives
	StreakWindow = 48 * time.Hour
	// WeeklyCooldown is the minimum time between weekly claims
	WeeklyCooldown = 7 * 24 * time.Hour
)

// DailyRewardState is the persisted daily claim tracker for a user
type DailyRewardState struct {
	DiscordID    int64     `db:"discord_id"`
	LastClaimed  time.Time `db:"last_claimed"`
	Streak       int       `db:"streak"`
	TotalClaimed int64     `db:"total_claimed"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// HasClaimed is false until the first claim moves LastClaimed off the epoch
func (s *DailyRewardState) HasClaimed() bool {
	return s.LastClaimed.Unix() > 0
}

// StreakExpiresAt is the moment the next claim would reset the streak
func (s *DailyRewardState) StreakExpiresAt() time.Time {
	return s.LastClaimed.Add(StreakWindow)
}

// WeeklyRewardState is the persisted weekly claim tracker for a user
type WeeklyRewardState struct {
	DiscordID    int64     `db:"discord_id"`
	LastClaimed  time.Time `db:"last_claimed"`
	TotalClaimed int64     `db:"total_claimed"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// DailyRewardResult is returned from a successful daily claim
type DailyRewardResult struct {
	ClaimID     uuid.UUID
	Amount      int64
	Streak      int
	StreakBonus int64
	Total       int64
	IsNewStreak bool
	NewBalance  int64
	ClaimedAt   time.Time
	NextClaimAt time.Time
}

// WeeklyRewardResult is returned from a successful weekly claim
type WeeklyRewardResult struct {
	ClaimID     uuid.UUID
	Amount      int64
	Total       int64
	NewBalance  int64
	LastClaimed time.Time
	NextClaimAt time.Time
}

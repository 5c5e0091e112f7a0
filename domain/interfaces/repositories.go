package interfaces

import (
	"context"
	"time"

	"coinbot/domain/entities"
	"coinbot/events"
)

// LedgerRepository defines data access for wallet and bank balances
type LedgerRepository interface {
	// GetOrCreate returns the user's balances, creating a zero row on first access
	GetOrCreate(ctx context.Context, discordID int64) (*entities.UserBalance, error)

	// GetForUpdate is GetOrCreate plus a row lock held until the transaction ends
	GetForUpdate(ctx context.Context, discordID int64) (*entities.UserBalance, error)

	// AddBalance atomically adds delta to the wallet and returns the new wallet
	AddBalance(ctx context.Context, discordID int64, delta int64) (int64, error)

	// AddBankBalance atomically adds delta to the bank. Positive deltas are
	// clipped so the bank never rises above maxBank.
	AddBankBalance(ctx context.Context, discordID int64, delta int64, maxBank int64) (int64, error)

	// CountRankedAbove counts users ordered before (balance desc, discord id asc)
	CountRankedAbove(ctx context.Context, discordID int64, balance int64) (int64, error)

	// GetTopBalances returns the richest wallets in rank order
	GetTopBalances(ctx context.Context, limit int) ([]*entities.UserBalance, error)
}

// DailyRewardRepository defines data access for daily claim state
type DailyRewardRepository interface {
	// GetForUpdate returns the state locked for the rest of the transaction,
	// creating it with an epoch last claim if missing
	GetForUpdate(ctx context.Context, discordID int64) (*entities.DailyRewardState, error)

	// Save persists last claim, streak and total
	Save(ctx context.Context, state *entities.DailyRewardState) error

	// GetStreaksExpiringBetween returns live streaks last claimed in [from, to)
	GetStreaksExpiringBetween(ctx context.Context, from, to time.Time) ([]*entities.DailyRewardState, error)
}

// WeeklyRewardRepository defines data access for weekly claim state
type WeeklyRewardRepository interface {
	GetForUpdate(ctx context.Context, discordID int64) (*entities.WeeklyRewardState, error)
	Save(ctx context.Context, state *entities.WeeklyRewardState) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByUser returns the newest entries for a user first
	GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// Clock supplies the current time to the reward trackers
type Clock interface {
	Now() time.Time
}

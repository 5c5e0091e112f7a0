package interfaces

import (
	"context"
	"time"

	"coinbot/domain/entities"

	"github.com/google/uuid"
)

// LedgerService defines wallet and bank operations
type LedgerService interface {
	// GetBalance returns wallet, bank, cap and global rank
	GetBalance(ctx context.Context, discordID int64) (*entities.BalanceInfo, error)

	// AddBalance adds delta to the wallet, records history and returns the new wallet
	AddBalance(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, metadata map[string]any) (int64, error)

	// CreditReward is AddBalance for a reward claim, recording the claim id
	CreditReward(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, claimID uuid.UUID, metadata map[string]any) (int64, error)

	// AddBankBalance adds delta to the bank, clipped to the configured cap
	AddBankBalance(ctx context.Context, discordID int64, delta int64) (int64, error)

	// Deposit moves amount from wallet to bank, clipped to the room left in the bank
	Deposit(ctx context.Context, discordID int64, amount int64) (*entities.TransferResult, error)

	// DepositAll deposits the whole wallet
	DepositAll(ctx context.Context, discordID int64) (*entities.TransferResult, error)

	// Withdraw moves amount from bank to wallet
	Withdraw(ctx context.Context, discordID int64, amount int64) (*entities.TransferResult, error)

	// WithdrawAll withdraws the whole bank
	WithdrawAll(ctx context.Context, discordID int64) (*entities.TransferResult, error)

	// GetLeaderboard returns the top wallets in rank order
	GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error)
}

// DailyRewardService defines the daily claim
type DailyRewardService interface {
	Claim(ctx context.Context, discordID int64) (*entities.DailyRewardResult, error)

	// GetExpiringStreaks returns streaks that will reset within the next hour
	// after the given lead time
	GetExpiringStreaks(ctx context.Context, lead time.Duration) ([]*entities.DailyRewardState, error)
}

// WeeklyRewardService defines the weekly claim
type WeeklyRewardService interface {
	Claim(ctx context.Context, discordID int64) (*entities.WeeklyRewardResult, error)
}

package testutil

import (
	"context"
	"testing"
	"time"

	"coinbot/database"
	"coinbot/domain/entities"

	"github.com/stretchr/testify/require"
)

// SeedBalance inserts or overwrites a user's wallet and bank
func SeedBalance(t *testing.T, db *database.DB, discordID, balance, bank int64) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO user_balances (discord_id, balance, bank_balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO UPDATE SET balance = EXCLUDED.balance, bank_balance = EXCLUDED.bank_balance
	`, discordID, balance, bank)
	require.NoError(t, err)
}

// SeedDailyClaim sets a user's daily state as if they last claimed at lastClaimed
func SeedDailyClaim(t *testing.T, db *database.DB, discordID int64, lastClaimed time.Time, streak int) {
	t.Helper()
	_, err := db.Exec(context.Background(), `
		INSERT INTO daily_rewards (discord_id, last_claimed, streak)
		VALUES ($1, $2, $3)
		ON CONFLICT (discord_id) DO UPDATE SET last_claimed = EXCLUDED.last_claimed, streak = EXCLUDED.streak
	`, discordID, lastClaimed, streak)
	require.NoError(t, err)
}

// GetBalances reads wallet and bank directly
func GetBalances(t *testing.T, db *database.DB, discordID int64) (wallet, bank int64) {
	t.Helper()
	err := db.QueryRow(context.Background(),
		`SELECT balance, bank_balance FROM user_balances WHERE discord_id = $1`, discordID,
	).Scan(&wallet, &bank)
	require.NoError(t, err)
	return wallet, bank
}

// CountHistory counts balance history rows for a user and transaction type
func CountHistory(t *testing.T, db *database.DB, discordID int64, txType string) int {
	t.Helper()
	var count int
	err := db.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM balance_history WHERE discord_id = $1 AND transaction_type = $2`, discordID, txType,
	).Scan(&count)
	require.NoError(t, err)
	return count
}

// CreateTestBalanceHistory creates a balance history entry for a wallet change
func CreateTestBalanceHistory(discordID, before, change int64, txType entities.TransactionType) *entities.BalanceHistory {
	return &entities.BalanceHistory{
		DiscordID:       discordID,
		BalanceBefore:   before,
		BalanceAfter:    before + change,
		ChangeAmount:    change,
		TransactionType: txType,
	}
}

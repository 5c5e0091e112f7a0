package entities

import "time"

// UserBalance is a user's wallet and bank
type UserBalance struct {
	DiscordID   int64     `db:"discord_id"`
	Balance     int64     `db:"balance"`
	BankBalance int64     `db:"bank_balance"`
	LastUpdated time.Time `db:"last_updated"`
	CreatedAt   time.Time `db:"created_at"`
}

// BankRoom returns how much more the bank can hold under the given cap
func (u *UserBalance) BankRoom(maxBank int64) int64 {
	if u.BankBalance >= maxBank {
		return 0
	}
	return maxBank - u.BankBalance
}

// BalanceInfo is what the balance command shows
type BalanceInfo struct {
	DiscordID      int64
	Balance        int64
	BankBalance    int64
	MaxBankBalance int64
	GlobalRank     int64
}

// TransferAccount names the side of a wallet/bank transfer
type TransferAccount string

const (
	AccountWallet TransferAccount = "wallet"
	AccountBank   TransferAccount = "bank"
)

// TransferResult describes a completed deposit or withdrawal
type TransferResult struct {
	Requested int64
	Amount    int64
	Wallet    int64
	Bank      int64
}

// Clipped reports whether the bank cap reduced the requested amount
func (r *TransferResult) Clipped() bool {
	return r.Amount < r.Requested
}

// LeaderboardEntry is one row of the wallet leaderboard
type LeaderboardEntry struct {
	Rank      int64
	DiscordID int64
	Balance   int64
}

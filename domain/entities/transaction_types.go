package entities

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeDailyReward  TransactionType = "daily_reward"
	TransactionTypeWeeklyReward TransactionType = "weekly_reward"
	TransactionTypeDeposit      TransactionType = "deposit"
	TransactionTypeWithdraw     TransactionType = "withdraw"
	TransactionTypeAdjustment   TransactionType = "adjustment"
)

// IsReward returns true for daily and weekly claims
func (tt TransactionType) IsReward() bool {
	return tt == TransactionTypeDailyReward || tt == TransactionTypeWeeklyReward
}

// IsTransfer returns true for movements between wallet and bank
func (tt TransactionType) IsTransfer() bool {
	return tt == TransactionTypeDeposit || tt == TransactionTypeWithdraw
}

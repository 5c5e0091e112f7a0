package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BalanceHistory is an audit row for one wallet mutation
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	DiscordID           int64           `db:"discord_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	ClaimID             *uuid.UUID      `db:"claim_id"`
	CreatedAt           time.Time       `db:"created_at"`
}

// GetTransactionDescription returns a human-readable description of the transaction
func (bh *BalanceHistory) GetTransactionDescription() string {
	switch bh.TransactionType {
	case TransactionTypeDailyReward:
		return "Daily reward"
	case TransactionTypeWeeklyReward:
		return "Weekly reward"
	case TransactionTypeDeposit:
		return "Deposit to bank"
	case TransactionTypeWithdraw:
		return "Withdrawal from bank"
	case TransactionTypeAdjustment:
		return "Balance adjustment"
	default:
		return string(bh.TransactionType)
	}
}

// ValidateTransaction performs basic validation on the transaction
func (bh *BalanceHistory) ValidateTransaction() error {
	if bh.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}
	if bh.BalanceAfter != bh.BalanceBefore+bh.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}
	if bh.TransactionType.IsReward() && bh.ClaimID == nil {
		return errors.New("reward transactions require a claim id")
	}
	return nil
}

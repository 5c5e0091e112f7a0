package services

import (
	"context"
	"fmt"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ledgerService implements wallet and bank operations on top of one unit of work
type ledgerService struct {
	ledgerRepo         interfaces.LedgerRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	eventPublisher     interfaces.EventPublisher
	maxBankBalance     int64
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	ledgerRepo interfaces.LedgerRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	eventPublisher interfaces.EventPublisher,
	maxBankBalance int64,
) interfaces.LedgerService {
	return &ledgerService{
		ledgerRepo:         ledgerRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		eventPublisher:     eventPublisher,
		maxBankBalance:     maxBankBalance,
	}
}

// GetBalance returns the user's balances and global rank
func (s *ledgerService) GetBalance(ctx context.Context, discordID int64) (*entities.BalanceInfo, error) {
	account, err := s.ledgerRepo.GetOrCreate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("get balance", err)
	}

	above, err := s.ledgerRepo.CountRankedAbove(ctx, discordID, account.Balance)
	if err != nil {
		return nil, storeFailure("count ranked users", err)
	}

	return &entities.BalanceInfo{
		DiscordID:      discordID,
		Balance:        account.Balance,
		BankBalance:    account.BankBalance,
		MaxBankBalance: s.maxBankBalance,
		GlobalRank:     above + 1,
	}, nil
}

// AddBalance adds delta to the wallet
func (s *ledgerService) AddBalance(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	return s.applyWalletChange(ctx, discordID, delta, txType, nil, metadata)
}

// CreditReward credits a reward claim exactly once per claim id
func (s *ledgerService) CreditReward(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, claimID uuid.UUID, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: reward must be positive, got %d", ErrInvalidAmount, amount)
	}
	return s.applyWalletChange(ctx, discordID, amount, txType, &claimID, metadata)
}

func (s *ledgerService) applyWalletChange(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, claimID *uuid.UUID, metadata map[string]any) (int64, error) {
	newBalance, err := s.ledgerRepo.AddBalance(ctx, discordID, delta)
	if err != nil {
		return 0, storeFailure("update wallet", err)
	}

	if delta == 0 {
		return newBalance, nil
	}

	history := &entities.BalanceHistory{
		DiscordID:           discordID,
		BalanceBefore:       newBalance - delta,
		BalanceAfter:        newBalance,
		ChangeAmount:        delta,
		TransactionType:     txType,
		TransactionMetadata: metadata,
		ClaimID:             claimID,
	}
	if err := s.balanceHistoryRepo.Record(ctx, history); err != nil {
		return 0, storeFailure("record balance history", err)
	}

	event := events.BalanceChangeEvent{
		DiscordID:       discordID,
		OldBalance:      history.BalanceBefore,
		NewBalance:      history.BalanceAfter,
		ChangeAmount:    delta,
		TransactionType: txType,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish balance change event")
	}

	return newBalance, nil
}

// AddBankBalance adds delta to the bank, clipped to the configured cap
func (s *ledgerService) AddBankBalance(ctx context.Context, discordID int64, delta int64) (int64, error) {
	bank, err := s.ledgerRepo.AddBankBalance(ctx, discordID, delta, s.maxBankBalance)
	if err != nil {
		return 0, storeFailure("update bank", err)
	}
	return bank, nil
}

// Deposit moves amount from the wallet into the bank
func (s *ledgerService) Deposit(ctx context.Context, discordID int64, amount int64) (*entities.TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	account, err := s.ledgerRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("lock balance", err)
	}
	return s.deposit(ctx, account, amount)
}

// DepositAll deposits as much of the wallet as the bank can hold
func (s *ledgerService) DepositAll(ctx context.Context, discordID int64) (*entities.TransferResult, error) {
	account, err := s.ledgerRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("lock balance", err)
	}
	if account.Balance <= 0 {
		return nil, &InsufficientFundsError{Account: entities.AccountWallet, Available: account.Balance}
	}
	return s.deposit(ctx, account, account.Balance)
}

func (s *ledgerService) deposit(ctx context.Context, account *entities.UserBalance, requested int64) (*entities.TransferResult, error) {
	if requested > account.Balance {
		return nil, &InsufficientFundsError{
			Account:   entities.AccountWallet,
			Available: account.Balance,
			Requested: requested,
		}
	}

	amount := min(requested, account.BankRoom(s.maxBankBalance))
	if amount == 0 {
		return nil, ErrBankFull
	}

	metadata := map[string]any{"requested": requested}
	wallet, err := s.applyWalletChange(ctx, account.DiscordID, -amount, entities.TransactionTypeDeposit, nil, metadata)
	if err != nil {
		return nil, err
	}
	bank, err := s.AddBankBalance(ctx, account.DiscordID, amount)
	if err != nil {
		return nil, err
	}

	return &entities.TransferResult{
		Requested: requested,
		Amount:    amount,
		Wallet:    wallet,
		Bank:      bank,
	}, nil
}

// Withdraw moves amount from the bank into the wallet
func (s *ledgerService) Withdraw(ctx context.Context, discordID int64, amount int64) (*entities.TransferResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	account, err := s.ledgerRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("lock balance", err)
	}
	return s.withdraw(ctx, account, amount)
}

// WithdrawAll empties the bank into the wallet
func (s *ledgerService) WithdrawAll(ctx context.Context, discordID int64) (*entities.TransferResult, error) {
	account, err := s.ledgerRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("lock balance", err)
	}
	if account.BankBalance <= 0 {
		return nil, &InsufficientFundsError{Account: entities.AccountBank, Available: account.BankBalance}
	}
	return s.withdraw(ctx, account, account.BankBalance)
}

func (s *ledgerService) withdraw(ctx context.Context, account *entities.UserBalance, amount int64) (*entities.TransferResult, error) {
	if amount > account.BankBalance {
		return nil, &InsufficientFundsError{
			Account:   entities.AccountBank,
			Available: account.BankBalance,
			Requested: amount,
		}
	}

	bank, err := s.AddBankBalance(ctx, account.DiscordID, -amount)
	if err != nil {
		return nil, err
	}
	wallet, err := s.applyWalletChange(ctx, account.DiscordID, amount, entities.TransactionTypeWithdraw, nil, nil)
	if err != nil {
		return nil, err
	}

	return &entities.TransferResult{
		Requested: amount,
		Amount:    amount,
		Wallet:    wallet,
		Bank:      bank,
	}, nil
}

// GetLeaderboard returns the top wallets with their ranks
func (s *ledgerService) GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: leaderboard limit must be positive", ErrInvalidAmount)
	}

	top, err := s.ledgerRepo.GetTopBalances(ctx, limit)
	if err != nil {
		return nil, storeFailure("get top balances", err)
	}

	entries := make([]*entities.LeaderboardEntry, 0, len(top))
	for i, account := range top {
		entries = append(entries, &entities.LeaderboardEntry{
			Rank:      int64(i + 1),
			DiscordID: account.DiscordID,
			Balance:   account.Balance,
		})
	}
	return entries, nil
}

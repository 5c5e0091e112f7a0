package services

import (
	"errors"
	"fmt"
	"time"

	"coinbot/domain/entities"
)

var (
	// ErrInvalidAmount is returned for zero, negative or unparseable amounts
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrStoreFailure wraps every storage error surfaced by the services
	ErrStoreFailure = errors.New("store failure")

	// ErrBankFull is returned when a deposit finds no room left in the bank
	ErrBankFull = errors.New("bank is full")
)

// CooldownError is returned when a reward is claimed before its window reopens
type CooldownError struct {
	Kind        entities.RewardKind
	Remaining   time.Duration
	NextClaimAt time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s reward on cooldown for %s", e.Kind, e.Remaining.Truncate(time.Second))
}

// InsufficientFundsError is returned when a transfer asks for more than the
// source account holds
type InsufficientFundsError struct {
	Account   entities.TransferAccount
	Available int64
	Requested int64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient %s funds: requested %d, available %d", e.Account, e.Requested, e.Available)
}

func storeFailure(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrStoreFailure, action, err)
}

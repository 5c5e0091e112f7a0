package common

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		message    string
		userCaused bool
	}{
		{
			name:       "daily cooldown",
			err:        &services.CooldownError{Kind: entities.RewardKindDaily, Remaining: 3*time.Hour + 5*time.Minute},
			message:    "You already got your daily today! Try again in 3h 5m.",
			userCaused: true,
		},
		{
			name:       "weekly cooldown",
			err:        &services.CooldownError{Kind: entities.RewardKindWeekly, Remaining: 6*24*time.Hour + 23*time.Hour},
			message:    "You already claimed your weekly! Try again in 6d 23h.",
			userCaused: true,
		},
		{
			name:       "wrapped cooldown",
			err:        fmt.Errorf("claim: %w", &services.CooldownError{Kind: entities.RewardKindDaily, Remaining: time.Minute}),
			message:    "You already got your daily today! Try again in 0h 1m.",
			userCaused: true,
		},
		{
			name:       "insufficient wallet",
			err:        &services.InsufficientFundsError{Account: entities.AccountWallet, Available: 1500, Requested: 5000},
			message:    "You don't have that much money in your wallet! Your wallet balance is ⏣ 1,500.",
			userCaused: true,
		},
		{
			name:       "insufficient bank",
			err:        &services.InsufficientFundsError{Account: entities.AccountBank, Available: 0, Requested: 10},
			message:    "You don't have that much money in your bank! Your bank balance is ⏣ 0.",
			userCaused: true,
		},
		{
			name:       "bank full",
			err:        services.ErrBankFull,
			message:    "Your bank is full! Withdraw some coins or wait for more room.",
			userCaused: true,
		},
		{
			name:       "invalid amount",
			err:        fmt.Errorf("%w: zero", services.ErrInvalidAmount),
			message:    "Please enter a valid positive amount.",
			userCaused: true,
		},
		{
			name:       "user bot error",
			err:        NewUserError("Please specify an amount to deposit.", "missing amount"),
			message:    "Please specify an amount to deposit.",
			userCaused: true,
		},
		{
			name:       "system bot error",
			err:        NewSystemError(errors.New("boom"), "begin failed"),
			message:    genericFailureMessage,
			userCaused: false,
		},
		{
			name:       "store failure",
			err:        fmt.Errorf("%w: failed to add balance: %w", services.ErrStoreFailure, errors.New("conn reset")),
			message:    genericFailureMessage,
			userCaused: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			message, userCaused := UserMessage(tt.err)
			assert.Equal(t, tt.message, message)
			assert.Equal(t, tt.userCaused, userCaused)
		})
	}
}

func TestHandleError(t *testing.T) {
	replier := &RecordingReplier{}

	HandleError(replier, "deposit", 42, services.ErrBankFull)

	reply := replier.Last()
	require.NotNil(t, reply)
	assert.True(t, reply.Ephemeral)
	assert.Equal(t, "❌ Your bank is full! Withdraw some coins or wait for more room.", reply.Content)
}

func TestBotError_Unwrap(t *testing.T) {
	root := errors.New("root cause")
	err := NewSystemError(root, "context")

	assert.ErrorIs(t, err, root)
	assert.Equal(t, "context: root cause", err.Error())
}

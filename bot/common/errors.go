package common

import (
	"errors"
	"fmt"

	"coinbot/domain/entities"
	"coinbot/domain/services"

	log "github.com/sirupsen/logrus"
)

const genericFailureMessage = "Something went wrong. Please try again later."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to Discord user
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// NewUserError creates an error for user-caused issues (validation, missing arguments)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewSystemError creates an error for system issues (database, unexpected state)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: genericFailureMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}

// UserMessage turns any error from a command into the text shown to the user.
// The second result is false for failures the user did not cause.
func UserMessage(err error) (string, bool) {
	var (
		botErr       *BotError
		cooldown     *services.CooldownError
		insufficient *services.InsufficientFundsError
	)

	switch {
	case errors.As(err, &botErr):
		return botErr.UserMessage, botErr.Err == nil
	case errors.As(err, &cooldown):
		if cooldown.Kind == entities.RewardKindWeekly {
			return fmt.Sprintf("You already claimed your weekly! Try again in %s.", FormatDaysHours(cooldown.Remaining)), true
		}
		return fmt.Sprintf("You already got your daily today! Try again in %s.", FormatHoursMinutes(cooldown.Remaining)), true
	case errors.As(err, &insufficient):
		account := "wallet"
		if insufficient.Account == entities.AccountBank {
			account = "bank"
		}
		return fmt.Sprintf("You don't have that much money in your %s! Your %s balance is %s.",
			account, account, FormatCoins(insufficient.Available)), true
	case errors.Is(err, services.ErrBankFull):
		return "Your bank is full! Withdraw some coins or wait for more room.", true
	case errors.Is(err, services.ErrInvalidAmount):
		return "Please enter a valid positive amount.", true
	default:
		return genericFailureMessage, false
	}
}

// HandleError logs err and replies with its user message. User-caused errors
// log at debug level.
func HandleError(replier Replier, command string, discordID int64, err error) {
	message, userCaused := UserMessage(err)

	entry := log.WithFields(log.Fields{
		"user_id": discordID,
		"command": command,
		"error":   err.Error(),
	})
	if userCaused {
		entry.Debug("Command rejected")
	} else {
		entry.Error("Unexpected error in bot command")
	}

	if replyErr := replier.Reply(&Reply{Content: "❌ " + message, Ephemeral: true}); replyErr != nil {
		log.WithError(replyErr).Error("Error sending error response")
	}
}

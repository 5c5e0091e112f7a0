package services

import (
	"context"
	"fmt"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/events"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// DailyRewardConfig holds the daily payout and the cooldown-exempt owner
type DailyRewardConfig struct {
	BaseReward  int64
	StreakBonus int64
	OwnerID     int64
}

type dailyRewardService struct {
	dailyRepo      interfaces.DailyRewardRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
	clock          interfaces.Clock
	config         DailyRewardConfig
}

// NewDailyRewardService creates a daily reward service bound to one unit of work
func NewDailyRewardService(
	dailyRepo interfaces.DailyRewardRepository,
	ledger interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
	clock interfaces.Clock,
	config DailyRewardConfig,
) interfaces.DailyRewardService {
	return &dailyRewardService{
		dailyRepo:      dailyRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		clock:          clock,
		config:         config,
	}
}

// Claim locks the user's daily state, applies the cooldown and streak rules,
// saves the state and credits the wallet.
func (s *dailyRewardService) Claim(ctx context.Context, discordID int64) (*entities.DailyRewardResult, error) {
	now := s.clock.Now().UTC()

	state, err := s.dailyRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("lock daily reward state", err)
	}

	elapsed := now.Sub(state.LastClaimed)
	isOwner := discordID == s.config.OwnerID

	var streak int
	var isNewStreak bool
	switch {
	case isOwner:
		streak = state.Streak + 1
		isNewStreak = streak == 1
	case elapsed < entities.DailyCooldown:
		nextClaimAt := state.LastClaimed.Add(entities.DailyCooldown)
		return nil, &CooldownError{
			Kind:        entities.RewardKindDaily,
			Remaining:   nextClaimAt.Sub(now),
			NextClaimAt: nextClaimAt,
		}
	case elapsed >= entities.StreakWindow:
		streak = 1
		isNewStreak = true
	default:
		streak = state.Streak + 1
	}

	streakBonus := int64(streak) * s.config.StreakBonus
	total := s.config.BaseReward + streakBonus

	state.LastClaimed = now
	state.Streak = streak
	state.TotalClaimed += total
	if err := s.dailyRepo.Save(ctx, state); err != nil {
		return nil, storeFailure("save daily reward state", err)
	}

	claimID := uuid.New()
	metadata := map[string]any{
		"streak":       streak,
		"streak_bonus": streakBonus,
	}
	newBalance, err := s.ledger.CreditReward(ctx, discordID, total, entities.TransactionTypeDailyReward, claimID, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to credit daily reward: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RewardClaimedEvent{
		DiscordID: discordID,
		Kind:      entities.RewardKindDaily,
		ClaimID:   claimID,
		Total:     total,
		Streak:    streak,
		ClaimedAt: now,
	}); err != nil {
		log.WithError(err).Error("Failed to publish reward claimed event")
	}

	return &entities.DailyRewardResult{
		ClaimID:     claimID,
		Amount:      s.config.BaseReward,
		Streak:      streak,
		StreakBonus: streakBonus,
		Total:       total,
		IsNewStreak: isNewStreak,
		NewBalance:  newBalance,
		ClaimedAt:   now,
		NextClaimAt: now.Add(entities.DailyCooldown),
	}, nil
}

// GetExpiringStreaks returns streaks whose reset falls in [now+lead, now+lead+1h)
func (s *dailyRewardService) GetExpiringStreaks(ctx context.Context, lead time.Duration) ([]*entities.DailyRewardState, error) {
	from := s.clock.Now().UTC().Add(lead - entities.StreakWindow)
	to := from.Add(time.Hour)

	states, err := s.dailyRepo.GetStreaksExpiringBetween(ctx, from, to)
	if err != nil {
		return nil, storeFailure("get expiring streaks", err)
	}
	return states, nil
}

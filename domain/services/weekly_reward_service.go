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

// WeeklyRewardConfig holds the weekly payout and the cooldown-exempt owner
type WeeklyRewardConfig struct {
	Reward  int64
	OwnerID int64
}

type weeklyRewardService struct {
	weeklyRepo     interfaces.WeeklyRewardRepository
	ledger         interfaces.LedgerService
	eventPublisher interfaces.EventPublisher
	clock          interfaces.Clock
	config         WeeklyRewardConfig
}

// NewWeeklyRewardService creates a weekly reward service bound to one unit of work
func NewWeeklyRewardService(
	weeklyRepo interfaces.WeeklyRewardRepository,
	ledger interfaces.LedgerService,
	eventPublisher interfaces.EventPublisher,
	clock interfaces.Clock,
	config WeeklyRewardConfig,
) interfaces.WeeklyRewardService {
	return &weeklyRewardService{
		weeklyRepo:     weeklyRepo,
		ledger:         ledger,
		eventPublisher: eventPublisher,
		clock:          clock,
		config:         config,
	}
}

// Claim pays the weekly reward once per seven days
func (s *weeklyRewardService) Claim(ctx context.Context, discordID int64) (*entities.WeeklyRewardResult, error) {
	now := s.clock.Now().UTC()

	state, err := s.weeklyRepo.GetForUpdate(ctx, discordID)
	if err != nil {
		return nil, storeFailure("lock weekly reward state", err)
	}

	if discordID != s.config.OwnerID && now.Sub(state.LastClaimed) < entities.WeeklyCooldown {
		nextClaimAt := state.LastClaimed.Add(entities.WeeklyCooldown)
		return nil, &CooldownError{
			Kind:        entities.RewardKindWeekly,
			Remaining:   nextClaimAt.Sub(now),
			NextClaimAt: nextClaimAt,
		}
	}

	total := s.config.Reward
	state.LastClaimed = now
	state.TotalClaimed += total
	if err := s.weeklyRepo.Save(ctx, state); err != nil {
		return nil, storeFailure("save weekly reward state", err)
	}

	claimID := uuid.New()
	newBalance, err := s.ledger.CreditReward(ctx, discordID, total, entities.TransactionTypeWeeklyReward, claimID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to credit weekly reward: %w", err)
	}

	if err := s.eventPublisher.Publish(events.RewardClaimedEvent{
		DiscordID: discordID,
		Kind:      entities.RewardKindWeekly,
		ClaimID:   claimID,
		Total:     total,
		ClaimedAt: now,
	}); err != nil {
		log.WithError(err).Error("Failed to publish reward claimed event")
	}

	return &entities.WeeklyRewardResult{
		ClaimID:     claimID,
		Amount:      total,
		Total:       total,
		NewBalance:  newBalance,
		LastClaimed: now,
		NextClaimAt: now.Add(entities.WeeklyCooldown),
	}, nil
}

package application

import (
	"coinbot/config"
	"coinbot/domain/interfaces"
	"coinbot/domain/services"
)

// Economy builds domain services bound to a unit of work from the injected
// configuration and clock
type Economy struct {
	maxBankBalance int64
	daily          services.DailyRewardConfig
	weekly         services.WeeklyRewardConfig
	clock          interfaces.Clock
}

// NewEconomy creates the service builder
func NewEconomy(cfg *config.Config, clock interfaces.Clock) *Economy {
	return &Economy{
		maxBankBalance: cfg.MaxBankBalance,
		daily: services.DailyRewardConfig{
			BaseReward:  cfg.DailyBaseReward,
			StreakBonus: cfg.DailyStreakBonus,
			OwnerID:     cfg.OwnerDiscordID,
		},
		weekly: services.WeeklyRewardConfig{
			Reward:  cfg.WeeklyReward,
			OwnerID: cfg.OwnerDiscordID,
		},
		clock: clock,
	}
}

// Ledger returns a ledger service on the unit of work
func (e *Economy) Ledger(uow UnitOfWork) interfaces.LedgerService {
	return services.NewLedgerService(
		uow.LedgerRepository(),
		uow.BalanceHistoryRepository(),
		uow.EventBus(),
		e.maxBankBalance,
	)
}

// Daily returns a daily reward service that credits through the same unit of work
func (e *Economy) Daily(uow UnitOfWork) interfaces.DailyRewardService {
	return services.NewDailyRewardService(
		uow.DailyRewardRepository(),
		e.Ledger(uow),
		uow.EventBus(),
		e.clock,
		e.daily,
	)
}

// Weekly returns a weekly reward service that credits through the same unit of work
func (e *Economy) Weekly(uow UnitOfWork) interfaces.WeeklyRewardService {
	return services.NewWeeklyRewardService(
		uow.WeeklyRewardRepository(),
		e.Ledger(uow),
		uow.EventBus(),
		e.clock,
		e.weekly,
	)
}

// MaxBankBalance is the configured bank cap
func (e *Economy) MaxBankBalance() int64 {
	return e.maxBankBalance
}

package testhelpers

import (
	"context"
	"time"

	"coinbot/domain/entities"
	"coinbot/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.UserBalance, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockLedgerRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.UserBalance, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.UserBalance), args.Error(1)
}

func (m *MockLedgerRepository) AddBalance(ctx context.Context, discordID int64, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) AddBankBalance(ctx context.Context, discordID int64, delta int64, maxBank int64) (int64, error) {
	args := m.Called(ctx, discordID, delta, maxBank)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) CountRankedAbove(ctx context.Context, discordID int64, balance int64) (int64, error) {
	args := m.Called(ctx, discordID, balance)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) GetTopBalances(ctx context.Context, limit int) ([]*entities.UserBalance, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserBalance), args.Error(1)
}

// MockDailyRewardRepository is a mock implementation of DailyRewardRepository
type MockDailyRewardRepository struct {
	mock.Mock
}

func (m *MockDailyRewardRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.DailyRewardState, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DailyRewardState), args.Error(1)
}

func (m *MockDailyRewardRepository) Save(ctx context.Context, state *entities.DailyRewardState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockDailyRewardRepository) GetStreaksExpiringBetween(ctx context.Context, from, to time.Time) ([]*entities.DailyRewardState, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DailyRewardState), args.Error(1)
}

// MockWeeklyRewardRepository is a mock implementation of WeeklyRewardRepository
type MockWeeklyRewardRepository struct {
	mock.Mock
}

func (m *MockWeeklyRewardRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.WeeklyRewardState, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WeeklyRewardState), args.Error(1)
}

func (m *MockWeeklyRewardRepository) Save(ctx context.Context, state *entities.WeeklyRewardState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, discordID int64, limit int) ([]*entities.BalanceHistory, error) {
	args := m.Called(ctx, discordID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.BalanceHistory), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockLedgerService is a mock implementation of LedgerService
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, discordID int64) (*entities.BalanceInfo, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BalanceInfo), args.Error(1)
}

func (m *MockLedgerService) AddBalance(ctx context.Context, discordID int64, delta int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, discordID, delta, txType, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) CreditReward(ctx context.Context, discordID int64, amount int64, txType entities.TransactionType, claimID uuid.UUID, metadata map[string]any) (int64, error) {
	args := m.Called(ctx, discordID, amount, txType, claimID, metadata)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) AddBankBalance(ctx context.Context, discordID int64, delta int64) (int64, error) {
	args := m.Called(ctx, discordID, delta)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerService) Deposit(ctx context.Context, discordID int64, amount int64) (*entities.TransferResult, error) {
	args := m.Called(ctx, discordID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResult), args.Error(1)
}

func (m *MockLedgerService) DepositAll(ctx context.Context, discordID int64) (*entities.TransferResult, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResult), args.Error(1)
}

func (m *MockLedgerService) Withdraw(ctx context.Context, discordID int64, amount int64) (*entities.TransferResult, error) {
	args := m.Called(ctx, discordID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResult), args.Error(1)
}

func (m *MockLedgerService) WithdrawAll(ctx context.Context, discordID int64) (*entities.TransferResult, error) {
	args := m.Called(ctx, discordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TransferResult), args.Error(1)
}

func (m *MockLedgerService) GetLeaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LeaderboardEntry), args.Error(1)
}

// FixedClock is a Clock that only moves when told to
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time {
	return c.T
}

// Advance moves the clock forward
func (c *FixedClock) Advance(d time.Duration) {
	c.T = c.T.Add(d)
}

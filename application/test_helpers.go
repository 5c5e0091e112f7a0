package application

import (
	"context"
	"sync"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/interfaces"
	"coinbot/domain/testhelpers"
)

// MockUnitOfWork hands out testhelpers mocks and counts transaction calls
type MockUnitOfWork struct {
	Ledger   *testhelpers.MockLedgerRepository
	Daily    *testhelpers.MockDailyRewardRepository
	Weekly   *testhelpers.MockWeeklyRewardRepository
	History  *testhelpers.MockBalanceHistoryRepository
	Events   *testhelpers.MockEventPublisher
	BeginErr error

	Began     int
	Committed int
}

// NewMockUnitOfWork creates a MockUnitOfWork with fresh mocks
func NewMockUnitOfWork() *MockUnitOfWork {
	return &MockUnitOfWork{
		Ledger:  new(testhelpers.MockLedgerRepository),
		Daily:   new(testhelpers.MockDailyRewardRepository),
		Weekly:  new(testhelpers.MockWeeklyRewardRepository),
		History: new(testhelpers.MockBalanceHistoryRepository),
		Events:  new(testhelpers.MockEventPublisher),
	}
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	m.Began++
	return m.BeginErr
}

func (m *MockUnitOfWork) Commit() error {
	m.Committed++
	return nil
}

func (m *MockUnitOfWork) Rollback() error { return nil }

func (m *MockUnitOfWork) LedgerRepository() interfaces.LedgerRepository { return m.Ledger }

func (m *MockUnitOfWork) DailyRewardRepository() interfaces.DailyRewardRepository { return m.Daily }

func (m *MockUnitOfWork) WeeklyRewardRepository() interfaces.WeeklyRewardRepository { return m.Weekly }

func (m *MockUnitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	return m.History
}

func (m *MockUnitOfWork) EventBus() interfaces.EventPublisher { return m.Events }

// MockUnitOfWorkFactory always returns the same MockUnitOfWork
type MockUnitOfWorkFactory struct {
	UoW *MockUnitOfWork
}

func (f *MockUnitOfWorkFactory) Create() UnitOfWork {
	return f.UoW
}

// MockLeaderboardPoster records posted leaderboards
type MockLeaderboardPoster struct {
	Posts [][]*entities.LeaderboardEntry
	Error error
}

func (m *MockLeaderboardPoster) PostLeaderboard(ctx context.Context, entries []*entities.LeaderboardEntry) error {
	if m.Error != nil {
		return m.Error
	}
	m.Posts = append(m.Posts, entries)
	return nil
}

// StreakReminder is one reminder captured by MockStreakReminderSender
type StreakReminder struct {
	DiscordID int64
	Streak    int
	ExpiresAt time.Time
}

// MockStreakReminderSender records reminders and fails for users in FailFor
type MockStreakReminderSender struct {
	mu      sync.Mutex
	Sent    []StreakReminder
	FailFor map[int64]error
}

func (m *MockStreakReminderSender) SendStreakReminder(ctx context.Context, discordID int64, streak int, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.FailFor[discordID]; err != nil {
		return err
	}
	m.Sent = append(m.Sent, StreakReminder{DiscordID: discordID, Streak: streak, ExpiresAt: expiresAt})
	return nil
}

package services

import (
	"context"
	"testing"
	"time"

	"coinbot/domain/entities"
	"coinbot/domain/testhelpers"
	"coinbot/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testOwnerID int64 = 807822793327509544
	testUserID  int64 = 1001
)

var testStart = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func testDailyConfig() DailyRewardConfig {
	return DailyRewardConfig{BaseReward: 100000, StreakBonus: 1000, OwnerID: testOwnerID}
}

type dailyFixture struct {
	repo      *testhelpers.MockDailyRewardRepository
	ledger    *testhelpers.MockLedgerService
	publisher *testhelpers.MockEventPublisher
	clock     *testhelpers.FixedClock
	state     *entities.DailyRewardState
}

// newDailyFixture returns the same state pointer from every lock, so saves
// persist across claims like a real row
func newDailyFixture(discordID int64, state *entities.DailyRewardState) *dailyFixture {
	f := &dailyFixture{
		repo:      new(testhelpers.MockDailyRewardRepository),
		ledger:    new(testhelpers.MockLedgerService),
		publisher: new(testhelpers.MockEventPublisher),
		clock:     &testhelpers.FixedClock{T: testStart},
		state:     state,
	}
	f.repo.On("GetForUpdate", mock.Anything, discordID).Return(state, nil)
	f.repo.On("Save", mock.Anything, state).Return(nil).Maybe()
	f.ledger.On("CreditReward", mock.Anything, discordID, mock.AnythingOfType("int64"),
		entities.TransactionTypeDailyReward, mock.Anything, mock.Anything).Return(int64(0), nil).Maybe()
	f.publisher.On("Publish", mock.AnythingOfType("events.RewardClaimedEvent")).Return(nil).Maybe()
	return f
}

func (f *dailyFixture) service() *dailyRewardService {
	return NewDailyRewardService(f.repo, f.ledger, f.publisher, f.clock, testDailyConfig()).(*dailyRewardService)
}

func freshDailyState(discordID int64) *entities.DailyRewardState {
	return &entities.DailyRewardState{DiscordID: discordID, LastClaimed: time.Unix(0, 0).UTC()}
}

func TestDailyRewardService_FirstClaim(t *testing.T) {
	t.Parallel()

	f := newDailyFixture(testUserID, freshDailyState(testUserID))

	result, err := f.service().Claim(context.Background(), testUserID)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Streak)
	assert.True(t, result.IsNewStreak)
	assert.Equal(t, int64(100000), result.Amount)
	assert.Equal(t, int64(1000), result.StreakBonus)
	assert.Equal(t, int64(101000), result.Total)
	assert.Equal(t, testStart, result.ClaimedAt)
	assert.Equal(t, testStart.Add(24*time.Hour), result.NextClaimAt)

	assert.Equal(t, testStart, f.state.LastClaimed)
	assert.Equal(t, 1, f.state.Streak)
	assert.Equal(t, int64(101000), f.state.TotalClaimed)

	f.ledger.AssertCalled(t, "CreditReward", mock.Anything, testUserID, int64(101000),
		entities.TransactionTypeDailyReward, result.ClaimID, mock.Anything)
	f.publisher.AssertCalled(t, "Publish", events.RewardClaimedEvent{
		DiscordID: testUserID,
		Kind:      entities.RewardKindDaily,
		ClaimID:   result.ClaimID,
		Total:     101000,
		Streak:    1,
		ClaimedAt: testStart,
	})
}

func TestDailyRewardService_Transitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		after       time.Duration
		wantStreak  int
		wantNew     bool
		wantTotal   int64
		wantCooling bool
	}{
		{name: "second claim inside 24h is on cooldown", after: time.Hour, wantCooling: true},
		{name: "claim at 23h59m is on cooldown", after: 23*time.Hour + 59*time.Minute, wantCooling: true},
		{name: "claim at exactly 24h continues the streak", after: 24 * time.Hour, wantStreak: 2, wantTotal: 102000},
		{name: "claim after 25h continues the streak", after: 25 * time.Hour, wantStreak: 2, wantTotal: 102000},
		{name: "claim at exactly 48h resets the streak", after: 48 * time.Hour, wantStreak: 1, wantNew: true, wantTotal: 101000},
		{name: "claim after 50h resets the streak", after: 50 * time.Hour, wantStreak: 1, wantNew: true, wantTotal: 101000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newDailyFixture(testUserID, freshDailyState(testUserID))
			svc := f.service()

			_, err := svc.Claim(context.Background(), testUserID)
			require.NoError(t, err)

			f.clock.Advance(tt.after)
			result, err := svc.Claim(context.Background(), testUserID)

			if tt.wantCooling {
				var cooldown *CooldownError
				require.ErrorAs(t, err, &cooldown)
				assert.Equal(t, entities.RewardKindDaily, cooldown.Kind)
				assert.Greater(t, cooldown.Remaining, time.Duration(0))
				assert.LessOrEqual(t, cooldown.Remaining, 24*time.Hour)
				assert.Equal(t, 24*time.Hour-tt.after, cooldown.Remaining)
				assert.Equal(t, testStart.Add(24*time.Hour), cooldown.NextClaimAt)
				assert.Equal(t, 1, f.state.Streak)
				assert.Equal(t, testStart, f.state.LastClaimed)
				f.ledger.AssertNumberOfCalls(t, "CreditReward", 1)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStreak, result.Streak)
			assert.Equal(t, tt.wantNew, result.IsNewStreak)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, int64(101000)+tt.wantTotal, f.state.TotalClaimed)
		})
	}
}

func TestDailyRewardService_StreakBuildsOverDays(t *testing.T) {
	t.Parallel()

	f := newDailyFixture(testUserID, freshDailyState(testUserID))
	svc := f.service()

	for day := 1; day <= 5; day++ {
		result, err := svc.Claim(context.Background(), testUserID)
		require.NoError(t, err)
		assert.Equal(t, day, result.Streak)
		assert.Equal(t, int64(100000+day*1000), result.Total)
		f.clock.Advance(30 * time.Hour)
	}
}

func TestDailyRewardService_OwnerBypassesCooldown(t *testing.T) {
	t.Parallel()

	f := newDailyFixture(testOwnerID, freshDailyState(testOwnerID))
	svc := f.service()

	for i := 1; i <= 4; i++ {
		result, err := svc.Claim(context.Background(), testOwnerID)
		require.NoError(t, err)
		assert.Equal(t, i, result.Streak)
		assert.Equal(t, i == 1, result.IsNewStreak)
		f.clock.Advance(time.Minute)
	}

	// The owner never resets either
	f.clock.Advance(72 * time.Hour)
	result, err := svc.Claim(context.Background(), testOwnerID)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Streak)
}

func TestDailyRewardService_StoreFailures(t *testing.T) {
	t.Parallel()

	t.Run("lock failure", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockDailyRewardRepository)
		ledger := new(testhelpers.MockLedgerService)
		repo.On("GetForUpdate", mock.Anything, testUserID).Return(nil, assert.AnError)

		svc := NewDailyRewardService(repo, ledger, new(testhelpers.MockEventPublisher), &testhelpers.FixedClock{T: testStart}, testDailyConfig())
		_, err := svc.Claim(context.Background(), testUserID)
		assert.ErrorIs(t, err, ErrStoreFailure)
		ledger.AssertNotCalled(t, "CreditReward", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("save failure stops the credit", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockDailyRewardRepository)
		ledger := new(testhelpers.MockLedgerService)
		state := freshDailyState(testUserID)
		repo.On("GetForUpdate", mock.Anything, testUserID).Return(state, nil)
		repo.On("Save", mock.Anything, state).Return(assert.AnError)

		svc := NewDailyRewardService(repo, ledger, new(testhelpers.MockEventPublisher), &testhelpers.FixedClock{T: testStart}, testDailyConfig())
		_, err := svc.Claim(context.Background(), testUserID)
		assert.ErrorIs(t, err, ErrStoreFailure)
		ledger.AssertNotCalled(t, "CreditReward", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("credit failure is returned", func(t *testing.T) {
		t.Parallel()
		repo := new(testhelpers.MockDailyRewardRepository)
		ledger := new(testhelpers.MockLedgerService)
		publisher := new(testhelpers.MockEventPublisher)
		state := freshDailyState(testUserID)
		repo.On("GetForUpdate", mock.Anything, testUserID).Return(state, nil)
		repo.On("Save", mock.Anything, state).Return(nil)
		ledger.On("CreditReward", mock.Anything, testUserID, int64(101000), entities.TransactionTypeDailyReward, mock.Anything, mock.Anything).
			Return(int64(0), storeFailure("update wallet", assert.AnError))

		svc := NewDailyRewardService(repo, ledger, publisher, &testhelpers.FixedClock{T: testStart}, testDailyConfig())
		_, err := svc.Claim(context.Background(), testUserID)
		assert.ErrorIs(t, err, ErrStoreFailure)
		publisher.AssertNotCalled(t, "Publish", mock.Anything)
	})
}

func TestDailyRewardService_GetExpiringStreaks(t *testing.T) {
	t.Parallel()

	repo := new(testhelpers.MockDailyRewardRepository)
	clock := &testhelpers.FixedClock{T: testStart}
	expiring := []*entities.DailyRewardState{{DiscordID: 1, Streak: 4}}

	// With an 8h lead the reset must fall in [now+8h, now+9h), so the last
	// claim falls in [now-40h, now-39h)
	from := testStart.Add(-40 * time.Hour)
	repo.On("GetStreaksExpiringBetween", mock.Anything, from, from.Add(time.Hour)).Return(expiring, nil)

	svc := NewDailyRewardService(repo, new(testhelpers.MockLedgerService), new(testhelpers.MockEventPublisher), clock, testDailyConfig())
	got, err := svc.GetExpiringStreaks(context.Background(), 8*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, expiring, got)
	repo.AssertExpectations(t)
}

type weeklyFixture struct {
	repo      *testhelpers.MockWeeklyRewardRepository
	ledger    *testhelpers.MockLedgerService
	publisher *testhelpers.MockEventPublisher
	clock     *testhelpers.FixedClock
	state     *entities.WeeklyRewardState
}

func newWeeklyFixture(discordID int64) *weeklyFixture {
	f := &weeklyFixture{
		repo:      new(testhelpers.MockWeeklyRewardRepository),
		ledger:    new(testhelpers.MockLedgerService),
		publisher: new(testhelpers.MockEventPublisher),
		clock:     &testhelpers.FixedClock{T: testStart},
		state:     &entities.WeeklyRewardState{DiscordID: discordID, LastClaimed: time.Unix(0, 0).UTC()},
	}
	f.repo.On("GetForUpdate", mock.Anything, discordID).Return(f.state, nil)
	f.repo.On("Save", mock.Anything, f.state).Return(nil).Maybe()
	f.ledger.On("CreditReward", mock.Anything, discordID, int64(2000000),
		entities.TransactionTypeWeeklyReward, mock.Anything, mock.Anything).Return(int64(2000000), nil).Maybe()
	f.publisher.On("Publish", mock.AnythingOfType("events.RewardClaimedEvent")).Return(nil).Maybe()
	return f
}

func (f *weeklyFixture) service() *weeklyRewardService {
	return NewWeeklyRewardService(f.repo, f.ledger, f.publisher, f.clock,
		WeeklyRewardConfig{Reward: 2000000, OwnerID: testOwnerID}).(*weeklyRewardService)
}

func TestWeeklyRewardService_Claim(t *testing.T) {
	t.Parallel()

	f := newWeeklyFixture(testUserID)
	svc := f.service()

	result, err := svc.Claim(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(2000000), result.Total)
	assert.Equal(t, int64(2000000), result.NewBalance)
	assert.Equal(t, testStart, result.LastClaimed)
	assert.Equal(t, testStart.Add(7*24*time.Hour), result.NextClaimAt)
	assert.Equal(t, int64(2000000), f.state.TotalClaimed)

	f.clock.Advance(time.Hour)
	_, err = svc.Claim(context.Background(), testUserID)
	var cooldown *CooldownError
	require.ErrorAs(t, err, &cooldown)
	assert.Equal(t, entities.RewardKindWeekly, cooldown.Kind)
	assert.Equal(t, 6*24*time.Hour+23*time.Hour, cooldown.Remaining)
	f.ledger.AssertNumberOfCalls(t, "CreditReward", 1)

	f.clock.Advance(6*24*time.Hour + 23*time.Hour)
	_, err = svc.Claim(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000000), f.state.TotalClaimed)
}

func TestWeeklyRewardService_OwnerBypassesCooldown(t *testing.T) {
	t.Parallel()

	f := newWeeklyFixture(testOwnerID)
	svc := f.service()

	for i := 0; i < 3; i++ {
		_, err := svc.Claim(context.Background(), testOwnerID)
		require.NoError(t, err)
		f.clock.Advance(time.Second)
	}
	f.ledger.AssertNumberOfCalls(t, "CreditReward", 3)
	assert.Equal(t, int64(6000000), f.state.TotalClaimed)
}

func TestWeeklyRewardService_LockFailure(t *testing.T) {
	t.Parallel()

	repo := new(testhelpers.MockWeeklyRewardRepository)
	repo.On("GetForUpdate", mock.Anything, testUserID).Return(nil, assert.AnError)

	svc := NewWeeklyRewardService(repo, new(testhelpers.MockLedgerService), new(testhelpers.MockEventPublisher),
		&testhelpers.FixedClock{T: testStart}, WeeklyRewardConfig{Reward: 2000000, OwnerID: testOwnerID})
	_, err := svc.Claim(context.Background(), testUserID)
	assert.ErrorIs(t, err, ErrStoreFailure)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCooldownError_Message(t *testing.T) {
	err := &CooldownError{Kind: entities.RewardKindDaily, Remaining: 3*time.Hour + 5*time.Minute + 500*time.Millisecond}
	assert.Equal(t, "daily reward on cooldown for 3h5m0s", err.Error())
}

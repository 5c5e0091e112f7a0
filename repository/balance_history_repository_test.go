package repository

import (
	"context"
	"testing"

	"coinbot/domain/entities"
	"coinbot/repository/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository_Record(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	t.Run("record with metadata", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(123456, 0, 101000, entities.TransactionTypeDailyReward)
		claimID := uuid.New()
		history.ClaimID = &claimID
		history.TransactionMetadata = map[string]any{"streak": 1}

		require.NoError(t, repo.Record(ctx, history))
		assert.NotZero(t, history.ID)
		assert.False(t, history.CreatedAt.IsZero())
	})

	t.Run("record with nil metadata", func(t *testing.T) {
		history := testutil.CreateTestBalanceHistory(123456, 101000, -500, entities.TransactionTypeDeposit)

		require.NoError(t, repo.Record(ctx, history))
		assert.NotZero(t, history.ID)
	})

	t.Run("duplicate claim id is rejected", func(t *testing.T) {
		claimID := uuid.New()
		first := testutil.CreateTestBalanceHistory(777, 0, 2000000, entities.TransactionTypeWeeklyReward)
		first.ClaimID = &claimID
		require.NoError(t, repo.Record(ctx, first))

		second := testutil.CreateTestBalanceHistory(777, 2000000, 2000000, entities.TransactionTypeWeeklyReward)
		second.ClaimID = &claimID
		assert.Error(t, repo.Record(ctx, second))
	})
}

func TestBalanceHistoryRepository_GetByUser(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()

	t.Run("no history for user", func(t *testing.T) {
		histories, err := repo.GetByUser(ctx, 1, 10)
		require.NoError(t, err)
		assert.Empty(t, histories)
	})

	t.Run("newest first with claim ids and metadata", func(t *testing.T) {
		claimID := uuid.New()
		reward := testutil.CreateTestBalanceHistory(2, 0, 101000, entities.TransactionTypeDailyReward)
		reward.ClaimID = &claimID
		reward.TransactionMetadata = map[string]any{"streak": 1}
		require.NoError(t, repo.Record(ctx, reward))

		deposit := testutil.CreateTestBalanceHistory(2, 101000, -1000, entities.TransactionTypeDeposit)
		require.NoError(t, repo.Record(ctx, deposit))

		other := testutil.CreateTestBalanceHistory(3, 0, 5, entities.TransactionTypeAdjustment)
		require.NoError(t, repo.Record(ctx, other))

		histories, err := repo.GetByUser(ctx, 2, 10)
		require.NoError(t, err)
		require.Len(t, histories, 2)

		assert.Equal(t, entities.TransactionTypeDeposit, histories[0].TransactionType)
		assert.Nil(t, histories[0].ClaimID)
		assert.Equal(t, map[string]any{}, histories[0].TransactionMetadata)

		assert.Equal(t, entities.TransactionTypeDailyReward, histories[1].TransactionType)
		require.NotNil(t, histories[1].ClaimID)
		assert.Equal(t, claimID, *histories[1].ClaimID)
		assert.Equal(t, float64(1), histories[1].TransactionMetadata["streak"])
	})

	t.Run("limit is applied", func(t *testing.T) {
		histories, err := repo.GetByUser(ctx, 2, 1)
		require.NoError(t, err)
		assert.Len(t, histories, 1)
	})
}

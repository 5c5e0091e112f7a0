package repository

import (
	"context"
	"fmt"
	"time"

	"coinbot/database"
	"coinbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// DailyRewardRepository stores daily claim state
type DailyRewardRepository struct {
	q queryable
}

// NewDailyRewardRepository creates a daily reward repository on the pool
func NewDailyRewardRepository(db *database.DB) *DailyRewardRepository {
	return &DailyRewardRepository{q: db.Pool}
}

func newDailyRewardRepository(tx queryable) *DailyRewardRepository {
	return &DailyRewardRepository{q: tx}
}

// GetForUpdate creates the row with an epoch last claim if missing and locks it
func (r *DailyRewardRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.DailyRewardState, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO daily_rewards (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO NOTHING
	`, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily reward row for user %d: %w", discordID, err)
	}

	query := `
		SELECT discord_id, last_claimed, streak, total_claimed, updated_at
		FROM daily_rewards
		WHERE discord_id = $1
		FOR UPDATE
	`

	var s entities.DailyRewardState
	err = r.q.QueryRow(ctx, query, discordID).Scan(&s.DiscordID, &s.LastClaimed, &s.Streak, &s.TotalClaimed, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to lock daily reward state for user %d: %w", discordID, err)
	}
	return &s, nil
}

// Save writes the claim fields back
func (r *DailyRewardRepository) Save(ctx context.Context, state *entities.DailyRewardState) error {
	query := `
		UPDATE daily_rewards
		SET last_claimed = $2, streak = $3, total_claimed = $4, updated_at = NOW()
		WHERE discord_id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, state.DiscordID, state.LastClaimed, state.Streak, state.TotalClaimed).Scan(&state.UpdatedAt)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("daily reward state for user %d does not exist", state.DiscordID)
	}
	if err != nil {
		return fmt.Errorf("failed to save daily reward state for user %d: %w", state.DiscordID, err)
	}
	return nil
}

// GetStreaksExpiringBetween returns live streaks last claimed in [from, to)
func (r *DailyRewardRepository) GetStreaksExpiringBetween(ctx context.Context, from, to time.Time) ([]*entities.DailyRewardState, error) {
	query := `
		SELECT discord_id, last_claimed, streak, total_claimed, updated_at
		FROM daily_rewards
		WHERE last_claimed >= $1 AND last_claimed < $2 AND streak > 0
		ORDER BY discord_id
	`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query expiring streaks: %w", err)
	}

	states, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.DailyRewardState, error) {
		var s entities.DailyRewardState
		err := row.Scan(&s.DiscordID, &s.LastClaimed, &s.Streak, &s.TotalClaimed, &s.UpdatedAt)
		return &s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan expiring streaks: %w", err)
	}
	return states, nil
}

// WeeklyRewardRepository stores weekly claim state
type WeeklyRewardRepository struct {
	q queryable
}

// NewWeeklyRewardRepository creates a weekly reward repository on the pool
func NewWeeklyRewardRepository(db *database.DB) *WeeklyRewardRepository {
	return &WeeklyRewardRepository{q: db.Pool}
}

func newWeeklyRewardRepository(tx queryable) *WeeklyRewardRepository {
	return &WeeklyRewardRepository{q: tx}
}

// GetForUpdate creates the row with an epoch last claim if missing and locks it
func (r *WeeklyRewardRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.WeeklyRewardState, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO weekly_rewards (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO NOTHING
	`, discordID)
	if err != nil {
		return nil, fmt.Errorf("failed to create weekly reward row for user %d: %w", discordID, err)
	}

	query := `
		SELECT discord_id, last_claimed, total_claimed, updated_at
		FROM weekly_rewards
		WHERE discord_id = $1
		FOR UPDATE
	`

	var s entities.WeeklyRewardState
	err = r.q.QueryRow(ctx, query, discordID).Scan(&s.DiscordID, &s.LastClaimed, &s.TotalClaimed, &s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to lock weekly reward state for user %d: %w", discordID, err)
	}
	return &s, nil
}

// Save writes the claim fields back
func (r *WeeklyRewardRepository) Save(ctx context.Context, state *entities.WeeklyRewardState) error {
	query := `
		UPDATE weekly_rewards
		SET last_claimed = $2, total_claimed = $3, updated_at = NOW()
		WHERE discord_id = $1
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query, state.DiscordID, state.LastClaimed, state.TotalClaimed).Scan(&state.UpdatedAt)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("weekly reward state for user %d does not exist", state.DiscordID)
	}
	if err != nil {
		return fmt.Errorf("failed to save weekly reward state for user %d: %w", state.DiscordID, err)
	}
	return nil
}

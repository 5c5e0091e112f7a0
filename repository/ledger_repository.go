package repository

import (
	"context"
	"fmt"

	"coinbot/database"
	"coinbot/domain/entities"

	"github.com/jackc/pgx/v5"
)

const userBalanceColumns = `discord_id, balance, bank_balance, last_updated, created_at`

// LedgerRepository stores wallet and bank balances
type LedgerRepository struct {
	q queryable
}

// NewLedgerRepository creates a ledger repository on the pool
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

func newLedgerRepository(tx queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// GetOrCreate returns the user's balances, inserting a zero row first if needed
func (r *LedgerRepository) GetOrCreate(ctx context.Context, discordID int64) (*entities.UserBalance, error) {
	if err := r.ensure(ctx, discordID); err != nil {
		return nil, err
	}
	return r.get(ctx, discordID, `SELECT `+userBalanceColumns+` FROM user_balances WHERE discord_id = $1`)
}

// GetForUpdate returns the user's balances and holds a row lock until the
// surrounding transaction ends
func (r *LedgerRepository) GetForUpdate(ctx context.Context, discordID int64) (*entities.UserBalance, error) {
	if err := r.ensure(ctx, discordID); err != nil {
		return nil, err
	}
	return r.get(ctx, discordID, `SELECT `+userBalanceColumns+` FROM user_balances WHERE discord_id = $1 FOR UPDATE`)
}

func (r *LedgerRepository) ensure(ctx context.Context, discordID int64) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_balances (discord_id)
		VALUES ($1)
		ON CONFLICT (discord_id) DO NOTHING
	`, discordID)
	if err != nil {
		return fmt.Errorf("failed to create balance row for user %d: %w", discordID, err)
	}
	return nil
}

func (r *LedgerRepository) get(ctx context.Context, discordID int64, query string) (*entities.UserBalance, error) {
	var b entities.UserBalance
	err := r.q.QueryRow(ctx, query, discordID).Scan(
		&b.DiscordID,
		&b.Balance,
		&b.BankBalance,
		&b.LastUpdated,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance for user %d: %w", discordID, err)
	}
	return &b, nil
}

// AddBalance adds delta to the wallet in a single upsert
func (r *LedgerRepository) AddBalance(ctx context.Context, discordID int64, delta int64) (int64, error) {
	query := `
		INSERT INTO user_balances (discord_id, balance)
		VALUES ($1, $2)
		ON CONFLICT (discord_id) DO UPDATE
		SET balance = user_balances.balance + EXCLUDED.balance,
		    last_updated = NOW()
		RETURNING balance
	`

	var balance int64
	if err := r.q.QueryRow(ctx, query, discordID, delta).Scan(&balance); err != nil {
		return 0, fmt.Errorf("failed to add %d to wallet of user %d: %w", delta, discordID, err)
	}
	return balance, nil
}

// AddBankBalance adds delta to the bank in a single upsert. A positive delta
// never lifts the bank above maxBank, and a bank already above a lowered cap
// is left where it is.
func (r *LedgerRepository) AddBankBalance(ctx context.Context, discordID int64, delta int64, maxBank int64) (int64, error) {
	query := `
		INSERT INTO user_balances (discord_id, bank_balance)
		VALUES ($1, CASE WHEN $2::bigint > 0 THEN LEAST($2::bigint, GREATEST($3::bigint, 0)) ELSE $2::bigint END)
		ON CONFLICT (discord_id) DO UPDATE
		SET bank_balance = CASE
		        WHEN $2::bigint > 0
		        THEN LEAST(user_balances.bank_balance + $2::bigint, GREATEST($3::bigint, user_balances.bank_balance))
		        ELSE user_balances.bank_balance + $2::bigint
		    END,
		    last_updated = NOW()
		RETURNING bank_balance
	`

	var bank int64
	if err := r.q.QueryRow(ctx, query, discordID, delta, maxBank).Scan(&bank); err != nil {
		return 0, fmt.Errorf("failed to add %d to bank of user %d: %w", delta, discordID, err)
	}
	return bank, nil
}

// CountRankedAbove counts users ordered before the given user by
// (balance desc, discord_id asc)
func (r *LedgerRepository) CountRankedAbove(ctx context.Context, discordID int64, balance int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM user_balances
		WHERE balance > $2 OR (balance = $2 AND discord_id < $1)
	`

	var count int64
	if err := r.q.QueryRow(ctx, query, discordID, balance).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users ranked above %d: %w", discordID, err)
	}
	return count, nil
}

// GetTopBalances returns the richest wallets in rank order
func (r *LedgerRepository) GetTopBalances(ctx context.Context, limit int) ([]*entities.UserBalance, error) {
	query := `
		SELECT ` + userBalanceColumns + `
		FROM user_balances
		ORDER BY balance DESC, discord_id ASC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top balances: %w", err)
	}

	balances, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entities.UserBalance, error) {
		var b entities.UserBalance
		err := row.Scan(&b.DiscordID, &b.Balance, &b.BankBalance, &b.LastUpdated, &b.CreatedAt)
		return &b, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan top balances: %w", err)
	}
	return balances, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"coinbot/application"
	"coinbot/database"
	"coinbot/domain/interfaces"
	"coinbot/events"

	"github.com/jackc/pgx/v5"
)

// QueryRecorder measures how long each transaction stays open
type QueryRecorder interface {
	MeasureDatabaseQuery(repository, method string) func()
}

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db                     *database.DB
	tx                     pgx.Tx
	ctx                    context.Context
	transactionalPublisher application.TransactionalEventPublisher
	recorder               QueryRecorder
	finishMeasure          func()

	ledgerRepo         interfaces.LedgerRepository
	dailyRewardRepo    interfaces.DailyRewardRepository
	weeklyRewardRepo   interfaces.WeeklyRewardRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
}

type unitOfWorkFactory struct {
	db       *database.DB
	bus      *events.Bus
	recorder QueryRecorder
}

// NewUnitOfWorkFactory creates a factory whose units of work flush committed
// events to bus. recorder may be nil.
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus, recorder QueryRecorder) application.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		bus:      bus,
		recorder: recorder,
	}
}

// Create returns a unit of work with its own transactional event buffer
func (f *unitOfWorkFactory) Create() application.UnitOfWork {
	return f.CreateWithPublisher(events.NewTransactionalBus(f.bus))
}

// CreateWithPublisher returns a unit of work that buffers into the given publisher
func (f *unitOfWorkFactory) CreateWithPublisher(publisher application.TransactionalEventPublisher) application.UnitOfWork {
	return &unitOfWork{
		db:                     f.db,
		transactionalPublisher: publisher,
		recorder:               f.recorder,
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	if u.recorder != nil {
		u.finishMeasure = u.recorder.MeasureDatabaseQuery("unit_of_work", "transaction")
	}

	u.ledgerRepo = newLedgerRepository(tx)
	u.dailyRewardRepo = newDailyRewardRepository(tx)
	u.weeklyRewardRepo = newWeeklyRewardRepository(tx)
	u.balanceHistoryRepo = newBalanceHistoryRepository(tx)

	return nil
}

// Commit commits the transaction and flushes buffered events
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	u.tx = nil
	u.finish()
	if err != nil {
		u.transactionalPublisher.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.transactionalPublisher.Flush(u.ctx)
	return nil
}

// Rollback rolls back the transaction and drops buffered events. It is safe
// to call after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.finish()
	u.transactionalPublisher.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) finish() {
	if u.finishMeasure != nil {
		u.finishMeasure()
		u.finishMeasure = nil
	}
}

// LedgerRepository returns the ledger repository for this unit of work
func (u *unitOfWork) LedgerRepository() interfaces.LedgerRepository {
	if u.ledgerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.ledgerRepo
}

// DailyRewardRepository returns the daily reward repository for this unit of work
func (u *unitOfWork) DailyRewardRepository() interfaces.DailyRewardRepository {
	if u.dailyRewardRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.dailyRewardRepo
}

// WeeklyRewardRepository returns the weekly reward repository for this unit of work
func (u *unitOfWork) WeeklyRewardRepository() interfaces.WeeklyRewardRepository {
	if u.weeklyRewardRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.weeklyRewardRepo
}

// BalanceHistoryRepository returns the balance history repository for this unit of work
func (u *unitOfWork) BalanceHistoryRepository() interfaces.BalanceHistoryRepository {
	if u.balanceHistoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.balanceHistoryRepo
}

// EventBus returns the transactional event publisher for this unit of work
func (u *unitOfWork) EventBus() interfaces.EventPublisher {
	return u.transactionalPublisher
}

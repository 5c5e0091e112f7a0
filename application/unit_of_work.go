package application

import (
	"context"

	"coinbot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and then delivers buffered events
	Commit() error

	// Rollback rolls back the transaction and drops buffered events
	Rollback() error

	// Repository getters
	LedgerRepository() interfaces.LedgerRepository
	DailyRewardRepository() interfaces.DailyRewardRepository
	WeeklyRewardRepository() interfaces.WeeklyRewardRepository
	BalanceHistoryRepository() interfaces.BalanceHistoryRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// TransactionalEventPublisher buffers events until the owning transaction ends
type TransactionalEventPublisher interface {
	interfaces.EventPublisher
	Flush(ctx context.Context)
	Discard()
}

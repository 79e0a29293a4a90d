package repository

import (
	"context"
	"fmt"

	"levelbot/database"
	"levelbot/events"
	"levelbot/service"

	"github.com/jackc/pgx/v5"
)

// unitOfWork implements service.UnitOfWork around a single pgx
// transaction. Repositories created by Begin share the transaction, and
// events published during the work are flushed only on Commit.
type unitOfWork struct {
	db  *database.DB
	tx  pgx.Tx
	ctx context.Context

	transactionalBus *events.TransactionalBus
	userRepo         *UserRepository
}

type unitOfWorkFactory struct {
	db  *database.DB
	bus *events.Bus
}

// NewUnitOfWorkFactory creates a factory whose units of work publish
// committed events to the given bus.
func NewUnitOfWorkFactory(db *database.DB, bus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{db: db, bus: bus}
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.bus),
	}
}

// Begin starts the transaction and binds the repositories to it.
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("unit of work already started")
	}

	tx, err := u.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx
	u.userRepo = newUserRepositoryWithTx(tx)
	return nil
}

// Commit commits the transaction and flushes pending events.
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("unit of work not started")
	}

	if err := u.tx.Commit(u.ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	u.transactionalBus.Flush()
	return nil
}

// Rollback aborts the transaction and discards pending events. Safe to
// defer after Begin; it is a no-op once Commit has run.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()
	if err != nil && err != pgx.ErrTxClosed {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

func (u *unitOfWork) UserRepository() service.UserRepository {
	if u.userRepo == nil {
		panic("unit of work not started, call Begin first")
	}
	return u.userRepo
}

func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}

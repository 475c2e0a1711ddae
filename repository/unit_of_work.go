package repository

import (
	"context"
	"errors"
	"fmt"

	"ladder/database"
	"ladder/events"
	"ladder/service"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	db               *database.DB
	tx               pgx.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	rankingRepo      service.RankingRepository
	historyRepo      service.HistoryRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(db *database.DB, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		db:       db,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	db       *database.DB
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		db:               f.db,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
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

	u.rankingRepo = newRankingRepositoryWithTx(tx)
	u.historyRepo = newHistoryRepositoryWithTx(tx)

	return nil
}

// Commit commits the transaction and then delivers any events raised in it
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	err := u.tx.Commit(u.ctx)
	u.tx = nil
	if err != nil {
		if pending := u.transactionalBus.Pending(); pending > 0 {
			log.WithField("events", pending).Warn("Discarding events of failed commit")
		}
		u.transactionalBus.Discard()
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	pending := u.transactionalBus.Pending()
	if err := u.transactionalBus.Flush(u.ctx); err != nil {
		log.WithError(err).WithField("events", pending).Error("Failed to flush events after commit")
		return nil
	}
	if pending > 0 {
		log.WithField("events", pending).Debug("Delivered events after commit")
	}

	return nil
}

// Rollback rolls back the transaction. Safe to call after Commit.
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(u.ctx)
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// RankingRepository returns the ranking repository for this unit of work
func (u *unitOfWork) RankingRepository() service.RankingRepository {
	if u.rankingRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.rankingRepo
}

// HistoryRepository returns the match history repository for this unit of work
func (u *unitOfWork) HistoryRepository() service.HistoryRepository {
	if u.historyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.historyRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}

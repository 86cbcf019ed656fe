package postgres

import (
	"context"
	"database/sql"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"fmt"
)

type sqlUnitOfWork struct {
	db *sql.DB
	tx *sql.Tx
}

func NewUnitOfWork(db *sql.DB) port.UnitOfWork {
	return &sqlUnitOfWork{db: db}
}

func (u *sqlUnitOfWork) HistoryRepo() port.HistoryRepository {
	if u.tx != nil {
		return NewSqlHistoryRepository(u.tx)
	}
	return NewSqlHistoryRepository(u.db)
}

func (u *sqlUnitOfWork) ViewCountRepo() port.ViewCountRepository {
	if u.tx != nil {
		return NewSqlViewCountRepository(u.tx)
	}
	return NewSqlViewCountRepository(u.db)
}

func (u *sqlUnitOfWork) Execute(ctx context.Context, fn func(uow port.UnitOfWork) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %w", domain.ErrUnavailable, err)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	uowWithTx := &sqlUnitOfWork{db: u.db, tx: tx}

	if err := fn(uowWithTx); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit transaction: %w", domain.ErrUnavailable, err)
	}
	return nil
}

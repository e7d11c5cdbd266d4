package repository

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/clientdesk/internal/db"
)

// SQLiteStore is the Store backed by a SQLite database. Writes inside
// WithinTx share one transaction.
type SQLiteStore struct {
	q   db.DBTX
	uow db.UnitOfWork
	tx  bool
}

// NewSQLiteStore creates a store over database using a plain unit of work.
func NewSQLiteStore(database *sql.DB) *SQLiteStore {
	return NewSQLiteStoreWithUoW(database, db.NewSQLiteUnitOfWork(database))
}

// NewSQLiteStoreWithUoW lets callers substitute the transaction boundary,
// e.g. with a unit of work that injects failures.
func NewSQLiteStoreWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteStore {
	return &SQLiteStore{q: database, uow: uow}
}

func (s *SQLiteStore) Projects() ProjectRepo { return NewSQLiteProjectRepo(s.q) }

func (s *SQLiteStore) Leads() LeadRepo { return NewSQLiteLeadRepo(s.q) }

func (s *SQLiteStore) Requirements() ClientRequirementsRepo {
	return NewSQLiteClientRequirementsRepo(s.q)
}

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, st Store) error) error {
	if s.tx {
		// Already inside a transaction; join it.
		return fn(ctx, s)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &SQLiteStore{q: tx, uow: s.uow, tx: true})
	})
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// DBTX is the query surface shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner is a DBTX that can open transactions, such as a pool.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Store hands out repositories and scopes units of work to a transaction.
type Store interface {
	Users() UserRepository
	WithinTx(ctx context.Context, fn func(users UserRepository) error) error
}

type pgStore struct {
	db TxBeginner
}

// NewStore creates a Store backed by db (normally a *pgxpool.Pool).
func NewStore(db TxBeginner) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

// WithinTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back on error or panic.
func (s *pgStore) WithinTx(ctx context.Context, fn func(users UserRepository) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if err = fn(NewUserRepository(tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Printf("Error rolling back transaction: %v", err)
	}
}

func isUniqueViolation(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return pgErr, true
	}
	return nil, false
}

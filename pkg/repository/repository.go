// Package repository provides helpers shared by the SQL-backed persistence layers:
// transaction scoping, single and multi row queries, and PostgreSQL error mapping.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the registry reacts to.
const (
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// ErrNoRowsAffected is returned by ExecExpectOne when the statement touched nothing.
var ErrNoRowsAffected = errors.New("no rows affected")

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Querier is satisfied by *sql.DB and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ScanFunc maps a row onto T.
type ScanFunc[T any] func(s Scanner) (T, error)

// QueryOne runs q and scans exactly one row.
func QueryOne[T any](ctx context.Context, db Querier, q string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(db.QueryRowContext(ctx, q, args...))
}

// QueryMany runs q and scans every returned row.
func QueryMany[T any](ctx context.Context, db Querier, q string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ExecExpectOne runs q and fails with ErrNoRowsAffected unless exactly one row changed.
func ExecExpectOne(ctx context.Context, db Querier, q string, args ...any) error {
	res, err := db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrNoRowsAffected
	}
	return nil
}

// WithTx runs fn inside a transaction, committing on success and rolling back otherwise.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin tx: %w", err)
	}

	result, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit tx: %w", err)
	}
	return result, nil
}

// MapError converts sql.ErrNoRows and unique violations onto domain errors.
// Other errors are returned unchanged.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, ErrNoRowsAffected) {
		return notFound
	}
	if Code(err) == CodeUniqueViolation {
		return duplicate
	}
	return err
}

// Code returns the PostgreSQL error code carried by err, or "".
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether err is a transient concurrency failure that a
// fresh transaction may not hit again.
func IsRetryable(err error) bool {
	switch Code(err) {
	case CodeUniqueViolation, CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}
	return false
}

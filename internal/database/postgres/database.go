// Package postgres implements the database interface on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/repository"
)

// DB stores the registry in PostgreSQL. Read-modify-write operations hold a
// row lock on the identity for the duration of their transaction.
type DB struct {
	conn *sql.DB
}

// New returns a database on top of an open connection pool. The schema is
// expected to be migrated.
func New(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Close is a no-op; the pool belongs to the database system that opened it.
func (d *DB) Close() error {
	return nil
}

func lockDocument(ctx context.Context, tx *sql.Tx, id string) (*database.DocumentInfo, error) {
	q, args := documentQuery(id)
	doc, err := repository.QueryOne(ctx, tx, q+" FOR UPDATE", args, scanDocument)
	if err != nil {
		return nil, mapDocumentError(id, err)
	}
	return doc, nil
}

func mapDocumentError(id string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("document %s: %w", id, database.ErrDocumentNotFound)
	}
	return fmt.Errorf("find document: %w", err)
}

// mapVersionError reports write races on the version chain as conflicts.
func mapVersionError(err error) error {
	if repository.IsRetryable(err) {
		return fmt.Errorf("%w: %v", database.ErrVersionConflict, err)
	}
	return err
}

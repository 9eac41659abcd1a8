package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/query"
	"github.com/JaimeStill/document-registry/pkg/repository"
)

// CreateUsageRight inserts a usage right and sets the document indicator to true.
func (d *DB) CreateUsageRight(ctx context.Context, right *database.UsageRightInfo) error {
	_, err := repository.WithTx(ctx, d.conn, func(tx *sql.Tx) (struct{}, error) {
		if _, err := lockDocument(ctx, tx, right.DocumentID); err != nil {
			return struct{}{}, err
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO usage_rights (id, document_id, startdatum, einddatum, omschrijving_voorwaarden)
			VALUES ($1, $2, $3, $4, $5)`,
			right.ID, right.DocumentID, right.Startdatum, right.Einddatum, right.OmschrijvingVoorwaarden,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("insert usage right: %w", err)
		}

		return struct{}{}, repository.ExecExpectOne(ctx, tx,
			`UPDATE documents SET indicatie_gebruiksrecht = TRUE WHERE id = $1`, right.DocumentID,
		)
	})
	return err
}

func (d *DB) FindUsageRight(ctx context.Context, id string) (*database.UsageRightInfo, error) {
	q, args := query.NewBuilder(usageRightProjection, "ID").BuildSingle("ID", id)
	right, err := repository.QueryOne(ctx, d.conn, q, args, scanUsageRight)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("usage right %s: %w", id, database.ErrUsageRightNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find usage right: %w", err)
	}
	return right, nil
}

func (d *DB) ListUsageRights(ctx context.Context, filter database.UsageRightFilter) ([]*database.UsageRightInfo, error) {
	q, args := query.NewBuilder(usageRightProjection, "Startdatum").
		WhereEquals("DocumentID", filter.DocumentID).
		WhereCompare("Startdatum", query.OpLT, filter.StartdatumLT).
		WhereCompare("Startdatum", query.OpLTE, filter.StartdatumLTE).
		WhereCompare("Startdatum", query.OpGT, filter.StartdatumGT).
		WhereCompare("Startdatum", query.OpGTE, filter.StartdatumGTE).
		WhereCompare("Einddatum", query.OpLT, filter.EinddatumLT).
		WhereCompare("Einddatum", query.OpLTE, filter.EinddatumLTE).
		WhereCompare("Einddatum", query.OpGT, filter.EinddatumGT).
		WhereCompare("Einddatum", query.OpGTE, filter.EinddatumGTE).
		BuildAll()

	rights, err := repository.QueryMany(ctx, d.conn, q, args, scanUsageRight)
	if err != nil {
		return nil, fmt.Errorf("list usage rights: %w", err)
	}
	return rights, nil
}

// UpdateUsageRight replaces the mutable fields of a usage right. The
// document reference is kept.
func (d *DB) UpdateUsageRight(ctx context.Context, right *database.UsageRightInfo) error {
	err := repository.ExecExpectOne(ctx, d.conn,
		`UPDATE usage_rights SET startdatum = $2, einddatum = $3, omschrijving_voorwaarden = $4 WHERE id = $1`,
		right.ID, right.Startdatum, right.Einddatum, right.OmschrijvingVoorwaarden,
	)
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return fmt.Errorf("usage right %s: %w", right.ID, database.ErrUsageRightNotFound)
	}
	if err != nil {
		return fmt.Errorf("update usage right: %w", err)
	}
	return nil
}

// DeleteUsageRight removes a usage right and clears the document indicator
// when it was the last one.
func (d *DB) DeleteUsageRight(ctx context.Context, id string) error {
	_, err := repository.WithTx(ctx, d.conn, func(tx *sql.Tx) (struct{}, error) {
		var documentID string
		err := tx.QueryRowContext(ctx,
			`DELETE FROM usage_rights WHERE id = $1 RETURNING document_id`, id,
		).Scan(&documentID)
		if errors.Is(err, sql.ErrNoRows) {
			return struct{}{}, fmt.Errorf("usage right %s: %w", id, database.ErrUsageRightNotFound)
		}
		if err != nil {
			return struct{}{}, fmt.Errorf("delete usage right: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE documents SET indicatie_gebruiksrecht = NULL
			WHERE id = $1 AND NOT EXISTS (SELECT 1 FROM usage_rights WHERE document_id = $1)`,
			documentID,
		)
		if err != nil {
			return struct{}{}, fmt.Errorf("clear indicator: %w", err)
		}
		return struct{}{}, nil
	})
	return err
}

func (d *DB) CountUsageRights(ctx context.Context, documentID string) (int, error) {
	q, args := query.NewBuilder(usageRightProjection, "ID").
		WhereEquals("DocumentID", documentID).
		BuildCount()

	var count int
	if err := d.conn.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count usage rights: %w", err)
	}
	return count, nil
}

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

func (d *DB) CreateAuditTrail(ctx context.Context, entry *database.AuditTrailInfo) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO audit_trails (
			id, document_id, bron, applicatie_id, applicatie_weergave, gebruikers_id,
			gebruikers_weergave, actie, actie_weergave, resultaat, hoofd_object, resource,
			resource_url, resource_weergave, toelichting, aanmaakdatum, oud, nieuw
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		entry.ID,
		entry.DocumentID,
		entry.Bron,
		entry.ApplicatieID,
		entry.ApplicatieWeergave,
		entry.GebruikersID,
		entry.GebruikersWeergave,
		entry.Actie,
		entry.ActieWeergave,
		entry.Resultaat,
		entry.HoofdObject,
		entry.Resource,
		entry.ResourceURL,
		entry.ResourceWeergave,
		entry.Toelichting,
		entry.AanmaakDatum,
		jsonb(entry.Oud),
		jsonb(entry.Nieuw),
	)
	if err != nil {
		return fmt.Errorf("insert audit trail: %w", err)
	}
	return nil
}

// ListAuditTrails returns the audit entries of a document, oldest first.
func (d *DB) ListAuditTrails(ctx context.Context, documentID string) ([]*database.AuditTrailInfo, error) {
	q, args := query.NewBuilder(auditTrailProjection, "AanmaakDatum").
		WhereEquals("DocumentID", documentID).
		BuildAll()

	entries, err := repository.QueryMany(ctx, d.conn, q, args, scanAuditTrail)
	if err != nil {
		return nil, fmt.Errorf("list audit trails: %w", err)
	}
	return entries, nil
}

func (d *DB) FindAuditTrail(ctx context.Context, documentID, id string) (*database.AuditTrailInfo, error) {
	q, args := query.NewBuilder(auditTrailProjection, "AanmaakDatum").
		WhereEquals("ID", id).
		WhereEquals("DocumentID", documentID).
		BuildAll()

	entry, err := repository.QueryOne(ctx, d.conn, q, args, scanAuditTrail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("audit trail %s: %w", id, database.ErrAuditTrailNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find audit trail: %w", err)
	}
	return entry, nil
}

// jsonb passes a nil document as SQL NULL.
func jsonb(raw []byte) any {
	if raw == nil {
		return nil
	}
	return string(raw)
}

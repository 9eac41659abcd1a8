package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/pagination"
	"github.com/JaimeStill/document-registry/pkg/query"
	"github.com/JaimeStill/document-registry/pkg/repository"
)

const insertVersionSQL = `
	INSERT INTO document_versions (
		document_id, version, begin_registratie, identificatie, bronorganisatie,
		creatiedatum, titel, vertrouwelijkheidaanduiding, auteur, status, formaat,
		taal, bestandsnaam, link, beschrijving, ontvangstdatum, verzenddatum,
		ondertekening_soort, ondertekening_datum, integriteit_algoritme,
		integriteit_waarde, integriteit_datum, informatieobjecttype, content_key,
		bestandsomvang, paginas
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26
	)`

func documentQuery(id string) (string, []any) {
	return query.NewBuilder(documentProjection, "ID").BuildSingle("ID", id)
}

func insertVersion(ctx context.Context, tx *sql.Tx, id string, v *database.VersionInfo) error {
	var (
		ondSoort, intAlg, intWaarde sql.NullString
		ondDatum, intDatum          any
	)
	if v.Ondertekening != nil {
		ondSoort = sql.NullString{String: v.Ondertekening.Soort, Valid: true}
		if v.Ondertekening.Datum != nil {
			ondDatum = *v.Ondertekening.Datum
		}
	}
	if v.Integriteit != nil {
		intAlg = sql.NullString{String: v.Integriteit.Algoritme, Valid: true}
		intWaarde = sql.NullString{String: v.Integriteit.Waarde, Valid: true}
		if v.Integriteit.Datum != nil {
			intDatum = *v.Integriteit.Datum
		}
	}

	var ontvangst, verzend any
	if v.Ontvangstdatum != nil {
		ontvangst = *v.Ontvangstdatum
	}
	if v.Verzenddatum != nil {
		verzend = *v.Verzenddatum
	}

	var paginas any
	if v.Paginas != nil {
		paginas = *v.Paginas
	}

	_, err := tx.ExecContext(ctx, insertVersionSQL,
		id,
		v.Versie,
		v.BeginRegistratie,
		v.Identificatie,
		v.Bronorganisatie,
		v.Creatiedatum,
		v.Titel,
		v.Vertrouwelijkheidaanduiding,
		v.Auteur,
		v.Status,
		v.Formaat,
		v.Taal,
		v.Bestandsnaam,
		v.Link,
		v.Beschrijving,
		ontvangst,
		verzend,
		ondSoort,
		ondDatum,
		intAlg,
		intWaarde,
		intDatum,
		v.Informatieobjecttype,
		v.ContentKey,
		v.Bestandsomvang,
		paginas,
	)
	return err
}

// CreateDocument inserts a new identity together with its first version.
func (d *DB) CreateDocument(ctx context.Context, doc *database.DocumentInfo, first *database.VersionInfo) error {
	_, err := repository.WithTx(ctx, d.conn, func(tx *sql.Tx) (struct{}, error) {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, lock, latest_version, indicatie_gebruiksrecht, created_at)
			VALUES ($1, '', $2, $3, $4)`,
			doc.ID, first.Versie, first.IndicatieGebruiksrecht, doc.CreatedAt,
		)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, insertVersion(ctx, tx, doc.ID, first)
	})
	if err != nil {
		return fmt.Errorf("create document %s: %w", doc.ID, mapVersionError(err))
	}
	return nil
}

// FindDocumentInfo returns the identity row.
func (d *DB) FindDocumentInfo(ctx context.Context, id string) (*database.DocumentInfo, error) {
	q, args := documentQuery(id)
	doc, err := repository.QueryOne(ctx, d.conn, q, args, scanDocument)
	if err != nil {
		return nil, mapDocumentError(id, err)
	}
	return doc, nil
}

// AppendVersion locks the identity row, passes the latest version to build
// and stores the result as the new latest version.
func (d *DB) AppendVersion(ctx context.Context, id string, build database.VersionBuilder) (*database.VersionInfo, error) {
	next, err := repository.WithTx(ctx, d.conn, func(tx *sql.Tx) (*database.VersionInfo, error) {
		doc, err := lockDocument(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		latest, err := findVersion(ctx, tx, id, doc.LatestVersion)
		if err != nil {
			return nil, err
		}

		next, err := build(latest)
		if err != nil {
			return nil, err
		}

		if err := insertVersion(ctx, tx, id, next); err != nil {
			return nil, fmt.Errorf("insert version %d of %s: %w", next.Versie, id, mapVersionError(err))
		}

		err = repository.ExecExpectOne(ctx, tx,
			`UPDATE documents SET latest_version = $2, indicatie_gebruiksrecht = $3 WHERE id = $1`,
			id, next.Versie, next.IndicatieGebruiksrecht,
		)
		if err != nil {
			return nil, fmt.Errorf("update document: %w", err)
		}

		return findVersion(ctx, tx, id, next.Versie)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// UpdateLock locks the identity row and replaces its lock token with the
// value produced by mutate.
func (d *DB) UpdateLock(ctx context.Context, id string, mutate database.LockMutator) (*database.DocumentInfo, error) {
	return repository.WithTx(ctx, d.conn, func(tx *sql.Tx) (*database.DocumentInfo, error) {
		doc, err := lockDocument(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		token, err := mutate(doc.Lock)
		if err != nil {
			return nil, err
		}
		if token == doc.Lock {
			return doc, nil
		}

		if err := repository.ExecExpectOne(ctx, tx, `UPDATE documents SET lock = $2 WHERE id = $1`, id, token); err != nil {
			return nil, fmt.Errorf("update lock: %w", err)
		}
		doc.Lock = token
		return doc, nil
	})
}

// DeleteDocument removes the identity; versions and usage rights follow by cascade.
func (d *DB) DeleteDocument(ctx context.Context, id string) error {
	err := repository.ExecExpectOne(ctx, d.conn, `DELETE FROM documents WHERE id = $1`, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNoRowsAffected):
		return fmt.Errorf("document %s: %w", id, database.ErrDocumentNotFound)
	case repository.Code(err) == repository.CodeForeignKeyViolation:
		return fmt.Errorf("delete document %s: %w", id, database.ErrPendingRelations)
	default:
		return fmt.Errorf("delete document: %w", err)
	}
}

// FindLatestVersion returns the version the identity points at.
func (d *DB) FindLatestVersion(ctx context.Context, id string) (*database.VersionInfo, error) {
	q, args := query.NewBuilder(latestProjection, "Versie").
		WhereEquals("DocumentID", id).
		BuildAll()

	v, err := repository.QueryOne(ctx, d.conn, q, args, scanVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("document %s: %w", id, database.ErrDocumentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find latest version: %w", err)
	}
	return v, nil
}

// FindVersion returns the version with exactly the given number.
func (d *DB) FindVersion(ctx context.Context, id string, versie int) (*database.VersionInfo, error) {
	if _, err := d.FindDocumentInfo(ctx, id); err != nil {
		return nil, err
	}
	return findVersion(ctx, d.conn, id, versie)
}

// FindVersionAsOf returns the version with the greatest registration time not after t.
func (d *DB) FindVersionAsOf(ctx context.Context, id string, t time.Time) (*database.VersionInfo, error) {
	if _, err := d.FindDocumentInfo(ctx, id); err != nil {
		return nil, err
	}

	q, args := query.NewBuilder(versionProjection, "Versie").
		WhereEquals("DocumentID", id).
		WhereCompare("BeginRegistratie", query.OpLTE, t).
		OrderByFields([]query.SortField{
			{Field: "BeginRegistratie", Descending: true},
			{Field: "Versie", Descending: true},
		}).
		BuildPage(1, 1)

	v, err := repository.QueryOne(ctx, d.conn, q, args, scanVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("version of %s as of %s: %w", id, t.Format(time.RFC3339Nano), database.ErrVersionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find version as of: %w", err)
	}
	return v, nil
}

// ListVersions returns every version of a document in ascending order.
func (d *DB) ListVersions(ctx context.Context, id string) ([]*database.VersionInfo, error) {
	if _, err := d.FindDocumentInfo(ctx, id); err != nil {
		return nil, err
	}

	q, args := query.NewBuilder(versionProjection, "Versie").
		WhereEquals("DocumentID", id).
		BuildAll()

	versions, err := repository.QueryMany(ctx, d.conn, q, args, scanVersion)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	return versions, nil
}

// ListLatestVersions returns the latest version of each matching document in creation order.
func (d *DB) ListLatestVersions(
	ctx context.Context,
	filter database.VersionFilter,
	page pagination.PageRequest,
) ([]*database.VersionInfo, int, error) {
	qb := query.NewBuilder(latestProjection, "d.seq").
		WhereEquals("Identificatie", filter.Identificatie).
		WhereEquals("Bronorganisatie", filter.Bronorganisatie).
		OrderByFields(latestOrder)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := d.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count versions: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	versions, err := repository.QueryMany(ctx, d.conn, pageSQL, pageArgs, scanVersion)
	if err != nil {
		return nil, 0, fmt.Errorf("list latest versions: %w", err)
	}
	return versions, total, nil
}

func findVersion(ctx context.Context, db repository.Querier, id string, versie int) (*database.VersionInfo, error) {
	q, args := query.NewBuilder(versionProjection, "Versie").
		WhereEquals("DocumentID", id).
		WhereEquals("Versie", versie).
		BuildAll()

	v, err := repository.QueryOne(ctx, db, q, args, scanVersion)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("version %d of %s: %w", versie, id, database.ErrVersionNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find version: %w", err)
	}
	return v, nil
}

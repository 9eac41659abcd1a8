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

// CreateRelation inserts a relation.
func (d *DB) CreateRelation(ctx context.Context, rel *database.RelationInfo) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO object_relations (id, document_id, object_url, object_type, titel, beschrijving, registratiedatum)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rel.ID, rel.DocumentID, rel.Object, rel.ObjectType, rel.Titel, rel.Beschrijving, rel.Registratiedatum,
	)
	switch repository.Code(err) {
	case "":
		if err != nil {
			return fmt.Errorf("insert relation: %w", err)
		}
		return nil
	case repository.CodeUniqueViolation:
		return fmt.Errorf("relation %s -> %s: %w", rel.DocumentID, rel.Object, database.ErrRelationExists)
	case repository.CodeForeignKeyViolation:
		return fmt.Errorf("document %s: %w", rel.DocumentID, database.ErrDocumentNotFound)
	default:
		return fmt.Errorf("insert relation: %w", err)
	}
}

func (d *DB) FindRelation(ctx context.Context, id string) (*database.RelationInfo, error) {
	q, args := query.NewBuilder(relationProjection, "ID").BuildSingle("ID", id)
	rel, err := repository.QueryOne(ctx, d.conn, q, args, scanRelation)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("relation %s: %w", id, database.ErrRelationNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find relation: %w", err)
	}
	return rel, nil
}

func (d *DB) ListRelations(ctx context.Context, filter database.RelationFilter) ([]*database.RelationInfo, error) {
	q, args := query.NewBuilder(relationProjection, "Registratiedatum").
		WhereEquals("DocumentID", filter.DocumentID).
		WhereEquals("Object", filter.Object).
		OrderByFields([]query.SortField{{Field: "Registratiedatum"}, {Field: "ID"}}).
		BuildAll()

	rels, err := repository.QueryMany(ctx, d.conn, q, args, scanRelation)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	return rels, nil
}

func (d *DB) DeleteRelation(ctx context.Context, id string) error {
	err := repository.ExecExpectOne(ctx, d.conn, `DELETE FROM object_relations WHERE id = $1`, id)
	if errors.Is(err, repository.ErrNoRowsAffected) {
		return fmt.Errorf("relation %s: %w", id, database.ErrRelationNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete relation: %w", err)
	}
	return nil
}

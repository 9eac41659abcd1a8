package relations

import (
	"errors"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

// Domain errors for relation operations.
var (
	ErrNotFound             = faults.NotFound("not_found", "relation not found")
	ErrUnique               = faults.Conflict("unique", "the document is already related to this object")
	ErrDocumentDoesNotExist = faults.Validation("informatieobject", "does_not_exist", "the informatieobject does not exist")
	ErrRemoteRelation       = faults.Conflict("remote-relation-exists", "the relation still exists in the registry of the object")
)

func mapError(op string, err error) error {
	var f *faults.Error
	switch {
	case errors.As(err, &f):
		return err
	case errors.Is(err, database.ErrRelationNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrRelationExists):
		return ErrUnique
	case errors.Is(err, database.ErrDocumentNotFound):
		return ErrDocumentDoesNotExist
	}
	return faults.Backend("%s: %w", op, err)
}

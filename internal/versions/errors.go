package versions

import (
	"errors"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

// Domain errors for version operations.
var (
	ErrNotFound         = faults.NotFound("not_found", "document not found")
	ErrVersionNotFound  = faults.NotFound("not_found", "no version matches the requested version or registration time")
	ErrPendingRelations = faults.Conflict("pending-relations", "the document is still referenced by object relations")
)

// mapError classifies persistence errors. Errors that are already
// classified, such as those returned by a Builder, pass through.
func mapError(op string, err error) error {
	var f *faults.Error
	switch {
	case errors.As(err, &f):
		return err
	case errors.Is(err, database.ErrDocumentNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrVersionNotFound):
		return ErrVersionNotFound
	case errors.Is(err, database.ErrPendingRelations):
		return ErrPendingRelations
	}
	return faults.Backend("%s: %w", op, err)
}

package usagerights

import (
	"errors"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

var (
	ErrNotFound             = faults.NotFound("not_found", "usage right not found")
	ErrDocumentDoesNotExist = faults.Validation("informatieobject", "does_not_exist", "the informatieobject does not exist")
	ErrImmutableDocument    = faults.Validation("informatieobject", "wijzigen-niet-toegelaten", "the informatieobject of a usage right cannot change")
	ErrEndBeforeStart       = faults.Validation("einddatum", "date-mismatch", "einddatum must not precede startdatum")
)

func mapError(op string, err error) error {
	var f *faults.Error
	switch {
	case errors.As(err, &f):
		return err
	case errors.Is(err, database.ErrUsageRightNotFound):
		return ErrNotFound
	case errors.Is(err, database.ErrDocumentNotFound):
		return ErrDocumentDoesNotExist
	}
	return faults.Backend("%s: %w", op, err)
}

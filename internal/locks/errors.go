package locks

import (
	"errors"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

// Domain errors for lock operations. Unlocked and incorrect-lock-id errors
// concern the request as a whole and carry no field.
var (
	ErrNotFound        = faults.NotFound("not_found", "document not found")
	ErrExistingLock    = faults.Conflict("existing-lock", "the document is already locked")
	ErrUnlocked        = faults.Validation("", "unlocked", "the document is not locked; lock it before changing it")
	ErrIncorrectLockID = faults.Validation("", "incorrect-lock-id", "the lock id does not match the lock of the document")
)

func mapError(op string, err error) error {
	var f *faults.Error
	switch {
	case errors.As(err, &f):
		return err
	case errors.Is(err, database.ErrDocumentNotFound):
		return ErrNotFound
	}
	return faults.Backend("%s: %w", op, err)
}

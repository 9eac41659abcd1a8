package audit

import (
	"errors"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

var ErrNotFound = faults.NotFound("not_found", "audit trail not found")

func mapError(op string, err error) error {
	if errors.Is(err, database.ErrAuditTrailNotFound) {
		return ErrNotFound
	}
	return faults.Backend("%s: %w", op, err)
}

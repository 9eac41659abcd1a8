package documents

import (
	"errors"

	"github.com/JaimeStill/document-registry/internal/storage"
	"github.com/JaimeStill/document-registry/internal/versions"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

// Domain errors for document operations.
var (
	ErrNotFound           = versions.ErrNotFound
	ErrNoContent          = faults.NotFound("no-content", "the document version has no content")
	ErrInvalidForReceived = faults.Validation("ontvangstdatum", "invalid_for_received", "ontvangstdatum must be empty while the status is in_bewerking or ter_vaststelling")
	ErrExistingRights     = faults.Validation("indicatieGebruiksrecht", "existing-gebruiksrechten", "the indicator cannot be cleared while usage rights exist")
	ErrIdentificatieTaken = faults.Validation("identificatie", "identificatie-niet-uniek", "identificatie is already used within the bronorganisatie")
	ErrInvalidContent     = faults.Validation("inhoud", "invalid", "inhoud must be base64 encoded")
	ErrContentTooSmall    = faults.Validation("inhoud", "file-too-small", "inhoud is smaller than the minimum upload size")
	ErrContentTooLarge    = faults.Validation("inhoud", "file-too-large", "inhoud exceeds the maximum upload size")
	ErrInvalidPin         = faults.Validation("", "invalid-pin", "versie must be an integer and registratieOp an ISO 8601 timestamp")
)

func mapStorageError(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return faults.Backend("%s: content missing: %w", op, err)
	}
	return faults.Backend("%s: %w", op, err)
}

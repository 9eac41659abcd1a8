package documents

import (
	"slices"

	"github.com/JaimeStill/document-registry/internal/validation"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

// receivingStatuses may not be combined with an ontvangstdatum.
var receivingStatuses = []string{StatusInBewerking, StatusTerVaststelling}

// validate checks the attribute tags and the cross-field rules of f and
// reports every violation at once.
func validate(f Fields) error {
	var errs faults.List
	if err := validation.Struct(f); err != nil {
		entries := faults.Entries(err)
		if entries == nil {
			return err
		}
		errs = append(errs, entries...)
	}
	if f.Ontvangstdatum != nil && slices.Contains(receivingStatuses, f.Status) {
		errs = append(errs, ErrInvalidForReceived)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// clearsIndicator reports whether next drops an indicator that is
// currently true.
func clearsIndicator(current, next *bool) bool {
	return current != nil && *current && (next == nil || !*next)
}

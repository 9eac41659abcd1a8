// Package usagerights records the gebruiksrechten of documents. Their
// presence drives the indicatieGebruiksrecht of the document.
package usagerights

import "context"

// System defines the usage right operations.
type System interface {
	Create(ctx context.Context, cmd Command) (*UsageRight, error)
	Get(ctx context.Context, id string) (*UsageRight, error)
	List(ctx context.Context, filters Filters) ([]UsageRight, error)

	// Update replaces the mutable fields. The informatieobject cannot change.
	Update(ctx context.Context, id string, cmd Command) (*UsageRight, error)

	PartialUpdate(ctx context.Context, id string, cmd PatchCommand) (*UsageRight, error)

	// Delete removes a usage right; removing the last one resets the
	// indicator of the document to unknown.
	Delete(ctx context.Context, id string) error
}

// Package versions maintains the append-only version chain of every document
// identity. Versions are never changed in place: every update writes a new
// version numbered after the latest one.
package versions

import (
	"context"
	"time"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// Builder derives the fields of the next version from the latest one.
// Numbering and registration time are assigned by the System. A Builder
// may run more than once when an append is retried and must not have side
// effects beyond its return value.
type Builder func(latest *database.VersionInfo) (*database.VersionInfo, error)

// System defines the version chain operations.
type System interface {
	// Create registers a new identity with its first version. The identity
	// and identificatie are generated when absent.
	Create(ctx context.Context, first *database.VersionInfo) (*database.VersionInfo, error)

	// Append stores the version produced by build as the new latest version.
	Append(ctx context.Context, id string, build Builder) (*database.VersionInfo, error)

	Latest(ctx context.Context, id string) (*database.VersionInfo, error)

	// AtVersion returns exactly the requested version.
	AtVersion(ctx context.Context, id string, versie int) (*database.VersionInfo, error)

	// AsOf returns the version registered last at or before t.
	AsOf(ctx context.Context, id string, t time.Time) (*database.VersionInfo, error)

	// History returns every version of the identity, oldest first.
	History(ctx context.Context, id string) ([]*database.VersionInfo, error)

	// List returns a page of latest versions in identity creation order and the total match count.
	List(ctx context.Context, filter database.VersionFilter, page pagination.PageRequest) ([]*database.VersionInfo, int, error)

	// Delete removes the identity and its versions. It fails while relations reference it.
	Delete(ctx context.Context, id string) error
}

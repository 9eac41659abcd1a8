// Package relations registers the links between documents and the zaken
// and besluiten kept by other registries.
package relations

import "context"

// System defines the relation operations.
type System interface {
	// Create registers a relation. The (document, object) pair must be new.
	Create(ctx context.Context, cmd CreateCommand) (*Relation, error)

	Get(ctx context.Context, id string) (*Relation, error)

	List(ctx context.Context, filters Filters) ([]Relation, error)

	// Delete removes a relation unless the registry of the object still
	// holds its side of it.
	Delete(ctx context.Context, id string) error
}

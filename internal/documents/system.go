package documents

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// System defines the document registry operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	// Create registers a new document with its first version.
	Create(ctx context.Context, cmd Command) (*Document, error)

	// Update replaces every attribute of the document. The caller must hold the lock.
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*Document, error)

	// PartialUpdate changes the attributes present in cmd. The caller must hold the lock.
	PartialUpdate(ctx context.Context, id uuid.UUID, cmd PatchCommand) (*Document, error)

	// Delete removes the document, its versions and their content.
	Delete(ctx context.Context, id uuid.UUID) error

	Lock(ctx context.Context, id uuid.UUID) (string, error)

	// Unlock releases the lock. force skips the token check.
	Unlock(ctx context.Context, id uuid.UUID, token string, force bool) error

	Find(ctx context.Context, id uuid.UUID, pin Pin) (*Document, error)

	List(ctx context.Context, filters Filters, page pagination.PageRequest) ([]Document, int, error)

	// Download opens the content of the pinned version. The caller closes the reader.
	Download(ctx context.Context, id uuid.UUID, pin Pin) (*Document, io.ReadCloser, error)
}

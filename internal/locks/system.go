// Package locks implements the checkout protocol guarding document mutation.
// A document is either unlocked or holds exactly one opaque token; tokens
// never expire.
package locks

import "context"

// System defines the lock operations.
type System interface {
	// Lock issues a new token. It fails with ErrExistingLock when the document is locked.
	Lock(ctx context.Context, id string) (string, error)

	// Unlock releases the lock when token matches it. With force the lock is
	// released unconditionally. Unlocking an unlocked document succeeds.
	Unlock(ctx context.Context, id, token string, force bool) error

	// Assert reports whether token may mutate the document.
	Assert(ctx context.Context, id, token string) error

	// Status reports whether the document is locked.
	Status(ctx context.Context, id string) (bool, error)
}

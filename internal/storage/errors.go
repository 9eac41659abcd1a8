package storage

import "errors"

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")

	// ErrInvalidKey covers empty keys and keys escaping the base path.
	ErrInvalidKey = errors.New("storage: invalid key")

	// ErrNoBackends is returned when a fanout is built without any backend.
	ErrNoBackends = errors.New("storage: at least one backend required")
)

// Package storage holds document content. A System is an ordered list of
// backends: writes go to every backend, reads are served by the first
// backend that has the key.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/document-registry/pkg/lifecycle"
	"github.com/JaimeStill/document-registry/pkg/storage"
)

// Backend is a single content store.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Store saves the content read from r at key, replacing existing
	// content, and returns the number of bytes written.
	// Returns ErrInvalidKey if the key is empty or contains path traversal.
	Store(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a reader over the content at key.
	// Returns ErrNotFound if the key does not exist.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Size returns the content length at key.
	// Returns ErrNotFound if the key does not exist.
	Size(ctx context.Context, key string) (int64, error)

	// Delete deletes the content at key.
	// Returns nil if the key does not exist (idempotent).
	Delete(ctx context.Context, key string) error

	// Validate reports whether the key exists and is readable.
	Validate(ctx context.Context, key string) (bool, error)
}

// System is the content store used by the registry.
type System interface {
	Backend

	// Start registers lifecycle hooks with the coordinator.
	Start(lc *lifecycle.Coordinator) error
}

// New builds the configured backends in priority order.
func New(cfg *storage.Config, logger *slog.Logger) (System, error) {
	logger = logger.With("system", "storage")

	backends := make([]Backend, 0, len(cfg.Backends))
	for _, name := range cfg.Backends {
		switch name {
		case storage.BackendFilesystem:
			fs, err := NewFilesystem(cfg.BasePath, logger)
			if err != nil {
				return nil, err
			}
			backends = append(backends, fs)
		case storage.BackendMemory:
			backends = append(backends, NewMemory())
		default:
			return nil, fmt.Errorf("unknown storage backend %q", name)
		}
	}

	return NewFanout(logger, backends...)
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JaimeStill/document-registry/pkg/lifecycle"
)

// Fanout combines backends in priority order.
type Fanout struct {
	backends []Backend
	logger   *slog.Logger
}

// NewFanout returns a System over backends. At least one backend is required.
func NewFanout(logger *slog.Logger, backends ...Backend) (*Fanout, error) {
	if len(backends) == 0 {
		return nil, ErrNoBackends
	}
	return &Fanout{backends: backends, logger: logger}, nil
}

func (f *Fanout) Name() string {
	return "fanout"
}

func (f *Fanout) Start(lc *lifecycle.Coordinator) error {
	names := make([]string, len(f.backends))
	for i, b := range f.backends {
		names[i] = b.Name()
	}
	f.logger.Info("starting storage system", "backends", names)

	for _, b := range f.backends {
		if fs, ok := b.(*Filesystem); ok {
			if err := fs.Init(); err != nil {
				return err
			}
			f.logger.Info("storage directory initialized", "base_path", fs.basePath)
		}
	}

	return nil
}

// Store writes to the primary backend and replicates the stored content to
// the others. A failing replica fails the write and the key is removed from
// every backend written so far.
func (f *Fanout) Store(ctx context.Context, key string, r io.Reader) (int64, error) {
	primary := f.backends[0]

	n, err := primary.Store(ctx, key, r)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", primary.Name(), err)
	}

	for i, b := range f.backends[1:] {
		if err := f.replicate(ctx, primary, b, key); err != nil {
			f.rollback(ctx, key, f.backends[:i+2])
			return 0, fmt.Errorf("%s: %w", b.Name(), err)
		}
	}

	return n, nil
}

// rollback removes key from backends after a failed write. The failing
// backend is included since it may hold a partial copy.
func (f *Fanout) rollback(ctx context.Context, key string, backends []Backend) {
	ctx = context.WithoutCancel(ctx)
	for _, b := range backends {
		if err := b.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
			f.logger.Warn("rollback stored content", "backend", b.Name(), "key", key, "error", err)
		}
	}
}

func (f *Fanout) replicate(ctx context.Context, from, to Backend, key string) error {
	rc, err := from.Open(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = to.Store(ctx, key, rc)
	return err
}

// Open reads from the first backend that has the key.
func (f *Fanout) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	for _, b := range f.backends {
		rc, err := b.Open(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return rc, nil
	}
	return nil, ErrNotFound
}

func (f *Fanout) Size(ctx context.Context, key string) (int64, error) {
	for _, b := range f.backends {
		n, err := b.Size(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("%s: %w", b.Name(), err)
		}
		return n, nil
	}
	return 0, ErrNotFound
}

// Delete removes the key from every backend, reporting all failures.
func (f *Fanout) Delete(ctx context.Context, key string) error {
	var errs []error
	for _, b := range f.backends {
		if err := b.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func (f *Fanout) Validate(ctx context.Context, key string) (bool, error) {
	for _, b := range f.backends {
		ok, err := b.Validate(ctx, key)
		if err != nil {
			return false, fmt.Errorf("%s: %w", b.Name(), err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem stores content as files under a base path, with keys mapping
// directly to relative file paths.
type Filesystem struct {
	basePath string
	logger   *slog.Logger
}

// NewFilesystem creates a filesystem backend. The base path is resolved to
// an absolute path; the directory itself is created by Init.
func NewFilesystem(basePath string, logger *slog.Logger) (*Filesystem, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &Filesystem{
		basePath: absPath,
		logger:   logger,
	}, nil
}

func (f *Filesystem) Name() string {
	return "filesystem"
}

// Init creates the base directory.
func (f *Filesystem) Init() error {
	if err := os.MkdirAll(f.basePath, 0755); err != nil {
		return fmt.Errorf("create base_path: %w", err)
	}
	return nil
}

// Store writes to a temporary file next to the target and renames it into
// place, so readers never observe partial content.
func (f *Filesystem) Store(ctx context.Context, key string, r io.Reader) (int64, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return 0, err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	n, err := io.Copy(tmp, contextReader{ctx: ctx, r: r})
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, fmt.Errorf("rename temp file: %w", err)
	}

	return n, nil
}

func (f *Filesystem) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, mapFSError(err, "open file")
	}
	return file, nil
}

func (f *Filesystem) Size(ctx context.Context, key string) (int64, error) {
	path, err := f.fullPath(key)
	if err != nil {
		return 0, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, mapFSError(err, "stat file")
	}
	return info.Size(), nil
}

func (f *Filesystem) Delete(ctx context.Context, key string) error {
	path, err := f.fullPath(key)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return mapFSError(err, "remove file")
	}

	if dir != f.basePath && strings.HasPrefix(dir, f.basePath) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			f.logger.Warn("failed to read directory for cleanup", "dir", dir, "error", err)
			return nil
		}

		if len(entries) == 0 {
			if err := os.Remove(dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
				f.logger.Warn("failed to remove empty directory", "dir", dir, "error", err)
			}
		}
	}

	return nil
}

func (f *Filesystem) Validate(ctx context.Context, key string) (bool, error) {
	_, err := f.Size(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (f *Filesystem) fullPath(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", ErrInvalidKey
	}

	fullPath := filepath.Join(f.basePath, cleaned)

	if !strings.HasPrefix(fullPath, f.basePath+string(filepath.Separator)) {
		return "", ErrInvalidKey
	}

	return fullPath, nil
}

func mapFSError(err error, op string) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// contextReader stops a copy once ctx is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

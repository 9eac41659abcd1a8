package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// Memory keeps content in process memory. Content is lost on restart.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Name() string {
	return "memory"
}

func (m *Memory) Store(ctx context.Context, key string, r io.Reader) (int64, error) {
	if key == "" {
		return 0, ErrInvalidKey
	}

	data, err := io.ReadAll(contextReader{ctx: ctx, r: r})
	if err != nil {
		return 0, fmt.Errorf("read content: %w", err)
	}

	m.mu.Lock()
	m.blobs[key] = data
	m.mu.Unlock()

	return int64(len(data)), nil
}

func (m *Memory) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	data, ok := m.blobs[key]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *Memory) Size(_ context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return 0, ErrNotFound
	}
	return int64(len(data)), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.blobs, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Validate(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	_, ok := m.blobs[key]
	m.mu.RUnlock()
	return ok, nil
}

package storage_test

import (
	"os"
	"testing"

	"github.com/JaimeStill/document-registry/pkg/storage"
)

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := &storage.Config{}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.Backends) != 1 || cfg.Backends[0] != storage.BackendFilesystem {
		t.Errorf("Backends = %v, want [filesystem]", cfg.Backends)
	}
	if cfg.MaxUploadSizeBytes() != 100*1000*1000 {
		t.Errorf("MaxUploadSizeBytes() = %d", cfg.MaxUploadSizeBytes())
	}
	if cfg.MinUploadSizeBytes() != 0 {
		t.Errorf("MinUploadSizeBytes() = %d, want 0", cfg.MinUploadSizeBytes())
	}
}

func TestConfig_Finalize_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"unknown backend", storage.Config{Backends: []string{"cmis"}}},
		{"duplicate backend", storage.Config{Backends: []string{"memory", "memory"}}},
		{"bad size", storage.Config{MaxUploadSize: "lots"}},
		{"min above max", storage.Config{MinUploadSize: "2MB", MaxUploadSize: "1MB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() should fail")
			}
		})
	}
}

func TestConfig_Finalize_Env(t *testing.T) {
	os.Setenv("TEST_STORAGE_BACKENDS", "memory, filesystem")
	os.Setenv("TEST_STORAGE_MIN", "1KB")
	defer func() {
		os.Unsetenv("TEST_STORAGE_BACKENDS")
		os.Unsetenv("TEST_STORAGE_MIN")
	}()

	cfg := &storage.Config{}
	err := cfg.Finalize(&storage.Env{Backends: "TEST_STORAGE_BACKENDS", MinUploadSize: "TEST_STORAGE_MIN"})
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.Backends) != 2 || cfg.Backends[0] != storage.BackendMemory {
		t.Errorf("Backends = %v, want [memory filesystem]", cfg.Backends)
	}
	if cfg.MinUploadSizeBytes() != 1000 {
		t.Errorf("MinUploadSizeBytes() = %d, want 1000", cfg.MinUploadSizeBytes())
	}
}

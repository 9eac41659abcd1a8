package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/document-registry/internal/storage"
	"github.com/JaimeStill/document-registry/pkg/lifecycle"
	pkgstorage "github.com/JaimeStill/document-registry/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func readAll(t *testing.T, b storage.Backend, key string) string {
	t.Helper()
	rc, err := b.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("Open(%q) failed: %v", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %q: %v", key, err)
	}
	return string(data)
}

func TestNew_Backends(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		backends []string
		wantErr  bool
	}{
		{"filesystem", []string{pkgstorage.BackendFilesystem}, false},
		{"memory", []string{pkgstorage.BackendMemory}, false},
		{"both", []string{pkgstorage.BackendMemory, pkgstorage.BackendFilesystem}, false},
		{"unknown", []string{"cmis"}, true},
		{"none", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &pkgstorage.Config{Backends: tt.backends, BasePath: dir}
			_, err := storage.New(cfg, testLogger())
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "content")
	cfg := &pkgstorage.Config{Backends: []string{pkgstorage.BackendFilesystem}, BasePath: target}

	sys, err := storage.New(cfg, testLogger())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := sys.Start(lifecycle.New()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if _, err := os.Stat(target); err != nil {
		t.Errorf("Start() did not create storage directory: %v", err)
	}
}

func TestBackends_RoundTrip(t *testing.T) {
	fs, err := storage.NewFilesystem(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewFilesystem() failed: %v", err)
	}

	for _, b := range []storage.Backend{fs, storage.NewMemory()} {
		t.Run(b.Name(), func(t *testing.T) {
			ctx := context.Background()
			key := "doc-1/100"

			n, err := b.Store(ctx, key, strings.NewReader("hello world"))
			if err != nil {
				t.Fatalf("Store() failed: %v", err)
			}
			if n != 11 {
				t.Errorf("Store() size = %d, want 11", n)
			}

			if got := readAll(t, b, key); got != "hello world" {
				t.Errorf("content = %q, want %q", got, "hello world")
			}

			size, err := b.Size(ctx, key)
			if err != nil || size != 11 {
				t.Errorf("Size() = %d, %v, want 11", size, err)
			}

			if ok, _ := b.Validate(ctx, key); !ok {
				t.Error("Validate() = false after Store")
			}

			if err := b.Delete(ctx, key); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			if err := b.Delete(ctx, key); err != nil {
				t.Errorf("second Delete() = %v, want nil", err)
			}

			if _, err := b.Open(ctx, key); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Open() after delete = %v, want ErrNotFound", err)
			}
			if ok, _ := b.Validate(ctx, key); ok {
				t.Error("Validate() = true after Delete")
			}
		})
	}
}

func TestFilesystem_InvalidKeys(t *testing.T) {
	fs, err := storage.NewFilesystem(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("NewFilesystem() failed: %v", err)
	}

	keys := []string{"", "../escape", "/etc/passwd", "a/../../escape", "."}
	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			_, err := fs.Store(context.Background(), key, strings.NewReader("x"))
			if !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestFilesystem_StoreCanceled(t *testing.T) {
	dir := t.TempDir()
	fs, _ := storage.NewFilesystem(dir, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := fs.Store(ctx, "doc/100", strings.NewReader("content")); err == nil {
		t.Fatal("Store() with canceled context succeeded")
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "doc"))
	if len(entries) != 0 {
		t.Errorf("canceled Store() left %d files behind", len(entries))
	}
}

func TestFanout_WritesEverywhereReadsByPriority(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemory()
	replica := storage.NewMemory()

	f, err := storage.NewFanout(testLogger(), primary, replica)
	if err != nil {
		t.Fatalf("NewFanout() failed: %v", err)
	}

	if _, err := f.Store(ctx, "k", strings.NewReader("v1")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	if got := readAll(t, replica, "k"); got != "v1" {
		t.Errorf("replica content = %q, want v1", got)
	}

	primary.Delete(ctx, "k")
	if got := readAll(t, f, "k"); got != "v1" {
		t.Errorf("fallback content = %q, want v1", got)
	}

	primary.Store(ctx, "k", strings.NewReader("primary"))
	if got := readAll(t, f, "k"); got != "primary" {
		t.Errorf("priority content = %q, want primary", got)
	}

	if err := f.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	for _, b := range []storage.Backend{primary, replica} {
		if ok, _ := b.Validate(ctx, "k"); ok {
			t.Error("Delete() left content in a backend")
		}
	}

	if _, err := f.Size(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Size() = %v, want ErrNotFound", err)
	}
}

func TestNewFanout_RequiresBackend(t *testing.T) {
	if _, err := storage.NewFanout(testLogger()); !errors.Is(err, storage.ErrNoBackends) {
		t.Errorf("NewFanout() without backends = %v, want ErrNoBackends", err)
	}
}

type failingBackend struct {
	*storage.Memory
}

func (failingBackend) Name() string { return "failing" }

func (failingBackend) Store(context.Context, string, io.Reader) (int64, error) {
	return 0, errors.New("disk full")
}

func TestFanout_FailedReplicaRollsBack(t *testing.T) {
	ctx := context.Background()
	primary := storage.NewMemory()
	replica := storage.NewMemory()

	f, err := storage.NewFanout(testLogger(), primary, replica, failingBackend{storage.NewMemory()})
	if err != nil {
		t.Fatalf("NewFanout() failed: %v", err)
	}

	if _, err := f.Store(ctx, "k", strings.NewReader("v1")); err == nil {
		t.Fatal("Store() with a failing replica succeeded")
	}

	for _, b := range []storage.Backend{primary, replica} {
		if ok, _ := b.Validate(ctx, "k"); ok {
			t.Errorf("failed Store() left content in %s", b.Name())
		}
	}

	if _, err := f.Open(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Open() after failed Store() = %v, want ErrNotFound", err)
	}
}

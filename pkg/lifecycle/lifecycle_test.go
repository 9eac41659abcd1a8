package lifecycle_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/document-registry/pkg/lifecycle"
)

func TestCoordinator_ReadinessFollowsLifecycle(t *testing.T) {
	lc := lifecycle.New()
	if lc.Ready() {
		t.Fatal("new coordinator reports ready")
	}

	var started atomic.Int32
	for range 3 {
		lc.OnStartup(func() { started.Add(1) })
	}
	lc.WaitForStartup()

	if started.Load() != 3 {
		t.Errorf("startup hooks run = %d, want 3", started.Load())
	}
	if !lc.Ready() {
		t.Error("not ready after WaitForStartup")
	}

	if err := lc.Shutdown(time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if lc.Ready() {
		t.Error("still ready after Shutdown")
	}
}

func TestCoordinator_ShutdownHooksSeeCancellation(t *testing.T) {
	lc := lifecycle.New()

	var released atomic.Bool
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		released.Store(true)
	})

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if !released.Load() {
		t.Error("shutdown hook did not complete")
	}
	if lc.Context().Err() == nil {
		t.Error("context not cancelled after Shutdown")
	}
}

func TestCoordinator_ShutdownTimeout(t *testing.T) {
	lc := lifecycle.New()
	lc.OnShutdown(func() {
		<-lc.Context().Done()
		time.Sleep(500 * time.Millisecond)
	})

	if err := lc.Shutdown(50 * time.Millisecond); err == nil {
		t.Error("Shutdown() returned nil, want timeout error")
	}
}

package faults_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JaimeStill/document-registry/pkg/faults"
)

var errExistingLock = faults.Conflict("existing-lock", "document is already locked")

func TestError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same sentinel", errExistingLock, errExistingLock, true},
		{"wrapped sentinel", fmt.Errorf("lock: %w", errExistingLock), errExistingLock, true},
		{"kind sentinel", errExistingLock, faults.ErrConflict, true},
		{"other kind", errExistingLock, faults.ErrValidation, false},
		{"other code", faults.Conflict("unique", "dup"), errExistingLock, false},
		{"field copy keeps identity", errExistingLock.WithField("lock"), errExistingLock, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", faults.NotFound("not_found", "x"), http.StatusNotFound},
		{"validation", faults.Validation("titel", "required", "x"), http.StatusBadRequest},
		{"conflict", faults.Conflict("unique", "x"), http.StatusConflict},
		{"backend", faults.Backend("insert: %w", errors.New("down")), http.StatusInternalServerError},
		{"plain", errors.New("plain"), http.StatusInternalServerError},
		{"list", faults.List{faults.Validation("a", "b", "c")}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := faults.Status(tt.err); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestList_Err(t *testing.T) {
	var empty faults.List
	if empty.Err() != nil {
		t.Error("empty list Err() should be nil")
	}

	single := faults.List{errExistingLock}
	if single.Err() != errExistingLock {
		t.Error("single list Err() should return the member")
	}

	multi := faults.List{
		faults.Validation("titel", "required", "required"),
		faults.Validation("taal", "required", "required"),
	}
	err := multi.Err()
	if len(faults.Entries(err)) != 2 {
		t.Errorf("len(Entries()) = %d, want 2", len(faults.Entries(err)))
	}
	if !errors.Is(err, faults.ErrValidation) {
		t.Error("list should match validation sentinel")
	}
}

func TestBackend_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := faults.Backend("query versions: %w", cause)

	if !errors.Is(err, cause) {
		t.Error("backend error should unwrap to its cause")
	}
}

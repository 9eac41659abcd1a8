package locks

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/metrics"
)

// Lock operation labels.
const (
	OpLock        = "lock"
	OpUnlock      = "unlock"
	OpForceUnlock = "force_unlock"
)

type manager struct {
	db      database.Database
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a lock manager. m may be nil.
func New(db database.Database, logger *slog.Logger, m *metrics.Metrics) System {
	return &manager{
		db:      db,
		logger:  logger.With("system", "locks"),
		metrics: m,
	}
}

// NewToken returns 32 hexadecimal characters drawn from a random UUID.
func NewToken() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// Check validates token against the current lock of a document.
func Check(current, token string) error {
	if current == "" {
		return ErrUnlocked
	}
	if subtle.ConstantTimeCompare([]byte(current), []byte(token)) != 1 {
		return ErrIncorrectLockID
	}
	return nil
}

func (m *manager) Lock(ctx context.Context, id string) (string, error) {
	token := NewToken()

	_, err := m.db.UpdateLock(ctx, id, func(current string) (string, error) {
		if current != "" {
			return "", ErrExistingLock
		}
		return token, nil
	})
	if err != nil {
		if errors.Is(err, ErrExistingLock) {
			m.metrics.LockConflict()
		}
		return "", mapError("lock document", err)
	}

	m.metrics.LockOperation(OpLock)
	m.logger.Info("document locked", "id", id)
	return token, nil
}

func (m *manager) Unlock(ctx context.Context, id, token string, force bool) error {
	_, err := m.db.UpdateLock(ctx, id, func(current string) (string, error) {
		switch {
		case force, current == "":
			return "", nil
		case subtle.ConstantTimeCompare([]byte(current), []byte(token)) != 1:
			return current, ErrIncorrectLockID
		}
		return "", nil
	})
	if err != nil {
		return mapError("unlock document", err)
	}

	op := OpUnlock
	if force {
		op = OpForceUnlock
	}
	m.metrics.LockOperation(op)
	m.logger.Info("document unlocked", "id", id, "force", force)
	return nil
}

func (m *manager) Assert(ctx context.Context, id, token string) error {
	doc, err := m.db.FindDocumentInfo(ctx, id)
	if err != nil {
		return mapError("find document", err)
	}
	return Check(doc.Lock, token)
}

func (m *manager) Status(ctx context.Context, id string) (bool, error) {
	doc, err := m.db.FindDocumentInfo(ctx, id)
	if err != nil {
		return false, mapError("find document", err)
	}
	return doc.Lock != "", nil
}

// Package audit records every mutation of the registry and serves the
// audit trail of each document.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/auth"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/urls"
)

// Recorder stores audit entries for completed mutations.
type Recorder interface {
	// Record stores c. Failures are logged and never reported to the caller
	// because the mutation has already been committed.
	Record(ctx context.Context, c Change)
}

// System defines the audit trail operations.
type System interface {
	Recorder
	List(ctx context.Context, documentID string) ([]AuditTrail, error)
	Get(ctx context.Context, documentID, id string) (*AuditTrail, error)
}

type system struct {
	db     database.Database
	urls   urls.Builder
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the audit system.
type Option func(*system)

// WithClock replaces the time source of the aanmaakdatum.
func WithClock(now func() time.Time) Option {
	return func(s *system) {
		s.now = now
	}
}

// New creates the audit system.
func New(db database.Database, b urls.Builder, logger *slog.Logger, opts ...Option) System {
	s := &system{
		db:     db,
		urls:   b,
		logger: logger.With("system", "audit"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *system) Record(ctx context.Context, c Change) {
	entry := &database.AuditTrailInfo{
		ID:               uuid.NewString(),
		DocumentID:       c.DocumentID,
		Bron:             Bron,
		Actie:            c.Actie,
		ActieWeergave:    actieWeergave[c.Actie],
		Resultaat:        c.Resultaat,
		HoofdObject:      s.urls.Document(c.DocumentID),
		Resource:         c.Resource,
		ResourceURL:      c.ResourceURL,
		ResourceWeergave: c.ResourceWeergave,
		AanmaakDatum:     s.now().UTC().Truncate(time.Microsecond),
		Oud:              s.marshal(c.Oud),
		Nieuw:            s.marshal(c.Nieuw),
	}

	if claims := auth.FromContext(ctx); claims != nil {
		entry.ApplicatieID = claims.ClientID
		entry.ApplicatieWeergave = claims.ClientID
		entry.GebruikersID = claims.UserID
		entry.GebruikersWeergave = claims.UserRepresentation
	}

	if err := s.db.CreateAuditTrail(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("record audit trail", "error", err, "actie", c.Actie, "resource_url", c.ResourceURL)
	}
}

func (s *system) List(ctx context.Context, documentID string) ([]AuditTrail, error) {
	entries, err := s.db.ListAuditTrails(ctx, documentID)
	if err != nil {
		return nil, mapError("list audit trails", err)
	}

	trails := make([]AuditTrail, 0, len(entries))
	for _, e := range entries {
		trails = append(trails, toAuditTrail(s.urls, e))
	}
	return trails, nil
}

func (s *system) Get(ctx context.Context, documentID, id string) (*AuditTrail, error) {
	entry, err := s.db.FindAuditTrail(ctx, documentID, id)
	if err != nil {
		return nil, mapError("find audit trail", err)
	}

	trail := toAuditTrail(s.urls, entry)
	return &trail, nil
}

func (s *system) marshal(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("marshal audit snapshot", "error", err)
		return nil
	}
	return data
}

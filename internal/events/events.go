// Package events fans a completed mutation out to the notification
// service and the audit trail.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/JaimeStill/document-registry/internal/audit"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/urls"
)

// Event describes one committed mutation. Document is the latest version
// of the document the resource belongs to; it supplies the notification
// kenmerken and may be nil when unknown.
type Event struct {
	DocumentID       string
	Document         *database.VersionInfo
	Actie            string
	Resultaat        int
	Resource         string
	ResourceURL      string
	ResourceWeergave string
	Oud              any
	Nieuw            any
}

// Publisher sends the notification and records the audit entry of an event.
type Publisher struct {
	notifier notifications.Notifier
	recorder audit.Recorder
	urls     urls.Builder
	logger   *slog.Logger
	now      func() time.Time
}

// NewPublisher creates a Publisher.
func NewPublisher(n notifications.Notifier, r audit.Recorder, b urls.Builder, logger *slog.Logger) *Publisher {
	return &Publisher{
		notifier: n,
		recorder: r,
		urls:     b,
		logger:   logger.With("system", "events"),
		now:      time.Now,
	}
}

// Publish never fails; delivery problems are logged by the receivers.
func (p *Publisher) Publish(ctx context.Context, e Event) {
	p.notifier.Notify(notifications.Message{
		Kanaal:       notifications.Kanaal,
		HoofdObject:  p.urls.Document(e.DocumentID),
		Resource:     e.Resource,
		ResourceURL:  e.ResourceURL,
		Actie:        e.Actie,
		Aanmaakdatum: p.now().UTC(),
		Kenmerken:    Kenmerken(e.Document),
	})

	p.recorder.Record(ctx, audit.Change{
		DocumentID:       e.DocumentID,
		Actie:            e.Actie,
		Resultaat:        e.Resultaat,
		Resource:         e.Resource,
		ResourceURL:      e.ResourceURL,
		ResourceWeergave: e.ResourceWeergave,
		Oud:              e.Oud,
		Nieuw:            e.Nieuw,
	})

	p.logger.Debug("event published", "actie", e.Actie, "resource", e.Resource, "url", e.ResourceURL)
}

// Weergave returns the unique representation of a document version.
func Weergave(v *database.VersionInfo) string {
	if v == nil {
		return ""
	}
	return v.UniqueRepresentation()
}

// Kenmerken returns the notification filter attributes of a document version.
func Kenmerken(v *database.VersionInfo) map[string]string {
	if v == nil {
		return map[string]string{}
	}
	return map[string]string{
		"bronorganisatie":             v.Bronorganisatie,
		"informatieobjecttype":        v.Informatieobjecttype,
		"vertrouwelijkheidaanduiding": v.Vertrouwelijkheidaanduiding,
	}
}

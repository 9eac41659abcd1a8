package events_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/audit"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/urls"
)

type notifierStub struct {
	messages []notifications.Message
}

func (n *notifierStub) Notify(msg notifications.Message) bool {
	n.messages = append(n.messages, msg)
	return true
}

type recorderStub struct {
	changes []audit.Change
}

func (r *recorderStub) Record(_ context.Context, c audit.Change) {
	r.changes = append(r.changes, c)
}

func TestPublisher_Publish(t *testing.T) {
	n := &notifierStub{}
	r := &recorderStub{}
	b := urls.New("http://drc.example", "/api")
	p := events.NewPublisher(n, r, b, slog.New(slog.NewTextHandler(io.Discard, nil)))

	doc := &database.VersionInfo{
		DocumentID:                  "d1",
		Bronorganisatie:             "159351741",
		Informatieobjecttype:        "https://ztc.example/types/1",
		Vertrouwelijkheidaanduiding: "openbaar",
	}

	p.Publish(context.Background(), events.Event{
		DocumentID:  "d1",
		Document:    doc,
		Actie:       notifications.ActionCreate,
		Resultaat:   201,
		Resource:    notifications.ResourceRelation,
		ResourceURL: b.Relation("r1"),
		Nieuw:       map[string]string{"object": "x"},
	})

	require.Len(t, n.messages, 1)
	msg := n.messages[0]
	assert.Equal(t, notifications.Kanaal, msg.Kanaal)
	assert.Equal(t, b.Document("d1"), msg.HoofdObject)
	assert.Equal(t, b.Relation("r1"), msg.ResourceURL)
	assert.Equal(t, "159351741", msg.Kenmerken["bronorganisatie"])
	assert.Equal(t, "openbaar", msg.Kenmerken["vertrouwelijkheidaanduiding"])

	require.Len(t, r.changes, 1)
	assert.Equal(t, "d1", r.changes[0].DocumentID)
	assert.Equal(t, 201, r.changes[0].Resultaat)
}

func TestKenmerken_NilDocument(t *testing.T) {
	assert.Empty(t, events.Kenmerken(nil))
}

func TestWeergave(t *testing.T) {
	assert.Equal(t, "159351741 - DOC-1", events.Weergave(&database.VersionInfo{Bronorganisatie: "159351741", Identificatie: "DOC-1"}))
	assert.Empty(t, events.Weergave(nil))
}

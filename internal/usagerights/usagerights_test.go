package usagerights_test

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/audit"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/database/memory"
	"github.com/JaimeStill/document-registry/internal/database/testcases"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/internal/usagerights"
	"github.com/JaimeStill/document-registry/pkg/faults"
	"github.com/JaimeStill/document-registry/pkg/patch"
)

var builder = urls.New("http://drc.example", "/api/v1")

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

type fixture struct {
	sys      usagerights.System
	db       database.Database
	docID    string
	docURL   string
	notifier *notifierStub
	recorder *recorderStub
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := memory.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	doc, first := testcases.NewDocument("DOC-1")
	require.NoError(t, db.CreateDocument(context.Background(), doc, first))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		db:       db,
		docID:    doc.ID,
		docURL:   builder.Document(doc.ID),
		notifier: &notifierStub{},
		recorder: &recorderStub{},
	}
	publisher := events.NewPublisher(f.notifier, f.recorder, builder, logger)
	f.sys = usagerights.New(db, builder, publisher, nil, logger)
	return f
}

func at(day int) *time.Time {
	t := time.Date(2024, time.March, day, 9, 0, 0, 0, time.UTC)
	return &t
}

func idOf(u string) string {
	return u[strings.LastIndex(u, "/")+1:]
}

func (f *fixture) indicator(t *testing.T) *bool {
	t.Helper()
	info, err := f.db.FindDocumentInfo(context.Background(), f.docID)
	require.NoError(t, err)
	return info.IndicatieGebruiksrecht
}

func TestCreateAndDelete_TogglesIndicator(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	assert.Nil(t, f.indicator(t))

	first, err := f.sys.Create(ctx, usagerights.Command{
		Informatieobject:        f.docURL,
		Startdatum:              at(1),
		OmschrijvingVoorwaarden: "intern gebruik",
	})
	require.NoError(t, err)
	assert.Equal(t, f.docURL, first.Informatieobject)

	second, err := f.sys.Create(ctx, usagerights.Command{
		Informatieobject:        f.docURL,
		Startdatum:              at(2),
		Einddatum:               at(10),
		OmschrijvingVoorwaarden: "publicatie",
	})
	require.NoError(t, err)

	ind := f.indicator(t)
	require.NotNil(t, ind)
	assert.True(t, *ind)

	require.NoError(t, f.sys.Delete(ctx, idOf(first.URL)))
	ind = f.indicator(t)
	require.NotNil(t, ind)
	assert.True(t, *ind)

	require.NoError(t, f.sys.Delete(ctx, idOf(second.URL)))
	assert.Nil(t, f.indicator(t))

	require.Len(t, f.notifier.messages, 4)
	assert.Equal(t, notifications.ResourceUsageRight, f.notifier.messages[0].Resource)
	assert.Equal(t, notifications.ActionDestroy, f.notifier.messages[3].Actie)
	assert.Equal(t, "159351741 - DOC-1", f.recorder.changes[0].ResourceWeergave)
}

func TestCreate_Rejections(t *testing.T) {
	f := setup(t)

	tests := []struct {
		name  string
		cmd   usagerights.Command
		field string
		code  string
	}{
		{
			"missing startdatum",
			usagerights.Command{Informatieobject: f.docURL, OmschrijvingVoorwaarden: "x"},
			"startdatum", "required",
		},
		{
			"end before start",
			usagerights.Command{Informatieobject: f.docURL, Startdatum: at(5), Einddatum: at(4), OmschrijvingVoorwaarden: "x"},
			"einddatum", "date-mismatch",
		},
		{
			"unknown document",
			usagerights.Command{Informatieobject: builder.Document("8e8c7a4b-5f8e-4d2c-9c61-0f3b3ad1b2c4"), Startdatum: at(1), OmschrijvingVoorwaarden: "x"},
			"informatieobject", "does_not_exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.sys.Create(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, faults.ErrValidation)

			entries := faults.Entries(err)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.field, entries[0].Field)
			assert.Equal(t, tt.code, entries[0].Code)
		})
	}
}

func TestUpdate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	right, err := f.sys.Create(ctx, usagerights.Command{
		Informatieobject:        f.docURL,
		Startdatum:              at(1),
		Einddatum:               at(20),
		OmschrijvingVoorwaarden: "intern gebruik",
	})
	require.NoError(t, err)
	id := idOf(right.URL)

	t.Run("full update", func(t *testing.T) {
		got, err := f.sys.Update(ctx, id, usagerights.Command{
			Informatieobject:        f.docURL,
			Startdatum:              at(2),
			OmschrijvingVoorwaarden: "extern gebruik",
		})
		require.NoError(t, err)
		assert.Equal(t, "extern gebruik", got.OmschrijvingVoorwaarden)
		assert.Nil(t, got.Einddatum)
	})

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		got, err := f.sys.PartialUpdate(ctx, id, usagerights.PatchCommand{
			Einddatum: patch.Value(*at(15)),
		})
		require.NoError(t, err)
		assert.Equal(t, "extern gebruik", got.OmschrijvingVoorwaarden)
		require.NotNil(t, got.Einddatum)
		assert.True(t, at(15).Equal(*got.Einddatum))
		assert.True(t, at(2).Equal(got.Startdatum))
	})

	t.Run("partial update clears einddatum", func(t *testing.T) {
		got, err := f.sys.PartialUpdate(ctx, id, usagerights.PatchCommand{
			Einddatum: patch.Null[time.Time](),
		})
		require.NoError(t, err)
		assert.Nil(t, got.Einddatum)
	})

	t.Run("informatieobject is immutable", func(t *testing.T) {
		other, first := testcases.NewDocument("DOC-2")
		require.NoError(t, f.db.CreateDocument(ctx, other, first))

		_, err := f.sys.PartialUpdate(ctx, id, usagerights.PatchCommand{
			Informatieobject: patch.Value(builder.Document(other.ID)),
		})
		assert.ErrorIs(t, err, usagerights.ErrImmutableDocument)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := f.sys.Update(ctx, "8e8c7a4b-5f8e-4d2c-9c61-0f3b3ad1b2c4", usagerights.Command{})
		assert.ErrorIs(t, err, usagerights.ErrNotFound)
	})

	actions := make([]string, 0, len(f.notifier.messages))
	for _, m := range f.notifier.messages {
		actions = append(actions, m.Actie)
	}
	assert.Equal(t, []string{
		notifications.ActionCreate,
		notifications.ActionUpdate,
		notifications.ActionPartialUpdate,
		notifications.ActionPartialUpdate,
	}, actions)
}

func TestList_Filters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	for day := 1; day <= 3; day++ {
		_, err := f.sys.Create(ctx, usagerights.Command{
			Informatieobject:        f.docURL,
			Startdatum:              at(day),
			OmschrijvingVoorwaarden: "x",
		})
		require.NoError(t, err)
	}

	filters, err := usagerights.FiltersFromQuery(url.Values{
		"informatieobject": {f.docURL},
		"startdatum__gte":  {at(2).Format(time.RFC3339)},
	})
	require.NoError(t, err)

	rights, err := f.sys.List(ctx, filters)
	require.NoError(t, err)
	require.Len(t, rights, 2)
	assert.True(t, at(2).Equal(rights[0].Startdatum))

	filters, err = usagerights.FiltersFromQuery(url.Values{"einddatum__lt": {at(30).Format(time.RFC3339)}})
	require.NoError(t, err)
	rights, err = f.sys.List(ctx, filters)
	require.NoError(t, err)
	assert.Empty(t, rights)
}

func TestFiltersFromQuery_Rejections(t *testing.T) {
	_, err := usagerights.FiltersFromQuery(url.Values{"startdatum": {"2024-01-01T00:00:00Z"}})
	require.Error(t, err)
	assert.Equal(t, "unknown-parameters", faults.Entries(err)[0].Code)

	_, err = usagerights.FiltersFromQuery(url.Values{"einddatum__gt": {"gisteren"}})
	require.Error(t, err)
	entries := faults.Entries(err)
	require.Len(t, entries, 1)
	assert.Equal(t, "einddatum__gt", entries[0].Field)
}

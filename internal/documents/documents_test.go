package documents_test

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/audit"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/database/memory"
	"github.com/JaimeStill/document-registry/internal/documents"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/locks"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/storage"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/internal/versions"
	"github.com/JaimeStill/document-registry/pkg/date"
	"github.com/JaimeStill/document-registry/pkg/faults"
	"github.com/JaimeStill/document-registry/pkg/pagination"
	"github.com/JaimeStill/document-registry/pkg/patch"
)

var (
	builder  = urls.New("http://drc.example", "/api/v1")
	registry = config.RegistryConfig{VersionStart: 100, VersionStep: 10, MaxRetries: 3}
	pages    = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

type notifierStub struct {
	mu       sync.Mutex
	messages []notifications.Message
}

func (n *notifierStub) Notify(msg notifications.Message) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return true
}

type recorderStub struct {
	mu      sync.Mutex
	changes []audit.Change
}

func (r *recorderStub) Record(_ context.Context, c audit.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

type fixture struct {
	sys      documents.System
	db       database.Database
	store    storage.System
	clock    *clock
	notifier *notifierStub
	recorder *recorderStub
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setup(t *testing.T, limits documents.UploadLimits) *fixture {
	t.Helper()

	db, err := memory.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := storage.NewFanout(discard(), storage.NewMemory())
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		store:    store,
		clock:    &clock{t: time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC)},
		notifier: &notifierStub{},
		recorder: &recorderStub{},
	}

	vs := versions.New(db, registry, discard(), versions.WithClock(f.clock.now))
	lm := locks.New(db, discard(), nil)
	publisher := events.NewPublisher(f.notifier, f.recorder, builder, discard())
	f.sys = documents.New(vs, lm, store, db, builder, publisher, limits, pages, discard())
	return f
}

func encode(s string) *string {
	v := base64.StdEncoding.EncodeToString([]byte(s))
	return &v
}

func fields(identificatie string) documents.Fields {
	creatiedatum := date.New(2024, time.April, 30)
	return documents.Fields{
		Identificatie:        identificatie,
		Bronorganisatie:      "159351741",
		Creatiedatum:         &creatiedatum,
		Titel:                "Besluit bijlage",
		Auteur:               "tester",
		Taal:                 "dut",
		Bestandsnaam:         "bijlage.txt",
		Informatieobjecttype: "https://ztc.example/api/v1/informatieobjecttypen/1",
	}
}

func (f *fixture) create(t *testing.T, identificatie, body string) *documents.Document {
	t.Helper()
	doc, err := f.sys.Create(context.Background(), documents.Command{Fields: fields(identificatie), Inhoud: encode(body)})
	require.NoError(t, err)
	return doc
}

func idOf(doc *documents.Document) uuid.UUID {
	id, _ := builder.DocumentID(doc.URL)
	return uuid.MustParse(id)
}

func readAll(t *testing.T, rc io.ReadCloser) string {
	t.Helper()
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}

func entryCodes(err error) map[string]string {
	codes := make(map[string]string)
	for _, e := range faults.Entries(err) {
		codes[e.Field] = e.Code
	}
	return codes
}

func TestCreate(t *testing.T) {
	f := setup(t, documents.UploadLimits{})

	doc := f.create(t, "DOC-1", "hello world")

	assert.Equal(t, 100, doc.Versie)
	assert.Equal(t, "DOC-1", doc.Identificatie)
	assert.EqualValues(t, 11, doc.Bestandsomvang)
	assert.Equal(t, "text/plain; charset=utf-8", doc.Formaat)
	require.NotNil(t, doc.Inhoud)
	assert.Equal(t, builder.Download(idOf(doc).String(), 100), *doc.Inhoud)
	assert.False(t, doc.Locked)

	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, notifications.ActionCreate, f.notifier.messages[0].Actie)
	assert.Equal(t, notifications.ResourceDocument, f.notifier.messages[0].Resource)
	require.Len(t, f.recorder.changes, 1)
	assert.Equal(t, "159351741 - DOC-1", f.recorder.changes[0].ResourceWeergave)
	assert.Equal(t, 201, f.recorder.changes[0].Resultaat)
}

func TestCreate_VertrouwelijkheidaanduidingDefault(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()

	doc := f.create(t, "DOC-1", "hello")
	assert.Equal(t, documents.DefaultVertrouwelijkheidaanduiding, doc.Vertrouwelijkheidaanduiding)
	require.Len(t, f.notifier.messages, 1)
	assert.Equal(t, "openbaar", f.notifier.messages[0].Kenmerken["vertrouwelijkheidaanduiding"])

	explicit := fields("DOC-2")
	explicit.Vertrouwelijkheidaanduiding = "geheim"
	kept, err := f.sys.Create(ctx, documents.Command{Fields: explicit})
	require.NoError(t, err)
	assert.Equal(t, "geheim", kept.Vertrouwelijkheidaanduiding)

	id := idOf(doc)
	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	put, err := f.sys.Update(ctx, id, documents.Command{Fields: fields("DOC-1"), Lock: token})
	require.NoError(t, err)
	assert.Equal(t, "openbaar", put.Vertrouwelijkheidaanduiding)

	cleared, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{
		Lock:                        token,
		Vertrouwelijkheidaanduiding: patch.Null[string](),
	})
	require.NoError(t, err)
	assert.Equal(t, "openbaar", cleared.Vertrouwelijkheidaanduiding)
}

func TestUpdate_FormaatFollowsContent(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()

	doc, err := f.sys.Create(ctx, documents.Command{Fields: fields("DOC-1"), Inhoud: encode("%PDF-1.4\n%fake")})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.Formaat)
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	t.Run("patch with new content", func(t *testing.T) {
		updated, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, Inhoud: patch.Value(*encode("plain text now"))})
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", updated.Formaat)
	})

	t.Run("patch without content keeps formaat", func(t *testing.T) {
		updated, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, Titel: patch.Value("T2")})
		require.NoError(t, err)
		assert.Equal(t, "text/plain; charset=utf-8", updated.Formaat)
	})

	t.Run("patch with supplied formaat", func(t *testing.T) {
		updated, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{
			Lock:    token,
			Inhoud:  patch.Value(*encode("a,b\n1,2\n")),
			Formaat: patch.Value("text/csv"),
		})
		require.NoError(t, err)
		assert.Equal(t, "text/csv", updated.Formaat)
	})

	t.Run("put with new content", func(t *testing.T) {
		next := fields("DOC-1")
		next.Formaat = ""
		updated, err := f.sys.Update(ctx, id, documents.Command{Fields: next, Inhoud: encode("%PDF-1.4\n%again"), Lock: token})
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", updated.Formaat)
	})
}

func TestPartialUpdate_ConcurrentWritersGetDistinctVersions(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "v1")
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	results := make(chan int, writers)
	errs := make(chan error, writers)

	for i := range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			updated, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{
				Lock:         token,
				Beschrijving: patch.Value("edit " + string(rune('a'+i))),
			})
			if err != nil {
				errs <- err
				return
			}
			results <- updated.Versie
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var got []int
	for v := range results {
		got = append(got, v)
	}
	sort.Ints(got)
	require.Len(t, got, writers)
	for i, v := range got {
		assert.Equal(t, 110+10*i, v)
	}

	latest, err := f.sys.Find(ctx, id, documents.Pin{})
	require.NoError(t, err)
	assert.Equal(t, 100+10*writers, latest.Versie)
	assert.Len(t, f.notifier.messages, writers+1)
}

func TestCreate_WithoutContent(t *testing.T) {
	f := setup(t, documents.UploadLimits{})

	doc, err := f.sys.Create(context.Background(), documents.Command{Fields: fields("")})
	require.NoError(t, err)
	assert.Nil(t, doc.Inhoud)
	assert.NotEmpty(t, doc.Identificatie)

	_, _, err = f.sys.Download(context.Background(), idOf(doc), documents.Pin{})
	assert.ErrorIs(t, err, documents.ErrNoContent)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t, documents.UploadLimits{Min: 2, Max: 16})
	ctx := context.Background()
	f.create(t, "TAKEN", "abc")

	received := date.New(2024, time.May, 1)

	tests := []struct {
		name  string
		edit  func(*documents.Command)
		codes map[string]string
	}{
		{
			"received while in progress",
			func(c *documents.Command) {
				c.Status = documents.StatusInBewerking
				c.Ontvangstdatum = &received
			},
			map[string]string{"ontvangstdatum": "invalid_for_received"},
		},
		{
			"every violation at once",
			func(c *documents.Command) {
				c.Titel = ""
				c.Taal = "nl"
				c.Status = documents.StatusTerVaststelling
				c.Ontvangstdatum = &received
			},
			map[string]string{"titel": "required", "taal": "invalid", "ontvangstdatum": "invalid_for_received"},
		},
		{
			"nested attribute",
			func(c *documents.Command) {
				c.Ondertekening = &documents.Ondertekening{Soort: "inkt"}
			},
			map[string]string{"ondertekening.soort": "invalid_choice"},
		},
		{
			"duplicate identificatie",
			func(c *documents.Command) { c.Identificatie = "TAKEN" },
			map[string]string{"identificatie": "identificatie-niet-uniek"},
		},
		{
			"content too small",
			func(c *documents.Command) { c.Inhoud = encode("a") },
			map[string]string{"inhoud": "file-too-small"},
		},
		{
			"content too large",
			func(c *documents.Command) { c.Inhoud = encode("this content is too large") },
			map[string]string{"inhoud": "file-too-large"},
		},
		{
			"content not base64",
			func(c *documents.Command) {
				bad := "%%%"
				c.Inhoud = &bad
			},
			map[string]string{"inhoud": "invalid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := documents.Command{Fields: fields("NEW"), Inhoud: encode("abc")}
			tt.edit(&cmd)

			_, err := f.sys.Create(ctx, cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, faults.ErrValidation)
			assert.Equal(t, tt.codes, entryCodes(err))
		})
	}

	assert.Len(t, f.notifier.messages, 1)
}

func TestUpdate_RequiresLock(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "v1")
	id := idOf(doc)

	cmd := documents.PatchCommand{Titel: patch.Value("T2")}

	_, err := f.sys.PartialUpdate(ctx, id, cmd)
	assert.ErrorIs(t, err, locks.ErrUnlocked)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	cmd.Lock = "0000"
	_, err = f.sys.PartialUpdate(ctx, id, cmd)
	assert.ErrorIs(t, err, locks.ErrIncorrectLockID)

	cmd.Lock = token
	updated, err := f.sys.PartialUpdate(ctx, id, cmd)
	require.NoError(t, err)
	assert.Equal(t, 110, updated.Versie)

	latest, err := f.sys.Find(ctx, id, documents.Pin{})
	require.NoError(t, err)
	assert.Equal(t, 110, latest.Versie)
}

func TestLockLifecycle(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "v1")
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	_, err = f.sys.Lock(ctx, id)
	assert.ErrorIs(t, err, locks.ErrExistingLock)

	first, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, Titel: patch.Value("T2")})
	require.NoError(t, err)
	assert.True(t, first.Locked)

	second, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, Beschrijving: patch.Value("second edit")})
	require.NoError(t, err)
	assert.Equal(t, 120, second.Versie)
	assert.Equal(t, "T2", second.Titel)

	assert.ErrorIs(t, f.sys.Unlock(ctx, id, "wrong", false), locks.ErrIncorrectLockID)
	require.NoError(t, f.sys.Unlock(ctx, id, token, false))
	require.NoError(t, f.sys.Unlock(ctx, id, token, false))

	unlocked, err := f.sys.Find(ctx, id, documents.Pin{})
	require.NoError(t, err)
	assert.False(t, unlocked.Locked)
	assert.Equal(t, 120, unlocked.Versie)

	_, err = f.sys.Lock(ctx, id)
	require.NoError(t, err)
	require.NoError(t, f.sys.Unlock(ctx, id, "", true))
}

func TestPartialUpdate_CopiesForward(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "version one")
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	updated, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{
		Lock:         token,
		Titel:        patch.Value("Nieuwe titel"),
		Bestandsnaam: patch.Null[string](),
	})
	require.NoError(t, err)

	assert.Equal(t, "Nieuwe titel", updated.Titel)
	assert.Equal(t, "", updated.Bestandsnaam)
	assert.Equal(t, doc.Auteur, updated.Auteur)
	assert.Equal(t, doc.Identificatie, updated.Identificatie)
	assert.Equal(t, doc.Bestandsomvang, updated.Bestandsomvang)
	assert.Equal(t, builder.Download(id.String(), 110), *updated.Inhoud)

	_, rc, err := f.sys.Download(ctx, id, documents.Pin{})
	require.NoError(t, err)
	assert.Equal(t, "version one", readAll(t, rc))

	actions := []string{f.notifier.messages[0].Actie, f.notifier.messages[1].Actie}
	assert.Equal(t, []string{notifications.ActionCreate, notifications.ActionPartialUpdate}, actions)
	assert.NotNil(t, f.recorder.changes[1].Oud)
	assert.NotNil(t, f.recorder.changes[1].Nieuw)
}

func TestUpdate_ReplacesContentAndPins(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "first")
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	next := fields("DOC-1")
	next.Titel = "Tweede"
	updated, err := f.sys.Update(ctx, id, documents.Command{Fields: next, Inhoud: encode("second!"), Lock: token})
	require.NoError(t, err)
	assert.Equal(t, 110, updated.Versie)
	assert.EqualValues(t, 7, updated.Bestandsomvang)

	t.Run("latest", func(t *testing.T) {
		_, rc, err := f.sys.Download(ctx, id, documents.Pin{})
		require.NoError(t, err)
		assert.Equal(t, "second!", readAll(t, rc))
	})

	t.Run("by versie", func(t *testing.T) {
		versie := 100
		found, err := f.sys.Find(ctx, id, documents.Pin{Versie: &versie})
		require.NoError(t, err)
		assert.Equal(t, "Besluit bijlage", found.Titel)

		_, rc, err := f.sys.Download(ctx, id, documents.Pin{Versie: &versie})
		require.NoError(t, err)
		assert.Equal(t, "first", readAll(t, rc))
	})

	t.Run("by registratieOp", func(t *testing.T) {
		at := doc.BeginRegistratie
		found, err := f.sys.Find(ctx, id, documents.Pin{RegistratieOp: &at})
		require.NoError(t, err)
		assert.Equal(t, 100, found.Versie)

		before := doc.BeginRegistratie.Add(-time.Hour)
		_, err = f.sys.Find(ctx, id, documents.Pin{RegistratieOp: &before})
		assert.ErrorIs(t, err, versions.ErrVersionNotFound)
	})

	t.Run("versie registered after registratieOp", func(t *testing.T) {
		versie := 110
		at := doc.BeginRegistratie
		_, err := f.sys.Find(ctx, id, documents.Pin{Versie: &versie, RegistratieOp: &at})
		assert.ErrorIs(t, err, versions.ErrVersionNotFound)
	})

	t.Run("unknown versie", func(t *testing.T) {
		versie := 105
		_, err := f.sys.Find(ctx, id, documents.Pin{Versie: &versie})
		assert.ErrorIs(t, err, versions.ErrVersionNotFound)
	})
}

func TestUpdate_RejectedLeavesNoVersion(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "v1")
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	received := date.New(2024, time.May, 2)
	_, err = f.sys.PartialUpdate(ctx, id, documents.PatchCommand{
		Lock:           token,
		Status:         patch.Value(documents.StatusInBewerking),
		Ontvangstdatum: patch.Value(received),
	})
	require.Error(t, err)
	assert.Equal(t, map[string]string{"ontvangstdatum": "invalid_for_received"}, entryCodes(err))

	latest, err := f.sys.Find(ctx, id, documents.Pin{})
	require.NoError(t, err)
	assert.Equal(t, 100, latest.Versie)
}

func TestIndicator_ExistingRights(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "v1")
	id := idOf(doc)

	require.NoError(t, f.db.CreateUsageRight(ctx, &database.UsageRightInfo{
		ID:                      "5d0e0c3a-8b53-4c58-9a8e-0d7c1f6a2b11",
		DocumentID:              id.String(),
		Startdatum:              time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		OmschrijvingVoorwaarden: "intern",
	}))

	found, err := f.sys.Find(ctx, id, documents.Pin{})
	require.NoError(t, err)
	require.NotNil(t, found.IndicatieGebruiksrecht)
	assert.True(t, *found.IndicatieGebruiksrecht)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)

	for name, value := range map[string]patch.Field[bool]{
		"false": patch.Value(false),
		"null":  patch.Null[bool](),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, IndicatieGebruiksrecht: value})
			assert.ErrorIs(t, err, documents.ErrExistingRights)
		})
	}

	kept, err := f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, Titel: patch.Value("T2")})
	require.NoError(t, err)
	require.NotNil(t, kept.IndicatieGebruiksrecht)
	assert.True(t, *kept.IndicatieGebruiksrecht)
}

func TestDelete(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()
	doc := f.create(t, "DOC-1", "v1")
	id := idOf(doc)

	token, err := f.sys.Lock(ctx, id)
	require.NoError(t, err)
	_, err = f.sys.PartialUpdate(ctx, id, documents.PatchCommand{Lock: token, Inhoud: patch.Value(*encode("v2"))})
	require.NoError(t, err)

	history, err := f.db.ListVersions(ctx, id.String())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.NotEqual(t, history[0].ContentKey, history[1].ContentKey)

	right := &database.UsageRightInfo{
		ID:                      "0c6a7c7e-4f2d-4b8e-9c3a-1d2e3f4a5b6c",
		DocumentID:              id.String(),
		Startdatum:              time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
		OmschrijvingVoorwaarden: "intern",
	}
	require.NoError(t, f.db.CreateUsageRight(ctx, right))

	rel := &database.RelationInfo{
		ID:         "9b1f0d1e-2c3a-4b5c-8d7e-6f5a4b3c2d1e",
		DocumentID: id.String(),
		Object:     "https://zrc.example/api/v1/zaken/1",
		ObjectType: database.ObjectTypeZaak,
	}
	require.NoError(t, f.db.CreateRelation(ctx, rel))

	err = f.sys.Delete(ctx, id)
	assert.ErrorIs(t, err, versions.ErrPendingRelations)

	require.NoError(t, f.db.DeleteRelation(ctx, rel.ID))
	require.NoError(t, f.sys.Delete(ctx, id))

	_, err = f.sys.Find(ctx, id, documents.Pin{})
	assert.ErrorIs(t, err, documents.ErrNotFound)

	_, err = f.db.FindUsageRight(ctx, right.ID)
	assert.ErrorIs(t, err, database.ErrUsageRightNotFound)
	key := id.String()
	rights, err := f.db.ListUsageRights(ctx, database.UsageRightFilter{DocumentID: &key})
	require.NoError(t, err)
	assert.Empty(t, rights)

	_, err = f.db.FindDocumentInfo(ctx, id.String())
	assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	_, err = f.sys.Lock(ctx, id)
	assert.ErrorIs(t, err, locks.ErrNotFound)
	assert.ErrorIs(t, f.sys.Unlock(ctx, id, token, false), locks.ErrNotFound)

	for _, v := range history {
		ok, err := f.store.Validate(ctx, v.ContentKey)
		require.NoError(t, err)
		assert.False(t, ok, "content %s should be removed", v.ContentKey)
	}

	last := f.notifier.messages[len(f.notifier.messages)-1]
	assert.Equal(t, notifications.ActionDestroy, last.Actie)

	assert.ErrorIs(t, f.sys.Delete(ctx, id), documents.ErrNotFound)
}

func TestList(t *testing.T) {
	f := setup(t, documents.UploadLimits{})
	ctx := context.Background()

	for _, ident := range []string{"A", "B", "C"} {
		f.create(t, ident, "x")
	}

	docs, total, err := f.sys.List(ctx, documents.Filters{}, pagination.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, docs, 2)
	assert.Equal(t, "A", docs[0].Identificatie)
	assert.Equal(t, "B", docs[1].Identificatie)

	ident := "C"
	docs, total, err = f.sys.List(ctx, documents.Filters{Identificatie: &ident}, pagination.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "C", docs[0].Identificatie)
}

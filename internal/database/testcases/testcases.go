// Package testcases holds behaviour tests shared by every Database implementation.
package testcases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/date"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// NewDocument builds an identity and its first version with the given business identifier.
func NewDocument(identificatie string) (*database.DocumentInfo, *database.VersionInfo) {
	id := uuid.NewString()
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc := &database.DocumentInfo{ID: id, CreatedAt: now}
	first := &database.VersionInfo{
		DocumentID:                  id,
		Versie:                      100,
		BeginRegistratie:            now,
		Identificatie:               identificatie,
		Bronorganisatie:             "159351741",
		Creatiedatum:                date.New(2024, time.January, 2),
		Titel:                       "T1",
		Vertrouwelijkheidaanduiding: "openbaar",
		Auteur:                      "tester",
		Taal:                        "dut",
		Informatieobjecttype:        "https://ztc.example/api/v1/informatieobjecttypen/1",
		ContentKey:                  id + "/100",
		Bestandsomvang:              4,
	}
	return doc, first
}

func appendN(t *testing.T, db database.Database, id string, step time.Duration) *database.VersionInfo {
	t.Helper()
	v, err := db.AppendVersion(context.Background(), id, func(latest *database.VersionInfo) (*database.VersionInfo, error) {
		next := latest.DeepCopy()
		next.Versie = latest.Versie + 10
		next.BeginRegistratie = latest.BeginRegistratie.Add(step)
		next.Titel = "T2"
		return next, nil
	})
	require.NoError(t, err)
	return v
}

// RunVersionLifecycleTest covers document creation, appends and point-in-time lookups.
func RunVersionLifecycleTest(t *testing.T, db database.Database) {
	ctx := context.Background()

	t.Run("create and find latest", func(t *testing.T) {
		doc, first := NewDocument("lifecycle-1")
		require.NoError(t, db.CreateDocument(ctx, doc, first))

		latest, err := db.FindLatestVersion(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, latest.Versie)
		assert.Equal(t, "T1", latest.Titel)
		assert.False(t, latest.Locked)
	})

	t.Run("unknown document", func(t *testing.T) {
		_, err := db.FindLatestVersion(ctx, uuid.NewString())
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)

		_, err = db.AppendVersion(ctx, uuid.NewString(), func(*database.VersionInfo) (*database.VersionInfo, error) {
			t.Fatal("builder must not run for unknown documents")
			return nil, nil
		})
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	})

	t.Run("append and pin", func(t *testing.T) {
		doc, first := NewDocument("lifecycle-2")
		require.NoError(t, db.CreateDocument(ctx, doc, first))

		second := appendN(t, db, doc.ID, time.Second)
		third := appendN(t, db, doc.ID, time.Second)
		assert.Equal(t, 110, second.Versie)
		assert.Equal(t, 120, third.Versie)

		latest, err := db.FindLatestVersion(ctx, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, 120, latest.Versie)

		v, err := db.FindVersion(ctx, doc.ID, 110)
		require.NoError(t, err)
		assert.Equal(t, "T2", v.Titel)

		_, err = db.FindVersion(ctx, doc.ID, 115)
		assert.ErrorIs(t, err, database.ErrVersionNotFound)

		asOf, err := db.FindVersionAsOf(ctx, doc.ID, first.BeginRegistratie.Add(1500*time.Millisecond))
		require.NoError(t, err)
		assert.Equal(t, 110, asOf.Versie)

		asOf, err = db.FindVersionAsOf(ctx, doc.ID, first.BeginRegistratie)
		require.NoError(t, err)
		assert.Equal(t, 100, asOf.Versie)

		_, err = db.FindVersionAsOf(ctx, doc.ID, first.BeginRegistratie.Add(-time.Second))
		assert.ErrorIs(t, err, database.ErrVersionNotFound)

		history, err := db.ListVersions(ctx, doc.ID)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, []int{100, 110, 120}, []int{history[0].Versie, history[1].Versie, history[2].Versie})
	})

	t.Run("builder error leaves chain untouched", func(t *testing.T) {
		doc, first := NewDocument("lifecycle-3")
		require.NoError(t, db.CreateDocument(ctx, doc, first))

		boom := errors.New("boom")
		_, err := db.AppendVersion(ctx, doc.ID, func(*database.VersionInfo) (*database.VersionInfo, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)

		history, err := db.ListVersions(ctx, doc.ID)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("duplicate version number conflicts", func(t *testing.T) {
		doc, first := NewDocument("lifecycle-4")
		require.NoError(t, db.CreateDocument(ctx, doc, first))

		_, err := db.AppendVersion(ctx, doc.ID, func(latest *database.VersionInfo) (*database.VersionInfo, error) {
			return latest.DeepCopy(), nil
		})
		assert.ErrorIs(t, err, database.ErrVersionConflict)
	})

	t.Run("append carries indicator to identity", func(t *testing.T) {
		doc, first := NewDocument("lifecycle-5")
		require.NoError(t, db.CreateDocument(ctx, doc, first))

		_, err := db.AppendVersion(ctx, doc.ID, func(latest *database.VersionInfo) (*database.VersionInfo, error) {
			next := latest.DeepCopy()
			next.Versie += 10
			indicator := false
			next.IndicatieGebruiksrecht = &indicator
			return next, nil
		})
		require.NoError(t, err)

		info, err := db.FindDocumentInfo(ctx, doc.ID)
		require.NoError(t, err)
		require.NotNil(t, info.IndicatieGebruiksrecht)
		assert.False(t, *info.IndicatieGebruiksrecht)
		assert.Equal(t, 110, info.LatestVersion)
	})
}

// RunListLatestVersionsTest covers filtering and paging of the latest versions.
func RunListLatestVersionsTest(t *testing.T, db database.Database) {
	ctx := context.Background()
	bron := fmt.Sprintf("%09d", rand.IntN(1_000_000_000))

	var ids []string
	for i := range 3 {
		doc, first := NewDocument(uuid.NewString())
		first.Bronorganisatie = bron
		first.Titel = []string{"a", "b", "c"}[i]
		require.NoError(t, db.CreateDocument(ctx, doc, first))
		ids = append(ids, doc.ID)
	}
	appendN(t, db, ids[1], time.Millisecond)

	filter := database.VersionFilter{Bronorganisatie: &bron}

	page, total, err := db.ListLatestVersions(ctx, filter, pagination.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, ids[0], page[0].DocumentID)
	assert.Equal(t, ids[1], page[1].DocumentID)
	assert.Equal(t, 110, page[1].Versie)

	page, _, err = db.ListLatestVersions(ctx, filter, pagination.PageRequest{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ids[2], page[0].DocumentID)

	missing := "does-not-exist"
	page, total, err = db.ListLatestVersions(ctx, database.VersionFilter{Identificatie: &missing}, pagination.PageRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, page)
}

// RunUpdateLockTest covers the lock compare-and-set primitive.
func RunUpdateLockTest(t *testing.T, db database.Database) {
	ctx := context.Background()
	doc, first := NewDocument("lock-1")
	require.NoError(t, db.CreateDocument(ctx, doc, first))

	info, err := db.UpdateLock(ctx, doc.ID, func(current string) (string, error) {
		assert.Empty(t, current)
		return "token", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "token", info.Lock)

	latest, err := db.FindLatestVersion(ctx, doc.ID)
	require.NoError(t, err)
	assert.True(t, latest.Locked)

	refused := errors.New("refused")
	_, err = db.UpdateLock(ctx, doc.ID, func(current string) (string, error) {
		assert.Equal(t, "token", current)
		return "", refused
	})
	assert.ErrorIs(t, err, refused)

	info, err = db.FindDocumentInfo(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "token", info.Lock)

	_, err = db.UpdateLock(ctx, uuid.NewString(), func(string) (string, error) { return "x", nil })
	assert.ErrorIs(t, err, database.ErrDocumentNotFound)
}

// RunRelationsTest covers relation uniqueness and the delete guard.
func RunRelationsTest(t *testing.T, db database.Database) {
	ctx := context.Background()
	doc, first := NewDocument("relations-1")
	require.NoError(t, db.CreateDocument(ctx, doc, first))

	now := time.Now().UTC().Truncate(time.Microsecond)
	rel := &database.RelationInfo{
		ID:               uuid.NewString(),
		DocumentID:       doc.ID,
		Object:           "https://zrc.example/api/v1/zaken/" + uuid.NewString(),
		ObjectType:       database.ObjectTypeZaak,
		Titel:            "bijlage",
		Registratiedatum: &now,
	}
	require.NoError(t, db.CreateRelation(ctx, rel))

	dup := rel.DeepCopy()
	dup.ID = uuid.NewString()
	assert.ErrorIs(t, db.CreateRelation(ctx, dup), database.ErrRelationExists)

	orphan := rel.DeepCopy()
	orphan.ID = uuid.NewString()
	orphan.DocumentID = uuid.NewString()
	assert.ErrorIs(t, db.CreateRelation(ctx, orphan), database.ErrDocumentNotFound)

	found, err := db.FindRelation(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, rel.Object, found.Object)

	byObject, err := db.ListRelations(ctx, database.RelationFilter{Object: &rel.Object})
	require.NoError(t, err)
	assert.Len(t, byObject, 1)

	assert.ErrorIs(t, db.DeleteDocument(ctx, doc.ID), database.ErrPendingRelations)

	require.NoError(t, db.DeleteRelation(ctx, rel.ID))
	assert.ErrorIs(t, db.DeleteRelation(ctx, rel.ID), database.ErrRelationNotFound)

	require.NoError(t, db.DeleteDocument(ctx, doc.ID))
	_, err = db.FindLatestVersion(ctx, doc.ID)
	assert.ErrorIs(t, err, database.ErrDocumentNotFound)
}

// RunUsageRightsTest covers the indicator toggling and cascade on delete.
func RunUsageRightsTest(t *testing.T, db database.Database) {
	ctx := context.Background()
	doc, first := NewDocument("rights-1")
	require.NoError(t, db.CreateDocument(ctx, doc, first))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rights := []*database.UsageRightInfo{
		{ID: uuid.NewString(), DocumentID: doc.ID, Startdatum: start, OmschrijvingVoorwaarden: "a"},
		{ID: uuid.NewString(), DocumentID: doc.ID, Startdatum: start.AddDate(0, 1, 0), OmschrijvingVoorwaarden: "b"},
	}
	for _, r := range rights {
		require.NoError(t, db.CreateUsageRight(ctx, r))
	}

	info, err := db.FindDocumentInfo(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, info.IndicatieGebruiksrecht)
	assert.True(t, *info.IndicatieGebruiksrecht)

	bound := start.AddDate(0, 0, 15)
	list, err := db.ListUsageRights(ctx, database.UsageRightFilter{DocumentID: &doc.ID, StartdatumGT: &bound})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].OmschrijvingVoorwaarden)

	updated := rights[0].DeepCopy()
	updated.OmschrijvingVoorwaarden = "changed"
	updated.DocumentID = uuid.NewString()
	require.NoError(t, db.UpdateUsageRight(ctx, updated))
	got, err := db.FindUsageRight(ctx, rights[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "changed", got.OmschrijvingVoorwaarden)
	assert.Equal(t, doc.ID, got.DocumentID)

	require.NoError(t, db.DeleteUsageRight(ctx, rights[0].ID))
	info, err = db.FindDocumentInfo(ctx, doc.ID)
	require.NoError(t, err)
	assert.NotNil(t, info.IndicatieGebruiksrecht)

	require.NoError(t, db.DeleteUsageRight(ctx, rights[1].ID))
	info, err = db.FindDocumentInfo(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, info.IndicatieGebruiksrecht)

	count, err := db.CountUsageRights(ctx, doc.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = db.FindUsageRight(ctx, rights[1].ID)
	assert.ErrorIs(t, err, database.ErrUsageRightNotFound)
}

// RunAuditTrailsTest covers audit entries surviving document deletion.
func RunAuditTrailsTest(t *testing.T, db database.Database) {
	ctx := context.Background()
	doc, first := NewDocument("audit-1")
	require.NoError(t, db.CreateDocument(ctx, doc, first))

	entry := &database.AuditTrailInfo{
		ID:           uuid.NewString(),
		DocumentID:   doc.ID,
		Bron:         "DRC",
		Actie:        "create",
		Resultaat:    201,
		HoofdObject:  "http://localhost/api/enkelvoudiginformatieobjecten/" + doc.ID,
		Resource:     "enkelvoudiginformatieobject",
		AanmaakDatum: time.Now().UTC().Truncate(time.Microsecond),
		Nieuw:        json.RawMessage(`{"titel":"T1"}`),
	}
	require.NoError(t, db.CreateAuditTrail(ctx, entry))
	require.NoError(t, db.DeleteDocument(ctx, doc.ID))

	list, err := db.ListAuditTrails(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"titel":"T1"}`, string(list[0].Nieuw))
	assert.Nil(t, list[0].Oud)

	_, err = db.FindAuditTrail(ctx, uuid.NewString(), entry.ID)
	assert.ErrorIs(t, err, database.ErrAuditTrailNotFound)
}

// RunConcurrentAppendTest appends from many goroutines at once and checks
// that every append got its own version number.
func RunConcurrentAppendTest(t *testing.T, db database.Database) {
	ctx := context.Background()
	const writers = 20

	doc, first := NewDocument("CONCURRENT-" + uuid.NewString()[:8])
	require.NoError(t, db.CreateDocument(ctx, doc, first))

	var wg sync.WaitGroup
	versies := make(chan int, writers)
	errs := make(chan error, writers)

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := db.AppendVersion(ctx, doc.ID, func(latest *database.VersionInfo) (*database.VersionInfo, error) {
					next := latest.DeepCopy()
					next.Versie = latest.Versie + 10
					next.BeginRegistratie = latest.BeginRegistratie.Add(time.Millisecond)
					return next, nil
				})
				if errors.Is(err, database.ErrVersionConflict) {
					continue
				}
				if err != nil {
					errs <- err
					return
				}
				versies <- v.Versie
				return
			}
		}()
	}
	wg.Wait()
	close(versies)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int]bool, writers)
	for v := range versies {
		assert.False(t, seen[v], "versie %d handed out twice", v)
		seen[v] = true
	}
	assert.Len(t, seen, writers)

	history, err := db.ListVersions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, history, writers+1)

	got := make([]int, len(history))
	for i, v := range history {
		got[i] = v.Versie
	}
	assert.True(t, sort.IntsAreSorted(got), "versions out of order: %v", got)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1]+10, got[i], "gap or repeat in %v", got)
	}

	latest, err := db.FindLatestVersion(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, 100+10*writers, latest.Versie)
}

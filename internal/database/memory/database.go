// Package memory implements the database interface using an in-memory database.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/hashicorp/go-memdb"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// DB is an in-memory database for testing or temporary deployments.
// go-memdb serializes write transactions, which makes every read-modify-write
// below atomic per database.
type DB struct {
	db  *memdb.MemDB
	seq uint64
}

// documentRecord orders identities by insertion.
type documentRecord struct {
	*database.DocumentInfo
	Seq uint64
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{db: memDB}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// CreateDocument inserts a new identity together with its first version.
func (d *DB) CreateDocument(_ context.Context, doc *database.DocumentInfo, first *database.VersionInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", doc.ID)
	if err != nil {
		return fmt.Errorf("find document: %w", err)
	}
	if raw != nil {
		return fmt.Errorf("create document %s: %w", doc.ID, database.ErrVersionConflict)
	}

	d.seq++
	rec := &documentRecord{DocumentInfo: doc.DeepCopy(), Seq: d.seq}
	rec.LatestVersion = first.Versie
	rec.IndicatieGebruiksrecht = copyBool(first.IndicatieGebruiksrecht)

	if err := txn.Insert(tblDocuments, rec); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	if err := txn.Insert(tblVersions, stored(first, doc.ID)); err != nil {
		return fmt.Errorf("insert version: %w", err)
	}

	txn.Commit()
	return nil
}

// FindDocumentInfo returns the identity row.
func (d *DB) FindDocumentInfo(_ context.Context, id string) (*database.DocumentInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}
	return rec.DocumentInfo.DeepCopy(), nil
}

// AppendVersion locks the identity, passes the latest version to build and
// stores the result as the new latest version.
func (d *DB) AppendVersion(_ context.Context, id string, build database.VersionBuilder) (*database.VersionInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}

	raw, err := txn.First(tblVersions, "id", id, rec.LatestVersion)
	if err != nil {
		return nil, fmt.Errorf("find latest version: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("latest version of %s: %w", id, database.ErrVersionNotFound)
	}
	latest := decorate(raw.(*database.VersionInfo), rec.DocumentInfo)

	next, err := build(latest)
	if err != nil {
		return nil, err
	}

	existing, err := txn.First(tblVersions, "id", id, next.Versie)
	if err != nil {
		return nil, fmt.Errorf("find version: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("version %d of %s: %w", next.Versie, id, database.ErrVersionConflict)
	}

	if err := txn.Insert(tblVersions, stored(next, id)); err != nil {
		return nil, fmt.Errorf("insert version: %w", err)
	}

	updated := &documentRecord{DocumentInfo: rec.DocumentInfo.DeepCopy(), Seq: rec.Seq}
	updated.LatestVersion = next.Versie
	updated.IndicatieGebruiksrecht = copyBool(next.IndicatieGebruiksrecht)
	if err := txn.Insert(tblDocuments, updated); err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}

	txn.Commit()
	return decorate(stored(next, id), updated.DocumentInfo), nil
}

// UpdateLock replaces the lock token of the identity with the value produced by mutate.
func (d *DB) UpdateLock(_ context.Context, id string, mutate database.LockMutator) (*database.DocumentInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}

	token, err := mutate(rec.Lock)
	if err != nil {
		return nil, err
	}
	if token == rec.Lock {
		return rec.DocumentInfo.DeepCopy(), nil
	}

	updated := &documentRecord{DocumentInfo: rec.DocumentInfo.DeepCopy(), Seq: rec.Seq}
	updated.Lock = token
	if err := txn.Insert(tblDocuments, updated); err != nil {
		return nil, fmt.Errorf("update lock: %w", err)
	}

	txn.Commit()
	return updated.DocumentInfo.DeepCopy(), nil
}

// DeleteDocument removes the identity with its versions and usage rights.
func (d *DB) DeleteDocument(_ context.Context, id string) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return err
	}

	rel, err := txn.First(tblRelations, "document_id", id)
	if err != nil {
		return fmt.Errorf("find relations: %w", err)
	}
	if rel != nil {
		return fmt.Errorf("delete document %s: %w", id, database.ErrPendingRelations)
	}

	if _, err := txn.DeleteAll(tblVersions, "document_id", id); err != nil {
		return fmt.Errorf("delete versions: %w", err)
	}
	if _, err := txn.DeleteAll(tblUsageRights, "document_id", id); err != nil {
		return fmt.Errorf("delete usage rights: %w", err)
	}
	if err := txn.Delete(tblDocuments, rec); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	txn.Commit()
	return nil
}

// FindLatestVersion returns the version with the highest number.
func (d *DB) FindLatestVersion(_ context.Context, id string) (*database.VersionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}
	return findVersion(txn, rec.DocumentInfo, rec.LatestVersion)
}

// FindVersion returns the version with exactly the given number.
func (d *DB) FindVersion(_ context.Context, id string, versie int) (*database.VersionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}
	return findVersion(txn, rec.DocumentInfo, versie)
}

// FindVersionAsOf returns the version with the greatest registration time not after t.
func (d *DB) FindVersionAsOf(_ context.Context, id string, t time.Time) (*database.VersionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}

	versions, err := versionsOf(txn, id)
	if err != nil {
		return nil, err
	}

	var match *database.VersionInfo
	for _, v := range versions {
		if v.BeginRegistratie.After(t) {
			break
		}
		match = v
	}
	if match == nil {
		return nil, fmt.Errorf("version of %s as of %s: %w", id, t.Format(time.RFC3339Nano), database.ErrVersionNotFound)
	}
	return decorate(match, rec.DocumentInfo), nil
}

// ListVersions returns every version of a document in ascending order.
func (d *DB) ListVersions(_ context.Context, id string) ([]*database.VersionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	rec, err := findDocument(txn, id)
	if err != nil {
		return nil, err
	}

	versions, err := versionsOf(txn, id)
	if err != nil {
		return nil, err
	}

	infos := make([]*database.VersionInfo, 0, len(versions))
	for _, v := range versions {
		infos = append(infos, decorate(v, rec.DocumentInfo))
	}
	return infos, nil
}

// ListLatestVersions returns the latest version of each matching document in creation order.
func (d *DB) ListLatestVersions(
	_ context.Context,
	filter database.VersionFilter,
	page pagination.PageRequest,
) ([]*database.VersionInfo, int, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblDocuments, "id")
	if err != nil {
		return nil, 0, fmt.Errorf("list documents: %w", err)
	}

	var records []*documentRecord
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		records = append(records, raw.(*documentRecord))
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Seq < records[j].Seq
	})

	var matched []*database.VersionInfo
	for _, rec := range records {
		v, err := findVersion(txn, rec.DocumentInfo, rec.LatestVersion)
		if err != nil {
			return nil, 0, err
		}
		if filter.Identificatie != nil && v.Identificatie != *filter.Identificatie {
			continue
		}
		if filter.Bronorganisatie != nil && v.Bronorganisatie != *filter.Bronorganisatie {
			continue
		}
		matched = append(matched, v)
	}

	total := len(matched)
	start := min(page.Offset(), total)
	end := min(start+page.PageSize, total)
	return matched[start:end], total, nil
}

// CreateRelation inserts a relation.
func (d *DB) CreateRelation(_ context.Context, rel *database.RelationInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	if _, err := findDocument(txn, rel.DocumentID); err != nil {
		return err
	}

	existing, err := txn.First(tblRelations, "document_id_object", rel.DocumentID, rel.Object)
	if err != nil {
		return fmt.Errorf("find relation: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("relation %s -> %s: %w", rel.DocumentID, rel.Object, database.ErrRelationExists)
	}

	if err := txn.Insert(tblRelations, rel.DeepCopy()); err != nil {
		return fmt.Errorf("insert relation: %w", err)
	}

	txn.Commit()
	return nil
}

func (d *DB) FindRelation(_ context.Context, id string) (*database.RelationInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblRelations, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find relation: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("relation %s: %w", id, database.ErrRelationNotFound)
	}
	return raw.(*database.RelationInfo).DeepCopy(), nil
}

func (d *DB) ListRelations(_ context.Context, filter database.RelationFilter) ([]*database.RelationInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	var (
		iter memdb.ResultIterator
		err  error
	)
	switch {
	case filter.DocumentID != nil:
		iter, err = txn.Get(tblRelations, "document_id", *filter.DocumentID)
	case filter.Object != nil:
		iter, err = txn.Get(tblRelations, "object", *filter.Object)
	default:
		iter, err = txn.Get(tblRelations, "id")
	}
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}

	infos := make([]*database.RelationInfo, 0)
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		rel := raw.(*database.RelationInfo)
		if filter.Object != nil && rel.Object != *filter.Object {
			continue
		}
		infos = append(infos, rel.DeepCopy())
	}
	return infos, nil
}

func (d *DB) DeleteRelation(_ context.Context, id string) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblRelations, "id", id)
	if err != nil {
		return fmt.Errorf("find relation: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("relation %s: %w", id, database.ErrRelationNotFound)
	}
	if err := txn.Delete(tblRelations, raw); err != nil {
		return fmt.Errorf("delete relation: %w", err)
	}

	txn.Commit()
	return nil
}

// CreateUsageRight inserts a usage right and sets the document indicator to true.
func (d *DB) CreateUsageRight(_ context.Context, right *database.UsageRightInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	rec, err := findDocument(txn, right.DocumentID)
	if err != nil {
		return err
	}

	if err := txn.Insert(tblUsageRights, right.DeepCopy()); err != nil {
		return fmt.Errorf("insert usage right: %w", err)
	}
	indicator := true
	if err := setIndicator(txn, rec, &indicator); err != nil {
		return err
	}

	txn.Commit()
	return nil
}

func (d *DB) FindUsageRight(_ context.Context, id string) (*database.UsageRightInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblUsageRights, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find usage right: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("usage right %s: %w", id, database.ErrUsageRightNotFound)
	}
	return raw.(*database.UsageRightInfo).DeepCopy(), nil
}

func (d *DB) ListUsageRights(_ context.Context, filter database.UsageRightFilter) ([]*database.UsageRightInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	var (
		iter memdb.ResultIterator
		err  error
	)
	if filter.DocumentID != nil {
		iter, err = txn.Get(tblUsageRights, "document_id", *filter.DocumentID)
	} else {
		iter, err = txn.Get(tblUsageRights, "id")
	}
	if err != nil {
		return nil, fmt.Errorf("list usage rights: %w", err)
	}

	infos := make([]*database.UsageRightInfo, 0)
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		u := raw.(*database.UsageRightInfo)
		if filter.Match(u) {
			infos = append(infos, u.DeepCopy())
		}
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].Startdatum.Before(infos[j].Startdatum)
	})
	return infos, nil
}

// UpdateUsageRight replaces the mutable fields of a usage right. The
// document reference is kept.
func (d *DB) UpdateUsageRight(_ context.Context, right *database.UsageRightInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblUsageRights, "id", right.ID)
	if err != nil {
		return fmt.Errorf("find usage right: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("usage right %s: %w", right.ID, database.ErrUsageRightNotFound)
	}

	updated := right.DeepCopy()
	updated.DocumentID = raw.(*database.UsageRightInfo).DocumentID
	if err := txn.Insert(tblUsageRights, updated); err != nil {
		return fmt.Errorf("update usage right: %w", err)
	}

	txn.Commit()
	return nil
}

// DeleteUsageRight removes a usage right and clears the document indicator
// when it was the last one.
func (d *DB) DeleteUsageRight(_ context.Context, id string) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblUsageRights, "id", id)
	if err != nil {
		return fmt.Errorf("find usage right: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("usage right %s: %w", id, database.ErrUsageRightNotFound)
	}
	right := raw.(*database.UsageRightInfo)

	if err := txn.Delete(tblUsageRights, raw); err != nil {
		return fmt.Errorf("delete usage right: %w", err)
	}

	remaining, err := txn.First(tblUsageRights, "document_id", right.DocumentID)
	if err != nil {
		return fmt.Errorf("find usage rights: %w", err)
	}
	if remaining == nil {
		rec, err := findDocument(txn, right.DocumentID)
		if err != nil {
			return err
		}
		if err := setIndicator(txn, rec, nil); err != nil {
			return err
		}
	}

	txn.Commit()
	return nil
}

func (d *DB) CountUsageRights(_ context.Context, documentID string) (int, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblUsageRights, "document_id", documentID)
	if err != nil {
		return 0, fmt.Errorf("count usage rights: %w", err)
	}

	count := 0
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		count++
	}
	return count, nil
}

func (d *DB) CreateAuditTrail(_ context.Context, entry *database.AuditTrailInfo) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(tblAuditTrails, entry.DeepCopy()); err != nil {
		return fmt.Errorf("insert audit trail: %w", err)
	}

	txn.Commit()
	return nil
}

// ListAuditTrails returns the audit entries of a document, oldest first.
func (d *DB) ListAuditTrails(_ context.Context, documentID string) ([]*database.AuditTrailInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iter, err := txn.Get(tblAuditTrails, "document_id", documentID)
	if err != nil {
		return nil, fmt.Errorf("list audit trails: %w", err)
	}

	infos := make([]*database.AuditTrailInfo, 0)
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		infos = append(infos, raw.(*database.AuditTrailInfo).DeepCopy())
	}
	sort.SliceStable(infos, func(i, j int) bool {
		return infos[i].AanmaakDatum.Before(infos[j].AanmaakDatum)
	})
	return infos, nil
}

func (d *DB) FindAuditTrail(_ context.Context, documentID, id string) (*database.AuditTrailInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblAuditTrails, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find audit trail: %w", err)
	}
	if raw == nil || raw.(*database.AuditTrailInfo).DocumentID != documentID {
		return nil, fmt.Errorf("audit trail %s: %w", id, database.ErrAuditTrailNotFound)
	}
	return raw.(*database.AuditTrailInfo).DeepCopy(), nil
}

func findDocument(txn *memdb.Txn, id string) (*documentRecord, error) {
	raw, err := txn.First(tblDocuments, "id", id)
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("document %s: %w", id, database.ErrDocumentNotFound)
	}
	return raw.(*documentRecord), nil
}

func findVersion(txn *memdb.Txn, doc *database.DocumentInfo, versie int) (*database.VersionInfo, error) {
	raw, err := txn.First(tblVersions, "id", doc.ID, versie)
	if err != nil {
		return nil, fmt.Errorf("find version: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("version %d of %s: %w", versie, doc.ID, database.ErrVersionNotFound)
	}
	return decorate(raw.(*database.VersionInfo), doc), nil
}

// versionsOf returns the stored versions of a document sorted by number.
func versionsOf(txn *memdb.Txn, id string) ([]*database.VersionInfo, error) {
	iter, err := txn.Get(tblVersions, "document_id", id)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}

	var versions []*database.VersionInfo
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		versions = append(versions, raw.(*database.VersionInfo))
	}
	slices.SortFunc(versions, func(a, b *database.VersionInfo) int {
		return a.Versie - b.Versie
	})
	return versions, nil
}

func setIndicator(txn *memdb.Txn, rec *documentRecord, value *bool) error {
	updated := &documentRecord{DocumentInfo: rec.DocumentInfo.DeepCopy(), Seq: rec.Seq}
	updated.IndicatieGebruiksrecht = value
	if err := txn.Insert(tblDocuments, updated); err != nil {
		return fmt.Errorf("update indicator: %w", err)
	}
	return nil
}

// stored strips identity-level fields before a version is persisted.
func stored(v *database.VersionInfo, documentID string) *database.VersionInfo {
	c := v.DeepCopy()
	c.DocumentID = documentID
	c.IndicatieGebruiksrecht = nil
	c.Lock = ""
	c.Locked = false
	return c
}

// decorate copies v and fills in the identity-level fields from doc.
func decorate(v *database.VersionInfo, doc *database.DocumentInfo) *database.VersionInfo {
	c := v.DeepCopy()
	c.IndicatieGebruiksrecht = copyBool(doc.IndicatieGebruiksrecht)
	c.Lock = doc.Lock
	c.Locked = doc.Lock != ""
	return c
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

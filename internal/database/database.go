// Package database defines the persistence contract of the registry. The
// postgres and memory packages implement it; domain systems depend only on
// the Database interface and the Info records declared here.
package database

import (
	"context"
	"errors"
	"time"

	"github.com/JaimeStill/document-registry/pkg/pagination"
)

var (
	// ErrDocumentNotFound is returned when the document identity does not exist.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrVersionNotFound is returned when no version matches the lookup.
	ErrVersionNotFound = errors.New("version not found")

	// ErrVersionConflict is returned when another writer claimed the version
	// number first. The write may be retried against the new latest version.
	ErrVersionConflict = errors.New("version conflict")

	// ErrPendingRelations is returned when deleting a document that relations still reference.
	ErrPendingRelations = errors.New("document has pending relations")

	// ErrRelationNotFound is returned when the relation does not exist.
	ErrRelationNotFound = errors.New("relation not found")

	// ErrRelationExists is returned when the (document, object) pair is already related.
	ErrRelationExists = errors.New("relation already exists")

	// ErrUsageRightNotFound is returned when the usage right does not exist.
	ErrUsageRightNotFound = errors.New("usage right not found")

	// ErrAuditTrailNotFound is returned when the audit entry does not exist.
	ErrAuditTrailNotFound = errors.New("audit trail not found")
)

// VersionBuilder derives the next version from the current latest one. The
// returned record is written as is; its Versie must be unused for the document.
type VersionBuilder func(latest *VersionInfo) (*VersionInfo, error)

// LockMutator derives the new lock token from the current one. An empty
// token means unlocked.
type LockMutator func(current string) (string, error)

// Database represents the store holding documents, versions, relations,
// usage rights and audit trails.
type Database interface {
	// Close releases the resources held by the database.
	Close() error

	// CreateDocument inserts a new identity together with its first version.
	CreateDocument(ctx context.Context, doc *DocumentInfo, first *VersionInfo) error

	// FindDocumentInfo returns the identity row.
	FindDocumentInfo(ctx context.Context, id string) (*DocumentInfo, error)

	// AppendVersion locks the identity, passes the latest version to build
	// and stores the result as the new latest version, all in one transaction.
	AppendVersion(ctx context.Context, id string, build VersionBuilder) (*VersionInfo, error)

	// UpdateLock locks the identity and replaces its lock token with the
	// value produced by mutate.
	UpdateLock(ctx context.Context, id string, mutate LockMutator) (*DocumentInfo, error)

	// DeleteDocument removes the identity with its versions and usage rights.
	// It fails with ErrPendingRelations while relations reference the identity.
	DeleteDocument(ctx context.Context, id string) error

	// FindLatestVersion returns the version with the highest number.
	FindLatestVersion(ctx context.Context, id string) (*VersionInfo, error)

	// FindVersion returns the version with exactly the given number.
	FindVersion(ctx context.Context, id string, versie int) (*VersionInfo, error)

	// FindVersionAsOf returns the version with the greatest registration
	// time not after t.
	FindVersionAsOf(ctx context.Context, id string, t time.Time) (*VersionInfo, error)

	// ListVersions returns every version of a document in ascending order.
	ListVersions(ctx context.Context, id string) ([]*VersionInfo, error)

	// ListLatestVersions returns the latest version of each matching
	// document in identity creation order, with the total match count.
	ListLatestVersions(ctx context.Context, filter VersionFilter, page pagination.PageRequest) ([]*VersionInfo, int, error)

	// CreateRelation inserts a relation. It fails with ErrDocumentNotFound
	// for an unknown document and ErrRelationExists for a duplicate pair.
	CreateRelation(ctx context.Context, rel *RelationInfo) error

	FindRelation(ctx context.Context, id string) (*RelationInfo, error)

	ListRelations(ctx context.Context, filter RelationFilter) ([]*RelationInfo, error)

	DeleteRelation(ctx context.Context, id string) error

	// CreateUsageRight inserts a usage right and sets the document indicator to true.
	CreateUsageRight(ctx context.Context, right *UsageRightInfo) error

	FindUsageRight(ctx context.Context, id string) (*UsageRightInfo, error)

	ListUsageRights(ctx context.Context, filter UsageRightFilter) ([]*UsageRightInfo, error)

	// UpdateUsageRight replaces the mutable fields of a usage right.
	UpdateUsageRight(ctx context.Context, right *UsageRightInfo) error

	// DeleteUsageRight removes a usage right and clears the document
	// indicator when it was the last one.
	DeleteUsageRight(ctx context.Context, id string) error

	// CountUsageRights returns the number of usage rights of a document.
	CountUsageRights(ctx context.Context, documentID string) (int, error)

	CreateAuditTrail(ctx context.Context, entry *AuditTrailInfo) error

	ListAuditTrails(ctx context.Context, documentID string) ([]*AuditTrailInfo, error)

	FindAuditTrail(ctx context.Context, documentID, id string) (*AuditTrailInfo, error)
}

package api

import (
	"github.com/JaimeStill/document-registry/internal/audit"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/documents"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/locks"
	"github.com/JaimeStill/document-registry/internal/relations"
	"github.com/JaimeStill/document-registry/internal/remote"
	"github.com/JaimeStill/document-registry/internal/usagerights"
	"github.com/JaimeStill/document-registry/internal/versions"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Versions    versions.System
	Locks       locks.System
	Documents   documents.System
	Relations   relations.System
	UsageRights usagerights.System
	Audit       audit.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	auditSys := audit.New(runtime.Database, runtime.URLs, runtime.Logger)
	publisher := events.NewPublisher(runtime.Notifications, auditSys, runtime.URLs, runtime.Logger)

	versionsSys := versions.New(
		runtime.Database,
		cfg.Registry,
		runtime.Logger,
		versions.WithMetrics(runtime.Metrics),
	)

	locksSys := locks.New(runtime.Database, runtime.Logger, runtime.Metrics)

	documentsSys := documents.New(
		versionsSys,
		locksSys,
		runtime.Storage,
		runtime.Database,
		runtime.URLs,
		publisher,
		documents.UploadLimits{
			Min: cfg.Storage.MinUploadSizeBytes(),
			Max: cfg.Storage.MaxUploadSizeBytes(),
		},
		runtime.Pagination,
		runtime.Logger,
	)

	relationsSys := relations.New(
		runtime.Database,
		runtime.URLs,
		remote.New(&cfg.Remote, runtime.Logger),
		publisher,
		runtime.Metrics,
		runtime.Logger,
	)

	usageRightsSys := usagerights.New(
		runtime.Database,
		runtime.URLs,
		publisher,
		runtime.Metrics,
		runtime.Logger,
	)

	return &Domain{
		Versions:    versionsSys,
		Locks:       locksSys,
		Documents:   documentsSys,
		Relations:   relationsSys,
		UsageRights: usageRightsSys,
		Audit:       auditSys,
	}
}

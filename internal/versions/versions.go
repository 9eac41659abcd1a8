package versions

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/metrics"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// Option configures the version store.
type Option func(*store)

// WithClock replaces the time source used for registration timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *store) {
		s.now = now
	}
}

// WithMetrics records appends and retries on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *store) {
		s.metrics = m
	}
}

type store struct {
	db         database.Database
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
	start      int
	step       int
	maxRetries int
}

// New creates a version store numbering versions according to cfg.
func New(db database.Database, cfg config.RegistryConfig, logger *slog.Logger, opts ...Option) System {
	s := &store{
		db:         db,
		logger:     logger.With("system", "versions"),
		now:        time.Now,
		start:      cfg.VersionStart,
		step:       cfg.VersionStep,
		maxRetries: cfg.MaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxRetries < 1 {
		s.maxRetries = 1
	}
	return s
}

func (s *store) Create(ctx context.Context, first *database.VersionInfo) (*database.VersionInfo, error) {
	v := first.DeepCopy()
	if v.DocumentID == "" {
		v.DocumentID = uuid.NewString()
	}
	if strings.TrimSpace(v.Identificatie) == "" {
		v.Identificatie = uuid.NewString()
	}

	now := s.timestamp(time.Time{})
	v.Versie = s.start
	v.BeginRegistratie = now
	v.Lock = ""
	v.Locked = false

	doc := &database.DocumentInfo{
		ID:                     v.DocumentID,
		LatestVersion:          v.Versie,
		IndicatieGebruiksrecht: v.IndicatieGebruiksrecht,
		CreatedAt:              now,
	}

	if err := s.db.CreateDocument(ctx, doc, v); err != nil {
		return nil, mapError("create document", err)
	}

	s.metrics.DocumentCreated()
	s.logger.Info("document created", "id", v.DocumentID, "versie", v.Versie)
	return v, nil
}

func (s *store) Append(ctx context.Context, id string, build Builder) (*database.VersionInfo, error) {
	next := func(latest *database.VersionInfo) (*database.VersionInfo, error) {
		v, err := build(latest.DeepCopy())
		if err != nil {
			return nil, err
		}
		v = v.DeepCopy()
		v.DocumentID = id
		v.Versie = latest.Versie + s.step
		v.BeginRegistratie = s.timestamp(latest.BeginRegistratie)
		return v, nil
	}

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		v, err := s.db.AppendVersion(ctx, id, next)
		if err == nil {
			s.metrics.VersionAppended()
			s.logger.Info("version appended", "id", id, "versie", v.Versie)
			return v, nil
		}
		if !errors.Is(err, database.ErrVersionConflict) {
			return nil, mapError("append version", err)
		}

		lastErr = err
		s.metrics.VersionRetried()
		s.logger.Warn("version append conflict", "id", id, "attempt", attempt, "error", err)
	}

	return nil, mapError("append version", lastErr)
}

func (s *store) Latest(ctx context.Context, id string) (*database.VersionInfo, error) {
	v, err := s.db.FindLatestVersion(ctx, id)
	if err != nil {
		return nil, mapError("find latest version", err)
	}
	return v, nil
}

func (s *store) AtVersion(ctx context.Context, id string, versie int) (*database.VersionInfo, error) {
	v, err := s.db.FindVersion(ctx, id, versie)
	if err != nil {
		return nil, mapError("find version", err)
	}
	return v, nil
}

func (s *store) AsOf(ctx context.Context, id string, t time.Time) (*database.VersionInfo, error) {
	v, err := s.db.FindVersionAsOf(ctx, id, t)
	if err != nil {
		return nil, mapError("find version as of", err)
	}
	return v, nil
}

func (s *store) History(ctx context.Context, id string) ([]*database.VersionInfo, error) {
	versions, err := s.db.ListVersions(ctx, id)
	if err != nil {
		return nil, mapError("list versions", err)
	}
	return versions, nil
}

func (s *store) List(
	ctx context.Context,
	filter database.VersionFilter,
	page pagination.PageRequest,
) ([]*database.VersionInfo, int, error) {
	versions, total, err := s.db.ListLatestVersions(ctx, filter, page)
	if err != nil {
		return nil, 0, mapError("list latest versions", err)
	}
	return versions, total, nil
}

func (s *store) Delete(ctx context.Context, id string) error {
	if err := s.db.DeleteDocument(ctx, id); err != nil {
		return mapError("delete document", err)
	}

	s.metrics.DocumentDeleted()
	s.logger.Info("document deleted", "id", id)
	return nil
}

// timestamp returns the registration time of a new version. It never
// precedes the registration of the previous version.
func (s *store) timestamp(previous time.Time) time.Time {
	now := s.now().UTC().Truncate(time.Microsecond)
	if now.Before(previous) {
		return previous
	}
	return now
}

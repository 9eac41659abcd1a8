package relations

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/metrics"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/remote"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/internal/validation"
)

// Metric operation labels.
const (
	OpCreate = "create"
	OpDelete = "delete"
)

type system struct {
	db        database.Database
	urls      urls.Builder
	oracle    remote.Oracle
	publisher *events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures the relation system.
type Option func(*system)

// WithClock replaces the time source of the registratiedatum.
func WithClock(now func() time.Time) Option {
	return func(s *system) {
		s.now = now
	}
}

// New creates the relation system. m may be nil.
func New(
	db database.Database,
	b urls.Builder,
	oracle remote.Oracle,
	publisher *events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	opts ...Option,
) System {
	s := &system{
		db:        db,
		urls:      b,
		oracle:    oracle,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("system", "relations"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *system) Create(ctx context.Context, cmd CreateCommand) (*Relation, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}

	documentID, ok := s.urls.DocumentID(cmd.Informatieobject)
	if !ok {
		return nil, ErrDocumentDoesNotExist
	}

	if _, err := remote.MirrorURL(cmd.ObjectType, cmd.Object, s.urls.Document(documentID)); err != nil {
		return nil, err
	}

	v := newVariant(cmd, s.now().UTC().Truncate(time.Microsecond))
	info := toInfo(uuid.NewString(), documentID, cmd.Object, v)

	if err := s.db.CreateRelation(ctx, info); err != nil {
		return nil, mapError("create relation", err)
	}

	rel := toRelation(s.urls, info)
	s.logger.Info("relation created", "id", info.ID, "document_id", documentID, "object_type", info.ObjectType)
	s.metrics.RelationOperation(OpCreate, info.ObjectType)

	s.publish(ctx, info, notifications.ActionCreate, http.StatusCreated, nil, rel)
	return &rel, nil
}

func (s *system) Get(ctx context.Context, id string) (*Relation, error) {
	info, err := s.db.FindRelation(ctx, id)
	if err != nil {
		return nil, mapError("find relation", err)
	}

	rel := toRelation(s.urls, info)
	return &rel, nil
}

func (s *system) List(ctx context.Context, filters Filters) ([]Relation, error) {
	var filter database.RelationFilter
	if filters.Object != "" {
		filter.Object = &filters.Object
	}
	if filters.Informatieobject != "" {
		documentID, ok := s.urls.DocumentID(filters.Informatieobject)
		if !ok {
			return []Relation{}, nil
		}
		filter.DocumentID = &documentID
	}

	infos, err := s.db.ListRelations(ctx, filter)
	if err != nil {
		return nil, mapError("list relations", err)
	}

	rels := make([]Relation, 0, len(infos))
	for _, info := range infos {
		rels = append(rels, toRelation(s.urls, info))
	}
	return rels, nil
}

func (s *system) Delete(ctx context.Context, id string) error {
	info, err := s.db.FindRelation(ctx, id)
	if err != nil {
		return mapError("find relation", err)
	}

	exists, err := s.oracle.RelationExists(ctx, info, s.urls.Document(info.DocumentID))
	if err != nil {
		return mapError("query remote relation", err)
	}
	if exists {
		return ErrRemoteRelation
	}

	old := toRelation(s.urls, info)
	if err := s.db.DeleteRelation(ctx, id); err != nil {
		return mapError("delete relation", err)
	}

	s.logger.Info("relation deleted", "id", id, "document_id", info.DocumentID)
	s.metrics.RelationOperation(OpDelete, info.ObjectType)

	s.publish(ctx, info, notifications.ActionDestroy, http.StatusNoContent, old, nil)
	return nil
}

func (s *system) publish(ctx context.Context, info *database.RelationInfo, actie string, resultaat int, oud, nieuw any) {
	latest, err := s.db.FindLatestVersion(ctx, info.DocumentID)
	if err != nil && !errors.Is(err, database.ErrVersionNotFound) && !errors.Is(err, database.ErrDocumentNotFound) {
		s.logger.Warn("load document for event", "error", err, "document_id", info.DocumentID)
	}

	s.publisher.Publish(ctx, events.Event{
		DocumentID:       info.DocumentID,
		Document:         latest,
		Actie:            actie,
		Resultaat:        resultaat,
		Resource:         notifications.ResourceRelation,
		ResourceURL:      s.urls.Relation(info.ID),
		ResourceWeergave: info.Object,
		Oud:              oud,
		Nieuw:            nieuw,
	})
}

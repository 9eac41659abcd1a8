package usagerights

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/metrics"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/internal/validation"
)

// Metric operation labels.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type system struct {
	db        database.Database
	urls      urls.Builder
	publisher *events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

// New creates the usage right system. m may be nil.
func New(db database.Database, b urls.Builder, publisher *events.Publisher, m *metrics.Metrics, logger *slog.Logger) System {
	return &system{
		db:        db,
		urls:      b,
		publisher: publisher,
		metrics:   m,
		logger:    logger.With("system", "usagerights"),
	}
}

func (s *system) Create(ctx context.Context, cmd Command) (*UsageRight, error) {
	if err := validate(cmd); err != nil {
		return nil, err
	}

	documentID, ok := s.urls.DocumentID(cmd.Informatieobject)
	if !ok {
		return nil, ErrDocumentDoesNotExist
	}

	info := toInfo(uuid.NewString(), documentID, cmd)
	if err := s.db.CreateUsageRight(ctx, info); err != nil {
		return nil, mapError("create usage right", err)
	}

	right := toUsageRight(s.urls, info)
	s.logger.Info("usage right created", "id", info.ID, "document_id", documentID)
	s.metrics.UsageRightOperation(OpCreate)

	s.publish(ctx, info, notifications.ActionCreate, http.StatusCreated, nil, right)
	return &right, nil
}

func (s *system) Get(ctx context.Context, id string) (*UsageRight, error) {
	info, err := s.db.FindUsageRight(ctx, id)
	if err != nil {
		return nil, mapError("find usage right", err)
	}

	right := toUsageRight(s.urls, info)
	return &right, nil
}

func (s *system) List(ctx context.Context, filters Filters) ([]UsageRight, error) {
	filter := database.UsageRightFilter{
		StartdatumLT:  filters.Startdatum.LT,
		StartdatumLTE: filters.Startdatum.LTE,
		StartdatumGT:  filters.Startdatum.GT,
		StartdatumGTE: filters.Startdatum.GTE,
		EinddatumLT:   filters.Einddatum.LT,
		EinddatumLTE:  filters.Einddatum.LTE,
		EinddatumGT:   filters.Einddatum.GT,
		EinddatumGTE:  filters.Einddatum.GTE,
	}
	if filters.Informatieobject != "" {
		documentID, ok := s.urls.DocumentID(filters.Informatieobject)
		if !ok {
			return []UsageRight{}, nil
		}
		filter.DocumentID = &documentID
	}

	infos, err := s.db.ListUsageRights(ctx, filter)
	if err != nil {
		return nil, mapError("list usage rights", err)
	}

	rights := make([]UsageRight, 0, len(infos))
	for _, info := range infos {
		rights = append(rights, toUsageRight(s.urls, info))
	}
	return rights, nil
}

func (s *system) Update(ctx context.Context, id string, cmd Command) (*UsageRight, error) {
	return s.update(ctx, id, notifications.ActionUpdate, func(UsageRight) Command {
		return cmd
	})
}

func (s *system) PartialUpdate(ctx context.Context, id string, cmd PatchCommand) (*UsageRight, error) {
	return s.update(ctx, id, notifications.ActionPartialUpdate, cmd.apply)
}

func (s *system) update(ctx context.Context, id, actie string, next func(UsageRight) Command) (*UsageRight, error) {
	current, err := s.db.FindUsageRight(ctx, id)
	if err != nil {
		return nil, mapError("find usage right", err)
	}
	old := toUsageRight(s.urls, current)

	cmd := next(old)
	if err := validate(cmd); err != nil {
		return nil, err
	}
	if documentID, ok := s.urls.DocumentID(cmd.Informatieobject); !ok || documentID != current.DocumentID {
		return nil, ErrImmutableDocument
	}

	info := toInfo(id, current.DocumentID, cmd)
	if err := s.db.UpdateUsageRight(ctx, info); err != nil {
		return nil, mapError("update usage right", err)
	}

	right := toUsageRight(s.urls, info)
	s.logger.Info("usage right updated", "id", id, "actie", actie)
	s.metrics.UsageRightOperation(OpUpdate)

	s.publish(ctx, info, actie, http.StatusOK, old, right)
	return &right, nil
}

func (s *system) Delete(ctx context.Context, id string) error {
	info, err := s.db.FindUsageRight(ctx, id)
	if err != nil {
		return mapError("find usage right", err)
	}
	old := toUsageRight(s.urls, info)

	if err := s.db.DeleteUsageRight(ctx, id); err != nil {
		return mapError("delete usage right", err)
	}

	s.logger.Info("usage right deleted", "id", id, "document_id", info.DocumentID)
	s.metrics.UsageRightOperation(OpDelete)

	s.publish(ctx, info, notifications.ActionDestroy, http.StatusNoContent, old, nil)
	return nil
}

func (s *system) publish(ctx context.Context, info *database.UsageRightInfo, actie string, resultaat int, oud, nieuw any) {
	latest, err := s.db.FindLatestVersion(ctx, info.DocumentID)
	if err != nil && !errors.Is(err, database.ErrDocumentNotFound) {
		s.logger.Warn("load document for event", "error", err, "document_id", info.DocumentID)
	}

	s.publisher.Publish(ctx, events.Event{
		DocumentID:       info.DocumentID,
		Document:         latest,
		Actie:            actie,
		Resultaat:        resultaat,
		Resource:         notifications.ResourceUsageRight,
		ResourceURL:      s.urls.UsageRight(info.ID),
		ResourceWeergave: events.Weergave(latest),
		Oud:              oud,
		Nieuw:            nieuw,
	})
}

func validate(cmd Command) error {
	if err := validation.Struct(cmd); err != nil {
		return err
	}
	if cmd.Einddatum != nil && cmd.Einddatum.Before(*cmd.Startdatum) {
		return ErrEndBeforeStart
	}
	return nil
}

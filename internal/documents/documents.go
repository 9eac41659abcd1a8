package documents

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/events"
	"github.com/JaimeStill/document-registry/internal/locks"
	"github.com/JaimeStill/document-registry/internal/notifications"
	"github.com/JaimeStill/document-registry/internal/storage"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/internal/versions"
	"github.com/JaimeStill/document-registry/pkg/faults"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// RightsCounter reports how many usage rights a document has.
type RightsCounter interface {
	CountUsageRights(ctx context.Context, documentID string) (int, error)
}

type service struct {
	versions   versions.System
	locks      locks.System
	store      storage.System
	rights     RightsCounter
	urls       urls.Builder
	publisher  *events.Publisher
	limits     UploadLimits
	pagination pagination.Config
	logger     *slog.Logger
}

// New creates the document service.
func New(
	vs versions.System,
	lm locks.System,
	store storage.System,
	rights RightsCounter,
	b urls.Builder,
	publisher *events.Publisher,
	limits UploadLimits,
	pagination pagination.Config,
	logger *slog.Logger,
) System {
	return &service{
		versions:   vs,
		locks:      lm,
		store:      store,
		rights:     rights,
		urls:       b,
		publisher:  publisher,
		limits:     limits,
		pagination: pagination,
		logger:     logger.With("system", "documents"),
	}
}

func (s *service) Handler(maxUploadSize int64) *Handler {
	return NewHandler(s, s.logger, s.pagination, s.urls, maxUploadSize)
}

func (s *service) Create(ctx context.Context, cmd Command) (*Document, error) {
	cmd.Fields = cmd.Fields.withDefaults()
	if err := validate(cmd.Fields); err != nil {
		return nil, err
	}
	if err := s.checkIdentificatie(ctx, cmd.Fields); err != nil {
		return nil, err
	}

	first := &database.VersionInfo{}
	cmd.Fields.applyTo(first)

	id := uuid.NewString()
	first.DocumentID = id

	c, err := s.storeContent(ctx, id, cmd.Inhoud)
	if err != nil {
		return nil, err
	}
	c.applyTo(first, cmd.Formaat != "")

	created, err := s.versions.Create(ctx, first)
	if err != nil {
		s.discard(ctx, c)
		return nil, err
	}

	doc := toDocument(s.urls, created)
	s.publish(ctx, created, notifications.ActionCreate, http.StatusCreated, nil, doc)
	return &doc, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, cmd Command) (*Document, error) {
	return s.update(ctx, id.String(), cmd.Lock, notifications.ActionUpdate, cmd.Inhoud, cmd.Formaat != "", func(Fields) Fields {
		return cmd.Fields
	})
}

func (s *service) PartialUpdate(ctx context.Context, id uuid.UUID, cmd PatchCommand) (*Document, error) {
	return s.update(ctx, id.String(), cmd.Lock, notifications.ActionPartialUpdate, cmd.content(), cmd.formaatSupplied(), func(previous Fields) Fields {
		return Merge(previous, cmd)
	})
}

// update validates the next state against the latest version, stores new
// content and appends the version. The lock is checked again inside the
// append so a concurrent unlock cannot slip in between. New content
// replaces formaat with the detected type unless the client supplied one.
func (s *service) update(
	ctx context.Context,
	id, token, actie string,
	inhoud *string,
	formaatSupplied bool,
	next func(Fields) Fields,
) (*Document, error) {
	if err := s.locks.Assert(ctx, id, token); err != nil {
		return nil, err
	}

	latest, err := s.versions.Latest(ctx, id)
	if err != nil {
		return nil, err
	}
	old := toDocument(s.urls, latest)

	preview := next(fieldsOf(latest)).withDefaults()
	if err := validate(preview); err != nil {
		return nil, err
	}
	if err := s.checkIndicator(ctx, id, latest.IndicatieGebruiksrecht, preview.IndicatieGebruiksrecht); err != nil {
		return nil, err
	}

	c, err := s.storeContent(ctx, id, inhoud)
	if err != nil {
		return nil, err
	}

	updated, err := s.versions.Append(ctx, id, func(current *database.VersionInfo) (*database.VersionInfo, error) {
		if err := locks.Check(current.Lock, token); err != nil {
			return nil, err
		}
		f := next(fieldsOf(current)).withDefaults()
		if err := validate(f); err != nil {
			return nil, err
		}
		if err := s.checkIndicator(ctx, id, current.IndicatieGebruiksrecht, f.IndicatieGebruiksrecht); err != nil {
			return nil, err
		}
		f.applyTo(current)
		c.applyTo(current, formaatSupplied)
		return current, nil
	})
	if err != nil {
		s.discard(ctx, c)
		return nil, err
	}

	doc := toDocument(s.urls, updated)
	s.publish(ctx, updated, actie, http.StatusOK, old, doc)
	return &doc, nil
}

func (s *service) Delete(ctx context.Context, documentID uuid.UUID) error {
	id := documentID.String()
	latest, err := s.versions.Latest(ctx, id)
	if err != nil {
		return err
	}
	history, err := s.versions.History(ctx, id)
	if err != nil {
		return err
	}

	if err := s.versions.Delete(ctx, id); err != nil {
		return err
	}

	seen := make(map[string]bool, len(history))
	for _, v := range history {
		if v.ContentKey == "" || seen[v.ContentKey] {
			continue
		}
		seen[v.ContentKey] = true
		if err := s.store.Delete(context.WithoutCancel(ctx), v.ContentKey); err != nil {
			s.logger.Warn("delete content", "id", id, "key", v.ContentKey, "error", err)
		}
	}

	s.publish(ctx, latest, notifications.ActionDestroy, http.StatusNoContent, toDocument(s.urls, latest), nil)
	return nil
}

func (s *service) Lock(ctx context.Context, id uuid.UUID) (string, error) {
	return s.locks.Lock(ctx, id.String())
}

func (s *service) Unlock(ctx context.Context, id uuid.UUID, token string, force bool) error {
	return s.locks.Unlock(ctx, id.String(), token, force)
}

func (s *service) Find(ctx context.Context, id uuid.UUID, pin Pin) (*Document, error) {
	v, err := s.resolve(ctx, id.String(), pin)
	if err != nil {
		return nil, err
	}

	doc := toDocument(s.urls, v)
	return &doc, nil
}

func (s *service) List(ctx context.Context, filters Filters, page pagination.PageRequest) ([]Document, int, error) {
	page.Normalize(s.pagination)

	vs, total, err := s.versions.List(ctx, filters.toVersionFilter(), page)
	if err != nil {
		return nil, 0, err
	}

	docs := make([]Document, 0, len(vs))
	for _, v := range vs {
		docs = append(docs, toDocument(s.urls, v))
	}
	return docs, total, nil
}

func (s *service) Download(ctx context.Context, id uuid.UUID, pin Pin) (*Document, io.ReadCloser, error) {
	v, err := s.resolve(ctx, id.String(), pin)
	if err != nil {
		return nil, nil, err
	}
	if v.ContentKey == "" {
		return nil, nil, ErrNoContent
	}

	rc, err := s.store.Open(ctx, v.ContentKey)
	if err != nil {
		return nil, nil, mapStorageError("open content", err)
	}

	doc := toDocument(s.urls, v)
	return &doc, rc, nil
}

// resolve returns the version selected by pin. With both members set the
// requested versie must have been registered by registratieOp.
func (s *service) resolve(ctx context.Context, id string, pin Pin) (*database.VersionInfo, error) {
	switch {
	case pin.Versie != nil:
		v, err := s.versions.AtVersion(ctx, id, *pin.Versie)
		if err != nil {
			return nil, err
		}
		if pin.RegistratieOp != nil && v.BeginRegistratie.After(*pin.RegistratieOp) {
			return nil, versions.ErrVersionNotFound
		}
		return v, nil
	case pin.RegistratieOp != nil:
		return s.versions.AsOf(ctx, id, *pin.RegistratieOp)
	default:
		return s.versions.Latest(ctx, id)
	}
}

func (s *service) checkIdentificatie(ctx context.Context, f Fields) error {
	if f.Identificatie == "" {
		return nil
	}
	filter := database.VersionFilter{
		Identificatie:   &f.Identificatie,
		Bronorganisatie: &f.Bronorganisatie,
	}
	_, total, err := s.versions.List(ctx, filter, pagination.PageRequest{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrIdentificatieTaken
	}
	return nil
}

func (s *service) checkIndicator(ctx context.Context, id string, current, next *bool) error {
	if !clearsIndicator(current, next) {
		return nil
	}
	n, err := s.rights.CountUsageRights(ctx, id)
	if err != nil {
		return faults.Backend("count usage rights: %w", err)
	}
	if n > 0 {
		return ErrExistingRights
	}
	return nil
}

func (s *service) publish(ctx context.Context, v *database.VersionInfo, actie string, resultaat int, oud, nieuw any) {
	s.publisher.Publish(ctx, events.Event{
		DocumentID:       v.DocumentID,
		Document:         v,
		Actie:            actie,
		Resultaat:        resultaat,
		Resource:         notifications.ResourceDocument,
		ResourceURL:      s.urls.Document(v.DocumentID),
		ResourceWeergave: v.UniqueRepresentation(),
		Oud:              oud,
		Nieuw:            nieuw,
	})
}

package relations

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/pkg/faults"
	"github.com/JaimeStill/document-registry/pkg/handlers"
	"github.com/JaimeStill/document-registry/pkg/routes"
)

// Handler serves the object relation endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "objectinformatieobjecten"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      urls.Relations,
		Tags:        []string{"Objectinformatieobjecten"},
		Description: "Relations between documents and zaken or besluiten",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{uuid}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "DELETE", Pattern: "/{uuid}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, 0, faults.Validation("", "parse_error", "invalid request body"))
		return
	}

	rel, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, rel)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return
	}

	rel, err := h.sys.Get(r.Context(), id.String())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rel)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	rels, err := h.sys.List(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rels)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return
	}

	if err := h.sys.Delete(r.Context(), id.String()); err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

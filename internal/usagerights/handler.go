package usagerights

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

var errParse = faults.Validation("", "parse_error", "invalid request body")

// Handler serves the gebruiksrechten endpoints.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "gebruiksrechten"),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      urls.UsageRights,
		Tags:        []string{"Gebruiksrechten"},
		Description: "Usage rights of documents",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{uuid}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{uuid}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "PATCH", Pattern: "/{uuid}", Handler: h.PartialUpdate, OpenAPI: Spec.PartialUpdate},
			{Method: "DELETE", Pattern: "/{uuid}", Handler: h.Delete, OpenAPI: Spec.Delete},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, 0, errParse)
		return
	}

	right, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, right)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	right, err := h.sys.Get(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, right)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	rights, err := h.sys.List(r.Context(), filters)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rights)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, 0, errParse)
		return
	}

	right, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, right)
}

func (h *Handler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var cmd PatchCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, 0, errParse)
		return
	}

	right, err := h.sys.PartialUpdate(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, right)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return "", false
	}
	return id.String(), true
}

package audit

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/pkg/handlers"
	"github.com/JaimeStill/document-registry/pkg/routes"
)

// Handler serves the audit trails of documents.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "audittrails"),
	}
}

// Routes returns the audit trail route group nested under the documents collection.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      urls.Documents,
		Tags:        []string{"Audittrails"},
		Description: "Audit trails of documents",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{uuid}" + urls.AuditTrails, Handler: h.List, OpenAPI: Spec.List},
			{Method: "GET", Pattern: "/{uuid}" + urls.AuditTrails + "/{audit_uuid}", Handler: h.Find, OpenAPI: Spec.Find},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return
	}

	trails, err := h.sys.List(r.Context(), id.String())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, trails)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return
	}
	auditID, err := uuid.Parse(r.PathValue("audit_uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return
	}

	trail, err := h.sys.Get(r.Context(), id.String(), auditID.String())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, trail)
}

package documents

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/document-registry/internal/auth"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/pkg/faults"
	"github.com/JaimeStill/document-registry/pkg/handlers"
	"github.com/JaimeStill/document-registry/pkg/pagination"
	"github.com/JaimeStill/document-registry/pkg/routes"
)

// bodyOverhead is the allowance for the JSON attributes around inhoud.
const bodyOverhead = 64 << 10

var (
	errParse        = faults.Validation("", "parse_error", "invalid request body")
	errBodyTooLarge = faults.Validation("inhoud", "file-too-large", "request body exceeds the maximum upload size")
)

// LockBody is the body of the lock response and the unlock request.
type LockBody struct {
	Lock string `json:"lock"`
}

// Handler provides HTTP endpoints for document operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	urls        urls.Builder
	maxBodySize int64
}

// NewHandler creates a document handler. maxUploadSize bounds the decoded
// content; zero disables the request body limit.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, b urls.Builder, maxUploadSize int64) *Handler {
	var maxBody int64
	if maxUploadSize > 0 {
		maxBody = (maxUploadSize+2)/3*4 + bodyOverhead
	}
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "enkelvoudiginformatieobjecten"),
		pagination:  pagination,
		urls:        b,
		maxBodySize: maxBody,
	}
}

// Routes returns the document endpoint route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      urls.Documents,
		Tags:        []string{"Enkelvoudiginformatieobjecten"},
		Description: "Versioned documents with their content",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, OpenAPI: Spec.List},
			{Method: "POST", Pattern: "", Handler: h.Create, OpenAPI: Spec.Create},
			{Method: "GET", Pattern: "/{uuid}", Handler: h.Find, OpenAPI: Spec.Find},
			{Method: "PUT", Pattern: "/{uuid}", Handler: h.Update, OpenAPI: Spec.Update},
			{Method: "PATCH", Pattern: "/{uuid}", Handler: h.PartialUpdate, OpenAPI: Spec.PartialUpdate},
			{Method: "DELETE", Pattern: "/{uuid}", Handler: h.Delete, OpenAPI: Spec.Delete},
			{Method: "GET", Pattern: "/{uuid}/download", Handler: h.Download, OpenAPI: Spec.Download},
			{Method: "POST", Pattern: "/{uuid}/lock", Handler: h.Lock, OpenAPI: Spec.Lock},
			{Method: "POST", Pattern: "/{uuid}/unlock", Handler: h.Unlock, OpenAPI: Spec.Unlock},
		},
		Schemas: Spec.Schemas(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	docs, total, err := h.sys.List(r.Context(), filters, page)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	self, err := url.Parse(h.urls.Root() + urls.Documents)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}
	self.RawQuery = r.URL.RawQuery

	handlers.RespondJSON(w, http.StatusOK, pagination.NewPageResult(docs, total, page, self))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if !h.decode(w, r, &cmd) {
		return
	}

	doc, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, doc)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	pin, err := PinFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	doc, err := h.sys.Find(r.Context(), id, pin)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var cmd Command
	if !h.decode(w, r, &cmd) {
		return
	}

	doc, err := h.sys.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
}

func (h *Handler) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var cmd PatchCommand
	if !h.decode(w, r, &cmd) {
		return
	}

	doc, err := h.sys.PartialUpdate(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, doc)
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

func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	pin, err := PinFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	doc, rc, err := h.sys.Download(r.Context(), id, pin)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}
	defer rc.Close()

	filename := doc.Bestandsnaam
	if filename == "" {
		filename = id.String()
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.FormatInt(doc.Bestandsomvang, 10))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("stream content", "id", id, "error", err)
	}
}

func (h *Handler) Lock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	token, err := h.sys.Lock(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, LockBody{Lock: token})
}

// Unlock releases the lock. Callers with the force unlock scope may omit
// the token.
func (h *Handler) Unlock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var body LockBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, 0, errParse.Wrap(err))
		return
	}

	force := auth.FromContext(r.Context()).HasScope(auth.ScopeForceUnlock)
	if err := h.sys.Unlock(r.Context(), id, body.Lock, force); err != nil {
		handlers.RespondError(w, h.logger, 0, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("uuid"))
	if err != nil {
		handlers.RespondError(w, h.logger, 0, ErrNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if h.maxBodySize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, h.logger, 0, errBodyTooLarge)
			return false
		}
		handlers.RespondError(w, h.logger, 0, errParse.Wrap(err))
		return false
	}
	return true
}

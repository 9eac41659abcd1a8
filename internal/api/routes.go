package api

import (
	"net/http"

	"github.com/JaimeStill/document-registry/internal/audit"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/relations"
	"github.com/JaimeStill/document-registry/internal/usagerights"
	"github.com/JaimeStill/document-registry/pkg/openapi"
	"github.com/JaimeStill/document-registry/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) {
	documentsHandler := domain.Documents.Handler(cfg.Storage.MaxUploadSizeBytes())
	auditHandler := audit.NewHandler(domain.Audit, runtime.Logger)
	relationsHandler := relations.NewHandler(domain.Relations, runtime.Logger)
	usageRightsHandler := usagerights.NewHandler(domain.UsageRights, runtime.Logger)

	routes.Register(
		mux,
		cfg.API.BasePath,
		spec,
		documentsHandler.Routes(),
		auditHandler.Routes(),
		relationsHandler.Routes(),
		usageRightsHandler.Routes(),
	)
}

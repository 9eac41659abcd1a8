package api

import (
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/infrastructure"
	"github.com/JaimeStill/document-registry/internal/urls"
	"github.com/JaimeStill/document-registry/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	URLs       urls.Builder
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		URLs:           urls.New(cfg.Registry.BaseURL, cfg.API.BasePath),
	}
}

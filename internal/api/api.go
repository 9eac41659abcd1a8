// Package api assembles the registry systems into the HTTP module served
// under the configured base path.
package api

import (
	"net/http"

	"github.com/JaimeStill/document-registry/internal/auth"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/infrastructure"
	"github.com/JaimeStill/document-registry/pkg/middleware"
	"github.com/JaimeStill/document-registry/pkg/module"
	"github.com/JaimeStill/document-registry/pkg/openapi"
)

// NewModule builds the API module with its domain systems, routes and
// OpenAPI document.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.Registry.BaseURL)
	if cfg.Auth.Enabled {
		spec.RequireBearer("JWT-Claims", "HS256 token carrying the client_id and scopes claims")
	}

	mux := http.NewServeMux()
	registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET "+cfg.API.OpenAPI.Path, openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(runtime.Metrics.Middleware())
	m.Use(auth.Middleware(&cfg.Auth, runtime.Logger))

	return m, nil
}

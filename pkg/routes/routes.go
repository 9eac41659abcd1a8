package routes

import (
	"net/http"

	"github.com/JaimeStill/document-registry/pkg/openapi"
)

// Register mounts every route of groups on mux and documents them in spec
// under basePath. Patterns on mux stay relative because the owning module
// strips its prefix before dispatch.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

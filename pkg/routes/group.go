// Package routes describes HTTP routes as data so they can be registered on a
// ServeMux and documented in the OpenAPI specification from one declaration.
package routes

import (
	"net/http"

	"github.com/JaimeStill/document-registry/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec documents the group, its children and its schemas under basePath.
// Operations without explicit tags inherit the group tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec)
}

func (g *Group) addToSpec(parentPrefix string, spec *openapi.Spec) {
	fullPrefix := parentPrefix + g.Prefix

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 && len(g.Tags) > 0 {
			op.Tags = g.Tags
		}

		spec.Path(fullPrefix+route.Pattern).SetOperation(route.Method, op)
	}

	for i := range g.Children {
		g.Children[i].addToSpec(fullPrefix, spec)
	}
}

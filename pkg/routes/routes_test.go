package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/document-registry/pkg/openapi"
	"github.com/JaimeStill/document-registry/pkg/routes"
)

func noop(w http.ResponseWriter, r *http.Request) {}

func TestGroup_AddToSpec_Tags(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	group := routes.Group{
		Prefix: "/gebruiksrechten",
		Tags:   []string{"Gebruiksrechten"},
		Routes: []routes.Route{
			{Method: "GET", Handler: noop, OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "POST", Handler: noop, OpenAPI: &openapi.Operation{Summary: "Create", Tags: []string{"Admin"}}},
			{Method: "DELETE", Pattern: "/{uuid}", Handler: noop},
		},
	}

	group.AddToSpec("/api", spec)

	item := spec.Paths["/api/gebruiksrechten"]
	if item == nil {
		t.Fatal("path /api/gebruiksrechten not added to spec")
	}
	if item.Get.Tags[0] != "Gebruiksrechten" {
		t.Errorf("GET tags = %v, want inherited group tag", item.Get.Tags)
	}
	if item.Post.Tags[0] != "Admin" {
		t.Errorf("POST tags = %v, want explicit tag preserved", item.Post.Tags)
	}
	if spec.Paths["/api/gebruiksrechten/{uuid}"] != nil {
		t.Error("route without OpenAPI should not be documented")
	}
}

func TestGroup_AddToSpec_ChildrenAndSchemas(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	group := routes.Group{
		Prefix: "/enkelvoudiginformatieobjecten",
		Children: []routes.Group{
			{
				Prefix: "/{uuid}/audittrails",
				Routes: []routes.Route{
					{Method: "GET", Handler: noop, OpenAPI: &openapi.Operation{Summary: "List audit trails"}},
				},
			},
		},
		Schemas: map[string]*openapi.Schema{
			"AuditTrail": {Type: "object"},
		},
	}

	group.AddToSpec("", spec)

	if spec.Paths["/enkelvoudiginformatieobjecten/{uuid}/audittrails"] == nil {
		t.Error("child path not added")
	}
	if spec.Components.Schemas["AuditTrail"] == nil {
		t.Error("schema not added to spec")
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("Test API", "1.0.0")

	routes.Register(mux, "/api", spec, routes.Group{
		Prefix: "/objectinformatieobjecten",
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "/{uuid}",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					w.Write([]byte(r.PathValue("uuid")))
				},
				OpenAPI: &openapi.Operation{Summary: "Get relation"},
			},
		},
	})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/objectinformatieobjecten/abc", nil))

	body, _ := io.ReadAll(w.Result().Body)
	if string(body) != "abc" {
		t.Errorf("body = %q, want %q", string(body), "abc")
	}

	if spec.Paths["/api/objectinformatieobjecten/{uuid}"] == nil {
		t.Error("route not documented under base path")
	}
}

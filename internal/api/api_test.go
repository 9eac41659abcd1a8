package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/api"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/infrastructure"
	"github.com/JaimeStill/document-registry/pkg/database"
	"github.com/JaimeStill/document-registry/pkg/storage"
)

func newModule(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = database.DriverMemory
	cfg.Storage.Backends = []string{storage.BackendMemory}
	cfg.Registry.BaseURL = "http://drc.example"
	require.NoError(t, cfg.Finalize())

	infra, err := infrastructure.New(cfg)
	require.NoError(t, err)
	require.NoError(t, infra.Start())
	t.Cleanup(func() { infra.Lifecycle.Shutdown(cfg.ShutdownTimeoutDuration()) })

	m, err := api.NewModule(cfg, infra)
	require.NoError(t, err)
	return http.HandlerFunc(m.Serve)
}

func TestModule_DocumentRoundTrip(t *testing.T) {
	h := newModule(t)

	body := `{
		"bronorganisatie": "159351741",
		"creatiedatum": "2024-04-30",
		"titel": "Module",
		"auteur": "tester",
		"taal": "dut",
		"inhoud": "aGVsbG8=",
		"informatieobjecttype": "https://ztc.example/api/v1/informatieobjecttypen/1"
	}`
	r := httptest.NewRequest(http.MethodPost, "/api/enkelvoudiginformatieobjecten", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		URL    string `json:"url"`
		Versie int    `json:"versie"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, 100, created.Versie)
	assert.True(t, strings.HasPrefix(created.URL, "http://drc.example/api/enkelvoudiginformatieobjecten/"))

	r = httptest.NewRequest(http.MethodGet, "/api/enkelvoudiginformatieobjecten", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
	assert.Equal(t, 1, page.Count)

	id := strings.TrimPrefix(created.URL, "http://drc.example/api/enkelvoudiginformatieobjecten/")
	r = httptest.NewRequest(http.MethodGet, "/api/enkelvoudiginformatieobjecten/"+id+"/audittrails", nil)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var trails []map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&trails))
	require.Len(t, trails, 1)
	assert.Equal(t, "create", trails[0]["actie"])
}

func TestModule_OpenAPI(t *testing.T) {
	h := newModule(t)

	r := httptest.NewRequest(http.MethodGet, "/api/openapi.json", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&doc))
	for _, path := range []string{
		"/api/enkelvoudiginformatieobjecten",
		"/api/enkelvoudiginformatieobjecten/{uuid}/lock",
		"/api/objectinformatieobjecten",
		"/api/gebruiksrechten/{uuid}",
	} {
		assert.Contains(t, doc.Paths, path)
	}
}

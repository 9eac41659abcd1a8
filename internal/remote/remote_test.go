package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/internal/auth"
	"github.com/JaimeStill/document-registry/internal/config"
	"github.com/JaimeStill/document-registry/internal/database"
	"github.com/JaimeStill/document-registry/internal/remote"
	"github.com/JaimeStill/document-registry/pkg/faults"
)

const documentURL = "http://drc.example/api/enkelvoudiginformatieobjecten/8f1c"

func TestMirrorURL(t *testing.T) {
	tests := []struct {
		name       string
		objectType string
		object     string
		wantPath   string
		wantParam  string
		wantErr    bool
	}{
		{
			name:       "zaak",
			objectType: database.ObjectTypeZaak,
			object:     "https://zrc.example/api/v1/zaken/1234",
			wantPath:   "/api/v1/zaakinformatieobjecten",
			wantParam:  "zaak",
		},
		{
			name:       "besluit",
			objectType: database.ObjectTypeBesluit,
			object:     "https://brc.example/besluiten/api/v1/besluiten/abcd",
			wantPath:   "/besluiten/api/v1/besluitinformatieobjecten",
			wantParam:  "besluit",
		},
		{name: "type mismatch", objectType: database.ObjectTypeBesluit, object: "https://zrc.example/api/v1/zaken/1", wantErr: true},
		{name: "missing id", objectType: database.ObjectTypeZaak, object: "https://zrc.example/api/v1/zaken/", wantErr: true},
		{name: "relative url", objectType: database.ObjectTypeZaak, object: "/api/v1/zaken/1", wantErr: true},
		{name: "unknown type", objectType: "verzoek", object: "https://x.example/verzoeken/1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := remote.MirrorURL(tt.objectType, tt.object, documentURL)
			if tt.wantErr {
				assert.ErrorIs(t, err, remote.ErrBadObjectURL)
				return
			}
			require.NoError(t, err)

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, u.Path)
			assert.Equal(t, tt.object, u.Query().Get(tt.wantParam))
			assert.Equal(t, documentURL, u.Query().Get("informatieobject"))
		})
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_RelationExists(t *testing.T) {
	var (
		items      []map[string]string
		status     = http.StatusOK
		authHeader string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(items)
	}))
	defer srv.Close()

	cfg := &config.RemoteConfig{
		Enabled:           true,
		Timeout:           "5s",
		ClientCredentials: config.ClientCredentials{ClientID: "drc", Secret: "s3cret"},
	}
	client := remote.New(cfg, discard())
	rel := &database.RelationInfo{ObjectType: database.ObjectTypeZaak, Object: srv.URL + "/api/v1/zaken/1"}
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		items = []map[string]string{}
		exists, err := client.RelationExists(ctx, rel, documentURL)
		require.NoError(t, err)
		assert.False(t, exists)

		require.NotEmpty(t, authHeader)
		claims, err := auth.Verify(authHeader[len("Bearer "):], "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "drc", claims.ClientID)
	})

	t.Run("mirror present", func(t *testing.T) {
		items = []map[string]string{{"url": "x"}}
		exists, err := client.RelationExists(ctx, rel, documentURL)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("remote failure", func(t *testing.T) {
		status = http.StatusBadGateway
		defer func() { status = http.StatusOK }()

		_, err := client.RelationExists(ctx, rel, documentURL)
		assert.ErrorIs(t, err, faults.ErrBackend)
	})
}

func TestClient_Disabled(t *testing.T) {
	client := remote.New(&config.RemoteConfig{Timeout: "1s"}, discard())
	rel := &database.RelationInfo{ObjectType: database.ObjectTypeZaak, Object: "http://127.0.0.1:1/zaken/1"}

	exists, err := client.RelationExists(context.Background(), rel, documentURL)
	require.NoError(t, err)
	assert.False(t, exists)
}

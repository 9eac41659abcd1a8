package urls_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/document-registry/internal/urls"
)

const id = "5d940d52-ff5e-4b18-a769-977af9130c04"

func TestBuilder(t *testing.T) {
	b := urls.New("http://drc.example/", "/api")

	assert.Equal(t, "http://drc.example/api", b.Root())
	assert.Equal(t, "http://drc.example/api/enkelvoudiginformatieobjecten/"+id, b.Document(id))
	assert.Equal(t, "http://drc.example/api/enkelvoudiginformatieobjecten/"+id+"/download?versie=110", b.Download(id, 110))
	assert.Equal(t, "http://drc.example/api/objectinformatieobjecten/"+id, b.Relation(id))
	assert.Equal(t, "http://drc.example/api/gebruiksrechten/"+id, b.UsageRight(id))
	assert.Equal(t, "http://drc.example/api/enkelvoudiginformatieobjecten/"+id+"/audittrails/x", b.AuditTrail(id, "x"))
}

func TestBuilder_DocumentID(t *testing.T) {
	b := urls.New("http://drc.example", "/api")

	tests := []struct {
		name   string
		raw    string
		wantID string
		wantOK bool
	}{
		{"own url", b.Document(id), id, true},
		{"trailing slash", b.Document(id) + "/", id, true},
		{"other host", "https://proxy.example/api/enkelvoudiginformatieobjecten/" + id, id, true},
		{"not a uuid", "http://drc.example/api/enkelvoudiginformatieobjecten/abc", "", false},
		{"wrong collection", "http://drc.example/api/gebruiksrechten/" + id, "", false},
		{"sub resource", b.Document(id) + "/download", "", false},
		{"relative", "/api/enkelvoudiginformatieobjecten/" + id, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := b.DocumentID(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

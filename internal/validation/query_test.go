package validation_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/document-registry/internal/validation"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"empty", "", false},
		{"known", "identificatie=a&bronorganisatie=b", false},
		{"unknown", "identificatie=a&foo=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.raw)
			err := validation.Query(values, "identificatie", "bronorganisatie")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, validation.ErrUnknownParameters)
			assert.Contains(t, err.Error(), "foo")
		})
	}
}

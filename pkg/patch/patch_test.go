package patch_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/document-registry/pkg/patch"
)

type body struct {
	Titel        patch.Field[string] `json:"titel"`
	Beschrijving patch.Field[string] `json:"beschrijving"`
	Omvang       patch.Field[int]    `json:"omvang"`
}

func TestField_UnmarshalJSON(t *testing.T) {
	var b body
	require.NoError(t, json.Unmarshal([]byte(`{"titel":"T2","beschrijving":null}`), &b))

	assert.True(t, b.Titel.Set)
	assert.False(t, b.Titel.Null)
	assert.Equal(t, "T2", b.Titel.Value)

	assert.True(t, b.Beschrijving.Set)
	assert.True(t, b.Beschrijving.Null)

	assert.False(t, b.Omvang.Set)
}

func TestField_Apply(t *testing.T) {
	assert.Equal(t, "old", patch.Field[string]{}.Apply("old"))
	assert.Equal(t, "new", patch.Value("new").Apply("old"))
	assert.Equal(t, "", patch.Null[string]().Apply("old"))
}

func TestField_ApplyPtr(t *testing.T) {
	current := 4

	assert.Same(t, &current, patch.Field[int]{}.ApplyPtr(&current))
	assert.Nil(t, patch.Null[int]().ApplyPtr(&current))

	got := patch.Value(7).ApplyPtr(&current)
	require.NotNil(t, got)
	assert.Equal(t, 7, *got)
	assert.Equal(t, 4, current)
}

func TestField_InvalidValue(t *testing.T) {
	var b body
	assert.Error(t, json.Unmarshal([]byte(`{"omvang":"x"}`), &b))
}

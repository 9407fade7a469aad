package animreview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaForMode_AllModes(t *testing.T) {
	for _, mode := range Modes() {
		s, err := SchemaForMode(mode)
		require.NoError(t, err, "mode %s", mode)
		assert.NotEmpty(t, s.Fields, "mode %s", mode)
	}
	_, err := SchemaForMode("nope")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestJSONSchema_Render(t *testing.T) {
	s, err := SchemaForMode(ModeCheck)
	require.NoError(t, err)
	js := s.JSONSchema()

	assert.Equal(t, "object", js["type"])
	props, ok := js["properties"].(map[string]any)
	require.True(t, ok)
	for _, name := range []string{"pass", "notes", "issues", "score"} {
		assert.Contains(t, props, name)
	}
	pass, ok := props["pass"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "boolean", pass["type"])

	required, ok := js["required"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"pass"}, required)
}

func TestJSONSchema_ArrayItems(t *testing.T) {
	s, err := SchemaForMode(ModeDiagnose)
	require.NoError(t, err)
	props := s.JSONSchema()["properties"].(map[string]any)
	obs := props["observations"].(map[string]any)
	assert.Equal(t, "array", obs["type"])
	items, ok := obs["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", items["type"])
}

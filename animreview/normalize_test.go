package animreview

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSchema(t *testing.T, mode Mode) ResponseSchema {
	t.Helper()
	s, err := SchemaForMode(mode)
	require.NoError(t, err)
	return s
}

func TestNormalizeStructured_RoundTrip(t *testing.T) {
	reply := `{"pass": true, "notes": "ok", "issues": ["late fade"], "score": 7}`
	fields, err := normalizeStructured(reply, mustSchema(t, ModeCheck))
	require.NoError(t, err)

	assert.Equal(t, true, fields["pass"])
	assert.Equal(t, "ok", fields["notes"])
	assert.Equal(t, []any{"late fade"}, fields["issues"])
	assert.Equal(t, 7.0, fields["score"])
}

func TestNormalizeStructured_DefaultsForOmitted(t *testing.T) {
	fields, err := normalizeStructured(`{"pass": false}`, mustSchema(t, ModeCheck))
	require.NoError(t, err)

	// Exactly the schema's fields, omitted ones on their declared defaults.
	assert.Len(t, fields, 4)
	assert.Equal(t, false, fields["pass"])
	assert.Equal(t, "", fields["notes"])
	assert.Equal(t, []any{}, fields["issues"])
	assert.Equal(t, 0, fields["score"])
}

func TestNormalizeStructured_DropsUndeclaredExtras(t *testing.T) {
	fields, err := normalizeStructured(`{"pass": true, "vibe": "good"}`, mustSchema(t, ModeCheck))
	require.NoError(t, err)
	assert.NotContains(t, fields, "vibe")
}

func TestNormalizeStructured_ShapeMismatch(t *testing.T) {
	// A required numeric field arriving as prose is never coerced.
	reply := `{"score": "seven out of ten", "summary": "fine"}`
	_, err := normalizeStructured(reply, mustSchema(t, ModeReview))
	assert.ErrorIs(t, err, ErrResponseShapeMismatch)

	var shapeErr *ShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "score", shapeErr.Field)
	assert.Equal(t, "integer", shapeErr.Want)
	assert.Equal(t, "string", shapeErr.Got)
}

func TestNormalizeStructured_FractionalInteger(t *testing.T) {
	_, err := normalizeStructured(`{"score": 7.5, "summary": "fine"}`, mustSchema(t, ModeReview))
	assert.ErrorIs(t, err, ErrResponseShapeMismatch)
}

func TestNormalizeStructured_UnparseableReply(t *testing.T) {
	_, err := normalizeStructured("the animation looks great", mustSchema(t, ModeCheck))
	assert.ErrorIs(t, err, ErrResponseShapeMismatch)

	_, err = normalizeStructured("", mustSchema(t, ModeCheck))
	assert.ErrorIs(t, err, errEmptyReply)
}

func TestExtractJSON_Fenced(t *testing.T) {
	reply := "Here is the result:\n```json\n{\"pass\": true}\n```\nDone."
	obj := extractJSON(reply)
	require.NotNil(t, obj)
	assert.Equal(t, true, obj["pass"])
}

func TestExtractJSON_EmbeddedInProse(t *testing.T) {
	reply := `Sure! {"pass": false, "notes": "broken"} Hope that helps.`
	obj := extractJSON(reply)
	require.NotNil(t, obj)
	assert.Equal(t, false, obj["pass"])
}

func TestExtractJSON_None(t *testing.T) {
	assert.Nil(t, extractJSON("no json here"))
	assert.Nil(t, extractJSON("{broken"))
}

func TestNormalizeRaw(t *testing.T) {
	text, err := normalizeRaw("## Observations\n...\n## Hypotheses\n...")
	require.NoError(t, err)
	assert.Contains(t, text, "## Observations")

	_, err = normalizeRaw("   \n\t")
	assert.ErrorIs(t, err, errEmptyReply)
}

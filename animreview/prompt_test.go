package animreview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSystemPrompt_Deterministic(t *testing.T) {
	in := promptInputs{Mode: ModeReview, Shape: ShapeStructured, FPS: 12, Clipped: true}
	assert.Equal(t, buildSystemPrompt(in), buildSystemPrompt(in))
}

func TestBuildSystemPrompt_TemporalContext(t *testing.T) {
	got := buildSystemPrompt(promptInputs{Mode: ModeCheck, Shape: ShapeStructured, FPS: 5})
	assert.Contains(t, got, "sampled at 5 frames per second")
	assert.Contains(t, got, "a 200ms window")
	assert.Contains(t, got, "~600ms") // 3 frames at 200ms
	assert.Contains(t, got, `between 1.0s and 1.2s`)
	assert.NotContains(t, got, "ANALYSIS WINDOW")
}

func TestBuildSystemPrompt_ClippedNote(t *testing.T) {
	got := buildSystemPrompt(promptInputs{Mode: ModeDiagnose, Shape: ShapeRaw, FPS: 24, Clipped: true})
	assert.Contains(t, got, "ANALYSIS WINDOW")
}

func TestBuildSystemPrompt_RawShapeSections(t *testing.T) {
	for _, mode := range Modes() {
		raw := buildSystemPrompt(promptInputs{Mode: mode, Shape: ShapeRaw, FPS: 24})
		assert.Contains(t, raw, "## Observations", "mode %s", mode)
		assert.Contains(t, raw, "## Hypotheses", "mode %s", mode)

		structured := buildSystemPrompt(promptInputs{Mode: mode, Shape: ShapeStructured, FPS: 24})
		assert.NotContains(t, structured, "## Observations", "mode %s", mode)
	}
}

func TestBuildSystemPrompt_ModeInstructions(t *testing.T) {
	got := buildSystemPrompt(promptInputs{Mode: ModeInspire, Shape: ShapeRaw, FPS: 24})
	assert.Contains(t, got, "animation specification")

	got = buildSystemPrompt(promptInputs{Mode: ModeCheck, Shape: ShapeStructured, FPS: 5})
	assert.Contains(t, got, "pass/fail")
}

func TestBuildUserPrompt_Verbatim(t *testing.T) {
	userText := `The "hero" card   should  NOT overshoot — keep my   spacing!`
	got := buildUserPrompt(userText)
	assert.Contains(t, got, userText, "user prompt must be carried verbatim")

	assert.Equal(t, "Analyze the animations in this screen recording.", buildUserPrompt(""))
}

func TestSchemaInstruction(t *testing.T) {
	schema, err := SchemaForMode(ModeReview)
	require.NoError(t, err)
	got := schemaInstruction(schema)
	assert.True(t, strings.Contains(got, "OUTPUT FORMAT"))
	assert.Contains(t, got, `"score"`)
	assert.Contains(t, got, `"summary"`)
	assert.Contains(t, got, `"required"`)
}

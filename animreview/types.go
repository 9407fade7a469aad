package animreview

import "time"

// AnalysisRequest describes one analysis of one recording. The zero values of
// all optional fields mean "use the mode profile / configured default".
type AnalysisRequest struct {
	// Video is the path to the recording. Common containers (.mp4, .mov,
	// .webm) are accepted interchangeably regardless of extension.
	Video string

	// Mode must be one of the closed set returned by Modes().
	Mode Mode

	// Prompt is optional free-text context, passed to the model verbatim.
	Prompt string

	// Start and End are optional duration tokens bounding the analysis,
	// e.g. "2s", "1500ms", "1:30". Empty means the whole video.
	Start string
	End   string

	// Shape forces structured or raw output regardless of the mode default.
	Shape OutputShape

	// Provider selects the backend; empty uses the configured default.
	Provider Provider

	// Model overrides the remote model name for the selected provider.
	Model string

	// FPS overrides the profile frame rate; values above MaxFPS are capped.
	FPS int
}

// Provenance records how a result was produced.
type Provenance struct {
	ID       string
	Provider Provider
	Model    string
	Tier     ModelTier
	FPS      int

	// Range is the resolved analysis window. Clipping reports how it was
	// applied: "none", "server" (provider-side offsets), or "approximate"
	// (locally reduced before submission, best-effort).
	Range    TimeRange
	Clipping string

	Latency          time.Duration
	PromptTokens     *int
	CompletionTokens *int
}

// AnalysisResult is the normalized outcome of one request. It is immutable
// after construction and owned by the caller.
type AnalysisResult struct {
	Mode Mode

	// Shape is the output shape actually used.
	Shape OutputShape

	// Fields holds the structured payload; nil when Shape is raw.
	Fields map[string]any

	// Text is the provider's reply text. For raw shape it is the result
	// proper; for structured shape it is kept for provenance and fallback.
	Text string

	Provenance Provenance
}

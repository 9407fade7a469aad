package animreview

import (
	"context"
	"time"
)

// Provider identifies which remote video-understanding backend to use.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderKimi   Provider = "kimi"
)

// providerClient is the internal interface each backend implements. Mode
// logic, prompt construction and response shape expectations never depend on
// which backend is behind it; only transport and authentication differ.
type providerClient interface {
	// Analyze executes a single video analysis call according to the plan.
	// It blocks for the duration of remote inference and performs no retries.
	Analyze(ctx context.Context, plan callPlan) (callResult, error)

	// SupportsClipping reports whether the backend restricts analysis to a
	// sub-range server-side. Backends without it approximate the clip locally
	// before submission, best-effort.
	SupportsClipping() bool
}

// callPlan is the normalized, provider-agnostic instruction set the
// orchestrator hands to a backend.
type callPlan struct {
	Model  string
	System string
	Input  string

	VideoPath string
	FPS       int
	Range     TimeRange

	// Thinking requests the backend's deliberate mode, when it has one.
	// Set for the precise model tier.
	Thinking bool

	// Structured JSON
	Structured bool
	Schema     ResponseSchema
}

// callResult is the raw, not-yet-normalized reply of one submission.
type callResult struct {
	Text string

	PromptTokens     *int
	CompletionTokens *int
	Latency          time.Duration
}

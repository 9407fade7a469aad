package animreview

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
)

// Client orchestrates one analysis per call: resolve the mode profile, build
// the prompt and schema, resolve the time range, select a provider, submit,
// normalize. One request maps to one outbound call; there are no retries and
// no background work.
type Client struct {
	cfg    Config
	gemini providerClient // lazily init
	kimi   providerClient // lazily init
	prober durationProber
}

// New creates a Client with the given config. If DetectEnv is true, missing
// credentials are pulled from GEMINI_API_KEY and KIMI_API_KEY.
func New(cfg Config) *Client {
	if cfg.DetectEnv {
		if cfg.GeminiAPIKey == "" {
			cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
		}
		if cfg.KimiAPIKey == "" {
			cfg.KimiAPIKey = os.Getenv("KIMI_API_KEY")
		}
	}
	cfg.applyDefaults()
	return &Client{
		cfg:    cfg,
		prober: newFFmpegTool(cfg.FFmpegPath, cfg.FFprobePath),
	}
}

// Analyze runs one analysis. All pre-flight validation (mode, shape, range,
// credential) happens before any network traffic; failures surface as the
// typed errors in errors.go. The call blocks for the duration of remote
// inference; timeout policy belongs to the caller's ctx.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	profile, err := LookupMode(req.Mode)
	if err != nil {
		return nil, err
	}

	shape := profile.DefaultShape
	if req.Shape != "" {
		if req.Shape != ShapeStructured && req.Shape != ShapeRaw {
			return nil, fmt.Errorf("animreview: unknown output shape %q", req.Shape)
		}
		shape = req.Shape
	}

	fps := profile.FPS
	if req.FPS > 0 {
		fps = req.FPS
		if fps > MaxFPS {
			fps = MaxFPS
		}
	}

	// Clip bounds are validated against the container duration when it can
	// be determined locally; otherwise they stay open for the provider.
	var duration float64
	if req.Start != "" || req.End != "" {
		if d, err := c.prober.ProbeDuration(ctx, req.Video); err == nil {
			duration = d
		}
	}
	rng, err := ResolveTimeRange(req.Start, req.End, duration)
	if err != nil {
		return nil, err
	}

	provider := c.cfg.DefaultProvider
	if req.Provider != "" {
		provider = req.Provider
	}
	pc, err := c.ensureProvider(provider)
	if err != nil {
		return nil, err
	}

	schema, err := SchemaForMode(req.Mode)
	if err != nil {
		return nil, err
	}

	plan := callPlan{
		Model:      c.resolveModel(provider, profile.Tier, req.Model),
		System:     buildSystemPrompt(promptInputs{Mode: req.Mode, Shape: shape, FPS: fps, Clipped: !rng.IsFull()}),
		Input:      buildUserPrompt(req.Prompt),
		VideoPath:  req.Video,
		FPS:        fps,
		Range:      rng,
		Thinking:   profile.Tier == TierPrecise,
		Structured: shape == ShapeStructured,
		Schema:     schema,
	}

	res, err := pc.Analyze(ctx, plan)
	if err != nil {
		return nil, err
	}

	out := &AnalysisResult{
		Mode:  req.Mode,
		Shape: shape,
		Text:  res.Text,
		Provenance: Provenance{
			ID:               uuid.NewString(),
			Provider:         provider,
			Model:            plan.Model,
			Tier:             profile.Tier,
			FPS:              fps,
			Range:            rng,
			Clipping:         clippingLabel(rng, pc),
			Latency:          res.Latency,
			PromptTokens:     res.PromptTokens,
			CompletionTokens: res.CompletionTokens,
		},
	}

	if shape == ShapeStructured {
		fields, err := normalizeStructured(res.Text, schema)
		if err != nil {
			return nil, c.wrapNormalizeErr(provider, err)
		}
		out.Fields = fields
	} else {
		text, err := normalizeRaw(res.Text)
		if err != nil {
			return nil, c.wrapNormalizeErr(provider, err)
		}
		out.Text = text
	}
	return out, nil
}

func (c *Client) ensureProvider(p Provider) (providerClient, error) {
	switch p {
	case ProviderGemini:
		if c.gemini == nil {
			pc, err := newGeminiProvider(c.cfg)
			if err != nil {
				return nil, err
			}
			c.gemini = pc
		}
		return c.gemini, nil
	case ProviderKimi:
		if c.kimi == nil {
			pc, err := newKimiProvider(c.cfg)
			if err != nil {
				return nil, err
			}
			c.kimi = pc
		}
		return c.kimi, nil
	default:
		return nil, fmt.Errorf("animreview: unknown provider %q", p)
	}
}

func (c *Client) resolveModel(p Provider, tier ModelTier, override string) string {
	if override != "" {
		return override
	}
	switch p {
	case ProviderKimi:
		return c.cfg.KimiModel
	default:
		if tier == TierPrecise {
			return c.cfg.GeminiProModel
		}
		return c.cfg.GeminiFlashModel
	}
}

func (c *Client) wrapNormalizeErr(p Provider, err error) error {
	if err == errEmptyReply {
		return &TransportError{Provider: p, Category: "api", Err: err}
	}
	return err
}

func clippingLabel(rng TimeRange, pc providerClient) string {
	switch {
	case rng.IsFull():
		return "none"
	case pc.SupportsClipping():
		return "server"
	default:
		return "approximate"
	}
}

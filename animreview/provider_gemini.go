package animreview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"google.golang.org/genai"
)

type geminiProvider struct {
	client *genai.Client
}

func newGeminiProvider(cfg Config) (providerClient, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY to use the gemini provider", ErrMissingCredential)
	}
	httpOpts := genai.HTTPOptions{BaseURL: cfg.GeminiBaseURL}
	if cfg.Timeout > 0 {
		httpOpts.Timeout = genai.Ptr(cfg.Timeout)
	}
	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      cfg.GeminiAPIKey,
		HTTPOptions: httpOpts,
		HTTPClient:  cfg.HTTPClient,
	})
	if err != nil {
		return nil, err
	}
	return &geminiProvider{client: gc}, nil
}

// SupportsClipping: Gemini restricts analysis to a sub-range server-side via
// video offsets, so the full recording is uploaded untouched.
func (p *geminiProvider) SupportsClipping() bool { return true }

func (p *geminiProvider) Analyze(ctx context.Context, plan callPlan) (callResult, error) {
	videoBytes, err := os.ReadFile(plan.VideoPath)
	if err != nil {
		return callResult{}, fmt.Errorf("animreview: read video: %w", err)
	}

	meta := &genai.VideoMetadata{FPS: genai.Ptr(float64(plan.FPS))}
	if plan.Range.Start != nil {
		meta.StartOffset = time.Duration(*plan.Range.Start * float64(time.Second))
	}
	if plan.Range.End != nil {
		meta.EndOffset = time.Duration(*plan.Range.End * float64(time.Second))
	}

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{
				InlineData:    &genai.Blob{Data: videoBytes, MIMEType: videoMIMEType(plan.VideoPath)},
				VideoMetadata: meta,
			},
			{Text: plan.Input},
		},
	}}

	cfg := &genai.GenerateContentConfig{}
	if strings.TrimSpace(plan.System) != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: plan.System}},
		}
	}
	if plan.Structured {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseJsonSchema = plan.Schema.JSONSchema()
	}

	t0 := time.Now()
	res, err := p.client.Models.GenerateContent(ctx, plan.Model, contents, cfg)
	if err != nil {
		return callResult{}, &TransportError{
			Provider: ProviderGemini,
			Category: categorizeGeminiError(err),
			Err:      err,
		}
	}

	cr := toCallResultFromGenAI(res)
	cr.Latency = time.Since(t0)
	return cr, nil
}

func toCallResultFromGenAI(res *genai.GenerateContentResponse) callResult {
	cr := callResult{}
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return cr
	}
	for _, p := range res.Candidates[0].Content.Parts {
		if p.Text == "" {
			continue
		}
		if cr.Text == "" {
			cr.Text = p.Text
		} else {
			cr.Text += "\n" + p.Text
		}
	}
	if res.UsageMetadata != nil {
		if res.UsageMetadata.PromptTokenCount > 0 {
			pt := int(res.UsageMetadata.PromptTokenCount)
			cr.PromptTokens = &pt
		}
		if res.UsageMetadata.CandidatesTokenCount > 0 {
			ct := int(res.UsageMetadata.CandidatesTokenCount)
			cr.CompletionTokens = &ct
		}
	}
	return cr
}

func categorizeGeminiError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return "rate_limit"
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return "timeout"
		}
	}
	if strings.Contains(err.Error(), "429") || strings.Contains(strings.ToLower(err.Error()), "rate") {
		return "rate_limit"
	}
	return "api"
}

// videoMIMEType maps a file extension to the container MIME type. Unknown
// extensions fall back to video/mp4; the file is accepted as long as the
// provider can ingest it.
func videoMIMEType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mov":
		return "video/quicktime"
	case ".webm":
		return "video/webm"
	default:
		return "video/mp4"
	}
}

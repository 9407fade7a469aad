package animreview

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// kimiMaxFrames bounds the number of stills sent per request. Beyond this the
// sampler thins frames evenly, trading temporal resolution for request size.
const kimiMaxFrames = 64

// kimiProvider talks to Moonshot's OpenAI-compatible endpoint. The backend
// has no server-side clipping or frame-rate control, so the recording is
// reduced locally: frames are sampled at the profile rate over the requested
// range and submitted as images. The clip is therefore a best-effort
// approximation of server-side trimming, not a guarantee.
type kimiProvider struct {
	client  *openai.Client
	sampler frameSampler
	model   string
}

func newKimiProvider(cfg Config) (providerClient, error) {
	if cfg.KimiAPIKey == "" {
		return nil, fmt.Errorf("%w: set KIMI_API_KEY to use the kimi provider", ErrMissingCredential)
	}
	oc := openai.DefaultConfig(cfg.KimiAPIKey)
	oc.BaseURL = cfg.KimiBaseURL
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	} else if cfg.Timeout > 0 {
		oc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &kimiProvider{
		client:  openai.NewClientWithConfig(oc),
		sampler: newFFmpegTool(cfg.FFmpegPath, cfg.FFprobePath),
		model:   cfg.KimiModel,
	}, nil
}

func (p *kimiProvider) SupportsClipping() bool { return false }

func (p *kimiProvider) Analyze(ctx context.Context, plan callPlan) (callResult, error) {
	frames, err := p.sampler.SampleFrames(ctx, plan.VideoPath, plan.FPS, plan.Range, kimiMaxFrames)
	if err != nil {
		return callResult{}, err
	}

	system := plan.System
	if plan.Structured {
		// No native schema enforcement here; the schema rides in the prompt
		// and the normalizer holds the reply to it.
		system += schemaInstruction(plan.Schema)
	}

	parts := make([]openai.ChatMessagePart, 0, len(frames)+1)
	for _, frame := range frames {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(frame),
				Detail: openai.ImageURLDetailLow,
			},
		})
	}
	parts = append(parts, openai.ChatMessagePart{
		Type: openai.ChatMessagePartTypeText,
		Text: plan.Input,
	})

	model := plan.Model
	if model == "" {
		model = p.model
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		MaxTokens: 16384,
	}
	// Precise tier maps to the deliberate (thinking) mode, fast tier to
	// instant answers with a lower temperature.
	if plan.Thinking {
		req.Temperature = 1.0
	} else {
		req.Temperature = 0.6
	}

	t0 := time.Now()
	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return callResult{}, &TransportError{
			Provider: ProviderKimi,
			Category: categorizeOpenAIError(err),
			Err:      err,
		}
	}
	latency := time.Since(t0)

	if len(resp.Choices) == 0 {
		return callResult{}, &TransportError{
			Provider: ProviderKimi,
			Category: "api",
			Err:      errors.New("no choices in response"),
		}
	}

	cr := callResult{
		Text:    resp.Choices[0].Message.Content,
		Latency: latency,
	}
	if resp.Usage.PromptTokens > 0 {
		pt := resp.Usage.PromptTokens
		cr.PromptTokens = &pt
	}
	if resp.Usage.CompletionTokens > 0 {
		ct := resp.Usage.CompletionTokens
		cr.CompletionTokens = &ct
	}
	return cr, nil
}

func categorizeOpenAIError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return "rate_limit"
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return "timeout"
		}
	}
	return "api"
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/oraraka-deko/animreview/animreview"
)

const usageModes = `Modes:
  check      5fps, fast     - "Does it work?" Basic functionality sanity check.
  review    12fps, fast     - "How does it feel?" Design quality and polish.
  diagnose  24fps, precise  - "What's going wrong?" Frame-level bug analysis.
  inspire   24fps, precise  - "What's happening here?" Decompose a reference effect.

Providers:
  gemini     Default. Native frame-rate control and schema enforcement.
  kimi       Moonshot via OpenAI-compatible API; frames sampled locally with ffmpeg.
`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	var (
		video    string
		mode     string
		fps      int
		start    string
		end      string
		prompt   string
		model    string
		provider string
		raw      bool
		jsonOut  bool
		noSave   bool
	)
	flag.StringVar(&video, "v", "/tmp/animation-review.mp4", "video file path")
	flag.StringVar(&video, "video", "/tmp/animation-review.mp4", "video file path")
	flag.StringVar(&mode, "t", "review", "analysis mode (sets fps, model tier and output shape)")
	flag.StringVar(&mode, "mode", "review", "analysis mode (sets fps, model tier and output shape)")
	flag.IntVar(&fps, "fps", 0, "explicit fps override (max 24)")
	flag.StringVar(&start, "start", "", "start offset for the analysis window (e.g. '3s', '1:05')")
	flag.StringVar(&end, "end", "", "end offset for the analysis window (e.g. '8.2s', '1:30')")
	flag.StringVar(&prompt, "p", "", "additional context about the animation")
	flag.StringVar(&prompt, "prompt", "", "additional context about the animation")
	flag.StringVar(&model, "m", "", "remote model override (default depends on mode)")
	flag.StringVar(&model, "model", "", "remote model override (default depends on mode)")
	flag.StringVar(&provider, "provider", "", "remote backend: gemini or kimi (default from config)")
	flag.BoolVar(&raw, "raw", false, "force raw text output instead of structured JSON")
	flag.BoolVar(&jsonOut, "json", false, "force structured JSON output")
	flag.BoolVar(&noSave, "no-save", false, "don't save results to the results directory")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\nAnalyze animation recordings via Gemini or Kimi.\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprint(flag.CommandLine.Output(), "\n"+usageModes)
	}
	flag.Parse()

	if raw && jsonOut {
		log.Fatal().Msg("--raw and --json are mutually exclusive")
	}

	cfg, err := animreview.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if _, err := os.Stat(video); err != nil {
		log.Fatal().Str("video", video).Msg("video file not found")
	}

	req := animreview.AnalysisRequest{
		Video:    video,
		Mode:     animreview.Mode(mode),
		Prompt:   prompt,
		Start:    start,
		End:      end,
		Provider: animreview.Provider(provider),
		Model:    model,
		FPS:      fps,
	}
	if jsonOut {
		req.Shape = animreview.ShapeStructured
	}
	if raw {
		req.Shape = animreview.ShapeRaw
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := animreview.New(cfg)

	ev := log.Info().Str("mode", mode).Str("video", video)
	if info, err := os.Stat(video); err == nil {
		ev = ev.Float64("size_mb", float64(info.Size())/(1024*1024))
	}
	if start != "" || end != "" {
		ev = ev.Str("range", rangeLabel(start, end))
	}
	ev.Msg("analyzing")

	res, err := client.Analyze(ctx, req)
	if err != nil && errors.Is(err, animreview.ErrResponseShapeMismatch) && !jsonOut {
		// Degraded fallback: re-request in raw shape. Costs a second remote
		// call, so only when the caller did not insist on structured output.
		log.Warn().Err(err).Msg("structured reply did not match schema, retrying in raw shape")
		req.Shape = animreview.ShapeRaw
		res, err = client.Analyze(ctx, req)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("analysis failed")
	}

	if res.Shape == animreview.ShapeStructured {
		out, err := json.MarshalIndent(res.Fields, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to render result")
		}
		fmt.Println(string(out))
	} else {
		fmt.Println(res.Text)
	}

	meta := log.Info().
		Str("provider", string(res.Provenance.Provider)).
		Str("model", res.Provenance.Model).
		Int("fps", res.Provenance.FPS).
		Str("clipping", res.Provenance.Clipping).
		Dur("latency", res.Provenance.Latency)
	if res.Provenance.PromptTokens != nil {
		meta = meta.Int("prompt_tokens", *res.Provenance.PromptTokens)
	}
	if res.Provenance.CompletionTokens != nil {
		meta = meta.Int("output_tokens", *res.Provenance.CompletionTokens)
	}
	meta.Msg("done")

	if !noSave {
		store := animreview.NewResultStore(cfg.ResultsDir)
		analysisPath, videoDest, err := store.Save(res, video)
		if err != nil {
			log.Error().Err(err).Msg("failed to save results")
			return
		}
		log.Info().Str("analysis", analysisPath).Str("video", videoDest).Msg("saved")
	}
}

func rangeLabel(start, end string) string {
	if start == "" {
		start = "0s"
	}
	if end == "" {
		end = "end"
	}
	return start + "-" + end
}

package animreview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
)

// durationProber reports a video's duration when it can be determined
// locally. Implemented by ffmpegTool; faked in tests.
type durationProber interface {
	ProbeDuration(ctx context.Context, path string) (float64, error)
}

// frameSampler extracts still frames from a video at a target rate over an
// optional sub-range. Implemented by ffmpegTool; faked in tests.
type frameSampler interface {
	SampleFrames(ctx context.Context, path string, fps int, r TimeRange, maxFrames int) ([][]byte, error)
}

// ffmpegTool wraps the ffmpeg and ffprobe binaries used for local video
// inspection and frame sampling. The video file is only ever read.
type ffmpegTool struct {
	ffmpegPath  string
	ffprobePath string
}

func newFFmpegTool(ffmpegPath, ffprobePath string) *ffmpegTool {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &ffmpegTool{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath}
}

// ProbeDuration returns the container duration in seconds. It fails when
// ffprobe is unavailable or the file cannot be probed; callers treat that as
// "duration unknown", not as a hard error.
func (f *ffmpegTool) ProbeDuration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	}
	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("animreview: ffprobe failed: %w, stderr: %s", err, stderr.String())
	}
	return parseProbeDuration(stdout.Bytes())
}

func parseProbeDuration(probeJSON []byte) (float64, error) {
	var meta struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal(probeJSON, &meta); err != nil {
		return 0, fmt.Errorf("animreview: parse ffprobe output: %w", err)
	}
	d, err := strconv.ParseFloat(meta.Format.Duration, 64)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("animreview: no duration in ffprobe output")
	}
	return d, nil
}

// SampleFrames extracts JPEG frames at the given rate, honoring the requested
// range via ffmpeg's own seeking. When the extraction yields more than
// maxFrames, frames are thinned evenly rather than truncated, so coverage of
// the window is preserved.
func (f *ffmpegTool) SampleFrames(ctx context.Context, path string, fps int, r TimeRange, maxFrames int) ([][]byte, error) {
	dir, err := os.MkdirTemp("", "animreview-frames-*")
	if err != nil {
		return nil, fmt.Errorf("animreview: create frame dir: %w", err)
	}
	defer os.RemoveAll(dir)

	args := []string{"-y", "-loglevel", "error"}
	if r.Start != nil {
		args = append(args, "-ss", formatSeconds(*r.Start))
	}
	if r.End != nil {
		args = append(args, "-to", formatSeconds(*r.End))
	}
	args = append(args,
		"-i", path,
		"-vf", fmt.Sprintf("fps=%d", fps),
		"-q:v", "4",
		filepath.Join(dir, "frame-%06d.jpg"),
	)

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("animreview: ffmpeg frame extraction failed: %w, stderr: %s", err, stderr.String())
	}

	names, err := filepath.Glob(filepath.Join(dir, "frame-*.jpg"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("animreview: ffmpeg produced no frames for %s", path)
	}
	names = thinEvenly(names, maxFrames)

	frames := make([][]byte, 0, len(names))
	for _, name := range names {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("animreview: read frame: %w", err)
		}
		frames = append(frames, b)
	}
	return frames, nil
}

// thinEvenly keeps at most max items, spaced evenly across the input. The
// first and last items are always kept.
func thinEvenly[T any](items []T, max int) []T {
	if max <= 0 || len(items) <= max {
		return items
	}
	if max == 1 {
		return items[:1]
	}
	out := make([]T, 0, max)
	step := float64(len(items)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		out = append(out, items[int(float64(i)*step+0.5)])
	}
	return out
}

package animreview

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// cleanupAge is how long saved analyses and their videos are kept.
const cleanupAge = 14 * 24 * time.Hour

// ResultStore persists analyses and their recordings under a local results
// directory, and expires old entries on each save.
type ResultStore struct {
	dir string
	now func() time.Time
}

func NewResultStore(dir string) *ResultStore {
	if dir == "" {
		dir = ".animation-review"
	}
	return &ResultStore{dir: dir, now: time.Now}
}

// Save writes the analysis payload (.json for structured, .md for raw) and
// places the video next to it. A video already inside the results directory
// stays where it is; one under the system temp directory is moved; anything
// else is copied. Returns the analysis and video paths.
func (s *ResultStore) Save(res *AnalysisResult, videoPath string) (string, string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", "", fmt.Errorf("animreview: create results dir: %w", err)
	}
	s.ensureGitignored()
	_, _ = s.Cleanup()

	base := s.now().Format("2006-01-02_150405") + "_" + string(res.Mode)
	if res.Provenance.Provider != ProviderGemini {
		base += "_" + string(res.Provenance.Provider)
	}

	var payload []byte
	ext := ".md"
	if res.Shape == ShapeStructured {
		ext = ".json"
		b, err := json.MarshalIndent(res.Fields, "", "  ")
		if err != nil {
			return "", "", err
		}
		payload = b
	} else {
		payload = []byte(res.Text)
	}
	analysisPath := filepath.Join(s.dir, base+ext)
	if err := os.WriteFile(analysisPath, payload, 0o644); err != nil {
		return "", "", fmt.Errorf("animreview: write analysis: %w", err)
	}

	videoDest, err := s.placeVideo(videoPath, base)
	if err != nil {
		return "", "", err
	}
	return analysisPath, videoDest, nil
}

// Cleanup removes entries older than the retention window. Returns how many
// files were removed.
func (s *ResultStore) Cleanup() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	cutoff := s.now().Add(-cleanupAge)
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if os.Remove(filepath.Join(s.dir, e.Name())) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *ResultStore) placeVideo(videoPath, base string) (string, error) {
	videoAbs, err := filepath.Abs(videoPath)
	if err != nil {
		return "", err
	}
	dirAbs, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	// Already in the results dir: the recording harness pre-moved it.
	if filepath.Dir(videoAbs) == dirAbs {
		return videoPath, nil
	}

	dest := filepath.Join(s.dir, base+strings.ToLower(filepath.Ext(videoPath)))
	if strings.HasPrefix(videoAbs, os.TempDir()+string(os.PathSeparator)) {
		if err := moveFile(videoAbs, dest); err != nil {
			return "", fmt.Errorf("animreview: move video: %w", err)
		}
		return dest, nil
	}
	if err := copyFile(videoAbs, dest); err != nil {
		return "", fmt.Errorf("animreview: copy video: %w", err)
	}
	return dest, nil
}

// ensureGitignored appends the results dir to .gitignore when saving inside a
// git checkout. Best-effort; failures are ignored.
func (s *ResultStore) ensureGitignored() {
	if !filepath.IsLocal(s.dir) {
		return
	}
	if _, err := os.Stat(".git"); err != nil {
		return
	}
	entry := filepath.ToSlash(s.dir) + "/"
	existing, _ := os.ReadFile(".gitignore")
	for _, line := range strings.Split(string(existing), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == entry || trimmed == filepath.ToSlash(s.dir) {
			return
		}
	}
	f, err := os.OpenFile(".gitignore", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	if len(existing) > 0 && !strings.HasSuffix(string(existing), "\n") {
		_, _ = f.WriteString("\n")
	}
	_, _ = f.WriteString(entry + "\n")
}

// moveFile renames, falling back to copy+remove across filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

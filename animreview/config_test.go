package animreview

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("ANIMREVIEW_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	assert.Error(t, err, "an explicitly named config file must exist")

	os.Unsetenv("ANIMREVIEW_CONFIG")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.DefaultProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiFlashModel)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiProModel)
	assert.Equal(t, "https://api.moonshot.ai/v1", cfg.KimiBaseURL)
	assert.Equal(t, "kimi-k2.5", cfg.KimiModel)
	assert.Equal(t, ".animation-review", cfg.ResultsDir)
	assert.True(t, cfg.DetectEnv)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_provider: kimi
kimi_model: kimi-latest
results_dir: /var/tmp/reviews
gemini_flash_model: gemini-3-flash
`), 0o644))
	t.Setenv("ANIMREVIEW_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderKimi, cfg.DefaultProvider)
	assert.Equal(t, "kimi-latest", cfg.KimiModel)
	assert.Equal(t, "/var/tmp/reviews", cfg.ResultsDir)
	assert.Equal(t, "gemini-3-flash", cfg.GeminiFlashModel)
	// Unset values still get their defaults.
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiProModel)
}

func TestLoadConfig_UnknownDefaultProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animreview.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_provider: watson\n"), 0o644))
	t.Setenv("ANIMREVIEW_CONFIG", path)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestNew_CredentialsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-test")
	t.Setenv("KIMI_API_KEY", "k-test")

	c := New(Config{DetectEnv: true})
	require.NotNil(t, c)
	assert.Equal(t, "g-test", c.cfg.GeminiAPIKey)
	assert.Equal(t, "k-test", c.cfg.KimiAPIKey)
}

func TestNew_NoEnvDetection(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "g-test")
	c := New(Config{})
	assert.Empty(t, c.cfg.GeminiAPIKey)
}

package animreview

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds process-wide state: credentials, endpoints, model defaults and
// tool paths. It is loaded once at startup and read-only for the lifetime of
// a request.
type Config struct {
	// DefaultProvider is used when a request does not name one.
	DefaultProvider Provider `yaml:"default_provider"`

	// Gemini configuration.
	GeminiAPIKey     string `yaml:"gemini_api_key"` // env GEMINI_API_KEY
	GeminiBaseURL    string `yaml:"gemini_base_url"`
	GeminiFlashModel string `yaml:"gemini_flash_model"` // fast tier
	GeminiProModel   string `yaml:"gemini_pro_model"`   // precise tier

	// Kimi (Moonshot, OpenAI-compatible) configuration.
	KimiAPIKey  string `yaml:"kimi_api_key"` // env KIMI_API_KEY
	KimiBaseURL string `yaml:"kimi_base_url"`
	KimiModel   string `yaml:"kimi_model"`

	// Local tooling used for duration probing and for backends without
	// server-side clipping.
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`

	// ResultsDir receives saved analyses and their videos.
	ResultsDir string `yaml:"results_dir"`

	// Shared client options.
	HTTPClient *http.Client  `yaml:"-"`
	Timeout    time.Duration `yaml:"timeout"`

	// DetectEnv pulls missing credentials from environment variables.
	DetectEnv bool `yaml:"-"`
}

func (c *Config) applyDefaults() {
	if c.DefaultProvider == "" {
		c.DefaultProvider = ProviderGemini
	}
	if c.GeminiFlashModel == "" {
		c.GeminiFlashModel = "gemini-2.5-flash"
	}
	if c.GeminiProModel == "" {
		c.GeminiProModel = "gemini-2.5-pro"
	}
	if c.KimiBaseURL == "" {
		c.KimiBaseURL = "https://api.moonshot.ai/v1"
	}
	if c.KimiModel == "" {
		c.KimiModel = "kimi-k2.5"
	}
	if c.ResultsDir == "" {
		c.ResultsDir = ".animation-review"
	}
}

func (c *Config) validate() error {
	switch c.DefaultProvider {
	case ProviderGemini, ProviderKimi:
		return nil
	default:
		return fmt.Errorf("animreview: unknown default provider %q", c.DefaultProvider)
	}
}

// LoadConfig reads the optional YAML config file named by ANIMREVIEW_CONFIG
// (default animreview.yaml, silently skipped when absent) and fills missing
// credentials from the environment. A .env file is honored when present.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("ANIMREVIEW_CONFIG")
	explicit := configFile != ""
	if configFile == "" {
		configFile = "animreview.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("animreview: parse config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; everything has a default or an env var.
	default:
		return Config{}, fmt.Errorf("animreview: read config file %s: %w", configFile, err)
	}

	cfg.DetectEnv = true
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

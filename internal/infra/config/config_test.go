package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, ProviderGemini, cfg.LLM.Provider)
	require.Equal(t, 500*time.Millisecond, cfg.Session.DebounceDelay)
	require.Equal(t, "New York", cfg.Session.DefaultLocation.Name)
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
llm:
  provider: chatgpt
  model: gpt-4o-mini
session:
  debounceDelay: 250ms
  defaultLocation:
    name: Singapore
    latitude: 1.29
    longitude: 103.85
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_API_KEY", "secret")
	t.Setenv("SESSION_IDLE_TTL", "5m")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTP.Address)
	require.Equal(t, ProviderChatGPT, cfg.LLM.Provider)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "secret", cfg.LLM.APIKey)
	require.Equal(t, 250*time.Millisecond, cfg.Session.DebounceDelay)
	require.Equal(t, 5*time.Minute, cfg.Session.IdleTTL)
	require.Equal(t, "Singapore", cfg.Session.DefaultLocation.Name)
	require.Equal(t, 2, cfg.Session.MinQueryLength)
	require.False(t, cfg.Metrics.Enabled)
}

func TestAPIKeyEnvPrecedence(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)

	cfg := defaultConfig()
	t.Setenv("API_KEY", "generic")
	t.Setenv("GEMINI_API_KEY", "gemini")
	applyEnvOverrides(cfg)
	require.Equal(t, "gemini", cfg.LLM.APIKey)

	t.Setenv("LLM_API_KEY", "explicit")
	applyEnvOverrides(cfg)
	require.Equal(t, "explicit", cfg.LLM.APIKey)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown provider":  func(c *Config) { c.LLM.Provider = "claude" },
		"empty geocoding":   func(c *Config) { c.Weather.GeocodingURL = " " },
		"zero debounce":     func(c *Config) { c.Session.DebounceDelay = 0 },
		"bad default":       func(c *Config) { c.Session.DefaultLocation.Latitude = 91 },
		"bad metrics path":  func(c *Config) { c.Metrics.Path = "metrics" },
		"temperature range": func(c *Config) { c.LLM.Temperature = 3 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

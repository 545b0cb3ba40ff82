package bootstrap

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/vibecast/internal/infra/config"
)

func TestProvideModelClientFollowsProvider(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderChatGPT, APIKey: "test-key"}}
	require.Equal(t, "chatgpt", ProvideModelClient(cfg, logger).Name())

	cfg.LLM.Provider = config.ProviderDisabled
	require.Equal(t, "disabled", ProvideModelClient(cfg, logger).Name())
}

func TestProvideStylistConfigDefaultsModelPerProvider(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: config.ProviderChatGPT, Temperature: 0.4}}
	require.Equal(t, "gpt-4o-mini", ProvideStylistConfig(cfg).Model)

	cfg.LLM.Provider = config.ProviderGemini
	require.Equal(t, "gemini-2.5-flash", ProvideStylistConfig(cfg).Model)

	cfg.LLM.Model = "gemini-2.0-flash"
	got := ProvideStylistConfig(cfg)
	require.Equal(t, "gemini-2.0-flash", got.Model)
	require.InDelta(t, 0.4, got.Temperature, 1e-6)
}

func TestProvideSessionConfig(t *testing.T) {
	cfg := &config.Config{Session: config.SessionConfig{
		DebounceDelay:  300 * time.Millisecond,
		MinQueryLength: 3,
		DefaultLocation: config.LocationConfig{
			Name: "Oslo", Latitude: 59.91, Longitude: 10.75, Country: "Norway",
		},
	}}
	got := ProvideSessionConfig(cfg)
	require.Equal(t, "Oslo", got.DefaultLocation.Name)
	require.Equal(t, 300*time.Millisecond, got.Feed.Delay)
	require.Equal(t, 3, got.Feed.MinQueryLength)
}

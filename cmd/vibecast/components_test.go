package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/vibecast/internal/infra/config"
)

func TestInitializeComponentsUsesConfig(t *testing.T) {
	cfg := &config.Config{
		Weather: config.WeatherConfig{MaxResults: 5},
		LLM:     config.LLMConfig{Provider: config.ProviderDisabled},
		Session: config.SessionConfig{
			MinQueryLength:  2,
			DefaultLocation: config.LocationConfig{Name: "Oslo", Latitude: 59.91, Longitude: 10.75},
		},
	}
	parts := initializeComponents(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NotNil(t, parts.weather)
	require.NotNil(t, parts.advisor)
	require.Equal(t, "Oslo", parts.sessionCfg.DefaultLocation.Name)
	require.Equal(t, 2, parts.sessionCfg.Feed.MinQueryLength)
}

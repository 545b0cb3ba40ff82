package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/wire"

	"github.com/yanqian/vibecast/internal/domain/session"
	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/domain/suggest"
	"github.com/yanqian/vibecast/internal/domain/weather"
	"github.com/yanqian/vibecast/internal/infra/config"
	"github.com/yanqian/vibecast/internal/infra/sessionstore"
	stylistllm "github.com/yanqian/vibecast/internal/infra/stylist/llm"
	"github.com/yanqian/vibecast/internal/infra/weather/openmeteo"
)

// DomainSet assembles the weather gateway, the advice generator and the session config from
// the loaded configuration. Both the API server and the terminal client build on it.
var DomainSet = wire.NewSet(
	ProvideWeatherConfig,
	ProvideOpenMeteoClient,
	wire.Bind(new(weather.Client), new(*openmeteo.Client)),
	weather.NewService,
	ProvideStylistConfig,
	ProvideModelClient,
	stylist.NewService,
	ProvideSessionConfig,
)

func ProvideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{MaxResults: cfg.Weather.MaxResults}
}

func ProvideOpenMeteoClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.Weather.GeocodingURL, cfg.Weather.ForecastURL, cfg.Weather.Timeout)
}

// ProvideStylistConfig fills in the provider's default model when none is configured.
func ProvideStylistConfig(cfg *config.Config) stylist.Config {
	model := strings.TrimSpace(cfg.LLM.Model)
	if model == "" {
		model = stylistllm.DefaultModel(cfg.LLM.Provider)
	}
	return stylist.Config{
		Model:           model,
		Temperature:     cfg.LLM.Temperature,
		MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		Prompt:          cfg.Advice.Prompt,
	}
}

func ProvideModelClient(cfg *config.Config, logger *slog.Logger) stylist.ModelClient {
	return stylistllm.NewModelClient(context.Background(), stylistllm.Settings{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	}, logger)
}

func ProvideSessionConfig(cfg *config.Config) session.Config {
	loc := cfg.Session.DefaultLocation
	return session.Config{
		DefaultLocation: weather.Location{
			Name:      loc.Name,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
			Country:   loc.Country,
		},
		Feed: suggest.Config{
			Delay:          cfg.Session.DebounceDelay,
			MinQueryLength: cfg.Session.MinQueryLength,
		},
	}
}

func ProvideSessionRegistry(cfg *config.Config, logger *slog.Logger) session.Registry {
	return sessionstore.New(cfg.Session.MaxSessions, cfg.Session.IdleTTL, logger)
}

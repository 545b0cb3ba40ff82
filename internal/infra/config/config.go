package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported advice providers.
const (
	ProviderGemini   = "gemini"
	ProviderChatGPT  = "chatgpt"
	ProviderDisabled = "disabled"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Weather WeatherConfig `yaml:"weather"`
	LLM     LLMConfig     `yaml:"llm"`
	Advice  AdviceConfig  `yaml:"advice"`
	Session SessionConfig `yaml:"session"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	WriteTimeout   time.Duration `yaml:"writeTimeout"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
}

// WeatherConfig points at the geocoding and forecast endpoints.
type WeatherConfig struct {
	GeocodingURL string        `yaml:"geocodingUrl"`
	ForecastURL  string        `yaml:"forecastUrl"`
	Timeout      time.Duration `yaml:"timeout"`
	MaxResults   int           `yaml:"maxResults"`
}

// LLMConfig selects and tunes the advice model.
type LLMConfig struct {
	Provider        string        `yaml:"provider"`
	APIKey          string        `yaml:"apiKey"`
	BaseURL         string        `yaml:"baseUrl"`
	Model           string        `yaml:"model"`
	Temperature     float32       `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"maxOutputTokens"`
	Timeout         time.Duration `yaml:"timeout"`
}

// AdviceConfig overrides the stylist persona.
type AdviceConfig struct {
	Prompt string `yaml:"prompt"`
}

// SessionConfig controls interactive sessions.
type SessionConfig struct {
	DebounceDelay   time.Duration  `yaml:"debounceDelay"`
	MinQueryLength  int            `yaml:"minQueryLength"`
	IdleTTL         time.Duration  `yaml:"idleTtl"`
	MaxSessions     int            `yaml:"maxSessions"`
	DefaultLocation LocationConfig `yaml:"defaultLocation"`
}

// LocationConfig is a named coordinate pair.
type LocationConfig struct {
	Name      string  `yaml:"name"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Country   string  `yaml:"country"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	for _, key := range []string{"API_KEY", "GEMINI_API_KEY", "LLM_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			cfg.LLM.APIKey = v
		}
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("WEATHER_GEOCODING_URL"); v != "" {
		cfg.Weather.GeocodingURL = v
	}
	if v := os.Getenv("WEATHER_FORECAST_URL"); v != "" {
		cfg.Weather.ForecastURL = v
	}
	if v := os.Getenv("SESSION_DEBOUNCE_DELAY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.DebounceDelay = parsed
		}
	}
	if v := os.Getenv("SESSION_IDLE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Session.IdleTTL = parsed
		}
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    5 * time.Second,
			WriteTimeout:   30 * time.Second,
			AllowedOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		},
		Weather: WeatherConfig{
			GeocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
			ForecastURL:  "https://api.open-meteo.com/v1/forecast",
			Timeout:      10 * time.Second,
			MaxResults:   5,
		},
		LLM: LLMConfig{
			Provider:        ProviderGemini,
			Temperature:     0.7,
			MaxOutputTokens: 1024,
			Timeout:         30 * time.Second,
		},
		Session: SessionConfig{
			DebounceDelay:  500 * time.Millisecond,
			MinQueryLength: 2,
			IdleTTL:        30 * time.Minute,
			MaxSessions:    1000,
			DefaultLocation: LocationConfig{
				Name:      "New York",
				Latitude:  40.71,
				Longitude: -74.01,
				Country:   "USA",
			},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Weather.GeocodingURL) == "" {
		return errors.New("weather.geocodingUrl cannot be empty")
	}
	if strings.TrimSpace(c.Weather.ForecastURL) == "" {
		return errors.New("weather.forecastUrl cannot be empty")
	}
	if c.Weather.MaxResults <= 0 {
		return errors.New("weather.maxResults must be positive")
	}
	if c.Weather.Timeout < 0 {
		return errors.New("weather.timeout cannot be negative")
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderChatGPT, ProviderDisabled:
	default:
		return fmt.Errorf("llm.provider %q is not supported", c.LLM.Provider)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.MaxOutputTokens < 0 {
		return errors.New("llm.maxOutputTokens cannot be negative")
	}
	if c.Session.DebounceDelay <= 0 {
		return errors.New("session.debounceDelay must be positive")
	}
	if c.Session.MinQueryLength <= 0 {
		return errors.New("session.minQueryLength must be positive")
	}
	if c.Session.IdleTTL <= 0 {
		return errors.New("session.idleTtl must be positive")
	}
	if c.Session.MaxSessions <= 0 {
		return errors.New("session.maxSessions must be positive")
	}
	loc := c.Session.DefaultLocation
	if strings.TrimSpace(loc.Name) == "" {
		return errors.New("session.defaultLocation.name cannot be empty")
	}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return errors.New("session.defaultLocation coordinates out of range")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("metrics.path must start with /")
	}
	return nil
}


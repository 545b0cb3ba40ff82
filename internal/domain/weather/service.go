package weather

import (
	"context"
	"log/slog"
	"strings"

	apperrors "github.com/yanqian/vibecast/pkg/errors"
)

const defaultMaxResults = 5

// Service is the weather gateway used by sessions and the HTTP API.
type Service interface {
	SearchLocation(ctx context.Context, query string) ([]Location, error)
	FetchWeather(ctx context.Context, latitude, longitude float64, displayName string) (Snapshot, error)
}

// Client talks to the upstream geocoding and forecast endpoints.
type Client interface {
	Search(ctx context.Context, query string, count int) ([]Location, error)
	Current(ctx context.Context, latitude, longitude float64) (Snapshot, error)
}

type service struct {
	cfg    Config
	client Client
	logger *slog.Logger
}

// NewService wires up the weather gateway.
func NewService(cfg Config, client Client, logger *slog.Logger) Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = defaultMaxResults
	}
	return &service{cfg: cfg, client: client, logger: logger.With("component", "weather.service")}
}

func (s *service) SearchLocation(ctx context.Context, query string) ([]Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "query cannot be empty", nil)
	}

	results, err := s.client.Search(ctx, query, s.cfg.MaxResults)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNetwork, "failed to search location", err)
	}
	if len(results) > s.cfg.MaxResults {
		results = results[:s.cfg.MaxResults]
	}
	if results == nil {
		results = []Location{}
	}
	s.logger.Debug("location search completed", "query", query, "results", len(results))
	return results, nil
}

func (s *service) FetchWeather(ctx context.Context, latitude, longitude float64, displayName string) (Snapshot, error) {
	if !ValidCoordinates(latitude, longitude) {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeInvalidInput, "coordinates out of range", nil)
	}

	snapshot, err := s.client.Current(ctx, latitude, longitude)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeNetwork, "failed to fetch weather data", err)
	}
	snapshot.LocationName = displayName
	s.logger.Debug("weather fetched", "location", displayName, "code", snapshot.WeatherCode)
	return snapshot, nil
}

// ValidCoordinates reports whether a point lies within WGS84 bounds.
func ValidCoordinates(latitude, longitude float64) bool {
	return latitude >= -90 && latitude <= 90 && longitude >= -180 && longitude <= 180
}

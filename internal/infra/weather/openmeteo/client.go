package openmeteo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/vibecast/internal/domain/weather"
	"github.com/yanqian/vibecast/pkg/metrics"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	currentFields = "temperature_2m,relative_humidity_2m,is_day,weather_code,wind_speed_10m"
)

// Client fetches geocoding and current conditions from Open-Meteo.
type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

// NewClient builds an API client. Empty URLs fall back to the public endpoints.
func NewClient(geocodingURL, forecastURL string, timeout time.Duration) *Client {
	geocodingURL = strings.TrimSpace(geocodingURL)
	if geocodingURL == "" {
		geocodingURL = defaultGeocodingURL
	}
	forecastURL = strings.TrimSpace(forecastURL)
	if forecastURL == "" {
		forecastURL = defaultForecastURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		geocodingURL: strings.TrimRight(geocodingURL, "/"),
		forecastURL:  strings.TrimRight(forecastURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search resolves a place name into at most count candidates.
func (c *Client) Search(ctx context.Context, query string, count int) (locations []weather.Location, err error) {
	defer func(start time.Time) { metrics.ObserveUpstream("geocoding", start, err) }(time.Now())

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", strconv.Itoa(count))
	params.Set("language", "en")
	params.Set("format", "json")

	body, err := c.get(ctx, c.geocodingURL+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}

	var raw geocodeResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode geocoding response: %w", err)
	}

	locations = make([]weather.Location, 0, len(raw.Results))
	for _, r := range raw.Results {
		locations = append(locations, weather.Location{
			Name:      r.Name,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
			Country:   r.Country,
		})
	}
	return locations, nil
}

// Current fetches the current conditions for a coordinate pair. LocationName is left empty.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (snapshot weather.Snapshot, err error) {
	defer func(start time.Time) { metrics.ObserveUpstream("forecast", start, err) }(time.Now())

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))
	params.Set("current", currentFields)
	params.Set("wind_speed_unit", "kmh")

	body, err := c.get(ctx, c.forecastURL+"?"+params.Encode())
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("forecast request failed: %w", err)
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return weather.Snapshot{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if raw.Current == nil {
		return weather.Snapshot{}, errors.New("forecast response missing current conditions")
	}

	cur := raw.Current
	if missing := cur.missing(); len(missing) > 0 {
		return weather.Snapshot{}, fmt.Errorf("forecast response missing %s", strings.Join(missing, ", "))
	}
	return weather.Snapshot{
		Temperature: *cur.Temperature2m,
		WeatherCode: *cur.WeatherCode,
		WindSpeed:   *cur.WindSpeed10m,
		Humidity:    int(*cur.RelativeHumidity2m),
		IsDay:       *cur.IsDay == 1,
	}, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

type forecastResponse struct {
	Current *currentConditions `json:"current"`
}

// currentConditions uses pointers so an absent field is told apart from a zero reading.
type currentConditions struct {
	Temperature2m      *float64 `json:"temperature_2m"`
	RelativeHumidity2m *float64 `json:"relative_humidity_2m"`
	IsDay              *int     `json:"is_day"`
	WeatherCode        *int     `json:"weather_code"`
	WindSpeed10m       *float64 `json:"wind_speed_10m"`
}

func (c *currentConditions) missing() []string {
	var out []string
	if c.Temperature2m == nil {
		out = append(out, "temperature_2m")
	}
	if c.RelativeHumidity2m == nil {
		out = append(out, "relative_humidity_2m")
	}
	if c.IsDay == nil {
		out = append(out, "is_day")
	}
	if c.WeatherCode == nil {
		out = append(out, "weather_code")
	}
	if c.WindSpeed10m == nil {
		out = append(out, "wind_speed_10m")
	}
	return out
}

var _ weather.Client = (*Client)(nil)

package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/vibecast/pkg/errors"
)

func TestSearchLocationRejectsEmptyQuery(t *testing.T) {
	client := &stubClient{}
	svc := NewService(Config{}, client, newTestLogger())

	_, err := svc.SearchLocation(context.Background(), "   ")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
	require.Zero(t, client.searchCalls)
}

func TestSearchLocationCapsResults(t *testing.T) {
	client := &stubClient{locations: []Location{
		{Name: "Paris"}, {Name: "Paris, TX"}, {Name: "Paris, TN"},
		{Name: "Paris, KY"}, {Name: "Paris, ON"}, {Name: "Paris, IL"},
	}}
	svc := NewService(Config{}, client, newTestLogger())

	got, err := svc.SearchLocation(context.Background(), " Paris ")
	require.NoError(t, err)
	require.Len(t, got, 5)
	require.Equal(t, "Paris", got[0].Name)
	require.Equal(t, "Paris", client.lastQuery)
	require.Equal(t, 5, client.lastCount)
}

func TestSearchLocationNoMatches(t *testing.T) {
	svc := NewService(Config{}, &stubClient{}, newTestLogger())

	got, err := svc.SearchLocation(context.Background(), "Atlantis")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestSearchLocationNetworkError(t *testing.T) {
	svc := NewService(Config{}, &stubClient{err: errors.New("connection reset")}, newTestLogger())

	_, err := svc.SearchLocation(context.Background(), "Tokyo")
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, apperrors.CodeNetwork))
}

func TestFetchWeatherStampsDisplayName(t *testing.T) {
	client := &stubClient{snapshot: Snapshot{Temperature: 21.5, WeatherCode: 2, WindSpeed: 11, Humidity: 60, IsDay: true, LocationName: "ignored"}}
	svc := NewService(Config{}, client, newTestLogger())

	got, err := svc.FetchWeather(context.Background(), 35.68, 139.69, "Tokyo, Japan")
	require.NoError(t, err)
	require.Equal(t, "Tokyo, Japan", got.LocationName)
	require.Equal(t, 21.5, got.Temperature)
	require.Equal(t, 35.68, client.lastLat)
	require.Equal(t, 139.69, client.lastLon)
}

func TestFetchWeatherErrors(t *testing.T) {
	svc := NewService(Config{}, &stubClient{err: errors.New("status=500")}, newTestLogger())

	_, err := svc.FetchWeather(context.Background(), 1, 2, "Nowhere")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNetwork))

	_, err = svc.FetchWeather(context.Background(), 91, 2, "Nowhere")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
}

type stubClient struct {
	locations   []Location
	snapshot    Snapshot
	err         error
	searchCalls int
	lastQuery   string
	lastCount   int
	lastLat     float64
	lastLon     float64
}

func (s *stubClient) Search(ctx context.Context, query string, count int) ([]Location, error) {
	s.searchCalls++
	s.lastQuery = query
	s.lastCount = count
	if s.err != nil {
		return nil, s.err
	}
	return s.locations, nil
}

func (s *stubClient) Current(ctx context.Context, latitude, longitude float64) (Snapshot, error) {
	s.lastLat = latitude
	s.lastLon = longitude
	if s.err != nil {
		return Snapshot{}, s.err
	}
	return s.snapshot, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

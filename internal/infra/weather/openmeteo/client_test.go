package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchEncodesQueryAndDecodesResults(t *testing.T) {
	var q url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":1,"name":"São Paulo","latitude":-23.5475,"longitude":-46.63611,"country":"Brazil"},
			{"id":2,"name":"São Paulo de Olivença","latitude":-3.37833,"longitude":-68.8725}
		],"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.URL, time.Second)
	got, err := client.Search(context.Background(), "São Paulo", 5)
	require.NoError(t, err)
	require.Equal(t, "São Paulo", q.Get("name"))
	require.Equal(t, "5", q.Get("count"))
	require.Equal(t, "en", q.Get("language"))
	require.Equal(t, "json", q.Get("format"))
	require.Len(t, got, 2)
	require.Equal(t, "São Paulo", got[0].Name)
	require.Equal(t, "Brazil", got[0].Country)
	require.InDelta(t, -23.5475, got[0].Latitude, 1e-9)
	require.Empty(t, got[1].Country)
}

func TestSearchWithoutResultsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.2}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, srv.URL, time.Second).Search(context.Background(), "zzzz", 5)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSearchMalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, srv.URL, time.Second).Search(context.Background(), "Tokyo", 5)
	require.Error(t, err)
}

func TestCurrentDecodesConditions(t *testing.T) {
	var q url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q = r.URL.Query()
		_, _ = w.Write([]byte(`{"current":{"time":"2024-07-01T12:00","temperature_2m":28.4,"relative_humidity_2m":74,"is_day":1,"weather_code":80,"wind_speed_10m":12.3}}`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, srv.URL, time.Second).Current(context.Background(), 35.6895, 139.69171)
	require.NoError(t, err)
	require.Equal(t, "35.6895", q.Get("latitude"))
	require.Equal(t, "139.69171", q.Get("longitude"))
	require.Equal(t, currentFields, q.Get("current"))
	require.Equal(t, "kmh", q.Get("wind_speed_unit"))
	require.Equal(t, 28.4, got.Temperature)
	require.Equal(t, 74, got.Humidity)
	require.True(t, got.IsDay)
	require.Equal(t, 80, got.WeatherCode)
	require.Equal(t, 12.3, got.WindSpeed)
	require.Empty(t, got.LocationName)
}

func TestCurrentFailures(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusInternalServerError)
		},
		"missing current": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"latitude":1}`))
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"current":`))
		},
		"empty current": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"current":{}}`))
		},
		"partial current": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"current":{"temperature_2m":3.1,"is_day":0,"weather_code":71}}`))
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := NewClient(srv.URL, srv.URL, time.Second).Current(context.Background(), 1, 2)
			require.Error(t, err)
		})
	}
}

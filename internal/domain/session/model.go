package session

import (
	"time"

	"github.com/yanqian/vibecast/internal/domain/stylist"
	"github.com/yanqian/vibecast/internal/domain/suggest"
	"github.com/yanqian/vibecast/internal/domain/weather"
)

// Phase is the orchestration state of a session.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseLocatingDevice   Phase = "locating_device"
	PhaseFetchingWeather  Phase = "fetching_weather"
	PhaseGeneratingAdvice Phase = "generating_advice"
	PhaseReady            Phase = "ready"
	PhaseFailed           Phase = "failed"
)

// Busy reports whether a sequence is in flight.
func (p Phase) Busy() bool {
	return p == PhaseLocatingDevice || p == PhaseFetchingWeather || p == PhaseGeneratingAdvice
}

// User facing messages.
const (
	WeatherFailureMessage     = "Failed to connect to the sky. Please try again."
	GeolocationFailureMessage = "Unable to retrieve your location"
	DeviceLocationName        = "Current Location"
)

// View is an immutable copy of a session for rendering.
type View struct {
	ID        string            `json:"id"`
	Phase     Phase             `json:"phase"`
	Location  *weather.Location `json:"location,omitempty"`
	Weather   *weather.Snapshot `json:"weather,omitempty"`
	Condition string            `json:"condition,omitempty"`
	Advice    *stylist.Advice   `json:"advice,omitempty"`
	Error     string            `json:"error,omitempty"`
	Sequence  uint64            `json:"sequence"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Query     suggest.View      `json:"query"`
}

// Config wires runtime knobs for sessions.
type Config struct {
	DefaultLocation weather.Location
	Feed            suggest.Config
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/yanqian/vibecast/internal/domain/weather"
)

// Environment variables read by EnvLocator.
const (
	EnvDeviceLatitude  = "VIBECAST_DEVICE_LAT"
	EnvDeviceLongitude = "VIBECAST_DEVICE_LON"
)

// ErrLocationUnavailable means the terminal has no device position to offer.
var ErrLocationUnavailable = errors.New("device location unavailable")

// EnvLocator reports a device position configured through the environment.
type EnvLocator struct {
	// Lookup defaults to os.LookupEnv.
	Lookup func(key string) (string, bool)
}

// Locate implements session.DeviceLocator.
func (l EnvLocator) Locate(_ context.Context) (weather.Coordinates, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	rawLat, okLat := lookup(EnvDeviceLatitude)
	rawLon, okLon := lookup(EnvDeviceLongitude)
	if !okLat || !okLon {
		return weather.Coordinates{}, ErrLocationUnavailable
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse %s: %w", EnvDeviceLatitude, err)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return weather.Coordinates{}, fmt.Errorf("parse %s: %w", EnvDeviceLongitude, err)
	}
	if !weather.ValidCoordinates(lat, lon) {
		return weather.Coordinates{}, ErrLocationUnavailable
	}
	return weather.Coordinates{Latitude: lat, Longitude: lon}, nil
}

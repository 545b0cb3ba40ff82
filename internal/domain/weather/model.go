package weather

// Location is a place that can be looked up for current conditions.
type Location struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country,omitempty"`
}

// Coordinates is a bare position, as reported by a device.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Snapshot holds the current conditions for one location. A new fetch replaces it entirely.
type Snapshot struct {
	Temperature  float64 `json:"temperature"`
	WeatherCode  int     `json:"weatherCode"`
	WindSpeed    float64 `json:"windSpeed"`
	Humidity     int     `json:"humidity"`
	IsDay        bool    `json:"isDay"`
	LocationName string  `json:"locationName"`
}

// Config wires runtime knobs for the gateway.
type Config struct {
	MaxResults int
}

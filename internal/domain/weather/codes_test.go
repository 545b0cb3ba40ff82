package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribeCodeKnown(t *testing.T) {
	tests := map[int]string{
		0:  "Clear sky",
		3:  "Overcast",
		48: "Depositing rime fog",
		57: "Dense freezing drizzle",
		66: "Light freezing rain",
		75: "Heavy snow fall",
		82: "Violent rain showers",
		96: "Thunderstorm with light hail",
		99: "Thunderstorm with heavy hail",
	}
	for code, want := range tests {
		require.Equal(t, want, DescribeCode(code), "code %d", code)
	}
	require.Len(t, wmoCodes, 28)
}

func TestDescribeCodeUnknown(t *testing.T) {
	for code := -5; code <= 120; code++ {
		if _, ok := wmoCodes[code]; ok {
			continue
		}
		require.Equal(t, "Unknown", DescribeCode(code), "code %d", code)
	}
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *Point
	}{
		{
			name:     "flat shape",
			raw:      `{"latitude": 41.3851, "longitude": 2.1734}`,
			expected: &Point{Lat: 41.3851, Lon: 2.1734},
		},
		{
			name:     "nested shape",
			raw:      `{"location": {"latitude": 40.4168, "longitude": -3.7038}}`,
			expected: &Point{Lat: 40.4168, Lon: -3.7038},
		},
		{
			name:     "flat shape takes precedence over nested",
			raw:      `{"latitude": 41.3851, "longitude": 2.1734, "location": {"latitude": 1.0, "longitude": 1.0}}`,
			expected: &Point{Lat: 41.3851, Lon: 2.1734},
		},
		{
			name:     "incomplete flat falls back to nested",
			raw:      `{"latitude": 41.3851, "location": {"latitude": 40.4168, "longitude": -3.7038}}`,
			expected: &Point{Lat: 40.4168, Lon: -3.7038},
		},
		{
			name:     "zero coordinates are valid",
			raw:      `{"latitude": 0, "longitude": 0}`,
			expected: &Point{Lat: 0, Lon: 0},
		},
		{
			name:     "missing longitude",
			raw:      `{"latitude": 41.3851}`,
			expected: nil,
		},
		{
			name:     "null coordinates",
			raw:      `{"latitude": null, "longitude": null}`,
			expected: nil,
		},
		{
			name:     "non-numeric coordinates",
			raw:      `{"latitude": "41.3851", "longitude": "2.1734"}`,
			expected: nil,
		},
		{
			name:     "latitude out of range",
			raw:      `{"latitude": 91.0, "longitude": 2.1734}`,
			expected: nil,
		},
		{
			name:     "longitude out of range",
			raw:      `{"latitude": 41.3851, "longitude": -200.0}`,
			expected: nil,
		},
		{
			name:     "empty object",
			raw:      `{}`,
			expected: nil,
		},
		{
			name:     "malformed json",
			raw:      `{"latitude": `,
			expected: nil,
		},
		{
			name:     "json null",
			raw:      `null`,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			point := ResolveCoordinate(json.RawMessage(tt.raw))
			if tt.expected == nil {
				assert.Nil(t, point)
				return
			}
			require.NotNil(t, point)
			assert.InDelta(t, tt.expected.Lat, point.Lat, 1e-9)
			assert.InDelta(t, tt.expected.Lon, point.Lon, 1e-9)
		})
	}
}

func TestResolveCoordinate_EmptyRaw(t *testing.T) {
	assert.Nil(t, ResolveCoordinate(nil))
	assert.Nil(t, ResolveCoordinate(json.RawMessage{}))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("known distance Barcelona to Madrid", func(t *testing.T) {
		// Barcelona (41.3851, 2.1734) -> Madrid (40.4168, -3.7038)
		distance := HaversineDistance(41.3851, 2.1734, 40.4168, -3.7038)
		assert.InDelta(t, 504.6, distance, 2.0)
	})

	t.Run("zero distance for identical points", func(t *testing.T) {
		distance := HaversineDistance(41.3851, 2.1734, 41.3851, 2.1734)
		assert.InDelta(t, 0.0, distance, 1e-9)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab := HaversineDistance(41.3851, 2.1734, 48.8566, 2.3522)
		ba := HaversineDistance(48.8566, 2.3522, 41.3851, 2.1734)
		assert.InDelta(t, ab, ba, 1e-9)
	})

	t.Run("short distance within city", func(t *testing.T) {
		// Sagrada Familia -> Park Guell, примерно 1.5 км
		distance := HaversineDistance(41.4036, 2.1744, 41.4145, 2.1527)
		assert.Greater(t, distance, 1.0)
		assert.Less(t, distance, 3.0)
	})
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		expected bool
	}{
		{"valid coordinates", 41.3851, 2.1734, true},
		{"boundary values", 90.0, 180.0, true},
		{"negative boundary values", -90.0, -180.0, true},
		{"latitude too large", 90.1, 0.0, false},
		{"latitude too small", -90.1, 0.0, false},
		{"longitude too large", 0.0, 180.1, false},
		{"longitude too small", 0.0, -180.1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateCoordinates(tt.lat, tt.lon))
		})
	}
}

func TestValidateZoom(t *testing.T) {
	assert.True(t, ValidateZoom(0))
	assert.True(t, ValidateZoom(12))
	assert.True(t, ValidateZoom(22))
	assert.False(t, ValidateZoom(-1))
	assert.False(t, ValidateZoom(23))
}

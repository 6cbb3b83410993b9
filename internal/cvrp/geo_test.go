package cvrp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name     string
		lat1, lon1 float64
		lat2, lon2 float64
		want     float64
		delta    float64
	}{
		{"same point", 0, 0, 0, 0, 0, 1e-9},
		{"one degree latitude", 0, 0, 1, 0, 111.195, 0.01},
		{"non-finite lat1 yields zero", math.NaN(), 0, 1, 1, 0, 1e-9},
		{"non-finite lon2 yields zero", 0, 0, 1, math.Inf(1), 0, 1e-9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.delta)
		})
	}
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 0, durationMinutes(0))
	assert.Equal(t, 60, durationMinutes(40))
	assert.Equal(t, 30, durationMinutes(20))
}

func TestValidCoordinate(t *testing.T) {
	assert.True(t, validCoordinate(10, 20))
	assert.False(t, validCoordinate(math.NaN(), 20))
	assert.False(t, validCoordinate(10, math.Inf(-1)))
}

package cvrp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

func sampleLocations() []models.Location {
	return []models.Location{
		{ID: "D", Name: "Depot", Latitude: 0, Longitude: 0, Demand: 0, Depot: true},
		{ID: "A", Name: "A", Latitude: 0, Longitude: 1, Demand: 5},
		{ID: "B", Name: "B", Latitude: 0, Longitude: 2, Demand: 5},
	}
}

func TestBuildDistanceMatrix_SymmetricAndZeroDiagonal(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)

	assert.Equal(t, 0.0, matrix.Distance("D", "D"))
	assert.Equal(t, matrix.Distance("D", "A"), matrix.Distance("A", "D"))
	assert.Equal(t, matrix.Distance("A", "B"), matrix.Distance("B", "A"))
	assert.Greater(t, matrix.Distance("D", "B"), matrix.Distance("D", "A"))
}

func TestDistanceMatrix_FallbackOnMissingPair(t *testing.T) {
	locations := sampleLocations()
	matrix := BuildDistanceMatrix(locations)

	extra := models.Location{ID: "C", Latitude: 0, Longitude: 3}
	matrix.locs["C"] = extra

	got := matrix.Distance("D", "C")
	want := haversineDistance(0, 0, 0, 3)
	assert.Equal(t, want, got)
}

func TestDistanceMatrix_UnknownIDsReturnZero(t *testing.T) {
	matrix := BuildDistanceMatrix(sampleLocations())
	assert.Equal(t, 0.0, matrix.Distance("ghost", "D"))
}
